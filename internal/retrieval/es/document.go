package es

import (
	"time"

	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/google/uuid"

	"github.com/mzivkovic/ragrank/internal/domain"
)

// PassageDocument represents the document structure for Elasticsearch
type PassageDocument struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Source    string    `json:"source"`
	Section   string    `json:"section"`
	IndexedAt time.Time `json:"indexed_at"`
}

type IndexBuilder struct{}

func NewIndexBuilder() *IndexBuilder {
	return &IndexBuilder{}
}

func (b *IndexBuilder) mapToESDocument(passage domain.Passage) PassageDocument {
	if passage.ID == uuid.Nil {
		passage.ID = uuid.New()
	}
	doc := PassageDocument{
		ID:        passage.ID.String(),
		Text:      passage.Text,
		IndexedAt: time.Now(),
	}
	if v, ok := passage.Metadata["source"].(string); ok {
		doc.Source = v
	}
	if v, ok := passage.Metadata["section"].(string); ok {
		doc.Section = v
	}
	return doc
}

func (b *IndexBuilder) buildSettings() types.IndexSettings {
	return types.IndexSettings{
		Analysis: &types.IndexSettingsAnalysis{
			Analyzer: map[string]types.Analyzer{
				"passage_analyzer": types.StandardAnalyzer{
					Stopwords: []string{"_none_"},
				},
			},
		},
	}
}

func (b *IndexBuilder) buildMapping() types.TypeMapping {
	return types.TypeMapping{
		Properties: map[string]types.Property{
			"id":         types.NewKeywordProperty(),
			"text":       b.createTextProperty("passage_analyzer"),
			"source":     b.createTextPropertyWithKeyword(""),
			"section":    types.NewKeywordProperty(),
			"indexed_at": types.NewDateProperty(),
		},
	}
}

func (b *IndexBuilder) createTextProperty(analyzer string) types.Property {
	textProp := types.NewTextProperty()
	if analyzer != "" {
		textProp.Analyzer = &analyzer
	}
	return textProp
}

func (b *IndexBuilder) createTextPropertyWithKeyword(analyzer string) types.Property {
	textProp := types.NewTextProperty()
	if analyzer != "" {
		textProp.Analyzer = &analyzer
	}
	textProp.Fields = map[string]types.Property{
		"keyword": types.NewKeywordProperty(),
	}
	return textProp
}
