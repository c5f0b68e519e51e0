package extract

import (
	"context"
	"fmt"

	"github.com/jdkato/prose/v2"

	"github.com/mzivkovic/ragrank/internal/domain"
)

const ProseModel = "prose-v2"

// ProseExtractor is the always-available statistical fallback variant. It runs
// in-process and emits no confidence values, so scoring treats its entities
// with a neutral confidence.
type ProseExtractor struct{}

func NewProseExtractor() *ProseExtractor {
	return &ProseExtractor{}
}

func (e *ProseExtractor) Model() string {
	return ProseModel
}

func (e *ProseExtractor) Extract(ctx context.Context, text string) ([]domain.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil, fmt.Errorf("prose document: %w", err)
	}

	ents := doc.Entities()
	entities := make([]domain.Entity, 0, len(ents))
	for _, ent := range ents {
		entities = append(entities, domain.Entity{
			Text:  ent.Text,
			Label: ent.Label,
			Model: ProseModel,
		})
	}

	return FilterEntities(entities), nil
}
