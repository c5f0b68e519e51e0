package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mzivkovic/ragrank/internal/domain"
	"github.com/mzivkovic/ragrank/internal/extract"
)

func TestFilterEntities(t *testing.T) {
	tests := []struct {
		name  string
		in    []domain.Entity
		texts []string
	}{
		{
			name: "drops figure labels misread as persons",
			in: []domain.Entity{
				{Text: "Fig", Label: "PERSON"},
				{Text: "Marie Curie", Label: "PERSON"},
			},
			texts: []string{"Marie Curie"},
		},
		{
			name: "drops bare numbers and short codes as places",
			in: []domain.Entity{
				{Text: "42", Label: "GPE"},
				{Text: "AB", Label: "GPE"},
				{Text: "France", Label: "GPE"},
			},
			texts: []string{"France"},
		},
		{
			name: "trims surrounding punctuation",
			in: []domain.Entity{
				{Text: "  (Paris),", Label: "GPE"},
			},
			texts: []string{"Paris"},
		},
		{
			name: "drops spans shorter than two runes after trimming",
			in: []domain.Entity{
				{Text: "a", Label: "ORG"},
				{Text: "!!", Label: "ORG"},
			},
			texts: []string{},
		},
		{
			name: "same text under different labels survives twice",
			in: []domain.Entity{
				{Text: "Washington", Label: "PERSON"},
				{Text: "Washington", Label: "GPE"},
			},
			texts: []string{"Washington", "Washington"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extract.FilterEntities(tt.in)
			texts := make([]string, 0, len(got))
			for _, e := range got {
				texts = append(texts, e.Text)
			}
			assert.Equal(t, tt.texts, texts)
		})
	}
}

func TestFilterEntities_DedupeKeepsLongestForm(t *testing.T) {
	in := []domain.Entity{
		{Text: "curie", Label: "PERSON"},
		{Text: "Curie", Label: "PERSON"},
		{Text: "OpenAI", Label: "ORG"},
	}

	got := extract.FilterEntities(in)
	assert.Len(t, got, 2)
	assert.Equal(t, "curie", got[0].Text)
	assert.Equal(t, "OpenAI", got[1].Text)
}
