package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mzivkovic/ragrank/internal/domain"
)

func TestCleaner_Clean(t *testing.T) {
	cleaner := NewCleaner(DefaultCleanConfig())

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips html tags and entities",
			in:   "<p>Paris &amp; London are capital cities</p>",
			want: "Paris & London are capital cities",
		},
		{
			name: "removes figure artifacts",
			in:   "The ablation rate was 25 nm <<img>>line chart of depth<</img>> per shot [Fig. 4] as measured",
			want: "The ablation rate was 25 nm per shot as measured",
		},
		{
			name: "removes urls and emails",
			in:   "Contact admin@example.com or see https://example.com/docs for the full Paris report",
			want: "Contact or see for the full Paris report",
		},
		{
			name: "collapses whitespace",
			in:   "Paris   is\n\n the  capital",
			want: "Paris is the capital",
		},
		{
			name: "too short collapses to empty",
			in:   "Paris",
			want: "",
		},
		{
			name: "empty input",
			in:   "   ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleaner.Clean(tt.in))
		})
	}
}

func TestCleaner_TruncatesLongText(t *testing.T) {
	cfg := DefaultCleanConfig()
	cfg.MaxTextLength = 50
	cleaner := NewCleaner(cfg)

	long := strings.Repeat("Paris is the capital of France. ", 10)
	got := cleaner.Clean(long)

	assert.LessOrEqual(t, len(got), 50)
	assert.NotEmpty(t, got)
}

func TestFilterEntities(t *testing.T) {
	entities := []domain.Entity{
		{Text: "Fig", Label: "PERSON"},
		{Text: "7", Label: "GPE"},
		{Text: "Marie Curie", Label: "PERSON"},
		{Text: "  Paris,", Label: "GPE"},
		{Text: "X", Label: "ORG"},
	}

	got := FilterEntities(entities)

	var texts []string
	for _, e := range got {
		texts = append(texts, e.Text)
	}

	assert.NotContains(t, texts, "Fig", "figure labels misread as PERSON must be dropped")
	assert.NotContains(t, texts, "7", "bare numbers misread as GPE must be dropped")
	assert.NotContains(t, texts, "X", "single letters are below the minimum entity length")
	assert.Contains(t, texts, "Marie Curie")
	assert.Contains(t, texts, "Paris", "surrounding punctuation must be trimmed")
}

func TestFilterEntities_DedupesKeepingLongest(t *testing.T) {
	entities := []domain.Entity{
		{Text: "TSMC", Label: "ORG"},
		{Text: "tsmc", Label: "ORG"},
		{Text: "Taiwan Semiconductor", Label: "ORG"},
	}

	got := FilterEntities(entities)

	assert.Len(t, got, 2)
}
