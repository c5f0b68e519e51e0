package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mzivkovic/ragrank/internal/domain"
)

const minEntityLength = 2

// Figure and table labels in scientific passages get misread as names, and
// bare numbers or single letters as places.
var excludePatterns = map[string][]*regexp.Regexp{
	"PERSON": {
		regexp.MustCompile(`^Fig$`),
		regexp.MustCompile(`^Table$`),
		regexp.MustCompile(`^mA$`),
		regexp.MustCompile(`^\d+$`),
	},
	"ORG": {
		regexp.MustCompile(`^Table\s+\d+$`),
		regexp.MustCompile(`^Fig\s+\d+$`),
	},
	"GPE": {
		regexp.MustCompile(`^\d+$`),
		regexp.MustCompile(`^[A-Z]{1,3}$`),
	},
}

var entityTrimRe = regexp.MustCompile(`^[^\p{L}\p{N}]+|[^\p{L}\p{N}]+$`)

// FilterEntities drops misrecognized spans, trims surrounding punctuation and
// deduplicates per label keeping the longest surface form.
func FilterEntities(entities []domain.Entity) []domain.Entity {
	filtered := make([]domain.Entity, 0, len(entities))

	for _, e := range entities {
		text := cleanEntityText(e.Text)
		if text == "" {
			continue
		}

		if excluded(text, e.Label) {
			continue
		}

		e.Text = text
		filtered = append(filtered, e)
	}

	return dedupeEntities(filtered)
}

func cleanEntityText(text string) string {
	text = entityTrimRe.ReplaceAllString(strings.TrimSpace(text), "")
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) < minEntityLength {
		return ""
	}
	return text
}

func excluded(text, label string) bool {
	for _, re := range excludePatterns[label] {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func dedupeEntities(entities []domain.Entity) []domain.Entity {
	type key struct {
		label string
		text  string
	}

	best := make(map[key]int)
	var order []key

	for i, e := range entities {
		k := key{label: e.Label, text: strings.ToLower(e.Text)}
		if j, ok := best[k]; ok {
			if len(e.Text) > len(entities[j].Text) {
				best[k] = i
			}
			continue
		}
		best[k] = i
		order = append(order, k)
	}

	deduped := make([]domain.Entity, 0, len(order))
	for _, k := range order {
		deduped = append(deduped, entities[best[k]])
	}
	return deduped
}
