package extract

import (
	"html"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

type CleanConfig struct {
	RemoveHTMLTags        bool
	RemoveURLs            bool
	RemoveEmails          bool
	NormalizeUnicode      bool
	CollapseWhitespace    bool
	MinTextLength         int
	MaxTextLength         int
	RemoveFigureArtifacts bool
}

func DefaultCleanConfig() CleanConfig {
	return CleanConfig{
		RemoveHTMLTags:        true,
		RemoveURLs:            true,
		RemoveEmails:          true,
		NormalizeUnicode:      true,
		CollapseWhitespace:    true,
		MinTextLength:         10,
		MaxTextLength:         10000,
		RemoveFigureArtifacts: true,
	}
}

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	urlRe        = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)
	emailRe      = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	whitespaceRe = regexp.MustCompile(`\s+`)

	// Figure/table markers common in PDF-extracted passages. They carry no
	// entities and confuse the recognizers.
	artifactRes = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<<img>>.*?<</img>>`),
		regexp.MustCompile(`(?i)\[Fig\.\s*\d+\]`),
		regexp.MustCompile(`(?i)\[Table\s*\d+\]`),
	}
)

// Cleaner prepares raw passage text for entity extraction.
type Cleaner struct {
	cfg CleanConfig
}

func NewCleaner(cfg CleanConfig) *Cleaner {
	return &Cleaner{cfg: cfg}
}

// Clean returns the sanitized text. A result shorter than MinTextLength is
// collapsed to the empty string: too little survives to extract from.
func (c *Cleaner) Clean(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	// Artifact markers must go before tag stripping, which would otherwise
	// eat their delimiters and leave the payload behind.
	if c.cfg.RemoveFigureArtifacts {
		for _, re := range artifactRes {
			text = re.ReplaceAllString(text, " ")
		}
	}

	if c.cfg.RemoveHTMLTags {
		text = htmlTagRe.ReplaceAllString(text, " ")
		text = html.UnescapeString(text)
	}

	if c.cfg.RemoveURLs {
		text = urlRe.ReplaceAllString(text, " ")
	}

	if c.cfg.RemoveEmails {
		text = emailRe.ReplaceAllString(text, " ")
	}

	if c.cfg.NormalizeUnicode {
		text = norm.NFKC.String(text)
	}

	if c.cfg.CollapseWhitespace {
		text = whitespaceRe.ReplaceAllString(text, " ")
	}

	text = strings.TrimSpace(text)

	if c.cfg.MinTextLength > 0 && len(text) < c.cfg.MinTextLength {
		return ""
	}
	if c.cfg.MaxTextLength > 0 && len(text) > c.cfg.MaxTextLength {
		text = strings.TrimSpace(text[:c.cfg.MaxTextLength])
	}

	return text
}
