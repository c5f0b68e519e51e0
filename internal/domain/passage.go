package domain

import (
	"github.com/google/uuid"
)

// Passage is one retrieved candidate under evaluation. Metadata is opaque
// upstream data and is passed through untouched.
type Passage struct {
	ID             uuid.UUID      `json:"id"`
	Text           string         `json:"text"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	RetrievalRank  int            `json:"retrieval_rank"`
	RetrievalScore float64        `json:"retrieval_score,omitempty"`
}

// Entity is a named span recognized in a passage. Confidence is nil when the
// producing model does not emit one (the statistical fallback does not).
type Entity struct {
	Text       string   `json:"text"`
	Label      string   `json:"label"`
	Confidence *float64 `json:"confidence,omitempty"`
	Model      string   `json:"model"`
}

// EntityScore is the structural sub-score for one passage, together with the
// entities it was derived from and the extractor variant that served the call.
type EntityScore struct {
	Value    float64  `json:"value"`
	Entities []Entity `json:"entities"`
	Model    string   `json:"model"`
}

// SemanticScore is the model-judged relevance sub-score. Raw keeps the
// unparsed model response for diagnostics.
type SemanticScore struct {
	Value float64 `json:"value"`
	Raw   string  `json:"raw,omitempty"`
}
