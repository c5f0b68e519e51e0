package domain

import (
	"time"

	"github.com/google/uuid"
)

type ResultStatus string

const (
	StatusScored         ResultStatus = "scored"
	StatusPartialFailure ResultStatus = "partial-failure"
)

// Result is the aggregate verdict for one passage. Exactly one Result exists
// per evaluated passage; a failed sub-score leaves the pointer nil and the
// status set to StatusPartialFailure with the reason recorded.
type Result struct {
	Passage  Passage        `json:"passage"`
	Entity   *EntityScore   `json:"entity_score,omitempty"`
	Semantic *SemanticScore `json:"semantic_score,omitempty"`

	FinalScore float64      `json:"final_score"`
	Relevant   bool         `json:"relevant"`
	Rank       int          `json:"rank"`
	Status     ResultStatus `json:"status"`
	Failure    string       `json:"failure,omitempty"`
}

// EvaluationRun groups the ranked results of a single evaluate call for
// persistence and reporting.
type EvaluationRun struct {
	ID        uuid.UUID `json:"id"`
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"created_at"`
	Results   []Result  `json:"results"`
}
