package suite

import "github.com/google/uuid"

// EvaluationSuite is a YAML-defined batch of queries to score against the
// candidate index.
type EvaluationSuite struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Version     string  `yaml:"version"`
	Queries     []Query `yaml:"queries"`
}

type Query struct {
	ID          string              `yaml:"id"`
	Description string              `yaml:"description"`
	Query       string              `yaml:"query"`
	Size        int                 `yaml:"size,omitempty"`
	Judgments   []RelevanceJudgment `yaml:"judgments,omitempty"`
}

// RelevanceJudgment is a human label for a passage, used to sanity-check the
// engine's verdicts after a run.
type RelevanceJudgment struct {
	PassageID uuid.UUID `yaml:"passage_id"`
	Relevant  bool      `yaml:"relevant"`
}

// JudgmentMap converts the judgments slice to a map keyed by passage ID.
func (q *Query) JudgmentMap() map[uuid.UUID]bool {
	m := make(map[uuid.UUID]bool, len(q.Judgments))
	for _, j := range q.Judgments {
		m[j.PassageID] = j.Relevant
	}
	return m
}
