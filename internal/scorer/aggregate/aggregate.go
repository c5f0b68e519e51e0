package aggregate

import (
	"github.com/mzivkovic/ragrank/internal/domain"
	"github.com/mzivkovic/ragrank/pkg/utils"
)

// Weights biases the fusion toward the semantic score: it captures meaning
// where the entity score only captures surface structure.
type Weights struct {
	Entity   float64
	Semantic float64
}

func DefaultWeights() Weights {
	return Weights{Entity: 0.35, Semantic: 0.65}
}

const DefaultRelevanceThreshold = 0.5

// Combiner fuses the two sub-scores into the final verdict. The combination
// is a weighted arithmetic mean: deterministic and monotonic in both inputs.
type Combiner struct {
	weights   Weights
	threshold float64
}

func NewCombiner(weights Weights, threshold float64) *Combiner {
	return &Combiner{weights: weights, threshold: threshold}
}

func NewDefaultCombiner() *Combiner {
	return NewCombiner(DefaultWeights(), DefaultRelevanceThreshold)
}

func (c *Combiner) Combine(entityScore, semanticScore float64) float64 {
	total := c.weights.Entity + c.weights.Semantic
	if total <= 0 {
		return 0
	}

	combined := (c.weights.Entity*domain.ClampScore(entityScore) +
		c.weights.Semantic*domain.ClampScore(semanticScore)) / total

	return utils.RoundDecimal(combined, domain.ScoreDecimalPlaces)
}

// CombinePartial substitutes 0.0 for a missing sub-score so that a passage
// that could not be fully scored is ranked conservatively, never optimistically.
func (c *Combiner) CombinePartial(entityScore, semanticScore *float64) float64 {
	var e, s float64
	if entityScore != nil {
		e = *entityScore
	}
	if semanticScore != nil {
		s = *semanticScore
	}
	return c.Combine(e, s)
}

func (c *Combiner) Relevant(finalScore float64) bool {
	return finalScore >= c.threshold
}
