package entity

import (
	"strings"
	"unicode/utf8"

	"github.com/mzivkovic/ragrank/internal/domain"
)

// Weights for the three sub-metrics. They are normalized before use, so any
// positive values work.
type Weights struct {
	Density    float64
	Diversity  float64
	Confidence float64
}

type Config struct {
	// DensityThreshold is the entities-per-character density at which the
	// density sub-metric saturates at 1.0.
	DensityThreshold float64

	// ExpectedTypes is the type vocabulary the diversity sub-metric is
	// measured against.
	ExpectedTypes []string

	// NeutralConfidence substitutes for entities whose producing model emits
	// no confidence.
	NeutralConfidence float64

	Weights Weights
}

func DefaultConfig() Config {
	return Config{
		DensityThreshold:  0.05,
		ExpectedTypes:     []string{"PERSON", "ORG", "LOCATION", "GPE", "DATE", "MONEY", "PERCENT"},
		NeutralConfidence: 0.5,
		Weights: Weights{
			Density:    0.3,
			Diversity:  0.3,
			Confidence: 0.4,
		},
	}
}

// Scorer converts an extracted entity list into a structural quality score.
type Scorer struct {
	cfg      Config
	expected map[string]struct{}
}

func NewScorer(cfg Config) *Scorer {
	expected := make(map[string]struct{}, len(cfg.ExpectedTypes))
	for _, t := range cfg.ExpectedTypes {
		expected[strings.ToUpper(t)] = struct{}{}
	}
	return &Scorer{cfg: cfg, expected: expected}
}

// Score returns a value in [0, 1]. Zero entities is a valid low-quality
// signal and scores exactly 0.0.
func (s *Scorer) Score(entities []domain.Entity, text string) float64 {
	if len(entities) == 0 {
		return 0.0
	}

	density := s.densityScore(entities, text)
	diversity := s.diversityScore(entities)
	confidence := s.confidenceScore(entities)

	w := s.cfg.Weights
	total := w.Density + w.Diversity + w.Confidence
	if total <= 0 {
		return 0.0
	}

	combined := (w.Density*density + w.Diversity*diversity + w.Confidence*confidence) / total
	return domain.ClampScore(combined)
}

func (s *Scorer) densityScore(entities []domain.Entity, text string) float64 {
	length := utf8.RuneCountInString(text)
	if length == 0 {
		return 0.0
	}

	distinct := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		distinct[strings.ToLower(e.Text)] = struct{}{}
	}

	density := float64(len(distinct)) / float64(length)
	if s.cfg.DensityThreshold <= 0 {
		return 1.0
	}

	// Saturates at the threshold instead of growing unbounded.
	return domain.ClampScore(density / s.cfg.DensityThreshold)
}

func (s *Scorer) diversityScore(entities []domain.Entity) float64 {
	if len(s.expected) == 0 {
		return 1.0
	}

	types := make(map[string]struct{})
	for _, e := range entities {
		label := strings.ToUpper(e.Label)
		if _, ok := s.expected[label]; ok {
			types[label] = struct{}{}
		}
	}

	return domain.ClampScore(float64(len(types)) / float64(len(s.expected)))
}

func (s *Scorer) confidenceScore(entities []domain.Entity) float64 {
	var sum float64
	for _, e := range entities {
		if e.Confidence != nil {
			sum += domain.ClampScore(*e.Confidence)
		} else {
			sum += s.cfg.NeutralConfidence
		}
	}
	return domain.ClampScore(sum / float64(len(entities)))
}
