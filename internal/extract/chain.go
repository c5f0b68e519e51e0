package extract

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mzivkovic/ragrank/internal/apperr"
	"github.com/mzivkovic/ragrank/internal/domain"
)

// Chain tries extractor variants in priority order and serves the call from
// the first one that succeeds. Fallback is per-call, not sticky: every call
// starts again from the primary variant.
type Chain struct {
	variants []Extractor
}

func NewChain(variants ...Extractor) (*Chain, error) {
	if len(variants) == 0 {
		return nil, apperr.NewValidation("at least one extractor variant is required")
	}
	return &Chain{variants: variants}, nil
}

func (c *Chain) Model() string {
	return c.variants[0].Model()
}

func (c *Chain) Extract(ctx context.Context, text string) ([]domain.Entity, error) {
	var errs []error

	for i, variant := range c.variants {
		entities, err := variant.Extract(ctx, text)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Warn("extractor variant failed, trying next",
				"model", variant.Model(),
				"variant", i,
				"error", err)
			errs = append(errs, err)
			continue
		}

		for j := range entities {
			if entities[j].Model == "" {
				entities[j].Model = variant.Model()
			}
		}
		return entities, nil
	}

	return nil, apperr.NewExtractionUnavailable(errors.Join(errs...))
}
