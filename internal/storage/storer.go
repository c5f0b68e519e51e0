package storage

import (
	"context"

	"github.com/mzivkovic/ragrank/internal/domain"
)

// RunStorer persists a completed evaluation run with its ranked results.
type RunStorer interface {
	SaveRun(ctx context.Context, run domain.EvaluationRun) error
}
