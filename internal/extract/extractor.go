package extract

import (
	"context"

	"github.com/mzivkovic/ragrank/internal/domain"
)

// Extractor is one entity-recognition model variant.
type Extractor interface {
	// Extract returns the entities recognized in text. An empty result is
	// valid; an error means this variant could not serve the call.
	Extract(ctx context.Context, text string) ([]domain.Entity, error)

	// Model identifies the variant for result tagging.
	Model() string
}
