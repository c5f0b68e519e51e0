package retrieval

import (
	"context"

	"github.com/mzivkovic/ragrank/internal/domain"
)

// Retriever fetches candidate passages for a query. Implementations return
// candidates in retrieval order with their backend relevance scores attached.
type Retriever interface {
	Search(ctx context.Context, query string, size int) ([]domain.Passage, error)
}
