package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/operator"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/google/uuid"

	"github.com/mzivkovic/ragrank/internal/domain"
	"github.com/mzivkovic/ragrank/internal/retrieval"
)

const DefaultSearchSize = 10

// Fields searched for candidates, with boosts. Passage text dominates;
// the source name contributes a small amount.
var searchFields = []string{"text^2.0", "source"}

type Searcher struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewSearcher(config ClientConfig) (*Searcher, error) {
	client, err := newClient(config)

	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	return &Searcher{
		client:    client,
		indexName: config.IndexName,
	}, nil
}

// Search performs a BM25 multi_match query and returns the top candidates in
// retrieval order with their raw backend scores attached.
func (r *Searcher) Search(ctx context.Context, query string, size int) ([]domain.Passage, error) {
	if size <= 0 {
		size = DefaultSearchSize
	}

	slog.Info("executing es multi_match search",
		"query", query,
		"fields", searchFields,
		"size", size)

	or := operator.Or
	multiMatch := &types.MultiMatchQuery{
		Query:    query,
		Fields:   searchFields,
		Operator: &or,
	}

	sortOrderDesc := sortorder.Desc
	searchReq := r.client.Search().
		Index(r.indexName).
		Query(&types.Query{
			MultiMatch: multiMatch,
		}).
		Size(size).
		TrackScores(true).
		Sort(
			&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					"_score": {Order: &sortOrderDesc},
				},
			},
			&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					"id": {Order: &sortOrderDesc},
				},
			},
		)

	res, err := searchReq.Do(ctx)
	if err != nil {
		slog.Error("elasticsearch query failed", "error", err, "query", query)
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}

	passages, err := r.mapToPassages(res.Hits.Hits)
	if err != nil {
		return nil, fmt.Errorf("failed to map search hits: %w", err)
	}

	slog.Info("es search results fetched",
		"total_matches", res.Hits.Total.Value,
		"returned_count", len(passages))

	return passages, nil
}

func (r *Searcher) mapToPassages(hits []types.Hit) ([]domain.Passage, error) {
	passages := make([]domain.Passage, 0, len(hits))

	for i, hit := range hits {
		var doc PassageDocument
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}

		id, err := uuid.Parse(doc.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse passage ID: %w", err)
		}

		passage := domain.Passage{
			ID:            id,
			Text:          doc.Text,
			RetrievalRank: i + 1,
			Metadata: map[string]any{
				"source":  doc.Source,
				"section": doc.Section,
			},
		}
		if hit.Score_ != nil {
			passage.RetrievalScore = float64(*hit.Score_)
		}

		passages = append(passages, passage)
	}

	return passages, nil
}

// Compile-time interface assertion
var _ retrieval.Retriever = (*Searcher)(nil)
