package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mzivkovic/ragrank/internal/apperr"
	"github.com/mzivkovic/ragrank/internal/domain"
	"github.com/mzivkovic/ragrank/internal/extract"
	"github.com/mzivkovic/ragrank/internal/scorer/aggregate"
	"github.com/mzivkovic/ragrank/pkg/utils"
)

type EntityScorer interface {
	Score(entities []domain.Entity, text string) float64
}

type SemanticScorer interface {
	Score(ctx context.Context, query, passage string) (*domain.SemanticScore, error)
}

type Config struct {
	// MaxConcurrent bounds how many passages are scored at once.
	MaxConcurrent int
}

func DefaultConfig() Config {
	return Config{MaxConcurrent: 4}
}

// Pipeline runs extraction, entity scoring, semantic scoring and fusion per
// candidate, and ranks the batch.
type Pipeline struct {
	extractor extract.Extractor
	cleaner   *extract.Cleaner
	entities  EntityScorer
	semantic  SemanticScorer
	combiner  *aggregate.Combiner
	cfg       Config
}

func New(
	extractor extract.Extractor,
	cleaner *extract.Cleaner,
	entities EntityScorer,
	semantic SemanticScorer,
	combiner *aggregate.Combiner,
	cfg Config,
) *Pipeline {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}
	return &Pipeline{
		extractor: extractor,
		cleaner:   cleaner,
		entities:  entities,
		semantic:  semantic,
		combiner:  combiner,
		cfg:       cfg,
	}
}

// Evaluate scores every candidate and returns exactly one result per input,
// ordered by final score descending. Ties keep the original retrieval order.
// Per-candidate failures are folded into the results, never dropped.
func (p *Pipeline) Evaluate(ctx context.Context, query string, passages []domain.Passage) ([]domain.Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperr.NewValidation("query must not be empty")
	}
	if len(passages) == 0 {
		return []domain.Result{}, nil
	}

	results := make([]domain.Result, len(passages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.MaxConcurrent)

	for i := range passages {
		g.Go(func() error {
			results[i] = p.scorePassage(gctx, query, passages[i])
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FinalScore > results[j].FinalScore
	})
	for i := range results {
		results[i].Rank = i + 1
	}

	return results, nil
}

func (p *Pipeline) scorePassage(ctx context.Context, query string, passage domain.Passage) domain.Result {
	res := domain.Result{
		Passage: passage,
		Status:  domain.StatusScored,
	}

	var (
		wg       sync.WaitGroup
		entScore *domain.EntityScore
		entErr   error
		semScore *domain.SemanticScore
		semErr   error
	)

	// The two sub-scores are independent; compute them concurrently.
	wg.Add(2)
	go func() {
		defer wg.Done()
		entScore, entErr = p.entityScore(ctx, passage.Text)
	}()
	go func() {
		defer wg.Done()
		semScore, semErr = p.semantic.Score(ctx, query, passage.Text)
	}()
	wg.Wait()

	var entVal, semVal *float64
	var failures []string

	if entErr != nil {
		failures = append(failures, "entity: "+entErr.Error())
		slog.Warn("entity scoring failed for passage", "passage", passage.ID, "error", entErr)
	} else {
		res.Entity = entScore
		entVal = &entScore.Value
	}

	if semErr != nil {
		failures = append(failures, "semantic: "+semErr.Error())
		slog.Warn("semantic scoring failed for passage", "passage", passage.ID, "error", semErr)
	} else {
		res.Semantic = semScore
		semVal = &semScore.Value
	}

	if len(failures) > 0 {
		res.Status = domain.StatusPartialFailure
		res.Failure = strings.Join(failures, "; ")
	}

	res.FinalScore = p.combiner.CombinePartial(entVal, semVal)
	res.Relevant = p.combiner.Relevant(res.FinalScore)
	return res
}

func (p *Pipeline) entityScore(ctx context.Context, text string) (*domain.EntityScore, error) {
	cleaned := text
	if p.cleaner != nil {
		cleaned = p.cleaner.Clean(text)
	}

	// Nothing left after cleaning means nothing to extract: a valid zero
	// score, not a failure.
	if cleaned == "" {
		return &domain.EntityScore{
			Value:    0.0,
			Entities: []domain.Entity{},
			Model:    p.extractor.Model(),
		}, nil
	}

	entities, err := p.extractor.Extract(ctx, cleaned)
	if err != nil {
		return nil, err
	}

	model := p.extractor.Model()
	if len(entities) > 0 {
		model = entities[0].Model
	}

	return &domain.EntityScore{
		Value:    utils.RoundDecimal(p.entities.Score(entities, cleaned), domain.ScoreDecimalPlaces),
		Entities: entities,
		Model:    model,
	}, nil
}
