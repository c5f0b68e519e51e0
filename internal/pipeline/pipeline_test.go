package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzivkovic/ragrank/internal/apperr"
	"github.com/mzivkovic/ragrank/internal/domain"
	"github.com/mzivkovic/ragrank/internal/pipeline"
	"github.com/mzivkovic/ragrank/internal/scorer/aggregate"
	"github.com/mzivkovic/ragrank/internal/scorer/entity"
)

type fakeExtractor struct {
	entities map[string][]domain.Entity
	err      error
	calls    atomic.Int32
}

func (f *fakeExtractor) Extract(_ context.Context, text string) ([]domain.Entity, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.entities[text], nil
}

func (f *fakeExtractor) Model() string { return "fake-ner" }

type fakeSemantic struct {
	scores map[string]float64
	err    error
	calls  atomic.Int32
}

func (f *fakeSemantic) Score(_ context.Context, _, passage string) (*domain.SemanticScore, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.scores[passage]
	if !ok {
		v = 0.5
	}
	return &domain.SemanticScore{Value: v, Raw: fmt.Sprintf("score: %.3f", v)}, nil
}

func passages(texts ...string) []domain.Passage {
	out := make([]domain.Passage, len(texts))
	for i, t := range texts {
		out[i] = domain.Passage{ID: uuid.New(), Text: t, RetrievalRank: i + 1}
	}
	return out
}

func newPipeline(ex *fakeExtractor, sem *fakeSemantic) *pipeline.Pipeline {
	return pipeline.New(
		ex,
		nil,
		entity.NewScorer(entity.DefaultConfig()),
		sem,
		aggregate.NewDefaultCombiner(),
		pipeline.DefaultConfig(),
	)
}

func TestEvaluate_OneResultPerCandidate(t *testing.T) {
	ex := &fakeExtractor{entities: map[string][]domain.Entity{}}
	sem := &fakeSemantic{scores: map[string]float64{}}
	p := newPipeline(ex, sem)

	in := passages(
		"Paris is the capital of France.",
		"Grass is green.",
		"The Treaty of Rome was signed in 1957.",
	)

	results, err := p.Evaluate(context.Background(), "capital of France", in)
	require.NoError(t, err)
	require.Len(t, results, len(in))

	seen := map[uuid.UUID]bool{}
	for _, r := range results {
		seen[r.Passage.ID] = true
	}
	assert.Len(t, seen, len(in), "every input passage must appear exactly once")
}

func TestEvaluate_RanksBySemanticScore(t *testing.T) {
	ex := &fakeExtractor{entities: map[string][]domain.Entity{}}
	sem := &fakeSemantic{scores: map[string]float64{
		"weak":   0.1,
		"medium": 0.5,
		"strong": 0.9,
	}}
	p := newPipeline(ex, sem)

	results, err := p.Evaluate(context.Background(), "q", passages("weak", "strong", "medium"))
	require.NoError(t, err)

	assert.Equal(t, "strong", results[0].Passage.Text)
	assert.Equal(t, "medium", results[1].Passage.Text)
	assert.Equal(t, "weak", results[2].Passage.Text)

	for i, r := range results {
		assert.Equal(t, i+1, r.Rank)
	}
}

func TestEvaluate_TiesKeepRetrievalOrder(t *testing.T) {
	ex := &fakeExtractor{entities: map[string][]domain.Entity{}}
	sem := &fakeSemantic{scores: map[string]float64{
		"first": 0.7, "second": 0.7, "third": 0.7,
	}}
	p := newPipeline(ex, sem)

	results, err := p.Evaluate(context.Background(), "q", passages("first", "second", "third"))
	require.NoError(t, err)

	assert.Equal(t, "first", results[0].Passage.Text)
	assert.Equal(t, "second", results[1].Passage.Text)
	assert.Equal(t, "third", results[2].Passage.Text)
}

func TestEvaluate_EmptyCandidatesSkipScorers(t *testing.T) {
	ex := &fakeExtractor{}
	sem := &fakeSemantic{}
	p := newPipeline(ex, sem)

	results, err := p.Evaluate(context.Background(), "q", nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, ex.calls.Load())
	assert.Zero(t, sem.calls.Load())
}

func TestEvaluate_EmptyQueryRejected(t *testing.T) {
	p := newPipeline(&fakeExtractor{}, &fakeSemantic{})

	_, err := p.Evaluate(context.Background(), "   ", passages("text"))
	require.Error(t, err)

	var ve *apperr.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestEvaluate_SemanticFailureYieldsPartialResult(t *testing.T) {
	ents := []domain.Entity{
		{Text: "Paris", Label: "GPE", Model: "fake-ner"},
		{Text: "France", Label: "GPE", Model: "fake-ner"},
	}
	ex := &fakeExtractor{entities: map[string][]domain.Entity{
		"Paris is the capital of France.": ents,
	}}
	sem := &fakeSemantic{err: errors.New("model overloaded")}
	p := newPipeline(ex, sem)

	results, err := p.Evaluate(context.Background(), "q", passages("Paris is the capital of France."))
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, domain.StatusPartialFailure, r.Status)
	assert.Contains(t, r.Failure, "semantic")
	assert.Nil(t, r.Semantic)
	require.NotNil(t, r.Entity)

	// The missing sub-score counts as 0.0, so the fused score can only
	// come from the entity side.
	combiner := aggregate.NewDefaultCombiner()
	assert.Equal(t, combiner.Combine(r.Entity.Value, 0.0), r.FinalScore)
}

func TestEvaluate_ExtractionFailureYieldsPartialResult(t *testing.T) {
	ex := &fakeExtractor{err: apperr.NewExtractionUnavailable(errors.New("all models down"))}
	sem := &fakeSemantic{scores: map[string]float64{"some text": 0.8}}
	p := newPipeline(ex, sem)

	results, err := p.Evaluate(context.Background(), "q", passages("some text"))
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, domain.StatusPartialFailure, r.Status)
	assert.Contains(t, r.Failure, "entity")
	assert.Nil(t, r.Entity)
	require.NotNil(t, r.Semantic)

	combiner := aggregate.NewDefaultCombiner()
	assert.Equal(t, combiner.Combine(0.0, 0.8), r.FinalScore)
}

func TestEvaluate_BothFailuresStillProduceResult(t *testing.T) {
	ex := &fakeExtractor{err: errors.New("ner down")}
	sem := &fakeSemantic{err: errors.New("llm down")}
	p := newPipeline(ex, sem)

	results, err := p.Evaluate(context.Background(), "q", passages("text"))
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, domain.StatusPartialFailure, r.Status)
	assert.Equal(t, 0.0, r.FinalScore)
	assert.False(t, r.Relevant)
}

func TestEvaluate_CanceledContextSurfaces(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newPipeline(&fakeExtractor{}, &fakeSemantic{})

	_, err := p.Evaluate(ctx, "q", passages("text"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluate_LargeBatchCompletes(t *testing.T) {
	ex := &fakeExtractor{entities: map[string][]domain.Entity{}}
	sem := &fakeSemantic{scores: map[string]float64{}}
	p := newPipeline(ex, sem)

	texts := make([]string, 50)
	for i := range texts {
		texts[i] = fmt.Sprintf("passage number %d", i)
	}

	results, err := p.Evaluate(context.Background(), "q", passages(texts...))
	require.NoError(t, err)
	assert.Len(t, results, 50)
	assert.Equal(t, int32(50), sem.calls.Load())
}
