package extract_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzivkovic/ragrank/internal/apperr"
	"github.com/mzivkovic/ragrank/internal/domain"
	"github.com/mzivkovic/ragrank/internal/extract"
)

type fakeExtractor struct {
	model    string
	entities []domain.Entity
	err      error
	calls    int
}

func (f *fakeExtractor) Model() string { return f.model }

func (f *fakeExtractor) Extract(_ context.Context, _ string) ([]domain.Entity, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.entities, nil
}

func TestChain_PrimaryServesCall(t *testing.T) {
	primary := &fakeExtractor{
		model:    "transformer",
		entities: []domain.Entity{{Text: "Paris", Label: "GPE"}},
	}
	fallback := &fakeExtractor{model: "statistical"}

	chain, err := extract.NewChain(primary, fallback)
	require.NoError(t, err)

	entities, err := chain.Extract(context.Background(), "Paris is nice")
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "transformer", entities[0].Model)
	assert.Zero(t, fallback.calls)
}

func TestChain_FallbackTagsEntities(t *testing.T) {
	primary := &fakeExtractor{model: "transformer", err: fmt.Errorf("model not loaded")}
	fallback := &fakeExtractor{
		model:    "statistical",
		entities: []domain.Entity{{Text: "France", Label: "GPE"}},
	}

	chain, err := extract.NewChain(primary, fallback)
	require.NoError(t, err)

	entities, err := chain.Extract(context.Background(), "France")
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "statistical", entities[0].Model, "fallback-derived entities must be distinguishable")
}

func TestChain_FallbackIsNotSticky(t *testing.T) {
	primary := &fakeExtractor{model: "transformer", err: fmt.Errorf("timeout")}
	fallback := &fakeExtractor{model: "statistical"}

	chain, err := extract.NewChain(primary, fallback)
	require.NoError(t, err)

	_, err = chain.Extract(context.Background(), "first call")
	require.NoError(t, err)

	// Primary recovers; the next call must go to it again.
	primary.err = nil
	primary.entities = []domain.Entity{{Text: "Berlin", Label: "GPE"}}

	entities, err := chain.Extract(context.Background(), "second call")
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "transformer", entities[0].Model)
	assert.Equal(t, 2, primary.calls)
}

func TestChain_AllVariantsFail(t *testing.T) {
	primary := &fakeExtractor{model: "transformer", err: fmt.Errorf("down")}
	fallback := &fakeExtractor{model: "statistical", err: fmt.Errorf("also down")}

	chain, err := extract.NewChain(primary, fallback)
	require.NoError(t, err)

	_, err = chain.Extract(context.Background(), "text")
	require.Error(t, err)

	var ee *apperr.ExtractionUnavailableError
	assert.True(t, errors.As(err, &ee), "expected ExtractionUnavailableError, got %T", err)
}

func TestChain_CanceledContextSurfaces(t *testing.T) {
	primary := &fakeExtractor{model: "transformer", err: context.Canceled}
	fallback := &fakeExtractor{model: "statistical"}

	chain, err := extract.NewChain(primary, fallback)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = chain.Extract(ctx, "text")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, fallback.calls, "fallback must not run once the context is gone")
}

func TestNewChain_RequiresVariant(t *testing.T) {
	_, err := extract.NewChain()

	var ve *apperr.ValidationError
	assert.True(t, errors.As(err, &ve))
}
