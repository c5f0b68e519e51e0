package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzivkovic/ragrank/internal/domain"
)

func TestJsonFileStorer_SaveRun(t *testing.T) {
	dir := t.TempDir()
	storer := NewJsonFileStorer(filepath.Join(dir, "runs"))

	run := domain.EvaluationRun{
		ID:    uuid.New(),
		Query: "capital of France",
		Results: []domain.Result{
			{
				Passage:    domain.Passage{ID: uuid.New(), Text: "Paris is the capital of France."},
				FinalScore: 0.85,
				Relevant:   true,
				Rank:       1,
				Status:     domain.StatusScored,
			},
		},
	}

	require.NoError(t, storer.SaveRun(context.Background(), run))

	path := filepath.Join(dir, "runs", "run_"+run.ID.String()+".json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded domain.EvaluationRun
	require.NoError(t, json.Unmarshal(data, &loaded))

	assert.Equal(t, run.ID, loaded.ID)
	assert.Equal(t, run.Query, loaded.Query)
	require.Len(t, loaded.Results, 1)
	assert.Equal(t, 1, loaded.Results[0].Rank)
	assert.InDelta(t, 0.85, loaded.Results[0].FinalScore, 1e-9)
}

func TestJsonFileStorer_AssignsIDAndTimestamp(t *testing.T) {
	dir := t.TempDir()
	storer := NewJsonFileStorer(dir)

	require.NoError(t, storer.SaveRun(context.Background(), domain.EvaluationRun{Query: "q"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)

	var loaded domain.EvaluationRun
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.NotEqual(t, uuid.Nil, loaded.ID)
	assert.False(t, loaded.CreatedAt.IsZero())
}
