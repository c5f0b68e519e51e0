package suite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("valid suite", func(t *testing.T) {
		yaml := `
name: geography
version: "1.0"
queries:
  - id: q1
    description: factoid query
    query: "What is the capital of France?"
    size: 5
  - id: q2
    query: "When was the Treaty of Rome signed?"
`
		loaded, err := Parse([]byte(yaml))
		require.NoError(t, err)
		assert.Equal(t, "geography", loaded.Suite.Name)
		require.Len(t, loaded.Suite.Queries, 2)
		assert.Equal(t, "q1", loaded.Suite.Queries[0].ID)
		assert.Equal(t, 5, loaded.Suite.Queries[0].Size)
		assert.Zero(t, loaded.Suite.Queries[1].Size)
	})

	t.Run("no queries", func(t *testing.T) {
		yaml := `
name: empty
queries: []
`
		_, err := Parse([]byte(yaml))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no queries")
	})

	t.Run("query missing id", func(t *testing.T) {
		yaml := `
name: test
queries:
  - query: "some query"
`
		_, err := Parse([]byte(yaml))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no id")
	})

	t.Run("query missing text", func(t *testing.T) {
		yaml := `
name: test
queries:
  - id: q1
    query: "   "
`
		_, err := Parse([]byte(yaml))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no query text")
	})

	t.Run("duplicate query ids", func(t *testing.T) {
		yaml := `
name: test
queries:
  - id: q1
    query: "first"
  - id: q1
    query: "second"
`
		_, err := Parse([]byte(yaml))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("negative size", func(t *testing.T) {
		yaml := `
name: test
queries:
  - id: q1
    query: "text"
    size: -3
`
		_, err := Parse([]byte(yaml))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "negative size")
	})
}

func TestParse_WithJudgments(t *testing.T) {
	passageID := uuid.New()

	yaml := `
name: judged suite
version: "1.0"
queries:
  - id: q1
    query: "capital of France"
    judgments:
      - passage_id: ` + passageID.String() + `
        relevant: true
`
	loaded, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.Len(t, loaded.Suite.Queries[0].Judgments, 1)
	assert.Equal(t, passageID, loaded.Suite.Queries[0].Judgments[0].PassageID)
	assert.True(t, loaded.Suite.Queries[0].Judgments[0].Relevant)
}

func TestQuery_JudgmentMap(t *testing.T) {
	id1 := uuid.New()
	id2 := uuid.New()

	q := Query{
		Judgments: []RelevanceJudgment{
			{PassageID: id1, Relevant: true},
			{PassageID: id2, Relevant: false},
		},
	}

	m := q.JudgmentMap()
	assert.True(t, m[id1])
	assert.False(t, m[id2])
}

func TestLoadFromFile_SetsDir(t *testing.T) {
	dir := t.TempDir()
	suiteFile := filepath.Join(dir, "suite.yaml")
	content := `
name: test
version: "1.0"
queries:
  - id: q1
    query: "capital of France"
`
	require.NoError(t, os.WriteFile(suiteFile, []byte(content), 0644))

	loaded, err := LoadFromFile(suiteFile)
	require.NoError(t, err)
	assert.Equal(t, dir, loaded.Dir)
}
