package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mzivkovic/ragrank/internal/domain"
)

// JsonFileStorer writes each evaluation run to its own pretty-printed JSON
// file under a directory. Useful for local runs without a database.
type JsonFileStorer struct {
	dir string
}

func NewJsonFileStorer(dir string) *JsonFileStorer {
	return &JsonFileStorer{dir: dir}
}

func (s *JsonFileStorer) SaveRun(ctx context.Context, run domain.EvaluationRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal evaluation run: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("run_%s.json", run.ID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write evaluation run: %w", err)
	}

	slog.Info("evaluation run saved", "path", path, "results", len(run.Results))
	return nil
}

// Compile-time interface assertion
var _ RunStorer = (*JsonFileStorer)(nil)
