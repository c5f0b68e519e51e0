package main

import (
	"bufio"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/mzivkovic/ragrank/internal/domain"
	"github.com/mzivkovic/ragrank/internal/retrieval/es"
	"github.com/mzivkovic/ragrank/pkg/stringsutil"
)

// passageRecord is one JSONL line of the import file.
type passageRecord struct {
	ID      string `json:"id,omitempty"`
	Text    string `json:"text"`
	Source  string `json:"source,omitempty"`
	Section string `json:"section,omitempty"`
}

func main() {
	cfg := parseFlags()
	ctx := context.Background()

	if cfg.FilePath == "" {
		slog.Error("--file is required")
		os.Exit(1)
	}

	parts := strings.Split(cfg.EsAddresses, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}

	indexer, err := es.NewIndexer(ctx, es.ClientConfig{
		Addresses: stringsutil.RemoveEmptyStrings(parts),
		IndexName: cfg.EsIndex,
		Username:  os.Getenv("ES_USERNAME"),
		Password:  os.Getenv("ES_PASSWORD"),
	})
	if err != nil {
		slog.Error("Failed to create indexer", "error", err)
		os.Exit(1)
	}

	file, err := os.Open(cfg.FilePath)
	if err != nil {
		slog.Error("Failed to open passage file", "path", cfg.FilePath, "error", err)
		os.Exit(1)
	}
	defer file.Close()

	total, skipped := 0, 0
	batch := make([]domain.Passage, 0, cfg.BatchSize)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec passageRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			slog.Warn("Skipping malformed line", "error", err)
			skipped++
			continue
		}
		if rec.Text == "" {
			skipped++
			continue
		}

		batch = append(batch, toPassage(rec))

		if len(batch) >= cfg.BatchSize {
			if err := indexer.SaveBulk(ctx, batch); err != nil {
				slog.Error("Bulk indexing failed", "error", err)
				os.Exit(1)
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		slog.Error("Failed to read passage file", "error", err)
		os.Exit(1)
	}

	if len(batch) > 0 {
		if err := indexer.SaveBulk(ctx, batch); err != nil {
			slog.Error("Bulk indexing failed", "error", err)
			os.Exit(1)
		}
		total += len(batch)
	}

	slog.Info("Passage import completed", "indexed", total, "skipped", skipped, "index", cfg.EsIndex)
}

func toPassage(rec passageRecord) domain.Passage {
	id := uuid.New()
	if rec.ID != "" {
		if parsed, err := uuid.Parse(rec.ID); err == nil {
			id = parsed
		}
	}

	metadata := map[string]any{}
	if rec.Source != "" {
		metadata["source"] = rec.Source
	}
	if rec.Section != "" {
		metadata["section"] = rec.Section
	}

	return domain.Passage{
		ID:       id,
		Text:     rec.Text,
		Metadata: metadata,
	}
}
