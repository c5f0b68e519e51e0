package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mzivkovic/ragrank/internal/domain"
	"github.com/mzivkovic/ragrank/internal/extract"
	"github.com/mzivkovic/ragrank/internal/llm"
	"github.com/mzivkovic/ragrank/internal/pipeline"
	"github.com/mzivkovic/ragrank/internal/report"
	"github.com/mzivkovic/ragrank/internal/retrieval"
	"github.com/mzivkovic/ragrank/internal/retrieval/es"
	"github.com/mzivkovic/ragrank/internal/scorer/aggregate"
	"github.com/mzivkovic/ragrank/internal/scorer/entity"
	"github.com/mzivkovic/ragrank/internal/scorer/semantic"
	"github.com/mzivkovic/ragrank/internal/storage"
	"github.com/mzivkovic/ragrank/internal/suite"
	"github.com/mzivkovic/ragrank/pkg/config/env"
	"github.com/mzivkovic/ragrank/pkg/stringsutil"
)

func main() {
	cfg := parseFlags()
	ctx := context.Background()

	if cfg.SuitePath == "" && cfg.Query == "" {
		slog.Error("Either --suite or --query is required")
		os.Exit(1)
	}

	if err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/evaluate/.env"); err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		slog.Error("Failed to build scoring pipeline", "error", err)
		os.Exit(1)
	}

	retriever, err := buildRetriever(cfg)
	if err != nil {
		slog.Error("Failed to create retriever", "error", err)
		os.Exit(1)
	}

	var storer storage.RunStorer
	if cfg.Output != "" {
		storer = storage.NewJsonFileStorer(cfg.Output)
	}

	queries, err := collectQueries(cfg)
	if err != nil {
		slog.Error("Failed to load evaluation suite", "path", cfg.SuitePath, "error", err)
		os.Exit(1)
	}

	failed := 0
	for _, q := range queries {
		if err := evaluateQuery(ctx, p, retriever, storer, q); err != nil {
			slog.Error("Query evaluation failed", "id", q.ID, "error", err)
			failed++
		}
	}

	if failed > 0 {
		slog.Error("Evaluation finished with failures", "failed", failed, "total", len(queries))
		os.Exit(1)
	}
}

func buildPipeline(cfg cliConfig) (*pipeline.Pipeline, error) {
	extractCfg, err := extract.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}

	extractor, err := extract.NewFromConfig(extractCfg)
	if err != nil {
		return nil, err
	}

	llmCfg, err := llm.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}

	llmClient, err := llm.NewFromConfig(llmCfg)
	if err != nil {
		return nil, err
	}

	semCfg := semantic.DefaultConfig()
	semCfg.Model = llmCfg.Model

	return pipeline.New(
		extractor,
		extract.NewCleaner(extract.DefaultCleanConfig()),
		entity.NewScorer(entity.DefaultConfig()),
		semantic.NewScorer(llmClient, semCfg),
		aggregate.NewDefaultCombiner(),
		pipeline.Config{MaxConcurrent: cfg.Concurrency},
	), nil
}

func buildRetriever(cfg cliConfig) (retrieval.Retriever, error) {
	parts := strings.Split(cfg.EsAddresses, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}

	return es.NewSearcher(es.ClientConfig{
		Addresses: stringsutil.RemoveEmptyStrings(parts),
		IndexName: cfg.EsIndex,
		Username:  os.Getenv("ES_USERNAME"),
		Password:  os.Getenv("ES_PASSWORD"),
	})
}

func collectQueries(cfg cliConfig) ([]suite.Query, error) {
	if cfg.SuitePath == "" {
		return []suite.Query{{ID: "quick", Query: cfg.Query, Size: cfg.Size}}, nil
	}

	loaded, err := suite.LoadFromFile(cfg.SuitePath)
	if err != nil {
		return nil, err
	}

	slog.Info("Evaluation suite loaded",
		"name", loaded.Suite.Name,
		"queries", len(loaded.Suite.Queries))

	queries := loaded.Suite.Queries
	for i := range queries {
		if queries[i].Size == 0 {
			queries[i].Size = cfg.Size
		}
	}
	return queries, nil
}

func evaluateQuery(
	ctx context.Context,
	p *pipeline.Pipeline,
	retriever retrieval.Retriever,
	storer storage.RunStorer,
	q suite.Query,
) error {
	slog.Info("Evaluating query", "id", q.ID, "query", q.Query, "size", q.Size)

	passages, err := retriever.Search(ctx, q.Query, q.Size)
	if err != nil {
		return err
	}

	results, err := p.Evaluate(ctx, q.Query, passages)
	if err != nil {
		return err
	}

	run := domain.EvaluationRun{
		ID:        uuid.New(),
		Query:     q.Query,
		CreatedAt: time.Now(),
		Results:   results,
	}
	report.WriteTable(&run, os.Stdout)

	if storer != nil {
		if err := storer.SaveRun(ctx, run); err != nil {
			return err
		}
	}
	return nil
}
