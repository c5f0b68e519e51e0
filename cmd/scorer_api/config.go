package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mzivkovic/ragrank/internal/extract"
	"github.com/mzivkovic/ragrank/internal/llm"
	"github.com/mzivkovic/ragrank/internal/retrieval/es"
	"github.com/mzivkovic/ragrank/pkg/config/env"
	"github.com/mzivkovic/ragrank/pkg/stringsutil"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type ScorerAPIConfig struct {
	Extract *extract.Config
	LLM     *llm.Config

	// ES is nil when no retrieval backend is configured; the API then only
	// accepts inline passages.
	ES *es.ClientConfig

	DatabaseURL string
	ResultsDir  string

	MaxConcurrent int
	CacheTTL      time.Duration
}

func (as *AppConfig) Load() (*ScorerAPIConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/scorer_api/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	extractCfg, err := extract.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}

	llmCfg, err := llm.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}

	cfg := &ScorerAPIConfig{
		Extract:       extractCfg,
		LLM:           llmCfg,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		ResultsDir:    os.Getenv("RESULTS_DIR"),
		MaxConcurrent: 4,
	}

	if raw := os.Getenv("MAX_CONCURRENT"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			cfg.MaxConcurrent = v
		}
	}

	if raw := os.Getenv("SEMANTIC_CACHE_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cfg.CacheTTL = d
		}
	}

	if addresses := os.Getenv("ES_ADDRESSES"); addresses != "" {
		parts := strings.Split(addresses, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}

		index := os.Getenv("ES_INDEX")
		if index == "" {
			index = "passages"
		}

		cfg.ES = &es.ClientConfig{
			Addresses: stringsutil.RemoveEmptyStrings(parts),
			IndexName: index,
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
	}

	return cfg, nil
}
