package main

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/mzivkovic/ragrank/internal/extract"
	"github.com/mzivkovic/ragrank/internal/llm"
	"github.com/mzivkovic/ragrank/internal/pipeline"
	"github.com/mzivkovic/ragrank/internal/retrieval"
	"github.com/mzivkovic/ragrank/internal/retrieval/es"
	"github.com/mzivkovic/ragrank/internal/router"
	"github.com/mzivkovic/ragrank/internal/scorer/aggregate"
	"github.com/mzivkovic/ragrank/internal/scorer/entity"
	"github.com/mzivkovic/ragrank/internal/scorer/semantic"
	"github.com/mzivkovic/ragrank/internal/server"
	"github.com/mzivkovic/ragrank/internal/storage"
	"github.com/mzivkovic/ragrank/internal/storage/pg"
	pkgserver "github.com/mzivkovic/ragrank/pkg/server"
)

func main() {
	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	healthChecker := pkgserver.NewOkHealthChecker()

	s := server.New(sCfg, healthChecker).
		SetupMiddlewares().
		SetupHealthChecks()

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Ragrank scorer API is running")
	})

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
		return
	}

	extractor, err := extract.NewFromConfig(cfg.Extract)
	if err != nil {
		slog.Error("Failed to build extraction chain", "error", err)
		os.Exit(1)
		return
	}

	llmClient, err := llm.NewFromConfig(cfg.LLM)
	if err != nil {
		slog.Error("Failed to create LLM client", "error", err)
		os.Exit(1)
		return
	}

	semCfg := semantic.DefaultConfig()
	semCfg.Model = cfg.LLM.Model
	semCfg.CacheTTL = cfg.CacheTTL

	p := pipeline.New(
		extractor,
		extract.NewCleaner(extract.DefaultCleanConfig()),
		entity.NewScorer(entity.DefaultConfig()),
		semantic.NewScorer(llmClient, semCfg),
		aggregate.NewDefaultCombiner(),
		pipeline.Config{MaxConcurrent: cfg.MaxConcurrent},
	)

	var retriever retrieval.Retriever
	if cfg.ES != nil {
		searcher, err := es.NewSearcher(*cfg.ES)
		if err != nil {
			slog.Error("Failed to create Elasticsearch searcher", "error", err)
			os.Exit(1)
			return
		}
		retriever = searcher
	}

	var storer storage.RunStorer
	var pool *pg.ConnectionPool
	if cfg.DatabaseURL != "" {
		pool, err = pg.NewConnectionPool(s.Context(), pg.PoolConfig{ConnStr: cfg.DatabaseURL})
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
			return
		}
		storer = pg.NewRunStorer(pool)
	} else if cfg.ResultsDir != "" {
		storer = storage.NewJsonFileStorer(cfg.ResultsDir)
	}

	evaluateRouter := router.NewEvaluateRouter(s.Echo, p, retriever, storer)
	evaluateRouter.Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
		if pool != nil {
			pool.Close()
		}
	}()

	err = s.Start()
	if err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}
