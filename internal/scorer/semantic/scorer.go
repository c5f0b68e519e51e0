package semantic

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/semaphore"

	"github.com/mzivkovic/ragrank/internal/apperr"
	"github.com/mzivkovic/ragrank/internal/domain"
	"github.com/mzivkovic/ragrank/internal/llm"
	"github.com/mzivkovic/ragrank/pkg/utils"
)

type Config struct {
	Model string

	// MaxAttempts bounds retries for both transport failures and unparseable
	// responses.
	MaxAttempts int

	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	// CallTimeout bounds a single model call; a timed-out call is retried.
	CallTimeout time.Duration

	// ClampTolerance is how far past [0, 1] a parsed value may stray and
	// still be clamped instead of rejected.
	ClampTolerance float64

	// MaxInFlight caps concurrent requests against the model endpoint.
	MaxInFlight int64

	// CacheTTL enables response caching when positive.
	CacheTTL time.Duration

	// Options are forwarded to the model call verbatim.
	Options map[string]any
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     8 * time.Second,
		CallTimeout:    30 * time.Second,
		ClampTolerance: 0.05,
		MaxInFlight:    4,
	}
}

// Scorer judges query/passage relevance through a text-completion model.
type Scorer struct {
	client llm.Client
	cfg    Config
	sem    *semaphore.Weighted
	cache  *gocache.Cache
}

func NewScorer(client llm.Client, cfg Config) *Scorer {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = 1
	}

	s := &Scorer{
		client: client,
		cfg:    cfg,
		sem:    semaphore.NewWeighted(cfg.MaxInFlight),
	}
	if cfg.CacheTTL > 0 {
		s.cache = gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return s
}

// Score returns the relevance of passage to query in [0.000, 1.000].
// Transient failures and unparseable responses are retried with exponential
// backoff; exhaustion surfaces as SemanticScoringError, never a made-up score.
func (s *Scorer) Score(ctx context.Context, query, passage string) (*domain.SemanticScore, error) {
	if query == "" {
		return nil, apperr.NewValidation("missing query to score against")
	}
	if passage == "" {
		return nil, apperr.NewValidation("missing passage to score")
	}

	key := cacheKey(query, passage)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			score := cached.(domain.SemanticScore)
			return &score, nil
		}
	}

	prompt := BuildPrompt(query, passage)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.cfg.InitialBackoff
	bo.MaxInterval = s.cfg.MaxBackoff
	bo.Reset()

	var lastErr error
	var lastRaw string

	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		raw, err := s.generate(ctx, prompt)
		if err != nil {
			var ve *apperr.ValidationError
			if errors.As(err, &ve) || ctx.Err() != nil {
				return nil, err
			}
			slog.Warn("semantic scoring call failed", "attempt", attempt, "error", err)
			lastErr = err
		} else {
			lastRaw = raw
			val, perr := ParseScore(raw, s.cfg.ClampTolerance)
			if perr == nil {
				score := domain.SemanticScore{
					Value: utils.RoundDecimal(val, domain.ScoreDecimalPlaces),
					Raw:   raw,
				}
				if s.cache != nil {
					s.cache.Set(key, score, gocache.DefaultExpiration)
				}
				return &score, nil
			}
			slog.Warn("semantic scoring response unparseable", "attempt", attempt, "error", perr)
			lastErr = perr
		}

		if attempt < s.cfg.MaxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(bo.NextBackOff()):
			}
		}
	}

	return nil, &apperr.SemanticScoringError{
		Attempts:     s.cfg.MaxAttempts,
		LastResponse: lastRaw,
		Err:          lastErr,
	}
}

func (s *Scorer) generate(ctx context.Context, prompt string) (string, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.sem.Release(1)

	callCtx := ctx
	if s.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.cfg.CallTimeout)
		defer cancel()
	}

	resp, err := s.client.Generate(callCtx, llm.Request{
		Model:   s.cfg.Model,
		Prompt:  prompt,
		Options: s.cfg.Options,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

func cacheKey(query, passage string) string {
	h := sha256.New()
	h.Write([]byte(query))
	h.Write([]byte{0})
	h.Write([]byte(passage))
	return hex.EncodeToString(h.Sum(nil))
}
