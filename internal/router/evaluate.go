package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mzivkovic/ragrank/internal/apperr"
	"github.com/mzivkovic/ragrank/internal/domain"
	"github.com/mzivkovic/ragrank/internal/pipeline"
	"github.com/mzivkovic/ragrank/internal/retrieval"
	"github.com/mzivkovic/ragrank/internal/storage"
)

type EvaluateRequest struct {
	Query    string           `json:"query"`
	Size     int              `json:"size,omitempty"`
	Passages []PassageRequest `json:"passages,omitempty"`
}

// PassageRequest lets a caller submit candidates inline instead of going
// through the retriever.
type PassageRequest struct {
	ID       string         `json:"id,omitempty"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type EvaluateRouter struct {
	e         *echo.Echo
	pipeline  *pipeline.Pipeline
	retriever retrieval.Retriever
	storer    storage.RunStorer
}

func NewEvaluateRouter(e *echo.Echo, p *pipeline.Pipeline, retriever retrieval.Retriever, storer storage.RunStorer) *EvaluateRouter {
	return &EvaluateRouter{
		e:         e,
		pipeline:  p,
		retriever: retriever,
		storer:    storer,
	}
}

func (r *EvaluateRouter) Bind() {
	r.e.POST("/v1/evaluate", r.evaluateHandler)
}

func (r *EvaluateRouter) evaluateHandler(c echo.Context) error {
	var req EvaluateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}
	if req.Query == "" {
		return apperr.NewValidation("query is required")
	}

	ctx := c.Request().Context()

	passages, err := r.resolvePassages(c, &req)
	if err != nil {
		return err
	}

	results, err := r.pipeline.Evaluate(ctx, req.Query, passages)
	if err != nil {
		return err
	}

	run := domain.EvaluationRun{
		ID:        uuid.New(),
		Query:     req.Query,
		CreatedAt: time.Now(),
		Results:   results,
	}

	if r.storer != nil {
		// Persistence failures must not cost the caller their scores.
		if err := r.storer.SaveRun(ctx, run); err != nil {
			slog.Error("failed to persist evaluation run", "run", run.ID, "error", err)
		}
	}

	return c.JSON(http.StatusOK, run)
}

func (r *EvaluateRouter) resolvePassages(c echo.Context, req *EvaluateRequest) ([]domain.Passage, error) {
	if len(req.Passages) > 0 {
		passages := make([]domain.Passage, len(req.Passages))
		for i, p := range req.Passages {
			if p.Text == "" {
				return nil, apperr.NewValidation("passage text is required")
			}

			id := uuid.New()
			if p.ID != "" {
				parsed, err := uuid.Parse(p.ID)
				if err != nil {
					return nil, apperr.NewValidationWrap("invalid passage id", err)
				}
				id = parsed
			}

			passages[i] = domain.Passage{
				ID:            id,
				Text:          p.Text,
				Metadata:      p.Metadata,
				RetrievalRank: i + 1,
			}
		}
		return passages, nil
	}

	if r.retriever == nil {
		return nil, apperr.NewValidation("no passages given and retrieval is not configured")
	}

	return r.retriever.Search(c.Request().Context(), req.Query, req.Size)
}
