package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Message, "title": "validation error"})
			return
		}

		// Batch-level scoring failures only reach here when every candidate
		// failed the same way; per-candidate failures are folded into results.
		var se *SemanticScoringError
		if errors.As(err, &se) {
			_ = c.JSON(http.StatusBadGateway, map[string]string{"error": "semantic scoring unavailable"})
			return
		}
		var ee *ExtractionUnavailableError
		if errors.As(err, &ee) {
			_ = c.JSON(http.StatusBadGateway, map[string]string{"error": "entity extraction unavailable"})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, map[string]string{"error": msg})
			return
		}

		slog.Error("Unhandled error", "error", err)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
