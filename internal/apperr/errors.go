package apperr

import "fmt"

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// ExtractionUnavailableError means every configured entity model failed for a
// call. It wraps the last variant error; earlier failures are joined into it
// by the extractor chain.
type ExtractionUnavailableError struct {
	Err error
}

func (e *ExtractionUnavailableError) Error() string {
	if e.Err != nil {
		return "entity extraction unavailable: " + e.Err.Error()
	}
	return "entity extraction unavailable"
}

func (e *ExtractionUnavailableError) Unwrap() error {
	return e.Err
}

func NewExtractionUnavailable(err error) *ExtractionUnavailableError {
	return &ExtractionUnavailableError{Err: err}
}

// SemanticScoringError means the language-model call exhausted its retries or
// kept returning unparseable output. LastResponse holds the final raw model
// response, when there was one, for diagnostics.
type SemanticScoringError struct {
	Attempts     int
	LastResponse string
	Err          error
}

func (e *SemanticScoringError) Error() string {
	return fmt.Sprintf("semantic scoring failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *SemanticScoringError) Unwrap() error {
	return e.Err
}
