package llm

import (
	"context"
)

type Request struct {
	Model string `json:"model"`

	// Prompt is the full textual prompt sent for completion.
	Prompt string `json:"prompt"`

	// Options lists model-specific options.
	Options map[string]any `json:"options,omitempty"`
}

// Response carries the free-form completion text. No structured output is
// assumed; callers parse whatever came back.
type Response struct {
	Text string `json:"text"`
}

type Client interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}
