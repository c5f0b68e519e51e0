package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mzivkovic/ragrank/internal/apperr"
)

const geminiDefaultBaseURL = "https://generativelanguage.googleapis.com"

type GeminiConfig func(client *GeminiClient)

// GeminiClient talks to the Google generative language REST API. The request
// model name selects the endpoint; the API key travels as a query parameter.
type GeminiClient struct {
	base   url.URL
	apiKey string
	http   *http.Client
}

func NewGeminiClient(apiKey string, opts ...GeminiConfig) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, apperr.NewValidation("missing Gemini API key")
	}

	base, _ := url.Parse(geminiDefaultBaseURL)

	client := &GeminiClient{
		base:   *base,
		apiKey: apiKey,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, cfg := range opts {
		cfg(client)
	}

	return client, nil
}

func WithGeminiBaseURL(baseUrl string) GeminiConfig {
	return func(client *GeminiClient) {
		if base, err := url.Parse(baseUrl); err == nil {
			client.base = *base
		}
	}
}

func WithGeminiHttpClient(httpClient *http.Client) GeminiConfig {
	return func(client *GeminiClient) {
		client.http = httpClient
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig map[string]any  `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (gc *GeminiClient) Generate(ctx context.Context, req Request) (*Response, error) {
	if req.Prompt == "" {
		return nil, apperr.NewValidation("missing prompt to complete")
	}
	if req.Model == "" {
		return nil, apperr.NewValidation("missing model name")
	}

	gReq := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: req.Prompt}}},
		},
		GenerationConfig: req.Options,
	}

	path := fmt.Sprintf("/v1beta/models/%s:generateContent", req.Model)

	var resp geminiResponse
	if err := gc.do(ctx, path, gReq, &resp); err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	return &Response{Text: sb.String()}, nil
}

func (gc *GeminiClient) do(ctx context.Context, path string, reqData, respData any) error {
	reqDataBytes, err := json.Marshal(reqData)
	if err != nil {
		return err
	}

	reqURL := gc.base.JoinPath(path)
	q := reqURL.Query()
	q.Set("key", gc.apiKey)
	reqURL.RawQuery = q.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(reqDataBytes))
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	resp, err := gc.http.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, respData); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
