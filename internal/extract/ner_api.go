package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mzivkovic/ragrank/internal/apperr"
	"github.com/mzivkovic/ragrank/internal/domain"
)

const defaultAPITimeout = 15 * time.Second

type APIOption func(client *APIClient)

// APIClient talks to the transformer NER service, the high-accuracy primary
// variant. The service loads the model lazily, so any call can fail with a
// model-not-ready status and the caller is expected to fall back.
type APIClient struct {
	base  url.URL
	http  *http.Client
	model string
}

func NewAPIClient(baseUrl string, model string, opts ...APIOption) (*APIClient, error) {
	base, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}

	client := &APIClient{
		base:  *base,
		model: model,
		http: &http.Client{
			Timeout: defaultAPITimeout,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

func WithHttpClient(httpClient *http.Client) APIOption {
	return func(client *APIClient) {
		client.http = httpClient
	}
}

func (c *APIClient) Model() string {
	return c.model
}

type apiRequest struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}

type apiEntity struct {
	Text       string   `json:"text"`
	Label      string   `json:"label"`
	Confidence *float64 `json:"confidence,omitempty"`
}

type apiResponse struct {
	Entities []apiEntity `json:"entities"`
	Model    string      `json:"model,omitempty"`
}

func (c *APIClient) Extract(ctx context.Context, text string) ([]domain.Entity, error) {
	if text == "" {
		return nil, apperr.NewValidation("missing text to extract entities from")
	}

	var resp apiResponse
	if err := c.do(ctx, http.MethodPost, "/extract_entities", apiRequest{Text: text, Model: c.model}, &resp); err != nil {
		return nil, err
	}

	model := resp.Model
	if model == "" {
		model = c.model
	}

	entities := make([]domain.Entity, 0, len(resp.Entities))
	for _, e := range resp.Entities {
		entities = append(entities, domain.Entity{
			Text:       e.Text,
			Label:      e.Label,
			Confidence: e.Confidence,
			Model:      model,
		})
	}

	return FilterEntities(entities), nil
}

func (c *APIClient) do(ctx context.Context, method, path string, reqData, respData any) error {
	reqDataBytes, err := json.Marshal(reqData)
	if err != nil {
		return err
	}

	reqURL := c.base.JoinPath(path)
	request, err := http.NewRequestWithContext(ctx, method, reqURL.String(), bytes.NewReader(reqDataBytes))
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(request)
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
