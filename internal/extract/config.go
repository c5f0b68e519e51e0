package extract

import (
	"net/http"
	"os"
	"time"
)

const defaultNERModel = "en_core_web_trf"

type Config struct {
	APIBaseURL string
	APIModel   string
	APITimeout time.Duration
}

func LoadConfigFromEnv() (*Config, error) {
	baseUrl := os.Getenv("NER_API_URL")
	model := os.Getenv("NER_API_MODEL")
	if model == "" {
		model = defaultNERModel
	}

	timeout := defaultAPITimeout
	if raw := os.Getenv("NER_API_TIMEOUT"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			timeout = parsed
		}
	}

	return &Config{
		APIBaseURL: baseUrl,
		APIModel:   model,
		APITimeout: timeout,
	}, nil
}

// NewFromConfig assembles the extraction chain: the HTTP transformer service
// first when configured, the in-process statistical model always last.
func NewFromConfig(cfg *Config) (*Chain, error) {
	var variants []Extractor

	if cfg != nil && cfg.APIBaseURL != "" {
		api, err := NewAPIClient(cfg.APIBaseURL, cfg.APIModel, WithHttpClient(httpClientWithTimeout(cfg.APITimeout)))
		if err != nil {
			return nil, err
		}
		variants = append(variants, api)
	}

	variants = append(variants, NewProseExtractor())

	return NewChain(variants...)
}

func httpClientWithTimeout(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultAPITimeout
	}
	return &http.Client{Timeout: timeout}
}
