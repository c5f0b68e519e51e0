package llm

import (
	"errors"
	"fmt"
	"os"
)

const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"

	defaultOllamaModel = "llama3.1:8b"
	defaultGeminiModel = "gemini-1.5-flash-latest"
)

type Config struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
}

func LoadConfigFromEnv() (*Config, error) {
	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = ProviderOllama
	}

	cfg := &Config{
		Provider: provider,
		Model:    os.Getenv("LLM_MODEL"),
		BaseURL:  os.Getenv("LLM_BASE_URL"),
		APIKey:   os.Getenv("LLM_API_KEY"),
	}

	switch provider {
	case ProviderOllama:
		if cfg.BaseURL == "" {
			return nil, errors.New("LLM_BASE_URL environment variable not set")
		}
		if cfg.Model == "" {
			cfg.Model = defaultOllamaModel
		}
	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, errors.New("LLM_API_KEY environment variable not set")
		}
		if cfg.Model == "" {
			cfg.Model = defaultGeminiModel
		}
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", provider)
	}

	return cfg, nil
}

func NewFromConfig(cfg *Config) (Client, error) {
	switch cfg.Provider {
	case ProviderOllama:
		return NewOllamaClient(cfg.BaseURL)
	case ProviderGemini:
		var opts []GeminiConfig
		if cfg.BaseURL != "" {
			opts = append(opts, WithGeminiBaseURL(cfg.BaseURL))
		}
		return NewGeminiClient(cfg.APIKey, opts...)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}
