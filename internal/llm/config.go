package llm

import (
	"context"
	"fmt"
)

// holds configuration for the chat completion client
type Config struct {
	Provider Provider
	APIKey   string
	BaseURL  string // openrouter only
	Referer  string // openrouter only
	Title    string // openrouter only
}

// builds the client for the configured provider
func NewChatCompleter(ctx context.Context, cfg Config) (ChatCompleter, error) {
	switch cfg.Provider {
	case ProviderOpenRouter, "":
		return NewOpenRouterClient(OpenRouterConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Referer: cfg.Referer,
			Title:   cfg.Title,
		})
	case ProviderGemini:
		return NewGeminiClient(ctx, GeminiConfig{APIKey: cfg.APIKey})
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
