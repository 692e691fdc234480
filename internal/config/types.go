package config

import "time"

type Config struct {
	Environment string
	Port        string
	AppURL      string
	AppTitle    string

	JWTSecret   string
	DatabaseURL string
	RedisURL    string

	// quota settings for quiz generation
	QuotaStore      string // postgres, redis or memory
	QuotaDailyLimit int

	// model provider settings
	LLMProvider       string // openrouter or gemini
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	GeminiAPIKey      string
	PrimaryModel      string
	FallbackModel     string
	AttemptTimeout    time.Duration

	// ulule formatted rate, e.g. "120-M"
	HTTPRateLimit string
}

// returns the credential for the selected provider
func (c *Config) LLMAPIKey() string {
	if c.LLMProvider == ProviderGemini {
		return c.GeminiAPIKey
	}

	return c.OpenRouterAPIKey
}

type TUIFlags struct {
	ServerURL  string
	File       string
	Difficulty string
	Type       string
	Count      int
}
