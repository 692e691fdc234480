package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"

	QuotaStorePostgres = "postgres"
	QuotaStoreRedis    = "redis"
	QuotaStoreMemory   = "memory"

	DefaultPrimaryModel   = "meta-llama/llama-3.3-70b-instruct"
	DefaultFallbackModel  = "google/gemma-2-9b-it"

	DefaultGeminiPrimaryModel  = "gemini-2.0-flash"
	DefaultGeminiFallbackModel = "gemini-2.0-flash-lite"
	DefaultAttemptTimeout = 30 * time.Second
	DefaultDailyLimit     = 10
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return FromLookup(os.Getenv)
}

// builds the config from any key lookup; split out so tests don't touch the process env
func FromLookup(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Environment:       withDefault(getenv("ENVIRONMENT"), "development"),
		Port:              withDefault(getenv("PORT"), "8080"),
		AppURL:            withDefault(getenv("APP_URL"), "https://wexam.app"),
		AppTitle:          withDefault(getenv("APP_TITLE"), "Wexam QuizLab"),
		JWTSecret:         getenv("JWT_SECRET"),
		DatabaseURL:       getenv("DATABASE_URL"),
		RedisURL:          getenv("REDIS_URL"),
		LLMProvider:       withDefault(getenv("LLM_PROVIDER"), ProviderOpenRouter),
		OpenRouterAPIKey:  getenv("OPENROUTER_API_KEY"),
		OpenRouterBaseURL: getenv("OPENROUTER_BASE_URL"),
		GeminiAPIKey:      getenv("GEMINI_API_KEY"),
		HTTPRateLimit:     withDefault(getenv("HTTP_RATE_LIMIT"), "120-M"),
		QuotaDailyLimit:   DefaultDailyLimit,
		AttemptTimeout:    DefaultAttemptTimeout,
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	// model ids are provider specific, so defaults follow the provider
	primary, fallback := DefaultPrimaryModel, DefaultFallbackModel

	switch cfg.LLMProvider {
	case ProviderOpenRouter:
		if cfg.OpenRouterAPIKey == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY environment variable is required")
		}
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
		}
		primary, fallback = DefaultGeminiPrimaryModel, DefaultGeminiFallbackModel
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.LLMProvider)
	}

	cfg.PrimaryModel = withDefault(getenv("LLM_PRIMARY_MODEL"), primary)
	cfg.FallbackModel = withDefault(getenv("LLM_FALLBACK_MODEL"), fallback)

	if v := getenv("QUOTA_DAILY_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("QUOTA_DAILY_LIMIT must be a positive integer")
		}
		cfg.QuotaDailyLimit = n
	}

	if v := getenv("LLM_ATTEMPT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("LLM_ATTEMPT_TIMEOUT must be a positive duration")
		}
		cfg.AttemptTimeout = d
	}

	cfg.QuotaStore = getenv("QUOTA_STORE")
	if cfg.QuotaStore == "" {
		cfg.QuotaStore = QuotaStoreMemory
		if cfg.DatabaseURL != "" {
			cfg.QuotaStore = QuotaStorePostgres
		}
	}

	switch cfg.QuotaStore {
	case QuotaStorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required for postgres quota store")
		}
	case QuotaStoreRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL environment variable is required for redis quota store")
		}
	case QuotaStoreMemory:
	default:
		return nil, fmt.Errorf("unsupported QUOTA_STORE %q", cfg.QuotaStore)
	}

	return cfg, nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}

	return v
}
