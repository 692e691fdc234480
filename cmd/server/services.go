package main

import (
	"context"
	"fmt"

	"codeberg.org/wexam/server/internal/config"
	"codeberg.org/wexam/server/internal/dictionary"
	"codeberg.org/wexam/server/internal/llm"
	"codeberg.org/wexam/server/internal/quizgen"
	"codeberg.org/wexam/server/internal/quota"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// creates and configures all service clients
func InitializeServices(ctx context.Context, cfg *config.Config, db *pgxpool.Pool, rdb *redis.Client) (*Services, error) {
	chat, err := llm.NewChatCompleter(ctx, llm.Config{
		Provider: llm.Provider(cfg.LLMProvider),
		APIKey:   cfg.LLMAPIKey(),
		BaseURL:  cfg.OpenRouterBaseURL,
		Referer:  cfg.AppURL,
		Title:    cfg.AppTitle,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	store, err := newQuotaStore(cfg.QuotaStore, db, rdb)
	if err != nil {
		return nil, err
	}

	limiter := quota.NewLimiter(store, cfg.QuotaDailyLimit)
	engine := quizgen.NewEngine(chat, quizgen.EngineConfig{
		PrimaryModel:   cfg.PrimaryModel,
		FallbackModel:  cfg.FallbackModel,
		AttemptTimeout: cfg.AttemptTimeout,
	})

	var cache dictionary.Cache = dictionary.NewMemoryCache()
	if rdb != nil {
		cache = dictionary.NewRedisCache(rdb)
	}

	return &Services{
		Quota:      limiter,
		Engine:     engine,
		Generator:  quizgen.NewService(limiter, engine),
		Dictionary: dictionary.NewClient(dictionary.Config{}, cache),
	}, nil
}

// picks the counter store; config validation already guarantees the
// backing connection exists
func newQuotaStore(kind string, db *pgxpool.Pool, rdb *redis.Client) (quota.Store, error) {
	switch kind {
	case config.QuotaStorePostgres:
		if db == nil {
			return nil, fmt.Errorf("quota store %q needs a database", kind)
		}
		return quota.NewPostgresStore(db), nil
	case config.QuotaStoreRedis:
		if rdb == nil {
			return nil, fmt.Errorf("quota store %q needs redis", kind)
		}
		return quota.NewRedisStore(rdb), nil
	case config.QuotaStoreMemory, "":
		return quota.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown quota store: %s", kind)
	}
}
