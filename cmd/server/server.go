package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/wexam/server/internal/config"
	"codeberg.org/wexam/server/internal/errors"
	"codeberg.org/wexam/server/internal/logger"
	"codeberg.org/wexam/server/internal/quota"
	"codeberg.org/wexam/server/wexam/quizzes"
	"codeberg.org/wexam/server/wexam/results"
	"codeberg.org/wexam/server/wexam/users"
	"codeberg.org/wexam/server/wexam/words"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, err := openDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	rdb, err := openRedis(ctx, cfg.RedisURL)
	if err != nil {
		closeDatabase(db)
		return nil, err
	}

	server := &Server{db: db, redis: rdb, config: cfg}

	services, err := InitializeServices(ctx, cfg, db, rdb)
	if err != nil {
		server.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	server.services = services

	if db != nil {
		server.repos = &Repositories{
			Quizzes: quizzes.NewRepository(db),
			Results: results.NewRepository(db),
			Words:   words.NewRepository(db),
			Users:   users.NewRepository(db),
		}

		if err := server.initializeSchema(ctx); err != nil {
			server.Close()
			return nil, err
		}
	} else {
		logger.Warn("DATABASE_URL not set, saved quizzes, results, words and profiles are disabled")
	}

	router, err := newRouter(cfg, rdb)
	if err != nil {
		server.Close()
		return nil, err
	}
	server.router = router

	RegisterRoutes(router, server)

	logger.Info("server initialized",
		"provider", cfg.LLMProvider,
		"primary_model", cfg.PrimaryModel,
		"fallback_model", cfg.FallbackModel,
		"quota_store", cfg.QuotaStore,
		"daily_limit", services.Quota.Limit(),
		"database", db != nil,
		"redis", rdb != nil,
	)

	return server, nil
}

// builds the engine with the global middleware chain
func newRouter(cfg *config.Config, rdb *redis.Client) (*gin.Engine, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	rateLimit, err := RateLimitMiddleware(cfg.HTTPRateLimit, rdb)
	if err != nil {
		return nil, fmt.Errorf("failed to configure rate limiter: %w", err)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware())
	router.Use(CORSMiddleware())
	router.Use(rateLimit)

	// preflights for unknown paths still answer 200
	router.NoMethod(PreflightOr(errors.MethodNotAllowed))
	router.NoRoute(PreflightOr(func(c *gin.Context) { errors.NotFound(c, "route") }))

	return router, nil
}

// tables are created idempotently on every start
func (s *Server) initializeSchema(ctx context.Context) error {
	components := []struct {
		name string
		init initializer
	}{
		{"users", s.repos.Users},
		{"quizzes", s.repos.Quizzes},
		{"results", s.repos.Results},
		{"words", s.repos.Words},
	}

	if s.config.QuotaStore == config.QuotaStorePostgres {
		components = append(components, struct {
			name string
			init initializer
		}{"quota", quota.NewPostgresStore(s.db)})
	}

	for _, component := range components {
		if err := component.init.Initialize(ctx); err != nil {
			return fmt.Errorf("failed to initialize %s schema: %w", component.name, err)
		}
	}

	return nil
}

func openDatabase(ctx context.Context, url string) (*pgxpool.Pool, error) {
	if url == "" {
		return nil, nil
	}

	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// keep the pool small, managed poolers have few connections to share
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// transaction-mode poolers don't support prepared statements
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func openRedis(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

func closeDatabase(db *pgxpool.Pool) {
	if db != nil {
		db.Close()
	}
}

// releases the database and redis connections
func (s *Server) Close() {
	if s.redis != nil {
		s.redis.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown
	}

	closeDatabase(s.db)
}
