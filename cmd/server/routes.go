package main

import (
	"context"

	"codeberg.org/wexam/server/api/rest/dictionary"
	"codeberg.org/wexam/server/api/rest/generate"
	"codeberg.org/wexam/server/api/rest/health"
	"codeberg.org/wexam/server/api/rest/quizzes"
	"codeberg.org/wexam/server/api/rest/results"
	"codeberg.org/wexam/server/api/rest/users"
	"codeberg.org/wexam/server/api/rest/words"
	"codeberg.org/wexam/server/internal/auth"
	"codeberg.org/wexam/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// sets up all API routes
func RegisterRoutes(router *gin.Engine, server *Server) {
	verifier, err := auth.NewJWTVerifier(server.config.JWTSecret)
	if err != nil {
		// config loading already rejects an empty secret
		logger.Fatal("failed to create token verifier", "error", err)
	}

	router.GET("/health", health.Handler(server.healthChecks()))

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		generate.RegisterRoutes(v1, verifier, server.services.Generator, server.services.Quota)
		// history stays a nil interface without a database
		var history dictionary.HistoryRecorder
		if server.repos != nil {
			history = server.repos.Words
		}
		dictionary.RegisterRoutes(v1, verifier, server.services.Dictionary, history)

		if server.repos != nil {
			quizzes.RegisterRoutes(v1, verifier, server.repos.Quizzes)
			results.RegisterRoutes(v1, verifier, server.repos.Results)
			words.RegisterRoutes(v1, verifier, server.repos.Words)
			users.RegisterRoutes(v1, verifier, server.repos.Users)
		}
	}
}

func (s *Server) healthChecks() map[string]health.Pinger {
	checks := map[string]health.Pinger{}
	if s.db != nil {
		checks["postgres"] = s.db
	}
	if s.redis != nil {
		checks["redis"] = redisPinger{s.redis}
	}

	return checks
}

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
