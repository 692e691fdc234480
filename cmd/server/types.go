package main

import (
	"context"

	"codeberg.org/wexam/server/internal/config"
	"codeberg.org/wexam/server/internal/dictionary"
	"codeberg.org/wexam/server/internal/quizgen"
	"codeberg.org/wexam/server/internal/quota"
	"codeberg.org/wexam/server/wexam/quizzes"
	"codeberg.org/wexam/server/wexam/results"
	"codeberg.org/wexam/server/wexam/users"
	"codeberg.org/wexam/server/wexam/words"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// holds all dependencies and state for the API server
type Server struct {
	db       *pgxpool.Pool // nil when DATABASE_URL is unset
	redis    *redis.Client // nil when REDIS_URL is unset
	config   *config.Config
	services *Services
	repos    *Repositories // nil without a database
	router   *gin.Engine
}

// holds the quiz generation pipeline and external service clients
type Services struct {
	Quota      *quota.Limiter
	Engine     *quizgen.Engine
	Generator  *quizgen.Service
	Dictionary *dictionary.Client
}

// postgres-backed repositories
type Repositories struct {
	Quizzes *quizzes.Repository
	Results *results.Repository
	Words   *words.Repository
	Users   *users.Repository
}

// something that creates its tables at startup
type initializer interface {
	Initialize(ctx context.Context) error
}
