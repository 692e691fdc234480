package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"codeberg.org/wexam/server/internal/auth"
	"codeberg.org/wexam/server/wexam/users"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// load environment
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	verifier, err := auth.NewJWTVerifier(os.Getenv("JWT_SECRET"))
	if err != nil {
		log.Fatalf("Failed to create verifier: %v", err)
	}

	identity := users.Identity{
		ID:    os.Getenv("TEST_USER_ID"),
		Email: "test@wexam.dev",
		Name:  "Test Student",
	}
	if identity.ID == "" {
		identity.ID = "test-" + uuid.NewString()
	}

	// register the user when a database is configured so profile routes work
	if dbConnString := os.Getenv("DATABASE_URL"); dbConnString != "" {
		ctx := context.Background()

		dbPool, err := pgxpool.New(ctx, dbConnString)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer dbPool.Close()

		repo := users.NewRepository(dbPool)
		if err := repo.Initialize(ctx); err != nil {
			log.Fatalf("Failed to initialize users table: %v", err)
		}

		user, err := repo.FindOrCreate(ctx, identity)
		if err != nil {
			log.Fatalf("Failed to create test user: %v", err)
		}
		fmt.Printf("Using test user: %s (ID: %s)\n", user.Email, user.ID)
	}

	token, err := verifier.Issue(identity.ID, identity.Email, identity.Name, 0)
	if err != nil {
		log.Fatalf("Failed to generate JWT: %v", err)
	}

	fmt.Printf("\nTest JWT Token:\n%s\n\n", token)
	fmt.Printf("Export this token for the terminal client:\nexport WEXAM_TOKEN=\"%s\"\n", token)
}
