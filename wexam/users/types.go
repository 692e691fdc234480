package users

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles user database operations
type Repository struct {
	db *pgxpool.Pool
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	WordsLearned int       `json:"words_learned"`
	CreatedAt    time.Time `json:"created_at"`
}

// identity taken from a verified token
type Identity struct {
	ID       string
	Email    string
	Name     string
	PhotoURL string
}

type UpdateProfileRequest struct {
	Name     string  `json:"name" binding:"max=100"`
	PhotoURL *string `json:"photo_url" binding:"omitempty,max=2048"`
}
