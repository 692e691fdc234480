package quizzes

import (
	"time"

	"codeberg.org/wexam/server/internal/quizgen"
	"github.com/jackc/pgx/v5/pgxpool"
)

// handles saved quiz database operations
type Repository struct {
	db *pgxpool.Pool
}

// a generated quiz saved by its owner
type Quiz struct {
	ID             string             `json:"id"`
	OwnerID        string             `json:"owner_id"`
	Class          string             `json:"class"`
	Subject        string             `json:"subject"`
	Chapter        string             `json:"chapter"`
	Difficulty     string             `json:"difficulty"`
	Type           string             `json:"type"`
	Questions      []quizgen.Question `json:"questions"`
	TotalQuestions int                `json:"total_questions"`
	CreatedAt      time.Time          `json:"created_at"`
}

type CreateQuizRequest struct {
	Class      string             `json:"class"`
	Subject    string             `json:"subject"`
	Chapter    string             `json:"chapter"`
	Difficulty string             `json:"difficulty" binding:"required"`
	Type       string             `json:"type" binding:"required"`
	Questions  []quizgen.Question `json:"questions" binding:"required,min=1"`
}
