package quizzes

import (
	"context"

	"codeberg.org/wexam/server/api/rest/pagination"
	"codeberg.org/wexam/server/wexam/quizzes"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// saved quiz persistence used by the handlers
type QuizStore interface {
	Create(ctx context.Context, ownerID string, req quizzes.CreateQuizRequest) (*quizzes.Quiz, error)
	List(ctx context.Context, ownerID string, limit, offset int) ([]quizzes.Quiz, int, error)
	Get(ctx context.Context, quizID, ownerID string) (*quizzes.Quiz, error)
	Delete(ctx context.Context, quizID, ownerID string) error
}

// QuizzesListResponse wraps a list of quizzes with pagination
type QuizzesListResponse struct {
	Quizzes    []quizzes.Quiz  `json:"quizzes"`
	Pagination pagination.Meta `json:"pagination"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
