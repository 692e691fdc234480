package results

import (
	"context"

	"codeberg.org/wexam/server/wexam/results"
)

// quiz result persistence used by the handlers
type ResultStore interface {
	Create(ctx context.Context, userID string, req results.CreateResultRequest) (*results.Result, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]results.Result, error)
}
