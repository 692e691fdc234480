package generate

import (
	"context"

	"codeberg.org/wexam/server/internal/quizgen"
	"codeberg.org/wexam/server/internal/quota"
)

// runs one generation request for a user
type QuizGenerator interface {
	Generate(ctx context.Context, userID string, raw quizgen.RawRequest) (*quizgen.Result, error)
}

// reports a user's daily quota without consuming it
type UsageReporter interface {
	Usage(ctx context.Context, userID string) (*quota.Usage, error)
	Limit() int
}

// Request is the generate-quiz body. fields stay loosely typed so count can
// arrive as a number or a numeric string
type Request struct {
	Text       any `json:"text"`
	Difficulty any `json:"difficulty"`
	Type       any `json:"type"`
	Count      any `json:"count"`
}

// Response carries the validated questions and nothing else
type Response struct {
	Questions []quizgen.Question `json:"questions"`
}
