package quizgen

import (
	"context"
	"fmt"
)

// consumes one unit of a user's daily generation quota
type QuotaChecker interface {
	CheckAndIncrement(ctx context.Context, userID string) error
}

// produces a validated quiz from a rendered prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (*Result, error)
}

// runs a generation request end to end: quota, validation, prompt, model
type Service struct {
	quota  QuotaChecker
	engine Generator
}

func NewService(quota QuotaChecker, engine Generator) *Service {
	return &Service{quota: quota, engine: engine}
}

// the quota is consumed before the input is validated, so a rejected body
// still counts toward the day's limit
func (s *Service) Generate(ctx context.Context, userID string, raw RawRequest) (*Result, error) {
	if err := s.quota.CheckAndIncrement(ctx, userID); err != nil {
		return nil, fmt.Errorf("quota check: %w", err)
	}

	params, err := ParseRequest(raw)
	if err != nil {
		return nil, err
	}

	return s.engine.Generate(ctx, BuildPrompt(*params))
}
