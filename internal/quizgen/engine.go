package quizgen

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/wexam/server/internal/llm"
	"codeberg.org/wexam/server/internal/logger"
)

const (
	DefaultAttemptsPerModel = 2
	DefaultAttemptTimeout   = 30 * time.Second
)

type EngineConfig struct {
	PrimaryModel     string
	FallbackModel    string
	AttemptsPerModel int
	AttemptTimeout   time.Duration
}

// calls the model over an ordered list of routes until one attempt yields a valid quiz.
// A malformed answer retries the same model; a transport or HTTP failure moves
// straight on to the next route.
type Engine struct {
	client         llm.ChatCompleter
	routes         []Route
	attemptTimeout time.Duration
	now            func() time.Time
}

func NewEngine(client llm.ChatCompleter, cfg EngineConfig) *Engine {
	attempts := cfg.AttemptsPerModel
	if attempts <= 0 {
		attempts = DefaultAttemptsPerModel
	}

	timeout := cfg.AttemptTimeout
	if timeout <= 0 {
		timeout = DefaultAttemptTimeout
	}

	routes := []Route{{Model: cfg.PrimaryModel, MaxAttempts: attempts}}
	if cfg.FallbackModel != "" {
		routes = append(routes, Route{Model: cfg.FallbackModel, MaxAttempts: attempts})
	}

	return &Engine{
		client:         client,
		routes:         routes,
		attemptTimeout: timeout,
		now:            time.Now,
	}
}

func (e *Engine) Routes() []Route {
	return e.routes
}

func (e *Engine) Generate(ctx context.Context, prompt string) (*Result, error) {
	log := logger.FromContext(ctx)
	attempts := make([]Attempt, 0, 4)

	for _, route := range e.routes {
		for n := 1; n <= route.MaxAttempts; n++ {
			quiz, attempt := e.attempt(ctx, route.Model, n, prompt)
			attempts = append(attempts, attempt)

			if quiz != nil {
				log.Info("quiz generated",
					"model", route.Model,
					"attempt", n,
					"questions", len(quiz.Questions),
					"latency_ms", attempt.Latency.Milliseconds(),
				)

				return &Result{Quiz: quiz, Model: route.Model, Attempts: attempts}, nil
			}

			log.Warn("model attempt failed",
				"model", route.Model,
				"attempt", n,
				"outcome", attempt.Outcome,
				"error_code", attempt.ErrorCode,
				"latency_ms", attempt.Latency.Milliseconds(),
				"error", attempt.Err,
			)

			// the caller is gone, no point trying the next route
			if ctx.Err() != nil {
				return nil, failure(attempts, ctx.Err())
			}

			if attempt.Outcome == OutcomeHTTPFailure {
				break
			}
		}
	}

	var last error
	if len(attempts) > 0 {
		last = attempts[len(attempts)-1].Err
	}

	return nil, failure(attempts, last)
}

func (e *Engine) attempt(ctx context.Context, model string, number int, prompt string) (*Quiz, Attempt) {
	attemptCtx, cancel := context.WithTimeout(ctx, e.attemptTimeout)
	defer cancel()

	started := e.now()
	attempt := Attempt{Model: model, Number: number}

	resp, err := e.client.Complete(attemptCtx, llm.ChatRequest{
		Model:        model,
		SystemPrompt: SystemPrompt,
		UserPrompt:   prompt,
		Temperature:  Temperature,
		MaxTokens:    MaxTokens,
	})

	attempt.Latency = e.now().Sub(started)

	if err != nil {
		attempt.Outcome = OutcomeHTTPFailure
		attempt.ErrorCode = llm.CodeOf(err)
		if attempt.ErrorCode == "" {
			attempt.ErrorCode = llm.ErrorCodeTransport
		}
		attempt.Err = fmt.Errorf("model %s attempt %d: %w", model, number, err)
		return nil, attempt
	}

	logger.FromContext(ctx).Debug("model response", "model", model, "attempt", number, "body", resp.Text)

	quiz, err := ParseQuiz(resp.Text)
	if err != nil {
		attempt.Outcome = OutcomeParseFailure
		attempt.Err = fmt.Errorf("model %s attempt %d: %w", model, number, err)
		return nil, attempt
	}

	attempt.Outcome = OutcomeSuccess
	return quiz, attempt
}

// picks the most actionable reason seen across all attempts
func failure(attempts []Attempt, last error) *GenerationFailedError {
	reason := ReasonUnavailable

	for _, a := range attempts {
		switch a.ErrorCode {
		case llm.ErrorCodeInvalidCredential:
			reason = ReasonInvalidCredential
		case llm.ErrorCodeQuotaExhausted:
			if reason != ReasonInvalidCredential {
				reason = ReasonQuotaExhausted
			}
		}
	}

	return &GenerationFailedError{Reason: reason, Attempts: attempts, Err: last}
}
