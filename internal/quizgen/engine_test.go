package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"codeberg.org/wexam/server/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	primaryModel  = "primary/model"
	fallbackModel = "fallback/model"
)

type reply struct {
	text string
	err  error
}

// scripted chat completer: each model answers from its own queue, repeating the last entry
type mockCompleter struct {
	mu       sync.Mutex
	replies  map[string][]reply
	calls    []string
	requests []llm.ChatRequest
	block    bool
}

func newMockCompleter() *mockCompleter {
	return &mockCompleter{replies: map[string][]reply{}}
}

func (m *mockCompleter) on(model string, replies ...reply) *mockCompleter {
	m.replies[model] = replies
	return m
}

func (m *mockCompleter) Complete(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req.Model)
	m.requests = append(m.requests, req)
	queue := m.replies[req.Model]
	n := 0
	for _, c := range m.calls {
		if c == req.Model {
			n++
		}
	}
	block := m.block
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, &llm.APIError{Provider: llm.ProviderOpenRouter, Code: llm.ErrorCodeTransport, Message: "timeout", Err: ctx.Err()}
	}

	if len(queue) == 0 {
		return nil, fmt.Errorf("no reply scripted for %s", req.Model)
	}

	r := queue[len(queue)-1]
	if n <= len(queue) {
		r = queue[n-1]
	}

	if r.err != nil {
		return nil, r.err
	}

	return &llm.ChatResponse{Model: req.Model, Text: r.text}, nil
}

func (m *mockCompleter) callCount(model string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range m.calls {
		if c == model {
			n++
		}
	}

	return n
}

func newTestEngine(client llm.ChatCompleter) *Engine {
	return NewEngine(client, EngineConfig{
		PrimaryModel:  primaryModel,
		FallbackModel: fallbackModel,
	})
}

func mcqQuiz(n int) string {
	questions := make([]Question, n)
	for i := range questions {
		questions[i] = Question{
			Question:    fmt.Sprintf("Question %d?", i+1),
			Type:        TypeMCQ,
			Options:     []string{"A", "B", "C", "D"},
			Answer:      "B",
			Explanation: fmt.Sprintf("Because %d.", i+1),
		}
	}

	b, _ := json.Marshal(Quiz{Questions: questions}) //nolint:errcheck
	return string(b)
}

var (
	malformed  = reply{text: "Sorry, here are some questions: 1. What is a cell?"}
	httpFailed = reply{err: &llm.APIError{Provider: llm.ProviderOpenRouter, StatusCode: 503, Code: llm.ErrorCodeUnavailable}}
)

func TestNewEngine_Routes(t *testing.T) {
	e := newTestEngine(newMockCompleter())

	assert.Equal(t, []Route{
		{Model: primaryModel, MaxAttempts: 2},
		{Model: fallbackModel, MaxAttempts: 2},
	}, e.Routes())
	assert.Equal(t, 30*time.Second, e.attemptTimeout)
}

func TestGenerate_PrimaryFirstAttempt(t *testing.T) {
	client := newMockCompleter().on(primaryModel, reply{text: mcqQuiz(3)})

	result, err := newTestEngine(client).Generate(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, primaryModel, result.Model)
	assert.Len(t, result.Quiz.Questions, 3)
	assert.Equal(t, []string{primaryModel}, client.calls)

	req := client.requests[0]
	assert.Equal(t, SystemPrompt, req.SystemPrompt)
	assert.Equal(t, "prompt", req.UserPrompt)
	assert.InDelta(t, 0.4, req.Temperature, 0.0001)
	assert.Equal(t, 4000, req.MaxTokens)
}

func TestGenerate_RetriesSameModelOnMalformedOutput(t *testing.T) {
	client := newMockCompleter().on(primaryModel, malformed, reply{text: mcqQuiz(2)})

	result, err := newTestEngine(client).Generate(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, primaryModel, result.Model)
	assert.Equal(t, []string{primaryModel, primaryModel}, client.calls)
	require.Len(t, result.Attempts, 2)
	assert.Equal(t, OutcomeParseFailure, result.Attempts[0].Outcome)
	assert.Equal(t, OutcomeSuccess, result.Attempts[1].Outcome)
}

func TestGenerate_FallbackAfterPrimaryMalformedTwice(t *testing.T) {
	fallbackQuiz := mcqQuiz(4)
	client := newMockCompleter().
		on(primaryModel, malformed).
		on(fallbackModel, reply{text: fallbackQuiz})

	result, err := newTestEngine(client).Generate(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, 2, client.callCount(primaryModel))
	assert.Equal(t, 1, client.callCount(fallbackModel))
	assert.Equal(t, []string{primaryModel, primaryModel, fallbackModel}, client.calls)
	assert.Equal(t, fallbackModel, result.Model)
	assert.Len(t, result.Attempts, 3)

	var want Quiz
	require.NoError(t, json.Unmarshal([]byte(fallbackQuiz), &want))
	assert.Equal(t, want, *result.Quiz)
}

func TestGenerate_AllMalformed(t *testing.T) {
	client := newMockCompleter().
		on(primaryModel, malformed).
		on(fallbackModel, malformed)

	result, err := newTestEngine(client).Generate(context.Background(), "prompt")

	assert.Nil(t, result)
	assert.Len(t, client.calls, 4)
	assert.Equal(t, 2, client.callCount(primaryModel))
	assert.Equal(t, 2, client.callCount(fallbackModel))

	var failed *GenerationFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, ReasonUnavailable, failed.Reason)
	assert.Len(t, failed.Attempts, 4)

	var ferr *FormatError
	assert.ErrorAs(t, err, &ferr)
}

func TestGenerate_EmptyCompletionRetriesSameModel(t *testing.T) {
	client := newMockCompleter().on(primaryModel, reply{text: ""}, reply{text: mcqQuiz(1)})

	result, err := newTestEngine(client).Generate(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, []string{primaryModel, primaryModel}, client.calls)
	assert.Equal(t, primaryModel, result.Model)
	assert.Equal(t, OutcomeParseFailure, result.Attempts[0].Outcome)

	var ferr *FormatError
	assert.ErrorAs(t, result.Attempts[0].Err, &ferr)
}

func TestGenerate_TransportFailureSkipsToFallback(t *testing.T) {
	client := newMockCompleter().
		on(primaryModel, httpFailed).
		on(fallbackModel, reply{text: mcqQuiz(1)})

	result, err := newTestEngine(client).Generate(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, []string{primaryModel, fallbackModel}, client.calls)
	assert.Equal(t, OutcomeHTTPFailure, result.Attempts[0].Outcome)
	assert.Equal(t, llm.ErrorCodeUnavailable, result.Attempts[0].ErrorCode)
}

func TestGenerate_TransportFailureEverywhere(t *testing.T) {
	client := newMockCompleter().
		on(primaryModel, httpFailed).
		on(fallbackModel, httpFailed)

	_, err := newTestEngine(client).Generate(context.Background(), "prompt")

	var failed *GenerationFailedError
	require.ErrorAs(t, err, &failed)
	assert.Len(t, client.calls, 2)
	assert.Equal(t, ReasonUnavailable, failed.Reason)
}

func TestGenerate_FencedBlockReturnedUnmodified(t *testing.T) {
	body := mcqQuiz(10)
	client := newMockCompleter().on(primaryModel, reply{text: "```json\n" + body + "\n```"})

	result, err := newTestEngine(client).Generate(context.Background(), "prompt")

	require.NoError(t, err)
	require.Len(t, result.Quiz.Questions, 10)

	out, err := json.Marshal(result.Quiz)
	require.NoError(t, err)
	assert.JSONEq(t, body, string(out))
}

func TestGenerate_FailureReasonPriority(t *testing.T) {
	credential := reply{err: &llm.APIError{StatusCode: 401, Code: llm.ErrorCodeInvalidCredential}}
	quota := reply{err: &llm.APIError{StatusCode: 402, Code: llm.ErrorCodeQuotaExhausted}}

	tests := []struct {
		name     string
		primary  reply
		fallback reply
		want     FailureReason
		message  string
	}{
		{"credential", credential, httpFailed, ReasonInvalidCredential, "Server configuration error: Invalid API key."},
		{"quota", httpFailed, quota, ReasonQuotaExhausted, "Server quota exceeded. Please contact support."},
		{"credential beats quota", quota, credential, ReasonInvalidCredential, "Server configuration error: Invalid API key."},
		{"plain failure", malformed, httpFailed, ReasonUnavailable, "AI service is currently unavailable. Please try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newMockCompleter().on(primaryModel, tt.primary).on(fallbackModel, tt.fallback)

			_, err := newTestEngine(client).Generate(context.Background(), "prompt")

			var failed *GenerationFailedError
			require.ErrorAs(t, err, &failed)
			assert.Equal(t, tt.want, failed.Reason)
			assert.Equal(t, tt.message, failed.Reason.Message())
		})
	}
}

func TestGenerate_AttemptTimeoutCountsAsTransportFailure(t *testing.T) {
	client := newMockCompleter()
	client.block = true

	e := NewEngine(client, EngineConfig{
		PrimaryModel:   primaryModel,
		FallbackModel:  fallbackModel,
		AttemptTimeout: 20 * time.Millisecond,
	})

	started := time.Now()
	_, err := e.Generate(context.Background(), "prompt")

	var failed *GenerationFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, []string{primaryModel, fallbackModel}, client.calls)
	assert.Equal(t, OutcomeHTTPFailure, failed.Attempts[0].Outcome)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(started), 5*time.Second)
}

func TestGenerate_StopsWhenCallerCancels(t *testing.T) {
	client := newMockCompleter()
	client.block = true

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newTestEngine(client).Generate(ctx, "prompt")

	require.Error(t, err)
	assert.Len(t, client.calls, 1)
	assert.True(t, strings.Contains(err.Error(), "deadline"))
}

func TestGenerate_UnclassifiedClientErrorIsTransport(t *testing.T) {
	client := newMockCompleter().
		on(primaryModel, reply{err: errors.New("connection reset")}).
		on(fallbackModel, reply{text: mcqQuiz(1)})

	result, err := newTestEngine(client).Generate(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, llm.ErrorCodeTransport, result.Attempts[0].ErrorCode)
}
