package llm

import (
	"context"
	"errors"
	"fmt"
)

// represents different LLM providers
type Provider string

const (
	ProviderOpenRouter Provider = "openrouter"
	ProviderGemini     Provider = "gemini"
)

// sends one chat completion to a hosted model
type ChatCompleter interface {
	Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

type ChatRequest struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	MaxTokens    int
}

type ChatResponse struct {
	Model string
	Text  string
	Usage Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}

// classifies a provider failure so callers never inspect message text
type ErrorCode string

const (
	ErrorCodeInvalidCredential ErrorCode = "invalid_credential"
	ErrorCodeQuotaExhausted    ErrorCode = "quota_exhausted"
	ErrorCodeRateLimited       ErrorCode = "rate_limited"
	ErrorCodeUnavailable       ErrorCode = "unavailable"
	ErrorCodeRejected          ErrorCode = "rejected"
	ErrorCodeTransport         ErrorCode = "transport"
	ErrorCodeBadResponse       ErrorCode = "bad_response"
)

// a failed call to the provider; Message is for logs only
type APIError struct {
	Provider   Provider
	StatusCode int
	Code       ErrorCode
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API request failed with status %d (%s): %s", e.Provider, e.StatusCode, e.Code, e.Message)
	}

	return fmt.Sprintf("%s API request failed (%s): %s", e.Provider, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// returns the provider error code carried by err, or "" when err is not an APIError
func CodeOf(err error) ErrorCode {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}

	return ""
}

// maps an HTTP status from any provider to an error code
func codeForStatus(status int) ErrorCode {
	switch {
	case status == 401 || status == 403:
		return ErrorCodeInvalidCredential
	case status == 402:
		return ErrorCodeQuotaExhausted
	case status == 429:
		return ErrorCodeRateLimited
	case status >= 500:
		return ErrorCodeUnavailable
	default:
		return ErrorCodeRejected
	}
}
