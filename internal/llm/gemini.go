package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// rate limiter for Gemini calls, same budget as OpenRouter
var geminiRateLimiter = rate.NewLimiter(50, 10)

type GeminiConfig struct {
	APIKey string
}

// generates content through the Gemini API using the official SDK
type GeminiClient struct {
	client *genai.Client
}

func NewGeminiClient(ctx context.Context, config GeminiConfig) (*GeminiClient, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, &APIError{
			Provider: ProviderGemini,
			Code:     ErrorCodeInvalidCredential,
			Message:  "missing API key",
		}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{client: client}, nil
}

func (c *GeminiClient) Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	genConfig := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(req.Temperature),
		MaxOutputTokens:   int32(req.MaxTokens), //nolint:gosec // bounded by caller
		SystemInstruction: genai.NewContentFromText(req.SystemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
	}

	if err := geminiRateLimiter.Wait(ctx); err != nil {
		return nil, geminiError(err)
	}

	result, err := c.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.UserPrompt), genConfig)
	if err != nil {
		return nil, geminiError(err)
	}

	return geminiResponse(req.Model, result), nil
}

// an empty candidate list comes back as empty text and is left to the caller's parser
func geminiResponse(model string, result *genai.GenerateContentResponse) *ChatResponse {
	resp := &ChatResponse{Model: model}
	if result == nil {
		return resp
	}

	resp.Text = result.Text()

	if result.UsageMetadata != nil {
		resp.Usage = Usage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
		}
	}

	return resp
}

func geminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			Provider:   ProviderGemini,
			StatusCode: apiErr.Code,
			Code:       codeForStatus(apiErr.Code),
			Message:    apiErr.Message,
			Err:        err,
		}
	}

	return &APIError{
		Provider: ProviderGemini,
		Code:     ErrorCodeTransport,
		Message:  err.Error(),
		Err:      err,
	}
}
