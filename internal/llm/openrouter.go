package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	openRouterChatURL = "https://openrouter.ai/api/v1/chat/completions"

	// cap on the error body kept for logs
	maxErrorBodyBytes = 2048
)

// shared HTTP client for OpenRouter calls; per-attempt deadlines come from the caller's context
var openRouterHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter for OpenRouter calls (50 requests/second with burst capacity of 10)
var openRouterRateLimiter = rate.NewLimiter(50, 10)

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type OpenRouterConfig struct {
	APIKey  string
	BaseURL string // defaults to the public chat completions endpoint
	Referer string // sent as HTTP-Referer for app attribution
	Title   string // sent as X-Title
}

type OpenRouterClient struct {
	config     OpenRouterConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// the credential is injected here rather than read from the environment per call
func NewOpenRouterClient(config OpenRouterConfig) (*OpenRouterClient, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, &APIError{
			Provider: ProviderOpenRouter,
			Code:     ErrorCodeInvalidCredential,
			Message:  "missing API key",
		}
	}

	if config.BaseURL == "" {
		config.BaseURL = openRouterChatURL
	}

	return &OpenRouterClient{
		config:     config,
		httpClient: openRouterHTTPClient,
		limiter:    openRouterRateLimiter,
	}, nil
}

// swaps the HTTP client, used by tests
func (c *OpenRouterClient) WithHTTPClient(hc *http.Client) *OpenRouterClient {
	c.httpClient = hc
	return c
}

func (c *OpenRouterClient) Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	body := chatRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	if c.config.Referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.config.Referer)
	}

	if c.config.Title != "" {
		httpReq.Header.Set("X-Title", c.config.Title)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, c.transportError(fmt.Errorf("rate limiter error: %w", err))
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.transportError(err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes)) //nolint:errcheck
		return nil, &APIError{
			Provider:   ProviderOpenRouter,
			StatusCode: resp.StatusCode,
			Code:       codeForStatus(resp.StatusCode),
			Message:    string(raw),
		}
	}

	var apiResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		if isDeadline(ctx, err) {
			return nil, c.transportError(err)
		}

		return nil, &APIError{
			Provider: ProviderOpenRouter,
			Code:     ErrorCodeBadResponse,
			Message:  "failed to decode response",
			Err:      err,
		}
	}

	// errors can arrive mid-stream with a 200 status
	if apiResp.Error != nil {
		return nil, &APIError{
			Provider:   ProviderOpenRouter,
			StatusCode: apiResp.Error.Code,
			Code:       codeForStatus(apiResp.Error.Code),
			Message:    apiResp.Error.Message,
		}
	}

	model := apiResp.Model
	if model == "" {
		model = req.Model
	}

	// no choices reads as empty text, same as an empty message
	text := ""
	if len(apiResp.Choices) > 0 {
		text = apiResp.Choices[0].Message.Content
	}

	return &ChatResponse{
		Model: model,
		Text:  text,
		Usage: Usage{
			InputTokens:  apiResp.Usage.PromptTokens,
			OutputTokens: apiResp.Usage.CompletionTokens,
		},
	}, nil
}

func (c *OpenRouterClient) transportError(err error) error {
	return &APIError{
		Provider: ProviderOpenRouter,
		Code:     ErrorCodeTransport,
		Message:  err.Error(),
		Err:      err,
	}
}

func isDeadline(ctx context.Context, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil
}
