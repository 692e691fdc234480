package tui

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

	"codeberg.org/wexam/server/internal/quizgen"
	"codeberg.org/wexam/server/wexam/results"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	// generation may walk the whole model fallback chain
	generateTimeout = 3 * time.Minute
	saveTimeout     = 15 * time.Second
)

// creates a new REST client; token is the bearer sent on every request
func NewClient(endpoint, token string) *Client {
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: generateTimeout},
	}
}

// asks the server to generate a quiz from the study text
func (c *Client) Generate(ctx context.Context, req GenerateRequest) ([]quizgen.Question, error) {
	var resp generateResponse
	if err := c.post(ctx, "/api/v1/generate-quiz", req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Questions) == 0 {
		return nil, errors.New("server returned an empty quiz")
	}

	return resp.Questions, nil
}

// stores a finished attempt so it shows up in performance analytics
func (c *Client) SaveResult(ctx context.Context, req results.CreateResultRequest) error {
	return c.post(ctx, "/api/v1/results", req, nil)
}

// returns a tea.Cmd that sends a generate request
func (c *Client) GenerateCmd(req GenerateRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()

		questions, err := c.Generate(ctx, req)
		if err != nil {
			return ErrorMsg{err: err}
		}

		return QuizLoadedMsg{questions: questions}
	}
}

// returns a tea.Cmd that posts a quiz result
func (c *Client) SaveResultCmd(req results.CreateResultRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		return ResultSavedMsg{err: c.SaveResult(ctx, req)}
	}
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(payloadBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp apiErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return errors.New(errResp.Error)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
