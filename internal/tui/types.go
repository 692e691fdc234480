package tui

import (
	"net/http"
	"time"

	"codeberg.org/wexam/server/internal/quizgen"
	"codeberg.org/wexam/server/wexam/results"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// represents the current state of the TUI
type AppState int

const (
	StateLoading AppState = iota
	StateQuestion
	StateReview
	StateError
)

// main TUI application model
type Model struct {
	state    AppState
	width    int
	height   int
	err      error
	client   *Client
	request  GenerateRequest
	spinner  spinner.Model
	input    textinput.Model
	viewport viewport.Model
	now      func() time.Time

	questions []quizgen.Question
	current   int
	cursor    int
	answers   map[int]string
	startedAt time.Time
	elapsed   time.Duration
	card      results.ScoreCard
	// set once the result post comes back
	saveStatus string
}

// talks to the wexam REST API on behalf of the signed in student
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// body of POST /api/v1/generate-quiz
type GenerateRequest struct {
	Text       string `json:"text"`
	Difficulty string `json:"difficulty"`
	Type       string `json:"type"`
	Count      int    `json:"count"`
}

type generateResponse struct {
	Questions []quizgen.Question `json:"questions"`
}

type apiErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// sent when the server returns a quiz
type QuizLoadedMsg struct {
	questions []quizgen.Question
}

// sent after the result post completes
type ResultSavedMsg struct {
	err error
}

// sent when an error occurs
type ErrorMsg struct {
	err error
}
