package quizgen

import (
	"fmt"
	"strings"
	"time"

	"codeberg.org/wexam/server/internal/llm"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyHOTS   Difficulty = "hots"
)

type QuestionType string

const (
	TypeMCQ   QuestionType = "mcq"
	TypeShort QuestionType = "short"
	TypeLong  QuestionType = "long"
	TypeMixed QuestionType = "mixed"
)

const (
	MinTextLength    = 50
	MaxTextLength    = 15000
	MinQuestionCount = 1
	MaxQuestionCount = 50

	// generation parameters sent with every attempt
	Temperature = 0.4
	MaxTokens   = 4000
)

// RawRequest is the caller's JSON body before validation; fields are left
// untyped so that count may arrive as a number or a string
type RawRequest struct {
	Text       any `json:"text"`
	Difficulty any `json:"difficulty"`
	Type       any `json:"type"`
	Count      any `json:"count"`
}

// validated generation parameters
type Params struct {
	Text       string
	Difficulty Difficulty
	Type       QuestionType
	Count      int
}

type Question struct {
	Question    string       `json:"question"`
	Type        QuestionType `json:"type,omitempty"`
	Options     []string     `json:"options"`
	Answer      string       `json:"answer"`
	Explanation string       `json:"explanation,omitempty"`
}

// reports whether the item must carry exactly four options
func (q Question) IsMCQ() bool {
	return strings.EqualFold(string(q.Type), string(TypeMCQ)) || len(q.Options) > 0
}

type Quiz struct {
	Questions []Question `json:"questions"`
}

// one model route in the order it is tried
type Route struct {
	Model       string
	MaxAttempts int
}

type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeParseFailure Outcome = "parse_failure"
	OutcomeHTTPFailure  Outcome = "http_failure"
)

// record of a single model call within one request
type Attempt struct {
	Model     string
	Number    int
	Outcome   Outcome
	ErrorCode llm.ErrorCode
	Latency   time.Duration
	Err       error
}

type Result struct {
	Quiz     *Quiz
	Model    string
	Attempts []Attempt
}

// a caller-supplied field failed validation; Message is safe to show
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// the model responded but no well-formed quiz could be recovered
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "invalid quiz format: " + e.Reason
}

type FailureReason string

const (
	ReasonInvalidCredential FailureReason = "invalid_credential"
	ReasonQuotaExhausted    FailureReason = "quota_exhausted"
	ReasonUnavailable       FailureReason = "unavailable"
)

// client-facing message for the failure
func (r FailureReason) Message() string {
	switch r {
	case ReasonInvalidCredential:
		return "Server configuration error: Invalid API key."
	case ReasonQuotaExhausted:
		return "Server quota exceeded. Please contact support."
	default:
		return "AI service is currently unavailable. Please try again later."
	}
}

// every route was exhausted without a valid quiz
type GenerationFailedError struct {
	Reason   FailureReason
	Attempts []Attempt
	Err      error // last attempt error
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("all models failed after %d attempts (%s): %v", len(e.Attempts), e.Reason, e.Err)
}

func (e *GenerationFailedError) Unwrap() error {
	return e.Err
}
