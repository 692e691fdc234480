package results

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles quiz result database operations
type Repository struct {
	db *pgxpool.Pool
}

// one completed attempt at a quiz
type Result struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	QuizID      string    `json:"quiz_id,omitempty"`
	Score       int       `json:"score"` // percentage
	Total       int       `json:"total"`
	Correct     int       `json:"correct"`
	Wrong       int       `json:"wrong"`
	TimeElapsed int       `json:"time_elapsed"` // seconds
	Subject     string    `json:"subject"`
	Chapter     string    `json:"chapter"`
	Difficulty  string    `json:"difficulty"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateResultRequest struct {
	QuizID      string `json:"quiz_id"`
	Score       int    `json:"score" binding:"min=0,max=100"`
	Total       int    `json:"total" binding:"min=0"`
	Correct     int    `json:"correct" binding:"min=0"`
	Wrong       int    `json:"wrong" binding:"min=0"`
	TimeElapsed int    `json:"time_elapsed" binding:"min=0"`
	Subject     string `json:"subject"`
	Chapter     string `json:"chapter"`
	Difficulty  string `json:"difficulty"`
	Type        string `json:"type"`
}

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendSteady    Trend = "steady"
)

type Overview struct {
	TotalQuizzes int   `json:"total_quizzes"`
	AvgScore     int   `json:"avg_score"`
	BestScore    int   `json:"best_score"`
	TotalTime    int   `json:"total_time"`
	Trend        Trend `json:"trend"`
	Last5Scores  []int `json:"last5_scores"`
}

type ChapterStats struct {
	Subject          string `json:"subject"`
	Chapter          string `json:"chapter"`
	AvgScore         int    `json:"avg_score"`
	LastScore        int    `json:"last_score"`
	Attempts         int    `json:"attempts"`
	TotalTime        int    `json:"total_time"`
	ImprovementScore int    `json:"improvement_score"`
}

type ChapterStatus string

const (
	StatusDeclining     ChapterStatus = "declining"
	StatusWeak          ChapterStatus = "weak"
	StatusNeedsPractice ChapterStatus = "needs-practice"
)

type Improvement struct {
	ChapterStats
	Status ChapterStatus `json:"status"`
}

type SuggestionKind string

const (
	SuggestionWarning SuggestionKind = "warning"
	SuggestionAlert   SuggestionKind = "alert"
	SuggestionSuccess SuggestionKind = "success"
)

type Suggestion struct {
	Kind    SuggestionKind `json:"type"`
	Subject string         `json:"subject"`
	Chapter string         `json:"chapter"`
	Message string         `json:"message"`
}

// aggregated analytics over a user's recent results
type Performance struct {
	Overview     *Overview      `json:"overview"`
	Chapters     []ChapterStats `json:"chapters"`
	Improvements []Improvement  `json:"improvements"`
	Suggestions  []Suggestion   `json:"suggestions"`
}

type Grade string

// outcome of scoring a taken quiz
type ScoreCard struct {
	Correct    int   `json:"correct"`
	Wrong      int   `json:"wrong"`
	Total      int   `json:"total"`
	Percentage int   `json:"percentage"`
	Grade      Grade `json:"grade"`
}
