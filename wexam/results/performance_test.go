package results

import (
	"testing"

	"codeberg.org/wexam/server/internal/quizgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scores(subject, chapter string, values ...int) []Result {
	out := make([]Result, len(values))
	for i, v := range values {
		out[i] = Result{Subject: subject, Chapter: chapter, Score: v, TimeElapsed: 60}
	}
	return out
}

func TestAnalyze_Empty(t *testing.T) {
	perf := Analyze(nil)

	assert.Nil(t, perf.Overview)
	assert.Empty(t, perf.Chapters)
	assert.NotNil(t, perf.Chapters)
	assert.NotNil(t, perf.Improvements)
	assert.NotNil(t, perf.Suggestions)
}

func TestAnalyze_Overview(t *testing.T) {
	perf := Analyze(scores("Physics", "Motion", 90, 85, 80))

	require.NotNil(t, perf.Overview)
	assert.Equal(t, 3, perf.Overview.TotalQuizzes)
	assert.Equal(t, 85, perf.Overview.AvgScore)
	assert.Equal(t, 90, perf.Overview.BestScore)
	assert.Equal(t, 180, perf.Overview.TotalTime)
	assert.Equal(t, []int{90, 85, 80}, perf.Overview.Last5Scores)
	assert.Equal(t, TrendSteady, perf.Overview.Trend)
}

func TestAnalyze_Trend(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   Trend
	}{
		{"improving", []int{90, 90, 90, 90, 90, 70, 70, 70}, TrendImproving},
		{"declining", []int{50, 50, 50, 50, 50, 80, 80, 80, 80, 80}, TrendDeclining},
		{"within margin", []int{75, 75, 75, 75, 75, 71, 71, 71}, TrendSteady},
		{"baseline too small", []int{90, 90, 90, 90, 90, 10, 10}, TrendSteady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perf := Analyze(scores("Math", "Algebra", tt.values...))
			assert.Equal(t, tt.want, perf.Overview.Trend)
		})
	}
}

func TestAnalyze_ChaptersAndSuggestions(t *testing.T) {
	var list []Result
	list = append(list, Result{Subject: "Math", Chapter: "Algebra", Score: 40})
	list = append(list, Result{Subject: "", Chapter: "", Score: 65})
	list = append(list, Result{Subject: "Math", Chapter: "Algebra", Score: 50})
	list = append(list, Result{Subject: "Science", Chapter: "Cells", Score: 95})
	list = append(list, Result{Subject: "", Chapter: "", Score: 75})
	list = append(list, Result{Subject: "Science", Chapter: "Cells", Score: 80})

	perf := Analyze(list)

	require.Len(t, perf.Chapters, 3)
	assert.Equal(t, "Algebra", perf.Chapters[0].Chapter)
	assert.Equal(t, 45, perf.Chapters[0].AvgScore)
	assert.Equal(t, 40, perf.Chapters[0].LastScore)
	assert.Equal(t, -5, perf.Chapters[0].ImprovementScore)

	assert.Equal(t, "General", perf.Chapters[1].Subject)
	assert.Equal(t, "Uncategorized", perf.Chapters[1].Chapter)
	assert.Equal(t, 70, perf.Chapters[1].AvgScore)

	assert.Equal(t, "Cells", perf.Chapters[2].Chapter)
	assert.Equal(t, 88, perf.Chapters[2].AvgScore)

	require.Len(t, perf.Improvements, 2)
	assert.Equal(t, StatusDeclining, perf.Improvements[0].Status)
	assert.Equal(t, StatusDeclining, perf.Improvements[1].Status)

	require.Len(t, perf.Suggestions, 3)
	assert.Equal(t, SuggestionWarning, perf.Suggestions[0].Kind)
	assert.Equal(t, "Declining in Algebra — revise theory and attempt 5 MCQs daily.", perf.Suggestions[0].Message)
	assert.Equal(t, SuggestionSuccess, perf.Suggestions[2].Kind)
	assert.Equal(t, "Great progress in Cells! Keep practicing.", perf.Suggestions[2].Message)
}

func TestAnalyze_WeakChapter(t *testing.T) {
	perf := Analyze(scores("History", "Empires", 55, 50))

	require.Len(t, perf.Improvements, 1)
	assert.Equal(t, StatusWeak, perf.Improvements[0].Status)
	require.Len(t, perf.Suggestions, 1)
	assert.Equal(t, SuggestionAlert, perf.Suggestions[0].Kind)
	assert.Equal(t, "Low score in Empires (53%) — focus on fundamentals.", perf.Suggestions[0].Message)
}

func TestAnalyze_ImprovementsCapped(t *testing.T) {
	var list []Result
	for _, ch := range []string{"a", "b", "c", "d", "e"} {
		list = append(list, Result{Subject: "S", Chapter: ch, Score: 20})
	}

	perf := Analyze(list)
	assert.Len(t, perf.Improvements, maxImprovements)
}

func TestScore(t *testing.T) {
	questions := []quizgen.Question{
		{Question: "q1", Type: "mcq", Options: []string{"a", "b", "c", "d"}, Answer: "a"},
		{Question: "q2", Type: "mcq", Options: []string{"a", "b", "c", "d"}, Answer: "b"},
		{Question: "q3", Type: "short", Answer: "free text"},
		{Question: "q4", Type: "mcq", Options: []string{"a", "b", "c", "d"}, Answer: "c"},
	}

	card := Score(questions, map[int]string{0: "a", 1: "c", 2: "free text", 3: "c"})

	assert.Equal(t, 3, card.Total)
	assert.Equal(t, 2, card.Correct)
	assert.Equal(t, 1, card.Wrong)
	assert.Equal(t, 67, card.Percentage)
	assert.Equal(t, Grade("C"), card.Grade)
}

func TestScore_NoObjectiveQuestions(t *testing.T) {
	card := Score([]quizgen.Question{{Question: "q", Type: "long", Answer: "x"}}, nil)

	assert.Equal(t, 0, card.Total)
	assert.Equal(t, 0, card.Percentage)
	assert.Equal(t, Grade("F"), card.Grade)
}

func TestGradeFor(t *testing.T) {
	assert.Equal(t, Grade("A+"), GradeFor(90))
	assert.Equal(t, Grade("A"), GradeFor(89))
	assert.Equal(t, Grade("B"), GradeFor(70))
	assert.Equal(t, Grade("C"), GradeFor(60))
	assert.Equal(t, Grade("D"), GradeFor(50))
	assert.Equal(t, Grade("F"), GradeFor(49))
}

func TestValidateCreate(t *testing.T) {
	assert.NoError(t, ValidateCreate(CreateResultRequest{Total: 5, Correct: 3, Wrong: 2}))
	assert.Error(t, ValidateCreate(CreateResultRequest{Total: 5, Correct: 4, Wrong: 2}))
}
