package results

import (
	"fmt"
	"math"
	"sort"

	"codeberg.org/wexam/server/internal/quizgen"
)

const (
	DefaultPerformanceLimit = 50
	MaxPerformanceLimit     = 200

	trendWindow      = 5
	minTrendBaseline = 3
	trendMargin      = 5.0

	weakThreshold     = 60
	practiceThreshold = 75
	maxImprovements   = 3
	maxPraise         = 2

	defaultSubject = "General"
	defaultChapter = "Uncategorized"
)

// scores the objective questions of a taken quiz; free-text questions are
// not auto-graded and don't count toward the total
func Score(questions []quizgen.Question, answers map[int]string) ScoreCard {
	var card ScoreCard
	for i, q := range questions {
		if !q.IsMCQ() {
			continue
		}

		card.Total++
		if answer, ok := answers[i]; ok && answer == q.Answer {
			card.Correct++
		}
	}

	card.Wrong = card.Total - card.Correct
	if card.Total > 0 {
		card.Percentage = round(float64(card.Correct) / float64(card.Total) * 100)
	}
	card.Grade = GradeFor(card.Percentage)

	return card
}

func GradeFor(percentage int) Grade {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B"
	case percentage >= 60:
		return "C"
	case percentage >= 50:
		return "D"
	default:
		return "F"
	}
}

// builds analytics from results ordered newest first
func Analyze(results []Result) Performance {
	perf := Performance{
		Chapters:     []ChapterStats{},
		Improvements: []Improvement{},
		Suggestions:  []Suggestion{},
	}
	if len(results) == 0 {
		return perf
	}

	perf.Overview = overview(results)
	perf.Chapters = chapters(results)

	for _, ch := range perf.Chapters {
		if len(perf.Improvements) == maxImprovements {
			break
		}

		if ch.AvgScore < weakThreshold || (ch.LastScore < ch.AvgScore && ch.AvgScore < practiceThreshold) {
			perf.Improvements = append(perf.Improvements, Improvement{ChapterStats: ch, Status: statusOf(ch)})
		}
	}

	for _, imp := range perf.Improvements {
		switch imp.Status {
		case StatusDeclining:
			perf.Suggestions = append(perf.Suggestions, Suggestion{
				Kind:    SuggestionWarning,
				Subject: imp.Subject,
				Chapter: imp.Chapter,
				Message: fmt.Sprintf("Declining in %s — revise theory and attempt 5 MCQs daily.", imp.Chapter),
			})
		case StatusWeak:
			perf.Suggestions = append(perf.Suggestions, Suggestion{
				Kind:    SuggestionAlert,
				Subject: imp.Subject,
				Chapter: imp.Chapter,
				Message: fmt.Sprintf("Low score in %s (%d%%) — focus on fundamentals.", imp.Chapter, imp.AvgScore),
			})
		}
	}

	praised := 0
	for _, ch := range perf.Chapters {
		if praised == maxPraise {
			break
		}

		if ch.AvgScore >= practiceThreshold && ch.LastScore > ch.AvgScore && ch.Attempts >= 2 {
			perf.Suggestions = append(perf.Suggestions, Suggestion{
				Kind:    SuggestionSuccess,
				Subject: ch.Subject,
				Chapter: ch.Chapter,
				Message: fmt.Sprintf("Great progress in %s! Keep practicing.", ch.Chapter),
			})
			praised++
		}
	}

	return perf
}

func overview(results []Result) *Overview {
	var totalScore, totalTime, best int
	for _, r := range results {
		totalScore += r.Score
		totalTime += r.TimeElapsed
		if r.Score > best {
			best = r.Score
		}
	}

	last := results[:min(trendWindow, len(results))]
	var prev []Result
	if len(results) > trendWindow {
		prev = results[trendWindow:min(2*trendWindow, len(results))]
	}

	trend := TrendSteady
	if len(prev) >= minTrendBaseline {
		lastAvg, prevAvg := mean(last), mean(prev)
		switch {
		case lastAvg > prevAvg+trendMargin:
			trend = TrendImproving
		case lastAvg < prevAvg-trendMargin:
			trend = TrendDeclining
		}
	}

	scores := make([]int, len(last))
	for i, r := range last {
		scores[i] = r.Score
	}

	return &Overview{
		TotalQuizzes: len(results),
		AvgScore:     round(float64(totalScore) / float64(len(results))),
		BestScore:    best,
		TotalTime:    totalTime,
		Trend:        trend,
		Last5Scores:  scores,
	}
}

// groups by subject and chapter, weakest first; ties keep first-seen order
func chapters(results []Result) []ChapterStats {
	type group struct {
		subject, chapter string
		scores           []int
		time             int
	}

	var order []string
	groups := map[string]*group{}
	for _, r := range results {
		subject, chapter := r.Subject, r.Chapter
		if subject == "" {
			subject = defaultSubject
		}
		if chapter == "" {
			chapter = defaultChapter
		}

		key := subject + "|||" + chapter
		g, ok := groups[key]
		if !ok {
			g = &group{subject: subject, chapter: chapter}
			groups[key] = g
			order = append(order, key)
		}

		g.scores = append(g.scores, r.Score)
		g.time += r.TimeElapsed
	}

	stats := make([]ChapterStats, 0, len(order))
	for _, key := range order {
		g := groups[key]
		sum := 0
		for _, s := range g.scores {
			sum += s
		}

		avg := round(float64(sum) / float64(len(g.scores)))
		stats = append(stats, ChapterStats{
			Subject:          g.subject,
			Chapter:          g.chapter,
			AvgScore:         avg,
			LastScore:        g.scores[0],
			Attempts:         len(g.scores),
			TotalTime:        g.time,
			ImprovementScore: g.scores[0] - avg,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].AvgScore < stats[j].AvgScore
	})

	return stats
}

func statusOf(ch ChapterStats) ChapterStatus {
	switch {
	case ch.LastScore < ch.AvgScore:
		return StatusDeclining
	case ch.AvgScore < weakThreshold:
		return StatusWeak
	default:
		return StatusNeedsPractice
	}
}

func mean(results []Result) float64 {
	sum := 0
	for _, r := range results {
		sum += r.Score
	}

	return float64(sum) / float64(len(results))
}

// half rounds up, matching how scores are shown to students
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
