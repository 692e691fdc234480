package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
)

// builds the markdown shown after the last question
func (m *Model) reviewMarkdown() string {
	var b strings.Builder

	b.WriteString("# Quiz review\n\n")
	fmt.Fprintf(&b, "**Score:** %d/%d (%d%%), grade **%s**\n\n", m.card.Correct, m.card.Total, m.card.Percentage, m.card.Grade)
	fmt.Fprintf(&b, "**Time:** %s\n\n", formatElapsed(m.elapsed))

	for i, q := range m.questions {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, q.Question)

		answer, answered := m.answers[i]
		if !answered || answer == "" {
			answer = "_no answer_"
		}

		if q.IsMCQ() {
			mark := "wrong"
			if answered && m.answers[i] == q.Answer {
				mark = "correct"
			}
			fmt.Fprintf(&b, "- Your answer: %s (%s)\n", answer, mark)
			fmt.Fprintf(&b, "- Correct answer: %s\n", q.Answer)
		} else {
			fmt.Fprintf(&b, "- Your answer: %s\n", answer)
			fmt.Fprintf(&b, "- Model answer: %s\n", q.Answer)
		}

		if q.Explanation != "" {
			fmt.Fprintf(&b, "\n> %s\n", q.Explanation)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renders markdown for the terminal, falling back to the raw text
func renderReview(markdown string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(20, width-4)),
	)
	if err != nil {
		return markdown
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}

	return out
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}

	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}
