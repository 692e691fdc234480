package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func loadingView(m *Model) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(colorPurple).Render(logo))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%d %s questions, %s difficulty", m.request.Count, m.request.Type, m.request.Difficulty)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n", m.spinner.View(), infoStyle.Render("generating your quiz..."))
	b.WriteString(helpStyle.Render("  [Ctrl+C: Exit]"))

	return b.String()
}

func questionView(m *Model) string {
	var b strings.Builder
	q := m.currentQuestion()

	b.WriteString(titleStyle.Render(fmt.Sprintf("Question %d of %d", m.current+1, len(m.questions))))
	b.WriteString("\n")

	width := max(20, m.width-4)
	b.WriteString(borderStyle.Width(width).Render(q.Question))
	b.WriteString("\n\n")

	if q.IsMCQ() {
		for i, option := range q.Options {
			if i == m.cursor {
				b.WriteString(menuItemSelectedStyle.Render("> " + option))
			} else {
				b.WriteString(menuItemStyle.Render("  " + option))
			}
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("[↑/↓: Select] [Enter: Answer] [Esc: Quit]"))
		return b.String()
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("[Enter: Submit] [Esc: Quit]"))

	return b.String()
}

func reviewView(m *Model) string {
	var b strings.Builder

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	status := infoStyle.Render(m.saveStatus)
	if m.saveStatus == "result saved" {
		status = successStyle.Render(m.saveStatus)
	}
	b.WriteString(status)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("[↑/↓: Scroll] [q: Quit]"))

	return b.String()
}
