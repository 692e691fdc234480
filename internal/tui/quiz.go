package tui

import (
	"errors"
	"strings"

	"codeberg.org/wexam/server/internal/quizgen"
	"codeberg.org/wexam/server/wexam/results"
	tea "github.com/charmbracelet/bubbletea"
)

// switches to the first question and starts the clock
func (m *Model) start(questions []quizgen.Question) tea.Cmd {
	if len(questions) == 0 {
		m.err = errors.New("server returned an empty quiz")
		m.state = StateError
		return nil
	}

	m.questions = questions
	m.current = 0
	m.answers = map[int]string{}
	m.startedAt = m.now()
	m.state = StateQuestion

	return m.prepareQuestion()
}

func (m *Model) currentQuestion() quizgen.Question {
	return m.questions[m.current]
}

// resets the cursor and input for the question being shown
func (m *Model) prepareQuestion() tea.Cmd {
	m.cursor = 0
	m.input.SetValue("")

	if m.currentQuestion().IsMCQ() {
		m.input.Blur()
		return nil
	}

	return m.input.Focus()
}

func (m *Model) updateQuestion(msg tea.Msg) (tea.Model, tea.Cmd) {
	q := m.currentQuestion()

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if q.IsMCQ() {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if q.IsMCQ() {
		switch key.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(q.Options)-1 {
				m.cursor++
			}
		case "enter", " ":
			if len(q.Options) > 0 {
				m.answers[m.current] = q.Options[m.cursor]
			}
			return m, m.advance()
		case "esc":
			return m, tea.Quit
		}
		return m, nil
	}

	switch key.String() {
	case "enter":
		m.answers[m.current] = strings.TrimSpace(m.input.Value())
		return m, m.advance()
	case "esc":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// moves to the next question or finishes the quiz
func (m *Model) advance() tea.Cmd {
	if m.current < len(m.questions)-1 {
		m.current++
		return m.prepareQuestion()
	}

	return m.finish()
}

// scores the attempt, renders the review and posts the result
func (m *Model) finish() tea.Cmd {
	m.elapsed = m.now().Sub(m.startedAt)
	m.card = results.Score(m.questions, m.answers)
	m.state = StateReview
	m.input.Blur()
	m.viewport.SetContent(renderReview(m.reviewMarkdown(), m.viewport.Width))
	m.viewport.GotoTop()

	// free-text answers aren't auto-graded so there is nothing to record
	if m.card.Total == 0 {
		m.saveStatus = "no objective questions, result not recorded"
		return nil
	}

	m.saveStatus = "saving result..."
	return m.client.SaveResultCmd(m.resultRequest())
}

func (m *Model) resultRequest() results.CreateResultRequest {
	return results.CreateResultRequest{
		Score:       m.card.Percentage,
		Total:       m.card.Total,
		Correct:     m.card.Correct,
		Wrong:       m.card.Wrong,
		TimeElapsed: int(m.elapsed.Seconds()),
		Difficulty:  m.request.Difficulty,
		Type:        m.request.Type,
	}
}
