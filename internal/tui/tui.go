package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func NewApp(client *Client, req GenerateRequest) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPurple)

	ti := textinput.New()
	ti.Placeholder = "type your answer..."
	ti.CharLimit = 2000
	ti.Width = 80
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = inputStyle

	return &Model{
		state:    StateLoading,
		client:   client,
		request:  req,
		spinner:  sp,
		input:    ti,
		viewport: viewport.New(80, 20),
		answers:  map[int]string{},
		now:      time.Now,
		width:    80,
		height:   24,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.client.GenerateCmd(m.request))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Resize(msg.Width, msg.Height)
		return m, nil

	case ErrorMsg:
		m.err = msg.err
		m.state = StateError
		return m, nil

	case QuizLoadedMsg:
		return m, m.start(msg.questions)

	case ResultSavedMsg:
		if msg.err != nil {
			m.saveStatus = fmt.Sprintf("could not save result: %v", msg.err)
		} else {
			m.saveStatus = "result saved"
		}
		return m, nil
	}

	switch m.state {
	case StateLoading:
		return m.updateLoading(msg)

	case StateQuestion:
		return m.updateQuestion(msg)

	case StateReview:
		return m.updateReview(msg)

	case StateError:
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, tea.Quit
		}
		return m, nil

	default:
		return m, nil
	}
}

func (m *Model) View() string {
	switch m.state {
	case StateLoading:
		return loadingView(m)

	case StateQuestion:
		return questionView(m)

	case StateReview:
		return reviewView(m)

	case StateError:
		return errorView(m.err)

	default:
		return "Unknown state"
	}
}

// fits the input and review pane to the terminal
func (m *Model) Resize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(20, width-10)
	m.viewport.Width = width
	m.viewport.Height = max(5, height-4)

	if m.state == StateReview {
		m.viewport.SetContent(renderReview(m.reviewMarkdown(), m.viewport.Width))
	}
}

func (m *Model) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m *Model) updateReview(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && (key.String() == "q" || key.String() == "esc") {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

func errorView(err error) string {
	return fmt.Sprintf("\n  %s %v\n\n  %s\n", errorStyle.Render("Error:"), err, helpStyle.Render("press any key to exit"))
}
