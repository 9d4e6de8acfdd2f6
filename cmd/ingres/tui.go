package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/poiesic/ingres"
	"github.com/poiesic/ingres/ai"
	"github.com/poiesic/ingres/core"
)

// dashboardService is the TUI-facing subset of the engine.
type dashboardService interface {
	Ask(ctx context.Context, question string) (*ingres.Answer, error)
	SubmitFeedback(ctx context.Context, text string) (*core.Feedback, error)
}

// feedbackCommand turns an input line into a feedback submission.
const feedbackCommand = "/feedback"

// answerMsg carries a finished Ask back into the update loop.
type answerMsg struct {
	question string
	answer   *ingres.Answer
	err      error
}

type feedbackMsg struct {
	feedback *core.Feedback
	err      error
}

// dashboard is the Bubble Tea model of the interactive dashboard.
type dashboard struct {
	ctx      context.Context
	service  dashboardService
	input    textinput.Model
	viewport viewport.Model
	answer   *ingres.Answer
	summary  string
	status   string
	busy     bool
	ready    bool
}

func newDashboard(ctx context.Context, service dashboardService, summary string) dashboard {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about a state or district, or /feedback <text>"
	ti.Focus()
	ti.CharLimit = 0
	return dashboard{
		ctx:      ctx,
		service:  service,
		input:    ti,
		viewport: viewport.New(0, 0),
		summary:  summary,
		status:   "Ready. Type a question and press Enter.",
	}
}

func (m dashboard) Init() tea.Cmd { return textinput.Blink }

func (m dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header + summary, status, input box, spacer
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved-rh)
		m.viewport.SetContent(m.renderAnswer())
		return m, nil

	case answerMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.answer = msg.answer
		m.status = answerStatus(msg.question, msg.answer)
		m.viewport.SetContent(m.renderAnswer())
		m.viewport.GotoTop()
		return m, nil

	case feedbackMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "Feedback not saved: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("Thank you! Feedback #%d saved.", msg.feedback.Id)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case tea.KeyEnter:
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit dispatches the input line as a question or a feedback comment.
func (m dashboard) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" || m.busy {
		return m, nil
	}
	m.input.SetValue("")
	m.busy = true

	if text, ok := strings.CutPrefix(line, feedbackCommand); ok {
		m.status = "Saving feedback..."
		ctx, service := m.ctx, m.service
		return m, func() tea.Msg {
			f, err := service.SubmitFeedback(ctx, strings.TrimSpace(text))
			return feedbackMsg{feedback: f, err: err}
		}
	}

	m.status = fmt.Sprintf("Searching %q...", line)
	ctx, service := m.ctx, m.service
	return m, func() tea.Msg {
		answer, err := service.Ask(ctx, line)
		return answerMsg{question: line, answer: answer, err: err}
	}
}

func (m dashboard) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("INGRES Groundwater Dashboard")
	summary := mutedStyle.Render(m.summary)
	results := resultBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m dashboard) renderAnswer() string {
	if m.answer == nil {
		return "No results yet."
	}
	return renderAnswer(m.answer, max(m.viewport.Width-4, 30))
}

func answerStatus(question string, answer *ingres.Answer) string {
	status := fmt.Sprintf("%s result for %q", answer.Result.Kind, question)
	switch answer.Translation.Status {
	case ai.TranslationTranslated:
		status += " (translated to " + answer.Language.Name() + ")"
	case ai.TranslationFailed, ai.TranslationUnavailable:
		status += " (" + answer.Language.Name() + " translation " + answer.Translation.Status.String() + ", showing English)"
	}
	return status
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)
