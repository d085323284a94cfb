package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fitcoach/internal/plan"
	"fitcoach/internal/service"
)

// CoachModel is the advice and chat screen model
type CoachModel struct {
	coach    *service.Coach
	input    textinput.Model
	viewport viewport.Model
	editing  bool
	busy     bool
	err      error
	ready    bool
	width    int
	height   int

	seq int
}

// NewCoachModel creates a new coach model
func NewCoachModel(coach *service.Coach) CoachModel {
	input := textinput.New()
	input.Placeholder = "Ask your coach anything..."
	input.CharLimit = 400
	input.Width = 60

	return CoachModel{coach: coach, input: input}
}

// Init initializes the coach screen
func (m CoachModel) Init() tea.Cmd {
	return nil
}

func (m CoachModel) capturingInput() bool {
	return m.editing
}

type adviceMsg struct {
	seq int
	err error
}

type chatReplyMsg struct {
	seq int
	err error
}

func (m CoachModel) fetchAdvice(seq int) tea.Cmd {
	coach := m.coach
	return func() tea.Msg {
		_, err := coach.Recommend(context.Background())
		return adviceMsg{seq: seq, err: err}
	}
}

func (m CoachModel) sendChat(seq int) tea.Cmd {
	coach := m.coach
	message := m.input.Value()
	return func() tea.Msg {
		_, err := coach.Chat(context.Background(), message)
		return chatReplyMsg{seq: seq, err: err}
	}
}

// Update handles messages
func (m CoachModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case adviceMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.busy = false
		m.err = msg.err
		if cmd := sessionExpired(msg.err); cmd != nil {
			return m, cmd
		}
		m.refreshContent()
		return m, nil

	case chatReplyMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.busy = false
		m.err = msg.err
		if cmd := sessionExpired(msg.err); cmd != nil {
			return m, cmd
		}
		if msg.err == nil {
			m.input.SetValue("")
		}
		m.refreshContent()
		m.viewport.GotoBottom()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-9)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 9
		}
		m.refreshContent()

	case tea.KeyMsg:
		if m.editing {
			switch msg.String() {
			case "esc":
				m.editing = false
				m.input.Blur()
				return m, nil
			case "enter":
				if m.busy || m.input.Value() == "" {
					return m, nil
				}
				m.seq++
				m.busy = true
				m.err = nil
				return m, m.sendChat(m.seq)
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "i":
			m.editing = true
			return m, m.input.Focus()
		case "a":
			m.seq++
			m.busy = true
			m.err = nil
			return m, m.fetchAdvice(m.seq)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *CoachModel) refreshContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderContent())
}

func (m CoachModel) renderContent() string {
	state := m.coach.Snapshot()

	var sections []string

	if state.Advice != "" {
		sections = append(sections,
			cardTitleStyle.Render("Personalized Advice"),
			RenderBlocks(plan.RenderMarkdown(state.Advice)),
			"",
		)
	}

	if len(state.Chat) > 0 {
		sections = append(sections, cardTitleStyle.Render("Chat"))
		for _, msg := range state.Chat {
			label := chatCoachStyle.Render("Coach")
			if msg.Role == "user" {
				label = chatUserStyle.Render("You")
			}
			sections = append(sections, label)
			sections = append(sections, RenderBlocks(plan.RenderMarkdown(msg.Content)))
			sections = append(sections, "")
		}
	}

	if len(sections) == 0 {
		return statusStyle.Render("\n  Press 'a' for advice, or 'i' to start chatting.")
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// View renders the coach screen
func (m CoachModel) View() string {
	var status string
	switch {
	case m.busy:
		status = statusStyle.Render("  Thinking...")
	case m.err != nil:
		status = errorStyle.Render(fmt.Sprintf("  Error: %v", m.err))
	}

	form := lipgloss.JoinHorizontal(
		lipgloss.Left,
		formLabelStyle.Render("Message"),
		m.input.View(),
	)

	footer := statusStyle.Render("  a: get advice  i: type a message  enter: send  j/k: scroll")

	if !m.ready {
		return lipgloss.JoinVertical(lipgloss.Left, m.renderContent(), form, status, footer)
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), form, status, footer)
}
