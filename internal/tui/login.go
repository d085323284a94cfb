package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fitcoach/internal/service"
)

// LoginModel is the login screen model
type LoginModel struct {
	coach  *service.Coach
	inputs []textinput.Model
	focus  int
	busy   bool
	err    error
}

// NewLoginModel creates a new login model
func NewLoginModel(coach *service.Coach) LoginModel {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Focus()
	email.CharLimit = 120

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 120

	return LoginModel{
		coach:  coach,
		inputs: []textinput.Model{email, password},
	}
}

// Init initializes the login screen
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

type loginResultMsg struct {
	err error
}

func (m LoginModel) submit() tea.Cmd {
	email := strings.TrimSpace(m.inputs[0].Value())
	password := m.inputs[1].Value()
	return func() tea.Msg {
		return loginResultMsg{err: m.coach.Login(context.Background(), email, password)}
	}
}

// Update handles messages
func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil {
			return m, func() tea.Msg { return LoggedInMsg{} }
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focus = (m.focus + 1) % len(m.inputs)
			for i := range m.inputs {
				if i == m.focus {
					m.inputs[i].Focus()
				} else {
					m.inputs[i].Blur()
				}
			}
			return m, nil
		case "enter":
			if strings.TrimSpace(m.inputs[0].Value()) == "" || m.inputs[1].Value() == "" {
				m.err = fmt.Errorf("email and password are required")
				return m, nil
			}
			m.busy = true
			m.err = nil
			return m, m.submit()
		case "ctrl+r":
			return m, func() tea.Msg { return showRegisterMsg{} }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View renders the login screen
func (m LoginModel) View() string {
	title := cardTitleStyle.Render("Log In")

	lines := []string{
		title,
		lipgloss.JoinHorizontal(lipgloss.Left, formLabelStyle.Render("Email"), m.inputs[0].View()),
		lipgloss.JoinHorizontal(lipgloss.Left, formLabelStyle.Render("Password"), m.inputs[1].View()),
		"",
	}

	if m.busy {
		lines = append(lines, statusStyle.Render("Logging in..."))
	} else if m.err != nil {
		lines = append(lines, errorStyle.Render(m.err.Error()))
	}

	lines = append(lines, "", statusStyle.Render("enter: log in  tab: next field  ctrl+r: create account  ctrl+c: quit"))

	return cardStyle.Width(60).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
