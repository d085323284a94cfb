package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fitcoach/internal/api"
	"fitcoach/internal/service"
)

// Registration form field order.
const (
	regName = iota
	regEmail
	regPassword
	regAge
	regGender
	regHeight
	regWeight
	regGoal
	regFieldCount
)

var regLabels = [regFieldCount]string{
	"Name", "Email", "Password", "Age", "Gender", "Height (cm)", "Weight (kg)", "Goal",
}

// RegisterModel is the account creation screen model
type RegisterModel struct {
	coach  *service.Coach
	inputs []textinput.Model
	focus  int
	busy   bool
	err    error
}

// NewRegisterModel creates a new register model
func NewRegisterModel(coach *service.Coach) RegisterModel {
	inputs := make([]textinput.Model, regFieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 120
	}
	inputs[regPassword].EchoMode = textinput.EchoPassword
	inputs[regGender].Placeholder = "male / female / other"
	inputs[regGoal].Placeholder = "lose weight, gain muscle, maintain..."
	inputs[regName].Focus()

	return RegisterModel{coach: coach, inputs: inputs}
}

// Init initializes the register screen
func (m RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

type registerResultMsg struct {
	err error
}

func (m RegisterModel) buildRequest() (api.RegisterRequest, error) {
	req := api.RegisterRequest{
		Name:     strings.TrimSpace(m.inputs[regName].Value()),
		Email:    strings.TrimSpace(m.inputs[regEmail].Value()),
		Password: m.inputs[regPassword].Value(),
		Gender:   strings.TrimSpace(m.inputs[regGender].Value()),
		Goal:     strings.TrimSpace(m.inputs[regGoal].Value()),
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return req, fmt.Errorf("name, email and password are required")
	}

	if v := strings.TrimSpace(m.inputs[regAge].Value()); v != "" {
		age, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("age must be a number")
		}
		req.Age = age
	}
	if v := strings.TrimSpace(m.inputs[regHeight].Value()); v != "" {
		h, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, fmt.Errorf("height must be a number")
		}
		req.Height = h
	}
	if v := strings.TrimSpace(m.inputs[regWeight].Value()); v != "" {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, fmt.Errorf("weight must be a number")
		}
		req.Weight = w
	}

	return req, nil
}

func (m RegisterModel) submit(req api.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		return registerResultMsg{err: m.coach.Register(context.Background(), req)}
	}
}

// Update handles messages
func (m RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
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
		case "esc":
			return m, func() tea.Msg { return showLoginMsg{} }
		case "tab", "down":
			m.setFocus((m.focus + 1) % regFieldCount)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + regFieldCount - 1) % regFieldCount)
			return m, nil
		case "enter":
			if m.focus < regFieldCount-1 {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			req, err := m.buildRequest()
			if err != nil {
				m.err = err
				return m, nil
			}
			m.busy = true
			m.err = nil
			return m, m.submit(req)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *RegisterModel) setFocus(i int) {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

// View renders the register screen
func (m RegisterModel) View() string {
	lines := []string{cardTitleStyle.Render("Create Account")}

	for i, input := range m.inputs {
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Left,
			formLabelStyle.Render(regLabels[i]),
			input.View(),
		))
	}
	lines = append(lines, "")

	if m.busy {
		lines = append(lines, statusStyle.Render("Creating account..."))
	} else if m.err != nil {
		lines = append(lines, errorStyle.Render(m.err.Error()))
	}

	lines = append(lines, "", statusStyle.Render("enter: next / submit  tab: next field  esc: back to login"))

	return cardStyle.Width(64).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
