package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fitcoach/internal/api"
	"fitcoach/internal/service"
)

// CaloriesModel is the calorie tracking screen model
type CaloriesModel struct {
	coach   *service.Coach
	input   textinput.Model
	editing bool
	busy    bool
	err     error
	details string

	seq int
}

// NewCaloriesModel creates a new calories model
func NewCaloriesModel(coach *service.Coach) CaloriesModel {
	input := textinput.New()
	input.Placeholder = "2 eggs and a slice of toast"
	input.CharLimit = 200
	input.Width = 50

	return CaloriesModel{coach: coach, input: input}
}

// Init initializes the calories screen
func (m CaloriesModel) Init() tea.Cmd {
	return nil
}

func (m CaloriesModel) capturingInput() bool {
	return m.editing
}

type foodLoggedMsg struct {
	seq  int
	resp *api.CaloriesResponse
	err  error
}

func (m CaloriesModel) logFood(seq int) tea.Cmd {
	coach := m.coach
	food := m.input.Value()
	return func() tea.Msg {
		resp, err := coach.AddFood(context.Background(), food)
		return foodLoggedMsg{seq: seq, resp: resp, err: err}
	}
}

// Update handles messages
func (m CaloriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case foodLoggedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.busy = false
		m.err = msg.err
		if cmd := sessionExpired(msg.err); cmd != nil {
			return m, cmd
		}
		if msg.err == nil && msg.resp != nil {
			m.details = msg.resp.Details
			m.input.SetValue("")
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			switch msg.String() {
			case "esc":
				m.editing = false
				m.input.Blur()
				return m, nil
			case "enter":
				if m.busy {
					return m, nil
				}
				m.seq++
				m.busy = true
				m.err = nil
				return m, m.logFood(m.seq)
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		if msg.String() == "i" && !m.busy {
			m.editing = true
			return m, m.input.Focus()
		}
	}
	return m, nil
}

// View renders the calories screen
func (m CaloriesModel) View() string {
	state := m.coach.Snapshot()

	title := cardTitleStyle.Render("Calorie Tracker")

	lines := []string{
		RenderMetric("Today's Total", fmt.Sprintf("%.0f kcal", state.Calories)),
	}
	if state.DailyGoal > 0 {
		remaining := state.DailyGoal - state.Calories
		lines = append(lines,
			RenderMetric("Daily Goal", fmt.Sprintf("%.0f kcal", state.DailyGoal)),
			RenderMetric("Remaining", fmt.Sprintf("%.0f kcal", remaining)),
			"",
			RenderProgressBar(state.Calories/state.DailyGoal, 40),
		)
	}

	card := cardStyle.Width(50).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, lipgloss.JoinVertical(lipgloss.Left, lines...)))

	form := lipgloss.JoinHorizontal(
		lipgloss.Left,
		formLabelStyle.Render("Log food"),
		m.input.View(),
	)

	var status string
	switch {
	case m.busy:
		status = statusStyle.Render("  Estimating calories...")
	case m.err != nil:
		status = errorStyle.Render(fmt.Sprintf("  Error: %v", m.err))
	case m.details != "":
		status = successStyle.Render("  " + m.details)
	}

	footer := statusStyle.Render("  i: type a food entry  enter: log it  esc: done typing")

	return lipgloss.JoinVertical(lipgloss.Left, card, "", form, status, footer)
}
