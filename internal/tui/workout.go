package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fitcoach/internal/api"
	"fitcoach/internal/plan"
	"fitcoach/internal/service"
)

// Workout form field order.
const (
	woExperience = iota
	woEquipment
	woDays
	woFieldCount
)

var woLabels = [woFieldCount]string{"Experience", "Equipment", "Days/week"}

// WorkoutModel is the workout plan screen model
type WorkoutModel struct {
	coach    *service.Coach
	inputs   []textinput.Model
	focus    int
	viewport viewport.Model
	editing  bool
	busy     bool
	err      error
	fallback string
	ready    bool
	width    int
	height   int

	seq int
}

// NewWorkoutModel creates a new workout model
func NewWorkoutModel(coach *service.Coach) WorkoutModel {
	inputs := make([]textinput.Model, woFieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 60
	}
	inputs[woExperience].Placeholder = "beginner / intermediate / advanced"
	inputs[woEquipment].Placeholder = "none, dumbbells, full gym..."
	inputs[woDays].Placeholder = "3"

	return WorkoutModel{coach: coach, inputs: inputs}
}

// Init initializes the workout screen
func (m WorkoutModel) Init() tea.Cmd {
	return nil
}

func (m WorkoutModel) capturingInput() bool {
	return m.editing
}

type workoutGeneratedMsg struct {
	seq  int
	resp *api.PlanResponse
	err  error
}

func (m WorkoutModel) generate(seq int) tea.Cmd {
	coach := m.coach
	experience := strings.TrimSpace(m.inputs[woExperience].Value())
	equipment := strings.TrimSpace(m.inputs[woEquipment].Value())
	days, _ := strconv.Atoi(strings.TrimSpace(m.inputs[woDays].Value()))
	return func() tea.Msg {
		resp, err := coach.GenerateWorkout(context.Background(), experience, equipment, days)
		return workoutGeneratedMsg{seq: seq, resp: resp, err: err}
	}
}

// Update handles messages
func (m WorkoutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workoutGeneratedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.busy = false
		m.err = msg.err
		if cmd := sessionExpired(msg.err); cmd != nil {
			return m, cmd
		}
		if msg.err == nil && msg.resp != nil {
			m.fallback = ""
			if msg.resp.Record == nil {
				m.fallback = msg.resp.Text
			}
			m.refreshContent()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-10)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 10
		}
		m.refreshContent()

	case tea.KeyMsg:
		if m.editing {
			switch msg.String() {
			case "esc":
				m.editing = false
				m.inputs[m.focus].Blur()
				return m, nil
			case "tab", "enter":
				m.inputs[m.focus].Blur()
				m.focus = (m.focus + 1) % woFieldCount
				return m, m.inputs[m.focus].Focus()
			}
			var cmd tea.Cmd
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
			return m, cmd
		}
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "t":
			m.editing = true
			m.focus = woExperience
			return m, m.inputs[m.focus].Focus()
		case "g":
			m.seq++
			m.busy = true
			m.err = nil
			return m, m.generate(m.seq)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *WorkoutModel) refreshContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderContent())
}

func (m WorkoutModel) renderContent() string {
	state := m.coach.Snapshot()
	if state.WorkoutPlan == nil {
		if m.fallback != "" {
			return RenderBlocks(plan.RenderMarkdown(m.fallback))
		}
		return statusStyle.Render("\n  No workout plan yet. Press 'g' to generate one.")
	}
	return RenderBlocks(plan.RenderWorkout(state.WorkoutPlan))
}

// View renders the workout screen
func (m WorkoutModel) View() string {
	var form []string
	for i, input := range m.inputs {
		form = append(form, lipgloss.JoinHorizontal(
			lipgloss.Left,
			formLabelStyle.Render(woLabels[i]),
			input.View(),
		))
	}
	header := lipgloss.JoinVertical(lipgloss.Left, form...)

	var status string
	switch {
	case m.busy:
		status = statusStyle.Render("  Generating workout plan...")
	case m.err != nil:
		status = errorStyle.Render(fmt.Sprintf("  Error: %v", m.err))
	}

	if !m.ready {
		return lipgloss.JoinVertical(lipgloss.Left, header, status, m.renderContent())
	}

	footer := statusStyle.Render("  g: generate  t: edit preferences  j/k: scroll")

	return lipgloss.JoinVertical(lipgloss.Left, header, status, m.viewport.View(), footer)
}
