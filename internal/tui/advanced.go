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

// Advanced plan form field order.
const (
	advExperience = iota
	advLocation
	advDays
	advFieldCount
)

var advLabels = [advFieldCount]string{"Experience", "Location", "Days/week"}

// AdvancedModel is the combined workout+diet plan screen model
type AdvancedModel struct {
	coach    *service.Coach
	inputs   []textinput.Model
	focus    int
	viewport viewport.Model
	editing  bool
	busy     bool
	err      error
	ready    bool
	width    int
	height   int

	seq int
}

// NewAdvancedModel creates a new advanced plan model
func NewAdvancedModel(coach *service.Coach) AdvancedModel {
	inputs := make([]textinput.Model, advFieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 60
	}
	inputs[advExperience].Placeholder = "beginner / intermediate / advanced"
	inputs[advLocation].Placeholder = "home / gym"
	inputs[advDays].Placeholder = "4"

	return AdvancedModel{coach: coach, inputs: inputs}
}

// Init initializes the advanced plan screen
func (m AdvancedModel) Init() tea.Cmd {
	return nil
}

func (m AdvancedModel) capturingInput() bool {
	return m.editing
}

type advancedGeneratedMsg struct {
	seq  int
	resp *api.AdvancedPlanResponse
	err  error
}

func (m AdvancedModel) generate(seq int) tea.Cmd {
	coach := m.coach
	experience := strings.TrimSpace(m.inputs[advExperience].Value())
	location := strings.TrimSpace(m.inputs[advLocation].Value())
	days, _ := strconv.Atoi(strings.TrimSpace(m.inputs[advDays].Value()))
	return func() tea.Msg {
		resp, err := coach.GenerateAdvancedPlan(context.Background(), experience, location, days)
		return advancedGeneratedMsg{seq: seq, resp: resp, err: err}
	}
}

// Update handles messages
func (m AdvancedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case advancedGeneratedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.busy = false
		m.err = msg.err
		if cmd := sessionExpired(msg.err); cmd != nil {
			return m, cmd
		}
		if msg.err == nil {
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
				m.focus = (m.focus + 1) % advFieldCount
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
			m.focus = advExperience
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

func (m *AdvancedModel) refreshContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderContent())
}

// renderContent shows both plan halves, workout first.
func (m AdvancedModel) renderContent() string {
	state := m.coach.Snapshot()
	if state.WorkoutPlan == nil && state.DietPlan == nil {
		return statusStyle.Render("\n  No plan yet. Press 'g' to generate a combined workout + diet plan.")
	}

	var sections []string
	if state.WorkoutPlan != nil {
		sections = append(sections, RenderBlocks(plan.RenderWorkout(state.WorkoutPlan)))
	}
	if state.DietPlan != nil {
		sections = append(sections, RenderBlocks(plan.RenderDiet(state.DietPlan)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// View renders the advanced plan screen
func (m AdvancedModel) View() string {
	var form []string
	for i, input := range m.inputs {
		form = append(form, lipgloss.JoinHorizontal(
			lipgloss.Left,
			formLabelStyle.Render(advLabels[i]),
			input.View(),
		))
	}
	header := lipgloss.JoinVertical(lipgloss.Left, form...)

	var status string
	switch {
	case m.busy:
		status = statusStyle.Render("  Generating combined plan...")
	case m.err != nil:
		status = errorStyle.Render(fmt.Sprintf("  Error: %v", m.err))
	}

	if !m.ready {
		return lipgloss.JoinVertical(lipgloss.Left, header, status, m.renderContent())
	}

	footer := statusStyle.Render("  g: generate  t: edit preferences  j/k: scroll")

	return lipgloss.JoinVertical(lipgloss.Left, header, status, m.viewport.View(), footer)
}
