package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fitcoach/internal/api"
	"fitcoach/internal/plan"
	"fitcoach/internal/service"
)

// DietModel is the diet plan screen model
type DietModel struct {
	coach    *service.Coach
	dietType textinput.Model
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

// NewDietModel creates a new diet model
func NewDietModel(coach *service.Coach) DietModel {
	dietType := textinput.New()
	dietType.Placeholder = "vegetarian, keto, high protein..."
	dietType.CharLimit = 60

	return DietModel{coach: coach, dietType: dietType}
}

// Init initializes the diet screen
func (m DietModel) Init() tea.Cmd {
	return nil
}

func (m DietModel) capturingInput() bool {
	return m.editing
}

type dietGeneratedMsg struct {
	seq  int
	resp *api.PlanResponse
	err  error
}

func (m DietModel) generate(seq int) tea.Cmd {
	coach := m.coach
	dietType := m.dietType.Value()
	return func() tea.Msg {
		resp, err := coach.GenerateDiet(context.Background(), dietType)
		return dietGeneratedMsg{seq: seq, resp: resp, err: err}
	}
}

// Update handles messages
func (m DietModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dietGeneratedMsg:
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
			m.viewport = viewport.New(msg.Width, msg.Height-8)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 8
		}
		m.refreshContent()

	case tea.KeyMsg:
		if m.editing {
			switch msg.String() {
			case "esc", "enter":
				m.editing = false
				m.dietType.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.dietType, cmd = m.dietType.Update(msg)
			return m, cmd
		}
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "t":
			m.editing = true
			return m, m.dietType.Focus()
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

// refreshContent re-renders the current plan into the viewport.
func (m *DietModel) refreshContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderContent())
}

func (m DietModel) renderContent() string {
	state := m.coach.Snapshot()
	if state.DietPlan == nil {
		if m.fallback != "" {
			return RenderBlocks(plan.RenderMarkdown(m.fallback))
		}
		return statusStyle.Render("\n  No diet plan yet. Press 'g' to generate one.")
	}
	return RenderBlocks(plan.RenderDiet(state.DietPlan))
}

// View renders the diet screen
func (m DietModel) View() string {
	header := lipgloss.JoinHorizontal(
		lipgloss.Left,
		formLabelStyle.Render("Diet type"),
		m.dietType.View(),
	)

	var status string
	switch {
	case m.busy:
		status = statusStyle.Render("  Generating diet plan...")
	case m.err != nil:
		status = errorStyle.Render(fmt.Sprintf("  Error: %v", m.err))
	}

	if !m.ready {
		return lipgloss.JoinVertical(lipgloss.Left, header, status, m.renderContent())
	}

	footer := statusStyle.Render("  g: generate  t: edit diet type  j/k: scroll")

	return lipgloss.JoinVertical(lipgloss.Left, header, status, m.viewport.View(), footer)
}
