package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fitcoach/internal/service"
	"fitcoach/internal/session"
)

// Profile form field order.
const (
	pfName = iota
	pfAge
	pfGender
	pfHeight
	pfWeight
	pfGoal
	pfActivity
	pfFood
	pfFieldCount
)

var pfLabels = [pfFieldCount]string{
	"Name", "Age", "Gender", "Height (cm)", "Weight (kg)", "Goal", "Activity", "Food pref",
}

// ProfileModel is the profile editing screen model
type ProfileModel struct {
	coach   *service.Coach
	inputs  []textinput.Model
	focus   int
	editing bool
	busy    bool
	err     error
	saved   bool

	seq int
}

// NewProfileModel creates a profile model pre-filled from the session.
func NewProfileModel(coach *service.Coach) ProfileModel {
	p := coach.Snapshot().Profile

	values := [pfFieldCount]string{
		p.Name,
		formatIntField(p.Age),
		p.Gender,
		formatFloatField(p.HeightCm),
		formatFloatField(p.WeightKg),
		p.Goal,
		p.ActivityLevel,
		p.FoodPreference,
	}

	inputs := make([]textinput.Model, pfFieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 120
		inputs[i].SetValue(values[i])
	}
	inputs[pfActivity].Placeholder = "sedentary / moderate / active"

	return ProfileModel{coach: coach, inputs: inputs}
}

func formatIntField(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func formatFloatField(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Init initializes the profile screen
func (m ProfileModel) Init() tea.Cmd {
	return nil
}

func (m ProfileModel) capturingInput() bool {
	return m.editing
}

type profileSavedMsg struct {
	seq int
	err error
}

func (m ProfileModel) buildProfile() (session.Profile, error) {
	p := session.Profile{
		Name:           strings.TrimSpace(m.inputs[pfName].Value()),
		Gender:         strings.TrimSpace(m.inputs[pfGender].Value()),
		Goal:           strings.TrimSpace(m.inputs[pfGoal].Value()),
		ActivityLevel:  strings.TrimSpace(m.inputs[pfActivity].Value()),
		FoodPreference: strings.TrimSpace(m.inputs[pfFood].Value()),
	}

	if v := strings.TrimSpace(m.inputs[pfAge].Value()); v != "" {
		age, err := strconv.Atoi(v)
		if err != nil {
			return p, fmt.Errorf("age must be a number")
		}
		p.Age = age
	}
	if v := strings.TrimSpace(m.inputs[pfHeight].Value()); v != "" {
		h, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, fmt.Errorf("height must be a number")
		}
		p.HeightCm = h
	}
	if v := strings.TrimSpace(m.inputs[pfWeight].Value()); v != "" {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, fmt.Errorf("weight must be a number")
		}
		p.WeightKg = w
	}

	return p, nil
}

func (m ProfileModel) save(seq int, profile session.Profile) tea.Cmd {
	coach := m.coach
	return func() tea.Msg {
		return profileSavedMsg{seq: seq, err: coach.SaveProfile(context.Background(), profile)}
	}
}

// Update handles messages
func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profileSavedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.busy = false
		m.err = msg.err
		if cmd := sessionExpired(msg.err); cmd != nil {
			return m, cmd
		}
		m.saved = msg.err == nil
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			switch msg.String() {
			case "esc":
				m.editing = false
				m.inputs[m.focus].Blur()
				return m, nil
			case "tab", "enter", "down":
				m.inputs[m.focus].Blur()
				m.focus = (m.focus + 1) % pfFieldCount
				return m, m.inputs[m.focus].Focus()
			case "shift+tab", "up":
				m.inputs[m.focus].Blur()
				m.focus = (m.focus + pfFieldCount - 1) % pfFieldCount
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
		case "i":
			m.editing = true
			m.saved = false
			m.focus = pfName
			return m, m.inputs[m.focus].Focus()
		case "s":
			profile, err := m.buildProfile()
			if err != nil {
				m.err = err
				return m, nil
			}
			m.seq++
			m.busy = true
			m.err = nil
			m.saved = false
			return m, m.save(m.seq, profile)
		}
	}
	return m, nil
}

// View renders the profile screen
func (m ProfileModel) View() string {
	lines := []string{cardTitleStyle.Render("Profile")}

	for i, input := range m.inputs {
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Left,
			formLabelStyle.Render(pfLabels[i]),
			input.View(),
		))
	}
	lines = append(lines, "")

	switch {
	case m.busy:
		lines = append(lines, statusStyle.Render("Saving..."))
	case m.err != nil:
		lines = append(lines, errorStyle.Render(m.err.Error()))
	case m.saved:
		lines = append(lines, successStyle.Render("Profile saved"))
	}

	card := cardStyle.Width(64).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	footer := statusStyle.Render("  i: edit fields  s: save  esc: stop editing")

	return lipgloss.JoinVertical(lipgloss.Left, card, footer)
}
