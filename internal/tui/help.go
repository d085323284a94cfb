package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	var sections []string

	title := cardTitleStyle.Render("Keyboard Shortcuts")
	sections = append(sections, title)

	navSection := m.renderSection("Navigation", []keyHelp{
		{"1", "Dashboard"},
		{"2", "Diet plan"},
		{"3", "Workout plan"},
		{"4", "Advanced plan (workout + diet)"},
		{"5", "Calorie tracker"},
		{"6", "Coach (advice and chat)"},
		{"7", "History"},
		{"8", "Profile"},
		{"?", "Help (this screen)"},
		{"q", "Quit"},
		{"ctrl+l", "Log out"},
		{"esc", "Back / close help"},
	})
	sections = append(sections, navSection)

	dashSection := m.renderSection("Dashboard", []keyHelp{
		{"r", "Refresh from the server"},
		{"e", "Save summary and export PDF"},
	})
	sections = append(sections, dashSection)

	planSection := m.renderSection("Plan Screens", []keyHelp{
		{"g", "Generate a new plan"},
		{"t", "Edit preferences (diet type, experience...)"},
		{"j / k", "Scroll the plan"},
	})
	sections = append(sections, planSection)

	historySection := m.renderSection("History", []keyHelp{
		{"j / k", "Move cursor"},
		{"enter", "Expand / collapse an entry"},
		{"n", "Rename the entry"},
		{"d", "Delete the entry"},
		{"r", "Refresh list"},
	})
	sections = append(sections, historySection)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, sectionTitleStyle.Render(title))

	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}

	return strings.Join(lines, "\n")
}
