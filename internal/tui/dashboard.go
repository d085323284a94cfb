package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"fitcoach/internal/config"
	"fitcoach/internal/service"
	"fitcoach/internal/session"
)

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	coach   *service.Coach
	history *service.HistoryService
	display config.DisplayConfig

	state   session.State
	weekly  [7]float64
	loading bool
	err     error
	status  string

	seq      int
	inflight bool
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(coach *service.Coach, history *service.HistoryService, display config.DisplayConfig) DashboardModel {
	return DashboardModel{
		coach:   coach,
		history: history,
		display: display,
		state:   coach.Snapshot(),
		loading: true,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.load(m.seq)
}

type dashboardDataMsg struct {
	seq    int
	state  session.State
	weekly [7]float64
	err    error
}

type summarySavedMsg struct {
	seq    int
	pdfURL string
	err    error
}

func (m DashboardModel) load(seq int) tea.Cmd {
	coach, history := m.coach, m.history
	return func() tea.Msg {
		ctx := context.Background()
		if err := coach.RefreshMe(ctx); err != nil {
			return dashboardDataMsg{seq: seq, state: coach.Snapshot(), err: err}
		}
		weekly, err := history.Weekly(ctx)
		return dashboardDataMsg{seq: seq, state: coach.Snapshot(), weekly: weekly, err: err}
	}
}

func (m DashboardModel) saveSummary(seq int) tea.Cmd {
	coach := m.coach
	return func() tea.Msg {
		resp, err := coach.SaveSummary(context.Background())
		if err != nil {
			return summarySavedMsg{seq: seq, err: err}
		}
		return summarySavedMsg{seq: seq, pdfURL: resp.PDFURL}
	}
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.inflight = false
		m.loading = false
		m.err = msg.err
		m.state = msg.state
		m.weekly = msg.weekly
		if cmd := sessionExpired(msg.err); cmd != nil {
			return m, cmd
		}

	case summarySavedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.inflight = false
		if cmd := sessionExpired(msg.err); cmd != nil {
			return m, cmd
		}
		if msg.err != nil {
			m.status = errorStyle.Render("Export failed: " + msg.err.Error())
		} else if msg.pdfURL != "" {
			m.status = successStyle.Render("Summary saved, PDF at " + msg.pdfURL)
		} else {
			m.status = successStyle.Render("Summary saved")
		}

	case tea.KeyMsg:
		if m.inflight {
			return m, nil
		}
		switch msg.String() {
		case "r":
			m.seq++
			m.inflight = true
			m.loading = true
			m.status = ""
			return m, m.load(m.seq)
		case "e":
			m.seq++
			m.inflight = true
			m.status = statusStyle.Render("Saving summary...")
			return m, m.saveSummary(m.seq)
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "\n  Loading dashboard..."
	}

	var sections []string

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("  Offline: %v", m.err)))
	}

	sections = append(sections, m.renderProgressCard())

	if hasWeeklyData(m.weekly) {
		sections = append(sections, m.renderWeeklyChart())
	}

	if m.state.Advice != "" {
		sections = append(sections, m.renderAdviceCard())
	}

	if m.status != "" {
		sections = append(sections, m.status)
	}

	help := statusStyle.Render("r: refresh  e: save summary + PDF  ?: help")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderProgressCard() string {
	name := m.state.Profile.Name
	if name == "" {
		name = "there"
	}
	title := cardTitleStyle.Render("Hello, " + name)

	lines := []string{
		RenderMetric("Today's Calories", fmt.Sprintf("%.0f kcal", m.state.Calories)),
	}

	if m.state.DailyGoal > 0 {
		lines = append(lines,
			RenderMetric("Daily Goal", fmt.Sprintf("%.0f kcal", m.state.DailyGoal)),
			"",
			RenderProgressBar(m.state.Calories/m.state.DailyGoal, 40),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(50).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderWeeklyChart() string {
	title := cardTitleStyle.Render("This Week's Calories (Mon-Sun)")

	graph := asciigraph.Plot(m.weekly[:],
		asciigraph.Height(m.display.ChartHeight),
		asciigraph.Width(m.display.ChartWidth),
		asciigraph.Precision(0),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

func (m DashboardModel) renderAdviceCard() string {
	title := cardTitleStyle.Render("Coach's Advice")

	advice := m.state.Advice
	if idx := strings.Index(advice, "\n"); idx > 0 {
		advice = advice[:idx] + " ..."
	}

	return cardStyle.Width(70).Render(lipgloss.JoinVertical(lipgloss.Left, title, advice))
}

func hasWeeklyData(weekly [7]float64) bool {
	for _, v := range weekly {
		if v > 0 {
			return true
		}
	}
	return false
}
