package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fitcoach/internal/history"
	"fitcoach/internal/plan"
	"fitcoach/internal/service"
)

// HistoryModel is the saved summaries screen model
type HistoryModel struct {
	service *service.HistoryService

	entries   []history.Entry
	cursor    int
	expanded  int // index of the expanded entry, -1 for none
	fromCache bool

	renaming    bool
	renameInput textinput.Model
	confirming  bool

	viewport viewport.Model
	loading  bool
	busy     bool
	err      error
	ready    bool

	seq int
}

// NewHistoryModel creates a new history model
func NewHistoryModel(svc *service.HistoryService) HistoryModel {
	renameInput := textinput.New()
	renameInput.CharLimit = 80
	renameInput.Width = 40

	return HistoryModel{
		service:     svc,
		expanded:    -1,
		renameInput: renameInput,
		loading:     true,
	}
}

// Init initializes the history screen
func (m HistoryModel) Init() tea.Cmd {
	return m.load(m.seq)
}

func (m HistoryModel) capturingInput() bool {
	return m.renaming
}

type historyLoadedMsg struct {
	seq       int
	entries   []history.Entry
	fromCache bool
	err       error
}

type historyMutatedMsg struct {
	seq int
	err error
}

func (m HistoryModel) load(seq int) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		entries, fromCache, err := svc.List(context.Background())
		return historyLoadedMsg{seq: seq, entries: entries, fromCache: fromCache, err: err}
	}
}

func (m HistoryModel) rename(seq int, id, title string) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		return historyMutatedMsg{seq: seq, err: svc.Rename(context.Background(), id, title)}
	}
}

func (m HistoryModel) delete(seq int, id string) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		return historyMutatedMsg{seq: seq, err: svc.Delete(context.Background(), id)}
	}
}

// Update handles messages
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.busy = false
		m.err = msg.err
		if cmd := sessionExpired(msg.err); cmd != nil {
			return m, cmd
		}
		if msg.err == nil {
			m.entries = msg.entries
			m.fromCache = msg.fromCache
			if m.cursor >= len(m.entries) {
				m.cursor = max(0, len(m.entries)-1)
			}
			m.expanded = -1
		}
		m.refreshContent()
		return m, nil

	case historyMutatedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.busy = false
		m.err = msg.err
		if cmd := sessionExpired(msg.err); cmd != nil {
			return m, cmd
		}
		if msg.err == nil {
			// Re-list so the screen reflects the server's state
			m.seq++
			m.busy = true
			return m, m.load(m.seq)
		}
		m.refreshContent()
		return m, nil

	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-7)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 7
		}
		m.refreshContent()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m HistoryModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.renaming {
		switch msg.String() {
		case "esc":
			m.renaming = false
			m.renameInput.Blur()
			m.refreshContent()
			return m, nil
		case "enter":
			title := strings.TrimSpace(m.renameInput.Value())
			m.renaming = false
			m.renameInput.Blur()
			if title == "" || m.cursor >= len(m.entries) {
				m.refreshContent()
				return m, nil
			}
			m.seq++
			m.busy = true
			return m, m.rename(m.seq, m.entries[m.cursor].ID, title)
		}
		var cmd tea.Cmd
		m.renameInput, cmd = m.renameInput.Update(msg)
		return m, cmd
	}

	if m.confirming {
		switch msg.String() {
		case "y":
			m.confirming = false
			if m.cursor >= len(m.entries) {
				return m, nil
			}
			m.seq++
			m.busy = true
			return m, m.delete(m.seq, m.entries[m.cursor].ID)
		case "n", "esc":
			m.confirming = false
			m.refreshContent()
			return m, nil
		}
		return m, nil
	}

	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.refreshContent()
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
			m.refreshContent()
		}
	case "enter":
		if len(m.entries) == 0 {
			return m, nil
		}
		if m.expanded == m.cursor {
			m.expanded = -1
		} else {
			m.expanded = m.cursor
		}
		m.refreshContent()
	case "n":
		if m.cursor >= len(m.entries) {
			return m, nil
		}
		m.renaming = true
		m.renameInput.SetValue(m.entries[m.cursor].Title)
		return m, m.renameInput.Focus()
	case "d":
		if m.cursor >= len(m.entries) {
			return m, nil
		}
		m.confirming = true
		m.refreshContent()
	case "r":
		m.seq++
		m.busy = true
		m.loading = true
		return m, m.load(m.seq)
	}
	return m, nil
}

func (m *HistoryModel) refreshContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderContent())
}

func (m HistoryModel) renderContent() string {
	if len(m.entries) == 0 {
		return statusStyle.Render("\n  No saved summaries yet. Save one from the dashboard with 'e'.")
	}

	var lines []string
	for i, e := range m.entries {
		label := fmt.Sprintf("%s  %s  %.0f kcal",
			e.Date.Format("Jan 02, 2006"), e.DisplayTitle(), e.Calories)

		if i == m.cursor {
			lines = append(lines, navActiveStyle.Render("> "+label))
		} else {
			lines = append(lines, navInactiveStyle.Render("  "+label))
		}

		if i == m.expanded {
			lines = append(lines, m.renderDetail(e))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderDetail expands one entry inline.
func (m HistoryModel) renderDetail(e history.Entry) string {
	var sections []string

	if e.Advice != "" {
		sections = append(sections, sectionTitleStyle.Render("Advice"))
		sections = append(sections, RenderBlocks(plan.RenderMarkdown(e.Advice)))
	}
	if e.Diet != nil {
		sections = append(sections, RenderBlocks(plan.RenderDiet(e.Diet)))
	}
	if e.Workout != nil {
		sections = append(sections, RenderBlocks(plan.RenderWorkout(e.Workout)))
	}
	if len(e.Chat) > 0 {
		sections = append(sections, sectionTitleStyle.Render(fmt.Sprintf("Chat (%d messages)", len(e.Chat))))
	}
	if len(sections) == 0 {
		sections = append(sections, statusStyle.Render("Nothing saved in this entry"))
	}

	detail := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.NewStyle().PaddingLeft(4).Render(detail)
}

// View renders the history screen
func (m HistoryModel) View() string {
	if m.loading {
		return "\n  Loading history..."
	}

	var banners []string
	if m.fromCache {
		banners = append(banners, warningStyle.Render("  Offline: showing locally cached history"))
	}
	if m.err != nil {
		banners = append(banners, errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
	}

	var footer string
	switch {
	case m.renaming:
		footer = lipgloss.JoinHorizontal(lipgloss.Left,
			formLabelStyle.Render("New title"), m.renameInput.View())
	case m.confirming:
		footer = warningStyle.Render("  Delete this entry? y/n")
	case m.busy:
		footer = statusStyle.Render("  Working...")
	default:
		footer = statusStyle.Render("  j/k: move  enter: expand  n: rename  d: delete  r: refresh")
	}

	content := m.renderContent()
	if m.ready {
		content = m.viewport.View()
	}

	parts := append(banners, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
