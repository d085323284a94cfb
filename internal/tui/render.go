package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fitcoach/internal/plan"
)

// RenderBlocks paints display blocks for a viewport. Painting lives
// here so the renderers in the plan package stay terminal-agnostic.
func RenderBlocks(blocks []plan.Block) string {
	var lines []string
	for _, b := range blocks {
		switch b.Kind {
		case plan.BlockHeading:
			lines = append(lines, "")
			if b.Level <= 1 {
				lines = append(lines, cardTitleStyle.Render(b.Title))
			} else {
				lines = append(lines, sectionTitleStyle.Render(b.Title))
			}
		case plan.BlockKeyValue:
			lines = append(lines, lipgloss.JoinHorizontal(
				lipgloss.Left,
				planKeyStyle.Render(b.Title),
				planValueStyle.Render(b.Value),
			))
		case plan.BlockText:
			lines = append(lines, renderSpans(b.Spans))
		case plan.BlockList:
			for _, item := range b.Items {
				lines = append(lines, planValueStyle.Render("  • "+item))
			}
		case plan.BlockInvalid:
			lines = append(lines, warningStyle.Render(b.Title))
		}
	}
	return strings.Join(lines, "\n")
}

// renderSpans paints one text line, bolding marked spans.
func renderSpans(spans []plan.Span) string {
	var sb strings.Builder
	for _, s := range spans {
		if s.Bold {
			sb.WriteString(planBoldStyle.Render(s.Text))
		} else {
			sb.WriteString(planValueStyle.Render(s.Text))
		}
	}
	return sb.String()
}
