package picker

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/halvard/quizdrill/internal/ui/theme"
)

func (p *PickerScreen) View(width, height int) string {
	var b strings.Builder

	heading := "Pick a category"
	if p.byType {
		heading = "Pick a question type"
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(heading))
	b.WriteString("\n")

	if !p.byType {
		scope := "All types"
		if p.typeFilter != "" {
			scope = p.typeFilter.Label() + " only"
		}
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Secondary).
			Render(scope))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	rows := p.visible()
	if len(rows) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Nothing matches the filter."))
		b.WriteString("\n")
	}

	var list strings.Builder
	for i, r := range rows {
		prefix := "    "
		style := theme.Unselected
		if i == p.cursor {
			prefix = "  ▸ "
			style = theme.Selected
		}
		count := fmt.Sprintf("%d/%d mastered", r.mastered, r.total)
		if r.total == 0 {
			count = "empty"
		}
		list.WriteString(style.Render(fmt.Sprintf("%s%-24s", prefix, r.label)))
		list.WriteString(theme.Hint.Render(count))
		list.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, list.String()))
	b.WriteString("\n")

	if !p.byType {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, p.filter.View()))
		b.WriteString("\n")
	}

	if p.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(p.statusMsg))
	}

	return b.String()
}
