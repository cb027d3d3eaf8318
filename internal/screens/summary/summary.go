package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/halvard/quizdrill/internal/router"
	"github.com/halvard/quizdrill/internal/screen"
	"github.com/halvard/quizdrill/internal/study"
	"github.com/halvard/quizdrill/internal/ui/layout"
	"github.com/halvard/quizdrill/internal/ui/theme"
)

// SummaryScreen displays the results of a finished session.
type SummaryScreen struct {
	summary *study.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *study.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.HomeMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Session complete!"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(sum.Selection.Label()))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 44)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Answered: %d        %s        %s",
		sum.Answered,
		theme.Mastered.Render(fmt.Sprintf("Easy: %d", sum.Easy)),
		theme.Learning.Render(fmt.Sprintf("Hard: %d", sum.Hard)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Render(statsLine)))
	b.WriteString("\n\n")

	note := "Everything felt easy. Nice work!"
	if sum.Hard > 0 {
		note = fmt.Sprintf("%d question(s) marked hard will come back in Smart Review.", sum.Hard)
	}
	if sum.Answered == 0 {
		note = "No questions answered."
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(note))

	return b.String()
}
