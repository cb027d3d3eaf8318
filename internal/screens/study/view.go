package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/halvard/quizdrill/internal/ui/components"
	"github.com/halvard/quizdrill/internal/ui/theme"
)

func (s *StudyScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}
	return s.renderQuestion(width)
}

// renderQuestion renders the prompt, the options, and after reveal the
// verdict and explanation.
func (s *StudyScreen) renderQuestion(width int) string {
	q := s.question

	var b strings.Builder

	// Position bar.
	current, total := s.controller.Position()
	if total > 0 {
		answered := float64(current-1) / float64(total)
		bar := components.NewProgressBar("", answered, false, min(width-8, 50))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n\n")
	}

	// Category and type line.
	meta := fmt.Sprintf("%s · %s", q.Category, q.Type.Label())
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Render(meta))
	b.WriteString("\n\n")

	// Prompt.
	prompt := lipgloss.NewStyle().
		Width(min(width-8, 70)).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, prompt))
	b.WriteString("\n\n")

	// Options.
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.options.View()))
	b.WriteString("\n")

	if !s.revealed {
		return b.String()
	}

	// Verdict.
	if s.correct {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite"))
	}
	b.WriteString("\n")

	// Explanation.
	if q.Explanation != "" {
		exp := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.TextDim).
			Render(q.Explanation)
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("How did it feel?  [E] Easy    [H] Hard"))

	return b.String()
}

// renderQuitConfirm renders the end-session confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End this session?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Graded answers are already saved. The remaining queue will be discarded."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, end it"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

// renderError renders a fatal session error.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go home.", errMsg))
}
