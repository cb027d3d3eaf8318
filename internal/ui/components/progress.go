package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/halvard/quizdrill/internal/progress"
	"github.com/halvard/quizdrill/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += theme.Body.Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled))
	result += theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	if p.ShowPercent {
		result += theme.Hint.Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}

// StatusBar summarizes progress counts as a colored mastered/learning/new
// breakdown with a proportional bar underneath.
type StatusBar struct {
	Counts progress.Counts
	Width  int
}

// NewStatusBar creates a status bar for the given counts.
func NewStatusBar(counts progress.Counts, width int) StatusBar {
	return StatusBar{Counts: counts, Width: width}
}

// View renders the status bar.
func (s StatusBar) View() string {
	total := s.Counts.Total()
	legend := theme.Mastered.Render(fmt.Sprintf("● %d mastered", s.Counts.Mastered)) +
		theme.Hint.Render("  ·  ") +
		theme.Learning.Render(fmt.Sprintf("● %d learning", s.Counts.Learning)) +
		theme.Hint.Render("  ·  ") +
		theme.Unseen.Render(fmt.Sprintf("● %d new", s.Counts.New))

	if total == 0 || s.Width < 8 {
		return legend
	}

	masteredW := s.Width * s.Counts.Mastered / total
	learningW := s.Width * s.Counts.Learning / total
	newW := s.Width - masteredW - learningW

	bar := lipgloss.NewStyle().Background(theme.Success).Render(strings.Repeat(" ", masteredW)) +
		lipgloss.NewStyle().Background(theme.Accent).Render(strings.Repeat(" ", learningW)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", newW))

	return legend + "\n" + bar
}
