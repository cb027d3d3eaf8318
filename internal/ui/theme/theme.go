package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette — muted, exam-prep calm
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#06B6D4") // Cyan
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#10B981") // Emerald
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#E2E8F0") // Light Slate
	TextDim   = lipgloss.Color("#64748B") // Slate
	BgCard    = lipgloss.Color("#111827") // Near Black
	Border    = lipgloss.Color("#1F2937") // Gray
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Progress statuses
var (
	Mastered = lipgloss.NewStyle().
			Foreground(Success)

	Learning = lipgloss.NewStyle().
			Foreground(Accent)

	Unseen = lipgloss.NewStyle().
		Foreground(TextDim)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
