package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/halvard/quizdrill/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface for screens that provide custom
// footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that provide the
// right-hand header status, e.g. a question position or a mastered tally.
type StatusProvider interface {
	StatusLine() string
}
