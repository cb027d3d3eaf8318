package home

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/halvard/quizdrill/internal/bank"
	"github.com/halvard/quizdrill/internal/progress"
	"github.com/halvard/quizdrill/internal/queue"
	"github.com/halvard/quizdrill/internal/router"
	"github.com/halvard/quizdrill/internal/screen"
	"github.com/halvard/quizdrill/internal/screens/picker"
	studyscreen "github.com/halvard/quizdrill/internal/screens/study"
	sess "github.com/halvard/quizdrill/internal/study"
	"github.com/halvard/quizdrill/internal/ui/components"
	"github.com/halvard/quizdrill/internal/ui/layout"
	"github.com/halvard/quizdrill/internal/ui/theme"
)

// startFailedMsg is sent when starting a session from the menu fails.
type startFailedMsg struct {
	err error
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	controller *sess.Controller
	bank       *bank.Bank
	records    *progress.Store

	menu         components.Menu
	counts       progress.Counts
	confirmReset bool
	statusMsg    string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.StatusProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(controller *sess.Controller, b *bank.Bank, records *progress.Store) *HomeScreen {
	h := &HomeScreen{
		controller: controller,
		bank:       b,
		records:    records,
	}

	ids := make([]string, 0, b.Len())
	for _, q := range b.Questions() {
		ids = append(ids, q.ID)
	}
	h.counts = records.Counts(ids)

	var items []components.MenuItem

	if controller.Active() {
		current, total := controller.Position()
		hint := fmt.Sprintf("%s · %d/%d", controller.Selection().Label(), current, total)
		items = append(items, components.MenuItem{
			Label: "Resume Session",
			Hint:  hint,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushMsg{Screen: studyscreen.New(controller)}
				}
			},
		})
	}

	items = append(items,
		components.MenuItem{
			Label: "Smart Review",
			Hint:  "weighted queue of what needs work",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					if err := controller.Start(context.Background(), queue.Mode{}); err != nil {
						return startFailedMsg{err: err}
					}
					return router.PushMsg{Screen: studyscreen.New(controller)}
				}
			},
		},
		components.MenuItem{
			Label: "Browse Categories",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushMsg{Screen: picker.New(controller, b, records, false)}
				}
			},
		},
		components.MenuItem{
			Label: "Browse Types",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushMsg{Screen: picker.New(controller, b, records, true)}
				}
			},
		},
		components.MenuItem{
			Label: "Reset Progress",
			Action: func() tea.Cmd {
				h.confirmReset = true
				return nil
			},
		},
		components.MenuItem{
			Label: "Quit",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	)

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) StatusLine() string {
	return fmt.Sprintf("%d questions", h.bank.Len())
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.confirmReset {
		return []layout.KeyHint{
			{Key: "Y", Description: "Wipe everything"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Q", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startFailedMsg:
		if errors.Is(msg.err, queue.ErrNoMatchingQuestions) {
			h.statusMsg = "The bank has no questions to review."
		} else {
			h.statusMsg = msg.err.Error()
		}
		return h, nil

	case tea.KeyMsg:
		if h.confirmReset {
			switch msg.String() {
			case "y", "Y":
				h.confirmReset = false
				if err := h.controller.ResetAll(context.Background()); err != nil {
					h.statusMsg = "Reset failed: " + err.Error()
					return h, nil
				}
				return h, func() tea.Msg { return router.HomeMsg{} }
			case "n", "N", "esc":
				h.confirmReset = false
			}
			return h, nil
		}

		if msg.String() == "q" {
			return h, tea.Quit
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	if h.confirmReset {
		return renderResetConfirm(width)
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Q U I Z D R I L L"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("drill it until it sticks"))
	b.WriteString("\n\n")

	bar := components.NewStatusBar(h.counts, min(width-8, 48))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	if h.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(h.statusMsg))
	}

	return b.String()
}

// renderResetConfirm renders the wipe-everything confirmation dialog.
func renderResetConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Reset all progress?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Every question goes back to new. Any paused session is discarded."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, wipe it"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep it"))

	return b.String()
}
