package app

import (
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/halvard/quizdrill/internal/bank"
	"github.com/halvard/quizdrill/internal/progress"
	"github.com/halvard/quizdrill/internal/router"
	"github.com/halvard/quizdrill/internal/screen"
	"github.com/halvard/quizdrill/internal/screens/home"
	"github.com/halvard/quizdrill/internal/study"
	"github.com/halvard/quizdrill/internal/ui/layout"
)

// Options carries the wired services the TUI runs on.
type Options struct {
	Bank       *bank.Bank
	Records    *progress.Store
	Controller *study.Controller
	Logger     *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	m := AppModel{opts: opts}
	m.router = router.New(m.newHome())
	return m
}

// newHome builds a fresh home screen so its counts and resume state are
// current.
func (m AppModel) newHome() *home.HomeScreen {
	return home.New(m.opts.Controller, m.opts.Bank, m.opts.Records)
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case router.HomeMsg:
		return m, m.router.Reset(m.newHome())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()

	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.StatusLine()
		}
	}

	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
