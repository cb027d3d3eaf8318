package study

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/halvard/quizdrill/internal/bank"
	"github.com/halvard/quizdrill/internal/progress"
	"github.com/halvard/quizdrill/internal/router"
	"github.com/halvard/quizdrill/internal/screen"
	"github.com/halvard/quizdrill/internal/screens/summary"
	sess "github.com/halvard/quizdrill/internal/study"
	"github.com/halvard/quizdrill/internal/ui/components"
	"github.com/halvard/quizdrill/internal/ui/layout"
)

// StudyScreen runs the active review session: it shows one question at a
// time, reveals the answer, and records the learner's self-grade.
type StudyScreen struct {
	controller *sess.Controller

	question bank.Question
	options  components.OptionList
	revealed bool
	correct  bool

	confirmQuit bool
	errMsg      string
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)
var _ screen.StatusProvider = (*StudyScreen)(nil)

// New creates a study screen for the controller's active session. The
// caller starts or resumes the session before pushing this screen.
func New(controller *sess.Controller) *StudyScreen {
	s := &StudyScreen{controller: controller}
	s.loadQuestion()
	return s
}

func (s *StudyScreen) Init() tea.Cmd {
	return nil
}

func (s *StudyScreen) Title() string {
	return "Study"
}

func (s *StudyScreen) StatusLine() string {
	current, total := s.controller.Position()
	if total == 0 {
		return ""
	}
	return fmt.Sprintf("%s · %d/%d", s.controller.Selection().Label(), current, total)
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{
			{Key: "any key", Description: "Home"},
		}
	}
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.revealed {
		return []layout.KeyHint{
			{Key: "E", Description: "Easy"},
			{Key: "H", Description: "Hard"},
			{Key: "Esc", Description: "Pause"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Check"},
	}
	if s.question.Type == bank.TypeMulti {
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Toggle"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "Esc", Description: "Pause"},
		layout.KeyHint{Key: "Q", Description: "End"},
	)
	return hints
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	return s.handleKey(kmsg)
}

func (s *StudyScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state, any key goes home.
	if s.errMsg != "" {
		return s, goHome()
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.controller.Exit(context.Background())
			return s, goHome()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.revealed {
		switch key {
		case "e", "E":
			return s.grade(progress.OutcomeEasy)
		case "h", "H":
			return s.grade(progress.OutcomeHard)
		case "esc":
			return s, goHome()
		}
		return s, nil
	}

	switch key {
	case "esc":
		// The session snapshot is already persisted, so pausing is
		// just leaving the screen.
		return s, goHome()
	case "q":
		s.confirmQuit = true
		return s, nil
	case "enter":
		return s.reveal()
	}

	var cmd tea.Cmd
	s.options, cmd = s.options.Update(msg)
	return s, cmd
}

// reveal locks in the current selection and shows the answer.
func (s *StudyScreen) reveal() (screen.Screen, tea.Cmd) {
	selected := s.options.Selection()
	if len(selected) == 0 {
		return s, nil
	}
	s.correct = s.question.IsCorrect(selected)
	s.options.Reveal(s.question.CorrectSet())
	s.revealed = true
	return s, nil
}

// grade records the self-assessment and moves to the next question or the
// session summary.
func (s *StudyScreen) grade(outcome progress.Outcome) (screen.Screen, tea.Cmd) {
	res, err := s.controller.Submit(context.Background(), outcome)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	if res.Done {
		sum := res.Summary
		return s, func() tea.Msg {
			return router.SwapMsg{Screen: summary.New(sum)}
		}
	}
	s.loadQuestion()
	return s, nil
}

// loadQuestion pulls the question under the session cursor and resets the
// per-question state.
func (s *StudyScreen) loadQuestion() {
	q, err := s.controller.Current()
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.question = q
	s.options = components.NewOptionList(q)
	s.revealed = false
	s.correct = false
}

func goHome() tea.Cmd {
	return func() tea.Msg {
		return router.HomeMsg{}
	}
}
