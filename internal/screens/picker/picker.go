package picker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/halvard/quizdrill/internal/bank"
	"github.com/halvard/quizdrill/internal/progress"
	"github.com/halvard/quizdrill/internal/queue"
	"github.com/halvard/quizdrill/internal/router"
	"github.com/halvard/quizdrill/internal/screen"
	studyscreen "github.com/halvard/quizdrill/internal/screens/study"
	sess "github.com/halvard/quizdrill/internal/study"
	"github.com/halvard/quizdrill/internal/ui/components"
	"github.com/halvard/quizdrill/internal/ui/layout"
)

// row is one selectable drill scope.
type row struct {
	label    string
	mode     queue.Mode
	total    int
	mastered int
}

// PickerScreen lets the learner choose what to drill: a category, a
// question type, or a category narrowed to one type.
type PickerScreen struct {
	controller *sess.Controller
	bank       *bank.Bank
	records    *progress.Store

	byType     bool
	typeFilter bank.QuestionType

	rows      []row
	cursor    int
	filter    components.FilterInput
	statusMsg string
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)
var _ screen.StatusProvider = (*PickerScreen)(nil)

// New creates a picker over categories, or over question types when byType
// is set.
func New(controller *sess.Controller, b *bank.Bank, records *progress.Store, byType bool) *PickerScreen {
	p := &PickerScreen{
		controller: controller,
		bank:       b,
		records:    records,
		byType:     byType,
		filter:     components.NewFilterInput("type to filter"),
	}
	p.buildRows()
	return p
}

func (p *PickerScreen) Init() tea.Cmd {
	return nil
}

func (p *PickerScreen) Title() string {
	if p.byType {
		return "Browse Types"
	}
	return "Browse Categories"
}

func (p *PickerScreen) StatusLine() string {
	if p.byType {
		return fmt.Sprintf("%d types", len(p.rows))
	}
	return fmt.Sprintf("%d categories", len(p.rows))
}

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	if p.filter.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
	}
	if !p.byType {
		hints = append(hints,
			layout.KeyHint{Key: "/", Description: "Filter"},
			layout.KeyHint{Key: "T", Description: "Type"},
		)
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	return hints
}

// buildRows recomputes the selectable rows from the bank and the current
// type filter.
func (p *PickerScreen) buildRows() {
	p.rows = p.rows[:0]

	if p.byType {
		for _, t := range bank.Types() {
			mode := queue.Mode{Type: t}
			p.rows = append(p.rows, p.makeRow(t.Label(), mode))
		}
	} else {
		for _, cat := range p.bank.Categories() {
			mode := queue.Mode{Category: cat, Type: p.typeFilter}
			p.rows = append(p.rows, p.makeRow(cat, mode))
		}
	}

	if p.cursor >= len(p.rows) {
		p.cursor = 0
	}
}

func (p *PickerScreen) makeRow(label string, mode queue.Mode) row {
	var ids []string
	for _, q := range p.bank.Questions() {
		if mode.Category != "" && q.Category != mode.Category {
			continue
		}
		if mode.Type != "" && q.Type != mode.Type {
			continue
		}
		ids = append(ids, q.ID)
	}
	counts := p.records.Counts(ids)
	return row{
		label:    label,
		mode:     mode,
		total:    len(ids),
		mastered: counts.Mastered,
	}
}

// visible returns the rows matching the filter text, if any.
func (p *PickerScreen) visible() []row {
	needle := strings.ToLower(strings.TrimSpace(p.filter.Value()))
	if needle == "" {
		return p.rows
	}
	var out []row
	for _, r := range p.rows {
		if strings.Contains(strings.ToLower(r.label), needle) {
			out = append(out, r)
		}
	}
	return out
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	key := kmsg.String()

	if p.filter.Focused() {
		switch key {
		case "enter":
			p.filter.Blur()
			return p, nil
		case "esc":
			p.filter.Reset()
			p.cursor = 0
			return p, nil
		}
		var cmd tea.Cmd
		p.filter, cmd = p.filter.Update(msg)
		p.clampCursor()
		return p, cmd
	}

	switch key {
	case "esc":
		return p, func() tea.Msg { return router.PopMsg{} }
	case "/":
		if !p.byType {
			return p, p.filter.Focus()
		}
	case "t", "T":
		if !p.byType {
			p.cycleTypeFilter()
			return p, nil
		}
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.visible())-1 {
			p.cursor++
		}
	case "enter":
		return p.start()
	}

	return p, nil
}

// cycleTypeFilter steps the optional type restriction through all
// question types and back to none.
func (p *PickerScreen) cycleTypeFilter() {
	types := bank.Types()
	switch p.typeFilter {
	case "":
		p.typeFilter = types[0]
	case types[len(types)-1]:
		p.typeFilter = ""
	default:
		for i, t := range types[:len(types)-1] {
			if t == p.typeFilter {
				p.typeFilter = types[i+1]
				break
			}
		}
	}
	p.statusMsg = ""
	p.buildRows()
}

// start begins a session for the row under the cursor.
func (p *PickerScreen) start() (screen.Screen, tea.Cmd) {
	rows := p.visible()
	if p.cursor < 0 || p.cursor >= len(rows) {
		return p, nil
	}
	mode := rows[p.cursor].mode

	err := p.controller.Start(context.Background(), mode)
	if errors.Is(err, queue.ErrNoMatchingQuestions) {
		p.statusMsg = fmt.Sprintf("No questions match %s.", mode.Label())
		return p, nil
	}
	if err != nil {
		p.statusMsg = err.Error()
		return p, nil
	}

	return p, func() tea.Msg {
		return router.PushMsg{Screen: studyscreen.New(p.controller)}
	}
}

func (p *PickerScreen) clampCursor() {
	if n := len(p.visible()); p.cursor >= n {
		p.cursor = 0
	}
}
