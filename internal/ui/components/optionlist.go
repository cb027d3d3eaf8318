package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/halvard/quizdrill/internal/bank"
	"github.com/halvard/quizdrill/internal/ui/theme"
)

// OptionList renders the answer options of a question and tracks what the
// user has picked. Single-answer questions treat the cursor as the pick;
// multi-answer questions toggle options with space.
type OptionList struct {
	Options  []bank.Option
	Multi    bool
	Cursor   int
	Revealed bool

	toggled map[string]bool
	correct map[string]bool
}

// NewOptionList creates an option list for the given question.
func NewOptionList(q bank.Question) OptionList {
	return OptionList{
		Options: q.DisplayOptions(),
		Multi:   q.Type == bank.TypeMulti,
		toggled: make(map[string]bool),
	}
}

// Init returns nil (no initial command).
func (o OptionList) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement and multi-answer toggling. Input is
// ignored once the answer has been revealed.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if o.Revealed {
		return o, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
	case "space", " ":
		if o.Multi {
			key := o.Options[o.Cursor].Key
			if o.toggled[key] {
				delete(o.toggled, key)
			} else {
				o.toggled[key] = true
			}
		}
	}

	return o, nil
}

// Selection returns the keys the user has picked, in option order.
// Single-answer lists return the option under the cursor.
func (o OptionList) Selection() []string {
	if !o.Multi {
		if o.Cursor < 0 || o.Cursor >= len(o.Options) {
			return nil
		}
		return []string{o.Options[o.Cursor].Key}
	}
	var keys []string
	for _, opt := range o.Options {
		if o.toggled[opt.Key] {
			keys = append(keys, opt.Key)
		}
	}
	return keys
}

// Reveal locks the list and records the correct keys for rendering.
func (o *OptionList) Reveal(correct map[string]bool) {
	o.Revealed = true
	o.correct = correct
}

// View renders the option list.
func (o OptionList) View() string {
	chosen := make(map[string]bool)
	for _, key := range o.Selection() {
		chosen[key] = true
	}

	var s string
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Cursor && !o.Revealed {
			prefix = "▸ "
		}

		marker := ""
		if o.Multi {
			marker = "[ ] "
			if chosen[opt.Key] {
				marker = "[x] "
			}
		}

		line := fmt.Sprintf("%s%s%s)  %s", prefix, marker, opt.Key, opt.Text)

		if o.Revealed {
			switch {
			case o.correct[opt.Key]:
				s += theme.Correct.Render(line) + "\n"
			case chosen[opt.Key]:
				s += theme.Incorrect.Render(line) + "\n"
			default:
				s += theme.Unseen.Render(line) + "\n"
			}
		} else if i == o.Cursor {
			s += theme.Selected.Render(line) + "\n"
		} else {
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
