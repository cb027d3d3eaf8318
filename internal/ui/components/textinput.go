package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/halvard/quizdrill/internal/ui/theme"
)

// FilterInput wraps bubbles/textinput for narrowing down long lists.
type FilterInput struct {
	Model textinput.Model
}

// NewFilterInput creates a styled filter input.
func NewFilterInput(placeholder string) FilterInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	ti.CharLimit = 40
	return FilterInput{Model: ti}
}

// Init returns the initial command.
func (f FilterInput) Init() tea.Cmd {
	return nil
}

// Update handles messages while the input is focused.
func (f FilterInput) Update(msg tea.Msg) (FilterInput, tea.Cmd) {
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// View renders the filter input.
func (f FilterInput) View() string {
	if !f.Focused() && f.Value() == "" {
		return theme.Hint.Render("/ filter")
	}
	return f.Model.View()
}

// Value returns the current filter text.
func (f FilterInput) Value() string {
	return f.Model.Value()
}

// Focused reports whether the input is capturing keys.
func (f FilterInput) Focused() bool {
	return f.Model.Focused()
}

// Focus starts capturing keys.
func (f *FilterInput) Focus() tea.Cmd {
	return f.Model.Focus()
}

// Blur stops capturing keys.
func (f *FilterInput) Blur() {
	f.Model.Blur()
}

// Reset clears the filter text and blurs the input.
func (f *FilterInput) Reset() {
	f.Model.SetValue("")
	f.Model.Blur()
}
