package queue

import (
	"fmt"

	"github.com/halvard/quizdrill/internal/bank"
)

// Mode selects which questions a session draws from. The zero value is
// smart review: no filters, priority-weighted over the whole bank. Setting
// Category or Type (or both) switches to filtered selection.
type Mode struct {
	Category string            `json:"category,omitempty"`
	Type     bank.QuestionType `json:"type,omitempty"`
}

// IsSmartReview reports whether the mode has no filters.
func (m Mode) IsSmartReview() bool {
	return m.Category == "" && m.Type == ""
}

// matches reports whether a question passes the mode's filters.
func (m Mode) matches(q bank.Question) bool {
	if m.Category != "" && q.Category != m.Category {
		return false
	}
	if m.Type != "" && q.Type != m.Type {
		return false
	}
	return true
}

// Label returns the mode's display name.
func (m Mode) Label() string {
	switch {
	case m.IsSmartReview():
		return "Smart Review"
	case m.Category != "" && m.Type != "":
		return fmt.Sprintf("%s · %s", m.Category, m.Type.Label())
	case m.Category != "":
		return m.Category
	default:
		return m.Type.Label()
	}
}
