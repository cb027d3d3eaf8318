package bank

// QuestionType describes how a question is answered.
type QuestionType string

const (
	// TypeSingle is a multiple-choice question with exactly one correct option.
	TypeSingle QuestionType = "single"
	// TypeMulti is a multiple-choice question with one or more correct options.
	TypeMulti QuestionType = "multi"
	// TypeJudgment is a true/false question. It carries no options of its own;
	// the fixed T/F pair is synthesized at display time.
	TypeJudgment QuestionType = "judgment"
)

// Label returns the human-readable name for the question type.
func (t QuestionType) Label() string {
	switch t {
	case TypeSingle:
		return "Single choice"
	case TypeMulti:
		return "Multiple choice"
	case TypeJudgment:
		return "True / False"
	default:
		return string(t)
	}
}

// Types lists all question types in display order.
func Types() []QuestionType {
	return []QuestionType{TypeSingle, TypeMulti, TypeJudgment}
}

// Option is one selectable answer, addressed by its key ("A", "B", ...).
type Option struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Question is a single item from the question bank. Questions are immutable
// once loaded; all learner state lives in the progress store, keyed by ID.
type Question struct {
	ID          string       `json:"id"`
	Category    string       `json:"category"`
	Type        QuestionType `json:"type"`
	Prompt      string       `json:"prompt"`
	Options     []Option     `json:"options,omitempty"`
	Answer      []string     `json:"answer"`
	Explanation string       `json:"explanation,omitempty"`
}

// judgmentOptions is the synthesized option pair for judgment questions.
var judgmentOptions = []Option{
	{Key: "T", Text: "True"},
	{Key: "F", Text: "False"},
}

// DisplayOptions returns the options to render for this question.
// For judgment questions this is the fixed True/False pair.
func (q Question) DisplayOptions() []Option {
	if q.Type == TypeJudgment {
		return judgmentOptions
	}
	return q.Options
}

// CorrectSet returns the set of correct option keys.
func (q Question) CorrectSet() map[string]bool {
	set := make(map[string]bool, len(q.Answer))
	for _, key := range q.Answer {
		set[key] = true
	}
	return set
}

// IsCorrect reports whether the selected keys exactly match the correct
// answer. Grading is all-or-nothing: a partial selection on a multi-choice
// question is wrong.
func (q Question) IsCorrect(selected []string) bool {
	correct := q.CorrectSet()
	if len(selected) != len(correct) {
		return false
	}
	for _, key := range selected {
		if !correct[key] {
			return false
		}
		delete(correct, key)
	}
	return true
}
