// Package bank loads and indexes the question bank. The bank is a read-only
// JSON file shipped alongside the app; it is validated on load and every
// question is addressable by its stable id.
package bank

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// currentVersion is the bank file format version this build reads.
const currentVersion = 1

// bankFile is the on-disk envelope of a question bank.
type bankFile struct {
	Version   int        `json:"version"`
	Questions []Question `json:"questions"`
}

// Bank is an indexed, validated question bank.
type Bank struct {
	questions  []Question
	byID       map[string]int
	categories []string
}

// Load reads and validates a question bank file.
func Load(path string) (*Bank, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank %s: %w", path, err)
	}

	if err := validateShape(raw); err != nil {
		return nil, fmt.Errorf("bank %s: %w", path, err)
	}

	var file bankFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode bank %s: %w", path, err)
	}
	if file.Version != currentVersion {
		return nil, fmt.Errorf("bank %s: unsupported version %d (want %d)", path, file.Version, currentVersion)
	}

	b, err := New(file.Questions)
	if err != nil {
		return nil, fmt.Errorf("bank %s: %w", path, err)
	}
	return b, nil
}

// New builds an indexed bank from the given questions, enforcing the
// cross-field rules the JSON schema cannot express.
func New(questions []Question) (*Bank, error) {
	byID := make(map[string]int, len(questions))
	catSet := make(map[string]bool)

	for i, q := range questions {
		if _, dup := byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		if err := validateQuestion(q); err != nil {
			return nil, fmt.Errorf("question %q: %w", q.ID, err)
		}
		byID[q.ID] = i
		catSet[q.Category] = true
	}

	categories := make([]string, 0, len(catSet))
	for c := range catSet {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	return &Bank{
		questions:  questions,
		byID:       byID,
		categories: categories,
	}, nil
}

// validateQuestion enforces per-type rules: option counts, answer arity,
// and that every answer key names an existing option.
func validateQuestion(q Question) error {
	keys := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if keys[opt.Key] {
			return fmt.Errorf("duplicate option key %q", opt.Key)
		}
		keys[opt.Key] = true
	}

	switch q.Type {
	case TypeSingle:
		if len(q.Options) < 2 {
			return fmt.Errorf("single-choice needs at least 2 options, got %d", len(q.Options))
		}
		if len(q.Answer) != 1 {
			return fmt.Errorf("single-choice needs exactly 1 answer, got %d", len(q.Answer))
		}
	case TypeMulti:
		if len(q.Options) < 2 {
			return fmt.Errorf("multiple-choice needs at least 2 options, got %d", len(q.Options))
		}
		if len(q.Answer) == 0 {
			return fmt.Errorf("multiple-choice needs at least 1 answer")
		}
	case TypeJudgment:
		if len(q.Options) != 0 {
			return fmt.Errorf("judgment questions carry no options, got %d", len(q.Options))
		}
		if len(q.Answer) != 1 {
			return fmt.Errorf("judgment needs exactly 1 answer, got %d", len(q.Answer))
		}
		if a := q.Answer[0]; a != "T" && a != "F" {
			return fmt.Errorf("judgment answer must be T or F, got %q", a)
		}
		return nil
	default:
		return fmt.Errorf("unknown question type %q", q.Type)
	}

	seen := make(map[string]bool, len(q.Answer))
	for _, key := range q.Answer {
		if !keys[key] {
			return fmt.Errorf("answer key %q does not match any option", key)
		}
		if seen[key] {
			return fmt.Errorf("duplicate answer key %q", key)
		}
		seen[key] = true
	}
	return nil
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int { return len(b.questions) }

// Get returns the question with the given id.
func (b *Bank) Get(id string) (Question, bool) {
	i, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	return b.questions[i], true
}

// Questions returns all questions in file order. Callers must not modify
// the returned slice.
func (b *Bank) Questions() []Question { return b.questions }

// Categories returns the distinct categories, sorted. Callers must not
// modify the returned slice.
func (b *Bank) Categories() []string { return b.categories }

// CountByCategory returns the number of questions per category.
func (b *Bank) CountByCategory() map[string]int {
	counts := make(map[string]int, len(b.categories))
	for _, q := range b.questions {
		counts[q.Category]++
	}
	return counts
}

// CountByType returns the number of questions per question type.
func (b *Bank) CountByType() map[QuestionType]int {
	counts := make(map[QuestionType]int, 3)
	for _, q := range b.questions {
		counts[q.Type]++
	}
	return counts
}
