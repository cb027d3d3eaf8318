// Package queue builds ordered study queues from the question bank and a
// progress snapshot. Which bucket a question lands in is deterministic
// given the inputs; order within a bucket is uniformly shuffled so repeated
// sessions are not identical.
package queue

import (
	"errors"
	"math/rand"
	"time"

	"github.com/halvard/quizdrill/internal/bank"
	"github.com/halvard/quizdrill/internal/progress"
)

// ErrNoMatchingQuestions signals an empty candidate set. Callers must not
// start a session in this case.
var ErrNoMatchingQuestions = errors.New("no questions match the requested mode")

// SmartReviewLimit is the default cap on a smart-review queue.
const SmartReviewLimit = 30

// reviewThreshold is the difficulty score above which an answered question
// counts as struggling.
const reviewThreshold = 2

// Smart-review priority weights, studied highest first. The first matching
// rule wins: struggling beats unseen beats learning beats mastered.
const (
	weightStruggling = 4
	weightUnseen     = 3
	weightLearning   = 2
	weightMastered   = 0
)

// Builder turns a bank and a progress snapshot into a study queue.
type Builder struct {
	rng   *rand.Rand
	limit int
}

// NewBuilder creates a builder. A nil rng is seeded from the clock; tests
// inject a fixed seed. limit caps smart-review queues, 0 means
// SmartReviewLimit. Filtered queues are never capped.
func NewBuilder(rng *rand.Rand, limit int) *Builder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if limit <= 0 {
		limit = SmartReviewLimit
	}
	return &Builder{rng: rng, limit: limit}
}

// Build returns the ordered question ids for one session. The queue is
// duplicate-free; a queue is never empty, an empty candidate set returns
// ErrNoMatchingQuestions instead.
func (b *Builder) Build(bk *bank.Bank, records map[string]progress.Record, mode Mode) ([]string, error) {
	if mode.IsSmartReview() {
		return b.buildSmart(bk, records)
	}
	return b.buildFiltered(bk, records, mode)
}

// buildFiltered partitions the matching questions into not-mastered and
// mastered, shuffles within each partition and returns not-mastered first.
// The full filtered set is returned, no cap.
func (b *Builder) buildFiltered(bk *bank.Bank, records map[string]progress.Record, mode Mode) ([]string, error) {
	var pending, mastered []string
	for _, q := range bk.Questions() {
		if !mode.matches(q) {
			continue
		}
		if rec, ok := records[q.ID]; ok && rec.Status == progress.StatusMastered {
			mastered = append(mastered, q.ID)
		} else {
			pending = append(pending, q.ID)
		}
	}

	if len(pending)+len(mastered) == 0 {
		return nil, ErrNoMatchingQuestions
	}

	b.shuffle(pending)
	b.shuffle(mastered)
	return append(pending, mastered...), nil
}

// buildSmart weighs every question in the bank, orders the weight buckets
// highest first with a shuffle inside each bucket, and truncates to the
// batch limit.
func (b *Builder) buildSmart(bk *bank.Bank, records map[string]progress.Record) ([]string, error) {
	buckets := make(map[int][]string, 4)
	for _, q := range bk.Questions() {
		rec, ok := records[q.ID]
		w := weigh(rec, ok)
		buckets[w] = append(buckets[w], q.ID)
	}

	out := make([]string, 0, bk.Len())
	for _, w := range []int{weightStruggling, weightUnseen, weightLearning, weightMastered} {
		ids := buckets[w]
		b.shuffle(ids)
		out = append(out, ids...)
	}

	if len(out) == 0 {
		return nil, ErrNoMatchingQuestions
	}
	if len(out) > b.limit {
		out = out[:b.limit]
	}
	return out, nil
}

// weigh assigns the smart-review priority for one question.
func weigh(rec progress.Record, ok bool) int {
	switch {
	case ok && rec.Score > reviewThreshold:
		return weightStruggling
	case !ok:
		return weightUnseen
	case rec.Status == progress.StatusLearning:
		return weightLearning
	default:
		return weightMastered
	}
}

func (b *Builder) shuffle(ids []string) {
	b.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
}
