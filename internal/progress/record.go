package progress

import "time"

// Status is a question's position in the learning lifecycle.
type Status string

const (
	// StatusNew means the question has never been answered. New questions
	// have no record; the status exists for display and counting.
	StatusNew Status = "new"
	// StatusLearning means the last answer was hard.
	StatusLearning Status = "learning"
	// StatusMastered means the last answer was easy.
	StatusMastered Status = "mastered"
)

// Outcome is the learner's self-grade for one answered question.
type Outcome string

const (
	// OutcomeEasy marks the question as known.
	OutcomeEasy Outcome = "easy"
	// OutcomeHard marks the question as needing more review.
	OutcomeHard Outcome = "hard"
)

// Difficulty scores assigned by each outcome. The update is memoryless:
// the new score depends only on the latest outcome, never on the old score.
const (
	scoreEasy = 0
	scoreHard = 5
)

// Record is the stored learning state for one question.
type Record struct {
	Status       Status `json:"status"`
	Score        int    `json:"difficultyScore"`
	LastReviewed int64  `json:"lastReviewed"` // epoch millis
	ReviewCount  int    `json:"reviewCount"`
}

// apply returns the record after grading one answer. Only ReviewCount
// carries over from the previous record.
func apply(prev Record, outcome Outcome, at time.Time) Record {
	next := Record{
		ReviewCount:  prev.ReviewCount + 1,
		LastReviewed: at.UnixMilli(),
	}
	if outcome == OutcomeEasy {
		next.Status = StatusMastered
		next.Score = scoreEasy
	} else {
		next.Status = StatusLearning
		next.Score = scoreHard
	}
	return next
}

// Counts aggregates question statuses for display.
type Counts struct {
	New      int
	Learning int
	Mastered int
}

// Total returns the number of questions counted.
func (c Counts) Total() int {
	return c.New + c.Learning + c.Mastered
}
