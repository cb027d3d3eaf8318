package study

import (
	"github.com/halvard/quizdrill/internal/progress"
	"github.com/halvard/quizdrill/internal/queue"
)

// Result is the outcome of one Submit call.
type Result struct {
	// Record is the question's progress record after grading.
	Record progress.Record
	// Done is true when this answer completed the queue. The controller
	// is idle again and Summary is set.
	Done bool
	// Summary describes the completed session; nil unless Done.
	Summary *Summary
}

// Summary aggregates a completed session for display.
type Summary struct {
	SessionID string
	Selection queue.Mode
	Answered  int
	Easy      int
	Hard      int
}
