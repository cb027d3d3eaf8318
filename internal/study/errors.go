package study

import "errors"

var (
	// ErrNoActiveSession is returned by operations that need a running
	// session while the controller is idle.
	ErrNoActiveSession = errors.New("no active study session")

	// ErrStaleQuestion is returned when the session queue references a
	// question id that is no longer in the bank. The session cannot
	// continue; the controller clears it and falls back to idle.
	ErrStaleQuestion = errors.New("session references a question missing from the bank")
)
