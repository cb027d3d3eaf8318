package study

import "github.com/halvard/quizdrill/internal/queue"

// snapshotKey is the storage key for the session snapshot.
const snapshotKey = "session"

// snapshotVersion is the snapshot format version this build writes.
const snapshotVersion = 1

// stateStudying is the only state ever persisted; an idle controller
// deletes the snapshot instead.
const stateStudying = "studying"

// snapshot is the persisted session. It carries everything needed to
// resume mid-session without rebuilding the queue: the stored queue is
// authoritative for the rest of the session.
type snapshot struct {
	Version   int        `json:"version"`
	State     string     `json:"state"`
	SessionID string     `json:"sessionId"`
	Selection queue.Mode `json:"selection"`
	Queue     []string   `json:"queue"`
	Cursor    int        `json:"cursor"`
	Easy      int        `json:"easy"`
	Hard      int        `json:"hard"`
}

// valid reports whether the snapshot can be resumed.
func (s snapshot) valid() bool {
	return s.State == stateStudying &&
		len(s.Queue) > 0 &&
		s.Cursor >= 0 && s.Cursor < len(s.Queue)
}
