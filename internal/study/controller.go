// Package study drives the session state machine: idle or studying, a
// fixed queue with a cursor, one submitted outcome per question. Grading
// is delegated to the progress store; queue construction to the queue
// builder. The controller persists itself after every change so an
// interrupted session resumes exactly where it stopped.
package study

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/halvard/quizdrill/internal/bank"
	"github.com/halvard/quizdrill/internal/progress"
	"github.com/halvard/quizdrill/internal/queue"
)

// blobStore is the persistence surface the controller needs.
type blobStore interface {
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Controller owns the active study session.
type Controller struct {
	bank    *bank.Bank
	records *progress.Store
	builder *queue.Builder
	blobs   blobStore
	log     *slog.Logger

	active     bool
	sessionID  string
	selection  queue.Mode
	queueIDs   []string
	cursor     int
	easy, hard int
}

// NewController creates a controller and resumes a persisted session if one
// exists. The stored queue is restored as-is, never rebuilt; a missing or
// invalid snapshot starts idle. Stale question ids surface later, from
// Current.
func NewController(ctx context.Context, bk *bank.Bank, records *progress.Store, builder *queue.Builder, blobs blobStore, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	c := &Controller{
		bank:    bk,
		records: records,
		builder: builder,
		blobs:   blobs,
		log:     log,
	}

	raw, ok, err := blobs.Load(ctx, snapshotKey)
	if err != nil {
		log.Warn("load session snapshot failed, starting idle", "error", err)
		return c
	}
	if !ok {
		return c
	}

	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		log.Warn("session snapshot corrupt, starting idle", "error", err)
		return c
	}
	if !snap.valid() {
		log.Warn("session snapshot invalid, starting idle", "cursor", snap.Cursor, "queue", len(snap.Queue))
		return c
	}

	c.active = true
	c.sessionID = snap.SessionID
	if c.sessionID == "" {
		c.sessionID = uuid.NewString()
	}
	c.selection = snap.Selection
	c.queueIDs = snap.Queue
	c.cursor = snap.Cursor
	c.easy = snap.Easy
	c.hard = snap.Hard

	log.Info("session resumed",
		"sessionId", c.sessionID,
		"mode", c.selection.Label(),
		"position", c.cursor+1,
		"queue", len(c.queueIDs))
	return c
}

// Active reports whether a session is running.
func (c *Controller) Active() bool { return c.active }

// SessionID returns the running session's id, "" when idle.
func (c *Controller) SessionID() string { return c.sessionID }

// Selection returns the running session's mode. Meaningful only while
// active.
func (c *Controller) Selection() queue.Mode { return c.selection }

// Position returns the 1-based cursor and the queue length, (0, 0) when
// idle.
func (c *Controller) Position() (current, total int) {
	if !c.active {
		return 0, 0
	}
	return c.cursor + 1, len(c.queueIDs)
}

// Start builds a queue for the mode and begins a session. On
// queue.ErrNoMatchingQuestions the controller keeps its previous state.
// Starting while a session is active replaces that session.
func (c *Controller) Start(ctx context.Context, mode queue.Mode) error {
	ids, err := c.builder.Build(c.bank, c.records.Snapshot(), mode)
	if err != nil {
		return err
	}

	c.active = true
	c.sessionID = uuid.NewString()
	c.selection = mode
	c.queueIDs = ids
	c.cursor = 0
	c.easy, c.hard = 0, 0

	c.log.Info("session started",
		"sessionId", c.sessionID,
		"mode", mode.Label(),
		"queue", len(ids))
	c.persist(ctx)
	return nil
}

// Current returns the question at the cursor. Returns ErrNoActiveSession
// when idle. A queue id missing from the bank is fatal to the session:
// the session is cleared and ErrStaleQuestion returned.
func (c *Controller) Current() (bank.Question, error) {
	if !c.active {
		return bank.Question{}, ErrNoActiveSession
	}

	id := c.queueIDs[c.cursor]
	q, ok := c.bank.Get(id)
	if !ok {
		c.log.Warn("stale question in session queue, clearing session", "id", id)
		c.clearPersisted(context.Background())
		return bank.Question{}, fmt.Errorf("%w: %q", ErrStaleQuestion, id)
	}
	return q, nil
}

// Submit grades the current question and advances the cursor. On the last
// question the session completes: the controller returns to idle, the
// persisted snapshot is deleted and Result carries the summary. Persist
// failures are logged, not returned; the in-memory session stays
// consistent and the next write replaces the whole snapshot.
func (c *Controller) Submit(ctx context.Context, outcome progress.Outcome) (Result, error) {
	q, err := c.Current()
	if err != nil {
		return Result{}, err
	}

	rec, err := c.records.RecordAnswer(ctx, q.ID, outcome)
	if err != nil {
		c.log.Warn("persist progress failed", "id", q.ID, "error", err)
	}

	if outcome == progress.OutcomeEasy {
		c.easy++
	} else {
		c.hard++
	}

	if c.cursor+1 < len(c.queueIDs) {
		c.cursor++
		c.persist(ctx)
		return Result{Record: rec}, nil
	}

	summary := &Summary{
		SessionID: c.sessionID,
		Selection: c.selection,
		Answered:  c.easy + c.hard,
		Easy:      c.easy,
		Hard:      c.hard,
	}
	c.log.Info("session complete",
		"sessionId", summary.SessionID,
		"answered", summary.Answered,
		"easy", summary.Easy,
		"hard", summary.Hard)
	c.clearPersisted(ctx)
	return Result{Record: rec, Done: true, Summary: summary}, nil
}

// Exit abandons any running session and clears the persisted snapshot.
// Exiting while idle is a no-op.
func (c *Controller) Exit(ctx context.Context) {
	if c.active {
		c.log.Info("session exited", "sessionId", c.sessionID, "position", c.cursor+1)
	}
	c.clearPersisted(ctx)
}

// ResetAll wipes all progress and any session as one logical unit: both
// in-memory states are cleared before the durable deletes run, so no
// caller can observe reset progress next to a live session queue.
func (c *Controller) ResetAll(ctx context.Context) error {
	c.clear()
	progErr := c.records.ResetAll(ctx)
	sessErr := c.blobs.Delete(ctx, snapshotKey)

	if progErr != nil {
		return progErr
	}
	if sessErr != nil {
		return fmt.Errorf("reset: clear session: %w", sessErr)
	}
	c.log.Info("all progress reset")
	return nil
}

// clear resets the in-memory session to idle.
func (c *Controller) clear() {
	c.active = false
	c.sessionID = ""
	c.selection = queue.Mode{}
	c.queueIDs = nil
	c.cursor = 0
	c.easy, c.hard = 0, 0
}

// clearPersisted resets to idle and deletes the snapshot.
func (c *Controller) clearPersisted(ctx context.Context) {
	c.clear()
	if err := c.blobs.Delete(ctx, snapshotKey); err != nil {
		c.log.Warn("delete session snapshot failed", "error", err)
	}
}

// persist writes the session snapshot, logging on failure.
func (c *Controller) persist(ctx context.Context) {
	raw, err := json.Marshal(snapshot{
		Version:   snapshotVersion,
		State:     stateStudying,
		SessionID: c.sessionID,
		Selection: c.selection,
		Queue:     c.queueIDs,
		Cursor:    c.cursor,
		Easy:      c.easy,
		Hard:      c.hard,
	})
	if err != nil {
		c.log.Warn("marshal session snapshot failed", "error", err)
		return
	}
	if err := c.blobs.Save(ctx, snapshotKey, string(raw)); err != nil {
		c.log.Warn("save session snapshot failed", "error", err)
	}
}
