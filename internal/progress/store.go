// Package progress tracks per-question learning state. The store owns the
// full id-to-record map in memory and writes it back as one JSON blob after
// every mutation, so persisted state is always a complete snapshot.
package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// blobKey is the storage key for the progress snapshot.
const blobKey = "progress"

// blobVersion is the snapshot format version this build writes.
const blobVersion = 1

// blobStore is the persistence surface the store needs.
type blobStore interface {
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// progressBlob is the persisted envelope.
type progressBlob struct {
	Version int               `json:"version"`
	Records map[string]Record `json:"records"`
}

// Store holds learning records keyed by question id.
type Store struct {
	blobs   blobStore
	log     *slog.Logger
	now     func() time.Time
	records map[string]Record
}

// NewStore creates a store and loads the persisted snapshot. A missing or
// unreadable snapshot starts the store empty; corruption is logged once
// here, never on reads.
func NewStore(ctx context.Context, blobs blobStore, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Store{
		blobs:   blobs,
		log:     log,
		now:     time.Now,
		records: make(map[string]Record),
	}

	raw, ok, err := blobs.Load(ctx, blobKey)
	if err != nil {
		log.Warn("load progress snapshot failed, starting empty", "error", err)
		return s
	}
	if !ok {
		return s
	}

	var blob progressBlob
	if err := json.Unmarshal([]byte(raw), &blob); err != nil {
		log.Warn("progress snapshot corrupt, starting empty", "error", err)
		return s
	}
	if blob.Records != nil {
		s.records = blob.Records
	}
	return s
}

// Get returns the record for a question id. The second return value is
// false for questions that have never been answered.
func (s *Store) Get(id string) (Record, bool) {
	rec, ok := s.records[id]
	return rec, ok
}

// Len returns the number of questions with a record.
func (s *Store) Len() int { return len(s.records) }

// RecordAnswer grades one answer and persists the updated snapshot. The
// returned record reflects the new state. On a persist error the in-memory
// state is already updated; the next successful save writes the full map,
// so no individual answer is lost while the process lives.
func (s *Store) RecordAnswer(ctx context.Context, id string, outcome Outcome) (Record, error) {
	next := apply(s.records[id], outcome, s.now())
	s.records[id] = next

	if err := s.persist(ctx); err != nil {
		return next, fmt.Errorf("record answer for %q: %w", id, err)
	}
	return next, nil
}

// ResetAll discards every record and deletes the persisted snapshot.
func (s *Store) ResetAll(ctx context.Context) error {
	s.records = make(map[string]Record)
	if err := s.blobs.Delete(ctx, blobKey); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

// Snapshot returns a copy of all records for read-only policy decisions.
func (s *Store) Snapshot() map[string]Record {
	out := make(map[string]Record, len(s.records))
	for id, rec := range s.records {
		out[id] = rec
	}
	return out
}

// Counts aggregates the status of the given question ids. Ids without a
// record count as new; records for ids outside the list are ignored.
func (s *Store) Counts(ids []string) Counts {
	var c Counts
	for _, id := range ids {
		rec, ok := s.records[id]
		switch {
		case !ok:
			c.New++
		case rec.Status == StatusMastered:
			c.Mastered++
		default:
			c.Learning++
		}
	}
	return c
}

func (s *Store) persist(ctx context.Context) error {
	raw, err := json.Marshal(progressBlob{Version: blobVersion, Records: s.records})
	if err != nil {
		return fmt.Errorf("marshal progress snapshot: %w", err)
	}
	if err := s.blobs.Save(ctx, blobKey, string(raw)); err != nil {
		return fmt.Errorf("save progress snapshot: %w", err)
	}
	return nil
}
