package study

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/halvard/quizdrill/internal/bank"
	"github.com/halvard/quizdrill/internal/progress"
	"github.com/halvard/quizdrill/internal/queue"
)

// fakeBlobs is an in-memory blobStore shared by progress and session state.
type fakeBlobs struct {
	data map[string]string
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{data: make(map[string]string)}
}

func (f *fakeBlobs) Load(_ context.Context, key string) (string, bool, error) {
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeBlobs) Save(_ context.Context, key, value string) error {
	f.data[key] = value
	return nil
}

func (f *fakeBlobs) Delete(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func option(key string) bank.Option { return bank.Option{Key: key, Text: key} }

func testQuestion(id, cat string) bank.Question {
	return bank.Question{
		ID: id, Category: cat, Type: bank.TypeSingle, Prompt: id,
		Options: []bank.Option{option("A"), option("B")},
		Answer:  []string{"A"},
	}
}

// testBank has 5 questions across 2 categories: Algorithms x3, Databases x2.
func testBank(t *testing.T) *bank.Bank {
	t.Helper()
	b, err := bank.New([]bank.Question{
		testQuestion("a1", "Algorithms"),
		testQuestion("a2", "Algorithms"),
		testQuestion("a3", "Algorithms"),
		testQuestion("d1", "Databases"),
		testQuestion("d2", "Databases"),
	})
	if err != nil {
		t.Fatalf("test bank: %v", err)
	}
	return b
}

func newTestController(t *testing.T, blobs *fakeBlobs) (*Controller, *progress.Store) {
	t.Helper()
	ctx := context.Background()
	log := slog.New(slog.DiscardHandler)
	records := progress.NewStore(ctx, blobs, log)
	builder := queue.NewBuilder(rand.New(rand.NewSource(1)), 0)
	bk := testBank(t)
	return NewController(ctx, bk, records, builder, blobs, log), records
}

func TestStart(t *testing.T) {
	c, _ := newTestController(t, newFakeBlobs())
	ctx := context.Background()

	if c.Active() {
		t.Fatal("new controller is active, want idle")
	}

	if err := c.Start(ctx, queue.Mode{Category: "Algorithms"}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !c.Active() {
		t.Fatal("Active() = false after Start")
	}

	cur, total := c.Position()
	if cur != 1 || total != 3 {
		t.Errorf("Position() = %d/%d, want 1/3", cur, total)
	}

	q, err := c.Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if q.Category != "Algorithms" {
		t.Errorf("Current().Category = %q, want Algorithms", q.Category)
	}
	if c.SessionID() == "" {
		t.Error("SessionID() empty after Start")
	}
}

func TestStart_NoMatch(t *testing.T) {
	blobs := newFakeBlobs()
	c, _ := newTestController(t, blobs)
	ctx := context.Background()

	err := c.Start(ctx, queue.Mode{Category: "History"})
	if !errors.Is(err, queue.ErrNoMatchingQuestions) {
		t.Fatalf("Start() error = %v, want ErrNoMatchingQuestions", err)
	}
	if c.Active() {
		t.Error("Active() = true after failed Start")
	}
	if _, ok := blobs.data["session"]; ok {
		t.Error("session blob saved after failed Start")
	}
}

func TestSubmit_Idle(t *testing.T) {
	c, _ := newTestController(t, newFakeBlobs())

	_, err := c.Submit(context.Background(), progress.OutcomeEasy)
	if !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("Submit() while idle error = %v, want ErrNoActiveSession", err)
	}
	if _, err := c.Current(); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("Current() while idle error = %v, want ErrNoActiveSession", err)
	}
}

func TestSubmit_ExactlyNCompletes(t *testing.T) {
	blobs := newFakeBlobs()
	c, _ := newTestController(t, blobs)
	ctx := context.Background()

	if err := c.Start(ctx, queue.Mode{}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	_, total := c.Position()
	if total != 5 {
		t.Fatalf("Position() total = %d, want 5", total)
	}

	for i := 0; i < total; i++ {
		res, err := c.Submit(ctx, progress.OutcomeEasy)
		if err != nil {
			t.Fatalf("Submit() #%d error = %v", i+1, err)
		}
		if wantDone := i == total-1; res.Done != wantDone {
			t.Errorf("Submit() #%d Done = %v, want %v", i+1, res.Done, wantDone)
		}
	}

	if c.Active() {
		t.Error("Active() = true after completing the queue")
	}
	if _, ok := blobs.data["session"]; ok {
		t.Error("session blob still present after completion")
	}

	// One more submit is rejected: the controller is idle again.
	if _, err := c.Submit(ctx, progress.OutcomeEasy); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("Submit() after completion error = %v, want ErrNoActiveSession", err)
	}
}

func TestCategoryRunUpdatesProgress(t *testing.T) {
	c, records := newTestController(t, newFakeBlobs())
	ctx := context.Background()

	if err := c.Start(ctx, queue.Mode{Category: "Algorithms"}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	outcomes := []progress.Outcome{progress.OutcomeHard, progress.OutcomeEasy, progress.OutcomeEasy}
	var last Result
	for i, o := range outcomes {
		res, err := c.Submit(ctx, o)
		if err != nil {
			t.Fatalf("Submit() #%d error = %v", i+1, err)
		}
		last = res
	}

	if !last.Done || last.Summary == nil {
		t.Fatalf("final Submit() = %+v, want Done with Summary", last)
	}
	if last.Summary.Answered != 3 || last.Summary.Easy != 2 || last.Summary.Hard != 1 {
		t.Errorf("Summary = %+v, want answered 3, easy 2, hard 1", last.Summary)
	}

	var gotLearning, gotMastered int
	for _, id := range []string{"a1", "a2", "a3"} {
		rec, ok := records.Get(id)
		if !ok {
			t.Fatalf("no record for %s after session", id)
		}
		if rec.ReviewCount != 1 {
			t.Errorf("%s reviewCount = %d, want 1", id, rec.ReviewCount)
		}
		switch rec.Status {
		case progress.StatusLearning:
			gotLearning++
			if rec.Score != 5 {
				t.Errorf("%s score = %d, want 5", id, rec.Score)
			}
		case progress.StatusMastered:
			gotMastered++
			if rec.Score != 0 {
				t.Errorf("%s score = %d, want 0", id, rec.Score)
			}
		}
	}
	if gotLearning != 1 || gotMastered != 2 {
		t.Errorf("records = %d learning / %d mastered, want 1/2", gotLearning, gotMastered)
	}

	// The other category was never touched.
	if _, ok := records.Get("d1"); ok {
		t.Error("d1 has a record, want none")
	}
}

func TestSubmit_PersistsEachStep(t *testing.T) {
	blobs := newFakeBlobs()
	c, _ := newTestController(t, blobs)
	ctx := context.Background()

	if err := c.Start(ctx, queue.Mode{Category: "Algorithms"}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	readCursor := func() int {
		t.Helper()
		raw, ok := blobs.data["session"]
		if !ok {
			t.Fatal("no session blob")
		}
		var snap snapshot
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			t.Fatalf("session blob not valid JSON: %v", err)
		}
		return snap.Cursor
	}

	if got := readCursor(); got != 0 {
		t.Errorf("cursor after Start = %d, want 0", got)
	}
	if _, err := c.Submit(ctx, progress.OutcomeHard); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if got := readCursor(); got != 1 {
		t.Errorf("cursor after first Submit = %d, want 1", got)
	}
}

func TestResume(t *testing.T) {
	blobs := newFakeBlobs()
	c1, _ := newTestController(t, blobs)
	ctx := context.Background()

	if err := c1.Start(ctx, queue.Mode{Category: "Algorithms"}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, err := c1.Submit(ctx, progress.OutcomeHard); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	wantNext, err := c1.Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}

	// New process: same blobs, fresh controller.
	c2, _ := newTestController(t, blobs)
	if !c2.Active() {
		t.Fatal("resumed controller idle, want active")
	}
	if c2.SessionID() != c1.SessionID() {
		t.Errorf("resumed SessionID = %q, want %q", c2.SessionID(), c1.SessionID())
	}

	cur, total := c2.Position()
	if cur != 2 || total != 3 {
		t.Errorf("resumed Position() = %d/%d, want 2/3", cur, total)
	}

	got, err := c2.Current()
	if err != nil {
		t.Fatalf("resumed Current() error = %v", err)
	}
	if got.ID != wantNext.ID {
		t.Errorf("resumed Current() = %s, want %s", got.ID, wantNext.ID)
	}

	// Finishing the resumed session counts the pre-restart answer.
	var last Result
	for i := 0; i < 2; i++ {
		last, err = c2.Submit(ctx, progress.OutcomeEasy)
		if err != nil {
			t.Fatalf("Submit() #%d error = %v", i+1, err)
		}
	}
	if !last.Done || last.Summary.Answered != 3 || last.Summary.Hard != 1 {
		t.Errorf("Summary after resume = %+v, want answered 3, hard 1", last.Summary)
	}
}

func TestResume_SnapshotIsAuthoritative(t *testing.T) {
	blobs := newFakeBlobs()
	// A stored order the seeded builder would not produce: the queue must
	// be restored verbatim, never rebuilt.
	raw, _ := json.Marshal(snapshot{
		Version: 1, State: "studying", SessionID: "s-1",
		Queue: []string{"a3", "a1", "d2"}, Cursor: 1,
	})
	blobs.data["session"] = string(raw)

	c, _ := newTestController(t, blobs)
	if !c.Active() {
		t.Fatal("controller idle, want active from snapshot")
	}

	q, err := c.Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if q.ID != "a1" {
		t.Errorf("Current() = %s, want a1 (cursor 1 of stored queue)", q.ID)
	}
}

func TestResume_BadSnapshots(t *testing.T) {
	mk := func(s snapshot) string {
		raw, _ := json.Marshal(s)
		return string(raw)
	}

	tests := []struct {
		name string
		blob string
	}{
		{"corrupt json", `{"state": "stud`},
		{"unknown state", mk(snapshot{Version: 1, State: "paused", Queue: []string{"a1"}, Cursor: 0})},
		{"empty queue", mk(snapshot{Version: 1, State: "studying"})},
		{"cursor past end", mk(snapshot{Version: 1, State: "studying", Queue: []string{"a1"}, Cursor: 1})},
		{"negative cursor", mk(snapshot{Version: 1, State: "studying", Queue: []string{"a1"}, Cursor: -1})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blobs := newFakeBlobs()
			blobs.data["session"] = tt.blob

			c, _ := newTestController(t, blobs)
			if c.Active() {
				t.Error("Active() = true, want idle for unusable snapshot")
			}
		})
	}
}

func TestCurrent_StaleQuestion(t *testing.T) {
	blobs := newFakeBlobs()
	raw, _ := json.Marshal(snapshot{
		Version: 1, State: "studying",
		Queue: []string{"a1", "ghost", "a3"}, Cursor: 1,
	})
	blobs.data["session"] = string(raw)

	c, _ := newTestController(t, blobs)
	if !c.Active() {
		t.Fatal("controller idle, want active before first Current()")
	}

	_, err := c.Current()
	if !errors.Is(err, ErrStaleQuestion) {
		t.Fatalf("Current() error = %v, want ErrStaleQuestion", err)
	}
	if c.Active() {
		t.Error("Active() = true after stale question, want idle")
	}
	if _, ok := blobs.data["session"]; ok {
		t.Error("session blob still present after stale question")
	}
}

func TestExit(t *testing.T) {
	blobs := newFakeBlobs()
	c, _ := newTestController(t, blobs)
	ctx := context.Background()

	if err := c.Start(ctx, queue.Mode{}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	c.Exit(ctx)

	if c.Active() {
		t.Error("Active() = true after Exit")
	}
	if _, ok := blobs.data["session"]; ok {
		t.Error("session blob still present after Exit")
	}

	// Exit while idle is a no-op.
	c.Exit(ctx)
	if c.Active() {
		t.Error("Active() = true after idle Exit")
	}
}

func TestResetAll(t *testing.T) {
	blobs := newFakeBlobs()
	c, records := newTestController(t, blobs)
	ctx := context.Background()

	if err := c.Start(ctx, queue.Mode{}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, err := c.Submit(ctx, progress.OutcomeHard); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if err := c.ResetAll(ctx); err != nil {
		t.Fatalf("ResetAll() error = %v", err)
	}

	if c.Active() {
		t.Error("Active() = true after reset")
	}
	if records.Len() != 0 {
		t.Errorf("records.Len() = %d, want 0 after reset", records.Len())
	}
	if _, ok := blobs.data["progress"]; ok {
		t.Error("progress blob still present after reset")
	}
	if _, ok := blobs.data["session"]; ok {
		t.Error("session blob still present after reset")
	}
}

func TestStart_ReplacesActiveSession(t *testing.T) {
	c, _ := newTestController(t, newFakeBlobs())
	ctx := context.Background()

	if err := c.Start(ctx, queue.Mode{Category: "Algorithms"}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	first := c.SessionID()

	if err := c.Start(ctx, queue.Mode{Category: "Databases"}); err != nil {
		t.Fatalf("second Start() error = %v", err)
	}
	if c.SessionID() == first {
		t.Error("SessionID unchanged, want a fresh session")
	}

	cur, total := c.Position()
	if cur != 1 || total != 2 {
		t.Errorf("Position() = %d/%d, want 1/2", cur, total)
	}
}
