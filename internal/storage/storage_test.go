package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenMemory(t *testing.T) {
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("Open(memory) error = %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Save(ctx, "memtest", "v"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, ok, _ := s.Load(ctx, "memtest"); !ok {
		t.Error("Load() after Save = absent, want found")
	}
}

func TestSaveLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "progress", `{"version":1}`); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, ok, err := s.Load(ctx, "progress")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !ok {
		t.Fatal("Load() ok = false, want true")
	}
	if got != `{"version":1}` {
		t.Errorf("Load() = %q, want %q", got, `{"version":1}`)
	}
}

func TestLoadMissing(t *testing.T) {
	s := openTestStore(t)

	got, ok, err := s.Load(context.Background(), "session")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ok {
		t.Errorf("Load() = %q, ok = true, want absent", got)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, v := range []string{"one", "two"} {
		if err := s.Save(ctx, "progress", v); err != nil {
			t.Fatalf("Save(%q) error = %v", v, err)
		}
	}

	got, ok, err := s.Load(ctx, "progress")
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v, %v", got, ok, err)
	}
	if got != "two" {
		t.Errorf("Load() after overwrite = %q, want %q", got, "two")
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "session", "queued"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Delete(ctx, "session"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, ok, _ := s.Load(ctx, "session"); ok {
		t.Error("Load() after Delete = found, want absent")
	}

	// Deleting a missing key is a no-op, not an error.
	if err := s.Delete(ctx, "session"); err != nil {
		t.Errorf("Delete() on missing key error = %v", err)
	}
}

func TestReopenKeepsBlobs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.Save(ctx, "progress", "persisted"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s2.Close()

	got, ok, err := s2.Load(ctx, "progress")
	if err != nil || !ok {
		t.Fatalf("Load() after reopen = %v, %v, %v", got, ok, err)
	}
	if got != "persisted" {
		t.Errorf("Load() after reopen = %q, want %q", got, "persisted")
	}
}

func TestDefaultPath(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	p, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error = %v", err)
	}

	want := filepath.Join(dataHome, "quizdrill", "quizdrill.db")
	if p != want {
		t.Errorf("DefaultPath() = %q, want %q", p, want)
	}

	// The parent directory must exist so SQLite can create the file.
	if _, err := os.Stat(filepath.Dir(p)); err != nil {
		t.Errorf("parent dir not created: %v", err)
	}
}
