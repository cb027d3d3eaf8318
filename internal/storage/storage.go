// Package storage persists app state as named JSON blobs in a local SQLite
// database. Snapshots are whole-value: every save replaces the blob, so a
// reader always sees a complete, internally consistent document.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS blobs (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Store is a key-value blob store backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies recommended pragmas
// and creates the blobs table if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create blobs table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the blob stored under key. The second return value is false
// if no blob exists.
func (s *Store) Load(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load blob %q: %w", key, err)
	}
	return value, true, nil
}

// Save stores value under key, replacing any previous blob.
func (s *Store) Save(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("save blob %q: %w", key, err)
	}
	return nil
}

// Delete removes the blob stored under key. Deleting a missing key is not
// an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete blob %q: %w", key, err)
	}
	return nil
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultPath returns the database file location under the XDG data dir:
// $XDG_DATA_HOME/quizdrill/quizdrill.db, falling back to
// ~/.local/share/quizdrill/quizdrill.db. The parent directory is created.
func DefaultPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "quizdrill", "quizdrill.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
