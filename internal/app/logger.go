package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// NewLogger builds the process logger. A TUI owns the terminal, so logs go
// to a file; an empty path discards them. The returned closer releases the
// log file.
func NewLogger(path, level string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		log := slog.New(slog.DiscardHandler)
		slog.SetDefault(log)
		return log, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	log := slog.New(handler)
	slog.SetDefault(log)
	return log, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
