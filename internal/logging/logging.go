// Package logging configures the application logger. The terminal is owned
// by the TUI, so logs go to a file under the user state dir.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Open returns a component-scoped logger writing to the budgetdash log
// file, plus a closer for shutdown. BUDGETDASH_LOG overrides the path.
func Open(component string) (*slog.Logger, func() error, error) {
	path := os.Getenv("BUDGETDASH_LOG")
	if path == "" {
		base := os.Getenv("XDG_STATE_HOME")
		if base == "" {
			base = filepath.Join(os.Getenv("HOME"), ".local", "state")
		}
		path = filepath.Join(base, "budgetdash", "budgetdash.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, nil)).With("component", component)
	return logger, f.Close, nil
}

// Discard returns a logger that drops everything; used in tests and as a
// fallback when no logger is supplied.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
