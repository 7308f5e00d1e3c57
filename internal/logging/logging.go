// Package logging builds the zerolog logger shared by the CLI, the client and the TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// DefaultFile is where the TUI writes logs when no file is configured.
func DefaultFile() string {
	return filepath.Join(os.TempDir(), "catalyst.log")
}

// Options selects the level and destination of the logger.
type Options struct {
	Level string
	// File, when non-empty, receives JSON logs. The TUI always logs to a
	// file because it owns the terminal.
	File string
	// Console adds a human-readable writer on Console (usually stderr).
	Console io.Writer
}

// New returns a logger and a close function for any opened file.
// An unparsable level falls back to info.
func New(opts Options) (zerolog.Logger, func() error, error) {
	lvl, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var writers []io.Writer
	closeFn := func() error { return nil }

	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: time.RFC3339})
	}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o700); err != nil {
			return zerolog.Nop(), closeFn, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return zerolog.Nop(), closeFn, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, f)
		closeFn = f.Close
	}
	if len(writers) == 0 {
		return zerolog.Nop(), closeFn, nil
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return logger, closeFn, nil
}
