// Package logging builds toodle's diagnostics logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Options holds configuration for the diagnostics logger.
type Options struct {
	// Level is one of debug, info, warn, or error.
	Level string
	// File, when set, receives log output instead of the fallback writer.
	File string
	// ReportTimestamp prefixes each line with the time.
	ReportTimestamp bool
}

// ParseLevel parses a string log level. Unknown levels fall back to warn.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// New returns a text logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       log.TextFormatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          "toodle",
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return New(io.Discard, Options{Level: "error"})
}

// Open returns a logger for opts. Output goes to opts.File when set, otherwise
// to fallback. The returned close function releases the file, if any.
func Open(opts Options, fallback io.Writer) (*log.Logger, func() error, error) {
	if opts.File == "" {
		return New(fallback, opts), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	opts.ReportTimestamp = true
	return New(file, opts), file.Close, nil
}
