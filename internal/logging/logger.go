// Package logging wraps charmbracelet/log with the level names and field keys
// porytext commands share.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Process-wide logger behind Default and SetLevel.
var (
	defaultMu     sync.Mutex
	defaultLogger *log.Logger
)

// New creates a stderr logger at the named level.
// Valid levels: "debug", "info", "warn", "error".
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger that writes to w at the named level.
// Timestamps and callers are never reported.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// ParseLevel maps a level name to a log level, case-insensitively.
// "warning" is an alias for "warn"; unknown names mean info.
func ParseLevel(name string) log.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}

	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// NewInteractive creates a logger for user-facing command output.
// It writes to stderr so stdout stays clean for reports and converted text,
// and inherits the default logger's level so --debug applies to it.
func NewInteractive() *log.Logger {
	logger := NewWithWriter(os.Stderr, "info")
	logger.SetLevel(Default().GetLevel())
	return logger
}

// Default returns the process-wide logger, creating it at info level on
// first use.
func Default() *log.Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultLogger == nil {
		defaultLogger = New("info")
	}
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultLogger = logger
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
