// Package logger provides charmbracelet/log factories shared across packages.
// Loggers write to stderr: stdout is reserved for the msgpack IPC protocol.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New creates a prefixed charm log that respects the global log level.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}
