// Package logger wraps charmbracelet/log with the prefixes and defaults used
// across the segmentation engine's packages.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New creates a component logger that reports timestamps, for build-time
// and load-time diagnostics (automaton construction, dictionary loading,
// suffix-array construction).
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a component logger with explicit options, used where
// callers need to suppress timestamps or raise caller reporting for
// debugging a specific subsystem.
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}
