// Package logging builds the loggers handed to the rest of the tool.
//
// Two loggers exist: a progress logger for per-file sync lines, only
// active with --verbose, and an always-on logger for warnings and
// errors. Both write to stderr so stdout stays clean for summaries,
// and both optionally tee into a size-rotated log file.
package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures logger construction.
type Options struct {
	// Verbose enables the per-file progress logger.
	Verbose bool

	// LogFile, when non-empty, additionally writes all output to a
	// rotated file at this path.
	LogFile string
}

// Loggers is the bundle handed out to commands and the sync engine.
type Loggers struct {
	// Progress receives per-file action lines. Nil unless verbose.
	Progress *log.Logger

	// Warn receives warnings and non-fatal errors.
	Warn *log.Logger
}

// New builds the logger bundle.
func New(opts Options) *Loggers {
	var out io.Writer = os.Stderr
	if opts.LogFile != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   opts.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     30, // days
		})
	}

	l := &Loggers{
		Warn: log.New(out, "", log.LstdFlags),
	}
	if opts.Verbose {
		l.Progress = log.New(out, "", log.LstdFlags)
	}
	return l
}
