package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/pubtree/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options describes the logger installed by Setup.
type Options struct {
	// Verbosity is the number of -v flags.
	Verbosity int
	// Color enables ANSI colors in console output.
	Color bool
	// Console receives human readable lines. Nil means stderr.
	Console io.Writer
	// File is appended to as JSON lines. Empty disables the log file.
	File string
}

// Level maps a -v count to a level: warnings by default, then info, debug
// and trace.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// DefaultOptions logs to stderr and to the XDG state log file, in color
// unless NO_COLOR is set.
func DefaultOptions(verbosity int) Options {
	return Options{
		Verbosity: verbosity,
		Color:     os.Getenv("NO_COLOR") == "",
		File:      paths.LogFilePath(),
	}
}

// SetupLogger installs the default logger for verbosity.
func SetupLogger(verbosity int) {
	Setup(DefaultOptions(verbosity))
}

// Setup replaces the global logger. A log file that cannot be opened is
// reported on the console and otherwise ignored.
func Setup(opts Options) {
	zerolog.SetGlobalLevel(Level(opts.Verbosity))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    !opts.Color,
	}}

	var fileErr error
	if opts.File != "" {
		var file *os.File
		file, fileErr = openLogFile(opts.File)
		if fileErr == nil {
			writers = append(writers, file)
		}
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", opts.File).Msg("Failed to create log file, logging to console only")
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", opts.File).Msg("Logger initialized")
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

func openLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
