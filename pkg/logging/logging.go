package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AppName names the log directory and file.
const AppName = "drupalctl"

// Logging starts before configuration is loaded, so it is tuned with its own
// environment variables rather than configuration keys.
const (
	// EnvLogLevel holds a zerolog level name. It wins over -v.
	EnvLogLevel = "DRUPALCTL_LOG_LEVEL"
	// EnvLogFile overrides the log file path. "off" disables the file.
	EnvLogFile = "DRUPALCTL_LOG_FILE"
)

// LogFileOff is the EnvLogFile value that disables the log file.
const LogFileOff = "off"

// Options configure Setup.
type Options struct {
	// Verbosity is the -v count.
	Verbosity int

	// DryRun marks every entry with dry_run=true, so log files show which
	// invocations changed nothing.
	DryRun bool

	// Console receives human readable entries. Defaults to os.Stderr.
	Console io.Writer
}

// Setup configures the global logger for one invocation: console output
// plus an append-only log file. The returned function closes the file.
func Setup(opts Options) func() {
	zerolog.SetGlobalLevel(Level(opts.Verbosity, os.Getenv(EnvLogLevel)))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(console),
	}}

	path := LogFilePath()
	var file *os.File
	var fileErr error
	if path != "" {
		file, fileErr = openLogFile(path)
		if fileErr == nil {
			writers = append(writers, file)
		}
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if opts.DryRun {
		ctx = ctx.Bool("dry_run", true)
	}
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", path).Msg("Failed to create log file, logging to console only")
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("log_file", path).Msg("Logger initialized")

	return func() {
		if file != nil {
			_ = file.Close()
		}
	}
}

// Level maps a -v count to a level. A valid level name in override wins.
func Level(verbosity int, override string) zerolog.Level {
	if override != "" {
		if lvl, err := zerolog.ParseLevel(strings.ToLower(override)); err == nil && lvl != zerolog.NoLevel {
			return lvl
		}
	}
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// LogFilePath returns where Setup writes its log file, or "" when the file
// is disabled. Without EnvLogFile it lives under the XDG state directory.
func LogFilePath() string {
	if path := os.Getenv(EnvLogFile); path != "" {
		if strings.EqualFold(path, LogFileOff) {
			return ""
		}
		return path
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = xdg.StateHome
	}
	if stateHome == "" {
		return AppName + ".log"
	}
	return filepath.Join(stateHome, AppName, AppName+".log")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
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
