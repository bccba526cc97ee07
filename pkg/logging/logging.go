// Package logging configures the zerolog logger shared by every deps
// package. Diagnostics go to stderr and to a log file in the XDG state
// directory; user facing output is printed by pkg/style instead.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// levels maps the -v count to a level. Anything past the end is trace.
var levels = []zerolog.Level{
	zerolog.WarnLevel,
	zerolog.InfoLevel,
	zerolog.DebugLevel,
}

// LevelFor returns the log level for a verbosity count
func LevelFor(verbosity int) zerolog.Level {
	if verbosity < 0 {
		verbosity = 0
	}
	if verbosity >= len(levels) {
		return zerolog.TraceLevel
	}
	return levels[verbosity]
}

// SetupLogger replaces the global logger. Calling it again closes the log
// file opened by the previous call. A log file that cannot be opened is
// reported once and the logger falls back to stderr alone.
func SetupLogger(verbosity int) {
	mu.Lock()
	defer mu.Unlock()

	zerolog.SetGlobalLevel(LevelFor(verbosity))

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	path := LogFilePath()
	file, fileErr := openLogFile(path)

	var out io.Writer = console
	if fileErr == nil {
		logFile = file
		out = zerolog.MultiLevelWriter(console, file)
	}

	ctx := zerolog.New(out).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", path).Msg("Log file unavailable, logging to stderr only")
		return
	}
	log.Debug().Int("verbosity", verbosity).Str("logFile", path).Msg("Logger initialized")
}

// GetLogger returns the global logger tagged with a component name
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// LogFilePath is deps/deps.log under XDG_STATE_HOME, or under the platform
// state directory when the variable is unset.
func LogFilePath() string {
	state := os.Getenv("XDG_STATE_HOME")
	if state == "" {
		state = xdg.StateHome
	}
	if state == "" {
		return "deps.log"
	}
	return filepath.Join(state, "deps", "deps.log")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

// LogCommand records which command is about to run
func LogCommand(cmd string, args []string) {
	log.Debug().Str("command", cmd).Strs("args", args).Msg("Executing command")
}

// LogOperationStart logs the start of an operation at debug level and
// returns a func that logs its completion with the elapsed time.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")
	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
