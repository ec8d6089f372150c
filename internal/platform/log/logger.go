package log

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	logger     = newLogger(os.Stderr, "console", zerolog.InfoLevel)
	loggerLock sync.RWMutex
)

func newLogger(w io.Writer, format string, level zerolog.Level) zerolog.Logger {
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Configure replaces the global logger. format is "console" or "json".
func Configure(w io.Writer, format, level string) {
	loggerLock.Lock()
	logger = newLogger(w, strings.ToLower(format), parseLogLevel(level))
	loggerLock.Unlock()
}

// SetLevel sets the global log level at runtime
func SetLevel(levelStr string) {
	loggerLock.Lock()
	logger = logger.Level(parseLogLevel(levelStr))
	loggerLock.Unlock()
}

func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func current() zerolog.Logger {
	loggerLock.RLock()
	defer loggerLock.RUnlock()
	return logger
}

func Debug() *zerolog.Event {
	l := current()
	return l.Debug()
}

func Info() *zerolog.Event {
	l := current()
	return l.Info()
}

func Warn() *zerolog.Event {
	l := current()
	return l.Warn()
}

func Error() *zerolog.Event {
	l := current()
	return l.Error()
}

// Logger returns the underlying zerolog.Logger for injection into services.
func Logger() zerolog.Logger {
	return current()
}

// Component returns a child logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return current().With().Str("component", name).Logger()
}
