// Package logging provides structured logging for crosslock. Each subsystem
// gets a component logger carrying its name as a prefix; level and output
// are inherited from the parent logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Level represents a log level.
type Level = log.Level

// Log levels.
const (
	DebugLevel = log.DebugLevel
	InfoLevel  = log.InfoLevel
	WarnLevel  = log.WarnLevel
	ErrorLevel = log.ErrorLevel
	FatalLevel = log.FatalLevel
)

// Logger wraps charmbracelet/log with component prefixes.
type Logger struct {
	*log.Logger
	timeFormat string
	output     io.Writer
}

// Config holds logger configuration. Zero values select stderr, time-only
// timestamps and the info level.
type Config struct {
	Level      string
	TimeFormat string
	Output     io.Writer
}

// New creates a logger with the given configuration.
func New(cfg *Config) *Logger {
	if cfg == nil {
		cfg = &Config{}
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.TimeOnly
	}

	logger := log.NewWithOptions(output, log.Options{
		ReportTimestamp: true,
		TimeFormat:      timeFormat,
	})
	logger.SetLevel(ParseLevel(cfg.Level))

	return &Logger{Logger: logger, timeFormat: timeFormat, output: output}
}

// ParseLevel parses a string level into a log.Level. Unknown levels map to
// info.
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	default:
		return InfoLevel
	}
}

// With returns a new logger with the given key-value pairs attached to every
// record.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{Logger: l.Logger.With(keyvals...), timeFormat: l.timeFormat, output: l.output}
}

// Component returns a logger for a named subsystem, writing to the same
// output at the same level.
func (l *Logger) Component(name string) *Logger {
	sub := log.NewWithOptions(l.output, log.Options{
		ReportTimestamp: true,
		TimeFormat:      l.timeFormat,
		Prefix:          name,
	})
	sub.SetLevel(l.GetLevel())
	return &Logger{Logger: sub, timeFormat: l.timeFormat, output: l.output}
}
