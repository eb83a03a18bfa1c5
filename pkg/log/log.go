package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var (
	// Logger is the global logger instance
	Logger = zerolog.Nop()
)

// Level represents log level
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// Config holds logging configuration
type Config struct {
	Level      Level
	JSONOutput bool

	// Stdout receives debug and info messages (default: os.Stdout)
	Stdout io.Writer

	// Stderr receives warnings and above (default: os.Stderr)
	Stderr io.Writer
}

// ParseLevel maps a level name to a zerolog level, defaulting to info
func ParseLevel(l Level) zerolog.Level {
	switch l {
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New builds a logger that splits output by severity: everything below warn
// goes to Stdout, warn and above go to Stderr. Both streams are timestamped.
func New(cfg Config) zerolog.Logger {
	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	if !cfg.JSONOutput {
		stdout = zerolog.ConsoleWriter{
			Out:          stdout,
			NoColor:      true,
			TimeFormat:   time.RFC3339,
			PartsExclude: []string{zerolog.LevelFieldName},
		}
		stderr = zerolog.ConsoleWriter{
			Out:        stderr,
			NoColor:    true,
			TimeFormat: time.RFC3339,
		}
	}

	out := zerolog.MultiLevelWriter(
		&levelRangeWriter{w: stdout, min: zerolog.TraceLevel, max: zerolog.WarnLevel},
		&levelRangeWriter{w: stderr, min: zerolog.WarnLevel, max: zerolog.Disabled},
	)

	return zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
}

// Init initializes the global logger
func Init(cfg Config) {
	Logger = New(cfg)
}

// WithComponent creates a child logger with component field
func WithComponent(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}

// levelRangeWriter forwards events whose level is in [min, max)
type levelRangeWriter struct {
	w   io.Writer
	min zerolog.Level
	max zerolog.Level
}

func (l *levelRangeWriter) Write(p []byte) (int, error) {
	return l.w.Write(p)
}

func (l *levelRangeWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < l.min || level >= l.max {
		return len(p), nil
	}
	return l.w.Write(p)
}
