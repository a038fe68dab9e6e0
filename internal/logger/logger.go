// Package logger builds the zerolog loggers used across hmmcount.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Settings are read from HMMCOUNT_LOG_* environment variables.
type Settings struct {
	Level  string `envconfig:"LOG_LEVEL" default:"WARN"`
	Pretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// LoadSettings reads Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := envconfig.Process("hmmcount", &s); err != nil {
		return s, err
	}
	return s, nil
}

// ParseLevel maps a level name to a zerolog level. Unknown names fall back
// to warn.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelError:
		return zerolog.ErrorLevel
	}
	return zerolog.WarnLevel
}

// New returns a logger for component writing to stderr.
func New(component string, s Settings) zerolog.Logger {
	var w io.Writer = os.Stderr
	if s.Pretty {
		w = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	return NewWithWriter(w, component, ParseLevel(s.Level))
}

// NewWithWriter returns a logger for component writing to w.
func NewWithWriter(w io.Writer, component string, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		With().
		Str("component", component).
		Timestamp().
		Logger().
		Level(level)
}
