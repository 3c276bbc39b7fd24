// Package logging builds the zerolog loggers used by the command line tool.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// LevelForVerbosity maps the number of -v flags to a log level:
// warn by default, info for one, debug for two or more
func LevelForVerbosity(verbose int) zerolog.Level {
	switch {
	case verbose <= 0:
		return zerolog.WarnLevel
	case verbose == 1:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

// New returns a human-readable logger writing to w
func New(w io.Writer, verbose int) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    true,
	}

	return zerolog.New(out).Level(LevelForVerbosity(verbose)).With().Timestamp().Logger()
}

// Component tags a logger with the name of the part of the program using it
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
