// File: logging/logging.go
// Author: momentics <momentics@gmail.com>

// Package logging initializes the zerolog logger shared by the bridge
// binaries.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup returns a console-writer logger at the given level. Unknown level
// strings fall back to info. Timestamps are UTC.
func Setup(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	w := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02 15:04:05",
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// WithComponent tags a logger with the originating component name.
func WithComponent(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
