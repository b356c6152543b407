package utils

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewLogger creates a logger with component metadata. An unknown level falls
// back to info.
func NewLogger(component, level string) zerolog.Logger {
	return newLogger(os.Stderr, component, level)
}

func newLogger(w io.Writer, component, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).With().
		Timestamp().
		Str("component", component).
		Logger().
		Level(lvl)
}
