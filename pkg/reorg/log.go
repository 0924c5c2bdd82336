package reorg

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates a logger writing human-readable output to w. Every
// component of the engine takes one of these; there is no package-level
// logger.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("lib", "reorg").
		Logger()
}

// NewTestLogger creates a warn-level logger for tests. Engine failures
// surface through result structs rather than log output, so tests rarely
// need anything chattier; raise the level locally when debugging one.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return NewLogger(w, zerolog.WarnLevel)
}

// LogLevelFromString parses a string to a zerolog.Level.
func LogLevelFromString(levelStr string) (zerolog.Level, error) {
	return zerolog.ParseLevel(strings.ToLower(levelStr))
}
