package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds the application logger writing JSON lines to stdout.
func New() zerolog.Logger {
	return From(os.Stdout)
}

// From builds a logger writing to the given writer. Tests pass a buffer
// here to assert on emitted fields.
func From(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
