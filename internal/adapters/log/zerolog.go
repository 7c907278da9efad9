// Package log builds the zerolog logger used by the CLI and wraps it in the
// runctl logging interface.
package log

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	pkglog "github.com/bft-labs/runctl/pkg/log"
)

// Format selects the zerolog output encoding.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// New returns a zerolog logger writing to w at level. Console format is
// human-readable; JSON writes one object per line.
func New(w io.Writer, level zerolog.Level, format Format) zerolog.Logger {
	if format != FormatJSON {
		w = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    true,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// NewZerologAdapterWithLogger wraps l for components that take a runctl Logger.
func NewZerologAdapterWithLogger(l zerolog.Logger) *pkglog.ZerologAdapter {
	return pkglog.NewZerologAdapterWithLogger(l)
}

// NewNoopLogger returns a logger that discards everything.
func NewNoopLogger() pkglog.Logger {
	return pkglog.NewNoopLogger()
}
