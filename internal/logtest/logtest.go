// Package logtest provides loggers for use in tests.
package logtest

import (
	"io"
	"log/slog"

	"github.com/etuitionbd/etuition-cli/internal/logging"
)

// Discard returns a Logger that drops everything.
func Discard() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
