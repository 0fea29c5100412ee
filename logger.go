package colortest

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards everything. Enabled returns false so that callers
// skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var logger_ptr atomic.Pointer[slog.Logger]

func init() {
	logger_ptr.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger used by this package and its sub-packages.
// By default nothing is logged. Pass nil to go back to the silent default.
//
// Draw calls are logged at [slog.LevelDebug], file output at
// [slog.LevelInfo].
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	logger_ptr.Store(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return logger_ptr.Load()
}
