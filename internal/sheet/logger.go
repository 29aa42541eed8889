package sheet

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger used for build diagnostics. By default nothing is
// logged. Pass nil to go back to silence.
//
// Levels used:
//   - [slog.LevelDebug]: per-sprite trim results and scan outcomes
//   - [slog.LevelInfo]: atlases written
//   - [slog.LevelWarn]: sprites skipped for size, groups that could not be packed
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current build logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
