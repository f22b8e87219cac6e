package paintcore

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discardHandler is a slog.Handler that drops every record. Enabled returns
// false, so callers skip formatting entirely and a silent logger costs
// nothing next to the per-tile loops.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func newDiscardLogger() *slog.Logger { return slog.New(discardHandler{}) }

// activeLogger holds the logger shared by paintcore and its sub-packages.
var activeLogger atomic.Pointer[slog.Logger]

func init() {
	activeLogger.Store(newDiscardLogger())
}

// SetLogger sets the logger used by paintcore and all its sub-packages.
// The core is silent by default. Pass nil to silence it again.
//
// Nothing is ever logged from inside a per-pixel loop. Levels in use:
//   - [slog.LevelDebug]: tile bookkeeping in the orchestration helpers
//   - [slog.LevelWarn]: recoverable misuse, such as an unknown blend mode
//     falling back to normal
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newDiscardLogger()
	}
	activeLogger.Store(l)
}

// Logger returns the current logger. Sub-packages call it instead of holding
// their own copy so a single SetLogger call configures everything.
func Logger() *slog.Logger {
	return activeLogger.Load()
}
