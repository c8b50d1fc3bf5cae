package textfx

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while frames are being rendered.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for textfx and its integration packages.
// By default, textfx produces no log output.
//
// Pass nil to restore the default silent behavior.
//
// Log levels used by textfx:
//   - [slog.LevelDebug]: mask regeneration, font resolution, resize details
//   - [slog.LevelInfo]: lifecycle events (effect started, stopped)
//   - [slog.LevelWarn]: contained failures (missing host, mask errors)
//
// Example:
//
//	textfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by textfx.
// Integration packages call this to share one logger configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
