package hearth

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/hearthlib/hearth/backend"
	"github.com/hearthlib/hearth/vfs"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for hearth and all its sub-packages.
// By default, hearth produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger
// atomically and propagates it to the vfs and backend packages.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by hearth:
//   - [slog.LevelDebug]: internal diagnostics (clock clamps, mount resolution)
//   - [slog.LevelInfo]: lifecycle events (backend selected, context ready)
//   - [slog.LevelWarn]: non-fatal issues (dropped malformed event, clock anomaly)
//   - [slog.LevelError]: fatal diagnostics emitted before teardown
//
// Example:
//
//	// Enable info-level logging to stderr:
//	hearth.SetLogger(slog.Default())
//
//	// Enable debug-level logging for full diagnostics:
//	hearth.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	vfs.SetLogger(l)
	backend.SetLogger(l)
}

// Logger returns the current logger used by hearth. Sub-packages that
// import hearth (asset, the backend adapters) call this to share the
// same logger configuration without introducing import cycles.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
