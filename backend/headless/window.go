package headless

import (
	"github.com/hearthlib/hearth/backend"
)

// Window is a stand-in for an OS window. Its event queue is fed by the
// test or tool driving the engine: Push appends native events exactly
// as a platform adapter would emit them, and the loop drains them
// through PollEvent in the same order.
type Window struct {
	cfg     backend.WindowConfig
	queue   []backend.NativeEvent
	closing bool
	closed  bool
	inited  bool
}

// NewWindow returns an uninitialized headless window.
func NewWindow() *Window { return &Window{} }

// Name implements backend.Window.
func (w *Window) Name() string { return backend.BackendHeadless }

// Init implements backend.Window.
func (w *Window) Init(cfg backend.WindowConfig) error {
	if w.closed {
		return backend.ErrClosed
	}
	w.cfg = cfg
	w.inited = true
	backend.Logger().Debug("headless window ready",
		"title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	return nil
}

// Push appends a native event to the queue. Unlike the real adapters
// it is called by the embedding test, not by a platform callback.
func (w *Window) Push(ev backend.NativeEvent) {
	w.queue = append(w.queue, ev)
}

// PollEvent implements backend.Window.
func (w *Window) PollEvent() (backend.NativeEvent, bool) {
	if len(w.queue) == 0 {
		return backend.NativeEvent{}, false
	}
	ev := w.queue[0]
	w.queue = w.queue[1:]
	return ev, true
}

// Size implements backend.Window.
func (w *Window) Size() (int, int) { return w.cfg.Width, w.cfg.Height }

// SetTitle implements backend.Window.
func (w *Window) SetTitle(title string) { w.cfg.Title = title }

// Title returns the current title. Test observability.
func (w *Window) Title() string { return w.cfg.Title }

// RequestClose implements backend.Window.
func (w *Window) RequestClose() { w.closing = true }

// CloseRequested implements backend.Window.
func (w *Window) CloseRequested() bool { return w.closing }

// Closed reports whether Close ran. Test observability.
func (w *Window) Closed() bool { return w.closed }

// Close implements backend.Window.
func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.queue = nil
	return nil
}
