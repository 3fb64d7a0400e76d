package backend

import (
	"fmt"
	"sync"
)

// registry is one name→factory table with a selection priority. Window,
// Graphics and Audio each get an instance; the exported per-kind
// functions below are the public surface.
type registry[T any] struct {
	mu        sync.RWMutex
	factories map[string]func() T
	// Priority order for default selection (first registered name in
	// the list wins). Names may be listed before any package providing
	// them exists; they are preferences, not requirements.
	priority []string
}

func newRegistry[T any](priority ...string) *registry[T] {
	return &registry[T]{factories: make(map[string]func() T), priority: priority}
}

// register stores a factory, replacing any previous one of that name.
func (r *registry[T]) register(name string, factory func() T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// unregister removes a factory. Useful for tests.
func (r *registry[T]) unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.factories, name)
}

func (r *registry[T]) available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}

// get builds an instance by name.
func (r *registry[T]) get(kind, name string) (T, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	var zero T
	if !ok {
		return zero, fmt.Errorf("%w: %s %q", ErrBackendNotAvailable, kind, name)
	}
	return factory(), nil
}

// def builds the best available instance: priority names first, then
// any registered adapter as fallback.
func (r *registry[T]) def(kind string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range r.priority {
		if factory, ok := r.factories[name]; ok {
			return factory(), nil
		}
	}
	for _, factory := range r.factories {
		return factory(), nil
	}
	var zero T
	return zero, fmt.Errorf("%w: no %s adapter registered", ErrBackendNotAvailable, kind)
}

// resolve is get with the empty name meaning "default".
func (r *registry[T]) resolve(kind, name string) (T, error) {
	if name == "" {
		return r.def(kind)
	}
	return r.get(kind, name)
}

var (
	windowRegistry = newRegistry[Window]("sdl", "glfw", BackendHeadless)
	// GPU first, the framebuffer fallback last.
	graphicsRegistry = newRegistry[Graphics](BackendGogpu, BackendHeadless)
	audioRegistry    = newRegistry[Audio](BackendOto, BackendHeadless)
)

// RegisterWindow registers a windowing adapter factory under a name.
// Typically called from an adapter package's init().
func RegisterWindow(name string, factory func() Window) {
	windowRegistry.register(name, factory)
	Logger().Debug("window adapter registered", "name", name)
}

// RegisterGraphics registers a graphics adapter factory under a name.
func RegisterGraphics(name string, factory func() Graphics) {
	graphicsRegistry.register(name, factory)
	Logger().Debug("graphics adapter registered", "name", name)
}

// RegisterAudio registers an audio adapter factory under a name.
func RegisterAudio(name string, factory func() Audio) {
	audioRegistry.register(name, factory)
	Logger().Debug("audio adapter registered", "name", name)
}

// UnregisterWindow removes a windowing adapter. Useful for tests.
func UnregisterWindow(name string) { windowRegistry.unregister(name) }

// UnregisterGraphics removes a graphics adapter. Useful for tests.
func UnregisterGraphics(name string) { graphicsRegistry.unregister(name) }

// UnregisterAudio removes an audio adapter. Useful for tests.
func UnregisterAudio(name string) { audioRegistry.unregister(name) }

// AvailableWindows lists the registered windowing adapter names.
func AvailableWindows() []string { return windowRegistry.available() }

// AvailableGraphics lists the registered graphics adapter names.
func AvailableGraphics() []string { return graphicsRegistry.available() }

// AvailableAudio lists the registered audio adapter names.
func AvailableAudio() []string { return audioRegistry.available() }

// NewWindow builds a windowing adapter. The empty name selects the best
// available one by priority.
func NewWindow(name string) (Window, error) {
	return windowRegistry.resolve("window", name)
}

// NewGraphics builds a graphics adapter. The empty name selects the
// best available one by priority.
func NewGraphics(name string) (Graphics, error) {
	return graphicsRegistry.resolve("graphics", name)
}

// NewAudio builds an audio adapter. The empty name selects the best
// available one by priority.
func NewAudio(name string) (Audio, error) {
	return audioRegistry.resolve("audio", name)
}
