package backend

import (
	"errors"
	"testing"
)

type fakeWindow struct {
	name string
}

func (w *fakeWindow) Name() string                  { return w.name }
func (w *fakeWindow) Init(WindowConfig) error       { return nil }
func (w *fakeWindow) PollEvent() (NativeEvent, bool) { return NativeEvent{}, false }
func (w *fakeWindow) Size() (int, int)              { return 0, 0 }
func (w *fakeWindow) SetTitle(string)               {}
func (w *fakeWindow) RequestClose()                 {}
func (w *fakeWindow) CloseRequested() bool          { return false }
func (w *fakeWindow) Close() error                  { return nil }

func registerFakeWindow(t *testing.T, name string) {
	t.Helper()
	RegisterWindow(name, func() Window { return &fakeWindow{name: name} })
	t.Cleanup(func() { UnregisterWindow(name) })
}

func TestWindowRegistry(t *testing.T) {
	registerFakeWindow(t, "fake")

	w, err := NewWindow("fake")
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	if w.Name() != "fake" {
		t.Errorf("Name = %q, want %q", w.Name(), "fake")
	}

	if _, err := NewWindow("no-such"); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("NewWindow(no-such) error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestDefaultHonorsPriority(t *testing.T) {
	// "sdl" sits before "headless" in the priority list, so with both
	// registered the default must pick it regardless of map order.
	registerFakeWindow(t, BackendHeadless)
	registerFakeWindow(t, "sdl")

	for i := 0; i < 8; i++ {
		w, err := NewWindow("")
		if err != nil {
			t.Fatalf("NewWindow: %v", err)
		}
		if w.Name() != "sdl" {
			t.Fatalf("default window = %q, want %q", w.Name(), "sdl")
		}
	}
}

func TestDefaultFallsBackToAnyRegistered(t *testing.T) {
	// A name the priority list has never heard of still wins when it is
	// the only adapter present.
	registerFakeWindow(t, "exotic")

	w, err := NewWindow("")
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	if w.Name() != "exotic" {
		t.Errorf("default window = %q, want %q", w.Name(), "exotic")
	}
}

func TestEmptyRegistry(t *testing.T) {
	// No graphics adapter is linked into this test binary.
	if _, err := NewGraphics(""); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("NewGraphics() error = %v, want ErrBackendNotAvailable", err)
	}
	if _, err := NewAudio("oto"); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("NewAudio(oto) error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestAvailable(t *testing.T) {
	registerFakeWindow(t, "fake-a")
	registerFakeWindow(t, "fake-b")

	names := AvailableWindows()
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	if !seen["fake-a"] || !seen["fake-b"] {
		t.Errorf("AvailableWindows = %v, want fake-a and fake-b present", names)
	}
}
