// Package backend defines the capability interfaces between the engine
// core and its windowing, graphics and audio adapters, plus the
// registries the adapters plug into.
//
// The engine core programs against these interfaces only. Adapters
// register factories from init() functions; importing an adapter
// package for its side effects makes it selectable:
//
//	import _ "github.com/hearthlib/hearth/backend/headless"
//
// Adapter instances are exclusively owned by the engine Context and are
// driven from the main loop goroutine; implementations do not need
// internal locking beyond what their platform libraries demand.
package backend

import "image"

// Backend registry names for the in-tree adapters.
const (
	// BackendHeadless is the windowless adapter set used by tests,
	// tools and CI: scripted events, an in-memory framebuffer, silent
	// audio.
	BackendHeadless = "headless"

	// BackendGogpu is the GPU graphics adapter built on gogpu/gogpu.
	BackendGogpu = "gogpu"

	// BackendOto is the audio adapter built on ebitengine/oto.
	BackendOto = "oto"
)

// WindowConfig carries the window parameters from the engine Config to
// the windowing adapter.
type WindowConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	Vsync     bool
}

// Window is the windowing capability: one OS window (or a stand-in) and
// its native event queue.
type Window interface {
	// Name returns the adapter's registry name.
	Name() string

	// Init creates the window. Called exactly once, before any other
	// method.
	Init(cfg WindowConfig) error

	// PollEvent pops the next pending native event without blocking.
	// The second result is false when the queue is empty.
	PollEvent() (NativeEvent, bool)

	// Size returns the current drawable size in pixels.
	Size() (w, h int)

	// SetTitle updates the window title.
	SetTitle(title string)

	// RequestClose marks the window as close-requested, as if the user
	// had clicked the close button.
	RequestClose()

	// CloseRequested reports whether the platform or RequestClose asked
	// for the window to go away.
	CloseRequested() bool

	// Close destroys the window.
	Close() error
}

// Color is a linear RGBA color with [0,1] channels, the form GPU clear
// values take.
type Color struct {
	R, G, B, A float32
}

// BufferHandle identifies a vertex buffer owned by a Graphics adapter.
// Zero is never a valid handle.
type BufferHandle uint64

// TextureHandle identifies a texture owned by a Graphics adapter. Zero
// is never a valid handle.
type TextureHandle uint64

// DrawCommand is one draw over previously created resources. The
// engine core treats it as opaque freight between the game's renderer
// and the adapter; what a vertex means is the adapter's business.
type DrawCommand struct {
	Buffer      BufferHandle
	Texture     TextureHandle
	VertexCount int
}

// DrawList is the ordered draw work for one frame.
type DrawList struct {
	Commands []DrawCommand
}

// Graphics is the rendering capability boundary: resource creation and
// frame clear/submit/present. The concrete pipeline behind it is the
// adapter's concern.
//
// Adapters that share their GPU device with host code additionally
// implement gpucontext.DeviceProvider; integrators type-assert for it.
type Graphics interface {
	// Name returns the adapter's registry name.
	Name() string

	// Init binds the adapter to the window's drawable surface. Called
	// exactly once, after the window is initialized.
	Init(w Window) error

	// Clear sets the color the next Present flushes the frame to.
	Clear(c Color)

	// CreateBuffer uploads raw vertex data and returns its handle.
	CreateBuffer(data []byte) (BufferHandle, error)

	// DestroyBuffer releases a buffer handle.
	DestroyBuffer(h BufferHandle) error

	// CreateTexture uploads RGBA pixels and returns a texture handle.
	CreateTexture(img *image.RGBA) (TextureHandle, error)

	// DestroyTexture releases a texture handle.
	DestroyTexture(h TextureHandle) error

	// SubmitDraw queues draw work for the current frame.
	SubmitDraw(list DrawList) error

	// Present finishes the frame and hands it to the window. A failed
	// present is fatal to the loop.
	Present() error

	// Close releases every live resource and the surface binding.
	Close() error
}

// Snapshotter is an optional Graphics capability: adapters that can
// read the presented frame back implement it. The headless adapter
// does; screenshot tooling type-asserts for it.
type Snapshotter interface {
	Snapshot() *image.RGBA
}

// Sound is one playable PCM clip: interleaved signed 16-bit
// little-endian samples. Decoding compressed formats is an asset
// pipeline concern, not the engine's.
type Sound struct {
	SampleRate int
	Channels   int
	Data       []byte
}

// Voice is one playing instance of a Sound.
type Voice interface {
	Play()
	Pause()
	IsPlaying() bool
	SetVolume(v float64)
	Close() error
}

// Audio is the audio output capability.
type Audio interface {
	// Name returns the adapter's registry name.
	Name() string

	// Init opens the audio device. Audio is the one lazily acquired
	// subsystem: Init runs on first use, not at engine startup.
	Init() error

	// NewVoice prepares a sound for playback. The voice starts paused.
	NewVoice(s Sound) (Voice, error)

	// SetMasterVolume scales all voices. v is clamped to [0,1].
	SetMasterVolume(v float64)

	// Close releases the device. Open voices become invalid.
	Close() error
}
