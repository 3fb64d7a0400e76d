// Package headless provides windowless adapters for every backend
// kind: a window whose event queue is scripted by the caller, a
// graphics adapter that clears into an in-memory framebuffer and
// records submitted work, and a silent audio device.
//
// It exists for tests, CI and tooling: the full engine lifecycle runs
// without a display or a sound card. Importing the package registers
// all three adapters under the name "headless".
package headless

import "github.com/hearthlib/hearth/backend"

func init() {
	backend.RegisterWindow(backend.BackendHeadless, func() backend.Window { return NewWindow() })
	backend.RegisterGraphics(backend.BackendHeadless, func() backend.Graphics { return NewGraphics() })
	backend.RegisterAudio(backend.BackendHeadless, func() backend.Audio { return NewAudio() })
}
