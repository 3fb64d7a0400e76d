package gogpu

import (
	"github.com/hearthlib/hearth/backend"
)

// init registers the adapter so it participates in default graphics
// selection. A gogpu GPU implementation must also be linked, or Init
// will fail with ErrNoGPUBackend at context construction:
//
//	import _ "github.com/gogpu/gogpu/gpu/backend/native" // Pure Go
func init() {
	backend.RegisterGraphics(backend.BackendGogpu, func() backend.Graphics {
		return NewGraphics()
	})
}
