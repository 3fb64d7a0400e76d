package gogpu

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// The adapter doubles as a gpucontext.DeviceProvider so host code (an
// embedding application, a canvas integration) can render with the
// engine's GPU device instead of creating a second one.
var _ gpucontext.DeviceProvider = (*Graphics)(nil)

// Device implements gpucontext.DeviceProvider. Nil before Init.
func (g *Graphics) Device() gpucontext.Device {
	if !g.inited {
		return nil
	}
	return g.device
}

// Queue implements gpucontext.DeviceProvider. Nil before Init.
func (g *Graphics) Queue() gpucontext.Queue {
	if !g.inited {
		return nil
	}
	return g.queue
}

// Adapter implements gpucontext.DeviceProvider. Nil before Init.
func (g *Graphics) Adapter() gpucontext.Adapter {
	if !g.inited {
		return nil
	}
	return g.adapter
}

// SurfaceFormat implements gpucontext.DeviceProvider.
func (g *Graphics) SurfaceFormat() gputypes.TextureFormat {
	if !g.inited {
		return gputypes.TextureFormatUndefined
	}
	return gputypes.TextureFormatRGBA8Unorm
}
