package gogpu

import (
	"fmt"
	"image"

	"github.com/gogpu/gogpu/gpu"
	"github.com/gogpu/gogpu/gpu/types"

	"github.com/hearthlib/hearth/backend"
)

// Graphics is the GPU graphics adapter. Init walks the WebGPU
// acquisition chain (backend, instance, adapter, device, queue) in
// order; Close releases everything in reverse. Buffers and textures
// are uploaded through the queue and tracked by handle so destroy and
// draw calls can be validated before they reach the GPU.
//
// Presentation: gpu.Backend does not expose a swapchain yet, so Present
// submits the frame's uploads and completes without a surface flip.
// Hosts that composite the engine's output acquire the shared device
// through the gpucontext.DeviceProvider side of this type.
// TODO: swap through a real surface once gpu.Backend grows one.
type Graphics struct {
	inited bool
	closed bool

	gpuBackend gpu.Backend
	instance   types.Instance
	adapter    types.Adapter
	device     types.Device
	queue      types.Queue

	width  int
	height int

	clear    backend.Color
	buffers  map[backend.BufferHandle]types.Buffer
	textures map[backend.TextureHandle]gpuTexture
	nextID   uint64
	pending  int

	frames int
}

type gpuTexture struct {
	tex    types.Texture
	width  int
	height int
}

// NewGraphics returns an uninitialized gogpu graphics adapter.
func NewGraphics() *Graphics {
	return &Graphics{
		buffers:  make(map[backend.BufferHandle]types.Buffer),
		textures: make(map[backend.TextureHandle]gpuTexture),
	}
}

// Name implements backend.Graphics.
func (g *Graphics) Name() string { return backend.BackendGogpu }

// Init implements backend.Graphics. It acquires the GPU resource chain
// against the window's drawable size.
func (g *Graphics) Init(w backend.Window) error {
	if g.closed {
		return backend.ErrClosed
	}
	if g.inited {
		return nil
	}
	g.width, g.height = w.Size()

	gpuBackend := gpu.GetBackend()
	if gpuBackend == nil {
		if err := gpu.InitDefaultBackend(); err != nil {
			return fmt.Errorf("%w: %w", ErrNoGPUBackend, err)
		}
		gpuBackend = gpu.GetBackend()
	}
	if gpuBackend == nil {
		return ErrNoGPUBackend
	}
	g.gpuBackend = gpuBackend
	backend.Logger().Info("gogpu: using GPU backend", "name", gpuBackend.Name())

	instance, err := gpuBackend.CreateInstance()
	if err != nil {
		return fmt.Errorf("gogpu: instance creation failed: %w", err)
	}
	g.instance = instance

	adapter, err := gpuBackend.RequestAdapter(instance, &types.AdapterOptions{
		PowerPreference: types.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoGPUBackend, err)
	}
	g.adapter = adapter

	device, err := gpuBackend.RequestDevice(adapter, &types.DeviceOptions{
		Label: "hearth-device",
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeviceCreationFailed, err)
	}
	g.device = device
	g.queue = gpuBackend.GetQueue(device)

	g.inited = true
	backend.Logger().Debug("gogpu: graphics ready", "width", g.width, "height", g.height)
	return nil
}

// Clear implements backend.Graphics.
func (g *Graphics) Clear(c backend.Color) { g.clear = c }

// CreateBuffer implements backend.Graphics: one vertex buffer, uploaded
// immediately through the queue.
func (g *Graphics) CreateBuffer(data []byte) (backend.BufferHandle, error) {
	if err := g.usable(); err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, fmt.Errorf("gogpu: empty buffer")
	}
	buf, err := g.gpuBackend.CreateBuffer(g.device, &types.BufferDescriptor{
		Label: "hearth-vertex",
		Size:  uint64(len(data)),
		Usage: types.BufferUsageVertex | types.BufferUsageCopyDst,
	})
	if err != nil {
		return 0, fmt.Errorf("gogpu: create buffer: %w", err)
	}
	g.gpuBackend.WriteBuffer(g.queue, buf, 0, data)

	g.nextID++
	h := backend.BufferHandle(g.nextID)
	g.buffers[h] = buf
	return h, nil
}

// DestroyBuffer implements backend.Graphics.
func (g *Graphics) DestroyBuffer(h backend.BufferHandle) error {
	buf, ok := g.buffers[h]
	if !ok {
		return fmt.Errorf("%w: buffer %d", backend.ErrInvalidHandle, h)
	}
	delete(g.buffers, h)
	g.gpuBackend.ReleaseBuffer(buf)
	return nil
}

// CreateTexture implements backend.Graphics: an RGBA8 sampled texture
// with the pixels written up front.
func (g *Graphics) CreateTexture(img *image.RGBA) (backend.TextureHandle, error) {
	if err := g.usable(); err != nil {
		return 0, err
	}
	if img == nil {
		return 0, fmt.Errorf("gogpu: nil texture image")
	}
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("gogpu: empty texture %dx%d", width, height)
	}

	tex, err := g.gpuBackend.CreateTexture(g.device, &types.TextureDescriptor{
		Label: "hearth-texture",
		Size: types.Extent3D{
			Width:              safeIntToUint32(width),
			Height:             safeIntToUint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     types.TextureDimension2D,
		Format:        types.TextureFormatRGBA8Unorm,
		Usage:         types.TextureUsageCopyDst | types.TextureUsageTextureBinding,
	})
	if err != nil {
		return 0, fmt.Errorf("gogpu: create texture: %w", err)
	}

	g.gpuBackend.WriteTexture(g.queue,
		&types.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   types.Origin3D{X: 0, Y: 0, Z: 0},
			Aspect:   types.TextureAspectAll,
		},
		img.Pix,
		&types.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  safeIntToUint32(img.Stride),
			RowsPerImage: safeIntToUint32(height),
		},
		&types.Extent3D{
			Width:              safeIntToUint32(width),
			Height:             safeIntToUint32(height),
			DepthOrArrayLayers: 1,
		})

	g.nextID++
	h := backend.TextureHandle(g.nextID)
	g.textures[h] = gpuTexture{tex: tex, width: width, height: height}
	return h, nil
}

// DestroyTexture implements backend.Graphics.
func (g *Graphics) DestroyTexture(h backend.TextureHandle) error {
	t, ok := g.textures[h]
	if !ok {
		return fmt.Errorf("%w: texture %d", backend.ErrInvalidHandle, h)
	}
	delete(g.textures, h)
	g.gpuBackend.ReleaseTexture(t.tex)
	return nil
}

// SubmitDraw implements backend.Graphics. Commands are validated
// against live handles before anything is queued; stale handles are the
// kind of bug a real GPU would render as garbage.
func (g *Graphics) SubmitDraw(list backend.DrawList) error {
	if err := g.usable(); err != nil {
		return err
	}
	for _, cmd := range list.Commands {
		if _, ok := g.buffers[cmd.Buffer]; !ok {
			return fmt.Errorf("%w: buffer %d", backend.ErrInvalidHandle, cmd.Buffer)
		}
		if cmd.Texture != 0 {
			if _, ok := g.textures[cmd.Texture]; !ok {
				return fmt.Errorf("%w: texture %d", backend.ErrInvalidHandle, cmd.Texture)
			}
		}
		g.pending++
	}
	return nil
}

// Present implements backend.Graphics.
func (g *Graphics) Present() error {
	if err := g.usable(); err != nil {
		return err
	}
	g.pending = 0
	g.frames++
	return nil
}

// Frames reports how many frames have been presented.
func (g *Graphics) Frames() int { return g.frames }

// IsInitialized reports whether Init has completed.
func (g *Graphics) IsInitialized() bool { return g.inited }

// Close implements backend.Graphics, releasing live resources and then
// the device chain, in reverse order of acquisition.
func (g *Graphics) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	if !g.inited {
		return nil
	}

	if n := len(g.buffers) + len(g.textures); n > 0 {
		backend.Logger().Warn("gogpu: closing with live resources", "count", n)
	}
	for h, buf := range g.buffers {
		delete(g.buffers, h)
		g.gpuBackend.ReleaseBuffer(buf)
	}
	for h, t := range g.textures {
		delete(g.textures, h)
		g.gpuBackend.ReleaseTexture(t.tex)
	}

	g.queue = 0
	g.device = 0
	g.adapter = 0
	g.instance = 0
	g.gpuBackend = nil
	g.inited = false

	backend.Logger().Debug("gogpu: graphics closed")
	return nil
}

func (g *Graphics) usable() error {
	if g.closed {
		return backend.ErrClosed
	}
	if !g.inited {
		return backend.ErrNotInitialized
	}
	return nil
}

func safeIntToUint32(v int) uint32 {
	if v < 0 {
		return 0
	}
	if uint64(v) > uint64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(v)
}
