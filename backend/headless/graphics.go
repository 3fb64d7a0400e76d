package headless

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/hearthlib/hearth/backend"
)

// Graphics renders nothing and remembers everything: buffers and
// textures live in maps, Clear stores the pending color, Present fills
// the framebuffer with it and counts the frame. Submitted draw lists
// are validated against the live handles and tallied, which is exactly
// the observability loop and resource-lifetime tests need.
type Graphics struct {
	inited bool
	closed bool

	frame    *image.RGBA
	clear    backend.Color
	buffers  map[backend.BufferHandle][]byte
	textures map[backend.TextureHandle]*image.RGBA
	nextID   uint64

	presentErr error

	// Frame statistics, reset never; tests read them.
	Frames        int
	DrawsSubmitted int
	VerticesDrawn  int
}

// NewGraphics returns an uninitialized headless graphics adapter.
func NewGraphics() *Graphics {
	return &Graphics{
		buffers:  make(map[backend.BufferHandle][]byte),
		textures: make(map[backend.TextureHandle]*image.RGBA),
	}
}

// Name implements backend.Graphics.
func (g *Graphics) Name() string { return backend.BackendHeadless }

// Init implements backend.Graphics.
func (g *Graphics) Init(w backend.Window) error {
	if g.closed {
		return backend.ErrClosed
	}
	width, height := w.Size()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("headless: bad surface size %dx%d", width, height)
	}
	g.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	g.inited = true
	backend.Logger().Debug("headless graphics ready", "width", width, "height", height)
	return nil
}

// Clear implements backend.Graphics.
func (g *Graphics) Clear(c backend.Color) { g.clear = c }

// CreateBuffer implements backend.Graphics.
func (g *Graphics) CreateBuffer(data []byte) (backend.BufferHandle, error) {
	if err := g.usable(); err != nil {
		return 0, err
	}
	g.nextID++
	h := backend.BufferHandle(g.nextID)
	g.buffers[h] = append([]byte(nil), data...)
	return h, nil
}

// DestroyBuffer implements backend.Graphics.
func (g *Graphics) DestroyBuffer(h backend.BufferHandle) error {
	if _, ok := g.buffers[h]; !ok {
		return fmt.Errorf("%w: buffer %d", backend.ErrInvalidHandle, h)
	}
	delete(g.buffers, h)
	return nil
}

// CreateTexture implements backend.Graphics.
func (g *Graphics) CreateTexture(img *image.RGBA) (backend.TextureHandle, error) {
	if err := g.usable(); err != nil {
		return 0, err
	}
	if img == nil {
		return 0, fmt.Errorf("headless: nil texture image")
	}
	cp := image.NewRGBA(img.Bounds())
	draw.Draw(cp, cp.Bounds(), img, img.Bounds().Min, draw.Src)
	g.nextID++
	h := backend.TextureHandle(g.nextID)
	g.textures[h] = cp
	return h, nil
}

// DestroyTexture implements backend.Graphics.
func (g *Graphics) DestroyTexture(h backend.TextureHandle) error {
	if _, ok := g.textures[h]; !ok {
		return fmt.Errorf("%w: texture %d", backend.ErrInvalidHandle, h)
	}
	delete(g.textures, h)
	return nil
}

// SubmitDraw implements backend.Graphics. Commands referencing handles
// that were never created (or already destroyed) are rejected, which
// catches resource lifetime bugs that a real GPU would render as
// garbage or worse.
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
		g.DrawsSubmitted++
		g.VerticesDrawn += cmd.VertexCount
	}
	return nil
}

// FailPresent makes every following Present return err. Tests use it to
// exercise the loop's fatal-render path; pass nil to heal.
func (g *Graphics) FailPresent(err error) { g.presentErr = err }

// Present implements backend.Graphics.
func (g *Graphics) Present() error {
	if err := g.usable(); err != nil {
		return err
	}
	if g.presentErr != nil {
		return g.presentErr
	}
	draw.Draw(g.frame, g.frame.Bounds(), image.NewUniform(toNRGBA(g.clear)), image.Point{}, draw.Src)
	g.Frames++
	return nil
}

// Snapshot implements backend.Snapshotter: a copy of the last presented
// frame.
func (g *Graphics) Snapshot() *image.RGBA {
	if g.frame == nil {
		return nil
	}
	cp := image.NewRGBA(g.frame.Bounds())
	draw.Draw(cp, cp.Bounds(), g.frame, g.frame.Bounds().Min, draw.Src)
	return cp
}

// LiveBuffers reports the number of undestroyed buffers. Test
// observability.
func (g *Graphics) LiveBuffers() int { return len(g.buffers) }

// LiveTextures reports the number of undestroyed textures. Test
// observability.
func (g *Graphics) LiveTextures() int { return len(g.textures) }

// Close implements backend.Graphics.
func (g *Graphics) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	if n := len(g.buffers) + len(g.textures); n > 0 {
		backend.Logger().Warn("headless graphics closing with live resources", "count", n)
	}
	g.buffers = nil
	g.textures = nil
	g.frame = nil
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

func toNRGBA(c backend.Color) color.NRGBA {
	clamp := func(v float32) uint8 {
		switch {
		case v <= 0:
			return 0
		case v >= 1:
			return 255
		default:
			return uint8(v*255 + 0.5)
		}
	}
	return color.NRGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
