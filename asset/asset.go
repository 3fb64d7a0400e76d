// Package asset loads game resources through the virtual filesystem:
// raw bytes, decoded images, parsed fonts. A Store fronts one vfs.FS
// with a byte-budgeted LRU cache so hot assets (a sprite sheet reloaded
// per level, a font shared across UI screens) are read from disk or
// archive once.
//
// Decoded output is handed to game code as-is; rasterization, atlasing
// and mixing are not the engine's business.
package asset

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	// Codecs for Decode. The stdlib formats plus the extended set games
	// actually ship.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/go-text/typesetting/font"

	"github.com/hearthlib/hearth/vfs"
)

// Store loads assets from one resource overlay. Methods are safe for
// concurrent use, though the engine itself calls them from the main
// loop only.
type Store struct {
	fsys  *vfs.FS
	cache *byteCache

	fontMu sync.RWMutex
	fonts  map[string]*font.Font
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	budget int
}

// WithCacheBudget sets the byte cache budget. Zero or negative keeps
// DefaultCacheBudget.
func WithCacheBudget(budget int) StoreOption {
	return func(o *storeOptions) { o.budget = budget }
}

// NewStore returns a Store reading through fsys.
func NewStore(fsys *vfs.FS, opts ...StoreOption) *Store {
	var o storeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Store{
		fsys:  fsys,
		cache: newByteCache(o.budget),
		fonts: make(map[string]*font.Font),
	}
}

// Bytes returns the named resource's content. The returned slice is
// shared with the cache; treat it as read-only.
func (s *Store) Bytes(name string) ([]byte, error) {
	key, err := vfs.Clean(name)
	if err != nil {
		return nil, err
	}
	if data, ok := s.cache.get(key); ok {
		return data, nil
	}
	data, err := s.fsys.ReadFile(key)
	if err != nil {
		return nil, err
	}
	s.cache.set(key, data)
	return data, nil
}

// Image decodes the named resource as an image. The format is sniffed
// from the content; png, jpeg, gif, bmp, tiff and webp are recognized.
func (s *Store) Image(name string) (image.Image, error) {
	data, err := s.Bytes(name)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("asset: decode image %s: %w", name, err)
	}
	return img, nil
}

// RGBA is Image converted to the RGBA layout graphics adapters upload.
func (s *Store) RGBA(name string) (*image.RGBA, error) {
	img, err := s.Image(name)
	if err != nil {
		return nil, err
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			rgba.Set(x-b.Min.X, y-b.Min.Y, img.At(x, y))
		}
	}
	return rgba, nil
}

// Font parses the named resource as a TTF/OTF font. Parsed fonts are
// cached separately from the byte cache and never evicted; a game's
// font set is small and parsing is the expensive part.
func (s *Store) Font(name string) (*font.Font, error) {
	key, err := vfs.Clean(name)
	if err != nil {
		return nil, err
	}

	s.fontMu.RLock()
	f, ok := s.fonts[key]
	s.fontMu.RUnlock()
	if ok {
		return f, nil
	}

	data, err := s.Bytes(key)
	if err != nil {
		return nil, err
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("asset: parse font %s: %w", name, err)
	}

	s.fontMu.Lock()
	defer s.fontMu.Unlock()
	if prev, ok := s.fonts[key]; ok {
		return prev, nil
	}
	s.fonts[key] = face.Font
	return face.Font, nil
}

// Evict drops one resource from the byte cache, so the next Bytes reads
// it fresh. Reports whether it was cached.
func (s *Store) Evict(name string) bool {
	key, err := vfs.Clean(name)
	if err != nil {
		return false
	}
	return s.cache.delete(key)
}

// Clear empties the byte cache and the font cache.
func (s *Store) Clear() {
	s.cache.clear()
	s.fontMu.Lock()
	s.fonts = make(map[string]*font.Font)
	s.fontMu.Unlock()
}

// CacheStats reports byte cache counters.
func (s *Store) CacheStats() CacheStats { return s.cache.stats() }
