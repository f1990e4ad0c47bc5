package texel

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"strings"

	"github.com/mcmodkit/texel/internal/cache"
)

// ErrBadSnapshot is returned when a snapshot cannot be decoded.
var ErrBadSnapshot = errors.New("texel: bad snapshot")

// SurfaceCodec turns a raster into an opaque snapshot and back.
// Snapshot contents are only meaningful to the codec that produced them.
type SurfaceCodec interface {
	Encode(g *Grid) (Snapshot, error)
	Decode(s Snapshot) (*Grid, error)
}

// PNGCodec stores snapshots as PNG bytes. It is the default codec: a
// snapshot doubles as a valid image file.
type PNGCodec struct{}

var snapshotEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

// Encode implements SurfaceCodec.
func (PNGCodec) Encode(g *Grid) (Snapshot, error) {
	var buf bytes.Buffer
	if err := snapshotEncoder.Encode(&buf, g.ToImage()); err != nil {
		return "", fmt.Errorf("texel: encode snapshot: %w", err)
	}
	return Snapshot(buf.String()), nil
}

// Decode implements SurfaceCodec.
func (PNGCodec) Decode(s Snapshot) (*Grid, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrBadSnapshot)
	}
	img, err := png.Decode(strings.NewReader(string(s)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadSnapshot, err)
	}
	g, err := GridFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadSnapshot, err)
	}
	return g, nil
}

// RawCodec stores snapshots as one size byte followed by the raw NRGBA
// bytes. Much cheaper than PNG and useful when snapshots never leave the
// process.
type RawCodec struct{}

// Encode implements SurfaceCodec.
func (RawCodec) Encode(g *Grid) (Snapshot, error) {
	var b strings.Builder
	b.Grow(1 + len(g.data))
	b.WriteByte(byte(g.size))
	b.Write(g.data)
	return Snapshot(b.String()), nil
}

// Decode implements SurfaceCodec.
func (RawCodec) Decode(s Snapshot) (*Grid, error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrBadSnapshot)
	}
	size := int(s[0])
	if !IsSupportedSize(size) {
		return nil, fmt.Errorf("%w: size %d", ErrBadSnapshot, size)
	}
	if len(s)-1 != size*size*4 {
		return nil, fmt.Errorf("%w: %d bytes for a %dx%d grid", ErrBadSnapshot, len(s)-1, size, size)
	}
	g := newGrid(size)
	copy(g.data, s[1:])
	return g, nil
}

// CachedCodec wraps a codec and memoises decoded grids by snapshot, so
// repeated undo over the same entries skips decoding. Grids handed out are
// always clones; callers may mutate them freely.
type CachedCodec struct {
	inner SurfaceCodec
	grids *cache.Cache[Snapshot, *Grid]
}

// NewCachedCodec returns a codec caching up to n decoded grids.
// A nil inner codec selects PNGCodec.
func NewCachedCodec(inner SurfaceCodec, n int) *CachedCodec {
	if inner == nil {
		inner = PNGCodec{}
	}
	return &CachedCodec{inner: inner, grids: cache.New[Snapshot, *Grid](n)}
}

// Encode implements SurfaceCodec. The encoded grid is cached immediately;
// the next decode of the same snapshot is free.
func (c *CachedCodec) Encode(g *Grid) (Snapshot, error) {
	s, err := c.inner.Encode(g)
	if err != nil {
		return "", err
	}
	c.grids.Set(s, g.Clone())
	return s, nil
}

// Decode implements SurfaceCodec.
func (c *CachedCodec) Decode(s Snapshot) (*Grid, error) {
	if g, ok := c.grids.Get(s); ok {
		return g.Clone(), nil
	}
	g, err := c.inner.Decode(s)
	if err != nil {
		return nil, err
	}
	c.grids.Set(s, g.Clone())
	return g, nil
}

// Stats reports cache statistics.
func (c *CachedCodec) Stats() cache.Stats {
	return c.grids.Stats()
}
