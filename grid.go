package texel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"slices"
)

// ErrUnsupportedSize is returned when a grid size is not one of SupportedSizes.
var ErrUnsupportedSize = errors.New("texel: unsupported grid size")

// SupportedSizes lists the grid edge lengths an editor accepts.
var SupportedSizes = []int{8, 16, 32, 64}

// DefaultSize is the grid edge length of a new editor.
const DefaultSize = 16

// IsSupportedSize reports whether n is a valid grid edge length.
func IsSupportedSize(n int) bool {
	return slices.Contains(SupportedSizes, n)
}

// Raster is a read-only view of the pixel grid for renderers.
type Raster interface {
	image.Image

	// Size returns the grid edge length.
	Size() int

	// Pixel returns the stored value at (x, y) and false if out of bounds.
	Pixel(x, y int) (Pixel, bool)
}

// Grid is a square N×N pixel buffer. N is fixed at creation.
type Grid struct {
	size int
	data []uint8 // NRGBA, 4 bytes per pixel
}

// NewGrid creates a fully transparent grid of the given size.
func NewGrid(size int) (*Grid, error) {
	if !IsSupportedSize(size) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSize, size)
	}
	return newGrid(size), nil
}

func newGrid(size int) *Grid {
	return &Grid{
		size: size,
		data: make([]uint8, size*size*4),
	}
}

// Size returns the grid edge length.
func (g *Grid) Size() int {
	return g.size
}

// Data returns the raw pixel data (NRGBA, row-major).
func (g *Grid) Data() []uint8 {
	return g.data
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size
}

// Pixel returns the stored value of a cell.
// Out-of-bounds coordinates return (Transparent, false).
func (g *Grid) Pixel(x, y int) (Pixel, bool) {
	if !g.inBounds(x, y) {
		return Transparent, false
	}
	i := (y*g.size + x) * 4
	return Pixel{R: g.data[i], G: g.data[i+1], B: g.data[i+2], A: g.data[i+3]}, true
}

// SetPixel stores p at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) SetPixel(x, y int, p Pixel) {
	if !g.inBounds(x, y) {
		return
	}
	i := (y*g.size + x) * 4
	g.data[i+0] = p.R
	g.data[i+1] = p.G
	g.data[i+2] = p.B
	g.data[i+3] = p.A
}

// Paint writes an opaque colour at (x, y).
func (g *Grid) Paint(x, y int, c Color) {
	g.SetPixel(x, y, c.Pixel())
}

// Erase makes (x, y) transparent.
func (g *Grid) Erase(x, y int) {
	g.SetPixel(x, y, Transparent)
}

// Clear makes every cell transparent.
func (g *Grid) Clear() {
	clear(g.data)
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{size: g.size, data: slices.Clone(g.data)}
}

// Equal reports whether both grids have the same size and identical bytes.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil {
		return false
	}
	return g.size == other.size && slices.Equal(g.data, other.data)
}

// copyFrom replaces the content of g with src. Sizes must match.
func (g *Grid) copyFrom(src *Grid) {
	copy(g.data, src.data)
}

// ToImage returns a copy of the grid as an *image.NRGBA.
func (g *Grid) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.size, g.size))
	copy(img.Pix, g.data)
	return img
}

// GridFromImage creates a grid from a square image whose edge length is a
// supported size.
func GridFromImage(img image.Image) (*Grid, error) {
	b := img.Bounds()
	if b.Dx() != b.Dy() {
		return nil, fmt.Errorf("%w: %dx%d is not square", ErrUnsupportedSize, b.Dx(), b.Dy())
	}
	g, err := NewGrid(b.Dx())
	if err != nil {
		return nil, err
	}

	// Fast path for NRGBA images
	if n, ok := img.(*image.NRGBA); ok {
		for y := 0; y < g.size; y++ {
			start := (y+b.Min.Y-n.Rect.Min.Y)*n.Stride + (b.Min.X-n.Rect.Min.X)*4
			copy(g.data[y*g.size*4:(y+1)*g.size*4], n.Pix[start:start+g.size*4])
		}
		return g, nil
	}

	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			g.SetPixel(x, y, pixelFromColor(img.At(b.Min.X+x, b.Min.Y+y)))
		}
	}
	return g, nil
}

// At implements the image.Image interface.
func (g *Grid) At(x, y int) color.Color {
	p, _ := g.Pixel(x, y)
	return p.NRGBA()
}

// Bounds implements the image.Image interface.
func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.size, g.size)
}

// ColorModel implements the image.Image interface.
func (g *Grid) ColorModel() color.Model {
	return color.NRGBAModel
}
