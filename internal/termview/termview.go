// Package termview prints a texture to a terminal using upper half blocks:
// each character cell shows two vertically stacked pixels, the top one as
// the foreground colour and the bottom one as the background.
package termview

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mcmodkit/texel"
	"github.com/mcmodkit/texel/internal/render"
)

const halfBlock = "▀"

// MaxScale bounds the number of terminal columns per cell.
const MaxScale = 8

// Option configures Render.
type Option func(*options)

type options struct {
	scale  int
	cursor image.Point
	hasCur bool
}

// WithScale draws every cell s columns wide and s half-rows tall.
// Values are clamped to [1, MaxScale].
func WithScale(s int) Option {
	return func(o *options) {
		o.scale = min(max(s, 1), MaxScale)
	}
}

// WithCursor highlights cell (x, y) by inverting its colour.
func WithCursor(x, y int) Option {
	return func(o *options) {
		o.cursor = image.Pt(x, y)
		o.hasCur = true
	}
}

// ScaleForZoom maps a viewport zoom level to a terminal scale.
func ScaleForZoom(zoom float64) int {
	return min(max(int(zoom+0.5), 1), MaxScale)
}

// Render returns the raster over its checkerboard as lines of half blocks,
// without a trailing newline.
func Render(r texel.Raster, opts ...Option) string {
	o := options{scale: 1}
	for _, opt := range opts {
		opt(&o)
	}

	flat := render.Flatten(r)
	if o.hasCur && o.cursor.In(flat.Bounds()) {
		flat.SetNRGBA(o.cursor.X, o.cursor.Y, invert(flat.NRGBAAt(o.cursor.X, o.cursor.Y)))
	}

	n := r.Size() * o.scale
	styles := make(map[[2]color.NRGBA]lipgloss.Style)

	var sb strings.Builder
	for y := 0; y < n; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < n; x++ {
			key := [2]color.NRGBA{
				flat.NRGBAAt(x/o.scale, y/o.scale),
				flat.NRGBAAt(x/o.scale, (y+1)/o.scale),
			}
			st, ok := styles[key]
			if !ok {
				st = lipgloss.NewStyle().Foreground(hex(key[0])).Background(hex(key[1]))
				styles[key] = st
			}
			sb.WriteString(st.Render(halfBlock))
		}
	}
	return sb.String()
}

func hex(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

func invert(c color.NRGBA) color.NRGBA {
	return color.NRGBA{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B, A: c.A}
}
