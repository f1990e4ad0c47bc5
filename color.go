package texel

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// ErrInvalidColor is returned when a hex colour string cannot be parsed.
var ErrInvalidColor = errors.New("texel: invalid color")

// Color is an opaque RGB brush colour. There is no alpha channel: anything
// painted with a Color is fully opaque.
type Color struct {
	R, G, B uint8
}

// Pixel represents one stored raster cell as non-premultiplied RGBA.
// The zero Pixel is fully transparent and means "unset".
type Pixel struct {
	R, G, B, A uint8
}

// Transparent is the value of an unset or erased cell.
var Transparent = Pixel{}

// DefaultColor is the colour a new editor starts with.
var DefaultColor = Color{R: 0x79, G: 0xe6, B: 0x8a}

// RGB creates a colour from integer components, clamping each to [0, 255].
func RGB(r, g, b int) Color {
	return Color{R: clampByte(r), G: clampByte(g), B: clampByte(b)}
}

// ParseColor parses a hex colour.
// Supports formats: "#RRGGBB", "RRGGBB", "#RGB", "RGB" (case-insensitive).
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	var v [6]uint8
	switch len(hex) {
	case 3:
		for i := 0; i < 3; i++ {
			d, ok := hexDigit(hex[i])
			if !ok {
				return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}
			v[i*2], v[i*2+1] = d, d
		}
	case 6:
		for i := 0; i < 6; i++ {
			d, ok := hexDigit(hex[i])
			if !ok {
				return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}
			v[i] = d
		}
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	return Color{
		R: v[0]<<4 | v[1],
		G: v[2]<<4 | v[3],
		B: v[4]<<4 | v[5],
	}, nil
}

// MustParseColor is like ParseColor but panics on malformed input.
// Intended for package-level palettes and tests.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the canonical "#rrggbb" form.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Preview returns the display form shown next to a colour swatch ("#RRGGBB").
func (c Color) Preview() string {
	return strings.ToUpper(c.String())
}

// Pixel returns the fully opaque raster value of c.
func (c Color) Pixel() Pixel {
	return Pixel{R: c.R, G: c.G, B: c.B, A: 255}
}

// NRGBA converts c to the standard library colour type.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// IsTransparent reports whether the cell is unset.
func (p Pixel) IsTransparent() bool {
	return p.A == 0
}

// Color drops the alpha channel.
func (p Pixel) Color() Color {
	return Color{R: p.R, G: p.G, B: p.B}
}

// NRGBA converts p to the standard library colour type.
func (p Pixel) NRGBA() color.NRGBA {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}
}

// pixelFromColor converts any standard colour to a stored Pixel.
func pixelFromColor(c color.Color) Pixel {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pixel{R: n.R, G: n.G, B: n.B, A: n.A}
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// clampByte restricts a value to [0, 255].
func clampByte(x int) uint8 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return uint8(x)
}
