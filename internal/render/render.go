// Package render composes a texture for display: the raster drawn over the
// checkerboard underlay and scaled to the viewport size with
// nearest-neighbour sampling, so every cell stays a crisp square.
package render

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/mcmodkit/texel"
	"github.com/mcmodkit/texel/internal/checker"
)

// Flatten composites r over the underlay at grid resolution. The result is
// fully opaque.
func Flatten(r texel.Raster) *image.NRGBA {
	dst := checker.New(r.Size())
	xdraw.Draw(dst, dst.Bounds(), r, image.Point{}, xdraw.Over)
	return dst
}

// Compose returns a display×display image of r over the underlay. Display
// sizes below 1 are treated as 1.
func Compose(r texel.Raster, display int) *image.NRGBA {
	if display < 1 {
		display = 1
	}
	flat := Flatten(r)
	if display == r.Size() {
		return flat
	}
	dst := image.NewNRGBA(image.Rect(0, 0, display, display))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), flat, flat.Bounds(), xdraw.Src, nil)
	return dst
}

// ComposeViewport is Compose at the viewport's current display size.
func ComposeViewport(r texel.Raster, v *texel.Viewport) *image.NRGBA {
	return Compose(r, v.DisplaySize())
}
