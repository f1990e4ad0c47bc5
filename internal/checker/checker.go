// Package checker draws the transparency underlay shown behind a texture:
// one checker square per grid cell, alternating two dark greys.
package checker

import (
	"image"
	"image/color"
)

// Underlay colours. Dark sits on cells where x+y is even.
var (
	Dark  = color.NRGBA{R: 0x2a, G: 0x2a, B: 0x2a, A: 0xff}
	Light = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
)

// At returns the underlay colour of cell (x, y).
func At(x, y int) color.NRGBA {
	if (x+y)%2 == 0 {
		return Dark
	}
	return Light
}

// New returns an opaque n×n checkerboard. n below 1 yields an empty image.
func New(n int) *image.NRGBA {
	if n < 0 {
		n = 0
	}
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			img.SetNRGBA(x, y, At(x, y))
		}
	}
	return img
}
