package texel

import (
	"math"
	"strconv"
)

// Zoom limits and steps.
const (
	MinZoom = 0.1
	MaxZoom = 5.0

	// ButtonZoomStep is applied by ZoomIn and ZoomOut.
	ButtonZoomStep = 0.25

	// WheelZoomStep is applied per Wheel notch.
	WheelZoomStep = 0.1

	// DefaultBaseDisplaySize is the on-screen edge length at 100% zoom,
	// independent of the grid size.
	DefaultBaseDisplaySize = 512
)

// Viewport maps a zoom level to an on-screen size. It is purely a
// presentation transform and never touches raster data.
type Viewport struct {
	base int
	zoom float64
}

// NewViewport creates a viewport at 100% zoom. A base below 1 selects
// DefaultBaseDisplaySize.
func NewViewport(base int) *Viewport {
	if base < 1 {
		base = DefaultBaseDisplaySize
	}
	return &Viewport{base: base, zoom: 1}
}

// Zoom returns the current zoom level.
func (v *Viewport) Zoom() float64 {
	return v.zoom
}

// Base returns the display size at 100% zoom.
func (v *Viewport) Base() int {
	return v.base
}

// SetZoom clamps level to [MinZoom, MaxZoom], applies it and returns the
// applied value.
func (v *Viewport) SetZoom(level float64) float64 {
	if math.IsNaN(level) {
		return v.zoom
	}
	v.zoom = clamp(level, MinZoom, MaxZoom)
	return v.zoom
}

// ZoomIn adds ButtonZoomStep.
func (v *Viewport) ZoomIn() float64 {
	return v.SetZoom(v.zoom + ButtonZoomStep)
}

// ZoomOut subtracts ButtonZoomStep.
func (v *Viewport) ZoomOut() float64 {
	return v.SetZoom(v.zoom - ButtonZoomStep)
}

// Wheel applies one wheel notch. A negative delta (wheel up) zooms in,
// a positive delta zooms out, zero does nothing.
func (v *Viewport) Wheel(deltaY float64) float64 {
	switch {
	case deltaY < 0:
		return v.SetZoom(v.zoom + WheelZoomStep)
	case deltaY > 0:
		return v.SetZoom(v.zoom - WheelZoomStep)
	}
	return v.zoom
}

// DisplaySize returns the edge length, in display pixels, of both the raster
// canvas and the checkerboard underlay.
func (v *Viewport) DisplaySize() int {
	return int(math.Round(float64(v.base) * v.zoom))
}

// Label returns the zoom as a whole percentage, e.g. "150%".
func (v *Viewport) Label() string {
	return strconv.Itoa(int(math.Round(v.zoom*100))) + "%"
}

// CellAt maps a point in display coordinates (relative to the canvas
// top-left corner) to a grid cell. ok is false when the point lies outside
// the canvas.
func (v *Viewport) CellAt(px, py float64, gridSize int) (x, y int, ok bool) {
	display := float64(v.DisplaySize())
	if display <= 0 || gridSize <= 0 {
		return 0, 0, false
	}
	x = int(math.Floor(px * float64(gridSize) / display))
	y = int(math.Floor(py * float64(gridSize) / display))
	if x < 0 || y < 0 || x >= gridSize || y >= gridSize {
		return x, y, false
	}
	return x, y, true
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
