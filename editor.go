package texel

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// EventKind classifies an editor state change.
type EventKind uint8

const (
	// EventRaster means pixels changed.
	EventRaster EventKind = iota
	// EventColor means the brush colour changed.
	EventColor
	// EventTool means the active tool changed.
	EventTool
	// EventZoom means the viewport zoom changed.
	EventZoom
	// EventResize means the grid was replaced by one of a new size.
	EventResize
	// EventHistory means a snapshot was pushed or the cursor moved.
	EventHistory
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventRaster:
		return "raster"
	case EventColor:
		return "color"
	case EventTool:
		return "tool"
	case EventZoom:
		return "zoom"
	case EventResize:
		return "resize"
	case EventHistory:
		return "history"
	default:
		return "unknown"
	}
}

// Event is delivered to observers after a state change.
type Event struct {
	Kind EventKind
}

// Editor is one editing session: a grid, its history, the current colour
// and tool, and a viewport. There are no package-level sessions; create as
// many editors as needed.
//
// An Editor is not safe for concurrent use. Drive it from a single event
// loop.
type Editor struct {
	id        string
	grid      *Grid
	history   *History
	codec     SurfaceCodec
	viewport  *Viewport
	color     Color
	tool      Tool
	observers []func(Event)

	// Gesture state. gestureTool is the tool that was active on press; it
	// decides how moves and the release are handled even if the active tool
	// changes mid-gesture.
	drawing     bool
	gestureTool Tool
}

// NewEditor creates an editor with a blank grid and a history holding one
// snapshot of it.
func NewEditor(opts ...Option) (*Editor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	g, err := NewGrid(o.size)
	if err != nil {
		return nil, err
	}
	if o.tool >= toolCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTool, o.tool)
	}

	history := NewHistory(o.historyCapacity)
	codec := o.codec
	if codec == nil {
		codec = NewCachedCodec(PNGCodec{}, history.Capacity()+1)
	}

	e := &Editor{
		id:        uuid.NewString(),
		grid:      g,
		history:   history,
		codec:     codec,
		viewport:  NewViewport(o.baseDisplaySize),
		color:     o.color,
		tool:      o.tool,
		observers: o.observers,
	}
	e.snapshot()

	Logger().Debug("editor created", "editor", e.id, "size", o.size, "history", history.Capacity())
	return e, nil
}

// ID returns the unique session identifier.
func (e *Editor) ID() string {
	return e.id
}

// Raster returns a read-only view of the current grid. The view is replaced
// on Resize and Load of a different size; re-fetch it after EventResize.
func (e *Editor) Raster() Raster {
	return e.grid
}

// Size returns the current grid edge length.
func (e *Editor) Size() int {
	return e.grid.size
}

// Color returns the brush colour.
func (e *Editor) Color() Color {
	return e.color
}

// SetColor changes the brush colour.
func (e *Editor) SetColor(c Color) {
	if c == e.color {
		return
	}
	e.color = c
	e.notify(EventColor)
}

// SetColorHex parses s with ParseColor and makes it the brush colour.
func (e *Editor) SetColorHex(s string) error {
	c, err := ParseColor(s)
	if err != nil {
		return err
	}
	e.SetColor(c)
	return nil
}

// Tool returns the active tool.
func (e *Editor) Tool() Tool {
	return e.tool
}

// SelectTool makes t the active tool. Unknown tools are ignored.
func (e *Editor) SelectTool(t Tool) {
	if t >= toolCount || t == e.tool {
		return
	}
	e.tool = t
	e.notify(EventTool)
}

// Drawing reports whether a gesture is in progress.
func (e *Editor) Drawing() bool {
	return e.drawing
}

// GestureStart handles a press at grid cell (x, y) with the active tool.
//
// Brush and Eraser write immediately and defer their snapshot to the end of
// the gesture. Bucket fills and snapshots at once when anything changed.
// Eyedropper picks the colour, hands over to Brush and snapshots, unless the
// cell is transparent, in which case only the tool switch happens.
func (e *Editor) GestureStart(x, y int) {
	if e.drawing {
		// A press without a release in between: close the previous stroke.
		e.GestureEnd()
	}
	e.drawing = true
	e.gestureTool = e.tool

	switch e.tool {
	case Brush, Eraser:
		e.apply(x, y)
	case Bucket:
		n := e.grid.FloodFill(x, y, e.color)
		Logger().Debug("flood fill", "editor", e.id, "x", x, "y", y, "color", e.color.String(), "cells", n)
		if n > 0 {
			e.notify(EventRaster)
			e.snapshot()
		}
	case Eyedropper:
		e.pick(x, y)
	}
}

// GestureMove continues a Brush or Eraser stroke at (x, y). Moves without an
// active drag gesture are ignored.
func (e *Editor) GestureMove(x, y int) {
	if !e.drawing || !e.gestureTool.drags() {
		return
	}
	e.apply(x, y)
}

// GestureEnd finishes the gesture. A Brush or Eraser stroke records exactly
// one snapshot, however many cells it touched.
func (e *Editor) GestureEnd() {
	if !e.drawing {
		return
	}
	e.drawing = false
	if e.gestureTool.drags() {
		e.snapshot()
	}
}

// GestureLeave is called when the pointer exits the drawing surface. It ends
// the gesture so that drawing cannot get stuck on.
func (e *Editor) GestureLeave() {
	e.GestureEnd()
}

// apply writes one cell with the gesture's drag tool.
func (e *Editor) apply(x, y int) {
	if e.gestureTool == Eraser {
		e.grid.Erase(x, y)
	} else {
		e.grid.Paint(x, y, e.color)
	}
	e.notify(EventRaster)
}

func (e *Editor) pick(x, y int) {
	p, ok := e.grid.Pixel(x, y)

	e.tool = Brush
	e.notify(EventTool)

	if !ok || p.IsTransparent() {
		Logger().Debug("eyedropper hit transparent cell", "editor", e.id, "x", x, "y", y)
		return
	}
	e.color = p.Color()
	e.notify(EventColor)
	e.snapshot()
}

// snapshot encodes the grid and pushes it onto the history. An encode
// failure is logged and the push is skipped.
func (e *Editor) snapshot() {
	s, err := e.codec.Encode(e.grid)
	if err != nil {
		Logger().Warn("snapshot encode failed", "editor", e.id, "err", err)
		return
	}
	e.history.Push(s)
	Logger().Debug("snapshot", "editor", e.id, "len", e.history.Len(), "cursor", e.history.Cursor())
	e.notify(EventHistory)
}

// Undo restores the previous snapshot. It returns false when there is
// nothing to undo or the snapshot could not be decoded.
func (e *Editor) Undo() bool {
	s, ok := e.history.Undo()
	if !ok {
		return false
	}

	g, err := e.codec.Decode(s)
	if err == nil && g.size != e.grid.size {
		err = fmt.Errorf("%w: %dx%d snapshot for a %dx%d grid", ErrBadSnapshot, g.size, g.size, e.grid.size, e.grid.size)
	}
	if err != nil {
		e.history.redo()
		Logger().Warn("undo failed", "editor", e.id, "err", err)
		return false
	}

	e.grid.copyFrom(g)
	Logger().Debug("undo", "editor", e.id, "cursor", e.history.Cursor())
	e.notify(EventRaster)
	e.notify(EventHistory)
	return true
}

// CanUndo reports whether Undo would restore an earlier snapshot.
func (e *Editor) CanUndo() bool {
	return e.history.CanUndo()
}

// HistoryLen returns the number of retained snapshots.
func (e *Editor) HistoryLen() int {
	return e.history.Len()
}

// HistoryCursor returns the history position of the current raster.
func (e *Editor) HistoryCursor() int {
	return e.history.Cursor()
}

// Clear erases every cell and records one snapshot.
func (e *Editor) Clear() {
	e.drawing = false
	e.grid.Clear()
	Logger().Info("canvas cleared", "editor", e.id)
	e.notify(EventRaster)
	e.snapshot()
}

// Resize replaces the grid by a blank one of edge n. The old content and the
// whole history are discarded; the history restarts from the blank grid.
func (e *Editor) Resize(n int) error {
	g, err := NewGrid(n)
	if err != nil {
		return err
	}
	e.replace(g)
	Logger().Info("canvas resized", "editor", e.id, "size", n)
	return nil
}

// Load replaces the raster with the content of img, which must be square
// with a supported edge length. Loading an image of the current size is an
// undoable edit; loading a different size behaves like Resize.
func (e *Editor) Load(img image.Image) error {
	g, err := GridFromImage(img)
	if err != nil {
		return err
	}
	if g.size != e.grid.size {
		e.replace(g)
	} else {
		e.drawing = false
		e.grid.copyFrom(g)
		e.notify(EventRaster)
		e.snapshot()
	}
	Logger().Info("image loaded", "editor", e.id, "size", g.size)
	return nil
}

func (e *Editor) replace(g *Grid) {
	e.drawing = false
	e.grid = g
	e.history.Reset()
	e.notify(EventResize)
	e.notify(EventRaster)
	e.snapshot()
}

// Viewport returns the editor's viewport for size and coordinate queries.
// Change the zoom through the Editor so observers are notified.
func (e *Editor) Viewport() *Viewport {
	return e.viewport
}

// SetZoom clamps and applies a zoom level and returns the applied value.
func (e *Editor) SetZoom(level float64) float64 {
	return e.zoomed(e.viewport.SetZoom, level)
}

// ZoomIn applies one button step in.
func (e *Editor) ZoomIn() float64 {
	return e.zoomed(func(float64) float64 { return e.viewport.ZoomIn() }, 0)
}

// ZoomOut applies one button step out.
func (e *Editor) ZoomOut() float64 {
	return e.zoomed(func(float64) float64 { return e.viewport.ZoomOut() }, 0)
}

// Wheel applies one wheel notch; negative deltas zoom in.
func (e *Editor) Wheel(deltaY float64) float64 {
	return e.zoomed(e.viewport.Wheel, deltaY)
}

func (e *Editor) zoomed(fn func(float64) float64, arg float64) float64 {
	before := e.viewport.Zoom()
	after := fn(arg)
	if after != before {
		e.notify(EventZoom)
	}
	return after
}

// ExportFilename returns the download name for the current grid.
func (e *Editor) ExportFilename(f Format) string {
	return ExportFilename(e.grid.size, f)
}

// Export encodes the current raster to w.
func (e *Editor) Export(w io.Writer, f Format) error {
	if err := Export(w, e.grid, f); err != nil {
		return err
	}
	Logger().Info("exported", "editor", e.id, "format", f.String(), "size", e.grid.size)
	return nil
}

// ExportFile writes the current raster into dir under ExportFilename and
// returns the file path.
func (e *Editor) ExportFile(dir string, f Format) (string, error) {
	path := filepath.Join(dir, e.ExportFilename(f))
	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("texel: create file: %w", err)
	}

	if err := e.Export(file, f); err != nil {
		_ = file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("texel: close file: %w", err)
	}
	return path, nil
}

func (e *Editor) notify(k EventKind) {
	for _, fn := range e.observers {
		fn(Event{Kind: k})
	}
}
