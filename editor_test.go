package texel

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestEditor(t *testing.T, opts ...Option) *Editor {
	t.Helper()
	ed, err := NewEditor(append([]Option{WithCodec(RawCodec{})}, opts...)...)
	if err != nil {
		t.Fatalf("NewEditor() error = %v", err)
	}
	return ed
}

func stroke(ed *Editor, cells ...cell) {
	ed.GestureStart(cells[0].x, cells[0].y)
	for _, c := range cells[1:] {
		ed.GestureMove(c.x, c.y)
	}
	ed.GestureEnd()
}

func pixelAt(t *testing.T, ed *Editor, x, y int) Pixel {
	t.Helper()
	p, ok := ed.Raster().Pixel(x, y)
	if !ok {
		t.Fatalf("Pixel(%d, %d) out of bounds", x, y)
	}
	return p
}

func TestNewEditor_Defaults(t *testing.T) {
	ed, err := NewEditor()
	if err != nil {
		t.Fatalf("NewEditor() error = %v", err)
	}
	if ed.Size() != DefaultSize {
		t.Errorf("Size() = %d, want %d", ed.Size(), DefaultSize)
	}
	if ed.Color() != DefaultColor {
		t.Errorf("Color() = %v, want %v", ed.Color(), DefaultColor)
	}
	if ed.Tool() != Brush {
		t.Errorf("Tool() = %v, want brush", ed.Tool())
	}
	if ed.HistoryLen() != 1 || ed.HistoryCursor() != 0 {
		t.Errorf("history len/cursor = %d/%d, want 1/0", ed.HistoryLen(), ed.HistoryCursor())
	}
	if ed.CanUndo() {
		t.Error("CanUndo() = true on a fresh editor")
	}
	if ed.Viewport().Zoom() != 1 || ed.Viewport().DisplaySize() != DefaultBaseDisplaySize {
		t.Errorf("viewport = %v / %d, want 1 / %d", ed.Viewport().Zoom(), ed.Viewport().DisplaySize(), DefaultBaseDisplaySize)
	}
	if ed.ID() == "" {
		t.Error("ID() is empty")
	}
}

func TestNewEditor_Rejects(t *testing.T) {
	if _, err := NewEditor(WithSize(12)); !errors.Is(err, ErrUnsupportedSize) {
		t.Errorf("NewEditor(WithSize(12)) error = %v, want ErrUnsupportedSize", err)
	}
	if _, err := NewEditor(WithTool(Tool(9))); !errors.Is(err, ErrUnknownTool) {
		t.Errorf("NewEditor(WithTool(9)) error = %v, want ErrUnknownTool", err)
	}
}

func TestEditor_BrushStrokeIsOneEntry(t *testing.T) {
	ed := newTestEditor(t, WithColor(red))

	stroke(ed, cell{2, 2}, cell{2, 3})

	if ed.HistoryLen() != 2 {
		t.Fatalf("HistoryLen() = %d, want 2", ed.HistoryLen())
	}
	for _, c := range []cell{{2, 2}, {2, 3}} {
		if got := pixelAt(t, ed, c.x, c.y); got != red.Pixel() {
			t.Errorf("Pixel(%d, %d) = %v, want %v", c.x, c.y, got, red.Pixel())
		}
	}
	if ed.Drawing() {
		t.Error("Drawing() = true after GestureEnd")
	}
}

func TestEditor_EraserStroke(t *testing.T) {
	ed := newTestEditor(t, WithColor(red))
	stroke(ed, cell{0, 0}, cell{1, 0})

	ed.SelectTool(Eraser)
	stroke(ed, cell{0, 0})

	if got := pixelAt(t, ed, 0, 0); !got.IsTransparent() {
		t.Errorf("erased Pixel(0, 0) = %v, want transparent", got)
	}
	if got := pixelAt(t, ed, 1, 0); got != red.Pixel() {
		t.Errorf("Pixel(1, 0) = %v, want %v", got, red.Pixel())
	}
	if ed.HistoryLen() != 3 {
		t.Errorf("HistoryLen() = %d, want 3", ed.HistoryLen())
	}
}

func TestEditor_OutOfBoundsStrokeStillSnapshots(t *testing.T) {
	ed := newTestEditor(t)
	stroke(ed, cell{-1, 0}, cell{16, 16})

	if ed.HistoryLen() != 2 {
		t.Errorf("HistoryLen() = %d, want 2", ed.HistoryLen())
	}
	g := ed.Raster().(*Grid)
	if !g.Equal(newGrid(16)) {
		t.Error("out-of-bounds stroke changed the raster")
	}
}

func TestEditor_BucketFillsBlankGrid(t *testing.T) {
	ed := newTestEditor(t, WithColor(MustParseColor("#FF0000")))
	ed.SelectTool(Bucket)

	ed.GestureStart(0, 0)
	ed.GestureEnd()

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if got := pixelAt(t, ed, x, y); got != red.Pixel() {
				t.Fatalf("Pixel(%d, %d) = %v, want %v", x, y, got, red.Pixel())
			}
		}
	}
	if ed.HistoryLen() != 2 {
		t.Fatalf("HistoryLen() after fill = %d, want 2", ed.HistoryLen())
	}

	// Filling with the same colour changes nothing and records nothing.
	ed.GestureStart(9, 4)
	ed.GestureEnd()
	if ed.HistoryLen() != 2 {
		t.Errorf("HistoryLen() after repeated fill = %d, want 2", ed.HistoryLen())
	}

	ed.GestureStart(-5, 3)
	ed.GestureEnd()
	if ed.HistoryLen() != 2 {
		t.Errorf("HistoryLen() after out-of-bounds fill = %d, want 2", ed.HistoryLen())
	}
}

func TestEditor_BucketIgnoresMoves(t *testing.T) {
	ed := newTestEditor(t, WithColor(red))
	stroke(ed, cell{0, 0}, cell{1, 0}, cell{2, 0}, cell{2, 1}, cell{2, 2}, cell{1, 2}, cell{0, 2}, cell{0, 1})

	ed.SetColor(blue)
	ed.SelectTool(Bucket)
	ed.GestureStart(1, 1)
	ed.GestureMove(5, 5)
	ed.GestureEnd()

	if got := pixelAt(t, ed, 1, 1); got != blue.Pixel() {
		t.Errorf("enclosed Pixel(1, 1) = %v, want %v", got, blue.Pixel())
	}
	if got := pixelAt(t, ed, 5, 5); !got.IsTransparent() {
		t.Errorf("Pixel(5, 5) = %v, want transparent", got)
	}
	if ed.HistoryLen() != 3 {
		t.Errorf("HistoryLen() = %d, want 3", ed.HistoryLen())
	}
}

func TestEditor_EyedropperOnTransparent(t *testing.T) {
	ed := newTestEditor(t)
	ed.SelectTool(Eyedropper)

	ed.GestureStart(4, 4)
	ed.GestureMove(5, 5)
	ed.GestureEnd()

	if ed.Color() != DefaultColor {
		t.Errorf("Color() = %v, want %v (unchanged)", ed.Color(), DefaultColor)
	}
	if ed.Tool() != Brush {
		t.Errorf("Tool() = %v, want brush", ed.Tool())
	}
	if ed.HistoryLen() != 1 {
		t.Errorf("HistoryLen() = %d, want 1", ed.HistoryLen())
	}
	if got := pixelAt(t, ed, 5, 5); !got.IsTransparent() {
		t.Errorf("move after eyedropper painted Pixel(5, 5) = %v", got)
	}
}

func TestEditor_EyedropperPicksColor(t *testing.T) {
	ed := newTestEditor(t, WithColor(red))
	stroke(ed, cell{2, 2})

	ed.SetColor(blue)
	ed.SelectTool(Eyedropper)
	ed.GestureStart(2, 2)
	ed.GestureEnd()

	if ed.Color() != red {
		t.Errorf("Color() = %v, want %v", ed.Color(), red)
	}
	if ed.Tool() != Brush {
		t.Errorf("Tool() = %v, want brush", ed.Tool())
	}
	if ed.HistoryLen() != 3 {
		t.Errorf("HistoryLen() = %d, want 3", ed.HistoryLen())
	}
}

func TestEditor_ToolChangeMidGesture(t *testing.T) {
	ed := newTestEditor(t, WithColor(red))

	ed.GestureStart(0, 0)
	ed.SelectTool(Bucket)
	ed.GestureMove(1, 0)
	ed.GestureEnd()

	if got := pixelAt(t, ed, 1, 0); got != red.Pixel() {
		t.Errorf("Pixel(1, 0) = %v, want %v", got, red.Pixel())
	}
	if ed.HistoryLen() != 2 {
		t.Errorf("HistoryLen() = %d, want 2", ed.HistoryLen())
	}
}

func TestEditor_LeaveEndsGesture(t *testing.T) {
	ed := newTestEditor(t, WithColor(red))

	ed.GestureStart(0, 0)
	ed.GestureLeave()
	if ed.Drawing() {
		t.Fatal("Drawing() = true after GestureLeave")
	}
	if ed.HistoryLen() != 2 {
		t.Errorf("HistoryLen() = %d, want 2", ed.HistoryLen())
	}

	ed.GestureMove(5, 5)
	if got := pixelAt(t, ed, 5, 5); !got.IsTransparent() {
		t.Errorf("move after leave painted Pixel(5, 5) = %v", got)
	}

	// A second leave or a stray end does nothing.
	ed.GestureLeave()
	ed.GestureEnd()
	if ed.HistoryLen() != 2 {
		t.Errorf("HistoryLen() after stray end = %d, want 2", ed.HistoryLen())
	}
}

func TestEditor_StartWithoutEndClosesStroke(t *testing.T) {
	ed := newTestEditor(t)
	ed.GestureStart(0, 0)
	ed.GestureStart(1, 1)
	ed.GestureEnd()
	if ed.HistoryLen() != 3 {
		t.Errorf("HistoryLen() = %d, want 3", ed.HistoryLen())
	}
}

func TestEditor_UndoRestoresEarlierRaster(t *testing.T) {
	ed := newTestEditor(t, WithColor(red))
	blank := ed.Raster().(*Grid).Clone()

	stroke(ed, cell{0, 0})
	afterFirst := ed.Raster().(*Grid).Clone()
	ed.SetColor(blue)
	stroke(ed, cell{1, 0})

	if !ed.Undo() {
		t.Fatal("first Undo() = false")
	}
	if diff := cmp.Diff(afterFirst.Data(), ed.Raster().(*Grid).Data()); diff != "" {
		t.Errorf("raster after one undo mismatch (-want +got):\n%s", diff)
	}
	if !ed.Undo() {
		t.Fatal("second Undo() = false")
	}
	if !ed.Raster().(*Grid).Equal(blank) {
		t.Error("raster after two undos is not blank")
	}

	// Beyond the first entry undo is a no-op.
	if ed.Undo() {
		t.Error("Undo() at oldest entry = true")
	}
	if ed.HistoryCursor() != 0 {
		t.Errorf("HistoryCursor() = %d, want 0", ed.HistoryCursor())
	}
}

func TestEditor_PushAfterUndoTruncates(t *testing.T) {
	ed := newTestEditor(t)
	for i := 0; i < 3; i++ {
		stroke(ed, cell{i, 0})
	}
	ed.Undo()
	ed.Undo()
	cursor := ed.HistoryCursor()

	stroke(ed, cell{5, 5})

	if ed.HistoryLen() != cursor+2 {
		t.Errorf("HistoryLen() = %d, want %d", ed.HistoryLen(), cursor+2)
	}
	if ed.HistoryCursor() != ed.HistoryLen()-1 {
		t.Errorf("HistoryCursor() = %d, want %d", ed.HistoryCursor(), ed.HistoryLen()-1)
	}
	if got := pixelAt(t, ed, 1, 0); !got.IsTransparent() {
		t.Errorf("discarded stroke at (1, 0) = %v, want transparent", got)
	}
}

func TestEditor_HistoryCapacity(t *testing.T) {
	ed := newTestEditor(t)
	for i := 0; i < 20; i++ {
		stroke(ed, cell{i % 16, i / 16})
	}
	if ed.HistoryLen() != DefaultHistoryCapacity {
		t.Fatalf("HistoryLen() = %d, want %d", ed.HistoryLen(), DefaultHistoryCapacity)
	}

	undos := 0
	for ed.Undo() {
		undos++
	}
	if undos != DefaultHistoryCapacity-1 {
		t.Errorf("undo steps = %d, want %d", undos, DefaultHistoryCapacity-1)
	}
	// The oldest retained entry is the raster after the sixth stroke.
	if got := pixelAt(t, ed, 5, 0); got.IsTransparent() {
		t.Error("Pixel(5, 0) transparent at oldest entry, want painted")
	}
	if got := pixelAt(t, ed, 6, 0); !got.IsTransparent() {
		t.Errorf("Pixel(6, 0) = %v at oldest entry, want transparent", got)
	}
}

func TestEditor_WithHistoryCapacity(t *testing.T) {
	ed := newTestEditor(t, WithHistoryCapacity(3))
	for i := 0; i < 5; i++ {
		stroke(ed, cell{i, 0})
	}
	if ed.HistoryLen() != 3 {
		t.Errorf("HistoryLen() = %d, want 3", ed.HistoryLen())
	}
}

func TestEditor_DefaultCodecUndo(t *testing.T) {
	ed, err := NewEditor(WithColor(red))
	if err != nil {
		t.Fatalf("NewEditor() error = %v", err)
	}
	stroke(ed, cell{3, 3})
	if !ed.Undo() {
		t.Fatal("Undo() = false")
	}
	if got := pixelAt(t, ed, 3, 3); !got.IsTransparent() {
		t.Errorf("Pixel(3, 3) after undo = %v, want transparent", got)
	}
}

func TestEditor_Zoom(t *testing.T) {
	var zooms int
	ed := newTestEditor(t, WithObserver(func(e Event) {
		if e.Kind == EventZoom {
			zooms++
		}
	}))

	if got := ed.SetZoom(6.0); got != 5.0 {
		t.Errorf("SetZoom(6.0) = %v, want 5.0", got)
	}
	if got := ed.SetZoom(0.05); got != 0.1 {
		t.Errorf("SetZoom(0.05) = %v, want 0.1", got)
	}
	if got := ed.ZoomOut(); got != 0.1 {
		t.Errorf("ZoomOut() at minimum = %v, want 0.1", got)
	}
	if got := ed.ZoomIn(); got != 0.35 {
		t.Errorf("ZoomIn() = %v, want 0.35", got)
	}
	ed.Wheel(-1)
	if zooms != 4 {
		t.Errorf("zoom events = %d, want 4", zooms)
	}
}

func TestEditor_Resize(t *testing.T) {
	var resized int
	ed := newTestEditor(t, WithObserver(func(e Event) {
		if e.Kind == EventResize {
			resized++
		}
	}))
	stroke(ed, cell{0, 0})
	stroke(ed, cell{1, 0})

	if err := ed.Resize(32); err != nil {
		t.Fatalf("Resize(32) error = %v", err)
	}
	if ed.Size() != 32 || ed.Raster().Size() != 32 {
		t.Errorf("Size() = %d, want 32", ed.Size())
	}
	if !ed.Raster().(*Grid).Equal(newGrid(32)) {
		t.Error("resized raster is not blank")
	}
	if ed.HistoryLen() != 1 || ed.CanUndo() {
		t.Errorf("history after resize len=%d canUndo=%v, want 1/false", ed.HistoryLen(), ed.CanUndo())
	}
	if resized != 1 {
		t.Errorf("resize events = %d, want 1", resized)
	}
	if got := ed.ExportFilename(PNG); got != "texture_32x32.png" {
		t.Errorf("ExportFilename() = %q", got)
	}

	if err := ed.Resize(12); !errors.Is(err, ErrUnsupportedSize) {
		t.Errorf("Resize(12) error = %v, want ErrUnsupportedSize", err)
	}
	if ed.Size() != 32 {
		t.Errorf("Size() after rejected resize = %d, want 32", ed.Size())
	}
}

func TestEditor_Clear(t *testing.T) {
	ed := newTestEditor(t, WithColor(red))
	stroke(ed, cell{0, 0}, cell{1, 1})

	ed.Clear()
	if !ed.Raster().(*Grid).Equal(newGrid(16)) {
		t.Error("raster not blank after Clear")
	}
	if ed.HistoryLen() != 3 {
		t.Errorf("HistoryLen() = %d, want 3", ed.HistoryLen())
	}

	ed.Undo()
	if got := pixelAt(t, ed, 1, 1); got != red.Pixel() {
		t.Errorf("Pixel(1, 1) after undoing clear = %v, want %v", got, red.Pixel())
	}
}

func TestEditor_Load(t *testing.T) {
	ed := newTestEditor(t)

	same := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	same.SetNRGBA(4, 4, red.NRGBA())
	if err := ed.Load(same); err != nil {
		t.Fatalf("Load(16x16) error = %v", err)
	}
	if got := pixelAt(t, ed, 4, 4); got != red.Pixel() {
		t.Errorf("Pixel(4, 4) = %v, want %v", got, red.Pixel())
	}
	if ed.HistoryLen() != 2 {
		t.Errorf("HistoryLen() after same-size load = %d, want 2", ed.HistoryLen())
	}
	ed.Undo()
	if got := pixelAt(t, ed, 4, 4); !got.IsTransparent() {
		t.Errorf("Pixel(4, 4) after undoing load = %v, want transparent", got)
	}

	bigger := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	bigger.SetNRGBA(7, 7, blue.NRGBA())
	if err := ed.Load(bigger); err != nil {
		t.Fatalf("Load(8x8) error = %v", err)
	}
	if ed.Size() != 8 || ed.HistoryLen() != 1 {
		t.Errorf("after 8x8 load size=%d len=%d, want 8/1", ed.Size(), ed.HistoryLen())
	}
	if got := pixelAt(t, ed, 7, 7); got != blue.Pixel() {
		t.Errorf("Pixel(7, 7) = %v, want %v", got, blue.Pixel())
	}

	if err := ed.Load(image.NewNRGBA(image.Rect(0, 0, 10, 10))); !errors.Is(err, ErrUnsupportedSize) {
		t.Errorf("Load(10x10) error = %v, want ErrUnsupportedSize", err)
	}
}

// faultyCodec wraps RawCodec and fails on demand.
type faultyCodec struct {
	RawCodec
	failEncode bool
	failDecode bool
}

var errCodec = errors.New("codec failure")

func (c *faultyCodec) Encode(g *Grid) (Snapshot, error) {
	if c.failEncode {
		return "", errCodec
	}
	return c.RawCodec.Encode(g)
}

func (c *faultyCodec) Decode(s Snapshot) (*Grid, error) {
	if c.failDecode {
		return nil, errCodec
	}
	return c.RawCodec.Decode(s)
}

func TestEditor_EncodeFailureSkipsPush(t *testing.T) {
	codec := &faultyCodec{failEncode: true}
	ed, err := NewEditor(WithCodec(codec), WithColor(red))
	if err != nil {
		t.Fatalf("NewEditor() error = %v", err)
	}
	if ed.HistoryLen() != 0 {
		t.Errorf("HistoryLen() = %d, want 0", ed.HistoryLen())
	}

	stroke(ed, cell{0, 0})
	if ed.HistoryLen() != 0 {
		t.Errorf("HistoryLen() after failed stroke snapshot = %d, want 0", ed.HistoryLen())
	}
	if got := pixelAt(t, ed, 0, 0); got != red.Pixel() {
		t.Errorf("Pixel(0, 0) = %v, want %v", got, red.Pixel())
	}
	if ed.Undo() {
		t.Error("Undo() with empty history = true")
	}
}

func TestEditor_DecodeFailureKeepsState(t *testing.T) {
	codec := &faultyCodec{}
	ed, err := NewEditor(WithCodec(codec), WithColor(red))
	if err != nil {
		t.Fatalf("NewEditor() error = %v", err)
	}
	stroke(ed, cell{0, 0})

	codec.failDecode = true
	if ed.Undo() {
		t.Fatal("Undo() with failing decode = true")
	}
	if ed.HistoryCursor() != 1 {
		t.Errorf("HistoryCursor() = %d, want 1", ed.HistoryCursor())
	}
	if got := pixelAt(t, ed, 0, 0); got != red.Pixel() {
		t.Errorf("Pixel(0, 0) = %v, want %v", got, red.Pixel())
	}

	codec.failDecode = false
	if !ed.Undo() {
		t.Error("Undo() after decode recovers = false")
	}
}

func TestEditor_Observers(t *testing.T) {
	counts := map[EventKind]int{}
	ed := newTestEditor(t, WithObserver(func(e Event) { counts[e.Kind]++ }))
	clear(counts)

	stroke(ed, cell{0, 0}, cell{1, 0}, cell{2, 0})
	want := map[EventKind]int{EventRaster: 3, EventHistory: 1}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("stroke events mismatch (-want +got):\n%s", diff)
	}

	clear(counts)
	ed.SetColor(blue)
	ed.SetColor(blue)
	ed.SelectTool(Eraser)
	ed.SelectTool(Tool(200))
	want = map[EventKind]int{EventColor: 1, EventTool: 1}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("setter events mismatch (-want +got):\n%s", diff)
	}
}

func TestEditor_SetColorHex(t *testing.T) {
	ed := newTestEditor(t)
	if err := ed.SetColorHex("#ff0000"); err != nil {
		t.Fatalf("SetColorHex() error = %v", err)
	}
	if ed.Color() != red {
		t.Errorf("Color() = %v, want %v", ed.Color(), red)
	}
	if err := ed.SetColorHex("nope"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("SetColorHex(nope) error = %v, want ErrInvalidColor", err)
	}
	if ed.Color() != red {
		t.Errorf("Color() after bad hex = %v, want %v", ed.Color(), red)
	}
}

func TestEditor_IndependentSessions(t *testing.T) {
	a := newTestEditor(t, WithColor(red))
	b := newTestEditor(t, WithSize(8))

	stroke(a, cell{0, 0})

	if a.ID() == b.ID() {
		t.Error("editors share an ID")
	}
	if got := pixelAt(t, b, 0, 0); !got.IsTransparent() {
		t.Errorf("other editor Pixel(0, 0) = %v, want transparent", got)
	}
	if b.HistoryLen() != 1 {
		t.Errorf("other editor HistoryLen() = %d, want 1", b.HistoryLen())
	}
}

func TestEditor_ExportFile(t *testing.T) {
	ed := newTestEditor(t, WithColor(red))
	stroke(ed, cell{2, 3})

	dir := t.TempDir()
	path, err := ed.ExportFile(dir, PNG)
	if err != nil {
		t.Fatalf("ExportFile() error = %v", err)
	}
	if filepath.Base(path) != "texture_16x16.png" {
		t.Errorf("ExportFile() path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	g, err := GridFromImage(img)
	if err != nil {
		t.Fatalf("GridFromImage() error = %v", err)
	}
	if !g.Equal(ed.Raster().(*Grid)) {
		t.Error("exported image differs from the raster")
	}

	if _, err := ed.ExportFile(filepath.Join(dir, "missing"), PNG); err == nil {
		t.Error("ExportFile() into a missing directory succeeded")
	}
}
