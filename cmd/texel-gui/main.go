// Command texel-gui is a window front-end for the texel editor.
//
// Left panel: tools, palette, grid sizes, undo and clear. The canvas is drawn
// over a checkerboard and zooms with the mouse wheel or the +/- buttons.
// Shortcuts: B E F I select tools, Ctrl+Z undoes, S exports a PNG into the
// working directory.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mcmodkit/texel"
	"github.com/mcmodkit/texel/internal/render"
)

const (
	screenWidth  = 1100
	screenHeight = 800
	fontSize     = 10
	leftPanel    = 110
	topBar       = 40
	canvasMargin = 20
)

var palette = []texel.Color{
	texel.DefaultColor,
	texel.MustParseColor("#000000"),
	texel.MustParseColor("#ffffff"),
	texel.MustParseColor("#7f7f7f"),
	texel.MustParseColor("#e74c3c"),
	texel.MustParseColor("#f39c12"),
	texel.MustParseColor("#f1c40f"),
	texel.MustParseColor("#27ae60"),
	texel.MustParseColor("#3498db"),
	texel.MustParseColor("#8e44ad"),
	texel.MustParseColor("#8b5a2b"),
	texel.MustParseColor("#5d3a1a"),
}

type button struct {
	rect   rl.Rectangle
	text   string
	action func()
	active func() bool
}

type app struct {
	ed      *texel.Editor
	texture rl.Texture2D
	texSize int
	dirty   bool
	status  string
	buttons []button
}

func newApp(ed *texel.Editor) *app {
	a := &app{ed: ed, dirty: true}
	a.layout()
	return a
}

func (a *app) layout() {
	y := float32(topBar + 10)
	add := func(text string, action func(), active func() bool) {
		a.buttons = append(a.buttons, button{
			rect:   rl.Rectangle{X: 10, Y: y, Width: leftPanel - 20, Height: 22},
			text:   text,
			action: action,
			active: active,
		})
		y += 26
	}

	for _, t := range texel.Tools {
		add(t.Label(), func() { a.ed.SelectTool(t) }, func() bool { return a.ed.Tool() == t })
	}
	y += 10
	for _, n := range texel.SupportedSizes {
		add(fmt.Sprintf("%dX%d", n, n), func() {
			if n != a.ed.Size() {
				_ = a.ed.Resize(n)
			}
		}, func() bool { return a.ed.Size() == n })
	}
	y += 10
	add("UNDO", func() { a.ed.Undo() }, nil)
	add("CLEAR", a.ed.Clear, nil)
	add("ZOOM +", func() { a.ed.ZoomIn() }, nil)
	add("ZOOM -", func() { a.ed.ZoomOut() }, nil)
	add("EXPORT", a.export, nil)
}

func (a *app) paletteRect(i int) rl.Rectangle {
	return rl.Rectangle{
		X:      float32(10 + (i%3)*30),
		Y:      float32(screenHeight - 170 + (i/3)*30),
		Width:  24,
		Height: 24,
	}
}

func (a *app) canvasOrigin() (x, y float32) {
	return leftPanel + canvasMargin, topBar + canvasMargin
}

func (a *app) export() {
	path, err := a.ed.ExportFile(".", texel.PNG)
	if err != nil {
		a.status = err.Error()
		return
	}
	a.status = "SAVED " + path
}

// update handles input for one frame.
func (a *app) update() {
	mouse := rl.GetMousePosition()

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		for _, b := range a.buttons {
			if rl.CheckCollisionPointRec(mouse, b.rect) {
				b.action()
				return
			}
		}
		for i, c := range palette {
			if rl.CheckCollisionPointRec(mouse, a.paletteRect(i)) {
				a.ed.SetColor(c)
				return
			}
		}
	}

	ox, oy := a.canvasOrigin()
	x, y, inside := a.ed.Viewport().CellAt(float64(mouse.X-ox), float64(mouse.Y-oy), a.ed.Size())

	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton) && inside:
		a.ed.GestureStart(x, y)
	case rl.IsMouseButtonReleased(rl.MouseLeftButton):
		a.ed.GestureEnd()
	case a.ed.Drawing() && !inside:
		a.ed.GestureLeave()
	case a.ed.Drawing() && rl.IsMouseButtonDown(rl.MouseLeftButton):
		a.ed.GestureMove(x, y)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.ed.Wheel(float64(-wheel))
	}

	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
	switch {
	case ctrl && rl.IsKeyPressed(rl.KeyZ):
		a.ed.Undo()
	case rl.IsKeyPressed(rl.KeyB):
		a.ed.SelectTool(texel.Brush)
	case rl.IsKeyPressed(rl.KeyE):
		a.ed.SelectTool(texel.Eraser)
	case rl.IsKeyPressed(rl.KeyF):
		a.ed.SelectTool(texel.Bucket)
	case rl.IsKeyPressed(rl.KeyI):
		a.ed.SelectTool(texel.Eyedropper)
	case rl.IsKeyPressed(rl.KeyS):
		a.export()
	}
}

// syncTexture uploads the composed raster when it changed.
func (a *app) syncTexture() {
	if !a.dirty {
		return
	}
	a.dirty = false

	flat := render.Flatten(a.ed.Raster())
	n := a.ed.Size()
	if a.texSize != n {
		if a.texSize != 0 {
			rl.UnloadTexture(a.texture)
		}
		img := rl.NewImageFromImage(flat)
		a.texture = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		rl.SetTextureFilter(a.texture, rl.FilterPoint)
		a.texSize = n
		return
	}

	pixels := make([]color.RGBA, 0, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			c := flat.NRGBAAt(x, y) // opaque, so identical in premultiplied form
			pixels = append(pixels, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
	rl.UpdateTexture(a.texture, pixels)
}

func (a *app) draw() {
	a.syncTexture()
	mouse := rl.GetMousePosition()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 30, G: 30, B: 30, A: 255})

	// Left panel
	rl.DrawRectangle(0, 0, leftPanel, screenHeight, rl.Color{R: 50, G: 50, B: 50, A: 255})
	for _, b := range a.buttons {
		bg := rl.Color{R: 70, G: 70, B: 70, A: 255}
		switch {
		case b.active != nil && b.active():
			bg = rl.Color{R: 100, G: 100, B: 150, A: 255}
		case rl.CheckCollisionPointRec(mouse, b.rect):
			bg = rl.Color{R: 80, G: 80, B: 80, A: 255}
		}
		rl.DrawRectangleRec(b.rect, bg)
		rl.DrawRectangleLinesEx(b.rect, 1, rl.Color{R: 90, G: 90, B: 90, A: 255})
		w := rl.MeasureText(b.text, fontSize)
		rl.DrawText(b.text, int32(b.rect.X+b.rect.Width/2)-w/2, int32(b.rect.Y+6), fontSize, rl.White)
	}

	rl.DrawText("COLORS", 10, screenHeight-190, fontSize, rl.LightGray)
	for i, c := range palette {
		r := a.paletteRect(i)
		rl.DrawRectangleRec(r, rlColor(c))
		if c == a.ed.Color() {
			rl.DrawRectangleLinesEx(r, 2, rl.White)
		} else {
			rl.DrawRectangleLinesEx(r, 1, rl.Color{R: 70, G: 70, B: 70, A: 255})
		}
	}
	rl.DrawRectangle(10, screenHeight-50, 40, 30, rlColor(a.ed.Color()))
	rl.DrawRectangleLines(10, screenHeight-50, 40, 30, rl.White)
	rl.DrawText(a.ed.Color().Preview(), 55, screenHeight-40, fontSize, rl.White)

	// Top bar
	rl.DrawRectangle(leftPanel, 0, screenWidth-leftPanel, topBar, rl.Color{R: 60, G: 60, B: 60, A: 255})
	info := fmt.Sprintf("ZOOM: %s | SIZE: %dX%d | TOOL: %s | HISTORY: %d/%d",
		a.ed.Viewport().Label(), a.ed.Size(), a.ed.Size(), a.ed.Tool().Label(),
		a.ed.HistoryCursor()+1, a.ed.HistoryLen())
	rl.DrawText(info, leftPanel+10, 15, fontSize, rl.White)
	if a.status != "" {
		rl.DrawText(a.status, screenWidth-rl.MeasureText(a.status, fontSize)-10, 15, fontSize, rl.Yellow)
	}

	// Canvas
	ox, oy := a.canvasOrigin()
	display := float32(a.ed.Viewport().DisplaySize())
	rl.BeginScissorMode(leftPanel, topBar, screenWidth-leftPanel, screenHeight-topBar)
	src := rl.Rectangle{Width: float32(a.texSize), Height: float32(a.texSize)}
	dst := rl.Rectangle{X: ox, Y: oy, Width: display, Height: display}
	rl.DrawTexturePro(a.texture, src, dst, rl.Vector2{}, 0, rl.White)
	rl.DrawRectangleLinesEx(dst, 2, rl.Color{R: 100, G: 100, B: 100, A: 255})

	if x, y, ok := a.ed.Viewport().CellAt(float64(mouse.X-ox), float64(mouse.Y-oy), a.ed.Size()); ok {
		cell := display / float32(a.ed.Size())
		rl.DrawRectangleLines(int32(ox+float32(x)*cell), int32(oy+float32(y)*cell), int32(cell), int32(cell), rl.White)
	}
	rl.EndScissorMode()

	rl.EndDrawing()
}

func rlColor(c texel.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
}

func main() {
	var (
		size    = flag.Int("size", texel.DefaultSize, "grid size: 8, 16, 32 or 64")
		load    = flag.String("load", "", "start from an existing texture")
		verbose = flag.Bool("verbose", false, "log editor activity to stderr")
	)
	flag.Parse()

	if *verbose {
		texel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var a *app
	ed, err := texel.NewEditor(texel.WithSize(*size), texel.WithObserver(func(e texel.Event) {
		if a != nil && (e.Kind == texel.EventRaster || e.Kind == texel.EventResize) {
			a.dirty = true
		}
	}))
	if err != nil {
		fmt.Fprintln(os.Stderr, "texel-gui:", err)
		os.Exit(1)
	}
	if *load != "" {
		g, err := texel.LoadFile(*load)
		if err == nil {
			err = ed.Load(g)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "texel-gui:", err)
			os.Exit(1)
		}
	}

	rl.InitWindow(screenWidth, screenHeight, "texel")
	rl.SetTargetFPS(60)

	a = newApp(ed)
	for !rl.WindowShouldClose() {
		a.update()
		a.draw()
	}

	if a.texSize != 0 {
		rl.UnloadTexture(a.texture)
	}
	rl.CloseWindow()
}
