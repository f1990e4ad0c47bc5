// Package texel implements the canvas and history engine of a pixel-art
// texture editor.
//
// # Overview
//
// texel owns a small square raster (8, 16, 32 or 64 pixels per side), turns
// pointer gestures into raster edits through a tool dispatcher, keeps a
// bounded linear undo history of encoded snapshots and computes the display
// size for a zoom level. It knows nothing about windows or terminals: a
// front-end feeds it gestures in grid coordinates and reads pixels back.
//
// # Quick Start
//
//	ed, err := texel.NewEditor(texel.WithSize(16))
//	if err != nil {
//	    return err
//	}
//
//	ed.SelectTool(texel.Bucket)
//	ed.SetColor(texel.RGB(255, 0, 0))
//	ed.GestureStart(0, 0) // fills the whole blank grid
//	ed.GestureEnd()
//
//	ed.SelectTool(texel.Brush)
//	ed.GestureStart(2, 2)
//	ed.GestureMove(2, 3)
//	ed.GestureEnd() // one history entry for the whole stroke
//
//	ed.Undo()
//
//	f, _ := os.Create(ed.ExportFilename(texel.PNG))
//	defer f.Close()
//	_ = ed.Export(f, texel.PNG)
//
// # Tools
//
// Brush and Eraser are drag tools: they write on press and on every move and
// record a single snapshot when the gesture ends or the pointer leaves the
// surface. Bucket performs one 4-connected flood fill on press. Eyedropper
// picks the colour under the pointer and hands control back to the Brush.
//
// # History
//
// After every discrete edit the raster is encoded through a [SurfaceCodec]
// and pushed onto a [History] holding at most 15 snapshots. Pushing after an
// undo discards the undone entries; entries evicted by the capacity limit
// cannot be recovered.
//
// # Coordinate System
//
// Origin (0,0) is the top-left cell, X grows right, Y grows down.
// Out-of-range coordinates are ignored everywhere.
//
// # Concurrency
//
// An [Editor] is meant to be driven from a single event loop and is not safe
// for concurrent use. Independent editors may live in different goroutines.
package texel
