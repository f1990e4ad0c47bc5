package texel

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownTool is returned by ParseTool for unrecognised names.
var ErrUnknownTool = errors.New("texel: unknown tool")

// Tool identifies the active editing tool. Exactly one tool is active at a
// time.
type Tool uint8

const (
	// Brush paints the current colour and can be dragged.
	Brush Tool = iota

	// Eraser makes cells transparent and can be dragged.
	Eraser

	// Bucket flood-fills the region under the pointer.
	Bucket

	// Eyedropper picks the colour under the pointer and returns to Brush.
	Eyedropper

	toolCount
)

// Tools lists every tool in palette order.
var Tools = []Tool{Brush, Eraser, Bucket, Eyedropper}

var toolNames = [toolCount]string{"brush", "eraser", "bucket", "eyedropper"}

// String returns the lower-case tool name.
func (t Tool) String() string {
	if t < toolCount {
		return toolNames[t]
	}
	return "unknown"
}

// Label returns the upper-case name shown in tool palettes and status bars.
func (t Tool) Label() string {
	// A Caser is stateful, so each call gets its own.
	return cases.Upper(language.English).String(t.String())
}

// drags reports whether the tool keeps writing on pointer moves and records
// its snapshot at gesture end.
func (t Tool) drags() bool {
	return t == Brush || t == Eraser
}

// ParseTool parses a tool name. A few common aliases are accepted.
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "brush", "pen", "pencil":
		return Brush, nil
	case "eraser":
		return Eraser, nil
	case "bucket", "fill":
		return Bucket, nil
	case "eyedropper", "picker", "pipette":
		return Eyedropper, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTool, s)
}
