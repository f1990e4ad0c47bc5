// Package script drives an editor from a YAML edit script, so textures can
// be produced headlessly and regenerated whenever the script changes.
//
// A script names the initial grid, a list of steps replayed as gestures,
// and an optional export target:
//
//	size: 16
//	color: "#ff0000"
//	steps:
//	  - tool: bucket
//	    at: [0, 0]
//	  - tool: brush
//	    color: "#00ff00"
//	    stroke: [[2, 2], [2, 3], [3, 3]]
//	  - undo: 1
//	export:
//	  format: png
//	  dir: out
//
// Each step may set a tool and a colour and then perform at most one
// action: at, stroke, undo, clear, resize or zoom.
package script
