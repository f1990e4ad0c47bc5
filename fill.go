package texel

// cell is a grid coordinate on the flood fill stack.
type cell struct {
	x, y int
}

// FloodFill replaces the 4-connected region of cells sharing the seed's exact
// RGBA value with the opaque colour c. It returns the number of cells
// written.
//
// The fill uses an explicit stack so that the largest supported grid cannot
// exhaust the goroutine stack. Filling a region with its own colour returns
// 0 immediately; without that guard every written cell would match the
// target again and be revisited forever. An out-of-bounds seed is a no-op.
func (g *Grid) FloodFill(x, y int, c Color) int {
	target, ok := g.Pixel(x, y)
	if !ok {
		return 0
	}
	fill := c.Pixel()
	if target == fill {
		return 0
	}

	filled := 0
	stack := []cell{{x, y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		cur, ok := g.Pixel(p.x, p.y)
		if !ok || cur != target {
			continue
		}
		g.SetPixel(p.x, p.y, fill)
		filled++

		stack = append(stack,
			cell{p.x + 1, p.y},
			cell{p.x - 1, p.y},
			cell{p.x, p.y + 1},
			cell{p.x, p.y - 1},
		)
	}
	return filled
}
