//go:build debug

package grid

import "fmt"

// BoundsChecked reports whether accessors validate their indices.
const BoundsChecked = true

func (g *Grid) check(r, c int) {
	if r < 0 || r >= g.Rows || c < 0 || c >= g.Cols {
		panic(fmt.Sprintf("grid: index (%d,%d) out of range for %dx%d", r, c, g.Rows, g.Cols))
	}
}
