package splitbregman

import (
	"bregman-segmenter/internal/grid"
)

// state holds every working array of one run. f and edge are borrowed and
// never written.
type state struct {
	f    *grid.Grid
	edge *grid.Grid

	u    *grid.Grid
	prev *grid.Grid
	// x and bx live on vertical neighbour pairs: (W-1)×H.
	x  *grid.Grid
	bx *grid.Grid
	// y and by live on horizontal neighbour pairs: W×(H-1).
	y  *grid.Grid
	by *grid.Grid

	c1, c2 float64
	// emptyRegion latches once any region update saw an empty partition.
	emptyRegion bool

	// mask is scratch space for the region indicator used by updateRegions.
	mask []float64

	stencils stencilTable
}

func newState(f, edge *grid.Grid) *state {
	rows, cols := f.Rows, f.Cols
	return &state{
		f:        f,
		edge:     edge,
		u:        grid.New(rows, cols),
		prev:     grid.New(rows, cols),
		x:        grid.New(rows-1, cols),
		bx:       grid.New(rows-1, cols),
		y:        grid.New(rows, cols-1),
		by:       grid.New(rows, cols-1),
		mask:     make([]float64, rows*cols),
		stencils: newStencilTable(),
	}
}
