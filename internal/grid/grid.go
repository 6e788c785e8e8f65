// Package grid holds the dense row-major 2D container shared by the
// segmentation stages. Rows is the outer dimension (W in the solver
// notation) and Cols the inner one (H).
package grid

import "fmt"

// Grid is a single-owner row-major buffer of float64 values.
type Grid struct {
	Rows int
	Cols int
	Data []float64
}

// New allocates a zeroed grid. A zero dimension yields an empty grid, which
// is how the split fields of a one-pixel-wide image are represented.
func New(rows, cols int) *Grid {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("grid: negative dimensions %dx%d", rows, cols))
	}
	return &Grid{
		Rows: rows,
		Cols: cols,
		Data: make([]float64, rows*cols),
	}
}

// FromRows copies a slice of equally sized rows into a new grid.
func FromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 {
		return New(0, 0), nil
	}
	cols := len(rows[0])
	g := New(len(rows), cols)
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d columns, expected %d", r, len(row), cols)
		}
		copy(g.Row(r), row)
	}
	return g, nil
}

// Filled returns a grid with every element set to v.
func Filled(rows, cols int, v float64) *Grid {
	g := New(rows, cols)
	g.Fill(v)
	return g
}

func (g *Grid) At(r, c int) float64 {
	g.check(r, c)
	return g.Data[r*g.Cols+c]
}

func (g *Grid) Set(r, c int, v float64) {
	g.check(r, c)
	g.Data[r*g.Cols+c] = v
}

// Row returns row r as a slice aliasing the grid's buffer.
func (g *Grid) Row(r int) []float64 {
	return g.Data[r*g.Cols : (r+1)*g.Cols]
}

func (g *Grid) Len() int { return len(g.Data) }

func (g *Grid) Empty() bool { return len(g.Data) == 0 }

func (g *Grid) SameShape(o *Grid) bool {
	return o != nil && g.Rows == o.Rows && g.Cols == o.Cols
}

func (g *Grid) Fill(v float64) {
	for i := range g.Data {
		g.Data[i] = v
	}
}

func (g *Grid) Clone() *Grid {
	c := New(g.Rows, g.Cols)
	copy(c.Data, g.Data)
	return c
}

// CopyFrom overwrites g with src. Both grids must have the same shape.
func (g *Grid) CopyFrom(src *Grid) {
	if !g.SameShape(src) {
		panic(fmt.Sprintf("grid: copy from %dx%d into %dx%d", src.Rows, src.Cols, g.Rows, g.Cols))
	}
	copy(g.Data, src.Data)
}

// ToRows returns a copy of the grid as nested slices.
func (g *Grid) ToRows() [][]float64 {
	out := make([][]float64, g.Rows)
	for r := range out {
		out[r] = append([]float64(nil), g.Row(r)...)
	}
	return out
}

// MinMax returns the smallest and largest element. Both are zero for an
// empty grid.
func (g *Grid) MinMax() (lo, hi float64) {
	if len(g.Data) == 0 {
		return 0, 0
	}
	lo, hi = g.Data[0], g.Data[0]
	for _, v := range g.Data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d)", g.Rows, g.Cols)
}
