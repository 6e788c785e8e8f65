package splitbregman

import (
	"bregman-segmenter/internal/grid"

	"gonum.org/v1/gonum/mat"
)

// FromMatrix copies any gonum matrix into a grid, row r of the matrix
// becoming row r of the grid.
func FromMatrix(m mat.Matrix) *grid.Grid {
	rows, cols := m.Dims()
	g := grid.New(rows, cols)
	if d, ok := m.(mat.RawMatrixer); ok {
		raw := d.RawMatrix()
		for r := 0; r < rows; r++ {
			copy(g.Row(r), raw.Data[r*raw.Stride:r*raw.Stride+cols])
		}
		return g
	}
	for r := 0; r < rows; r++ {
		row := g.Row(r)
		for c := range row {
			row[c] = m.At(r, c)
		}
	}
	return g
}

// ToDense copies a non-empty grid into a new dense matrix.
func ToDense(g *grid.Grid) *mat.Dense {
	data := make([]float64, g.Len())
	copy(data, g.Data)
	return mat.NewDense(g.Rows, g.Cols, data)
}

// SegmentDense is the matrix-level entry point: image and edge weights in,
// segmentation field out, using the default options.
func SegmentDense(f, edge mat.Matrix, mu float64) (*mat.Dense, error) {
	fr, fc := f.Dims()
	if fr == 0 || fc == 0 {
		return nil, ErrEmptyInput
	}
	u, err := Segment(FromMatrix(f), FromMatrix(edge), mu)
	if err != nil {
		return nil, err
	}
	return ToDense(u), nil
}
