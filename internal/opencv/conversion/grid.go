//go:build opencv

package conversion

import (
	"fmt"

	"bregman-segmenter/internal/grid"
	"bregman-segmenter/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// GridToMat copies g into a new single-channel float32 Mat.
func GridToMat(g *grid.Grid, tag string) (*safe.Mat, error) {
	if g.Empty() {
		return nil, fmt.Errorf("cannot convert empty grid %dx%d", g.Rows, g.Cols)
	}

	dst, err := safe.NewMat(g.Rows, g.Cols, gocv.MatTypeCV32FC1, tag)
	if err != nil {
		return nil, fmt.Errorf("destination Mat creation failed: %w", err)
	}

	for r := 0; r < g.Rows; r++ {
		for c, v := range g.Row(r) {
			if err := dst.SetFloatAt(r, c, float32(v)); err != nil {
				dst.Close()
				return nil, err
			}
		}
	}
	return dst, nil
}

// MatToGrid copies a float32 or 8-bit single-channel Mat into a new grid.
func MatToGrid(src *safe.Mat) (*grid.Grid, error) {
	if err := safe.ValidateMatForOperation(src, "Mat to grid conversion"); err != nil {
		return nil, err
	}

	mat := src.GetMat()
	out := grid.New(src.Rows(), src.Cols())
	switch src.Type() {
	case gocv.MatTypeCV32FC1:
		for r := 0; r < out.Rows; r++ {
			row := out.Row(r)
			for c := range row {
				row[c] = float64(mat.GetFloatAt(r, c))
			}
		}
	case gocv.MatTypeCV8UC1:
		for r := 0; r < out.Rows; r++ {
			row := out.Row(r)
			for c := range row {
				row[c] = float64(mat.GetUCharAt(r, c))
			}
		}
	default:
		return nil, fmt.Errorf("unsupported MatType %d for grid conversion", int(src.Type()))
	}
	return out, nil
}

// ReadGray loads an image file as an 8-bit grayscale grid through OpenCV.
func ReadGray(path string) (*grid.Grid, error) {
	mat := gocv.IMRead(path, gocv.IMReadGrayScale)
	sm, err := safe.Adopt(mat, "imread")
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer sm.Close()

	return MatToGrid(sm)
}
