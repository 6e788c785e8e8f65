package edges

import (
	"image"
	"image/color"
	"math"

	"bregman-segmenter/internal/grid"

	"github.com/disintegration/imaging"
)

// Native smooths with imaging.Blur and differentiates with central
// differences, one-sided at the borders.
type Native struct {
	opts Options
}

func NewNative(opts Options) *Native {
	return &Native{opts: opts}
}

func (n *Native) Name() string { return BackendNative }

func (n *Native) EdgeMap(img *grid.Grid) (*grid.Grid, error) {
	if img.Empty() {
		return grid.New(img.Rows, img.Cols), nil
	}
	smooth := Normalize(img)
	if n.opts.Sigma > 0 {
		smooth = blur(smooth, n.opts.Sigma)
	}
	return Weights(GradientMagnitude2(smooth), n.opts.Beta), nil
}

// blur runs a Gaussian blur on an 8-bit rendering of a [0,1] field.
func blur(field *grid.Grid, sigma float64) *grid.Grid {
	gray := image.NewGray(image.Rect(0, 0, field.Cols, field.Rows))
	for r := 0; r < field.Rows; r++ {
		for c, v := range field.Row(r) {
			gray.SetGray(c, r, color.Gray{Y: uint8(math.Round(v * 255))})
		}
	}

	blurred := imaging.Blur(gray, sigma)
	out := grid.New(field.Rows, field.Cols)
	for r := 0; r < field.Rows; r++ {
		row := out.Row(r)
		for c := range row {
			row[c] = float64(blurred.Pix[blurred.PixOffset(c, r)]) / 255
		}
	}
	return out
}

// GradientMagnitude2 returns |∇f|² using central differences inside the
// grid and one-sided differences on its border. Single-pixel dimensions
// contribute no derivative along that axis.
func GradientMagnitude2(f *grid.Grid) *grid.Grid {
	rows, cols := f.Rows, f.Cols
	out := grid.New(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			var dr, dc float64
			switch {
			case rows == 1:
			case r == 0:
				dr = f.At(1, c) - f.At(0, c)
			case r == rows-1:
				dr = f.At(r, c) - f.At(r-1, c)
			default:
				dr = (f.At(r+1, c) - f.At(r-1, c)) / 2
			}
			switch {
			case cols == 1:
			case c == 0:
				dc = f.At(r, 1) - f.At(r, 0)
			case c == cols-1:
				dc = f.At(r, c) - f.At(r, c-1)
			default:
				dc = (f.At(r, c+1) - f.At(r, c-1)) / 2
			}
			out.Set(r, c, dr*dr+dc*dc)
		}
	}
	return out
}
