package splitbregman

import "math"

// shrink updates the split field (x, y) from the forward differences of u
// plus the Bregman residual. Pairs that have both a vertical and a
// horizontal difference are shrunk jointly by their 2-norm; the last column
// of x and the last row of y have only one component and are shrunk on
// their own. The shrink amount at a site is edge/lambda.
func (s *state) shrink(lambda float64, workers int) {
	forEachRow(s.u.Rows, workers, func(w int) {
		s.shrinkRow(w, lambda)
	})
}

func (s *state) shrinkRow(w int, lambda float64) {
	rows, cols := s.u.Rows, s.u.Cols
	ycols := cols - 1
	u, edge := s.u.Data, s.edge.Data
	x, bx := s.x.Data, s.bx.Data
	y, by := s.y.Data, s.by.Data

	if w == rows-1 {
		for h := 0; h < ycols; h++ {
			i := w*cols + h
			b := u[i+1] - u[i] + by[w*ycols+h]
			y[w*ycols+h] = shrink1(b, edge[i]/lambda)
		}
		return
	}

	for h := 0; h < ycols; h++ {
		i := w*cols + h
		a := u[i+cols] - u[i] + bx[i]
		b := u[i+1] - u[i] + by[w*ycols+h]
		xv, yv := shrink2(a, b, edge[i]/lambda)
		x[i] = xv
		y[w*ycols+h] = yv
	}

	i := w*cols + cols - 1
	a := u[i+cols] - u[i] + bx[i]
	x[i] = shrink1(a, edge[i]/lambda)
}

// shrink2 soft-thresholds the vector (a, b) by flux in the 2-norm. The
// result is exactly zero when |(a,b)| < flux, and also for a zero vector
// with zero flux.
func shrink2(a, b, flux float64) (float64, float64) {
	s := math.Sqrt(a*a + b*b)
	if s < flux || s == 0 {
		return 0, 0
	}
	scale := (s - flux) / s
	return scale * a, scale * b
}

// shrink1 is the one-dimensional soft threshold.
func shrink1(base, flux float64) float64 {
	switch {
	case base > flux:
		return base - flux
	case base < -flux:
		return base + flux
	default:
		return 0
	}
}
