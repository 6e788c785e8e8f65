package splitbregman

// relax runs one Gauss-Seidel sweep of the u-subproblem. Pixels are visited
// row by row, left to right, and each update reads the neighbours already
// rewritten earlier in the same sweep, so the visiting order is part of the
// result. ratio is mu/lambda. The returned value is the largest squared
// change of a single pixel during the sweep.
func (s *state) relax(ratio float64) float64 {
	rows, cols := s.u.Rows, s.u.Cols
	u, f := s.u.Data, s.f.Data
	c1, c2 := s.c1, s.c2

	maxDelta := 0.0
	for r := 0; r < rows; r++ {
		vertical := rowClass(r, rows)
		for c := 0; c < cols; c++ {
			st := &s.stencils[vertical|colClass(c, cols)]
			if st.div == 0 {
				// A 1×1 image has nothing to relax against.
				continue
			}
			i := r*cols + c
			fv := f[i]
			g := (c1-fv)*(c1-fv) - (c2-fv)*(c2-fv)

			sum := st.divergence(s, r, c) - ratio*g
			v := (st.neighbours(u, cols, r, c) + sum) / st.div
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}

			d := v - u[i]
			if d*d > maxDelta {
				maxDelta = d * d
			}
			u[i] = v
		}
	}
	return maxDelta
}
