package splitbregman

// bregman adds the residual between the forward differences of u and the
// split field to the Bregman variables:
//
//	bx[w][h] += (u[w+1][h] - u[w][h]) - x[w][h]
//	by[w][h] += (u[w][h+1] - u[w][h]) - y[w][h]
func (s *state) bregman(workers int) {
	forEachRow(s.u.Rows, workers, s.bregmanRow)
}

func (s *state) bregmanRow(w int) {
	rows, cols := s.u.Rows, s.u.Cols
	ycols := cols - 1
	u := s.u.Data
	x, bx := s.x.Data, s.bx.Data
	y, by := s.y.Data, s.by.Data

	if w < rows-1 {
		for h := 0; h < cols; h++ {
			i := w*cols + h
			bx[i] += (u[i+cols] - u[i]) - x[i]
		}
	}
	for h := 0; h < ycols; h++ {
		i := w*cols + h
		by[w*ycols+h] += (u[i+1] - u[i]) - y[w*ycols+h]
	}
}
