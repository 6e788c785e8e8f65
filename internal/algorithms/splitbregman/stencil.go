package splitbregman

// Neighbour flags of a pixel in the relaxation stencil.
const (
	hasUp uint8 = 1 << iota
	hasDown
	hasLeft
	hasRight
)

// stencil is the reduced five-point stencil of one pixel class: which of the
// four neighbours exist and the divisor, their count. Interior pixels use
// all four, edges three, corners two. Missing neighbours contribute nothing,
// which is the natural boundary condition without ghost cells.
type stencil struct {
	up, down, left, right bool
	div                   float64
}

// stencilTable is indexed by the neighbour flag set of a pixel.
type stencilTable [16]stencil

func newStencilTable() stencilTable {
	var t stencilTable
	for class := range t {
		st := stencil{
			up:    uint8(class)&hasUp != 0,
			down:  uint8(class)&hasDown != 0,
			left:  uint8(class)&hasLeft != 0,
			right: uint8(class)&hasRight != 0,
		}
		for _, ok := range [...]bool{st.up, st.down, st.left, st.right} {
			if ok {
				st.div++
			}
		}
		t[class] = st
	}
	return t
}

// rowClass returns the vertical neighbour flags of row r.
func rowClass(r, rows int) uint8 {
	var class uint8
	if r > 0 {
		class |= hasUp
	}
	if r < rows-1 {
		class |= hasDown
	}
	return class
}

// colClass returns the horizontal neighbour flags of column c.
func colClass(c, cols int) uint8 {
	var class uint8
	if c > 0 {
		class |= hasLeft
	}
	if c < cols-1 {
		class |= hasRight
	}
	return class
}

// divergence returns the split and Bregman contribution at (r,c):
//
//	x[r-1][c] - x[r][c] - bx[r-1][c] + bx[r][c]
//	+ y[r][c-1] - y[r][c] - by[r][c-1] + by[r][c]
//
// with terms of absent neighbours left out. The terms are accumulated in
// exactly this order.
func (st *stencil) divergence(s *state, r, c int) float64 {
	cols := s.u.Cols
	ycols := cols - 1
	x, bx := s.x.Data, s.bx.Data
	y, by := s.y.Data, s.by.Data

	sum := 0.0
	if st.up {
		sum += x[(r-1)*cols+c]
	}
	if st.down {
		sum -= x[r*cols+c]
	}
	if st.up {
		sum -= bx[(r-1)*cols+c]
	}
	if st.down {
		sum += bx[r*cols+c]
	}
	if st.left {
		sum += y[r*ycols+c-1]
	}
	if st.right {
		sum -= y[r*ycols+c]
	}
	if st.left {
		sum -= by[r*ycols+c-1]
	}
	if st.right {
		sum += by[r*ycols+c]
	}
	return sum
}

// neighbours returns the sum of the existing neighbours of u at (r,c),
// taken in up, down, left, right order.
func (st *stencil) neighbours(u []float64, cols, r, c int) float64 {
	sum := 0.0
	if st.up {
		sum += u[(r-1)*cols+c]
	}
	if st.down {
		sum += u[(r+1)*cols+c]
	}
	if st.left {
		sum += u[r*cols+c-1]
	}
	if st.right {
		sum += u[r*cols+c+1]
	}
	return sum
}
