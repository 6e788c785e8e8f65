package splitbregman

import (
	"testing"

	"bregman-segmenter/internal/grid"
)

// ---------- helpers ----------

func mustGrid(t *testing.T, rows [][]float64) *grid.Grid {
	t.Helper()
	g, err := grid.FromRows(rows)
	if err != nil {
		t.Fatalf("building grid: %v", err)
	}
	return g
}

// brightBlock is the 4×4 image with a 2×2 block of 200 on a 0 background.
func brightBlock(t *testing.T) *grid.Grid {
	return mustGrid(t, [][]float64{
		{0, 0, 0, 0},
		{0, 200, 200, 0},
		{0, 200, 200, 0},
		{0, 0, 0, 0},
	})
}

// lcg is a tiny deterministic generator so fixtures do not depend on
// math/rand's stream.
type lcg struct{ state int64 }

func (l *lcg) next() float64 {
	l.state = (l.state*1103515245 + 12345) % (1 << 31)
	return float64(l.state) / float64(1<<31)
}

// noisyBlock is an n×n image with a centred square of 150 on a background
// of 50, both perturbed by ±40 of noise. inside reports block membership.
func noisyBlock(n int) (*grid.Grid, func(r, c int) bool) {
	lo, hi := n/4, n-n/4
	inside := func(r, c int) bool { return r >= lo && r < hi && c >= lo && c < hi }
	rng := &lcg{state: 12345}
	g := grid.New(n, n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			base := 50.0
			if inside(r, c) {
				base = 150
			}
			g.Set(r, c, base+(rng.next()-0.5)*80)
		}
	}
	return g, inside
}

func mustSolver(t *testing.T, opts Options) *Solver {
	t.Helper()
	s, err := New(opts, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func assertUnitInterval(t *testing.T, g *grid.Grid, when string) {
	t.Helper()
	for i, v := range g.Data {
		if !(v >= 0 && v <= 1) {
			t.Fatalf("%s: u[%d] = %v outside [0,1]", when, i, v)
		}
	}
}
