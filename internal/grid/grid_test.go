package grid

import (
	"testing"
)

func TestFromRows(t *testing.T) {
	g, err := FromRows([][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Rows != 2 || g.Cols != 3 {
		t.Fatalf("expected 2x3, got %dx%d", g.Rows, g.Cols)
	}
	if got := g.At(1, 2); got != 6 {
		t.Errorf("At(1,2) = %v, want 6", got)
	}
	if got := g.Data[3]; got != 4 {
		t.Errorf("row-major layout broken: Data[3] = %v, want 4", got)
	}
}

func TestFromRowsRagged(t *testing.T) {
	if _, err := FromRows([][]float64{{1, 2}, {3}}); err == nil {
		t.Fatal("expected error for ragged rows")
	}
}

func TestRowAliasesBuffer(t *testing.T) {
	g := New(3, 2)
	g.Row(1)[0] = 7
	if g.At(1, 0) != 7 {
		t.Errorf("Row should alias the grid buffer")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := Filled(2, 2, 1)
	c := g.Clone()
	c.Set(0, 0, 5)
	if g.At(0, 0) != 1 {
		t.Errorf("clone shares storage with original")
	}
	if !g.SameShape(c) {
		t.Errorf("clone has different shape")
	}
}

func TestCopyFromShapeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on shape mismatch")
		}
	}()
	New(2, 2).CopyFrom(New(2, 3))
}

func TestZeroDimension(t *testing.T) {
	g := New(0, 4)
	if !g.Empty() || g.Len() != 0 {
		t.Errorf("expected empty grid, got len %d", g.Len())
	}
	lo, hi := g.MinMax()
	if lo != 0 || hi != 0 {
		t.Errorf("MinMax of empty grid = (%v,%v)", lo, hi)
	}
}

func TestMinMax(t *testing.T) {
	g, _ := FromRows([][]float64{{3, -1}, {8, 2}})
	lo, hi := g.MinMax()
	if lo != -1 || hi != 8 {
		t.Errorf("MinMax = (%v,%v), want (-1,8)", lo, hi)
	}
}

func TestToRowsCopies(t *testing.T) {
	g := Filled(2, 2, 3)
	rows := g.ToRows()
	rows[0][0] = 9
	if g.At(0, 0) != 3 {
		t.Errorf("ToRows must return a copy")
	}
}
