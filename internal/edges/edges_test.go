package edges

import (
	"math"
	"testing"

	"bregman-segmenter/internal/grid"
)

func stepImage(rows, cols int) *grid.Grid {
	g := grid.New(rows, cols)
	for r := 0; r < rows; r++ {
		for c := cols / 2; c < cols; c++ {
			g.Set(r, c, 200)
		}
	}
	return g
}

func TestUniformDetector(t *testing.T) {
	d, err := New("does-not-matter", Options{Uniform: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := d.EdgeMap(stepImage(3, 4))
	if err != nil {
		t.Fatalf("EdgeMap: %v", err)
	}
	for _, v := range out.Data {
		if v != 1 {
			t.Fatalf("uniform weight = %v, want 1", v)
		}
	}
}

func TestUnknownBackend(t *testing.T) {
	if _, err := New("cuda", DefaultOptions()); err == nil {
		t.Fatal("expected error for unregistered backend")
	}
}

func TestNegativeOptionsRejected(t *testing.T) {
	if _, err := New(BackendNative, Options{Sigma: -1}); err == nil {
		t.Error("expected negative sigma to be rejected")
	}
	if _, err := New(BackendNative, Options{Beta: -1}); err == nil {
		t.Error("expected negative beta to be rejected")
	}
}

func TestNativeWeightsDropAcrossStep(t *testing.T) {
	d, err := New(BackendNative, Options{Sigma: 0, Beta: 10})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	img := stepImage(6, 8)
	out, err := d.EdgeMap(img)
	if err != nil {
		t.Fatalf("EdgeMap: %v", err)
	}
	if !out.SameShape(img) {
		t.Fatalf("shape %v, want %v", out, img)
	}

	flat := out.At(3, 0)
	step := out.At(3, 4)
	if flat != 1 {
		t.Errorf("weight in flat area = %v, want 1", flat)
	}
	// Central difference across the step is 0.5, so the weight is 1/(1+10*0.25).
	if want := 1 / (1 + 10*0.25); math.Abs(step-want) > 1e-12 {
		t.Errorf("weight at step = %v, want %v", step, want)
	}
	for _, v := range out.Data {
		if v <= 0 || v > 1 {
			t.Fatalf("weight %v outside (0,1]", v)
		}
	}
}

func TestNativeBlurSmoothsStep(t *testing.T) {
	sharp, _ := New(BackendNative, Options{Sigma: 0, Beta: 10})
	soft, _ := New(BackendNative, Options{Sigma: 2, Beta: 10})
	img := stepImage(8, 16)

	a, _ := sharp.EdgeMap(img)
	b, _ := soft.EdgeMap(img)
	if b.At(4, 8) <= a.At(4, 8) {
		t.Errorf("blurred weight at the step (%v) should exceed the sharp one (%v)", b.At(4, 8), a.At(4, 8))
	}
}

func TestGradientMagnitudeBorders(t *testing.T) {
	f, _ := grid.FromRows([][]float64{
		{0, 1, 3},
	})
	g := GradientMagnitude2(f)
	want := []float64{1, 2.25, 4}
	for i, v := range want {
		if g.Data[i] != v {
			t.Errorf("grad2[%d] = %v, want %v", i, g.Data[i], v)
		}
	}
}

func TestNormalizeFlatImage(t *testing.T) {
	out := Normalize(grid.Filled(2, 2, 9))
	for _, v := range out.Data {
		if v != 0 {
			t.Fatalf("flat image normalised to %v, want 0", v)
		}
	}
}

func TestBackendsIncludesNative(t *testing.T) {
	found := false
	for _, name := range Backends() {
		if name == BackendNative {
			found = true
		}
	}
	if !found {
		t.Errorf("native backend missing from %v", Backends())
	}
}
