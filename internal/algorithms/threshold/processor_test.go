package threshold

import (
	"context"
	"testing"

	"bregman-segmenter/internal/grid"
)

func TestMeanThreshold(t *testing.T) {
	img, _ := grid.FromRows([][]float64{
		{0, 10},
		{90, 100},
	})
	seg, err := NewProcessor().Process(context.Background(), img, nil, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	want := []float64{0, 0, 1, 1}
	for i, v := range want {
		if seg.Field.Data[i] != v {
			t.Errorf("field[%d] = %v, want %v", i, seg.Field.Data[i], v)
		}
	}
	if seg.C1 != 95 || seg.C2 != 5 {
		t.Errorf("c1, c2 = %v, %v; want 95, 5", seg.C1, seg.C2)
	}
}

func TestExplicitLevel(t *testing.T) {
	img, _ := grid.FromRows([][]float64{{0, 10, 90, 100}})
	seg, err := NewProcessor().Process(context.Background(), img, nil, map[string]interface{}{"level": 5.0})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if seg.Field.Data[1] != 1 {
		t.Errorf("pixel above explicit level not selected: %v", seg.Field.Data)
	}
}

func TestConstantImageReportsEmptyRegion(t *testing.T) {
	seg, err := NewProcessor().Process(context.Background(), grid.Filled(3, 3, 4), nil, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !seg.EmptyRegion || seg.C1 != 0 || seg.C2 != 4 {
		t.Errorf("empty=%v c1=%v c2=%v", seg.EmptyRegion, seg.C1, seg.C2)
	}
}

func TestValidateParameters(t *testing.T) {
	if err := NewProcessor().ValidateParameters(map[string]interface{}{"level": "high"}); err == nil {
		t.Error("expected error for non-numeric level")
	}
}
