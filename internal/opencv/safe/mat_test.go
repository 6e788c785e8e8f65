//go:build opencv

package safe

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestMatLifecycle(t *testing.T) {
	m, err := NewMat(3, 4, gocv.MatTypeCV32FC1, "test")
	if err != nil {
		t.Fatalf("NewMat: %v", err)
	}
	if m.Rows() != 3 || m.Cols() != 4 || m.Type() != gocv.MatTypeCV32FC1 {
		t.Fatalf("unexpected Mat %dx%d type %v", m.Rows(), m.Cols(), m.Type())
	}

	if err := m.SetFloatAt(2, 3, 0.5); err != nil {
		t.Fatalf("SetFloatAt: %v", err)
	}
	if v, err := m.FloatAt(2, 3); err != nil || v != 0.5 {
		t.Fatalf("FloatAt = %v, %v", v, err)
	}
	if _, err := m.FloatAt(3, 0); err == nil {
		t.Error("expected out-of-bounds error")
	}

	m.AddRef()
	m.Release()
	if !m.IsValid() {
		t.Fatal("Mat released while still referenced")
	}
	m.Release()
	if m.IsValid() || !m.Empty() {
		t.Fatal("Mat still valid after final release")
	}
	m.Close()
}

func TestValidators(t *testing.T) {
	if err := ValidateMatForOperation(nil, "op"); err == nil {
		t.Error("nil Mat accepted")
	}
	if err := ValidateDimensions(0, 5, "op"); err == nil {
		t.Error("zero width accepted")
	}
	if err := ValidateDimensions(maxDimension+1, 5, "op"); err == nil {
		t.Error("oversized width accepted")
	}
	if err := ValidateMatType(gocv.MatTypeCV8UC3, "op"); err == nil {
		t.Error("three-channel type accepted")
	}
	if _, err := NewMat(0, 3, gocv.MatTypeCV8UC1, "bad"); err == nil {
		t.Error("NewMat accepted zero rows")
	}
}
