package image

import (
	"errors"
	"math"
	"testing"
)

func TestResize(t *testing.T) {
	src, _ := NewBuffer(4, 4)
	src.Fill(0.5, 0.25, 1, 1)

	dst, err := Resize(src, 8, 2)
	if err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if w, h := dst.Bounds(); w != 8 || h != 2 {
		t.Fatalf("Bounds() = (%d, %d), want (8, 2)", w, h)
	}

	// A flat colour stays flat under any resampling filter.
	for y := range 2 {
		for x := range 8 {
			r, g, b, a := dst.At(x, y)
			if math.Abs(float64(r-0.5)) > 1e-3 || math.Abs(float64(g-0.25)) > 1e-3 || b < 0.999 || a < 0.999 {
				t.Fatalf("At(%d, %d) = (%v, %v, %v, %v), want flat (0.5, 0.25, 1, 1)", x, y, r, g, b, a)
			}
		}
	}
}

func TestResizeSameSizeClones(t *testing.T) {
	src, _ := NewBuffer(2, 2)
	dst, err := Resize(src, 2, 2)
	if err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if dst == src {
		t.Error("Resize() to same size returned the source buffer")
	}
}

func TestResizeInvalid(t *testing.T) {
	src, _ := NewBuffer(2, 2)
	if _, err := Resize(src, 0, 2); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Resize(0, 2) error = %v, want ErrInvalidDimensions", err)
	}
}
