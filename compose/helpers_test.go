package compose

import (
	"math"
	"testing"

	"github.com/gogpu/layermode/internal/image"
)

func mustBuffer(t testing.TB, w, h int) *image.Buffer {
	t.Helper()
	buf, err := image.NewBuffer(w, h)
	if err != nil {
		t.Fatalf("NewBuffer(%d, %d) error = %v", w, h, err)
	}
	return buf
}

func floatNear(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

// assertPixel fails the test if pixel (x, y) of buf differs from want.
func assertPixel(t *testing.T, buf *image.Buffer, x, y int, want [4]float32) {
	t.Helper()
	r, g, b, a := buf.At(x, y)
	got := [4]float32{r, g, b, a}
	for i := range got {
		if !floatNear(got[i], want[i], 1e-4) {
			t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			return
		}
	}
}
