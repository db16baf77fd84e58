package color

import (
	"math"
	"testing"
)

// TestSRGBToLinearEdgeCases tests edge cases for sRGB to linear conversion.
func TestSRGBToLinearEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		want  float32
	}{
		{"black", 0.0, 0.0},
		{"white", 1.0, 1.0},
		{"threshold", 0.04045, 0.04045 / 12.92},
		{"just above threshold", 0.04046, float32(math.Pow((0.04046+0.055)/1.055, 2.4))},
		{"mid gray", 0.5, float32(math.Pow((0.5+0.055)/1.055, 2.4))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SRGBToLinear(tt.input)
			if !floatNear(got, tt.want, 1e-6) {
				t.Errorf("SRGBToLinear(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestLinearToSRGBEdgeCases tests edge cases for linear to sRGB conversion.
func TestLinearToSRGBEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		want  float32
	}{
		{"black", 0.0, 0.0},
		{"white", 1.0, 1.0},
		{"threshold", 0.0031308, 0.0031308 * 12.92},
		{"just above threshold", 0.0031309, 1.055*float32(math.Pow(0.0031309, 1.0/2.4)) - 0.055},
		{"mid gray linear", 0.21404, float32(1.055*math.Pow(0.21404, 1.0/2.4) - 0.055)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinearToSRGB(tt.input)
			if !floatNear(got, tt.want, 1e-6) {
				t.Errorf("LinearToSRGB(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestRoundTripSRGBLinear tests round-trip conversion accuracy.
// Maximum error should be less than 1/255 to preserve 8-bit precision.
func TestRoundTripSRGBLinear(t *testing.T) {
	const maxError = 1.0 / 255.0

	// Test all 8-bit values
	for i := 0; i <= 255; i++ {
		srgb := float32(i) / 255.0
		linear := SRGBToLinear(srgb)
		roundTrip := LinearToSRGB(linear)

		diff := float32(math.Abs(float64(roundTrip - srgb)))
		if diff > maxError {
			t.Errorf("Round-trip error for %d/255: got %v, want %v, diff %v (max %v)",
				i, roundTrip, srgb, diff, maxError)
		}
	}
}

// TestRoundTripLinearSRGB tests reverse round-trip conversion accuracy.
func TestRoundTripLinearSRGB(t *testing.T) {
	const maxError = 1.0 / 255.0

	// Test 256 evenly spaced linear values
	for i := 0; i <= 255; i++ {
		linear := float32(i) / 255.0
		srgb := LinearToSRGB(linear)
		roundTrip := SRGBToLinear(srgb)

		diff := float32(math.Abs(float64(roundTrip - linear)))
		if diff > maxError {
			t.Errorf("Reverse round-trip error for %d/255: got %v, want %v, diff %v (max %v)",
				i, roundTrip, linear, diff, maxError)
		}
	}
}

// TestToLinear tests in-place conversion of a pixel row to linear space.
func TestToLinear(t *testing.T) {
	px := []float32{
		1, 1, 1, 1,
		0, 0, 0, 1,
		1, 0, 0, 0.5,
		0.5, 0.5, 0.5, 0.75,
	}
	want := []float32{
		1, 1, 1, 1,
		0, 0, 0, 1,
		1, 0, 0, 0.5,
		SRGBToLinear(0.5), SRGBToLinear(0.5), SRGBToLinear(0.5), 0.75,
	}

	ToLinear(px)
	for i := range px {
		if !floatNear(px[i], want[i], 1e-6) {
			t.Errorf("ToLinear()[%d] = %v, want %v", i, px[i], want[i])
		}
	}
}

// TestToSRGB tests in-place conversion of a pixel row to sRGB space.
func TestToSRGB(t *testing.T) {
	px := []float32{0, 1, 0, 0.3, 0.21404, 0.21404, 0.21404, 1}
	want := []float32{0, 1, 0, 0.3, LinearToSRGB(0.21404), LinearToSRGB(0.21404), LinearToSRGB(0.21404), 1}

	ToSRGB(px)
	for i := range px {
		if !floatNear(px[i], want[i], 1e-6) {
			t.Errorf("ToSRGB()[%d] = %v, want %v", i, px[i], want[i])
		}
	}
}

// TestAlphaPreserved ensures alpha is never gamma-encoded.
func TestAlphaPreserved(t *testing.T) {
	px := []float32{0.5, 0.5, 0.5, 0.5}

	ToLinear(px)
	if px[3] != 0.5 {
		t.Errorf("ToLinear changed alpha: got %v, want 0.5", px[3])
	}

	ToSRGB(px)
	if px[3] != 0.5 {
		t.Errorf("ToSRGB changed alpha: got %v, want 0.5", px[3])
	}
}

// TestConvert tests space-to-space conversion dispatch.
func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		from, to Space
		want     float32
	}{
		{"identity sRGB", SpaceSRGB, SpaceSRGB, 0.5},
		{"identity linear", SpaceLinear, SpaceLinear, 0.5},
		{"to linear", SpaceSRGB, SpaceLinear, SRGBToLinear(0.5)},
		{"to sRGB", SpaceLinear, SpaceSRGB, LinearToSRGB(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			px := []float32{0.5, 0.5, 0.5, 1}
			Convert(px, tt.from, tt.to)
			if !floatNear(px[0], tt.want, 1e-6) {
				t.Errorf("Convert(%v -> %v) = %v, want %v", tt.from, tt.to, px[0], tt.want)
			}
		})
	}
}

// TestToLinearPartialPixel ignores a trailing incomplete quadruple.
func TestToLinearPartialPixel(t *testing.T) {
	px := []float32{0.5, 0.5}
	ToLinear(px)
	if px[0] != 0.5 || px[1] != 0.5 {
		t.Errorf("ToLinear touched incomplete pixel: %v", px)
	}
}

func TestSpaceString(t *testing.T) {
	if SpaceSRGB.String() != "sRGB" || SpaceLinear.String() != "linear" || Space(9).String() != "unknown" {
		t.Errorf("unexpected Space names: %v %v %v", SpaceSRGB, SpaceLinear, Space(9))
	}
}

func floatNear(a, b, epsilon float32) bool {
	return float32(math.Abs(float64(a-b))) <= epsilon
}
