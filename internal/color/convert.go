// Package color provides the sRGB transfer functions used when a layer is
// composited in linear light.
//
// Pixel rows are non-premultiplied RGBA float32 quadruples. Only RGB goes
// through the transfer function; alpha is always linear.
//
// References:
//   - sRGB specification: https://www.w3.org/Graphics/Color/sRGB
//   - GPU Gems 3, Chapter 24: https://developer.nvidia.com/gpugems/gpugems3/part-iv-image-effects/chapter-24-importance-being-linear
package color

import "math"

// Space identifies how the RGB channels of a pixel row are encoded.
type Space uint8

const (
	// SpaceSRGB is gamma-encoded sRGB, the storage encoding of buffers.
	SpaceSRGB Space = iota
	// SpaceLinear is linear light.
	SpaceLinear
)

// String returns the name of the space.
func (s Space) String() string {
	switch s {
	case SpaceSRGB:
		return "sRGB"
	case SpaceLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// SRGBToLinear converts an sRGB component to linear (EOTF - Electro-Optical Transfer Function).
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4)
// Input and output are in range [0,1].
func SRGBToLinear(s float32) float32 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return float32(math.Pow(float64((s+0.055)/1.055), 2.4))
}

// LinearToSRGB converts a linear component to sRGB (OETF - Opto-Electronic Transfer Function).
// Formula: if l <= 0.0031308: l*12.92; else: 1.055*pow(l, 1/2.4)-0.055
// Input and output are in range [0,1].
func LinearToSRGB(l float32) float32 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*float32(math.Pow(float64(l), 1.0/2.4)) - 0.055
}

// ToLinear converts the RGB of every quadruple in px from sRGB to linear,
// in place.
func ToLinear(px []float32) {
	for i := 0; i+3 < len(px); i += 4 {
		px[i] = SRGBToLinear(px[i])
		px[i+1] = SRGBToLinear(px[i+1])
		px[i+2] = SRGBToLinear(px[i+2])
	}
}

// ToSRGB converts the RGB of every quadruple in px from linear to sRGB,
// in place.
func ToSRGB(px []float32) {
	for i := 0; i+3 < len(px); i += 4 {
		px[i] = LinearToSRGB(px[i])
		px[i+1] = LinearToSRGB(px[i+1])
		px[i+2] = LinearToSRGB(px[i+2])
	}
}

// Convert converts px in place from one space to another. Converting a
// space to itself is a no-op.
func Convert(px []float32, from, to Space) {
	switch {
	case from == to:
	case from == SpaceSRGB && to == SpaceLinear:
		ToLinear(px)
	case from == SpaceLinear && to == SpaceSRGB:
		ToSRGB(px)
	}
}
