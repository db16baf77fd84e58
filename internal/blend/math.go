package blend

// Small scalar helpers shared by the kernels. All operate on float32 in the
// nominal [0, 1] range used by the pixel buffers.

// clamp01 clamps x to [0, 1].
func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// maskAt returns the mask coverage of pixel i, or 1 when there is no mask.
func maskAt(mask []float32, i int) float32 {
	if mask == nil {
		return 1
	}
	return mask[i]
}

// lerp interpolates from a to b by t.
func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// absf returns |x|.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// copyPixel copies one RGBA quadruple at offset o from src to dst.
func copyPixel(dst, src []float32, o int) {
	dst[o+red] = src[o+red]
	dst[o+green] = src[o+green]
	dst[o+blue] = src[o+blue]
	dst[o+alpha] = src[o+alpha]
}
