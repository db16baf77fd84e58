package blend

import colorful "github.com/lucasb-eyer/go-colorful"

// LCH family kernels. Each operation swaps components between backdrop and
// layer in CIE LCh(ab) (D65). The plain kernels expect gamma-encoded sRGB
// input; the Linear kernels expect linear-light input and convert through
// the same perceptual space, so the two variants give numerically
// different results for the same buffer contents.

// chromaEpsilon is the chroma below which a colour is treated as achromatic
// and its hue as undefined. Neutral greys come back from the conversion
// with chroma around 1.5e-4, so the bound sits above that.
const chromaEpsilon = 1e-3

// lchFunc combines backdrop (h1, c1, l1) and layer (h2, c2, l2) into the
// output LCh. ok reports whether the backdrop should change at all.
type lchFunc func(h1, c1, l1, h2, c2, l2 float64) (h, c, l float64, ok bool)

func lchHue(h1, c1, l1, h2, c2, _ float64) (float64, float64, float64, bool) {
	if c2 < chromaEpsilon {
		return 0, 0, 0, false
	}
	return h2, c1, l1, true
}

func lchChroma(h1, c1, l1, _, c2, _ float64) (float64, float64, float64, bool) {
	if c1 < chromaEpsilon {
		return 0, 0, 0, false
	}
	return h1, c2, l1, true
}

func lchColor(_, _, l1, h2, c2, _ float64) (float64, float64, float64, bool) {
	return h2, c2, l1, true
}

func lchLightness(h1, c1, _, _, _, l2 float64) (float64, float64, float64, bool) {
	return h1, c1, l2, true
}

// lchApply runs fn on gamma-encoded sRGB pixels.
func lchApply(in, layer []float32, fn lchFunc) (r, g, b float32) {
	h1, c1, l1 := rgbColor(in).Hcl()
	h2, c2, l2 := rgbColor(layer).Hcl()
	h, c, l, ok := fn(h1, c1, l1, h2, c2, l2)
	if !ok {
		return in[red], in[green], in[blue]
	}
	return colorRGB(colorful.Hcl(h, c, l))
}

// lchApplyLinear runs fn on linear-light pixels.
func lchApplyLinear(in, layer []float32, fn lchFunc) (r, g, b float32) {
	h1, c1, l1 := linearColor(in).Hcl()
	h2, c2, l2 := linearColor(layer).Hcl()
	h, c, l, ok := fn(h1, c1, l1, h2, c2, l2)
	if !ok {
		return in[red], in[green], in[blue]
	}
	lr, lg, lb := colorful.Hcl(h, c, l).Clamped().LinearRgb()
	return clamp01(float32(lr)), clamp01(float32(lg)), clamp01(float32(lb))
}

func linearColor(px []float32) colorful.Color {
	return colorful.LinearRgb(float64(px[red]), float64(px[green]), float64(px[blue]))
}

func lchHuePixel(in, layer []float32) (r, g, b float32) { return lchApply(in, layer, lchHue) }
func lchHueLinearPixel(in, layer []float32) (r, g, b float32) {
	return lchApplyLinear(in, layer, lchHue)
}

func lchChromaPixel(in, layer []float32) (r, g, b float32) { return lchApply(in, layer, lchChroma) }
func lchChromaLinearPixel(in, layer []float32) (r, g, b float32) {
	return lchApplyLinear(in, layer, lchChroma)
}

func lchColorPixel(in, layer []float32) (r, g, b float32) { return lchApply(in, layer, lchColor) }
func lchColorLinearPixel(in, layer []float32) (r, g, b float32) {
	return lchApplyLinear(in, layer, lchColor)
}

func lchLightnessPixel(in, layer []float32) (r, g, b float32) {
	return lchApply(in, layer, lchLightness)
}

func lchLightnessLinearPixel(in, layer []float32) (r, g, b float32) {
	return lchApplyLinear(in, layer, lchLightness)
}

func processLCHHue(in, layer, mask, out []float32, p Params) {
	compositeAtop(in, layer, mask, out, p, lchHuePixel)
}

func processLCHHueLinear(in, layer, mask, out []float32, p Params) {
	compositeAtop(in, layer, mask, out, p, lchHueLinearPixel)
}

func processLCHChroma(in, layer, mask, out []float32, p Params) {
	compositeAtop(in, layer, mask, out, p, lchChromaPixel)
}

func processLCHChromaLinear(in, layer, mask, out []float32, p Params) {
	compositeAtop(in, layer, mask, out, p, lchChromaLinearPixel)
}

func processLCHColor(in, layer, mask, out []float32, p Params) {
	compositeAtop(in, layer, mask, out, p, lchColorPixel)
}

func processLCHColorLinear(in, layer, mask, out []float32, p Params) {
	compositeAtop(in, layer, mask, out, p, lchColorLinearPixel)
}

func processLCHLightness(in, layer, mask, out []float32, p Params) {
	compositeAtop(in, layer, mask, out, p, lchLightnessPixel)
}

func processLCHLightnessLinear(in, layer, mask, out []float32, p Params) {
	compositeAtop(in, layer, mask, out, p, lchLightnessLinearPixel)
}
