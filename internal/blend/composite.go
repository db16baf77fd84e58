package blend

// channelFunc blends one unmultiplied colour channel of the backdrop (in)
// with the same channel of the layer.
type channelFunc func(in, layer float32) float32

// pixelFunc blends the unmultiplied RGB of one backdrop pixel with one layer
// pixel. Both slices hold at least three channels.
type pixelFunc func(in, layer []float32) (r, g, b float32)

// compositeLegacy applies the compositing rule shared by the separable and
// HSV family kernels:
//
//	comp_alpha = min(in.a, layer.a * opacity * mask)
//	new_alpha  = in.a + (1 - in.a) * comp_alpha
//	out.rgb    = lerp(in.rgb, B(in, layer), comp_alpha / new_alpha)
//	out.a      = in.a
//
// Exactly one of sep and pix is non-nil.
func compositeLegacy(in, layer, mask, out []float32, p Params, sep channelFunc, pix pixelFunc) {
	for i := 0; i < p.Samples; i++ {
		o := i * 4
		la := layer[o+alpha] * p.Opacity * maskAt(mask, i)
		ia := in[o+alpha]
		compAlpha := min(ia, la)
		newAlpha := ia + (1-ia)*compAlpha

		if compAlpha <= 0 || newAlpha <= 0 {
			copyPixel(out, in, o)
			continue
		}

		var r, g, b float32
		if sep != nil {
			r = sep(in[o+red], layer[o+red])
			g = sep(in[o+green], layer[o+green])
			b = sep(in[o+blue], layer[o+blue])
		} else {
			r, g, b = pix(in[o:o+3:o+3], layer[o:o+3:o+3])
		}

		ratio := compAlpha / newAlpha
		out[o+red] = lerp(in[o+red], r, ratio)
		out[o+green] = lerp(in[o+green], g, ratio)
		out[o+blue] = lerp(in[o+blue], b, ratio)
		out[o+alpha] = ia
	}
}

// compositeAtop is the LCH family rule. It differs from compositeLegacy in
// that the layer alpha alone drives the mix, independent of the backdrop
// alpha.
func compositeAtop(in, layer, mask, out []float32, p Params, pix pixelFunc) {
	for i := 0; i < p.Samples; i++ {
		o := i * 4
		la := layer[o+alpha] * p.Opacity * maskAt(mask, i)
		ia := in[o+alpha]
		newAlpha := ia + (1-ia)*la

		if la <= 0 || newAlpha <= 0 {
			copyPixel(out, in, o)
			continue
		}

		r, g, b := pix(in[o:o+3:o+3], layer[o:o+3:o+3])

		ratio := la / newAlpha
		out[o+red] = lerp(in[o+red], r, ratio)
		out[o+green] = lerp(in[o+green], g, ratio)
		out[o+blue] = lerp(in[o+blue], b, ratio)
		out[o+alpha] = ia
	}
}
