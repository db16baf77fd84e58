package blend

// Kernels that place, remove or replace the layer rather than mixing colour
// channels: normal, behind, dissolve, erase, anti-erase, replace and
// colour erase.

// dissolveSeed keys the dissolve noise so patterns are stable across runs.
const dissolveSeed = 314159265

// colorEraseEpsilon guards the colour-to-alpha divisions.
const colorEraseEpsilon = 1e-5

// processNormal composites the layer over the backdrop.
// Formula: a = la + in.a * (1 - la); rgb = (L*la + I*in.a*(1-la)) / a
func processNormal(in, layer, mask, out []float32, p Params) {
	for i := 0; i < p.Samples; i++ {
		o := i * 4
		la := layer[o+alpha] * p.Opacity * maskAt(mask, i)
		ia := in[o+alpha]
		outAlpha := la + ia*(1-la)

		if outAlpha <= 0 {
			out[o+red], out[o+green], out[o+blue], out[o+alpha] = 0, 0, 0, 0
			continue
		}

		inWeight := ia * (1 - la)
		out[o+red] = (layer[o+red]*la + in[o+red]*inWeight) / outAlpha
		out[o+green] = (layer[o+green]*la + in[o+green]*inWeight) / outAlpha
		out[o+blue] = (layer[o+blue]*la + in[o+blue]*inWeight) / outAlpha
		out[o+alpha] = outAlpha
	}
}

// processBehind composites the layer under the backdrop.
func processBehind(in, layer, mask, out []float32, p Params) {
	for i := 0; i < p.Samples; i++ {
		o := i * 4
		la := layer[o+alpha] * p.Opacity * maskAt(mask, i)
		ia := in[o+alpha]
		outAlpha := ia + la*(1-ia)

		if outAlpha <= 0 {
			copyPixel(out, in, o)
			continue
		}

		layerWeight := la * (1 - ia)
		out[o+red] = (in[o+red]*ia + layer[o+red]*layerWeight) / outAlpha
		out[o+green] = (in[o+green]*ia + layer[o+green]*layerWeight) / outAlpha
		out[o+blue] = (in[o+blue]*ia + layer[o+blue]*layerWeight) / outAlpha
		out[o+alpha] = outAlpha
	}
}

// processDissolve picks, per pixel, either the opaque layer colour or the
// backdrop, with probability given by the effective layer alpha.
func processDissolve(in, layer, mask, out []float32, p Params) {
	width := p.ROI.Dx()
	if width <= 0 {
		width = p.Samples
	}
	level := max(p.Level, 0)

	for i := 0; i < p.Samples; i++ {
		o := i * 4
		x := (p.ROI.Min.X + i%width) << level
		y := (p.ROI.Min.Y + i/width) << level

		la := layer[o+alpha] * p.Opacity * maskAt(mask, i)
		if la*255 > float32(dissolveNoise(x, y)) {
			out[o+red] = layer[o+red]
			out[o+green] = layer[o+green]
			out[o+blue] = layer[o+blue]
			out[o+alpha] = 1
			continue
		}
		copyPixel(out, in, o)
	}
}

// dissolveNoise returns a value in [0, 254] that depends only on (x, y).
func dissolveNoise(x, y int) uint32 {
	h := uint32(x)*0x9E3779B1 ^ uint32(y)*0x85EBCA77 ^ dissolveSeed
	h ^= h >> 15
	h *= 0x2C1B3C6D
	h ^= h >> 12
	h *= 0x297A2D39
	h ^= h >> 15
	return h % 255
}

// processErase reduces backdrop alpha by the layer alpha.
func processErase(in, layer, mask, out []float32, p Params) {
	for i := 0; i < p.Samples; i++ {
		o := i * 4
		la := layer[o+alpha] * p.Opacity * maskAt(mask, i)
		ia := in[o+alpha]
		out[o+red] = in[o+red]
		out[o+green] = in[o+green]
		out[o+blue] = in[o+blue]
		out[o+alpha] = ia - ia*la
	}
}

// processAntiErase restores backdrop alpha toward opaque by the layer alpha.
func processAntiErase(in, layer, mask, out []float32, p Params) {
	for i := 0; i < p.Samples; i++ {
		o := i * 4
		la := layer[o+alpha] * p.Opacity * maskAt(mask, i)
		ia := in[o+alpha]
		out[o+red] = in[o+red]
		out[o+green] = in[o+green]
		out[o+blue] = in[o+blue]
		out[o+alpha] = ia + (1-ia)*la
	}
}

// processReplace moves colour and alpha from the backdrop toward the layer
// by opacity * mask. The layer's own alpha is replaced, not multiplied in.
func processReplace(in, layer, mask, out []float32, p Params) {
	for i := 0; i < p.Samples; i++ {
		o := i * 4
		t := p.Opacity * maskAt(mask, i)
		ia := in[o+alpha]
		la := layer[o+alpha]
		outAlpha := lerp(ia, la, t)

		if outAlpha <= 0 {
			out[o+red], out[o+green], out[o+blue], out[o+alpha] = 0, 0, 0, 0
			continue
		}

		inWeight := ia * (1 - t)
		layerWeight := la * t
		out[o+red] = (in[o+red]*inWeight + layer[o+red]*layerWeight) / outAlpha
		out[o+green] = (in[o+green]*inWeight + layer[o+green]*layerWeight) / outAlpha
		out[o+blue] = (in[o+blue]*inWeight + layer[o+blue]*layerWeight) / outAlpha
		out[o+alpha] = outAlpha
	}
}

// processColorErase removes the layer colour from the backdrop, turning
// the amount of that colour into transparency.
func processColorErase(in, layer, mask, out []float32, p Params) {
	for i := 0; i < p.Samples; i++ {
		o := i * 4
		la := layer[o+alpha] * p.Opacity * maskAt(mask, i)
		ia := in[o+alpha]

		if la <= 0 {
			copyPixel(out, in, o)
			continue
		}

		er, eg, eb, ea := colorToAlpha(
			in[o+red], in[o+green], in[o+blue], ia,
			layer[o+red], layer[o+green], layer[o+blue],
		)

		outAlpha := lerp(ia, ea, la)
		if outAlpha <= 0 {
			out[o+red], out[o+green], out[o+blue], out[o+alpha] = 0, 0, 0, 0
			continue
		}

		inWeight := ia * (1 - la)
		erasedWeight := ea * la
		out[o+red] = (in[o+red]*inWeight + er*erasedWeight) / outAlpha
		out[o+green] = (in[o+green]*inWeight + eg*erasedWeight) / outAlpha
		out[o+blue] = (in[o+blue]*inWeight + eb*erasedWeight) / outAlpha
		out[o+alpha] = outAlpha
	}
}

// colorToAlpha strips the background colour (br, bg, bb) out of the pixel
// (r, g, b, a). The result is the least transparent colour that, composited
// over the background, reproduces the original.
func colorToAlpha(r, g, b, a, br, bg, bb float32) (float32, float32, float32, float32) {
	ca := max(channelToAlpha(r, br), channelToAlpha(g, bg), channelToAlpha(b, bb))
	if ca < colorEraseEpsilon {
		return br, bg, bb, 0
	}
	return clamp01((r-br)/ca + br),
		clamp01((g-bg)/ca + bg),
		clamp01((b-bb)/ca + bb),
		a * ca
}

// channelToAlpha returns the alpha needed on one channel to move it from
// the background value bg to c.
func channelToAlpha(c, bg float32) float32 {
	switch {
	case c > bg && bg < 1-colorEraseEpsilon:
		return (c - bg) / (1 - bg)
	case c < bg && bg > colorEraseEpsilon:
		return (bg - c) / bg
	default:
		return 0
	}
}
