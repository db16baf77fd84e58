package blend

import colorful "github.com/lucasb-eyer/go-colorful"

// HSV and HSL family kernels. These are the non-separable modes kept for
// documents written with the older blending formulas; the perceptual
// replacements live in lch.go.

func processHue(in, layer, mask, out []float32, p Params) {
	compositeLegacy(in, layer, mask, out, p, nil, hsvHue)
}

func processSaturation(in, layer, mask, out []float32, p Params) {
	compositeLegacy(in, layer, mask, out, p, nil, hsvSaturation)
}

func processColor(in, layer, mask, out []float32, p Params) {
	compositeLegacy(in, layer, mask, out, p, nil, hslColor)
}

func processValue(in, layer, mask, out []float32, p Params) {
	compositeLegacy(in, layer, mask, out, p, nil, hsvValue)
}

func rgbColor(px []float32) colorful.Color {
	return colorful.Color{R: float64(px[red]), G: float64(px[green]), B: float64(px[blue])}
}

func colorRGB(c colorful.Color) (r, g, b float32) {
	c = c.Clamped()
	return float32(c.R), float32(c.G), float32(c.B)
}

// hsvHue takes the hue of the layer. A grey layer has no hue and leaves the
// backdrop unchanged.
func hsvHue(in, layer []float32) (r, g, b float32) {
	lh, ls, _ := rgbColor(layer).Hsv()
	if ls == 0 {
		return in[red], in[green], in[blue]
	}
	_, s, v := rgbColor(in).Hsv()
	return colorRGB(colorful.Hsv(lh, s, v))
}

// hsvSaturation takes the saturation of the layer.
func hsvSaturation(in, layer []float32) (r, g, b float32) {
	_, ls, _ := rgbColor(layer).Hsv()
	h, _, v := rgbColor(in).Hsv()
	return colorRGB(colorful.Hsv(h, ls, v))
}

// hsvValue takes the value of the layer.
func hsvValue(in, layer []float32) (r, g, b float32) {
	_, _, lv := rgbColor(layer).Hsv()
	h, s, _ := rgbColor(in).Hsv()
	return colorRGB(colorful.Hsv(h, s, lv))
}

// hslColor takes hue and saturation of the layer and lightness of the
// backdrop, in HSL.
func hslColor(in, layer []float32) (r, g, b float32) {
	lh, ls, _ := rgbColor(layer).Hsl()
	_, _, l := rgbColor(in).Hsl()
	return colorRGB(colorful.Hsl(lh, ls, l))
}
