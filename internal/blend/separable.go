package blend

// Separable kernels. Each channel is blended independently and the result
// is mixed into the backdrop with compositeLegacy.

// divideScale and divideBias keep divide well defined for a zero layer
// channel while leaving ordinary quotients untouched to float32 precision.
const (
	divideScale = 4294967296.0 / 4294967295.0
	divideBias  = 1.0 / 4294967295.0
)

func processMultiply(in, layer, mask, out []float32, p Params) {
	compositeLegacy(in, layer, mask, out, p, multiplyChannel, nil)
}

func processScreen(in, layer, mask, out []float32, p Params) {
	compositeLegacy(in, layer, mask, out, p, screenChannel, nil)
}

func processOverlay(in, layer, mask, out []float32, p Params) {
	compositeLegacy(in, layer, mask, out, p, overlayChannel, nil)
}

func processDifference(in, layer, mask, out []float32, p Params) {
	compositeLegacy(in, layer, mask, out, p, differenceChannel, nil)
}

func processAddition(in, layer, mask, out []float32, p Params) {
	compositeLegacy(in, layer, mask, out, p, additionChannel, nil)
}

func processSubtract(in, layer, mask, out []float32, p Params) {
	compositeLegacy(in, layer, mask, out, p, subtractChannel, nil)
}

func processDarkenOnly(in, layer, mask, out []float32, p Params) {
	compositeLegacy(in, layer, mask, out, p, darkenChannel, nil)
}

func processLightenOnly(in, layer, mask, out []float32, p Params) {
	compositeLegacy(in, layer, mask, out, p, lightenChannel, nil)
}

func processDivide(in, layer, mask, out []float32, p Params) {
	compositeLegacy(in, layer, mask, out, p, divideChannel, nil)
}

func processDodge(in, layer, mask, out []float32, p Params) {
	compositeLegacy(in, layer, mask, out, p, dodgeChannel, nil)
}

func processBurn(in, layer, mask, out []float32, p Params) {
	compositeLegacy(in, layer, mask, out, p, burnChannel, nil)
}

func processHardLight(in, layer, mask, out []float32, p Params) {
	compositeLegacy(in, layer, mask, out, p, hardLightChannel, nil)
}

func processSoftLight(in, layer, mask, out []float32, p Params) {
	compositeLegacy(in, layer, mask, out, p, softLightChannel, nil)
}

func processGrainExtract(in, layer, mask, out []float32, p Params) {
	compositeLegacy(in, layer, mask, out, p, grainExtractChannel, nil)
}

func processGrainMerge(in, layer, mask, out []float32, p Params) {
	compositeLegacy(in, layer, mask, out, p, grainMergeChannel, nil)
}

// multiplyChannel: in * layer
func multiplyChannel(in, layer float32) float32 {
	return clamp01(in * layer)
}

// screenChannel: 1 - (1 - in) * (1 - layer)
func screenChannel(in, layer float32) float32 {
	return clamp01(1 - (1-in)*(1-layer))
}

// overlayChannel multiplies or screens depending on the backdrop.
func overlayChannel(in, layer float32) float32 {
	if in < 0.5 {
		return clamp01(2 * in * layer)
	}
	return clamp01(1 - 2*(1-layer)*(1-in))
}

func differenceChannel(in, layer float32) float32 {
	return absf(in - layer)
}

func additionChannel(in, layer float32) float32 {
	return clamp01(in + layer)
}

func subtractChannel(in, layer float32) float32 {
	return clamp01(in - layer)
}

func darkenChannel(in, layer float32) float32 {
	return min(in, layer)
}

func lightenChannel(in, layer float32) float32 {
	return max(in, layer)
}

// divideChannel: in / layer, saturating at 1.
func divideChannel(in, layer float32) float32 {
	return clamp01(divideScale * in / (divideBias + layer))
}

// dodgeChannel: in / (1 - layer), saturating at 1.
func dodgeChannel(in, layer float32) float32 {
	if layer >= 1 {
		if in > 0 {
			return 1
		}
		return 0
	}
	return clamp01(in / (1 - layer))
}

// burnChannel: 1 - (1 - in) / layer, clamped.
func burnChannel(in, layer float32) float32 {
	if layer <= 0 {
		if in >= 1 {
			return 1
		}
		return 0
	}
	return clamp01(1 - (1-in)/layer)
}

// hardLightChannel multiplies or screens depending on the layer.
func hardLightChannel(in, layer float32) float32 {
	if layer > 0.5 {
		return clamp01(1 - (1-in)*(1-(layer-0.5)*2))
	}
	return clamp01(in * layer * 2)
}

// softLightChannel mixes multiply and screen weighted by the backdrop.
func softLightChannel(in, layer float32) float32 {
	multiply := in * layer
	screen := 1 - (1-in)*(1-layer)
	return clamp01((1-in)*multiply + in*screen)
}

func grainExtractChannel(in, layer float32) float32 {
	return clamp01(in - layer + 0.5)
}

func grainMergeChannel(in, layer float32) float32 {
	return clamp01(in + layer - 0.5)
}
