// Package blend implements the compositing kernels behind every layer mode.
//
// A kernel combines a run of backdrop pixels (in) with a run of layer pixels
// and writes the result to out. Pixels are non-premultiplied RGBA float32
// quadruples in [0, 1]. Whether RGB is gamma-encoded or linear light is
// decided by the caller; only the LCH kernels care, and they come in one
// variant per encoding.
//
// Kernels are stateless and registered once as package-level values, so a
// *Kernel is a stable handle: two handles are the same kernel exactly when
// the pointers are equal.
//
// References:
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
//   - CIE 1976 L*a*b* and its cylindrical LCh(ab) form
package blend

import "image"

// Channel offsets within an RGBA quadruple.
const (
	red   = 0
	green = 1
	blue  = 2
	alpha = 3
)

// Params carries the per-call parameters of a kernel invocation.
type Params struct {
	// Opacity of the layer in [0, 1].
	Opacity float32

	// Samples is the number of pixels to process.
	Samples int

	// ROI is the region the pixels belong to, laid out row-major.
	// Only position-dependent kernels (dissolve) read it.
	ROI image.Rectangle

	// Level is the mipmap level of the pixels; positions are scaled by
	// 1<<Level before sampling position-dependent noise.
	Level int
}

// Func is the signature of a kernel's pixel routine.
//
// in, layer and out hold Samples RGBA quadruples. mask is nil or holds
// Samples coverage values. out may alias in.
type Func func(in, layer, mask, out []float32, p Params)

// Kernel is an immutable, named compositing routine.
type Kernel struct {
	name    string
	process Func
}

func newKernel(name string, process Func) *Kernel {
	return &Kernel{name: name, process: process}
}

// Name returns the kernel's registered name.
func (k *Kernel) Name() string {
	return k.name
}

// String implements fmt.Stringer.
func (k *Kernel) String() string {
	return k.name
}

// Process runs the kernel over p.Samples pixels.
func (k *Kernel) Process(in, layer, mask, out []float32, p Params) {
	if p.Samples <= 0 {
		return
	}
	k.process(in, layer, mask, out, p)
}

// Kernel catalog. Every value is registered once and never mutated.
var (
	Normal   = newKernel("normal", processNormal)
	Dissolve = newKernel("dissolve", processDissolve)
	Behind   = newKernel("behind", processBehind)

	Multiply     = newKernel("multiply", processMultiply)
	Screen       = newKernel("screen", processScreen)
	Overlay      = newKernel("overlay", processOverlay)
	Difference   = newKernel("difference", processDifference)
	Addition     = newKernel("addition", processAddition)
	Subtract     = newKernel("subtract", processSubtract)
	DarkenOnly   = newKernel("darken-only", processDarkenOnly)
	LightenOnly  = newKernel("lighten-only", processLightenOnly)
	Divide       = newKernel("divide", processDivide)
	Dodge        = newKernel("dodge", processDodge)
	Burn         = newKernel("burn", processBurn)
	HardLight    = newKernel("hardlight", processHardLight)
	SoftLight    = newKernel("softlight", processSoftLight)
	GrainExtract = newKernel("grain-extract", processGrainExtract)
	GrainMerge   = newKernel("grain-merge", processGrainMerge)

	Hue        = newKernel("hue", processHue)
	Saturation = newKernel("saturation", processSaturation)
	Color      = newKernel("color", processColor)
	Value      = newKernel("value", processValue)

	ColorErase = newKernel("color-erase", processColorErase)

	LCHHue             = newKernel("lch-hue", processLCHHue)
	LCHHueLinear       = newKernel("lch-hue-linear", processLCHHueLinear)
	LCHChroma          = newKernel("lch-chroma", processLCHChroma)
	LCHChromaLinear    = newKernel("lch-chroma-linear", processLCHChromaLinear)
	LCHColor           = newKernel("lch-color", processLCHColor)
	LCHColorLinear     = newKernel("lch-color-linear", processLCHColorLinear)
	LCHLightness       = newKernel("lch-lightness", processLCHLightness)
	LCHLightnessLinear = newKernel("lch-lightness-linear", processLCHLightnessLinear)

	Erase     = newKernel("erase", processErase)
	Replace   = newKernel("replace", processReplace)
	AntiErase = newKernel("anti-erase", processAntiErase)
)

// Catalog returns every registered kernel.
func Catalog() []*Kernel {
	return []*Kernel{
		Normal, Dissolve, Behind,
		Multiply, Screen, Overlay, Difference, Addition, Subtract,
		DarkenOnly, LightenOnly, Divide, Dodge, Burn, HardLight, SoftLight,
		GrainExtract, GrainMerge,
		Hue, Saturation, Color, Value,
		ColorErase,
		LCHHue, LCHHueLinear, LCHChroma, LCHChromaLinear,
		LCHColor, LCHColorLinear, LCHLightness, LCHLightnessLinear,
		Erase, Replace, AntiErase,
	}
}
