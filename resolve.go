package layermode

import (
	"context"
	"log/slog"

	"github.com/gogpu/layermode/internal/blend"
)

// Kernel is a compositing routine. Handles are stable: the same mode and
// flag always resolve to the same pointer, so == compares kernels.
type Kernel = blend.Kernel

// KernelParams carries the per-call parameters of Kernel.Process.
type KernelParams = blend.Params

// fallbackMessage is logged when a mode has no kernel.
const fallbackMessage = "no direct function for layer mode, using normal mode"

// kernelPair holds the kernel for gamma-encoded and for linear input.
// Modes that ignore the linear flag store the same kernel twice.
type kernelPair struct {
	gamma  *Kernel
	linear *Kernel
}

func either(k *Kernel) kernelPair {
	return kernelPair{gamma: k, linear: k}
}

// kernelTable is built once at package initialization and never mutated.
var kernelTable = map[Mode]kernelPair{
	ModeNormal:   either(blend.Normal),
	ModeDissolve: either(blend.Dissolve),
	ModeBehind:   either(blend.Behind),

	ModeMultiplyLegacy:   either(blend.Multiply),
	ModeScreenLegacy:     either(blend.Screen),
	ModeOverlayLegacy:    either(blend.SoftLight), // historical: overlay rendered as soft light
	ModeDifferenceLegacy: either(blend.Difference),
	ModeAdditionLegacy:   either(blend.Addition),
	ModeSubtractLegacy:   either(blend.Subtract),

	ModeDarkenOnlyLegacy:    either(blend.DarkenOnly),
	ModeLightenOnlyLegacy:   either(blend.LightenOnly),
	ModeHSVHueLegacy:        either(blend.Hue),
	ModeHSVSaturationLegacy: either(blend.Saturation),
	ModeHSVColorLegacy:      either(blend.Color),
	ModeHSVValueLegacy:      either(blend.Value),
	ModeDivideLegacy:        either(blend.Divide),
	ModeDodgeLegacy:         either(blend.Dodge),
	ModeBurnLegacy:          either(blend.Burn),
	ModeHardlightLegacy:     either(blend.HardLight),
	ModeSoftlightLegacy:     either(blend.SoftLight),
	ModeGrainExtractLegacy:  either(blend.GrainExtract),
	ModeGrainMergeLegacy:    either(blend.GrainMerge),

	ModeColorErase: either(blend.ColorErase),
	ModeOverlay:    either(blend.Overlay),

	ModeLCHHue:       {gamma: blend.LCHHue, linear: blend.LCHHueLinear},
	ModeLCHChroma:    {gamma: blend.LCHChroma, linear: blend.LCHChromaLinear},
	ModeLCHColor:     {gamma: blend.LCHColor, linear: blend.LCHColorLinear},
	ModeLCHLightness: {gamma: blend.LCHLightness, linear: blend.LCHLightnessLinear},

	ModeErase:     either(blend.Erase),
	ModeReplace:   either(blend.Replace),
	ModeAntiErase: either(blend.AntiErase),
}

// Resolver maps modes to kernels and reports modes it cannot map.
//
// The zero value and a nil *Resolver are ready to use and log through the
// package logger.
//
// Thread safety: Resolver is safe for concurrent use.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver creates a Resolver with the given options.
func NewResolver(opts ...ResolverOption) *Resolver {
	var o resolverOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Resolver{logger: o.logger}
}

// Resolve returns the kernel for mode.
//
// linear selects the linear-light kernel for the LCH family and is ignored
// for every other mode. A mode with no kernel logs one warning and resolves
// to the normal kernel; Resolve never returns nil.
func (r *Resolver) Resolve(mode Mode, linear bool) *Kernel {
	if pair, ok := kernelTable[mode]; ok {
		if linear {
			return pair.linear
		}
		return pair.gamma
	}

	l := r.log()
	ctx := context.Background()
	if l.Enabled(ctx, slog.LevelWarn) {
		l.LogAttrs(ctx, slog.LevelWarn, fallbackMessage, slog.Int("mode", int(mode)))
	}
	return blend.Normal
}

func (r *Resolver) log() *slog.Logger {
	if r == nil || r.logger == nil {
		return Logger()
	}
	return r.logger
}

// Resolve returns the kernel for mode using the package logger for
// diagnostics. See [Resolver.Resolve].
func Resolve(mode Mode, linear bool) *Kernel {
	return (*Resolver)(nil).Resolve(mode, linear)
}
