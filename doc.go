// Package layermode maps layer blend modes to the compositing kernels that
// implement them.
//
// # Overview
//
// A layered image stores, for every layer, a blend mode identifier. When the
// image is rendered each layer is combined with the pixels beneath it by a
// compositing kernel. This package answers one question: given a mode and
// whether the layer composites in linear light, which kernel runs?
//
//	k := layermode.Resolve(layermode.ModeLCHHue, true)
//	k.Process(in, layer, mask, out, layermode.KernelParams{
//	    Opacity: 1,
//	    Samples: n,
//	})
//
// # Mode Identifiers
//
// [Mode] values are persisted in documents, so the numeric values are fixed
// forever. Modes 3 through 21 are the legacy formulas kept so that old files
// render unchanged; several of them deliberately share a kernel with another
// mode (overlay-legacy renders as soft light). Modes 1000 and above are
// internal and never appear in a layer's saved mode.
//
// # Linear Light
//
// Only the LCH family (lch-hue, lch-chroma, lch-color, lch-lightness) has a
// separate linear-light kernel. Every other mode ignores the linear flag.
//
// # Unknown Modes
//
// A value outside the enumeration (a newer file, a corrupt file) resolves to
// the normal kernel and logs one warning. Resolve never fails.
//
// # Concurrency
//
// Resolve is a read-only table lookup and is safe to call from any number of
// goroutines. Kernels are stateless and may run concurrently on disjoint
// pixel runs.
//
// # Architecture
//
// The module is organized into:
//   - Public API: Mode, Resolve, Resolver, Kernel
//   - compose: layers, stacks and the row compositor that calls Resolve
//   - Internal: blend (kernels), color (transfer functions), image (float
//     buffers and codecs), parallel (row band workers)
package layermode

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
