package layermode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// ErrUnknownMode is returned by ParseMode for a name that is not a mode.
var ErrUnknownMode = errors.New("layermode: unknown mode")

// Mode identifies how a layer is combined with the pixels beneath it.
//
// Values are stored in image documents and are never renumbered.
type Mode int32

// Layer modes.
const (
	ModeNormal   Mode = 0
	ModeDissolve Mode = 1
	ModeBehind   Mode = 2

	// Legacy modes, kept so that older documents render unchanged.
	ModeMultiplyLegacy      Mode = 3
	ModeScreenLegacy        Mode = 4
	ModeOverlayLegacy       Mode = 5
	ModeDifferenceLegacy    Mode = 6
	ModeAdditionLegacy      Mode = 7
	ModeSubtractLegacy      Mode = 8
	ModeDarkenOnlyLegacy    Mode = 9
	ModeLightenOnlyLegacy   Mode = 10
	ModeHSVHueLegacy        Mode = 11
	ModeHSVSaturationLegacy Mode = 12
	ModeHSVColorLegacy      Mode = 13
	ModeHSVValueLegacy      Mode = 14
	ModeDivideLegacy        Mode = 15
	ModeDodgeLegacy         Mode = 16
	ModeBurnLegacy          Mode = 17
	ModeHardlightLegacy     Mode = 18
	ModeSoftlightLegacy     Mode = 19
	ModeGrainExtractLegacy  Mode = 20
	ModeGrainMergeLegacy    Mode = 21

	ModeColorErase   Mode = 22
	ModeOverlay      Mode = 23
	ModeLCHHue       Mode = 24
	ModeLCHChroma    Mode = 25
	ModeLCHColor     Mode = 26
	ModeLCHLightness Mode = 27

	// Internal modes used by tools; never stored as a layer's mode.
	ModeErase     Mode = 1000
	ModeReplace   Mode = 1001
	ModeAntiErase Mode = 1002
)

// modeList holds every member in ascending numeric order.
var modeList = []Mode{
	ModeNormal, ModeDissolve, ModeBehind,
	ModeMultiplyLegacy, ModeScreenLegacy, ModeOverlayLegacy,
	ModeDifferenceLegacy, ModeAdditionLegacy, ModeSubtractLegacy,
	ModeDarkenOnlyLegacy, ModeLightenOnlyLegacy,
	ModeHSVHueLegacy, ModeHSVSaturationLegacy, ModeHSVColorLegacy, ModeHSVValueLegacy,
	ModeDivideLegacy, ModeDodgeLegacy, ModeBurnLegacy,
	ModeHardlightLegacy, ModeSoftlightLegacy,
	ModeGrainExtractLegacy, ModeGrainMergeLegacy,
	ModeColorErase, ModeOverlay,
	ModeLCHHue, ModeLCHChroma, ModeLCHColor, ModeLCHLightness,
	ModeErase, ModeReplace, ModeAntiErase,
}

var modeNames = map[Mode]string{
	ModeNormal:              "normal",
	ModeDissolve:            "dissolve",
	ModeBehind:              "behind",
	ModeMultiplyLegacy:      "multiply-legacy",
	ModeScreenLegacy:        "screen-legacy",
	ModeOverlayLegacy:       "overlay-legacy",
	ModeDifferenceLegacy:    "difference-legacy",
	ModeAdditionLegacy:      "addition-legacy",
	ModeSubtractLegacy:      "subtract-legacy",
	ModeDarkenOnlyLegacy:    "darken-only-legacy",
	ModeLightenOnlyLegacy:   "lighten-only-legacy",
	ModeHSVHueLegacy:        "hsv-hue-legacy",
	ModeHSVSaturationLegacy: "hsv-saturation-legacy",
	ModeHSVColorLegacy:      "hsv-color-legacy",
	ModeHSVValueLegacy:      "hsv-value-legacy",
	ModeDivideLegacy:        "divide-legacy",
	ModeDodgeLegacy:         "dodge-legacy",
	ModeBurnLegacy:          "burn-legacy",
	ModeHardlightLegacy:     "hardlight-legacy",
	ModeSoftlightLegacy:     "softlight-legacy",
	ModeGrainExtractLegacy:  "grain-extract-legacy",
	ModeGrainMergeLegacy:    "grain-merge-legacy",
	ModeColorErase:          "color-erase",
	ModeOverlay:             "overlay",
	ModeLCHHue:              "lch-hue",
	ModeLCHChroma:           "lch-chroma",
	ModeLCHColor:            "lch-color",
	ModeLCHLightness:        "lch-lightness",
	ModeErase:               "erase",
	ModeReplace:             "replace",
	ModeAntiErase:           "anti-erase",
}

var modesByName = func() map[string]Mode {
	m := make(map[string]Mode, len(modeNames))
	for mode, name := range modeNames {
		m[name] = mode
	}
	return m
}()

// Modes returns every known mode in ascending numeric order.
// The returned slice is a fresh copy.
func Modes() []Mode {
	out := make([]Mode, len(modeList))
	copy(out, modeList)
	return out
}

// Valid reports whether m is a member of the enumeration.
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// IsLegacy reports whether m is one of the legacy modes.
func (m Mode) IsLegacy() bool {
	return m >= ModeMultiplyLegacy && m <= ModeGrainMergeLegacy
}

// IsLCH reports whether m belongs to the LCH family, the only modes whose
// kernel depends on the linear flag.
func (m Mode) IsLCH() bool {
	return m >= ModeLCHHue && m <= ModeLCHLightness
}

// IsInternal reports whether m is a tool-only mode.
func (m Mode) IsInternal() bool {
	return m >= ModeErase && m <= ModeAntiErase
}

// String returns the canonical name of m, or Mode(N) for unknown values.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// MarshalText implements encoding.TextMarshaler.
// Unknown values are written as their decimal number so they survive a
// round trip through ParseMode.
func (m Mode) MarshalText() ([]byte, error) {
	if name, ok := modeNames[m]; ok {
		return []byte(name), nil
	}
	return strconv.AppendInt(nil, int64(m), 10), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ParseMode returns the mode with the given name.
//
// Matching ignores case, and '_' or ' ' may stand in for '-', so
// "LCH_Hue" and "lch hue" both parse as ModeLCHHue. A decimal number is
// accepted as the raw value, including values that are not members;
// Resolve handles those.
func ParseMode(name string) (Mode, error) {
	key := strings.TrimSpace(name)
	if key == "" {
		return 0, fmt.Errorf("%w: empty name", ErrUnknownMode)
	}

	key = cases.Fold().String(key)
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	if m, ok := modesByName[key]; ok {
		return m, nil
	}

	if n, err := strconv.ParseInt(key, 10, 32); err == nil {
		return Mode(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}
