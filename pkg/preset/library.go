package preset

import(
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/abworrall/opendrt/pkg/drt"
	"github.com/abworrall/opendrt/pkg/ecolor"
)

var ErrUnknownPreset = errors.New("unknown preset")

// Curve is the basic tonescale shape; presets always overwrite it.
type Curve struct {
	GreyLuminance float64
	Contrast      float64
	Shoulder      float64
	Toe           float64
	Offset        float64
}

// A Look is a named bundle of module values, plus which modules it
// switches on. The Enable fields inside the module params are ignored;
// Enabled is what counts.
type Look struct {
	Name         string
	Curve        Curve
	Enabled      [drt.NumModules]bool
	Whitepoint   drt.WhitepointParams
	RenderSpace  drt.RenderSpaceParams
	HighContrast drt.HighContrastParams
	LowContrast  drt.LowContrastParams
	Purity       drt.PurityParams
	MidPurity    drt.MidPurityParams
	Brilliance   drt.BrillianceParams
	HueShiftRGB  drt.HueShiftRGBParams
	HueShiftCMY  drt.HueShiftCMYParams
	HueContrast  drt.HueContrastParams
}

// A Tonescale preset only carries the curve and the two contrast modules.
type Tonescale struct {
	Name         string
	Curve        Curve
	HighContrast drt.HighContrastParams
	LowContrast  drt.LowContrastParams
}

// Library holds the preset tables. Settings refer to looks by index, and
// to tonescales by index+1 (0 means "use the look").
type Library struct {
	Looks      []Look
	Tonescales []Tonescale
}

func enabled(mods ...drt.Module) [drt.NumModules]bool {
	ret := [drt.NumModules]bool{}
	for _, m := range mods {
		ret[m] = true
	}
	return ret
}

// DefaultLibrary returns a fresh copy of the stock presets.
func DefaultLibrary() *Library {
	return &Library{
		Looks: []Look{
			{
				Name:         "Default",
				Curve:        Curve{11.1, 1.4, 0.5, 0.003, 0.005},
				Enabled:      enabled(drt.LowContrast, drt.PurityLow, drt.MidPurity, drt.Brilliance, drt.HueShiftRGB, drt.HueShiftCMY, drt.HueContrast),
				Whitepoint:   drt.WhitepointParams{Whitepoint: ecolor.WhitepointD65, Range: 0.5},
				RenderSpace:  drt.RenderSpaceParams{Strength: 0.35, RedWeight: 0.25, BlueWeight: 0.55},
				HighContrast: drt.HighContrastParams{Amount: 0, Pivot: 1, Strength: 4},
				LowContrast:  drt.LowContrastParams{Amount: 1, Width: 0.5, PerChannel: 1},
				Purity:       drt.PurityParams{R: 0.5, G: 2, B: 2, RangeLow: 0.2, RangeHigh: 0.8},
				MidPurity:    drt.MidPurityParams{Low: 0.2, LowStrength: 0.5, High: -0.8, HighStrength: 0.3},
				Brilliance:   drt.BrillianceParams{R: -0.5, G: -0.4, B: -0.2, Range: 0.66},
				HueShiftRGB:  drt.HueShiftRGBParams{R: 0.35, G: 0.25, B: 0.5, Range: 0.6},
				HueShiftCMY:  drt.HueShiftCMYParams{C: 0.2, M: 0.2, Y: 0.2},
				HueContrast:  drt.HueContrastParams{R: 0.6},
			},
			{
				Name:         "Colorful",
				Curve:        Curve{11.1, 1.3, 0.5, 0.005, 0.005},
				Enabled:      enabled(drt.LowContrast, drt.PurityLow, drt.MidPurity, drt.Brilliance, drt.HueShiftRGB, drt.HueShiftCMY, drt.HueContrast),
				Whitepoint:   drt.WhitepointParams{Whitepoint: ecolor.WhitepointD65, Range: 0.5},
				RenderSpace:  drt.RenderSpaceParams{Strength: 0.35, RedWeight: 0.15, BlueWeight: 0.55},
				HighContrast: drt.HighContrastParams{Amount: 0, Pivot: 1, Strength: 4},
				LowContrast:  drt.LowContrastParams{Amount: 0.75, Width: 1, PerChannel: 1},
				Purity:       drt.PurityParams{R: 0.5, G: 0.8, B: 0.5, RangeLow: 0.25, RangeHigh: 0.5},
				MidPurity:    drt.MidPurityParams{Low: 0.5, LowStrength: 0.5, High: -0.8, HighStrength: 0.3},
				Brilliance:   drt.BrillianceParams{R: -0.55, G: -0.5, B: 0, C: 0, M: 0, Y: 0.1, Range: 0.5},
				HueShiftRGB:  drt.HueShiftRGBParams{R: 0.4, G: 0.6, B: 0.5, Range: 0.6},
				HueShiftCMY:  drt.HueShiftCMYParams{C: 0.2, M: 0.1, Y: 0.2},
				HueContrast:  drt.HueContrastParams{R: 0.8},
			},
			{
				Name:         "Umbra",
				Curve:        Curve{6, 1.8, 0.5, 0.001, 0.015},
				Enabled:      enabled(drt.LowContrast, drt.PurityLow, drt.MidPurity, drt.Brilliance, drt.HueShiftRGB, drt.HueShiftCMY, drt.HueContrast),
				Whitepoint:   drt.WhitepointParams{Whitepoint: ecolor.WhitepointD50, Range: 0.8},
				RenderSpace:  drt.RenderSpaceParams{Strength: 0.45, RedWeight: 0.1, BlueWeight: 0.35},
				HighContrast: drt.HighContrastParams{Amount: 0, Pivot: 1, Strength: 4},
				LowContrast:  drt.LowContrastParams{Amount: 1, Width: 1, PerChannel: 1},
				Purity:       drt.PurityParams{R: 0.1, G: 0.4, B: 2.5, RangeLow: 0.2, RangeHigh: 0.8},
				MidPurity:    drt.MidPurityParams{Low: 0.4, LowStrength: 0.5, High: -0.8, HighStrength: 0.3},
				Brilliance:   drt.BrillianceParams{R: -0.7, G: -0.6, B: -0.2, C: 0, M: -0.25, Y: 0.1, Range: 0.9},
				HueShiftRGB:  drt.HueShiftRGBParams{R: 0.4, G: 0.8, B: 0.4, Range: 1},
				HueShiftCMY:  drt.HueShiftCMYParams{C: 1, M: 0.6, Y: 1},
				HueContrast:  drt.HueContrastParams{R: 0.8},
			},
			{
				Name:         "Base",
				Curve:        Curve{11.1, 1.4, 0.5, 0.003, 0},
				Enabled:      enabled(drt.PurityLow),
				Whitepoint:   drt.WhitepointParams{Whitepoint: ecolor.WhitepointD65, Range: 0.5},
				RenderSpace:  drt.RenderSpaceParams{Strength: 0.35, RedWeight: 0.25, BlueWeight: 0.5},
				HighContrast: drt.HighContrastParams{Amount: 0, Pivot: 1, Strength: 4},
				LowContrast:  drt.LowContrastParams{Amount: 0, Width: 0.5, PerChannel: 1},
				Purity:       drt.PurityParams{R: 1, G: 2, B: 2.5, RangeLow: 0.25, RangeHigh: 0.25},
				MidPurity:    drt.MidPurityParams{Low: 0, LowStrength: 0.5, High: 0, HighStrength: 0.3},
				Brilliance:   drt.BrillianceParams{Range: 0.5},
				HueShiftRGB:  drt.HueShiftRGBParams{Range: 0.5},
				HueShiftCMY:  drt.HueShiftCMYParams{},
				HueContrast:  drt.HueContrastParams{R: 0},
			},
		},

		Tonescales: []Tonescale{
			{"High-Contrast",        Curve{11.1, 1.4, 0.5, 0.003, 0.005},   hcon(0, 1, 4),       lcon(1, 0.5, 1)},
			{"Low-Contrast",         Curve{11.1, 1.4, 0.5, 0.003, 0.005},   hcon(0, 1, 4),       lcon(0, 0.5, 1)},
			{"ACES-1.x",             Curve{10, 1, 0.245, 0.02, 0},          hcon(0.55, 0, 2),    lcon(1.13, 1, 1)},
			{"ACES-2.0",             Curve{10, 1.15, 0.5, 0.04, 0},         hcon(1, 1, 1),       lcon(1, 0.6, 1)},
			{"Marvelous Tonescape",  Curve{6, 1.5, 0.5, 0.003, 0.01},       hcon(0.25, 0, 4),    lcon(1, 1, 1)},
			{"Arriba Tonecall",      Curve{11.1, 1.05, 0.5, 0.1, 0.015},    hcon(0, 0, 2),       lcon(2, 0.2, 1)},
			{"DaGrinchi Tonegroan",  Curve{10.42, 1.2, 0.5, 0.02, 0},       hcon(0, 1, 1),       lcon(0, 0.6, 1)},
			{"Aery Tonescale",       Curve{11.1, 1.15, 0.5, 0.04, 0.006},   hcon(0, 0, 0.5),     lcon(0.5, 2, 0.5)},
			{"Umbra Tonescale",      Curve{6, 1.8, 0.5, 0.001, 0.015},      hcon(0, 1, 4),       lcon(1, 1, 1)},
		},
	}
}

func hcon(amount, pivot, strength float64) drt.HighContrastParams {
	return drt.HighContrastParams{Amount: amount, Pivot: pivot, Strength: strength}
}

func lcon(amount, width, perChannel float64) drt.LowContrastParams {
	return drt.LowContrastParams{Amount: amount, Width: width, PerChannel: perChannel}
}

// Look returns the look at index i; ok is false for "no look".
func (l *Library)Look(i int) (Look, bool) {
	if i < 0 || i >= len(l.Looks) {
		return Look{}, false
	}
	return l.Looks[i], true
}

// Tonescale takes the settings index: 0 is "use the look", so there is
// nothing to return.
func (l *Library)Tonescale(i int) (Tonescale, bool) {
	if i < 1 || i > len(l.Tonescales) {
		return Tonescale{}, false
	}
	return l.Tonescales[i-1], true
}

func matchName(s, name string) bool {
	norm := func(x string) string {
		return strings.Map(func(r rune) rune {
			if r == ' ' || r == '-' || r == '_' || r == '.' {
				return -1
			}
			return r
		}, strings.ToLower(x))
	}
	return norm(s) == norm(name)
}

// LookIndex accepts an index or a name ("umbra", "Colorful").
func (l *Library)LookIndex(s string) (int, error) {
	if i, err := strconv.Atoi(s); err == nil {
		return i, nil
	}
	for i, look := range l.Looks {
		if matchName(s, look.Name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("look '%s': %w", s, ErrUnknownPreset)
}

// TonescaleIndex accepts an index, a name, or "look" / "" for 0.
func (l *Library)TonescaleIndex(s string) (int, error) {
	if i, err := strconv.Atoi(s); err == nil {
		return i, nil
	}
	if s == "" || matchName(s, "look") || matchName(s, "use look preset") {
		return 0, nil
	}
	for i, ts := range l.Tonescales {
		if matchName(s, ts.Name) {
			return i+1, nil
		}
	}
	return 0, fmt.Errorf("tonescale '%s': %w", s, ErrUnknownPreset)
}

func (l *Library)String() string {
	str := "Looks:\n"
	for i, look := range l.Looks {
		str += fmt.Sprintf("  %d %s\n", i, look.Name)
	}
	str += "Tonescales:\n  0 (use look)\n"
	for i, ts := range l.Tonescales {
		str += fmt.Sprintf("  %d %s\n", i+1, ts.Name)
	}
	return str
}
