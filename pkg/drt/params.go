package drt

import(
	"fmt"
	"strings"

	"github.com/abworrall/opendrt/pkg/ecolor"
)

// Enable is the pair of switches every optional module carries. UI is
// the user's checkbox, Preset comes from the selected look preset. The
// module runs if either is set.
type Enable struct {
	UI     bool
	Preset bool
}

func (e Enable)Active() bool { return e.UI || e.Preset }

func (e Enable)String() string {
	return fmt.Sprintf("ui=%v,preset=%v", e.UI, e.Preset)
}

// Module names the eight optional stages of the pipeline.
type Module int

const(
	HighContrast Module = iota
	LowContrast
	PurityLow
	MidPurity
	Brilliance
	HueShiftRGB
	HueShiftCMY
	HueContrast
	NumModules = int(HueContrast) + 1
)

var moduleNames = []string{"high contrast", "low contrast", "purity compress low", "mid purity",
	"brilliance", "hue shift rgb", "hue shift cmy", "hue contrast"}

func (m Module)String() string {
	if m < 0 || int(m) >= NumModules {
		return fmt.Sprintf("module(%d)", int(m))
	}
	return moduleNames[m]
}

// ParseModule matches a module name, ignoring case and spaces, so
// "HueShiftRGB" and "hue shift rgb" both work.
func ParseModule(s string) (Module, error) {
	squash := func(x string) string { return strings.ToLower(strings.ReplaceAll(x, " ", "")) }
	for i, name := range moduleNames {
		if squash(s) == squash(name) {
			return Module(i), nil
		}
	}
	return 0, fmt.Errorf("no module named '%s'", s)
}

type TonescaleParams struct {
	PeakLuminance float64 // Lp, display peak in nits
	GreyBoost     float64 // gb, lifts grey as peak rises
	HDRPurity     float64 // lerps the purity tonescale towards the 100 nit curve
	GreyLuminance float64 // Lg, display nits for scene 0.18
	Contrast      float64
	Shoulder      float64
	Toe           float64
	Offset        float64
}

// RenderSpace sets how wide the working gamut looks to the ratio math.
type RenderSpaceParams struct {
	Strength   float64 // rs_sa
	RedWeight  float64
	BlueWeight float64
}

type WhitepointParams struct {
	Whitepoint ecolor.Whitepoint
	Range      float64
}

type HighContrastParams struct {
	Enable   Enable
	Amount   float64 // in stops; the power is 2^Amount
	Pivot    float64 // stops above 0.18
	Strength float64 // stops of range above the pivot before going linear
}

type LowContrastParams struct {
	Enable     Enable
	Amount     float64
	Width      float64
	PerChannel float64
}

// The purity weights always feed the purity norm; Enable only gates the
// low-end softplus compression.
type PurityParams struct {
	Enable    Enable
	R, G, B   float64
	RangeLow  float64
	RangeHigh float64
}

type MidPurityParams struct {
	Enable       Enable
	Low          float64
	LowStrength  float64
	High         float64
	HighStrength float64
}

type BrillianceParams struct {
	Enable           Enable
	R, G, B, C, M, Y float64
	Range            float64
}

type HueShiftRGBParams struct {
	Enable  Enable
	R, G, B float64
	Range   float64
}

type HueShiftCMYParams struct {
	Enable  Enable
	C, M, Y float64
}

type HueContrastParams struct {
	Enable Enable
	R      float64
}

// Filmic is a beta feature; it only runs when Params.BetaFeatures is set too.
type FilmicParams struct {
	Enabled      bool
	SourceStops  float64
	TargetStops  float64
	DynamicRange float64
	Strength     float64
}

type DiagnosticsParams struct {
	TonescaleMap bool // draw the tonescale curve over the image
	GreyRamp     bool // bottom 100 rows become a grey ramp
	RGBChips     bool // whole frame becomes seven ramps: R Y G C B M grey
}

// Params is everything the kernel needs for one frame. It is built once
// and then only read.
type Params struct {
	InputGamut   ecolor.Gamut
	InputOETF    ecolor.OETF
	DisplayGamut ecolor.DisplayGamut
	EOTF         ecolor.EOTF
	Clamp        bool

	Tonescale    TonescaleParams
	RenderSpace  RenderSpaceParams
	Whitepoint   WhitepointParams

	HighContrast HighContrastParams
	LowContrast  LowContrastParams
	Purity       PurityParams
	MidPurity    MidPurityParams
	Brilliance   BrillianceParams
	HueShiftRGB  HueShiftRGBParams
	HueShiftCMY  HueShiftCMYParams
	HueContrast  HueContrastParams

	Filmic       FilmicParams
	BetaFeatures bool
	Diagnostics  DiagnosticsParams
}

func (p *Params)enablePtr(m Module) *Enable {
	switch m {
	case HighContrast: return &p.HighContrast.Enable
	case LowContrast:  return &p.LowContrast.Enable
	case PurityLow:    return &p.Purity.Enable
	case MidPurity:    return &p.MidPurity.Enable
	case Brilliance:   return &p.Brilliance.Enable
	case HueShiftRGB:  return &p.HueShiftRGB.Enable
	case HueShiftCMY:  return &p.HueShiftCMY.Enable
	case HueContrast:  return &p.HueContrast.Enable
	}
	return nil
}

func (p Params)Enable(m Module) Enable {
	if e := p.enablePtr(m); e != nil {
		return *e
	}
	return Enable{}
}

func (p *Params)SetEnable(m Module, e Enable) {
	if ep := p.enablePtr(m); ep != nil {
		*ep = e
	}
}

// Active is the single place module enablement gets decided.
func (p Params)Active(m Module) bool {
	return p.Enable(m).Active()
}

// IsIdentity reports whether a frame can skip the kernel entirely: no
// module can run and nothing clamps.
func IsIdentity(p Params) bool {
	if p.Clamp {
		return false
	}
	for m:=Module(0); int(m)<NumModules; m++ {
		if p.Active(m) {
			return false
		}
	}
	return true
}

func (p Params)FilmicActive() bool {
	return p.Filmic.Enabled && p.BetaFeatures
}

func (p Params)String() string {
	str := fmt.Sprintf("Params{in=%s/%s out=%s/%s clamp=%v",
		p.InputGamut, p.InputOETF, p.DisplayGamut, p.EOTF, p.Clamp)
	for m:=Module(0); int(m)<NumModules; m++ {
		if p.Active(m) {
			str += fmt.Sprintf(" +%s", m)
		}
	}
	return str + "}"
}
