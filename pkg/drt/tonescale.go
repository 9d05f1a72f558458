package drt

import(
	"fmt"
	"math"

	"github.com/abworrall/opendrt/pkg/ecolor"
	"github.com/abworrall/opendrt/pkg/emath"
)

// Tonescale holds the constants derived from TonescaleParams. The curve
// is a hyperbolic compression of the scene norm, scaled so scene X0 maps
// to display Y0 and scene X1 to peak, followed by a quadratic toe.
type Tonescale struct {
	X0, X1     float64 // scene grey (plus offset), scene value that reaches peak
	Y0, Y1     float64 // display grey, display peak; 1.0 == 100 nits
	S0, S10    float64
	M1, M2     float64
	S          float64 // hyperbolic scale for the tonescale norm
	S1         float64 // hyperbolic scale for the purity norm
	DisplayScale float64
	PurityLerp float64
	SLp100     float64 // what S would be for a 100 nit display

	Contrast   float64
	Toe        float64
}

func NewTonescale(t TonescaleParams, eotf ecolor.EOTF) Tonescale {
	ts := Tonescale{Contrast: t.Contrast, Toe: t.Toe}
	invCon := emath.SafeDiv(-1, t.Contrast)

	ts.X1 = math.Pow(2, 6*t.Shoulder + 4)
	ts.Y1 = t.PeakLuminance / 100
	ts.X0 = 0.18 + t.Offset
	ts.Y0 = t.GreyLuminance / 100 * (1 + t.GreyBoost*math.Log2(math.Max(ts.Y1, math.SmallestNonzeroFloat64)))

	ts.S0  = emath.CompressToeQuadratic(ts.Y0, t.Toe, true)
	ts.S10 = ts.X0 * (emath.SafePow(ts.S0, invCon) - 1)
	ts.M1  = emath.SafeDiv(ts.Y1, emath.SafePow(emath.SafeDiv(ts.X1, ts.X1 + ts.S10), t.Contrast))
	ts.M2  = emath.CompressToeQuadratic(ts.M1, t.Toe, true)
	ts.S   = ts.X0 * (emath.SafePow(emath.SafeDiv(ts.S0, ts.M2), invCon) - 1)

	switch eotf {
	case ecolor.EOTFPQ:  ts.DisplayScale = 0.01
	case ecolor.EOTFHLG: ts.DisplayScale = 0.1
	default:             ts.DisplayScale = emath.SafeDiv(100, t.PeakLuminance)
	}

	ts.PurityLerp = t.HDRPurity * math.Min(1, (t.PeakLuminance - 100)/900)
	ts.SLp100 = ts.X0 * (emath.SafePow(t.GreyLuminance/100, invCon) - 1)
	ts.S1 = ts.S*ts.PurityLerp + ts.SLp100*(1 - ts.PurityLerp)

	return ts
}

// Compress is the hyperbolic stage, applied to the tonescale norm.
func (ts Tonescale)Compress(x float64) float64 {
	return emath.CompressHyperbolicPower(x, ts.S, ts.Contrast)
}

// CompressPurity is the same curve with the purity scale.
func (ts Tonescale)CompressPurity(x float64) float64 {
	return emath.CompressHyperbolicPower(x, ts.S1, ts.Contrast)
}

// Finish applies the output scale and toe, and the display scale.
func (ts Tonescale)Finish(x float64) float64 {
	x *= ts.M2
	x = emath.CompressToeQuadratic(x, ts.Toe, false)
	return x * ts.DisplayScale
}

// Apply runs the full curve on a scene-linear norm, giving display
// linear light (before any display encoding).
func (ts Tonescale)Apply(x float64) float64 {
	return ts.Finish(ts.Compress(x))
}

func (ts Tonescale)String() string {
	return fmt.Sprintf("Tonescale{x0=%.4f x1=%.1f y0=%.4f y1=%.2f s=%.5f s1=%.5f m2=%.5f dsc=%.4f}",
		ts.X0, ts.X1, ts.Y0, ts.Y1, ts.S, ts.S1, ts.M2, ts.DisplayScale)
}
