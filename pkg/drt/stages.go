package drt

import(
	"math"

	"github.com/abworrall/opendrt/pkg/emath"
)

// Standalone pieces of the pipeline. The kernel calls these; they are
// exported so tests and charts can look at one stage at a time.

// Coord locates a pixel for the test patterns and the overlay. The
// origin is bottom-left, as in the host image buffers.
type Coord struct {
	X, Y          int
	Width, Height int
}

// TestPattern replaces the source pixel when a diagnostic pattern covers
// this position. The chips pattern wins over the grey ramp.
func TestPattern(d DiagnosticsParams, rgb emath.Vec3, c Coord) emath.Vec3 {
	ramp := emath.SafeDiv(float64(c.X), float64(c.Width - 1))

	if d.GreyRamp && c.Y < 100 {
		rgb = emath.Vec3{ramp, ramp, ramp}
	}

	if d.RGBChips {
		band := 0
		if c.Height > 0 {
			band = c.Y * 7 / c.Height
		}
		switch band {
		case 0:  rgb = emath.Vec3{ramp, 0, 0}
		case 1:  rgb = emath.Vec3{ramp, ramp, 0}
		case 2:  rgb = emath.Vec3{0, ramp, 0}
		case 3:  rgb = emath.Vec3{0, ramp, ramp}
		case 4:  rgb = emath.Vec3{0, 0, ramp}
		case 5:  rgb = emath.Vec3{ramp, 0, ramp}
		default: rgb = emath.Vec3{ramp, ramp, ramp}
		}
	}

	return rgb
}

// RenderSpaceWeights gives the luminance weights of the render space;
// green takes whatever red and blue leave.
func RenderSpaceWeights(rs RenderSpaceParams) emath.Vec3 {
	return emath.Vec3{rs.RedWeight, 1 - rs.RedWeight - rs.BlueWeight, rs.BlueWeight}
}

// Desaturate blends rgb towards its weighted luminance by strength.
func Desaturate(rgb, w emath.Vec3, strength float64) emath.Vec3 {
	l := rgb.Dot(w)
	return emath.Vec3{l, l, l}.Scale(strength).Add(rgb.Scale(1 - strength))
}

// InvertDesaturate undoes Desaturate for weights that sum to one. At
// strength 1 nothing of the input survives, and black comes back.
func InvertDesaturate(rgb, w emath.Vec3, strength float64) emath.Vec3 {
	l := rgb.Dot(w)
	return emath.SafeDiv3(emath.Vec3{l, l, l}.Scale(strength).Sub(rgb), strength - 1)
}

// Opponent derives the achromatic distance and hue angle of a set of
// RGB ratios. Hue is rotated so red sits near zero, in [0, 2π).
func Opponent(rgb emath.Vec3) (achD, hue float64) {
	cy := rgb[0] - rgb[2]
	gm := rgb[1] - (rgb[0] + rgb[2])/2
	achD = math.Sqrt(math.Max(0, cy*cy + gm*gm)) / math.Sqrt(3)
	achD = 1.25 * emath.CompressToeQuadratic(achD, 0.25, false)

	hue = emath.PositiveMod(math.Atan2(cy, gm) + math.Pi + 1.10714931, 2*math.Pi)
	return achD, hue
}

// Anchor hues and window widths for the six hue weights.
var(
	hueAnchorsRGB = emath.Vec3{0.1, 4.3, 2.3}
	hueAnchorsCMY = emath.Vec3{3.3, 1.3, -1.2}
)
const(
	hueWidthRGB = 0.9
	hueWidthCMY = 0.6
)

// HueWeights returns how close a hue is to each primary and secondary.
func HueWeights(hue float64) (rgb, cmy emath.Vec3) {
	for i:=0; i<3; i++ {
		rgb[i] = emath.GaussWindow(emath.HueOffset(hue, hueAnchorsRGB[i]), hueWidthRGB)
		cmy[i] = emath.GaussWindow(emath.HueOffset(hue, hueAnchorsCMY[i]), hueWidthCMY)
	}
	return
}

// PurityCompressionRange is how much of the ratio survives (1) versus
// going to grey (0), before the mid purity scale is folded in.
func PurityCompressionRange(p PurityParams, tsPt, achD float64) float64 {
	cmp := 1 - emath.SafePow(tsPt, emath.SafeDiv(1, p.RangeLow))

	f := math.Min(1, achD/1.2)
	f *= f
	if p.RangeHigh < 1 {
		f = 1 - f
	}
	return emath.SafePow(cmp, p.RangeHigh)*(1 - f) + cmp*f
}

// BrillianceFactor is the brightness multiplier for a pixel's hue,
// already limited by the tonescale. It is always within [0,2].
func BrillianceFactor(b BrillianceParams, haRGB, haCMY emath.Vec3, achD, tsPt float64) float64 {
	f := -b.R*haRGB[0] - b.G*haRGB[1] - b.B*haRGB[2] - b.C*haCMY[0] - b.M*haCMY[1] - b.Y*haCMY[2]
	f = (1 - achD)*f + 1 - f
	f = emath.Softplus(f, 0.25, -100, 0)

	ts := tsPt
	if f > 1 {
		ts = 1 - tsPt
	}
	lim := emath.SafePow(ts, 1 - b.Range)
	f = f*lim + 1 - lim

	if math.IsNaN(f) {
		return 1
	}
	return emath.Clamp(f, 0, 2)
}

// MidPurityScale boosts low purity and damps high purity, gated on the
// tonescale purity.
func MidPurityScale(m MidPurityParams, achD, tsPt float64) float64 {
	d := emath.ComplementPower(achD, m.LowStrength)
	sc := emath.SigmoidCubic(d, m.Low*(1 - tsPt))

	d = emath.ComplementPower(achD, m.HighStrength)*(1 - tsPt) + achD*achD*tsPt
	sc *= emath.SigmoidCubic(d, m.High*tsPt)

	return math.Max(0, sc)
}

// HueContrastFactor scales G and B near red, fading out at both very low
// and very high purity.
func HueContrastFactor(r float64, haR, achD, tsPt float64) float64 {
	ts := 1 - tsPt
	c := (1 - achD)*ts + achD*(1 - ts)
	c *= haR
	ts *= ts
	return r*(c - 2*c*ts) + 1
}

// rotateShift turns per-hue pushes into a rotation of the ratios.
func rotateShift(v emath.Vec3) emath.Vec3 {
	return emath.Vec3{v[2] - v[1], v[0] - v[2], v[1] - v[0]}
}

func HueShiftRGBVector(h HueShiftRGBParams, haRGB emath.Vec3, tsPt float64) emath.Vec3 {
	hs := haRGB.Scale(emath.SafePow(tsPt, emath.SafeDiv(1, h.Range)))
	return rotateShift(emath.Vec3{hs[0]*h.R, hs[1] * -h.G, hs[2] * -h.B})
}

func HueShiftCMYVector(h HueShiftCMYParams, haCMY emath.Vec3, tsPt float64) emath.Vec3 {
	hs := haCMY.Scale(1 - tsPt)
	return rotateShift(emath.Vec3{hs[0] * -h.C, hs[1]*h.M, hs[2]*h.Y})
}

// CompressPurityLow softly floors each channel, then rescales so the
// channel sum does not grow.
func CompressPurityLow(rgb emath.Vec3) emath.Vec3 {
	sum0 := emath.Softplus(rgb[0], 0.2, -100, -0.3) + rgb[1] + emath.Softplus(rgb[2], 0.2, -100, -0.3)
	rgb = emath.Vec3{
		emath.Softplus(rgb[0], 0.04, -0.3, 0),
		emath.Softplus(rgb[1], 0.06, -0.3, 0),
		emath.Softplus(rgb[2], 0.01, -0.05, 0),
	}
	norm := math.Min(1, emath.SafeDiv(sum0, rgb[0] + rgb[1] + rgb[2]))
	return rgb.Scale(norm)
}

// Filmic compresses towards a smaller stop range, blended by strength.
func Filmic(f FilmicParams, x float64) float64 {
	maxIn  := math.Pow(2, f.SourceStops)
	maxOut := math.Pow(2, f.TargetStops)
	s := 0.05 + f.DynamicRange/10
	p := 0.8 + f.DynamicRange/25
	c := emath.CompressHyperbolicPower(x/maxIn, s, p) * maxOut
	return x*(1 - f.Strength) + c*f.Strength
}
