package drt

import(
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abworrall/opendrt/pkg/ecolor"
	"github.com/abworrall/opendrt/pkg/emath"
)

func TestDesaturateRoundTrip(t *testing.T) {
	rgbs := []emath.Vec3{{0.18, 0.18, 0.18}, {1, 0, 0}, {-0.2, 0.5, 3}, {0, 0, 0}, {12, 0.001, 7}}
	for _, rs := range []RenderSpaceParams{
		{Strength: 0.35, RedWeight: 0.25, BlueWeight: 0.55},
		{Strength: 0.45, RedWeight: 0.1, BlueWeight: 0.35},
		{Strength: 0, RedWeight: 0.3, BlueWeight: 0.3},
		{Strength: 0.9, RedWeight: 0.6, BlueWeight: 0.1},
		{Strength: -0.5, RedWeight: 0.2, BlueWeight: 0.2},
	} {
		w := RenderSpaceWeights(rs)
		for _, rgb := range rgbs {
			got := InvertDesaturate(Desaturate(rgb, w, rs.Strength), w, rs.Strength)
			for i := range rgb {
				assert.InDelta(t, rgb[i], got[i], 1e-9, "%+v %s", rs, rgb)
			}
		}
	}
}

func TestDesaturateKeepsNeutrals(t *testing.T) {
	w := RenderSpaceWeights(RenderSpaceParams{RedWeight: 0.25, BlueWeight: 0.55})
	got := Desaturate(emath.Vec3{0.5, 0.5, 0.5}, w, 0.7)
	assert.InDelta(t, 0.5, got[0], 1e-12)
	assert.InDelta(t, 0.5, got[2], 1e-12)
}

func TestBrillianceIsBounded(t *testing.T) {
	coeffs := []float64{-5, -1, -0.5, 0, 0.5, 1, 5}
	extremes := []float64{0, 0.25, 1, 1.5}
	ranges := []float64{-1, 0, 0.66, 1, 2}
	for _, c := range coeffs {
		for _, rng := range ranges {
			b := BrillianceParams{R: c, G: -c, B: c / 2, C: -c / 2, M: c, Y: 0.1 * c, Range: rng}
			for _, ha := range extremes {
				for _, achD := range extremes {
					for _, tsPt := range []float64{-0.5, 0, 0.3, 1, 1.2} {
						f := BrillianceFactor(b, emath.Vec3{ha, 1 - ha, ha}, emath.Vec3{ha, ha, 1 - ha}, achD, tsPt)
						assert.GreaterOrEqual(t, f, 0.0)
						assert.LessOrEqual(t, f, 2.0)
					}
				}
			}
		}
	}
}

func TestBrillianceNeutralAtZeroCoefficients(t *testing.T) {
	// Only the softplus knee nudges it off 1
	f := BrillianceFactor(BrillianceParams{Range: 0.66}, emath.Vec3{1, 0, 0}, emath.Vec3{}, 0.8, 0.4)
	assert.InDelta(t, 1.0, f, 0.01)
}

func TestHueWeightsPeakAtAnchors(t *testing.T) {
	for i:=0; i<3; i++ {
		rgb, _ := HueWeights(emath.PositiveMod(hueAnchorsRGB[i], 2*math.Pi))
		assert.InDelta(t, 1.0, rgb[i], 1e-12)
		_, cmy := HueWeights(emath.PositiveMod(hueAnchorsCMY[i], 2*math.Pi))
		assert.InDelta(t, 1.0, cmy[i], 1e-12)
	}
}

func TestOpponentRedHue(t *testing.T) {
	achD, hue := Opponent(emath.Vec3{1, 0, 0})
	assert.Greater(t, achD, 0.5)
	rgb, cmy := HueWeights(hue)
	assert.Greater(t, rgb[0], 0.98)
	assert.Greater(t, rgb[0], cmy.Max())

	achD, _ = Opponent(emath.Vec3{1, 1, 1})
	assert.Equal(t, 0.0, achD)
}

func TestMidPurityNeutralWhenFlat(t *testing.T) {
	m := MidPurityParams{Low: 0, LowStrength: 0.5, High: 0, HighStrength: 0.3}
	for _, achD := range []float64{0, 0.3, 1} {
		assert.InDelta(t, 1.0, MidPurityScale(m, achD, 0.5), 1e-12)
	}
	m.Low = -3
	assert.GreaterOrEqual(t, MidPurityScale(m, 0, 0), 0.0)
}

func TestCompressPurityLow(t *testing.T) {
	for _, rgb := range []emath.Vec3{{0.5, 0.5, 0.5}, {-0.1, 0.4, 0.2}, {0.01, 0.02, -0.05}, {2, 0, 0}} {
		assert.True(t, CompressPurityLow(rgb).IsFinite())
	}

	// Negative red gets lifted above zero
	got := CompressPurityLow(emath.Vec3{-0.1, 0.4, 0.2})
	assert.Greater(t, got[0], 0.0)
	assert.Less(t, got[0], 0.01)

	// Bright values are untouched
	assert.Equal(t, emath.Vec3{2, 3, 4}, CompressPurityLow(emath.Vec3{2, 3, 4}))
}

func TestTonescaleHitsGrey(t *testing.T) {
	for _, c := range []struct{
		lp float64
		eotf ecolor.EOTF
	}{
		{100, ecolor.EOTFGamma24}, {600, ecolor.EOTFGamma22}, {1000, ecolor.EOTFPQ}, {1000, ecolor.EOTFHLG},
	} {
		tp := defaultParams().Tonescale
		tp.PeakLuminance = c.lp
		ts := NewTonescale(tp, c.eotf)
		assert.InDelta(t, ts.Y0*ts.DisplayScale, ts.Apply(ts.X0), 1e-9, "%v", c)
	}
}

func TestTonescaleMonotonic(t *testing.T) {
	ts := NewTonescale(defaultParams().Tonescale, ecolor.EOTFGamma24)
	prev := ts.Apply(0)
	assert.Equal(t, 0.0, prev)
	for x := 0.001; x < 1000; x *= 1.1 {
		y := ts.Apply(x)
		assert.Greater(t, y, prev, "x=%v", x)
		prev = y
	}
	// 100 nit display: never over peak
	assert.Less(t, prev, 1.01)
}

func TestFilmicStrengthZeroIsIdentity(t *testing.T) {
	f := FilmicParams{SourceStops: 14, TargetStops: 10, DynamicRange: 5}
	for _, x := range []float64{0, 0.18, 40} {
		assert.Equal(t, x, Filmic(f, x))
	}
	f.Strength = 1
	assert.Less(t, Filmic(f, 1000), 1000.0)
}
