package ecolor

import(
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abworrall/opendrt/pkg/emath"
)

func TestGammaRoundTrip(t *testing.T) {
	for _, e := range []EOTF{EOTFLinear, EOTFGamma22, EOTFGamma24, EOTFGamma26} {
		for x := 0.0; x <= 1.0; x += 0.01 {
			v := emath.Vec3{x, x, x}
			got := DisplayEncode(DisplayDecode(v, e), e)
			assert.InDelta(t, x, got[0], 1e-9, "%s x=%v", e, x)
			got = DisplayDecode(DisplayEncode(v, e), e)
			assert.InDelta(t, x, got[1], 1e-9, "%s x=%v", e, x)
		}
	}
}

func TestGammaClampsNegative(t *testing.T) {
	got := DisplayEncode(emath.Vec3{-0.5, -1e-9, 0.25}, EOTFGamma24)
	assert.Equal(t, 0.0, got[0])
	assert.Equal(t, 0.0, got[1])
	assert.InDelta(t, math.Pow(0.25, 1/2.4), got[2], 1e-12)
}

func TestPQPair(t *testing.T) {
	for _, y := range []float64{0, 0.0001, 0.01, 0.1, 0.5, 1} {
		v := emath.Vec3{y, y * 0.5, y * 0.25}
		got := PQDecode(PQEncode(v))
		for i := range v {
			assert.InDelta(t, v[i], got[i], 1e-9*math.Max(1, v[i]), "y=%v", y)
		}
	}
	// 100 nits is roughly code value 0.508
	assert.InDelta(t, 0.5081, PQEncode(emath.Vec3{0.01, 0.01, 0.01})[0], 1e-3)
}

func TestHLGPair(t *testing.T) {
	for _, v := range []emath.Vec3{{0.02, 0.02, 0.02}, {0.5, 0.4, 0.3}, {1, 1, 1}, {0.9, 0.1, 0.2}} {
		got := HLGDecode(HLGEncode(v))
		for i := range v {
			assert.InDelta(t, v[i], got[i], 1e-9, "%s", v)
		}
	}
	// Black is safe
	assert.Equal(t, emath.Vec3{}, HLGEncode(emath.Vec3{}))
	assert.True(t, HLGEncode(emath.Vec3{-1, 0.2, 0}).IsFinite())
}

func TestLinearizeKnownValues(t *testing.T) {
	// 18% grey code values, from the vendor white papers
	assert.InDelta(t, 0.18, Linearize(0.336043, OETFDaVinciIntermediate), 1e-3)
	assert.InDelta(t, 0.18, Linearize(0.4135884, OETFACEScct), 1e-3)
	assert.InDelta(t, 0.18, Linearize(0.391007, OETFLogC3), 1e-3)
	assert.InDelta(t, 0.18, Linearize(0.410557, OETFSLog3), 1e-3)
	assert.InDelta(t, 0.18, Linearize(0.423, OETFVLog), 2e-3)
	assert.Equal(t, 0.42, Linearize(0.42, OETFLinear))
}

func TestLinearizeFinite(t *testing.T) {
	for o := OETF(0); int(o) < NumOETFs; o++ {
		for x := -0.5; x <= 1.5; x += 0.01 {
			y := Linearize(x, o)
			assert.False(t, math.IsNaN(y) || math.IsInf(y, 0), "%s x=%v", o, x)
		}
	}
}

func TestParseNames(t *testing.T) {
	g, err := ParseGamut("DaVinci Wide Gamut")
	assert.NoError(t, err)
	assert.Equal(t, GamutDWG, g)

	g, err = ParseGamut("awg4")
	assert.NoError(t, err)
	assert.Equal(t, GamutAWG4, g)

	o, err := ParseOETF("3")
	assert.NoError(t, err)
	assert.Equal(t, OETFACEScct, o)

	_, err = ParseEOTF("gamma9")
	assert.Error(t, err)

	b, _ := EOTFPQ.MarshalText()
	assert.Equal(t, "pq", string(b))
}
