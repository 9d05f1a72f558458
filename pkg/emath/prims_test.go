package emath

import(
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeDivTotal(t *testing.T) {
	for _, a := range []float64{-1e9, -1, 0, 0.5, 1e9} {
		assert.Equal(t, 0.0, SafeDiv(a, 0))
	}
	assert.Equal(t, 2.0, SafeDiv(1, 0.5))
}

func TestSafePowKeepsNonPositiveBase(t *testing.T) {
	for _, a := range []float64{-4, -0.5, 0} {
		for _, b := range []float64{-2, 0.3, 1.0/3, 2.4} {
			got := SafePow(a, b)
			assert.Equal(t, a, got)
			assert.False(t, math.IsNaN(got))
		}
	}
	assert.InDelta(t, 2.0, SafePow(4, 0.5), 1e-12)
}

func TestContrastHighContinuity(t *testing.T) {
	for _, p := range []float64{0.5, 0.8, 1.5, 2, 4} {
		for _, pv := range []float64{-1, 0, 1} {
			for _, st := range []float64{0.5, 1, 2, 4} {
				x1 := 0.18 * math.Pow(2, pv) * math.Pow(2, st)
				eps := 1e-9 * x1
				lo := ContrastHigh(x1-eps, p, pv, st, false)
				hi := ContrastHigh(x1+eps, p, pv, st, false)
				assert.InDelta(t, lo, hi, 1e-6*math.Max(1, math.Abs(lo)), "p=%v pv=%v st=%v", p, pv, st)

				y1 := ContrastHigh(x1, p, pv, st, false)
				assert.InDelta(t, x1, ContrastHigh(y1, p, pv, st, true), 1e-9*math.Max(1, x1))
			}
		}
	}
}

func TestContrastHighRoundTrip(t *testing.T) {
	p, pv, st := 2.0, 1.0, 4.0
	for x := 0.0; x < 50; x += 0.37 {
		y := ContrastHigh(x, p, pv, st, false)
		assert.InDelta(t, x, ContrastHigh(y, p, pv, st, true), 1e-9*math.Max(1, x), "x=%v", x)
	}
	// Identity below the pivot, and when p==1
	assert.Equal(t, 0.2, ContrastHigh(0.2, 2, 1, 4, false))
	assert.Equal(t, 7.0, ContrastHigh(7, 1, 0, 4, false))
}

func TestToeCubicRoundTrip(t *testing.T) {
	m, w := math.Pow(2, -1.0), 0.5*0.5/16
	for x := 0.0; x < 4; x += 0.05 {
		y := CompressToeCubic(x, m, w, false)
		assert.InDelta(t, x, CompressToeCubic(y, m, w, true), 1e-6, "x=%v", x)
	}
	assert.Equal(t, 0.3, CompressToeCubic(0.3, 1, w, false))
	assert.Equal(t, 0.3, CompressToeCubic(0.3, 1, w, true))
}

func TestToeQuadraticRoundTrip(t *testing.T) {
	for _, toe := range []float64{0.001, 0.003, 0.04} {
		for x := 0.0; x < 2; x += 0.01 {
			y := CompressToeQuadratic(x, toe, false)
			assert.InDelta(t, x, CompressToeQuadratic(y, toe, true), 1e-9, "toe=%v x=%v", toe, x)
		}
	}
	assert.Equal(t, 0.4, CompressToeQuadratic(0.4, 0, false))
}

func TestHueOffsetRange(t *testing.T) {
	for h := -10.0; h < 10; h += 0.1 {
		for _, o := range []float64{0.1, 4.3, -1.2} {
			d := HueOffset(h, o)
			assert.GreaterOrEqual(t, d, -math.Pi)
			assert.Less(t, d, math.Pi)
			assert.InDelta(t, 0, math.Sin(d)-math.Sin(h-o), 1e-9)
		}
	}
}

func TestGaussWindow(t *testing.T) {
	assert.Equal(t, 1.0, GaussWindow(0, 0.9))
	assert.InDelta(t, math.Exp(-1), GaussWindow(0.9, 0.9), 1e-12)
	assert.Greater(t, GaussWindow(3, 0.6), 0.0)
}

func TestSigmoidCubic(t *testing.T) {
	assert.Equal(t, 1.0, SigmoidCubic(-0.1, 5))
	assert.Equal(t, 1.0, SigmoidCubic(1.1, 5))
	assert.InDelta(t, 1.5, SigmoidCubic(0, 0.5), 1e-12)
	assert.InDelta(t, 1.0, SigmoidCubic(1, 0.5), 1e-12)
}

func TestSoftplus(t *testing.T) {
	// Shortcut branches
	assert.Equal(t, 5.0, Softplus(5, 0.2, -100, 0))
	assert.Equal(t, -3.0, Softplus(-3, 1e-4, -100, 0))

	for x := -2.0; x < 3; x += 0.01 {
		y := Softplus(x, 0.25, -100, 0)
		assert.False(t, math.IsNaN(y) || math.IsInf(y, 0), "x=%v", x)
		assert.GreaterOrEqual(t, y, x-1e-9)
	}
}

func TestComplementPower(t *testing.T) {
	assert.InDelta(t, 0.0, ComplementPower(0, 0.5), 1e-12)
	assert.InDelta(t, 1.0, ComplementPower(1, 0.5), 1e-12)
	assert.InDelta(t, 0.75, ComplementPower(0.5, 0.5), 1e-12)
}
