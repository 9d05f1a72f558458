package ecolor

import(
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/opendrt/pkg/emath"
)

func TestOutOfRangeIsIdentity(t *testing.T) {
	mt := NewMatrixTable()
	for _, g := range []Gamut{-1, Gamut(NumGamuts), 99} {
		assert.True(t, mt.Input(g).IsIdentity(), "input %d", g)
	}
	for _, d := range []DisplayGamut{-1, DisplayGamut(NumDisplayGamuts), 7} {
		assert.True(t, mt.Output(d).IsIdentity(), "output %d", d)
		assert.True(t, mt.CreativeWhitepoint(d, WhitepointD50).IsIdentity(), "cwp %d", d)
	}
	assert.True(t, mt.CreativeWhitepoint(DisplayP3D65, -1).IsIdentity())
	assert.True(t, mt.CreativeWhitepoint(DisplayP3D65, WhitepointFromLook).IsIdentity())
}

// All the input gamuts are D65 referenced, so RGB white lands on D65 in XYZ.
func TestInputMatricesAreD65(t *testing.T) {
	mt := NewMatrixTable()
	for g := GamutAP0; int(g) < NumGamuts; g++ {
		w := mt.Input(g).RowSums()
		assert.InDelta(t, 0.9505, w[0], 2e-3, "%s", g)
		assert.InDelta(t, 1.0, w[1], 2e-3, "%s", g)
		assert.InDelta(t, 1.089, w[2], 2e-3, "%s", g)
	}
}

func TestWorkingSpaceRoundTrip(t *testing.T) {
	mt := NewMatrixTable()
	m := XYZToP3D65.Mult(mt.Input(GamutP3D65))
	for i, want := range emath.Identity() {
		assert.InDelta(t, want, m[i], 1e-5)
	}
}

func TestCreativeWhitepointWarms(t *testing.T) {
	mt := NewMatrixTable()
	for _, d := range []DisplayGamut{DisplayP3D65, DisplayRec2020} {
		prev := 1.0
		for _, w := range []Whitepoint{WhitepointD60, WhitepointD55, WhitepointD50} {
			white := mt.CreativeWhitepoint(d, w).RowSums()
			assert.Less(t, white[2], prev, "%s %s", d, w)
			assert.Greater(t, white[0], white[2])
			prev = white[2]
		}
	}
	assert.Equal(t, P3D65ToRec709, mt.CreativeWhitepoint(DisplayRec709, WhitepointD65))
	assert.True(t, mt.CreativeWhitepoint(DisplayP3D65, WhitepointD65).IsIdentity())
}

func TestLoadMatrixTableJSON(t *testing.T) {
	mt, err := LoadMatrixTable("testdata/matrices.json")
	require.NoError(t, err)

	assert.Equal(t, emath.Vec3{0.5, 0.5, 0.5}, mt.Input(GamutRec709).RowSums())
	assert.Equal(t, emath.Vec3{1, 2, 3}, mt.Input(Gamut(40)).RowSums())
	assert.Equal(t, emath.Vec3{1, 1, 2}, mt.Output(DisplayP3D65).RowSums())

	// Untouched entries keep the builtin values
	assert.Equal(t, NewMatrixTable().Input(GamutDWG), mt.Input(GamutDWG))
	assert.Equal(t, P3D65ToRec709, mt.Output(DisplayRec709))
}

func TestLoadMatrixTableYAML(t *testing.T) {
	mt, err := LoadMatrixTable("testdata/matrices.yaml")
	require.NoError(t, err)
	assert.Equal(t, emath.Vec3{2, 2, 2}, mt.Input(GamutXYZ).RowSums())
}

func TestLoadMatrixTableFallback(t *testing.T) {
	_, err := LoadMatrixTable("testdata/broken.json")
	assert.Error(t, err)
	_, err = LoadMatrixTable("testdata/does-not-exist.json")
	assert.Error(t, err)

	mt := MatrixTableOrDefault("testdata/broken.json")
	assert.Equal(t, "builtin", mt.Source)
	assert.Equal(t, NewMatrixTable().Input(GamutAP0), mt.Input(GamutAP0))
}

func TestLuminanceWeights(t *testing.T) {
	mt := NewMatrixTable()
	w := mt.LuminanceWeights(DisplayRec709.Gamut())
	assert.InDelta(t, 0.2126, w[0], 1e-4)
	assert.InDelta(t, 0.7152, w[1], 1e-4)
	assert.InDelta(t, 0.0722, w[2], 1e-4)

	for d:=DisplayGamut(0); int(d)<NumDisplayGamuts; d++ {
		w := mt.LuminanceWeights(d.Gamut())
		assert.InDelta(t, 1.0, w[0] + w[1] + w[2], 1e-3, "%s", d)
	}
}
