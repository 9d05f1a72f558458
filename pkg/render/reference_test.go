package render

import(
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/opendrt/pkg/drt"
	"github.com/abworrall/opendrt/pkg/ecolor"
	"github.com/abworrall/opendrt/pkg/emath"
)

func TestReferenceTonemap(t *testing.T) {
	b := NewBuffer(8, 8)
	for y:=0; y<8; y++ {
		for x:=0; x<8; x++ {
			v := 0.01 * float64(1 + x + y*8)
			b.SetPixel(x, y, drt.Pixel{RGB: emath.Vec3{v, v * 0.8, v * 0.6}, A: 1})
		}
	}

	img, err := ReferenceTonemap("linear", b)
	require.NoError(t, err)
	assert.Equal(t, b.Bounds(), img.Bounds())

	_, err = ReferenceTonemap("fattal99", b)
	assert.Error(t, err)

	_, err = ReferenceTonemap("linear", &Buffer{Width: 1, Height: 1})
	assert.ErrorIs(t, err, ErrBadBuffer)
}

func TestSceneLinear(t *testing.T) {
	mt := ecolor.NewMatrixTable()
	src := NewBuffer(2, 1)
	src.SetPixel(0, 0, drt.Pixel{RGB: emath.Vec3{0.1, 0.2, 0.3}, A: 1})
	src.SetPixel(1, 0, drt.Pixel{RGB: emath.Vec3{0.18, 0.18, 0.18}, A: 0.5})

	same, err := SceneLinear(src, ecolor.GamutRec709, ecolor.OETFLinear, mt)
	require.NoError(t, err)
	for i := range src.Pix {
		assert.InDelta(t, src.Pix[i], same.Pix[i], 1e-6)
	}

	// Neutrals stay neutral from any D65 gamut.
	dwg, err := SceneLinear(src, ecolor.GamutDWG, ecolor.OETFLinear, mt)
	require.NoError(t, err)
	px := dwg.Pixel(1, 0)
	assert.InDelta(t, 0.18, px.RGB[0], 1e-3)
	assert.InDelta(t, 0.18, px.RGB[1], 1e-3)
	assert.InDelta(t, 0.18, px.RGB[2], 1e-3)
	assert.Equal(t, 0.5, px.A)
}
