package render

import(
	"fmt"

	"github.com/abworrall/opendrt/pkg/drt"
	"github.com/abworrall/opendrt/pkg/ecolor"
)

// SceneLinear decodes a camera-encoded buffer into linear Rec.709
// primaries, the space the reference tonemappers expect.
func SceneLinear(src *Buffer, g ecolor.Gamut, o ecolor.OETF, mt *ecolor.MatrixTable) (*Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("SceneLinear: %w", err)
	}

	toRec709, err := mt.Input(ecolor.GamutRec709).Inverse()
	if err != nil {
		return nil, fmt.Errorf("SceneLinear, Rec.709 matrix: %w", err)
	}
	m := toRec709.Mult(mt.Input(g))

	dst := NewBuffer(src.Width, src.Height)
	for y:=0; y<src.Height; y++ {
		for x:=0; x<src.Width; x++ {
			px := src.Pixel(x, y)
			dst.SetPixel(x, y, drt.Pixel{RGB: m.Apply(ecolor.LinearizeRGB(px.RGB, o)), A: px.A})
		}
	}
	return dst, nil
}
