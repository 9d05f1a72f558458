package ecolor

import(
	"image/color"

	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/opendrt/pkg/emath"
)

// ToHDR wraps a pipeline vector so it can live in an hdr.Image.
func ToHDR(v emath.Vec3) hdrcolor.RGB {
	return hdrcolor.RGB{R: v[0], G: v[1], B: v[2]}
}

// FromColor reads any color as floating point RGB plus alpha. HDR colors
// keep their full range; everything else is treated as [0, 0xFFFF].
func FromColor(c color.Color) (emath.Vec3, float64) {
	if hc, ok := c.(hdrcolor.Color); ok {
		r, g, b, a := hc.HDRRGBA()
		return emath.Vec3{r, g, b}, a
	}

	r, g, b, a := c.RGBA()
	if a == 0 {
		return emath.Vec3{}, 0
	}
	// image/color hands back alpha-premultiplied values
	fa := float64(a)
	return emath.Vec3{float64(r)/fa, float64(g)/fa, float64(b)/fa}, fa / float64(0xFFFF)
}

// DisplayGamut primaries as an input gamut, for luminance weights.
func (d DisplayGamut)Gamut() Gamut {
	switch d {
	case DisplayP3D65:   return GamutP3D65
	case DisplayRec2020: return GamutRec2020
	}
	return GamutRec709
}

// LuminanceWeights is the middle row of the gamut's RGB->XYZ matrix:
// dot it with linear RGB to get Y.
func (mt *MatrixTable)LuminanceWeights(g Gamut) emath.Vec3 {
	m := mt.Input(g)
	return emath.Vec3{m[3], m[4], m[5]}
}
