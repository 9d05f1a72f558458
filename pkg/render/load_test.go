package render

import(
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/opendrt/pkg/drt"
	"github.com/abworrall/opendrt/pkg/ecolor"
	"github.com/abworrall/opendrt/pkg/emath"
)

func TestPNGRoundTrip(t *testing.T) {
	b := NewBuffer(4, 3)
	for y:=0; y<3; y++ {
		for x:=0; x<4; x++ {
			v := float64(y*4 + x) / 11
			b.SetPixel(x, y, drt.Pixel{RGB: emath.Vec3{v, 1 - v, v / 2}, A: 1})
		}
	}

	filename := filepath.Join(t.TempDir(), "ramp.png")
	require.NoError(t, b.WritePNG(filename))

	got, ci, err := LoadImage(filename)
	require.NoError(t, err)
	assert.Equal(t, CameraInfo{}, ci)
	require.Equal(t, b.Bounds(), got.Bounds())
	for i := range b.Pix {
		assert.InDelta(t, b.Pix[i], got.Pix[i], 1e-4, "float %d", i)
	}
}

func TestPNGClamps(t *testing.T) {
	b := fill(NewBuffer(1, 1), emath.Vec3{-0.5, 2, 0.5}, 1)
	img := b.ToNRGBA64()
	c := img.NRGBA64At(0, 0)
	assert.Equal(t, uint16(0), c.R)
	assert.Equal(t, uint16(0xFFFF), c.G)
	assert.Equal(t, uint16(0x8000), c.B)
}

func TestHDRRoundTrip(t *testing.T) {
	b := NewBuffer(3, 2)
	vals := []emath.Vec3{{0.18, 0.18, 0.18}, {4, 3, 2.5}, {100, 80, 60}, {0.01, 0.012, 0.015}, {1, 1, 1}, {8, 7, 6}}
	for i, v := range vals {
		b.SetPixel(i%3, i/3, drt.Pixel{RGB: v, A: 1})
	}

	filename := filepath.Join(t.TempDir(), "scene.hdr")
	require.NoError(t, b.WriteToHDR(filename))

	got, _, err := LoadImage(filename)
	require.NoError(t, err)
	for i, v := range vals {
		px := got.Pixel(i%3, i/3)
		for c:=0; c<3; c++ {
			assert.InEpsilon(t, v[c], px.RGB[c], 0.02, "pixel %d channel %d", i, c)
		}
	}
}

func TestLoadImageErrors(t *testing.T) {
	_, _, err := LoadImage("testdata/none.png")
	assert.Error(t, err)

	_, _, err = LoadImage("load_test.go")
	assert.Error(t, err)
}

func TestSuggestInput(t *testing.T) {
	tests := []struct {
		ci   CameraInfo
		g    ecolor.Gamut
		o    ecolor.OETF
		ok   bool
	}{
		{CameraInfo{"ARRI", "ALEXA Mini LF"}, ecolor.GamutAWG3, ecolor.OETFLogC3, true},
		{CameraInfo{"ARRI", "ALEXA 35"}, ecolor.GamutAWG4, ecolor.OETFLogC4, true},
		{CameraInfo{"SONY", "ILME-FX6"}, ecolor.GamutSGamut3Cine, ecolor.OETFSLog3, true},
		{CameraInfo{"Panasonic", "DC-S1H"}, ecolor.GamutVGamut, ecolor.OETFVLog, true},
		{CameraInfo{"RED", "KOMODO 6K"}, ecolor.GamutRWG, ecolor.OETFLog3G10, true},
		{CameraInfo{"FUJIFILM", "X-H2S"}, ecolor.GamutRec2020, ecolor.OETFFLog2, true},
		{CameraInfo{"Redmi", "Note"}, ecolor.GamutDWG, ecolor.OETFDaVinciIntermediate, false},
		{CameraInfo{}, ecolor.GamutDWG, ecolor.OETFDaVinciIntermediate, false},
	}

	for _, test := range tests {
		g, o, ok := SuggestInput(test.ci)
		assert.Equal(t, test.g, g, test.ci.String())
		assert.Equal(t, test.o, o, test.ci.String())
		assert.Equal(t, test.ok, ok, test.ci.String())
	}
}
