package chart

import(
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abworrall/opendrt/pkg/drt"
	"github.com/abworrall/opendrt/pkg/ecolor"
	"github.com/abworrall/opendrt/pkg/preset"
)

func countColors(img image.Image) int {
	seen := map[color.RGBA64]bool{}
	b := img.Bounds()
	for y:=b.Min.Y; y<b.Max.Y; y+=3 {
		for x:=b.Min.X; x<b.Max.X; x+=3 {
			r, g, bl, a := img.At(x, y).RGBA()
			seen[color.RGBA64{uint16(r), uint16(g), uint16(bl), uint16(a)}] = true
		}
	}
	return len(seen)
}

func TestTonescaleChart(t *testing.T) {
	lib := preset.DefaultLibrary()
	k := drt.NewKernel(lib.Build(preset.NewSettings()), ecolor.NewMatrixTable())

	img := Tonescale(k, 320, 240)
	assert.Equal(t, image.Rect(0, 0, 320, 240), img.Bounds())
	assert.Greater(t, countColors(img), 3)

	// The curve passes through the top left region only for very bright
	// scene values; the far left of the plot is dark.
	r, g, b, _ := img.At(int(margin) + 2, int(margin) + 2).RGBA()
	assert.Less(t, r + g + b, uint32(3 * 0x8000))
}

func TestHueWindowsChart(t *testing.T) {
	img := HueWindows(360, 200)
	assert.Equal(t, image.Rect(0, 0, 360, 200), img.Bounds())
	assert.Greater(t, countColors(img), 6)
}

func TestHueSwatchIsSaturated(t *testing.T) {
	for _, deg := range []float64{0, 60, 120, 180, 240, 300} {
		want := hueSwatch(2 * math.Pi * deg / 360)
		assert.InDelta(t, 1.0, math.Max(want.R, math.Max(want.G, want.B)), 1e-9, "swatch at %v is fully bright", deg)
	}
}

func TestCaption(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 50))
	img := Caption(src, "Umbra, Rec.709 gamma 2.4")
	assert.Equal(t, src.Bounds(), img.Bounds())
	assert.Greater(t, countColors(img), 1)
}
