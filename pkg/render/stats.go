package render

import(
	"fmt"
	"math"

	"github.com/codahale/hdrhistogram"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/skypies/util/histogram"

	"github.com/abworrall/opendrt/pkg/ecolor"
)

// Luminance is recorded in fixed point, lumScale counts per unit, and
// anything brighter than lumMax is recorded as lumMax.
const(
	lumScale = 10000
	lumMax   = 1000.0
)

// Stats summarizes a rendered (display-encoded) buffer.
type Stats struct {
	Pixels    int
	NonFinite int // any channel NaN or Inf
	Clipped   int // any channel outside [0,1]

	P01, P50, P99, Max float64 // luminance percentiles

	Hues      histogram.Histogram // hue in degrees, for saturated pixels only
}

// ComputeStats walks the whole buffer once. Luminance is weighted for
// the display's primaries, but taken straight off the code values.
func ComputeStats(b *Buffer, d ecolor.DisplayGamut) Stats {
	s := Stats{
		Pixels: b.Width * b.Height,
		Hues:   histogram.Histogram{NumBuckets:36, ValMin:0, ValMax:360},
	}
	lumWeights := ecolor.NewMatrixTable().LuminanceWeights(d.Gamut())
	lums := hdrhistogram.New(1, int64(lumMax * lumScale), 3)

	for y:=0; y<b.Height; y++ {
		for x:=0; x<b.Width; x++ {
			rgb := b.Pixel(x, y).RGB
			if !rgb.IsFinite() {
				s.NonFinite++
				continue
			}
			if rgb.Min() < 0 || rgb.Max() > 1 {
				s.Clipped++
			}

			lum := lumWeights.Dot(rgb)
			lums.RecordValue(int64(math.Round(math.Min(math.Max(lum, 0), lumMax) * lumScale)))

			c := colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}.Clamped()
			if h, sat, _ := c.Hsv(); sat > 0.1 {
				s.Hues.Add(histogram.ScalarVal(int(h)))
			}
		}
	}

	if lums.TotalCount() > 0 {
		s.P01 = float64(lums.ValueAtQuantile(1)) / lumScale
		s.P50 = float64(lums.ValueAtQuantile(50)) / lumScale
		s.P99 = float64(lums.ValueAtQuantile(99)) / lumScale
		s.Max = float64(lums.Max()) / lumScale
	}

	return s
}

func (s Stats)String() string {
	str := fmt.Sprintf("Stats{%d pixels, %d clipped, %d non-finite}\n", s.Pixels, s.Clipped, s.NonFinite)
	str += fmt.Sprintf("  luminance p01=%.4f p50=%.4f p99=%.4f max=%.4f\n", s.P01, s.P50, s.P99, s.Max)
	str += fmt.Sprintf("  hues: %v\n", s.Hues)
	return str
}
