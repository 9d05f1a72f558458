package render

import(
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abworrall/opendrt/pkg/drt"
	"github.com/abworrall/opendrt/pkg/ecolor"
	"github.com/abworrall/opendrt/pkg/emath"
)

func TestComputeStats(t *testing.T) {
	b := NewBuffer(102, 1)
	for x:=0; x<100; x++ {
		v := float64(x) / 99
		b.SetPixel(x, 0, drt.Pixel{RGB: emath.Vec3{v, v, v}, A: 1})
	}
	b.SetPixel(100, 0, drt.Pixel{RGB: emath.Vec3{math.NaN(), 0, 0}, A: 1})
	b.SetPixel(101, 0, drt.Pixel{RGB: emath.Vec3{2, 2, 2}, A: 1})

	s := ComputeStats(b, ecolor.DisplayRec709)
	assert.Equal(t, 102, s.Pixels)
	assert.Equal(t, 1, s.NonFinite)
	assert.Equal(t, 1, s.Clipped)
	assert.InDelta(t, 0.5, s.P50, 0.02)
	assert.InDelta(t, 0.01, s.P01, 0.01)
	assert.InDelta(t, 2.0, s.Max, 0.01)
	assert.Contains(t, s.String(), "102 pixels")
}

func TestComputeStatsBlack(t *testing.T) {
	s := ComputeStats(NewBuffer(4, 4), ecolor.DisplayP3D65)
	assert.Equal(t, 16, s.Pixels)
	assert.Equal(t, 0.0, s.P50)
	assert.Equal(t, 0.0, s.Max)
}
