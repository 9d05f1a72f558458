// Package chart draws diagnostic plots of the pipeline's curves: the
// tonescale as configured, and the six hue windows the color modules
// key off.
package chart

import(
	"fmt"
	"image"
	"log"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/abworrall/opendrt/pkg/drt"
	"github.com/abworrall/opendrt/pkg/emath"
)

const margin = 40.0

// Scene range of the tonescale chart, in stops either side of 0.18.
const(
	minStops = -8.0
	maxStops = 8.0
)

func fontFace(size float64) font.Face {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Printf("chart, parsing builtin font: %v", err)
		return nil
	}
	return truetype.NewFace(f, &truetype.Options{Size: size})
}

func newContext(w, h int) *gg.Context {
	dc := gg.NewContext(w, h)
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.Clear()
	if face := fontFace(12); face != nil {
		dc.SetFontFace(face)
	}
	return dc
}

// Tonescale plots the kernel's tonescale: scene stops around grey on x,
// display nits on y, with the grey point marked.
func Tonescale(k *drt.Kernel, w, h int) image.Image {
	dc := newContext(w, h)
	ts := k.Tonescale
	pw, ph := float64(w) - 2*margin, float64(h) - 2*margin

	peak := k.Params.Tonescale.PeakLuminance
	nits := func(x float64) float64 {
		return ts.Apply(x) / ts.DisplayScale * 100
	}
	toX := func(stops float64) float64 { return margin + pw * (stops - minStops) / (maxStops - minStops) }
	toY := func(n float64) float64 { return margin + ph * (1 - n/peak) }

	// One grid line per stop, brighter at grey
	dc.SetLineWidth(1)
	for s:=minStops; s<=maxStops; s++ {
		if s == 0 {
			dc.SetRGB(0.5, 0.5, 0.5)
		} else {
			dc.SetRGB(0.25, 0.25, 0.25)
		}
		dc.DrawLine(toX(s), margin, toX(s), margin + ph)
		dc.Stroke()
	}
	dc.SetRGB(0.25, 0.25, 0.25)
	dc.DrawRectangle(margin, margin, pw, ph)
	dc.Stroke()

	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(2)
	for i:=0; i<=int(pw); i++ {
		stops := minStops + (maxStops - minStops) * float64(i) / pw
		y := toY(nits(0.18 * math.Pow(2, stops)))
		if i == 0 {
			dc.MoveTo(margin, y)
		} else {
			dc.LineTo(margin + float64(i), y)
		}
	}
	dc.Stroke()

	greyNits := nits(ts.X0)
	dc.SetRGB(1, 0.6, 0.1)
	dc.DrawCircle(toX(math.Log2(ts.X0 / 0.18)), toY(greyNits), 4)
	dc.Fill()

	dc.SetRGB(0.9, 0.9, 0.9)
	dc.DrawString(fmt.Sprintf("peak %.0f nits, grey %.2f nits, contrast %.2f", peak, greyNits,
		k.Params.Tonescale.Contrast), margin, margin - 10)
	dc.DrawStringAnchored(fmt.Sprintf("%+.0f", minStops), margin, float64(h) - margin/2, 0, 0.5)
	dc.DrawStringAnchored("0.18", toX(0), float64(h) - margin/2, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%+.0f", maxStops), margin + pw, float64(h) - margin/2, 1, 0.5)

	return dc.Image()
}

// windowColors are the display colors of the R G B and C M Y windows.
var windowColors = [6]colorful.Color{
	colorful.Hsv(0, 0.8, 1), colorful.Hsv(120, 0.8, 1), colorful.Hsv(240, 0.8, 1),
	colorful.Hsv(180, 0.8, 1), colorful.Hsv(300, 0.8, 1), colorful.Hsv(60, 0.8, 1),
}

// HueWindows plots the six gaussian hue weights over one turn of hue.
// The strip along the bottom shows what a pure ratio at that hue looks
// like.
func HueWindows(w, h int) image.Image {
	dc := newContext(w, h)
	pw, ph := float64(w) - 2*margin, float64(h) - 2*margin

	for i:=0; i<=int(pw); i++ {
		hue := 2 * math.Pi * float64(i) / pw
		dc.SetColor(hueSwatch(hue))
		dc.DrawRectangle(margin + float64(i), margin + ph + 4, 1, margin/3)
		dc.Fill()
	}

	dc.SetLineWidth(2)
	for win:=0; win<6; win++ {
		dc.SetColor(windowColors[win])
		for i:=0; i<=int(pw); i++ {
			rgb, cmy := drt.HueWeights(2 * math.Pi * float64(i) / pw)
			v := rgb[win%3]
			if win >= 3 {
				v = cmy[win%3]
			}
			y := margin + ph * (1 - v)
			if i == 0 {
				dc.MoveTo(margin, y)
			} else {
				dc.LineTo(margin + float64(i), y)
			}
		}
		dc.Stroke()
	}

	dc.SetRGB(0.9, 0.9, 0.9)
	dc.DrawString("hue windows: R G B (wide), C M Y (narrow)", margin, margin - 10)
	return dc.Image()
}

// hueSwatch finds the color whose opponent hue is closest to hue, by
// searching the HSV wheel; the two hue definitions don't line up.
func hueSwatch(hue float64) colorful.Color {
	best, bestDist := colorful.Color{}, math.MaxFloat64
	for deg:=0.0; deg<360; deg+=2 {
		c := colorful.Hsv(deg, 1, 1)
		_, h := drt.Opponent(emath.Vec3{c.R, c.G, c.B})
		if d := math.Abs(math.Remainder(h - hue, 2*math.Pi)); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// Caption writes a line of text into the bottom left corner of a copy of
// img.
func Caption(img image.Image, text string) image.Image {
	dc := gg.NewContextForImage(img)
	if face := fontFace(14); face != nil {
		dc.SetFontFace(face)
	}
	y := float64(dc.Height()) - 10
	dc.SetRGB(0, 0, 0)
	dc.DrawString(text, 11, y + 1)
	dc.SetRGB(1, 1, 1)
	dc.DrawString(text, 10, y)
	return dc.Image()
}
