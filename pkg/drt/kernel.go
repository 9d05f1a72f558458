package drt

import(
	"math"

	"github.com/abworrall/opendrt/pkg/ecolor"
	"github.com/abworrall/opendrt/pkg/emath"
)

// Pixel is one RGBA value. Alpha is carried through untouched.
type Pixel struct {
	RGB emath.Vec3
	A   float64
}

// Kernel is a Params with everything that doesn't depend on the pixel
// worked out up front. Transform is safe to call from many goroutines.
type Kernel struct {
	Params
	Tonescale Tonescale

	inputToXYZ emath.Mat3
	toDisplay  emath.Mat3 // P3 -> Rec.709, applied before the whitepoint blend
	limitTo    emath.Mat3 // P3 -> Rec.2020, applied after the clamp
	cwp        emath.Mat3

	rsWeights  emath.Vec3
	ptWeights  emath.Vec3

	hconPow    float64
	lconM      float64
	lconW      float64
	lconNorm   float64

	active     [NumModules]bool
}

// NewKernel expects the whitepoint to be resolved (not WhitepointFromLook).
func NewKernel(p Params, mt *ecolor.MatrixTable) *Kernel {
	k := Kernel{
		Params:     p,
		Tonescale:  NewTonescale(p.Tonescale, p.EOTF),
		inputToXYZ: mt.Input(p.InputGamut),
		toDisplay:  emath.Identity(),
		limitTo:    emath.Identity(),
		cwp:        mt.CreativeWhitepoint(p.DisplayGamut, p.Whitepoint.Whitepoint),
		rsWeights:  RenderSpaceWeights(p.RenderSpace),
		ptWeights:  emath.Vec3{p.Purity.R, p.Purity.G, p.Purity.B},
	}

	switch p.DisplayGamut {
	case ecolor.DisplayRec709:  k.toDisplay = mt.Output(p.DisplayGamut)
	case ecolor.DisplayRec2020: k.limitTo = mt.Output(p.DisplayGamut)
	}
	if p.Whitepoint.Whitepoint == ecolor.WhitepointD65 {
		k.cwp = k.toDisplay
	}

	for m:=Module(0); int(m)<NumModules; m++ {
		k.active[m] = p.Active(m)
	}

	k.hconPow = math.Pow(2, p.HighContrast.Amount)

	k.lconM = math.Pow(2, -p.LowContrast.Amount)
	k.lconW = (p.LowContrast.Width / 4) * (p.LowContrast.Width / 4)
	k.lconNorm = emath.SafeDiv(emath.CompressToeCubic(k.Tonescale.X0, k.lconM, k.lconW, true), k.Tonescale.X0)

	return &k
}

// overlay is the tonescale curve trace, carried alongside the pixel
// through every stage that shapes the tonescale.
type overlay struct {
	on  bool
	v   float64
	rgb emath.Vec3
}

// Transform runs one pixel through the whole pipeline. The order of the
// stages is fixed.
func (k *Kernel)Transform(px Pixel, c Coord) Pixel {
	p := &k.Params
	rgb := TestPattern(p.Diagnostics, px.RGB, c)

	rgb = ecolor.LinearizeRGB(rgb, p.InputOETF)
	rgb = k.inputToXYZ.Apply(rgb)
	rgb = ecolor.XYZToP3D65.Apply(rgb)

	crv := overlay{on: p.Diagnostics.TonescaleMap}
	if crv.on {
		crv.v = ecolor.Linearize(emath.SafeDiv(float64(c.X), float64(c.Width)), ecolor.OETFTLog)
	}

	rgb = Desaturate(rgb, k.rsWeights, p.RenderSpace.Strength)

	rgb = rgb.AddScalar(p.Tonescale.Offset)
	crv.v += p.Tonescale.Offset

	if k.active[LowContrast] {
		rgb = k.lowContrast(rgb)
		if crv.on {
			crv.v *= k.lconNorm
			crv.v = emath.CompressToeCubic(crv.v, k.lconM, k.lconW, false)
		}
	}

	if p.FilmicActive() {
		rgb = rgb.Map(func(x float64) float64 { return Filmic(p.Filmic, x) })
		if crv.on {
			crv.v = Filmic(p.Filmic, crv.v)
		}
	}

	// Split into a tonescale norm, a purity norm, and RGB ratios
	pos := rgb
	pos.FloorAt(0)
	tsn := emath.Hypot3(pos) / math.Sqrt(3)
	tsPt := math.Sqrt(math.Max(0, rgb.Mul(rgb).Dot(k.ptWeights)))
	neg := rgb
	neg.FloorAt(-2)
	rgb = emath.SafeDiv3(neg, tsn)

	if k.active[HighContrast] {
		hc := p.HighContrast
		tsn = emath.ContrastHigh(tsn, k.hconPow, hc.Pivot, hc.Strength, false)
		tsPt = emath.ContrastHigh(tsPt, k.hconPow, hc.Pivot, hc.Strength, false)
		if crv.on {
			crv.v = emath.ContrastHigh(crv.v, k.hconPow, hc.Pivot, hc.Strength, false)
		}
	}

	tsn = k.Tonescale.Compress(tsn)
	tsPt = k.Tonescale.CompressPurity(tsPt)
	if crv.on {
		crv.v = k.Tonescale.Compress(crv.v)
	}

	achD, hue := Opponent(rgb)
	haRGB, haCMY := HueWeights(hue)

	cmp := PurityCompressionRange(p.Purity, tsPt, achD)

	brl := 1.0
	if k.active[Brilliance] {
		brl = BrillianceFactor(p.Brilliance, haRGB, haCMY, achD, tsPt)
	}

	ptm := 1.0
	if k.active[MidPurity] {
		ptm = MidPurityScale(p.MidPurity, achD, tsPt)
	}

	haRGB = haRGB.Scale(achD)
	haCMY = haCMY.Scale(1.5 * emath.CompressToeQuadratic(achD, 0.5, false))

	if k.active[HueContrast] {
		f := HueContrastFactor(p.HueContrast.R, haRGB[0], achD, tsPt)
		rgb = emath.Vec3{rgb[0], rgb[1]*f, rgb[2]*f}
	}
	if k.active[HueShiftRGB] {
		rgb = rgb.Add(HueShiftRGBVector(p.HueShiftRGB, haRGB, tsPt))
	}
	if k.active[HueShiftCMY] {
		rgb = rgb.Add(HueShiftCMYVector(p.HueShiftCMY, haCMY, tsPt))
	}

	rgb = rgb.Scale(brl)
	cmp *= ptm
	rgb = rgb.Scale(cmp).AddScalar(1 - cmp)

	rgb = InvertDesaturate(rgb, k.rsWeights, p.RenderSpace.Strength)

	rgb = k.whitepoint(rgb, tsn)
	if crv.on {
		crv.rgb = k.whitepoint(emath.Vec3{crv.v, crv.v, crv.v}, crv.v)
	}

	if k.active[PurityLow] {
		rgb = CompressPurityLow(rgb)
	}

	tsn = k.Tonescale.Finish(tsn)
	if crv.on {
		crv.rgb = crv.rgb.Map(k.Tonescale.Finish)
		if p.EOTF == ecolor.EOTFPQ {
			crv.rgb = crv.rgb.Scale(10) // 1.0 is 1000 nits on the overlay
		}
	}

	rgb = rgb.Scale(tsn)

	if p.Clamp {
		rgb = emath.Clamp3(rgb, 0, 1)
	}

	if p.DisplayGamut == ecolor.DisplayRec2020 {
		rgb.FloorAt(0)
		rgb = k.limitTo.Apply(rgb)
	}

	rgb = ecolor.DisplayEncode(rgb, p.EOTF)

	if crv.on {
		rgb = k.drawOverlay(rgb, crv, c)
	}

	return Pixel{RGB: rgb, A: px.A}
}

func (k *Kernel)lowContrast(rgb emath.Vec3) emath.Vec3 {
	m, w := k.lconM, k.lconW
	rgb = rgb.Scale(k.lconNorm)

	pos := rgb
	pos.FloorAt(0)
	nm := emath.Hypot3(pos) / math.Sqrt(3)
	sc := emath.SafeDiv(nm*nm + m*w, nm*nm + w)

	pc := k.Params.LowContrast.PerChannel
	if pc <= 0 {
		return rgb.Scale(sc)
	}

	mcon := rgb.Map(func(x float64) float64 { return emath.CompressToeCubic(x, m, w, false) })
	ch := emath.Clamp(1 - emath.SafeDiv(rgb.Min(), rgb.Max()), 0, 1)
	ch = math.Pow(ch, 4*pc)
	return rgb.Scale(sc*ch).Add(mcon.Scale(1 - ch))
}

// whitepoint moves to the display primaries (for Rec.709) and blends in
// the creative whitepoint, more of it the brighter the pixel.
func (k *Kernel)whitepoint(rgb emath.Vec3, t float64) emath.Vec3 {
	cwp := k.cwp.Apply(rgb)
	rgb = k.toDisplay.Apply(rgb)
	f := emath.SafePow(t, 1 - k.Params.Whitepoint.Range)
	return cwp.Lerp(rgb, 1 - f)
}

// drawOverlay encodes the curve for the display and draws it as a soft
// line: bright where the pixel row matches the curve height.
func (k *Kernel)drawOverlay(rgb emath.Vec3, crv overlay, c Coord) emath.Vec3 {
	eotf := k.Params.EOTF
	v := crv.rgb
	switch {
	case eotf > ecolor.EOTFLinear && eotf < ecolor.EOTFPQ:
		v = emath.SafePow3(v, 1/(2 + 0.2*float64(eotf)))
	case eotf == ecolor.EOTFPQ:
		v = ecolor.PQEncode(v)
	case eotf == ecolor.EOTFHLG:
		v = ecolor.HLGEncode(v)
	}

	lm := 1.0
	if eotf.IsHDR() {
		lm = 0.5
	}

	e := v.Map(func(y float64) float64 {
		d := float64(c.Y) - y*float64(c.Height)
		return emath.Clamp(math.Exp(-d*d*0.05), 0, 1)
	})

	return emath.Vec3{
		rgb[0]*(1 - e[0]) + lm*e[0]*e[0],
		rgb[1]*(1 - e[1]) + lm*e[1]*e[1],
		rgb[2]*(1 - e[2]) + lm*e[2]*e[2],
	}
}
