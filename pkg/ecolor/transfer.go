package ecolor

import(
	"math"

	"github.com/abworrall/opendrt/pkg/emath"
)

// OETF is the camera encoding of the input image; Linearize undoes it.
type OETF int

const(
	OETFLinear OETF = iota
	OETFDaVinciIntermediate
	OETFTLog
	OETFACEScct
	OETFLogC3
	OETFLogC4
	OETFLog3G10
	OETFVLog
	OETFSLog3
	OETFFLog2
	NumOETFs = int(OETFFLog2) + 1
)

// EOTF is the display encoding of the output.
type EOTF int

const(
	EOTFLinear EOTF = iota
	EOTFGamma22
	EOTFGamma24
	EOTFGamma26
	EOTFPQ
	EOTFHLG
	NumEOTFs = int(EOTFHLG) + 1
)

func (e EOTF)IsHDR() bool { return e == EOTFPQ || e == EOTFHLG }

// Gamma returns the power of the gamma EOTFs, and 1 for everything else.
func (e EOTF)Gamma() float64 {
	switch e {
	case EOTFGamma22: return 2.2
	case EOTFGamma24: return 2.4
	case EOTFGamma26: return 2.6
	}
	return 1
}

// Linearize decodes one channel. None of the curves take a log, so
// there is no domain to guard.
func Linearize(x float64, o OETF) float64 {
	switch o {
	case OETFDaVinciIntermediate:
		if x <= 0.02740668 {
			return x / 10.44426855
		}
		return math.Exp2(x/0.07329248 - 7) - 0.0075

	case OETFTLog:
		if x < 0.075 {
			return (x - 0.075) / 16.184376489665897
		}
		return math.Exp((x - 0.5520126568606655)/0.09232902596577353) - 0.0057048244042473785

	case OETFACEScct:
		if x <= 0.155251141552511 {
			return (x - 0.0729055341958355) / 10.5402377416545
		}
		return math.Exp2(x*17.52 - 9.72)

	case OETFLogC3:
		if x < 5.367655*0.010591 + 0.092809 {
			return (x - 0.092809) / 5.367655
		}
		return (math.Pow(10, (x - 0.385537)/0.247190) - 0.052272) / 5.555556

	case OETFLogC4:
		if x < -0.7774983977293537 {
			return x*0.3033266726886969 - 0.7774983977293537
		}
		return (math.Exp2(14*(x - 0.09286412512218964)/0.9071358748778103 + 6) - 64) / 2231.8263090676883

	case OETFLog3G10:
		if x < 0 {
			return x/15.1927 - 0.01
		}
		return (math.Pow(10, x/0.224282) - 1)/155.975327 - 0.01

	case OETFVLog:
		if x < 0.181 {
			return (x - 0.125) / 5.6
		}
		return math.Pow(10, (x - 0.598206)/0.241514) - 0.00873

	case OETFSLog3:
		if x < 171.2102946929/1023 {
			return (x*1023 - 95) * 0.01125 / (171.2102946929 - 95)
		}
		return math.Pow(10, (x*1023 - 420)/261.5)*(0.18 + 0.01) - 0.01

	case OETFFLog2:
		if x < 0.100686685370811 {
			return (x - 0.092864) / 8.799461
		}
		return math.Pow(10, (x - 0.384316)/0.245281)/5.555556 - 0.064829/5.555556
	}
	return x
}

func LinearizeRGB(v emath.Vec3, o OETF) emath.Vec3 {
	if o == OETFLinear {
		return v
	}
	return emath.Vec3{Linearize(v[0], o), Linearize(v[1], o), Linearize(v[2], o)}
}

// DisplayEncode takes display-linear RGB to the display signal. For PQ
// the input is normalized so 1.0 is 10000 nits; for HLG 1.0 is peak.
func DisplayEncode(v emath.Vec3, e EOTF) emath.Vec3 {
	switch e {
	case EOTFPQ:  return PQEncode(v)
	case EOTFHLG: return HLGEncode(v)
	case EOTFGamma22, EOTFGamma24, EOTFGamma26:
		g := 1 / e.Gamma()
		return v.Map(func(x float64) float64 { return math.Pow(math.Max(0, x), g) })
	}
	return v
}

// DisplayDecode is the inverse of DisplayEncode.
func DisplayDecode(v emath.Vec3, e EOTF) emath.Vec3 {
	switch e {
	case EOTFPQ:  return PQDecode(v)
	case EOTFHLG: return HLGDecode(v)
	case EOTFGamma22, EOTFGamma24, EOTFGamma26:
		g := e.Gamma()
		return v.Map(func(x float64) float64 { return math.Pow(math.Max(0, x), g) })
	}
	return v
}

// ST.2084 constants
const(
	pqM1 = 2610.0 / 16384
	pqM2 = 2523.0 / 32
	pqC1 = 107.0 / 128
	pqC2 = 2413.0 / 128
	pqC3 = 2392.0 / 128
)

// PQEncode floors negative light at zero; the curve has a pole just
// below it.
func PQEncode(v emath.Vec3) emath.Vec3 {
	v.FloorAt(0)
	v = emath.SafePow3(v, pqM1)
	v = v.Map(func(x float64) float64 { return (pqC1 + pqC2*x) / (1 + pqC3*x) })
	return emath.SafePow3(v, pqM2)
}

func PQDecode(v emath.Vec3) emath.Vec3 {
	v = emath.SafePow3(v, 1/pqM2)
	v = v.Map(func(x float64) float64 { return emath.SafeDiv(x-pqC1, pqC2-pqC3*x) })
	return emath.SafePow3(v, 1/pqM1)
}

// HLG (BT.2100) constants
const(
	hlgA = 0.17883277
	hlgB = 0.28466892
	hlgC = 0.55991073
	hlgGamma = 1.2
)

func hlgLuminance(v emath.Vec3) float64 {
	return 0.2627*v[0] + 0.6780*v[1] + 0.0593*v[2]
}

// HLGEncode removes the system gamma using the display luminance, then
// applies the HLG OETF per channel.
func HLGEncode(v emath.Vec3) emath.Vec3 {
	yd := hlgLuminance(v)
	scale := 0.0
	if yd > 0 {
		scale = math.Pow(yd, (1 - hlgGamma)/hlgGamma)
	}
	return v.Scale(scale).Map(func(x float64) float64 {
		if x <= 1.0/12 {
			return math.Sqrt(math.Max(0, 3*x))
		}
		return hlgA*math.Log(12*x - hlgB) + hlgC
	})
}

func HLGDecode(v emath.Vec3) emath.Vec3 {
	v = v.Map(func(x float64) float64 {
		if x <= 0.5 {
			return x * x / 3
		}
		return (math.Exp((x - hlgC)/hlgA) + hlgB) / 12
	})
	return v.Scale(emath.SafePow(hlgLuminance(v), hlgGamma-1))
}
