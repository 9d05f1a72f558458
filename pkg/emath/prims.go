package emath

// Guarded scalar functions used by the pixel pipeline. None of these
// return NaN or Inf for finite inputs in their documented domains; the
// shortcut branches are part of the curve definitions, not optimizations.

import "math"

// SafeDiv returns 0 when b is 0.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// SafePow returns a unchanged when a <= 0, so the sign survives.
func SafePow(a, b float64) float64 {
	if a <= 0 {
		return a
	}
	return math.Pow(a, b)
}

func Clamp(x, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, x))
}

func SafeDiv3(a Vec3, b float64) Vec3 {
	return Vec3{SafeDiv(a[0], b), SafeDiv(a[1], b), SafeDiv(a[2], b)}
}

func SafePow3(a Vec3, b float64) Vec3 {
	return Vec3{SafePow(a[0], b), SafePow(a[1], b), SafePow(a[2], b)}
}

func Clamp3(v Vec3, lo, hi float64) Vec3 {
	return Vec3{Clamp(v[0], lo, hi), Clamp(v[1], lo, hi), Clamp(v[2], lo, hi)}
}

// Hypot3 is the length of (x,y,z).
func Hypot3(v Vec3) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// CompressToeCubic is a rational toe x(x²+mw)/(x²+w). The inverse is
// the real root of the matching cubic.
func CompressToeCubic(x, m, w float64, invert bool) float64 {
	if m == 1 {
		return x
	}
	x2 := x * x
	if !invert {
		return x * (x2 + m*w) / (x2 + w)
	}
	p0 := x2 - 3*m*w
	p1 := 2*x2 + 27*w - 9*m*w
	p2 := SafePow(math.Sqrt(math.Max(0, x2*p1*p1-4*p0*p0*p0))/2+x*p1/2, 1.0/3)
	return SafeDiv(p0, 3*p2) + p2/3 + x/3
}

func CompressToeQuadratic(x, toe float64, invert bool) float64 {
	if toe == 0 {
		return x
	}
	if !invert {
		return SafeDiv(SafePow(x, 2), x+toe)
	}
	return (x + math.Sqrt(math.Max(0, x*(4*toe+x)))) / 2
}

// CompressHyperbolicPower is the main tonescale curve, (x/(x+s))^p.
func CompressHyperbolicPower(x, s, p float64) float64 {
	return SafePow(SafeDiv(x, x+s), p)
}

// ContrastHigh is identity below the pivot x0 = 0.18*2^pv, a power
// curve from x0 up to x1 = x0*2^pvlx, and a straight line above x1
// with the slope of the power curve at x1.
func ContrastHigh(x, p, pv, pvlx float64, invert bool) float64 {
	x0 := 0.18 * math.Pow(2, pv)
	if x < x0 || p == 1 {
		return x
	}

	o  := x0 - SafeDiv(x0, p)
	s0 := SafeDiv(math.Pow(x0, 1-p), p)
	x1 := x0 * math.Pow(2, pvlx)
	k1 := SafeDiv(p*s0*math.Pow(x1, p), x1)
	y1 := s0*math.Pow(x1, p) + o

	if invert {
		if x > y1 {
			return SafeDiv(x-y1, k1) + x1
		}
		return SafePow(SafeDiv(x-o, s0), 1/p)
	}
	if x > x1 {
		return k1*(x-x1) + y1
	}
	return s0*math.Pow(x, p) + o
}

func GaussWindow(x, w float64) float64 {
	x = SafeDiv(x, w)
	return math.Exp(-x * x)
}

// HueOffset is the signed angular distance from o to h, in [-π,π).
func HueOffset(h, o float64) float64 {
	return PositiveMod(h-o+math.Pi, 2*math.Pi) - math.Pi
}

// PositiveMod is x mod m, in [0,m).
func PositiveMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

func ComplementPower(x, p float64) float64 {
	return 1 - SafePow(1-x, SafeDiv(1, p))
}

// SigmoidCubic is 1 outside [0,1], and 1+s at x=0 easing to 1 at x=1.
func SigmoidCubic(x, s float64) float64 {
	if x < 0 || x > 1 {
		return 1
	}
	return 1 + s*(1-3*x*x+2*x*x*x)
}

// Softplus is a smooth floor; it passes x through once it is well clear
// of the knee, or when the knee is too sharp to evaluate.
func Softplus(x, s, x0, y0 float64) float64 {
	if x > 10*s+y0 || s < 1e-3 {
		return x
	}
	m := 1.0
	if math.Abs(y0) > 1e-6 {
		m = math.Exp(y0 / s)
	}
	m -= math.Exp(x0 / s)
	return s * math.Log(math.Max(math.SmallestNonzeroFloat64, m+math.Exp(x/s)))
}
