package emath

// 3-vectors and 3x3 matrices, used for all the color transforms. Matrices
// are row-major, and Apply computes M*v.

import(
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
	"gonum.org/v1/gonum/mat"
)

// Use local types so we can hang methods off them
type Vec3 f64.Vec3
type Mat3 f64.Mat3

func Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

func (a Mat3)Mult(b Mat3) Mat3 {
	return Mat3{
		a[3*0+0]*b[3*0+0] + a[3*0+1]*b[3*1+0] + a[3*0+2]*b[3*2+0],
		a[3*0+0]*b[3*0+1] + a[3*0+1]*b[3*1+1] + a[3*0+2]*b[3*2+1],
		a[3*0+0]*b[3*0+2] + a[3*0+1]*b[3*1+2] + a[3*0+2]*b[3*2+2],

		a[3*1+0]*b[3*0+0] + a[3*1+1]*b[3*1+0] + a[3*1+2]*b[3*2+0],
		a[3*1+0]*b[3*0+1] + a[3*1+1]*b[3*1+1] + a[3*1+2]*b[3*2+1],
		a[3*1+0]*b[3*0+2] + a[3*1+1]*b[3*1+2] + a[3*1+2]*b[3*2+2],

		a[3*2+0]*b[3*0+0] + a[3*2+1]*b[3*1+0] + a[3*2+2]*b[3*2+0],
		a[3*2+0]*b[3*0+1] + a[3*2+1]*b[3*1+1] + a[3*2+2]*b[3*2+1],
		a[3*2+0]*b[3*0+2] + a[3*2+1]*b[3*1+2] + a[3*2+2]*b[3*2+2],
	}
}

func (m Mat3)Apply(v Vec3) Vec3 {
	return Vec3{
		m[3*0+0]*v[0] + m[3*0+1]*v[1] + m[3*0+2]*v[2],
		m[3*1+0]*v[0] + m[3*1+1]*v[1] + m[3*1+2]*v[2],
		m[3*2+0]*v[0] + m[3*2+1]*v[1] + m[3*2+2]*v[2],
	}
}

func (m Mat3)Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

func (m Mat3)IsIdentity() bool {
	return m == Identity()
}

func (m Mat3)dense() *mat.Dense {
	return mat.NewDense(3, 3, m[:])
}

func (m Mat3)Det() float64 {
	return mat.Det(m.dense())
}

// Inverse returns an error for singular (or nearly singular) matrices.
func (m Mat3)Inverse() (Mat3, error) {
	var inv mat.Dense
	if err := inv.Inverse(m.dense()); err != nil {
		return Mat3{}, fmt.Errorf("invert matrix %v: %w", m[:], err)
	}
	ret := Mat3{}
	for r:=0; r<3; r++ {
		for c:=0; c<3; c++ {
			ret[3*r+c] = inv.At(r, c)
		}
	}
	return ret, nil
}

// RowSums is M*(1,1,1); for an RGB->XYZ matrix, the white point of the RGB space.
func (m Mat3)RowSums() Vec3 {
	return m.Apply(Vec3{1, 1, 1})
}

func (m Mat3)String() string {
	str := fmt.Sprintf("[%10f, %10f, %10f]\n", m[3*0+0], m[3*0+1], m[3*0+2])
	str += fmt.Sprintf("[%10f, %10f, %10f]\n", m[3*1+0], m[3*1+1], m[3*1+2])
	str += fmt.Sprintf("[%10f, %10f, %10f]\n", m[3*2+0], m[3*2+1], m[3*2+2])
	return str
}

func (v Vec3)String() string {
	return fmt.Sprintf("[%12.10f, %12.10f, %12.10f]", v[0], v[1], v[2])
}

func (v Vec3)Add(w Vec3) Vec3      { return Vec3{v[0]+w[0], v[1]+w[1], v[2]+w[2]} }
func (v Vec3)Sub(w Vec3) Vec3      { return Vec3{v[0]-w[0], v[1]-w[1], v[2]-w[2]} }
func (v Vec3)Mul(w Vec3) Vec3      { return Vec3{v[0]*w[0], v[1]*w[1], v[2]*w[2]} }
func (v Vec3)Scale(f float64) Vec3 { return Vec3{v[0]*f, v[1]*f, v[2]*f} }
func (v Vec3)AddScalar(f float64) Vec3 { return Vec3{v[0]+f, v[1]+f, v[2]+f} }
func (v Vec3)Dot(w Vec3) float64   { return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] }
func (v Vec3)Min() float64         { return math.Min(v[0], math.Min(v[1], v[2])) }
func (v Vec3)Max() float64         { return math.Max(v[0], math.Max(v[1], v[2])) }

// Map applies f to each channel
func (v Vec3)Map(f func(float64) float64) Vec3 {
	return Vec3{f(v[0]), f(v[1]), f(v[2])}
}

// Lerp returns v*(1-t) + w*t
func (v Vec3)Lerp(w Vec3, t float64) Vec3 {
	return Vec3{
		v[0]*(1-t) + w[0]*t,
		v[1]*(1-t) + w[1]*t,
		v[2]*(1-t) + w[2]*t,
	}
}

// Places the vector on the diagonal of a matrix
func (v Vec3)Diag() Mat3 {
	return Mat3{
		v[0],    0,    0,
		   0, v[1],    0,
		   0,    0, v[2],
	}
}

func (v *Vec3)FloorAt(min float64) {
	if v[0] < min { v[0] = min }
	if v[1] < min { v[1] = min }
	if v[2] < min { v[2] = min }
}

func (v *Vec3)CeilingAt(max float64) {
	if v[0] > max { v[0] = max }
	if v[1] > max { v[1] = max }
	if v[2] > max { v[2] = max }
}

func (v Vec3)IsFinite() bool {
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
