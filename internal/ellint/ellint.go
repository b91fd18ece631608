// Package ellint binds the elliptic integrals used by the reference data
// generators. RF, RD and the complete integrals come straight from gonum's
// mathext; the remaining Carlson and Legendre forms are composed on top of
// them.
//
// All functions return NaN outside their domain instead of an error, the same
// way mathext does.
package ellint

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// Tolerance parameter r of Carlson's duplication algorithm.
const rjTolerance = 0x1p-52

// RF is Carlson's symmetric integral of the first kind.
func RF(x, y, z float64) float64 {
	return mathext.EllipticRF(x, y, z)
}

// RD is Carlson's degenerate integral of the second kind.
func RD(x, y, z float64) float64 {
	return mathext.EllipticRD(x, y, z)
}

// K is the complete elliptic integral of the first kind with parameter m.
func K(m float64) float64 {
	return mathext.CompleteK(m)
}

// E is the complete elliptic integral of the second kind with parameter m.
func E(m float64) float64 {
	return mathext.CompleteE(m)
}

// RC is Carlson's degenerate integral RC(x, y). For y < 0 the Cauchy
// principal value is returned.
func RC(x, y float64) float64 {
	switch {
	case math.IsNaN(x) || math.IsNaN(y) || x < 0 || y == 0:
		return math.NaN()
	case y < 0:
		return math.Sqrt(x/(x-y)) * RC(x-y, -y)
	case x == y:
		return 1 / math.Sqrt(x)
	case x == 0:
		return math.Pi / (2 * math.Sqrt(y))
	case x < y:
		return math.Atan(math.Sqrt((y-x)/x)) / math.Sqrt(y-x)
	case y/x > 0.5:
		return math.Atanh(math.Sqrt((x-y)/x)) / math.Sqrt(x-y)
	default:
		return math.Log((math.Sqrt(x)+math.Sqrt(x-y))/math.Sqrt(y)) / math.Sqrt(x-y)
	}
}

// rc1p computes RC(1, 1+y) without losing precision for small y.
func rc1p(y float64) float64 {
	switch {
	case y == -1:
		return math.Inf(1)
	case y < -1:
		return math.Sqrt(1/-y) * RC(-y, -1-y)
	case y == 0:
		return 1
	case y > 0:
		s := math.Sqrt(y)
		return math.Atan(s) / s
	case y > -0.5:
		s := math.Sqrt(-y)
		return (math.Log1p(s) - math.Log1p(-s)) / (2 * s)
	default:
		s := math.Sqrt(-y)
		return math.Log((1+s)/math.Sqrt(1+y)) / s
	}
}

// RG is Carlson's symmetric integral of the second kind.
func RG(x, y, z float64) float64 {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsNaN(z) || x < 0 || y < 0 || z < 0 {
		return math.NaN()
	}
	// The integral is symmetric; keep the largest argument in z so the
	// RF/RD identity below never divides by zero.
	if x > z {
		x, z = z, x
	}
	if y > z {
		y, z = z, y
	}
	switch {
	case z == 0:
		return 0
	case x == 0 && y == 0:
		return math.Sqrt(z) / 2
	}
	return (z*RF(x, y, z) - (x-z)*(y-z)*RD(x, y, z)/3 + math.Sqrt(x*y/z)) / 2
}

// RJ is Carlson's symmetric integral of the third kind. At most one of x, y
// and z may be zero and p must be non-zero. For p < 0 the Cauchy principal
// value is returned.
func RJ(x, y, z, p float64) float64 {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsNaN(z) || math.IsNaN(p) {
		return math.NaN()
	}
	if math.Min(x, math.Min(y, z)) < 0 || math.Min(x+y, math.Min(y+z, x+z)) == 0 || p == 0 {
		return math.NaN()
	}
	if p > 0 {
		return rj(x, y, z, p)
	}

	if x > y {
		x, y = y, x
	}
	if y > z {
		y, z = z, y
	}
	if x > y {
		x, y = y, x
	}
	q := -p
	pv := (z*(x+y+q) - x*y) / (z + q)
	v := (pv-z)*rj(x, y, z, pv) - 3*RF(x, y, z) +
		3*math.Sqrt(x*y*z/(x*y+pv*q))*RC(x*y+pv*q, pv*q)
	return v / (z + q)
}

// rj is the duplication algorithm for p > 0.
func rj(x, y, z, p float64) float64 {
	if x == y && y == z && z == p {
		return 1 / (x * math.Sqrt(x))
	}

	// RJ(λx, λy, λz, λp) = λ^(-3/2) RJ(x, y, z, p). Scaling by an even power
	// of two keeps the products below in range and is exact.
	_, exp := math.Frexp(math.Max(math.Max(x, y), math.Max(z, p)))
	if s := exp / 2; s != 0 {
		x, y, z, p = math.Ldexp(x, -2*s), math.Ldexp(y, -2*s), math.Ldexp(z, -2*s), math.Ldexp(p, -2*s)
		return math.Ldexp(rj(x, y, z, p), -3*s)
	}

	a0 := (x + y + z + 2*p) / 5
	delta := (p - x) * (p - y) * (p - z)
	q := math.Pow(rjTolerance/4, -1.0/6) *
		math.Max(math.Max(math.Abs(a0-x), math.Abs(a0-y)), math.Max(math.Abs(a0-z), math.Abs(a0-p)))

	x0, y0, z0 := x, y, z
	a := a0
	fm := 1.0
	var sum float64
	for q/fm >= math.Abs(a) {
		sx, sy, sz, sp := math.Sqrt(x), math.Sqrt(y), math.Sqrt(z), math.Sqrt(p)
		lambda := sx*sy + sx*sz + sy*sz
		d := (sp + sx) * (sp + sy) * (sp + sz)
		e := delta / d / d
		if e < -0.5 && e > -1.5 {
			// 1+e cancels; compute it directly.
			b := 2 * sp * (p + sx*(sy+sz) + sy*sz) / d
			sum += RC(1, b) / (fm * d)
		} else {
			sum += rc1p(e) / (fm * d)
		}

		x = (x + lambda) / 4
		y = (y + lambda) / 4
		z = (z + lambda) / 4
		p = (p + lambda) / 4
		a = (a + lambda) / 4
		fm *= 4
		delta /= 64
	}

	X := (a0 - x0) / (fm * a)
	Y := (a0 - y0) / (fm * a)
	Z := (a0 - z0) / (fm * a)
	P := -(X + Y + Z) / 2
	e2 := X*Y + X*Z + Y*Z - 3*P*P
	e3 := X*Y*Z + 2*e2*P + 4*P*P*P
	e4 := (2*X*Y*Z + e2*P + 3*P*P*P) * P
	e5 := X * Y * Z * P * P

	series := 1 - 3*e2/14 + e3/6 + 9*e2*e2/88 - 3*e4/22 - 9*e2*e3/52 + 3*e5/26
	return series/(fm*a*math.Sqrt(a)) + 6*sum
}

// Ellip3 is the complete elliptic integral of the third kind Π(n, k) with
// modulus k, in the argument order of Boost's ellint_3(k, n). For n > 1 the
// Cauchy principal value is returned.
func Ellip3(k, n float64) float64 {
	if math.IsNaN(k) || math.IsNaN(n) {
		return math.NaN()
	}
	m := k * k
	switch {
	case m > 1:
		return math.NaN()
	case n == 1:
		return math.Inf(1)
	case math.IsInf(n, -1):
		return 0
	case m == 1:
		return math.Copysign(math.Inf(1), 1-n)
	case n == 0:
		return K(m)
	case m == 0 && n > 1:
		return 0
	}
	mc := 1 - m
	if n > 1 {
		return -m / (3 * n) * RJ(0, mc, 1, 1-m/n)
	}
	return RF(0, mc, 1) + n/3*RJ(0, mc, 1, 1-n)
}

// HeumanLambda is Heuman's lambda function Λ0(φ, m) for 0 ≤ m < 1.
func HeumanLambda(phi, m float64) float64 {
	if math.IsNaN(phi) || math.IsNaN(m) || math.IsInf(phi, 0) || m < 0 || m >= 1 {
		return math.NaN()
	}
	if m == 0 {
		return math.Sin(phi)
	}

	n := math.Round(phi / (math.Pi / 2))
	if math.Abs(phi-n*math.Pi/2) < 0x1p-52 {
		return n
	}

	// Λ0(φ + jπ) = Λ0(φ) + 2j, so reduce φ into [-π/2, π/2].
	j := math.Round(phi / math.Pi)
	r := phi - j*math.Pi

	mc := 1 - m
	kc := K(mc)
	f := mathext.EllipticF(r, mc)
	zeta := mathext.EllipticE(r, mc) - E(mc)/kc*f
	return 2*j + f/kc + 2/math.Pi*K(m)*zeta
}
