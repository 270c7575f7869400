package ecfft

import (
	"github.com/tuneinsight/ecfft/ff"
)

// Point is a point of a Weierstrass curve in affine coordinates, or the
// point at infinity.
type Point struct {
	X, Y     uint64
	Infinite bool
}

// Infinity returns the point at infinity.
func Infinity() Point {
	return Point{Infinite: true}
}

// Curve is a short Weierstrass curve y^2 = x^3 + ax + b over F_p. It is only
// used transiently during elliptic-curve-mode domain precomputation, to walk
// the coset and to derive isogeny data; it is not retained by the Tree.
type Curve struct {
	A, B uint64
}

// IsSingular reports whether the discriminant 4a^3 + 27b^2 vanishes.
func (c Curve) IsSingular(f *ff.Field) bool {
	fourACube := f.Mul(4, f.Mul(c.A, f.Mul(c.A, c.A)))
	twentySevenBSquare := f.Mul(27, f.Mul(c.B, c.B))
	return f.Add(fourACube, twentySevenBSquare) == 0
}

// IsOnCurve reports whether P satisfies the curve equation.
func (c Curve) IsOnCurve(f *ff.Field, P Point) bool {
	if P.Infinite {
		return true
	}
	lhs := f.Mul(P.Y, P.Y)
	rhs := f.Add(f.Mul(P.X, f.Mul(P.X, P.X)), f.Add(f.Mul(c.A, P.X), c.B))
	return lhs == rhs
}

// Add adds two points of the curve. It does not check that the points lie
// on the curve.
func (c Curve) Add(f *ff.Field, P, Q Point) Point {

	if P.Infinite {
		return Q
	}
	if Q.Infinite {
		return P
	}

	if P.X == Q.X && f.Add(P.Y, Q.Y) == 0 {
		return Infinity()
	}

	// Slope of the chord, or of the tangent when P = Q.
	var s uint64
	if P.X == Q.X {
		s = f.Mul(f.Add(f.Mul(3, f.Mul(P.X, P.X)), c.A), f.Inv(f.Add(P.Y, P.Y)))
	} else {
		s = f.Mul(f.Sub(Q.Y, P.Y), f.Inv(f.Sub(Q.X, P.X)))
	}

	x := f.Sub(f.Sub(f.Mul(s, s), P.X), Q.X)
	y := f.Sub(f.Mul(s, f.Sub(P.X, x)), P.Y)

	return Point{X: x, Y: y}
}

// ScalarMul returns t*P, using double-and-add.
func (c Curve) ScalarMul(f *ff.Field, t uint64, P Point) Point {
	R := Infinity()
	for ; t > 0; t >>= 1 {
		if t&1 == 1 {
			R = c.Add(f, R, P)
		}
		P = c.Add(f, P, P)
	}
	return R
}
