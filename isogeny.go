package ecfft

import (
	"fmt"

	"github.com/tuneinsight/ecfft/ff"
)

// Isogeny is the x-coordinate action of a degree-2 isogeny, represented as
// the rational map x -> Num(x)/Den(x) with coefficients in increasing degree
// order. On a well-formed layer it is exactly 2-to-1 and halves the order of
// the acting group.
type Isogeny struct {
	Num []uint64
	Den []uint64
}

// Eval returns the image of x under the rational map. Returns an error if
// the denominator vanishes at x, i.e. if x is not in the map's domain.
func (iso Isogeny) Eval(f *ff.Field, x uint64) (uint64, error) {

	den := Polynomial{Coeffs: iso.Den}.Evaluate(f, x)
	if den == 0 {
		return 0, fmt.Errorf("isogeny denominator vanishes at %d", x)
	}

	num := Polynomial{Coeffs: iso.Num}.Evaluate(f, x)

	return f.Mul(num, f.Inv(den)), nil
}

// TwoIsogeny derives, with Vélu's formulas, the degree-2 isogeny whose
// kernel is generated by the 2-torsion point (x0, 0) of c. It returns the
// x-coordinate map
//
//	psi(x) = (x^2 - x0*x + t) / (x - x0),  t = 3*x0^2 + a,
//
// and the image curve y^2 = x^3 + (a-5t)x + (b-7*x0*t).
func (c Curve) TwoIsogeny(f *ff.Field, x0 uint64) (Isogeny, Curve) {

	t := f.Add(f.Mul(3, f.Mul(x0, x0)), c.A)
	w := f.Mul(x0, t)

	iso := Isogeny{
		Num: []uint64{t, f.Neg(x0), 1},
		Den: []uint64{f.Neg(x0), 1},
	}

	image := Curve{
		A: f.Sub(c.A, f.Mul(5, t)),
		B: f.Sub(c.B, f.Mul(7, w)),
	}

	return iso, image
}

// DeriveChain derives the length-k chain of degree-2 isogenies rooted at c
// for a generator gen of exact order 2^k. The kernel of the d-th map is the
// image, under the d preceding maps, of the 2-torsion point 2^(k-1-d)*gen.
//
// This is the derivation an external curve-search tool performs to produce
// the chain consumed by NewEllipticTree.
func DeriveChain(f *ff.Field, c Curve, gen Point, k int) ([]Isogeny, error) {

	if k < 0 || k > MaxLogN {
		return nil, fmt.Errorf("invalid chain length %d", k)
	}

	if !c.IsOnCurve(f, gen) {
		return nil, fmt.Errorf("generator is not on the curve")
	}

	if !gen.Infinite {
		gen = Point{X: f.Reduce(gen.X), Y: f.Reduce(gen.Y)}
	}

	// x-coordinates, on the root curve, of the points generating each
	// kernel. 2^(k-1-d)*gen becomes a 2-torsion point once pushed through
	// the d preceding maps.
	kernels := make([]uint64, k)
	for d := 0; d < k; d++ {
		T := c.ScalarMul(f, 1<<uint(k-1-d), gen)
		if T.Infinite {
			return nil, fmt.Errorf("generator order divides 2^%d, want exactly 2^%d", k-1-d, k)
		}
		kernels[d] = T.X
	}

	chain := make([]Isogeny, 0, k)
	for d := 0; d < k; d++ {

		// Push the kernel point down to the current curve.
		x0 := kernels[d]
		var err error
		for _, iso := range chain {
			if x0, err = iso.Eval(f, x0); err != nil {
				return nil, err
			}
		}

		// (x0, 0) must be 2-torsion on the current curve.
		if f.Add(f.Mul(x0, f.Mul(x0, x0)), f.Add(f.Mul(c.A, x0), c.B)) != 0 {
			return nil, fmt.Errorf("kernel point %d is not 2-torsion on the layer-%d curve", x0, d)
		}

		var iso Isogeny
		iso, c = c.TwoIsogeny(f, x0)
		chain = append(chain, iso)
	}

	return chain, nil
}
