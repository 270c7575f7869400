package ecfft

import (
	"fmt"

	"github.com/tuneinsight/ecfft/ff"
	"github.com/tuneinsight/ecfft/utils"
)

// CurveSpec describes an elliptic-curve evaluation domain: a curve
// y^2 = x^3 + Ax + B over F_p, a generator of its order-2^k subgroup, a
// coset offset point, and the chain of k degree-2 isogenies to push the
// domain through. It is produced by an external curve-search tool; see
// DeriveChain for the chain derivation.
type CurveSpec struct {
	A, B      uint64
	Generator Point
	Offset    Point
	Chain     []Isogeny
}

// NewEllipticTree builds an FFTree over F_p whose layer-0 domain is the
// x-coordinate set of the coset Offset + <Generator>, and whose layer d+1 is
// the image of layer d under the d-th isogeny of the chain.
//
// Every map of the chain is checked to be exactly 2-to-1 on its input
// domain, with the two preimages of any image occupying positions i and
// i+m/2. Fails with ErrInvalidIsogenyChain if the chain length differs from
// k or any check fails.
func NewEllipticTree(p uint64, k int, crv CurveSpec) (*Tree, error) {

	f, err := checkLogN(p, k)
	if err != nil {
		return nil, err
	}

	if len(crv.Chain) != k {
		return nil, fmt.Errorf("chain length %d, want %d: %w", len(crv.Chain), k, ErrInvalidIsogenyChain)
	}

	c := Curve{A: f.Reduce(crv.A), B: f.Reduce(crv.B)}
	if c.IsSingular(f) {
		return nil, fmt.Errorf("curve is singular: %w", ErrInvalidIsogenyChain)
	}

	gen, offset := canonical(f, crv.Generator), canonical(f, crv.Offset)

	if !c.IsOnCurve(f, gen) || !c.IsOnCurve(f, offset) {
		return nil, fmt.Errorf("generator or offset not on the curve: %w", ErrInvalidIsogenyChain)
	}

	// The generator must have exact order 2^k for the coset walk to
	// enumerate the domain without repetition.
	if !c.ScalarMul(f, 1<<uint(k), gen).Infinite || (k > 0 && c.ScalarMul(f, 1<<uint(k-1), gen).Infinite) {
		return nil, fmt.Errorf("generator does not have order 2^%d: %w", k, ErrInvalidIsogenyChain)
	}

	n := 1 << uint(k)

	// Layer 0: x-coordinates of the coset walk Offset + i*Generator.
	domain := make([]uint64, n)
	Q := offset
	for i := 0; i < n; i++ {
		if Q.Infinite {
			return nil, fmt.Errorf("coset walk reaches the point at infinity at step %d: %w", i, ErrInvalidIsogenyChain)
		}
		domain[i] = Q.X
		Q = c.Add(f, Q, gen)
	}

	layers := make([]layer, k+1)

	for d := 0; d < k; d++ {

		m := len(domain)
		half := m >> 1
		psi := crv.Chain[d]

		images := make([]uint64, m)
		for i, x := range domain {
			if images[i], err = psi.Eval(f, x); err != nil {
				return nil, fmt.Errorf("layer %d: %s: %w", d, err, ErrInvalidIsogenyChain)
			}
		}

		// Exactly 2-to-1 with the fixed (i, i+m/2) pairing: the two
		// halves agree pointwise, the paired preimages are distinct,
		// and the images are pairwise distinct.
		for i := 0; i < half; i++ {
			if images[i] != images[i+half] {
				return nil, fmt.Errorf("layer %d: positions %d and %d map to different values: %w", d, i, i+half, ErrInvalidIsogenyChain)
			}
			if domain[i] == domain[i+half] {
				return nil, fmt.Errorf("layer %d: preimage pair %d collapses: %w", d, i, ErrInvalidIsogenyChain)
			}
		}
		if len(utils.GetDistincts(images[:half])) != half {
			return nil, fmt.Errorf("layer %d: map is not 2-to-1: %w", d, ErrInvalidIsogenyChain)
		}

		// Merge weights w[i] = den(x_i)^(m/2-1).
		w := make([]uint64, m)
		wInv := make([]uint64, m)
		den := Polynomial{Coeffs: psi.Den}
		for i, x := range domain {
			w[i] = f.Pow(den.Evaluate(f, x), uint64(half-1))
			wInv[i] = f.Inv(w[i])
		}

		layers[d] = layer{domain: domain, psi: psi, w: w, wInv: wInv}
		domain = images[:half]
	}

	layers[k] = layer{domain: domain}

	return &Tree{f: f, k: k, mode: EllipticCurve, layers: layers}, nil
}

func canonical(f *ff.Field, P Point) Point {
	if P.Infinite {
		return Infinity()
	}
	return Point{X: f.Reduce(P.X), Y: f.Reduce(P.Y)}
}
