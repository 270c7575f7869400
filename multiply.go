package ecfft

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Multiply returns the product polynomial p*q, the exact convolution of the
// two coefficient sequences modulo p. It requires a classic-mode tree and
// deg(p) + deg(q) < n, returning ErrUnsupportedMode respectively
// ErrInsufficientDomainSize otherwise; in the latter case the caller must
// rebuild the tree with a larger k.
//
// On elliptic-curve trees the weighted transform is a bijective change of
// basis rather than point evaluation, so pointwise products do not realize
// convolution and Multiply refuses to run.
//
// Both operands are padded to length n, evaluated over the tree (the two
// forward transforms run concurrently), multiplied pointwise, and the
// product values are interpolated back to coefficient form.
func (e *Evaluator) Multiply(p, q Polynomial) (Polynomial, error) {

	if e.t.mode != Classic {
		return Polynomial{}, fmt.Errorf("convolution by pointwise products needs point evaluation: %w", ErrUnsupportedMode)
	}

	dp, dq := p.Degree(), q.Degree()

	// The zero polynomial absorbs the product.
	if dp < 0 || dq < 0 {
		return Polynomial{}, nil
	}

	n := e.t.N()

	if dp+dq >= n {
		return Polynomial{}, fmt.Errorf("product degree %d, domain size %d: %w", dp+dq, n, ErrInsufficientDomainSize)
	}

	var vp, vq []uint64

	var g errgroup.Group
	g.Go(func() (err error) {
		vp, err = e.Evaluate(p)
		return
	})
	g.Go(func() (err error) {
		vq, err = e.Evaluate(q)
		return
	})
	if err := g.Wait(); err != nil {
		return Polynomial{}, err
	}

	f := e.t.f
	for i := range vp {
		vp[i] = f.Mul(vp[i], vq[i])
	}

	r, err := e.Interpolate(vp)
	if err != nil {
		return Polynomial{}, err
	}

	return Polynomial{Coeffs: r.Coeffs[:dp+dq+1]}, nil
}
