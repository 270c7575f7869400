package ecfft

import (
	"fmt"
)

// Evaluate applies the forward transform of the tree to p, padded to length
// n. The polynomial degree must be below n. On a classic tree the output is
// the point evaluation p(x_0), ..., p(x_n-1) over the layer-0 domain; on an
// elliptic-curve tree the weighted merge makes it the corresponding
// isogeny-induced linear transform instead.
//
// The computation is exact: every intermediate value is a field element and
// the result round-trips through Interpolate bit for bit.
func (e *Evaluator) Evaluate(p Polynomial) ([]uint64, error) {

	n := e.t.N()

	if p.Degree() >= n {
		return nil, fmt.Errorf("degree %d, domain size %d: %w", p.Degree(), n, ErrInsufficientDomainSize)
	}

	coeffs := make([]uint64, n)
	copy(coeffs, p.Coeffs)

	return e.evaluate(coeffs, 0), nil
}

// evaluate consumes its input slice.
func (e *Evaluator) evaluate(coeffs []uint64, depth int) []uint64 {

	m := len(coeffs)

	// A single coefficient is the value of the constant polynomial on the
	// single-point domain.
	if m == 1 {
		return coeffs
	}

	// Split into even- and odd-indexed coefficients.
	even := make([]uint64, m>>1)
	odd := make([]uint64, m>>1)
	for i := 0; i < m>>1; i++ {
		even[i] = coeffs[2*i]
		odd[i] = coeffs[2*i+1]
	}

	var v0, v1 []uint64
	if m >= e.threshold && e.acquire() {
		done := make(chan struct{})
		go func() {
			defer close(done)
			v1 = e.evaluate(odd, depth+1)
			e.release()
		}()
		v0 = e.evaluate(even, depth+1)
		<-done
	} else {
		v0 = e.evaluate(even, depth+1)
		v1 = e.evaluate(odd, depth+1)
	}

	// Cooley-Tukey merge: both preimages of the layer-(depth+1) point at
	// position i sit at positions i and i+m/2 of this layer's domain.
	f := e.t.f
	l := e.t.layers[depth]
	half := m >> 1
	out := coeffs

	for i := 0; i < half; i++ {
		a := f.Add(v0[i], f.Mul(l.domain[i], v1[i]))
		b := f.Add(v0[i], f.Mul(l.domain[i+half], v1[i]))
		if l.w != nil {
			a = f.Mul(a, l.w[i])
			b = f.Mul(b, l.w[i+half])
		}
		out[i], out[i+half] = a, b
	}

	return out
}
