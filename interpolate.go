package ecfft

import (
	"fmt"
)

// Interpolate inverts Evaluate: given the n values of a polynomial over the
// layer-0 domain of the tree, it returns the unique polynomial of degree
// below n taking those values. The input slice is not modified.
//
// ErrSingularSystem is a defensive check against a malformed tree; it
// cannot be triggered by a tree built by this package.
func (e *Evaluator) Interpolate(values []uint64) (Polynomial, error) {

	n := e.t.N()

	if len(values) != n {
		return Polynomial{}, fmt.Errorf("got %d values, domain size %d: %w", len(values), n, ErrInsufficientDomainSize)
	}

	buf := make([]uint64, n)
	copy(buf, values)

	coeffs, err := e.interpolate(buf, 0)
	if err != nil {
		return Polynomial{}, err
	}

	return Polynomial{Coeffs: coeffs}, nil
}

// interpolate consumes its input slice.
func (e *Evaluator) interpolate(values []uint64, depth int) ([]uint64, error) {

	m := len(values)

	if m == 1 {
		return values, nil
	}

	// Undo the merge: for each preimage pair solve the 2x2 system
	//   v0 + x_i*v1 = V_i, v0 + x_j*v1 = V_j,  j = i+m/2,
	// for the half-size value vectors v0 and v1.
	f := e.t.f
	l := e.t.layers[depth]
	half := m >> 1

	v0 := make([]uint64, half)
	v1 := make([]uint64, half)

	for i := 0; i < half; i++ {

		xi, xj := l.domain[i], l.domain[i+half]

		vi, vj := values[i], values[i+half]
		if l.wInv != nil {
			vi = f.Mul(vi, l.wInv[i])
			vj = f.Mul(vj, l.wInv[i+half])
		}

		diff := f.Sub(xi, xj)
		if diff == 0 {
			return nil, fmt.Errorf("depth %d, position %d: %w", depth, i, ErrSingularSystem)
		}

		v1[i] = f.Mul(f.Sub(vi, vj), f.Inv(diff))
		v0[i] = f.Sub(vi, f.Mul(xi, v1[i]))
	}

	var p0, p1 []uint64
	var err0, err1 error
	if m >= e.threshold && e.acquire() {
		done := make(chan struct{})
		go func() {
			defer close(done)
			p1, err1 = e.interpolate(v1, depth+1)
			e.release()
		}()
		p0, err0 = e.interpolate(v0, depth+1)
		<-done
	} else {
		p0, err0 = e.interpolate(v0, depth+1)
		p1, err1 = e.interpolate(v1, depth+1)
	}

	if err0 != nil {
		return nil, err0
	}
	if err1 != nil {
		return nil, err1
	}

	// Reassemble even- and odd-indexed coefficients.
	out := values
	for i := 0; i < half; i++ {
		out[2*i] = p0[i]
		out[2*i+1] = p1[i]
	}

	return out, nil
}
