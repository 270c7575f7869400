package ecfft

import (
	"github.com/tuneinsight/ecfft/ff"
)

// Polynomial is a dense polynomial over F_p, stored as its coefficient
// sequence in increasing degree order. Coefficients are canonical residues.
type Polynomial struct {
	Coeffs []uint64
}

// NewPolynomial returns the polynomial with the given coefficients.
// The slice is not copied.
func NewPolynomial(coeffs []uint64) Polynomial {
	return Polynomial{Coeffs: coeffs}
}

// Degree returns the index of the highest non-zero coefficient,
// or -1 for the zero polynomial.
func (p Polynomial) Degree() int {
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		if p.Coeffs[i] != 0 {
			return i
		}
	}
	return -1
}

// Evaluate returns p(x) mod p using Horner's rule.
func (p Polynomial) Evaluate(f *ff.Field, x uint64) (y uint64) {
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		y = f.Add(f.Mul(y, x), p.Coeffs[i])
	}
	return
}

// MulNaive returns the product p*q computed with the schoolbook O(n^2)
// convolution. It is the reference against which the fast multiplication
// is tested.
func (p Polynomial) MulNaive(f *ff.Field, q Polynomial) Polynomial {

	dp, dq := p.Degree(), q.Degree()
	if dp < 0 || dq < 0 {
		return Polynomial{}
	}

	coeffs := make([]uint64, dp+dq+1)
	for i := 0; i <= dp; i++ {
		for j := 0; j <= dq; j++ {
			coeffs[i+j] = f.Add(coeffs[i+j], f.Mul(p.Coeffs[i], q.Coeffs[j]))
		}
	}

	return Polynomial{Coeffs: coeffs}
}

// Equal reports whether p and q have the same coefficients, ignoring
// trailing zeros.
func (p Polynomial) Equal(q Polynomial) bool {

	dp, dq := p.Degree(), q.Degree()
	if dp != dq {
		return false
	}

	for i := 0; i <= dp; i++ {
		if p.Coeffs[i] != q.Coeffs[i] {
			return false
		}
	}

	return true
}
