// Package ff implements arithmetic over a prime field F_p for a modulus
// chosen at runtime, with precomputed Barrett and Montgomery constants.
// All values handled by the package are canonical residues in [0, p).
package ff

import (
	"fmt"
	"math/bits"
)

// MaxModulusBits is the largest supported modulus bit-size. The bound
// keeps the Barrett reduction of 64x64 bit products exact.
const MaxModulusBits = 61

// Field stores the precomputations attached to a prime modulus.
type Field struct {

	// Modulus, a prime p with 2 < p < 2^61
	Modulus uint64

	// 2^bit_length(Modulus) - 1
	Mask uint64

	// Fast reduction constants
	BRedConstant [2]uint64 // Barrett Reduction
	MRedConstant uint64    // Montgomery Reduction
}

// NewField creates a new Field for the prime modulus p.
// Returns an error if p is not an odd prime or exceeds MaxModulusBits bits.
func NewField(p uint64) (*Field, error) {

	if bits.Len64(p) > MaxModulusBits {
		return nil, fmt.Errorf("invalid modulus: %d exceeds %d bits", p, MaxModulusBits)
	}

	if p < 3 || !IsPrime(p) {
		return nil, fmt.Errorf("invalid modulus: %d is not an odd prime", p)
	}

	return &Field{
		Modulus:      p,
		Mask:         (1 << uint64(bits.Len64(p-1))) - 1,
		BRedConstant: GenBRedConstant(p),
		MRedConstant: GenMRedConstant(p),
	}, nil
}

// Add returns x + y mod p.
func (f *Field) Add(x, y uint64) uint64 {
	return CRed(x+y, f.Modulus)
}

// Sub returns x - y mod p.
func (f *Field) Sub(x, y uint64) uint64 {
	return CRed(x+f.Modulus-y, f.Modulus)
}

// Neg returns -x mod p.
func (f *Field) Neg(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	return f.Modulus - x
}

// Mul returns x * y mod p.
func (f *Field) Mul(x, y uint64) uint64 {
	return BRed(x, y, f.Modulus, f.BRedConstant)
}

// Reduce returns x mod p for an arbitrary 64-bit x.
func (f *Field) Reduce(x uint64) uint64 {
	return BRedAdd(x, f.Modulus, f.BRedConstant)
}

// Pow returns x^e mod p, using square-and-multiply in Montgomery form.
func (f *Field) Pow(x, e uint64) uint64 {

	q, qInv := f.Modulus, f.MRedConstant

	result := MForm(1, q, f.BRedConstant)
	x = MForm(x, q, f.BRedConstant)

	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			result = MRed(result, x, q, qInv)
		}
		x = MRed(x, x, q, qInv)
	}

	return IMForm(result, q, qInv)
}

// Inv returns x^-1 mod p, computed as x^(p-2). Inv(0) returns 0.
func (f *Field) Inv(x uint64) uint64 {
	return f.Pow(x, f.Modulus-2)
}

// TwoAdicGenerator returns a generator of the multiplicative subgroup of
// order 2^k of F_p. Returns an error if 2^k does not divide p-1.
func (f *Field) TwoAdicGenerator(k int) (uint64, error) {

	p := f.Modulus

	if k < 0 || k >= bits.Len64(p) || (p-1)&(1<<uint(k)-1) != 0 {
		return 0, fmt.Errorf("no subgroup of order 2^%d: 2^%d does not divide %d", k, k, p-1)
	}

	if k == 0 {
		return 1, nil
	}

	// g = c^((p-1)/2^k) has order exactly 2^k whenever c is a
	// quadratic non-residue, i.e. whenever g^(2^(k-1)) != 1.
	for c := uint64(2); c < p; c++ {
		g := ModExp(c, (p-1)>>uint(k), p)
		if f.Pow(g, 1<<uint(k-1)) != 1 {
			return g, nil
		}
	}

	return 0, fmt.Errorf("no generator found for subgroup of order 2^%d mod %d", k, p)
}
