package ecfft

import (
	"fmt"
)

// NewClassicTree builds an FFTree over F_p from the multiplicative subgroup
// of order n = 2^k. Layer 0 is the full subgroup {g^0, ..., g^(n-1)} in
// generator order, and each layer maps to the next by the squaring map
// psi(x) = x^2, which halves the subgroup order.
//
// generator must be a generator of the order-2^k subgroup, or zero to search
// for one. Fails with ErrOrderNotDivisible if 2^k does not divide p-1.
func NewClassicTree(p uint64, k int, generator uint64) (*Tree, error) {

	f, err := checkLogN(p, k)
	if err != nil {
		return nil, err
	}

	if (p-1)&(1<<uint(k)-1) != 0 {
		return nil, fmt.Errorf("p-1 = %d has no subgroup of order 2^%d: %w", p-1, k, ErrOrderNotDivisible)
	}

	g := generator
	if g == 0 {
		if g, err = f.TwoAdicGenerator(k); err != nil {
			return nil, fmt.Errorf("%s: %w", err, ErrOrderNotDivisible)
		}
	} else {
		if f.Pow(g, 1<<uint(k)) != 1 || (k > 0 && f.Pow(g, 1<<uint(k-1)) == 1) {
			return nil, fmt.Errorf("%d does not generate the order-2^%d subgroup: %w", g, k, ErrOrderNotDivisible)
		}
	}

	n := 1 << uint(k)

	// Layer 0: the subgroup in generator order.
	domain := make([]uint64, n)
	domain[0] = 1
	for i := 1; i < n; i++ {
		domain[i] = f.Mul(domain[i-1], g)
	}

	// The squaring map as a rational map, so that the tree shape is
	// identical to the elliptic-curve one.
	square := Isogeny{Num: []uint64{0, 0, 1}, Den: []uint64{1}}

	layers := make([]layer, k+1)
	for d := 0; d < k; d++ {
		layers[d] = layer{domain: domain, psi: square}
		next := make([]uint64, len(domain)>>1)
		for i := range next {
			next[i] = f.Mul(domain[i], domain[i])
		}
		domain = next
	}
	layers[k] = layer{domain: domain}

	return &Tree{f: f, k: k, mode: Classic, layers: layers}, nil
}
