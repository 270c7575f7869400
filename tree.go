// Package ecfft implements exact O(n log n) polynomial multiplication over a
// prime field F_p by evaluation and interpolation on a precomputed domain.
//
// The evaluation domain is the top layer of an FFTree: a binary-tree-shaped
// precomputation of depth k in which each layer holds an ordered set of field
// elements and a degree-2 halving map psi onto the next layer. The tree is
// built either from a root of unity of order 2^k (classic mode, requiring
// 2^k | p-1) or from a chain of degree-2 isogenies between elliptic curve
// groups (elliptic-curve mode), which removes the divisibility constraint.
//
// A Tree is expensive to build and immutable afterwards: it is meant to be
// constructed once per (p, k, mode) and shared read-only across arbitrarily
// many concurrent Evaluate, Interpolate and Multiply calls.
package ecfft

import (
	"encoding/binary"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/zeebo/blake3"

	"github.com/tuneinsight/ecfft/ff"
)

// MaxLogN is the largest supported tree depth.
const MaxLogN = 32

// Mode selects how the evaluation domain of a Tree is constructed.
type Mode int

const (
	// Classic derives the domain from a root of unity of order 2^k.
	Classic Mode = iota
	// EllipticCurve derives the domain from an isogeny chain.
	EllipticCurve
)

// DomainSpec is the build-time description of an evaluation domain, as
// produced by an external curve/isogeny search tool.
type DomainSpec struct {
	// Modulus is the prime p.
	Modulus uint64
	// LogN is k, the base-2 logarithm of the domain size.
	LogN int
	// Mode selects the construction.
	Mode Mode
	// Generator is the order-2^k subgroup generator (classic mode).
	// Zero means search for one.
	Generator uint64
	// Curve carries the curve descriptor and isogeny chain
	// (elliptic-curve mode).
	Curve *CurveSpec
}

// Equal reports whether the two specifications describe the same domain.
func (s DomainSpec) Equal(other DomainSpec) bool {
	// Compare under a method-less alias: cmp.Equal would otherwise call
	// this very method and recurse without bound.
	type domainSpec DomainSpec
	return cmp.Equal(domainSpec(s), domainSpec(other))
}

// NewTree builds the FFTree described by spec.
func NewTree(spec DomainSpec) (*Tree, error) {
	switch spec.Mode {
	case Classic:
		return NewClassicTree(spec.Modulus, spec.LogN, spec.Generator)
	case EllipticCurve:
		if spec.Curve == nil {
			return nil, fmt.Errorf("missing curve descriptor: %w", ErrInvalidIsogenyChain)
		}
		return NewEllipticTree(spec.Modulus, spec.LogN, *spec.Curve)
	default:
		return nil, fmt.Errorf("unknown domain mode %d", spec.Mode)
	}
}

// layer is one depth of the tree: its ordered domain, the halving map to the
// next layer and, on elliptic-curve layers, the merge weight tables
// w[i] = den(x_i)^(m/2-1) and their inverses.
type layer struct {
	domain []uint64
	psi    Isogeny
	w      []uint64
	wInv   []uint64
}

// Tree is the precomputed FFTree. It is read-only after construction.
//
// Layer d holds n/2^d domain points; the two preimages under psi_d of any
// point of layer d+1 occupy positions i and i+m/2 of layer d (m = n/2^d),
// which is the pairing the recursive transforms rely on.
type Tree struct {
	f      *ff.Field
	k      int
	mode   Mode
	layers []layer
}

// K returns the depth of the tree.
func (t *Tree) K() int {
	return t.k
}

// Mode returns the construction mode of the tree.
func (t *Tree) Mode() Mode {
	return t.mode
}

// N returns the size 2^k of the evaluation domain.
func (t *Tree) N() int {
	return 1 << uint(t.k)
}

// Field returns the field the tree was built over.
func (t *Tree) Field() *ff.Field {
	return t.f
}

// Domain returns a copy of the ordered evaluation domain at the given depth.
func (t *Tree) Domain(depth int) []uint64 {
	domain := make([]uint64, len(t.layers[depth].domain))
	copy(domain, t.layers[depth].domain)
	return domain
}

// Psi returns a copy of the halving map from the given depth to the next.
func (t *Tree) Psi(depth int) Isogeny {
	src := t.layers[depth].psi
	dst := Isogeny{Num: make([]uint64, len(src.Num)), Den: make([]uint64, len(src.Den))}
	copy(dst.Num, src.Num)
	copy(dst.Den, src.Den)
	return dst
}

// Digest returns a blake3 hash identifying the tree contents. Two trees
// built from the same specification have the same digest, which callers can
// use to key caches of precomputed trees.
func (t *Tree) Digest() (digest [32]byte) {

	h := blake3.New()

	buf := make([]byte, 8)

	writeUint64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf, v)
		h.Write(buf)
	}

	writeUint64(t.f.Modulus)
	writeUint64(uint64(t.k))
	writeUint64(uint64(t.mode))

	for _, l := range t.layers {
		for _, x := range l.domain {
			writeUint64(x)
		}
		for _, c := range l.psi.Num {
			writeUint64(c)
		}
		for _, c := range l.psi.Den {
			writeUint64(c)
		}
	}

	copy(digest[:], h.Sum(nil))

	return
}

// checkLogN validates k and returns the field for p.
func checkLogN(p uint64, k int) (*ff.Field, error) {

	if k < 0 || k > MaxLogN {
		return nil, fmt.Errorf("invalid log2 domain size %d: must be in [0, %d]", k, MaxLogN)
	}

	return ff.NewField(p)
}
