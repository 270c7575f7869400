package ecfft

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tuneinsight/ecfft/ff"
	"github.com/tuneinsight/ecfft/utils"
	"github.com/tuneinsight/ecfft/utils/buffer"
)

// BinarySize returns the serialized size of the tree in bytes.
func (t *Tree) BinarySize() (size int) {

	size = 24 // modulus, k, mode

	for _, l := range t.layers {
		size += 8 * (1 + len(l.domain))
		size += 8 * (1 + len(l.psi.Num))
		size += 8 * (1 + len(l.psi.Den))
	}

	return
}

// WriteTo writes the tree on w. The weight tables are not part of the
// stream: they are derived from the isogeny denominators, so ReadFrom
// recomputes them and Digest authenticates everything that is written.
func (t *Tree) WriteTo(w io.Writer) (n int64, err error) {

	switch w := w.(type) {
	case buffer.Writer:

		var inc int64

		for _, c := range []uint64{t.f.Modulus, uint64(t.k), uint64(t.mode)} {
			if inc, err = buffer.WriteUint64(w, c); err != nil {
				return n + inc, err
			}
			n += inc
		}

		for _, l := range t.layers {
			for _, slice := range [][]uint64{l.domain, l.psi.Num, l.psi.Den} {
				if inc, err = buffer.WriteUint64Slice(w, slice); err != nil {
					return n + inc, err
				}
				n += inc
			}
		}

		return n, w.Flush()

	default:
		return t.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads a tree from r, as written by WriteTo. Use Digest to
// authenticate a tree read from an untrusted source: the digest covers the
// whole stream content.
func (t *Tree) ReadFrom(r io.Reader) (n int64, err error) {

	switch r := r.(type) {
	case buffer.Reader:

		var inc int64

		var p, k, mode uint64
		for _, c := range []*uint64{&p, &k, &mode} {
			if inc, err = buffer.ReadUint64(r, c); err != nil {
				return n + inc, err
			}
			n += inc
		}

		if k > MaxLogN {
			return n, fmt.Errorf("invalid serialized tree: log2 domain size %d exceeds %d", k, MaxLogN)
		}

		if Mode(mode) != Classic && Mode(mode) != EllipticCurve {
			return n, fmt.Errorf("invalid serialized tree: unknown mode %d", mode)
		}

		f, err := ff.NewField(p)
		if err != nil {
			return n, fmt.Errorf("invalid serialized tree: %w", err)
		}

		layers := make([]layer, k+1)

		for d := range layers {

			m := 1 << (uint(k) - uint(d))

			// A degree-2 rational map has at most 3 coefficients, which can
			// exceed the size of the deepest layers.
			max := utils.MaxInt(m, 3)

			var domain, num, den []uint64
			for _, dst := range []*[]uint64{&domain, &num, &den} {
				var slice []uint64
				if slice, inc, err = buffer.ReadUint64Slice(r, max); err != nil {
					return n + inc, err
				}
				n += inc
				*dst = slice
			}

			if len(domain) != m {
				return n, fmt.Errorf("invalid serialized tree: layer %d has %d points, want %d", d, len(domain), m)
			}

			l := layer{domain: domain, psi: Isogeny{Num: num, Den: den}}

			// Elliptic-curve layers carry merge weights den(x_i)^(m/2-1),
			// recomputed here rather than trusted from the stream.
			if Mode(mode) == EllipticCurve && d < int(k) {

				half := m >> 1
				denPoly := Polynomial{Coeffs: den}

				l.w = make([]uint64, m)
				l.wInv = make([]uint64, m)
				for i, x := range domain {
					dx := denPoly.Evaluate(f, x)
					if dx == 0 {
						return n, fmt.Errorf("invalid serialized tree: layer %d denominator vanishes at %d", d, x)
					}
					l.w[i] = f.Pow(dx, uint64(half-1))
					l.wInv[i] = f.Inv(l.w[i])
				}
			}

			layers[d] = l
		}

		t.f = f
		t.k = int(k)
		t.mode = Mode(mode)
		t.layers = layers

		return n, nil

	default:
		return t.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the tree into a []byte.
func (t *Tree) MarshalBinary() (data []byte, err error) {
	buf := buffer.NewBufferSize(t.BinarySize())
	_, err = t.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a []byte produced by MarshalBinary on the tree.
func (t *Tree) UnmarshalBinary(data []byte) (err error) {
	_, err = t.ReadFrom(buffer.NewBuffer(data))
	return
}
