package ecfft

import (
	"encoding/binary"

	"github.com/tuneinsight/ecfft/ff"
	"github.com/tuneinsight/ecfft/utils/sampling"
)

// UniformSampler reads a PRNG and produces polynomials with coefficients
// uniformly distributed in [0, p), by masked rejection sampling.
type UniformSampler struct {
	prng sampling.PRNG
	f    *ff.Field

	buf []byte
	ptr int
}

// NewUniformSampler creates a new UniformSampler from a PRNG and a field.
// The sampler is not safe for concurrent use.
func NewUniformSampler(prng sampling.PRNG, f *ff.Field) *UniformSampler {
	return &UniformSampler{
		prng: prng,
		f:    f,
		buf:  make([]byte, 1024),
		ptr:  1024,
	}
}

// Read fills coeffs with uniform samples in [0, p).
func (u *UniformSampler) Read(coeffs []uint64) {

	p := u.f.Modulus
	mask := u.f.Mask

	for i := range coeffs {
		for {
			if u.ptr == len(u.buf) {
				if _, err := u.prng.Read(u.buf); err != nil {
					// Sanity check, this error should not happen.
					panic(err)
				}
				u.ptr = 0
			}

			c := binary.LittleEndian.Uint64(u.buf[u.ptr:]) & mask
			u.ptr += 8

			if c < p {
				coeffs[i] = c
				break
			}
		}
	}
}

// ReadNew samples a fresh polynomial with n coefficients.
func (u *UniformSampler) ReadNew(n int) Polynomial {
	coeffs := make([]uint64, n)
	u.Read(coeffs)
	return Polynomial{Coeffs: coeffs}
}
