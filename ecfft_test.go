package ecfft

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/ecfft/utils/sampling"
)

// 0x3ee0001 - 1 = 2^17 * 503
var testPrime = uint64(0x3ee0001)

func testString(opname string, t *Tree) string {
	return fmt.Sprintf("%s/p=%d/N=%d", opname, t.Field().Modulus, t.N())
}

type testContext struct {
	tree    *Tree
	sampler *UniformSampler
}

func genTestContext(t *Tree) (tc *testContext, err error) {

	tc = &testContext{tree: t}

	prng, err := sampling.NewKeyedPRNG([]byte{'e', 'c', 'f', 'f', 't'})
	if err != nil {
		return nil, err
	}

	tc.sampler = NewUniformSampler(prng, t.Field())

	return
}

// genTestTrees returns one classic and one elliptic-curve tree per listed size.
func genTestTrees(t *testing.T) (trees []*Tree) {

	for _, k := range []int{0, 1, 4, 8, 10} {
		tree, err := NewClassicTree(testPrime, k, 0)
		require.NoError(t, err)
		trees = append(trees, tree)
	}

	for _, k := range []int{1, 2, 3, 4} {
		tree, err := NewEllipticTree(testCurveP, k, testCurveSpec(t, k))
		require.NoError(t, err)
		trees = append(trees, tree)
	}

	return
}

func TestClassicTree(t *testing.T) {

	t.Run("Domain/p=17/N=4", func(t *testing.T) {
		// Worked example: g = 4 has order 4 mod 17.
		tree, err := NewClassicTree(17, 2, 4)
		require.NoError(t, err)
		require.Equal(t, []uint64{1, 4, 16, 13}, tree.Domain(0))
		require.Equal(t, []uint64{1, 16}, tree.Domain(1))
		require.Equal(t, []uint64{1}, tree.Domain(2))

		// The same tree is found when searching for the generator.
		searched, err := NewClassicTree(17, 2, 0)
		require.NoError(t, err)
		require.Equal(t, tree.N(), searched.N())
		g := searched.Domain(0)[1]
		f := searched.Field()
		require.Equal(t, uint64(1), f.Pow(g, 4))
		require.NotEqual(t, uint64(1), f.Pow(g, 2))
	})

	t.Run("OrderNotDivisible", func(t *testing.T) {
		// 2^5 does not divide 17-1 = 16.
		_, err := NewClassicTree(17, 5, 0)
		require.ErrorIs(t, err, ErrOrderNotDivisible)

		// 2^3 does not divide 13-1 = 4*3.
		_, err = NewClassicTree(13, 3, 0)
		require.ErrorIs(t, err, ErrOrderNotDivisible)

		// 2^2 does divide 12.
		_, err = NewClassicTree(13, 2, 0)
		require.NoError(t, err)

		// 16 has order 2 mod 17, not 4.
		_, err = NewClassicTree(17, 2, 16)
		require.ErrorIs(t, err, ErrOrderNotDivisible)

		// 2^17 divides testPrime-1 but 2^18 does not.
		_, err = NewClassicTree(testPrime, 17, 0)
		require.NoError(t, err)
		_, err = NewClassicTree(testPrime, 18, 0)
		require.ErrorIs(t, err, ErrOrderNotDivisible)
	})
}

func TestEvaluate(t *testing.T) {

	t.Run("Substitution/p=17/N=4", func(t *testing.T) {
		// evaluate must agree with direct substitution on the domain.
		tree, err := NewClassicTree(17, 2, 4)
		require.NoError(t, err)

		p := NewPolynomial([]uint64{1, 2, 3, 4}) // 1 + 2x + 3x^2 + 4x^3

		values, err := Evaluate(p, tree)
		require.NoError(t, err)

		f := tree.Field()
		for i, x := range tree.Domain(0) {
			require.Equal(t, p.Evaluate(f, x), values[i])
		}

		back, err := Interpolate(values, tree)
		require.NoError(t, err)
		require.Equal(t, []uint64{1, 2, 3, 4}, back.Coeffs)
	})

	for _, tree := range genTestTrees(t) {

		tc, err := genTestContext(tree)
		require.NoError(t, err)

		t.Run(testString("RoundTrip", tree), func(t *testing.T) {
			for i := 0; i < 4; i++ {
				p := tc.sampler.ReadNew(tree.N())

				values, err := Evaluate(p, tree)
				require.NoError(t, err)

				back, err := Interpolate(values, tree)
				require.NoError(t, err)
				require.Equal(t, p.Coeffs, back.Coeffs)
			}
		})

		t.Run(testString("Linearity", tree), func(t *testing.T) {
			f := tree.Field()
			n := tree.N()

			p := tc.sampler.ReadNew(n)
			q := tc.sampler.ReadNew(n)
			scalars := make([]uint64, 2)
			tc.sampler.Read(scalars)
			a, b := scalars[0], scalars[1]

			lin := make([]uint64, n)
			for i := 0; i < n; i++ {
				lin[i] = f.Add(f.Mul(a, p.Coeffs[i]), f.Mul(b, q.Coeffs[i]))
			}

			vl, err := Evaluate(NewPolynomial(lin), tree)
			require.NoError(t, err)
			vp, err := Evaluate(p, tree)
			require.NoError(t, err)
			vq, err := Evaluate(q, tree)
			require.NoError(t, err)

			for i := 0; i < n; i++ {
				require.Equal(t, f.Add(f.Mul(a, vp[i]), f.Mul(b, vq[i])), vl[i])
			}
		})
	}

	t.Run("DegreeTooLarge", func(t *testing.T) {
		tree, err := NewClassicTree(17, 2, 0)
		require.NoError(t, err)
		_, err = Evaluate(NewPolynomial([]uint64{1, 2, 3, 4, 5}), tree)
		require.ErrorIs(t, err, ErrInsufficientDomainSize)

		// Trailing zeros do not count towards the degree.
		_, err = Evaluate(NewPolynomial([]uint64{1, 2, 3, 4, 0, 0}), tree)
		require.NoError(t, err)
	})

	t.Run("WrongValueCount", func(t *testing.T) {
		tree, err := NewClassicTree(17, 2, 0)
		require.NoError(t, err)
		_, err = Interpolate([]uint64{1, 2}, tree)
		require.ErrorIs(t, err, ErrInsufficientDomainSize)
	})
}

func TestMultiply(t *testing.T) {

	t.Run("Worked/p=17/N=4", func(t *testing.T) {
		tree, err := NewClassicTree(17, 2, 4)
		require.NoError(t, err)

		// (1+x)(1-x) = 1 - x^2 mod 17.
		r, err := Multiply(NewPolynomial([]uint64{1, 1}), NewPolynomial([]uint64{1, 16}), tree)
		require.NoError(t, err)
		require.Equal(t, []uint64{1, 0, 16}, r.Coeffs)
	})

	for _, k := range []int{1, 3, 6, 9} {

		tree, err := NewClassicTree(testPrime, k, 0)
		require.NoError(t, err)

		tc, err := genTestContext(tree)
		require.NoError(t, err)

		t.Run(testString("VsNaive", tree), func(t *testing.T) {
			f := tree.Field()
			n := tree.N()

			for i := 0; i < 4; i++ {
				p := tc.sampler.ReadNew(n / 2)
				q := tc.sampler.ReadNew(n - n/2)
				// Keep deg(p)+deg(q) < n.
				if q.Coeffs[len(q.Coeffs)-1] == 0 {
					q.Coeffs[len(q.Coeffs)-1] = 1
				}

				r, err := Multiply(p, q, tree)
				require.NoError(t, err)
				require.True(t, r.Equal(p.MulNaive(f, q)), "fast and naive products differ")
			}
		})
	}

	t.Run("InsufficientDomainSize", func(t *testing.T) {
		tree, err := NewClassicTree(testPrime, 3, 0)
		require.NoError(t, err)
		n := tree.N()

		// Two polynomials of degree exactly n-1.
		coeffs := make([]uint64, n)
		for i := range coeffs {
			coeffs[i] = 1
		}
		p := NewPolynomial(coeffs)

		_, err = Multiply(p, p, tree)
		require.ErrorIs(t, err, ErrInsufficientDomainSize)
	})

	t.Run("EllipticTree", func(t *testing.T) {
		// The weighted transform of an elliptic-curve tree is a change of
		// basis, not point evaluation: pointwise products do not realize
		// convolution, so Multiply must refuse instead of returning a wrong
		// product (e.g. (1+x)(1-x) comes out as [90, 7, 152] != [1, 0, 210]
		// if forced through).
		tree, err := NewEllipticTree(testCurveP, 4, testCurveSpec(t, 4))
		require.NoError(t, err)
		require.Equal(t, EllipticCurve, tree.Mode())

		_, err = Multiply(NewPolynomial([]uint64{1, 1}), NewPolynomial([]uint64{1, 210}), tree)
		require.ErrorIs(t, err, ErrUnsupportedMode)
	})

	t.Run("ZeroOperand", func(t *testing.T) {
		tree, err := NewClassicTree(testPrime, 3, 0)
		require.NoError(t, err)

		r, err := Multiply(NewPolynomial(nil), NewPolynomial([]uint64{1, 2, 3}), tree)
		require.NoError(t, err)
		require.Equal(t, -1, r.Degree())
	})
}

func TestParallel(t *testing.T) {

	tree, err := NewClassicTree(testPrime, 10, 0)
	require.NoError(t, err)

	tc, err := genTestContext(tree)
	require.NoError(t, err)

	p := tc.sampler.ReadNew(tree.N())

	// Any worker count and fork threshold must produce identical output.
	sequential := NewEvaluator(tree, 0, 0)
	want, err := sequential.Evaluate(p)
	require.NoError(t, err)

	for _, workers := range []int{1, 2, -1} {
		for _, threshold := range []int{2, 64, 0} {
			e := NewEvaluator(tree, workers, threshold)

			got, err := e.Evaluate(p)
			require.NoError(t, err)
			require.Equal(t, want, got)

			back, err := e.Interpolate(got)
			require.NoError(t, err)
			require.Equal(t, p.Coeffs, back.Coeffs)
		}
	}

	// The tree is shared read-only across concurrent calls.
	t.Run("ConcurrentCalls", func(t *testing.T) {
		e := NewEvaluator(tree, -1, 2)

		results := make(chan []uint64, 8)
		for i := 0; i < 8; i++ {
			go func() {
				values, err := e.Evaluate(p)
				if err != nil {
					values = nil
				}
				results <- values
			}()
		}
		for i := 0; i < 8; i++ {
			require.Equal(t, want, <-results)
		}
	})
}

func TestDomainSpec(t *testing.T) {

	spec := DomainSpec{Modulus: 17, LogN: 2, Mode: Classic, Generator: 4}

	tree, err := NewTree(spec)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 4, 16, 13}, tree.Domain(0))

	require.True(t, spec.Equal(DomainSpec{Modulus: 17, LogN: 2, Mode: Classic, Generator: 4}))
	require.False(t, spec.Equal(DomainSpec{Modulus: 17, LogN: 2, Mode: Classic, Generator: 13}))

	_, err = NewTree(DomainSpec{Modulus: 17, LogN: 2, Mode: EllipticCurve})
	require.ErrorIs(t, err, ErrInvalidIsogenyChain)

	_, err = NewTree(DomainSpec{Modulus: 17, LogN: 2, Mode: Mode(42)})
	require.Error(t, err)
}

func TestTreeImmutability(t *testing.T) {

	tree, err := NewClassicTree(17, 2, 4)
	require.NoError(t, err)

	// Domain returns a copy.
	domain := tree.Domain(0)
	domain[0] = 999
	require.Equal(t, []uint64{1, 4, 16, 13}, tree.Domain(0))

	// Psi returns a copy.
	psi := tree.Psi(0)
	psi.Num[2] = 999
	require.Equal(t, []uint64{0, 0, 1}, tree.Psi(0).Num)

	// The digest is stable across rebuilds and distinguishes trees.
	rebuilt, err := NewClassicTree(17, 2, 4)
	require.NoError(t, err)
	require.Equal(t, tree.Digest(), rebuilt.Digest())

	other, err := NewClassicTree(17, 4, 0)
	require.NoError(t, err)
	require.NotEqual(t, tree.Digest(), other.Digest())
}
