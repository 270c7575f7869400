package ecfft

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerialization(t *testing.T) {

	trees := []*Tree{}

	classic, err := NewClassicTree(testPrime, 6, 0)
	require.NoError(t, err)
	trees = append(trees, classic)

	elliptic, err := NewEllipticTree(testCurveP, 4, testCurveSpec(t, 4))
	require.NoError(t, err)
	trees = append(trees, elliptic)

	for _, tree := range trees {

		t.Run(testString("RoundTrip", tree), func(t *testing.T) {

			data, err := tree.MarshalBinary()
			require.NoError(t, err)
			require.Equal(t, tree.BinarySize(), len(data))

			loaded := new(Tree)
			require.NoError(t, loaded.UnmarshalBinary(data))

			require.Equal(t, tree.Digest(), loaded.Digest())
			require.Equal(t, tree.K(), loaded.K())
			require.Equal(t, tree.Mode(), loaded.Mode())
			require.Equal(t, tree.Domain(0), loaded.Domain(0))

			// The reloaded tree is fully operational, with the weight
			// tables recomputed from the deserialized isogenies.
			tc, err := genTestContext(tree)
			require.NoError(t, err)
			p := tc.sampler.ReadNew(tree.N())

			want, err := Evaluate(p, tree)
			require.NoError(t, err)
			got, err := Evaluate(p, loaded)
			require.NoError(t, err)
			require.Equal(t, want, got)

			back, err := Interpolate(got, loaded)
			require.NoError(t, err)
			require.Equal(t, p.Coeffs, back.Coeffs)
		})

		t.Run(testString("WriteTo", tree), func(t *testing.T) {
			// Plain io.Writer/io.Reader paths go through bufio.
			w := new(bytes.Buffer)
			n, err := tree.WriteTo(w)
			require.NoError(t, err)
			require.Equal(t, int64(tree.BinarySize()), n)

			loaded := new(Tree)
			_, err = loaded.ReadFrom(w)
			require.NoError(t, err)
			require.Equal(t, tree.Digest(), loaded.Digest())
		})
	}

	t.Run("Corrupted", func(t *testing.T) {

		data, err := classic.MarshalBinary()
		require.NoError(t, err)

		// Non-prime modulus.
		corrupted := append([]byte(nil), data...)
		corrupted[0] ^= 1
		require.Error(t, new(Tree).UnmarshalBinary(corrupted))

		// Oversized depth.
		corrupted = append([]byte(nil), data...)
		corrupted[8] = 0xFF
		require.Error(t, new(Tree).UnmarshalBinary(corrupted))

		// Unknown mode.
		corrupted = append([]byte(nil), data...)
		corrupted[16] = 0xFF
		require.Error(t, new(Tree).UnmarshalBinary(corrupted))

		// Truncated stream.
		require.Error(t, new(Tree).UnmarshalBinary(data[:len(data)/2]))
	})

	t.Run("Tampered", func(t *testing.T) {
		// Every word of the stream is covered by the digest: a tampered
		// domain point deserializes but no longer authenticates.
		data, err := elliptic.MarshalBinary()
		require.NoError(t, err)

		tampered := append([]byte(nil), data...)
		tampered[32] ^= 1 // first point of the layer-0 domain

		loaded := new(Tree)
		require.NoError(t, loaded.UnmarshalBinary(tampered))
		require.NotEqual(t, elliptic.Digest(), loaded.Digest())
	})
}
