package sampling

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyedPRNG(t *testing.T) {

	key := []byte{0x49, 0x0a, 0x42, 0x3d, 0x97, 0x9d, 0xc1, 0x07}

	a, err := NewKeyedPRNG(key)
	require.NoError(t, err)
	b, err := NewKeyedPRNG(key)
	require.NoError(t, err)

	bufA := make([]byte, 1024)
	bufB := make([]byte, 1024)

	_, err = a.Read(bufA)
	require.NoError(t, err)
	_, err = b.Read(bufB)
	require.NoError(t, err)

	require.Equal(t, bufA, bufB)
	require.Equal(t, key, a.Key())

	// Reset rewinds the stream to its initial state.
	a.Reset()
	bufC := make([]byte, 1024)
	_, err = a.Read(bufC)
	require.NoError(t, err)
	require.Equal(t, bufA, bufC)
}

func TestThreadSafePRNG(t *testing.T) {

	prng, err := NewPRNG()
	require.NoError(t, err)

	buf := make([]byte, 64)
	n, err := prng.Read(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
}
