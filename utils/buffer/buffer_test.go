package buffer

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuffer(t *testing.T) {

	want := []uint64{0, 1, 42, 1<<61 - 1}

	t.Run("Buffer", func(t *testing.T) {

		b := NewBufferSize(1 << 10)

		_, err := WriteUint64Slice(b, want)
		require.NoError(t, err)
		_, err = WriteUint64(b, 7)
		require.NoError(t, err)
		require.NoError(t, b.Flush())

		got, _, err := ReadUint64Slice(b, len(want))
		require.NoError(t, err)
		require.Equal(t, want, got)

		var c uint64
		_, err = ReadUint64(b, &c)
		require.NoError(t, err)
		require.Equal(t, uint64(7), c)
	})

	t.Run("Bufio", func(t *testing.T) {

		// A small bufio buffer forces the partial-write and partial-read
		// recursion paths.
		stream := new(bytes.Buffer)

		w := bufio.NewWriterSize(stream, 16)
		_, err := WriteUint64Slice(w, want)
		require.NoError(t, err)
		require.NoError(t, w.Flush())

		got, _, err := ReadUint64Slice(bufio.NewReaderSize(stream, 16), len(want))
		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("LengthGuard", func(t *testing.T) {

		b := NewBufferSize(1 << 10)

		_, err := WriteUint64Slice(b, want)
		require.NoError(t, err)

		_, _, err = ReadUint64Slice(b, len(want)-1)
		require.Error(t, err)
	})

	t.Run("Truncated", func(t *testing.T) {

		b := NewBufferSize(1 << 10)
		_, err := WriteUint64Slice(b, want)
		require.NoError(t, err)

		truncated := NewBuffer(b.Bytes()[:8+8])
		_, _, err = ReadUint64Slice(truncated, len(want))
		require.Error(t, err)
	})
}
