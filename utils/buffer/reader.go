package buffer

import (
	"encoding/binary"
	"fmt"
)

// ReadUint64 reads a uint64 from r into c.
func ReadUint64(r Reader, c *uint64) (n int64, err error) {

	if c == nil {
		return 0, fmt.Errorf("cannot ReadUint64: c is nil")
	}

	var bb [8]byte

	var nint int
	if nint, err = r.Read(bb[:]); err != nil {
		return int64(nint), err
	}

	*c = binary.LittleEndian.Uint64(bb[:])

	return int64(nint), nil
}

// ReadUint64Slice reads a length-prefixed []uint64 from r. It returns an
// error if the encoded length exceeds max, which guards against corrupted
// or hostile inputs allocating unbounded memory.
func ReadUint64Slice(r Reader, max int) (c []uint64, n int64, err error) {

	var size uint64
	if n, err = ReadUint64(r, &size); err != nil {
		return
	}

	if size > uint64(max) {
		return nil, n, fmt.Errorf("cannot ReadUint64Slice: encoded length %d exceeds %d", size, max)
	}

	c = make([]uint64, size)

	var inc int64
	inc, err = readUint64Slice(r, c)

	return c, n + inc, err
}

func readUint64Slice(r Reader, c []uint64) (n int64, err error) {

	if len(c) == 0 {
		return
	}

	// Peeks at most the bytes still needed, so that reading near the end of
	// the stream does not report a spurious EOF.
	size := r.Size()
	if need := len(c) << 3; need < size {
		size = need
	}

	var slice []byte
	if slice, err = r.Peek(size); err != nil {
		return
	}

	// Number of whole uint64 words in the peeked slice.
	available := len(slice) >> 3

	if available == 0 {
		return 0, fmt.Errorf("cannot readUint64Slice: reader buffer is too small")
	}

	if N := len(c); N <= available {
		for i := 0; i < N; i++ {
			c[i] = binary.LittleEndian.Uint64(slice[i<<3:])
		}

		var inc int
		inc, err = r.Discard(N << 3)

		return int64(inc), err
	}

	// First drains the whole buffer.
	for i := 0; i < available; i++ {
		c[i] = binary.LittleEndian.Uint64(slice[i<<3:])
	}

	var inc int
	if inc, err = r.Discard(available << 3); err != nil {
		return int64(inc), err
	}

	n += int64(inc)

	// Then recurses on the remaining slice.
	var inc64 int64
	inc64, err = readUint64Slice(r, c[available:])

	return n + inc64, err
}
