package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlices(t *testing.T) {

	t.Run("GetDistincts", func(t *testing.T) {
		d := GetDistincts([]uint64{3, 1, 3, 2, 1})
		require.Len(t, d, 3)
		SortSlice(d)
		require.Equal(t, []uint64{1, 2, 3}, d)
	})

	t.Run("SortSlice", func(t *testing.T) {
		s := []uint64{5, 1, 4}
		SortSlice(s)
		require.Equal(t, []uint64{1, 4, 5}, s)
	})

	t.Run("MaxInt", func(t *testing.T) {
		require.Equal(t, 3, MaxInt(2, 3))
		require.Equal(t, 3, MaxInt(3, 2))
	})
}
