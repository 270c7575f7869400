// Package utils implements generic helpers used across the module.
package utils

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// GetDistincts returns the list of distinct elements in v.
// Order is not guaranteed.
func GetDistincts[V comparable](v []V) (vd []V) {
	m := map[V]bool{}
	for _, vi := range v {
		m[vi] = true
	}

	vd = make([]V, len(m))

	var i int
	for mi := range m {
		vd[i] = mi
		i++
	}

	return
}

// SortSlice sorts a slice in place.
func SortSlice[T constraints.Ordered](s []T) {
	sort.Slice(s, func(i, j int) bool {
		return s[i] < s[j]
	})
}

// MaxInt returns the maximum between two ints.
func MaxInt(x, y int) int {
	if x > y {
		return x
	}
	return y
}
