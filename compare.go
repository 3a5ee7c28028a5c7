package vector

import (
	"hash/maphash"
	"slices"

	"golang.org/x/exp/constraints"
)

// Equal reports whether a and b hold equal elements in the same order.
// The allocators play no part.
func Equal[T comparable, A1 Allocator[T], A2 Allocator[T]](a *Vector[T, A1], b *Vector[T, A2]) bool {
	return slices.Equal(a.Data(), b.Data())
}

// EqualFunc is Equal with a custom element comparison.
func EqualFunc[T1, T2 any, A1 Allocator[T1], A2 Allocator[T2]](a *Vector[T1, A1], b *Vector[T2, A2], eq func(T1, T2) bool) bool {
	return slices.EqualFunc(a.Data(), b.Data(), eq)
}

// Compare orders a and b lexicographically and returns -1, 0 or +1. The
// first unequal element decides; a proper prefix orders first.
func Compare[T constraints.Ordered, A1 Allocator[T], A2 Allocator[T]](a *Vector[T, A1], b *Vector[T, A2]) int {
	x, y := a.Data(), b.Data()
	for i := range min(len(x), len(y)) {
		switch {
		case x[i] < y[i]:
			return -1
		case y[i] < x[i]:
			return +1
		}
	}
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return +1
	}
	return 0
}

// CompareFunc is Compare with a custom three-way element comparison.
func CompareFunc[T1, T2 any, A1 Allocator[T1], A2 Allocator[T2]](a *Vector[T1, A1], b *Vector[T2, A2], cmp func(T1, T2) int) int {
	return slices.CompareFunc(a.Data(), b.Data(), cmp)
}

// Less reports whether a orders before b.
func Less[T constraints.Ordered, A1 Allocator[T], A2 Allocator[T]](a *Vector[T, A1], b *Vector[T, A2]) bool {
	return Compare(a, b) < 0
}

// Greater reports whether a orders after b.
func Greater[T constraints.Ordered, A1 Allocator[T], A2 Allocator[T]](a *Vector[T, A1], b *Vector[T, A2]) bool {
	return Compare(a, b) > 0
}

// LessEqual reports whether a does not order after b.
func LessEqual[T constraints.Ordered, A1 Allocator[T], A2 Allocator[T]](a *Vector[T, A1], b *Vector[T, A2]) bool {
	return Compare(a, b) <= 0
}

// GreaterEqual reports whether a does not order before b.
func GreaterEqual[T constraints.Ordered, A1 Allocator[T], A2 Allocator[T]](a *Vector[T, A1], b *Vector[T, A2]) bool {
	return Compare(a, b) >= 0
}

const hashMix = 0x9e3779b97f4a7c15

func combine(seed, h uint64) uint64 {
	return seed ^ (h + hashMix + (seed << 6) + (seed >> 2))
}

// Hash folds elemHash over the elements, starting from the length, so
// vectors that are Equal hash alike and the result depends on order.
func Hash[T any, A Allocator[T]](v *Vector[T, A], elemHash func(T) uint64) uint64 {
	seed := uint64(v.Len())
	for _, x := range v.Data() {
		seed = combine(seed, elemHash(x))
	}
	return seed
}

// HashComparable is Hash using maphash for the elements. Results are only
// stable for a given seed within one process.
func HashComparable[T comparable, A Allocator[T]](v *Vector[T, A], seed maphash.Seed) uint64 {
	return Hash(v, func(x T) uint64 {
		return maphash.Comparable(seed, x)
	})
}
