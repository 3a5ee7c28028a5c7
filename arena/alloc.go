package arena

import (
	"math"
	"unsafe"

	"github.com/cockroachdb/errors"
)

// AllocSlice allocates a slice of n elements of type T inside the arena.
// The elements are not initialized. T must not contain pointers: the
// garbage collector does not scan arena memory.
// Returns nil, nil if n <= 0.
func AllocSlice[T any](a *Arena, n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	elemSize := int(unsafe.Sizeof(*new(T)))
	if elemSize == 0 {
		return make([]T, n), nil
	}
	if n > math.MaxInt/elemSize {
		return nil, errors.Newf("arena: %d elements of %d bytes overflow", n, elemSize)
	}
	b, err := a.AllocBytes(elemSize * n)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n), nil
}

// AllocSliceZeroed is AllocSlice with the memory cleared first.
func AllocSliceZeroed[T any](a *Arena, n int) ([]T, error) {
	s, err := AllocSlice[T](a, n)
	if err != nil {
		return nil, err
	}
	clear(s)
	return s, nil
}

// FreeSlice returns s to the arena. See Arena.Free.
func FreeSlice[T any](a *Arena, s []T) bool {
	elemSize := int(unsafe.Sizeof(*new(T)))
	if len(s) == 0 || elemSize == 0 {
		return false
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*elemSize)
	return a.Free(b)
}
