package vector

import (
	"math"
	"unsafe"

	"github.com/cockroachdb/errors"
)

// Allocator supplies slot storage and element lifecycle hooks to a Vector.
//
// Allocate returns a buffer of exactly n slots; none of them hold a live
// element yet. Construct places value into a raw slot and may fail, which
// is how a Vector models an element copy that cannot complete. Destroy
// ends the life of the element in slot and never fails. Deallocate takes
// back a buffer previously returned by Allocate after every element in it
// has been destroyed.
//
// The Vector keeps its allocator by value. Allocators with state should be
// pointers or hold pointers.
type Allocator[T any] interface {
	Allocate(n int) ([]T, error)
	Deallocate(buf []T)
	Construct(slot *T, value T) error
	Destroy(slot *T)
	MaxSize() int
}

// Heap is the default allocator. It carries no state, so a Vector using it
// pays nothing for storing it.
type Heap[T any] struct{}

var _ Allocator[int] = Heap[int]{}

// Allocate returns n slots from the Go heap. A request the runtime rejects
// as too large is reported as ErrBadAlloc; exhausting the process memory
// is still fatal, as it is for any Go allocation.
func (Heap[T]) Allocate(n int) (buf []T, err error) {
	if n < 0 || n > maxSizeOf[T]() {
		return nil, errors.Wrapf(ErrBadAlloc, "cannot allocate %d slots", n)
	}
	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, errors.Wrapf(ErrBadAlloc, "cannot allocate %d slots: %v", n, r)
		}
	}()
	return make([]T, n), nil
}

// Deallocate drops the buffer; the garbage collector reclaims it.
func (Heap[T]) Deallocate([]T) {}

// Construct copies value into slot.
func (Heap[T]) Construct(slot *T, value T) error {
	*slot = value
	return nil
}

// Destroy zeroes slot so it no longer keeps anything reachable.
func (Heap[T]) Destroy(slot *T) {
	var zero T
	*slot = zero
}

// MaxSize returns the largest slot count addressable for T.
func (Heap[T]) MaxSize() int {
	return maxSizeOf[T]()
}

func maxSizeOf[T any]() int {
	size := unsafe.Sizeof(*new(T))
	if size == 0 {
		return math.MaxInt
	}
	return math.MaxInt / int(size)
}
