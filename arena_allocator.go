package vector

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/pavanmanishd/vector/arena"
)

// ArenaAllocator draws vector storage from an arena.Arena. Buffers freed
// in the reverse order they were allocated are handed back to the arena;
// all others stay reserved until the arena is Reset.
//
// Arena memory is not scanned by the garbage collector, so T must not
// contain pointers.
type ArenaAllocator[T any] struct {
	arena *arena.Arena
}

// NewArenaAllocator returns an allocator backed by a. It fails if T holds
// pointers.
func NewArenaAllocator[T any](a *arena.Arena) (ArenaAllocator[T], error) {
	t := reflect.TypeFor[T]()
	if hasPointers(t) {
		return ArenaAllocator[T]{}, errors.Newf("vector: %s holds pointers and cannot live in an arena", t)
	}
	return ArenaAllocator[T]{arena: a}, nil
}

// Arena returns the backing arena.
func (x ArenaAllocator[T]) Arena() *arena.Arena { return x.arena }

// Allocate carves n slots from the arena.
func (x ArenaAllocator[T]) Allocate(n int) ([]T, error) {
	if n < 0 || n > x.MaxSize() {
		return nil, errors.Wrapf(ErrBadAlloc, "cannot allocate %d slots", n)
	}
	buf, err := arena.AllocSlice[T](x.arena, n)
	if err != nil {
		return nil, errors.Mark(err, ErrBadAlloc)
	}
	return buf, nil
}

// Deallocate gives buf back to the arena if it is the newest allocation.
func (x ArenaAllocator[T]) Deallocate(buf []T) {
	arena.FreeSlice(x.arena, buf)
}

// Construct copies value into slot.
func (ArenaAllocator[T]) Construct(slot *T, value T) error {
	*slot = value
	return nil
}

// Destroy zeroes slot.
func (ArenaAllocator[T]) Destroy(slot *T) {
	var zero T
	*slot = zero
}

// MaxSize returns the largest slot count a single buffer can hold.
func (ArenaAllocator[T]) MaxSize() int {
	return maxSizeOf[T]()
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Slice,
		reflect.String, reflect.Chan, reflect.Func, reflect.Interface:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}
