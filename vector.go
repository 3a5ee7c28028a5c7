package vector

import (
	"iter"

	"github.com/pavanmanishd/vector/internal/guard"
	"github.com/pavanmanishd/vector/internal/pair"
)

// Vector is a growable sequence stored in one contiguous buffer obtained
// from an Allocator. The first Len slots of the buffer hold live elements;
// the remaining Cap-Len slots are allocated but empty.
//
// A Vector has a single owner and is not safe for concurrent use.
type Vector[T any, A Allocator[T]] struct {
	// First is the slot buffer (nil until something is allocated; its
	// length marks the capacity end), second is the allocator.
	storage pair.Compressed[[]T, A]
	end     int
}

// New returns an empty vector backed by the Go heap.
func New[T any]() *Vector[T, Heap[T]] {
	return NewWith[T](Heap[T]{})
}

// NewWith returns an empty vector that obtains storage from alloc.
func NewWith[T any, A Allocator[T]](alloc A) *Vector[T, A] {
	return &Vector[T, A]{storage: pair.Make[[]T](nil, alloc)}
}

// NewSized returns a vector of n zero values.
func NewSized[T any, A Allocator[T]](alloc A, n int) (*Vector[T, A], error) {
	var zero T
	return NewFilled(alloc, n, zero)
}

// NewFilled returns a vector of n copies of value. Capacity is exactly n.
func NewFilled[T any, A Allocator[T]](alloc A, n int, value T) (*Vector[T, A], error) {
	v := NewWith[T](alloc)
	if err := v.allocate(n); err != nil {
		return nil, err
	}
	g := guard.New(v.deallocate)
	defer g.Close()
	for v.end != n {
		if err := v.constructAtEnd(value); err != nil {
			return nil, err
		}
	}
	g.Complete()
	return v, nil
}

// FromSlice returns a vector holding copies of values. Capacity is
// exactly len(values).
func FromSlice[T any, A Allocator[T]](alloc A, values []T) (*Vector[T, A], error) {
	v := NewWith[T](alloc)
	if err := v.allocate(len(values)); err != nil {
		return nil, err
	}
	g := guard.New(v.deallocate)
	defer g.Close()
	for _, x := range values {
		if err := v.constructAtEnd(x); err != nil {
			return nil, err
		}
	}
	g.Complete()
	return v, nil
}

// FromSeq returns a vector holding the values produced by seq, which is
// consumed once. Storage grows as for repeated PushBack.
func FromSeq[T any, A Allocator[T]](alloc A, seq iter.Seq[T]) (*Vector[T, A], error) {
	v := NewWith[T](alloc)
	g := guard.New(v.deallocate)
	defer g.Close()
	var err error
	for x := range seq {
		if err = v.PushBack(x); err != nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	g.Complete()
	return v, nil
}

// Of returns a heap-backed vector holding values. It panics only if the
// heap refuses the allocation.
func Of[T any](values ...T) *Vector[T, Heap[T]] {
	v, err := FromSlice(Heap[T]{}, values)
	if err != nil {
		panic(err)
	}
	return v
}

// Clone returns a deep copy with capacity equal to v.Len(), using a copy
// of v's allocator. v is unchanged if the copy fails.
func (v *Vector[T, A]) Clone() (*Vector[T, A], error) {
	return FromSlice(v.al(), v.Data())
}

// Move returns a vector that owns v's storage and allocator. v is left
// empty and may be reused.
func (v *Vector[T, A]) Move() *Vector[T, A] {
	m := &Vector[T, A]{storage: v.storage, end: v.end}
	*v.storage.First() = nil
	v.end = 0
	return m
}

// CopyFrom replaces the contents of v with a copy of src. The copy is
// built first, so v is unchanged if it fails.
func (v *Vector[T, A]) CopyFrom(src *Vector[T, A]) error {
	tmp, err := src.Clone()
	if err != nil {
		return err
	}
	v.Swap(tmp)
	tmp.Release()
	return nil
}

// MoveFrom releases v's contents and takes over src's storage and
// allocator, leaving src empty.
func (v *Vector[T, A]) MoveFrom(src *Vector[T, A]) {
	if v == src {
		return
	}
	v.Release()
	v.Swap(src)
}

// Release destroys every element, back to front, and returns the buffer
// to the allocator. The vector stays usable and empty.
func (v *Vector[T, A]) Release() {
	v.deallocate()
}

// Swap exchanges the contents and allocators of v and o without touching
// any element.
func (v *Vector[T, A]) Swap(o *Vector[T, A]) {
	if v == o {
		return
	}
	v.storage.Swap(&o.storage)
	v.end, o.end = o.end, v.end
}

// Len returns the number of live elements.
func (v *Vector[T, A]) Len() int { return v.end }

// Cap returns the number of allocated slots.
func (v *Vector[T, A]) Cap() int { return len(v.buf()) }

// Empty reports whether Len is zero.
func (v *Vector[T, A]) Empty() bool { return v.end == 0 }

// MaxSize returns the largest Len the vector can reach: the allocator's
// limit, further bounded by the addressable slot count for T.
func (v *Vector[T, A]) MaxSize() int {
	return min(v.al().MaxSize(), maxSizeOf[T]())
}

// Allocator returns a copy of the vector's allocator.
func (v *Vector[T, A]) Allocator() A { return v.al() }

// Index returns a pointer to element i. It does not report errors; an
// index outside [0, Len) panics.
func (v *Vector[T, A]) Index(i int) *T { return &v.buf()[:v.end][i] }

// Get returns element i without bounds reporting.
func (v *Vector[T, A]) Get(i int) T { return v.buf()[:v.end][i] }

// Set overwrites element i without bounds reporting.
func (v *Vector[T, A]) Set(i int, x T) { v.buf()[:v.end][i] = x }

// At returns element i, or ErrOutOfRange if i is not in [0, Len).
func (v *Vector[T, A]) At(i int) (T, error) {
	p, err := v.AtPtr(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// AtPtr is At returning the element's address.
func (v *Vector[T, A]) AtPtr(i int) (*T, error) {
	if i < 0 || i >= v.end {
		return nil, outOfRange(i, v.end)
	}
	return &v.buf()[i], nil
}

// Front returns the first element. The vector must not be empty.
func (v *Vector[T, A]) Front() T { return v.Get(0) }

// Back returns the last element. The vector must not be empty.
func (v *Vector[T, A]) Back() T { return v.Get(v.end - 1) }

// Data returns the live elements as a slice sharing v's storage. It is nil
// while nothing is allocated. Its capacity is clipped to Len so appending
// to it never writes into v's spare slots.
func (v *Vector[T, A]) Data() []T {
	buf := v.buf()
	if buf == nil {
		return nil
	}
	return buf[:v.end:v.end]
}

// Begin returns an iterator to the first element.
func (v *Vector[T, A]) Begin() Iterator[T] { return v.iterAt(0) }

// End returns an iterator one past the last element.
func (v *Vector[T, A]) End() Iterator[T] { return v.iterAt(v.end) }

// CBegin is Begin in its read-only flavor.
func (v *Vector[T, A]) CBegin() ConstIterator[T] { return v.Begin().Const() }

// CEnd is End in its read-only flavor.
func (v *Vector[T, A]) CEnd() ConstIterator[T] { return v.End().Const() }

// Values yields the elements front to back.
func (v *Vector[T, A]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.end; i++ {
			if !yield(v.buf()[i]) {
				return
			}
		}
	}
}

// All yields index/element pairs front to back.
func (v *Vector[T, A]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.end; i++ {
			if !yield(i, v.buf()[i]) {
				return
			}
		}
	}
}

// Backward yields index/element pairs back to front.
func (v *Vector[T, A]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.end - 1; i >= 0; i-- {
			if !yield(i, v.buf()[i]) {
				return
			}
		}
	}
}

// Swap exchanges the contents of a and b.
func Swap[T any, A Allocator[T]](a, b *Vector[T, A]) {
	a.Swap(b)
}
