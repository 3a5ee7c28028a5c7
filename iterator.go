package vector

import (
	"cmp"
	"unsafe"
)

// Position is any iterator over a vector of T. Only this package
// implements it.
type Position[T any] interface {
	position() ([]T, int)
}

// cursor is the state shared by Iterator and ConstIterator: the slot
// buffer of the vector that produced it and an index into it. Comparisons
// live here so both flavors compare with each other.
type cursor[T any] struct {
	buf []T
	i   int
}

func (c cursor[T]) position() ([]T, int) { return c.buf, c.i }

// Index returns the offset from the beginning of the vector.
func (c cursor[T]) Index() int { return c.i }

// Equal reports whether both iterators denote the same slot of the same
// storage. Storage is identified by its base address and capacity, and a
// reallocation always changes the capacity, so iterators taken before and
// after one are never equal. Buffers of a zero-size T all share one base
// address: for them, iterators from two different vectors of equal
// capacity compare by index alone.
func (c cursor[T]) Equal(o Position[T]) bool {
	buf, i := o.position()
	return unsafe.SliceData(c.buf) == unsafe.SliceData(buf) && len(c.buf) == len(buf) && c.i == i
}

// Diff returns the signed element distance c - o.
func (c cursor[T]) Diff(o Position[T]) int {
	_, i := o.position()
	return c.i - i
}

// Compare orders iterators over the same storage by position.
func (c cursor[T]) Compare(o Position[T]) int {
	_, i := o.position()
	return cmp.Compare(c.i, i)
}

// Less reports whether c is before o.
func (c cursor[T]) Less(o Position[T]) bool { return c.Compare(o) < 0 }

// LessEqual reports whether c is not after o.
func (c cursor[T]) LessEqual(o Position[T]) bool { return c.Compare(o) <= 0 }

// Greater reports whether c is after o.
func (c cursor[T]) Greater(o Position[T]) bool { return c.Compare(o) > 0 }

// GreaterEqual reports whether c is not before o.
func (c cursor[T]) GreaterEqual(o Position[T]) bool { return c.Compare(o) >= 0 }

// Iterator is a random-access iterator yielding mutable access to the
// elements of a Vector. It carries no bounds information of its own and
// dangles once the vector reallocates, is released, or moves its storage.
type Iterator[T any] struct {
	cursor[T]
}

// Get returns the element the iterator points at.
func (it Iterator[T]) Get() T { return it.buf[it.i] }

// Ptr returns the address of the element the iterator points at.
func (it Iterator[T]) Ptr() *T { return &it.buf[it.i] }

// Set overwrites the element the iterator points at.
func (it Iterator[T]) Set(v T) { it.buf[it.i] = v }

// At returns the element n positions away.
func (it Iterator[T]) At(n int) T { return it.buf[it.i+n] }

// Inc advances the iterator in place.
func (it *Iterator[T]) Inc() { it.i++ }

// Dec retreats the iterator in place.
func (it *Iterator[T]) Dec() { it.i-- }

// Next returns an iterator one position further.
func (it Iterator[T]) Next() Iterator[T] { return it.Add(1) }

// Prev returns an iterator one position back.
func (it Iterator[T]) Prev() Iterator[T] { return it.Add(-1) }

// Add returns an iterator offset by n.
func (it Iterator[T]) Add(n int) Iterator[T] {
	it.i += n
	return it
}

// Sub returns an iterator offset by -n.
func (it Iterator[T]) Sub(n int) Iterator[T] { return it.Add(-n) }

// Const converts the iterator into its read-only flavor.
func (it Iterator[T]) Const() ConstIterator[T] {
	return ConstIterator[T]{it.cursor}
}

// ConstIterator is the read-only flavor of Iterator.
type ConstIterator[T any] struct {
	cursor[T]
}

// Get returns the element the iterator points at.
func (it ConstIterator[T]) Get() T { return it.buf[it.i] }

// At returns the element n positions away.
func (it ConstIterator[T]) At(n int) T { return it.buf[it.i+n] }

// Inc advances the iterator by one.
func (it *ConstIterator[T]) Inc() { it.i++ }

// Dec moves the iterator back by one.
func (it *ConstIterator[T]) Dec() { it.i-- }

// Next returns an iterator to the following element.
func (it ConstIterator[T]) Next() ConstIterator[T] { return it.Add(1) }

// Prev returns an iterator to the preceding element.
func (it ConstIterator[T]) Prev() ConstIterator[T] { return it.Add(-1) }

// Add returns the iterator moved n positions.
func (it ConstIterator[T]) Add(n int) ConstIterator[T] {
	it.i += n
	return it
}

// Sub returns the iterator moved back n positions.
func (it ConstIterator[T]) Sub(n int) ConstIterator[T] { return it.Add(-n) }

// indexOf extracts the slot index of pos.
func indexOf[T any](pos Position[T]) int {
	_, i := pos.position()
	return i
}

// rangeOf returns the elements between first and last, which must come
// from the same vector.
func rangeOf[T any](first, last Position[T]) []T {
	buf, i := first.position()
	_, j := last.position()
	return buf[i:j:j]
}
