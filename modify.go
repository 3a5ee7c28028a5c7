package vector

import (
	"iter"
	"slices"

	"github.com/pavanmanishd/vector/internal/guard"
)

// Reserve makes Cap at least n. It is a no-op when n <= Cap and fails with
// ErrLength when n > MaxSize. Otherwise the storage is reallocated to
// exactly n slots; Len and element order are preserved. On failure v is
// unchanged.
func (v *Vector[T, A]) Reserve(n int) error {
	if n <= v.Cap() {
		return nil
	}
	if maxSize := v.MaxSize(); n > maxSize {
		return lengthError(n, maxSize)
	}
	return v.reallocateStorage(n)
}

// ShrinkToFit reallocates so that Cap equals Len. A vector shrunk to zero
// releases its buffer.
func (v *Vector[T, A]) ShrinkToFit() error {
	if v.end == v.Cap() {
		return nil
	}
	return v.reallocateStorage(v.end)
}

// Clear destroys all elements, back to front. Capacity is kept.
func (v *Vector[T, A]) Clear() {
	for v.end != 0 {
		v.destroyAtEnd()
	}
}

// PushBack appends a copy of x. It reallocates, invalidating every
// iterator, only when Len == Cap.
func (v *Vector[T, A]) PushBack(x T) error {
	if err := v.reserveSpare(1); err != nil {
		return err
	}
	return v.constructAtEnd(x)
}

// EmplaceBack appends an element built by ctor and constructed into place
// through the allocator. If ctor fails Len is unchanged.
func (v *Vector[T, A]) EmplaceBack(ctor func(slot *T) error) error {
	if err := v.reserveSpare(1); err != nil {
		return err
	}
	if err := v.emplaceInto(&v.buf()[v.end], ctor); err != nil {
		return err
	}
	v.end++
	return nil
}

// PopBack destroys the last element. The vector must not be empty.
func (v *Vector[T, A]) PopBack() {
	v.destroyAtEnd()
}

// Resize is ResizeFill with the zero value of T.
func (v *Vector[T, A]) Resize(n int) error {
	var zero T
	return v.ResizeFill(n, zero)
}

// ResizeFill makes Len equal n, destroying trailing elements or appending
// copies of value. If an append fails the appended elements are destroyed
// again, but a reallocation made to hold them is kept: Cap may have grown.
func (v *Vector[T, A]) ResizeFill(n int, value T) error {
	if n < 0 {
		return lengthError(n, v.MaxSize())
	}
	if v.end >= n {
		for v.end != n {
			v.destroyAtEnd()
		}
		return nil
	}
	if v.Cap() < n {
		newCap, err := v.growthCapacity(n)
		if err != nil {
			return err
		}
		if err := v.reallocateStorage(newCap); err != nil {
			return err
		}
	}
	oldEnd := v.end
	g := guard.New(func() {
		for v.end != oldEnd {
			v.destroyAtEnd()
		}
	})
	defer g.Close()
	for v.end != n {
		if err := v.constructAtEnd(value); err != nil {
			return err
		}
	}
	g.Complete()
	return nil
}

// Insert places a copy of x before pos and returns an iterator to it.
func (v *Vector[T, A]) Insert(pos Position[T], x T) (Iterator[T], error) {
	a := v.al()
	return v.insert(indexOf(pos), 1, func(_ int, slot *T) error {
		return a.Construct(slot, x)
	})
}

// InsertN places n copies of x before pos and returns an iterator to the
// first of them, or pos itself when n is zero.
func (v *Vector[T, A]) InsertN(pos Position[T], n int, x T) (Iterator[T], error) {
	if n < 0 {
		return Iterator[T]{}, lengthError(n, v.MaxSize())
	}
	a := v.al()
	return v.insert(indexOf(pos), n, func(_ int, slot *T) error {
		return a.Construct(slot, x)
	})
}

// InsertSlice places copies of values before pos, keeping their order.
// values may alias v's own storage.
func (v *Vector[T, A]) InsertSlice(pos Position[T], values []T) (Iterator[T], error) {
	if v.overlaps(values) {
		values = slices.Clone(values)
	}
	a := v.al()
	return v.insert(indexOf(pos), len(values), func(k int, slot *T) error {
		return a.Construct(slot, values[k])
	})
}

// InsertSeq places the values produced by seq before pos. seq is drained
// before v is modified.
func (v *Vector[T, A]) InsertSeq(pos Position[T], seq iter.Seq[T]) (Iterator[T], error) {
	return v.InsertSlice(pos, slices.Collect(seq))
}

// InsertRange places copies of the elements in [first, last) before pos.
// The range may come from any vector of T, v included.
func (v *Vector[T, A]) InsertRange(pos, first, last Position[T]) (Iterator[T], error) {
	return v.InsertSlice(pos, rangeOf(first, last))
}

// Emplace constructs a new element built by ctor before pos.
func (v *Vector[T, A]) Emplace(pos Position[T], ctor func(slot *T) error) (Iterator[T], error) {
	return v.insert(indexOf(pos), 1, func(_ int, slot *T) error {
		return v.emplaceInto(slot, ctor)
	})
}

// insert builds count elements with fill in the spare slots past the end
// and then rotates them into place before idx. A failing fill destroys the
// elements built so far; the existing elements are never touched before
// every construction has succeeded. A reallocation made to fit the new
// elements is kept.
func (v *Vector[T, A]) insert(idx, count int, fill func(k int, slot *T) error) (Iterator[T], error) {
	if count == 0 {
		return v.iterAt(idx), nil
	}
	if err := v.reserveSpare(count); err != nil {
		return Iterator[T]{}, err
	}
	oldEnd := v.end
	g := guard.New(func() {
		for v.end != oldEnd {
			v.destroyAtEnd()
		}
	})
	defer g.Close()
	if err := v.fillAtEnd(count, fill); err != nil {
		return Iterator[T]{}, err
	}
	g.Complete()
	if idx != oldEnd {
		v.rotateIntoPlace(idx, count)
	}
	return v.iterAt(idx), nil
}

// Erase removes the element at pos and returns an iterator to the element
// that followed it.
func (v *Vector[T, A]) Erase(pos Position[T]) Iterator[T] {
	idx := indexOf(pos)
	v.erase(idx, 1)
	return v.iterAt(idx)
}

// EraseRange removes [first, last) and returns an iterator to the element
// that followed the range. Capacity is unchanged.
func (v *Vector[T, A]) EraseRange(first, last Position[T]) Iterator[T] {
	i, j := indexOf(first), indexOf(last)
	if i != j {
		v.erase(i, j-i)
	}
	return v.iterAt(i)
}

// Assign replaces the contents with n copies of x.
func (v *Vector[T, A]) Assign(n int, x T) error {
	a := v.al()
	return v.assign(n, func(_ int, slot *T) error {
		return a.Construct(slot, x)
	})
}

// AssignSlice replaces the contents with copies of values, which may alias
// v's own storage.
func (v *Vector[T, A]) AssignSlice(values []T) error {
	if v.overlaps(values) {
		values = slices.Clone(values)
	}
	a := v.al()
	return v.assign(len(values), func(k int, slot *T) error {
		return a.Construct(slot, values[k])
	})
}

// AssignSeq replaces the contents with the values produced by seq.
func (v *Vector[T, A]) AssignSeq(seq iter.Seq[T]) error {
	return v.AssignSlice(slices.Collect(seq))
}

// AssignRange replaces the contents with copies of [first, last).
func (v *Vector[T, A]) AssignRange(first, last Position[T]) error {
	return v.AssignSlice(rangeOf(first, last))
}

// assign replaces the contents with count elements built by fill. When
// count fits in the current capacity the old elements are destroyed and the
// new ones built in place; a failure then leaves v holding the elements
// built so far. Otherwise a new buffer is filled first and swapped in, and
// a failure leaves v unchanged.
func (v *Vector[T, A]) assign(count int, fill func(k int, slot *T) error) error {
	if maxSize := v.MaxSize(); count < 0 || count > maxSize {
		return lengthError(count, maxSize)
	}
	if count <= v.Cap() {
		v.Clear()
		return v.fillAtEnd(count, fill)
	}

	tmp := NewWith[T](v.al())
	if err := tmp.allocate(count); err != nil {
		return err
	}
	g := guard.New(tmp.deallocate)
	defer g.Close()
	if err := tmp.fillAtEnd(count, fill); err != nil {
		return err
	}
	g.Complete()
	v.Swap(tmp)
	tmp.Release()
	return nil
}

// fillAtEnd appends count elements built by fill into spare slots. It
// stops at the first failure with the elements built so far kept.
func (v *Vector[T, A]) fillAtEnd(count int, fill func(k int, slot *T) error) error {
	buf := v.buf()
	for k := 0; k != count; k++ {
		if err := fill(k, &buf[v.end]); err != nil {
			return err
		}
		v.end++
	}
	return nil
}

// emplaceInto runs ctor on a scratch value and hands the result to the
// allocator's Construct, so every emplaced element is paired with the
// Destroy that later removes it. The raw slot is untouched if ctor fails.
func (v *Vector[T, A]) emplaceInto(slot *T, ctor func(slot *T) error) error {
	var x T
	if err := ctor(&x); err != nil {
		return err
	}
	return v.al().Construct(slot, x)
}
