package vector

import (
	"slices"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/pavanmanishd/vector/internal/guard"
)

func (v *Vector[T, A]) buf() []T { return *v.storage.First() }

func (v *Vector[T, A]) al() A { return *v.storage.Second() }

func (v *Vector[T, A]) iterAt(i int) Iterator[T] {
	return Iterator[T]{cursor[T]{buf: v.buf(), i: i}}
}

// allocSlots asks the allocator for exactly n slots.
func (v *Vector[T, A]) allocSlots(n int) ([]T, error) {
	a := v.al()
	buf, err := a.Allocate(n)
	if err != nil {
		return nil, err
	}
	if len(buf) < n {
		a.Deallocate(buf)
		return nil, errors.Wrapf(ErrBadAlloc, "allocator returned %d of %d slots", len(buf), n)
	}
	return buf[:n:n], nil
}

// allocate installs a fresh buffer of n slots on an unallocated vector.
func (v *Vector[T, A]) allocate(n int) error {
	if maxSize := v.MaxSize(); n < 0 || n > maxSize {
		return lengthError(n, maxSize)
	}
	if n == 0 {
		return nil
	}
	buf, err := v.allocSlots(n)
	if err != nil {
		return err
	}
	*v.storage.First() = buf
	v.end = 0
	return nil
}

// deallocate destroys all elements and gives the buffer back.
func (v *Vector[T, A]) deallocate() {
	buf := v.buf()
	if buf == nil {
		return
	}
	v.Clear()
	v.al().Deallocate(buf)
	*v.storage.First() = nil
	v.end = 0
}

func (v *Vector[T, A]) constructAtEnd(value T) error {
	if err := v.al().Construct(&v.buf()[v.end], value); err != nil {
		return err
	}
	v.end++
	return nil
}

func (v *Vector[T, A]) destroyAtEnd() {
	v.end--
	v.al().Destroy(&v.buf()[v.end])
}

// reallocateStorage moves the elements into a buffer of newCap slots. If
// any element fails to construct, the new buffer is torn down and v is
// left exactly as it was.
func (v *Vector[T, A]) reallocateStorage(newCap int) error {
	if newCap == 0 {
		v.deallocate()
		return nil
	}
	newBuf, err := v.allocSlots(newCap)
	if err != nil {
		return err
	}
	a := v.al()
	newEnd := 0
	g := guard.New(func() {
		for newEnd > 0 {
			newEnd--
			a.Destroy(&newBuf[newEnd])
		}
		a.Deallocate(newBuf)
	})
	defer g.Close()

	old := v.buf()
	for n := min(newCap, v.end); newEnd != n; newEnd++ {
		if err := a.Construct(&newBuf[newEnd], old[newEnd]); err != nil {
			return err
		}
	}
	g.Complete()

	v.deallocate()
	*v.storage.First() = newBuf
	v.end = newEnd
	return nil
}

// growthCapacity picks the capacity for a reallocation that must hold at
// least requested slots: double the current capacity, or jump straight to
// MaxSize once doubling would pass it.
func (v *Vector[T, A]) growthCapacity(requested int) (int, error) {
	maxSize := v.MaxSize()
	if requested < 0 || requested > maxSize {
		return 0, lengthError(requested, maxSize)
	}
	c := v.Cap()
	if c >= maxSize/2 {
		return maxSize, nil
	}
	return max(2*c, requested), nil
}

// reserveSpare makes room for count more elements, reallocating with the
// growth policy when the spare slots do not suffice.
func (v *Vector[T, A]) reserveSpare(count int) error {
	c := v.Cap()
	if c-v.end >= count {
		return nil
	}
	if maxSize := v.MaxSize(); count > maxSize-v.end {
		return lengthError(v.end+count, maxSize)
	}
	newCap, err := v.growthCapacity(min(c, v.MaxSize()-count) + count)
	if err != nil {
		return err
	}
	return v.reallocateStorage(newCap)
}

// rotateIntoPlace moves the count elements just appended at the end to
// start at idx, shifting [idx, end-count) right. Elements are only swapped,
// so nothing is constructed or destroyed and nothing can fail.
func (v *Vector[T, A]) rotateIntoPlace(idx, count int) {
	s := v.buf()[idx:v.end]
	k := len(s) - count
	slices.Reverse(s[:k])
	slices.Reverse(s[k:])
	slices.Reverse(s)
}

// erase removes count elements starting at idx. The tail moves left by
// assignment and the vacated trailing slots are destroyed back to front.
func (v *Vector[T, A]) erase(idx, count int) {
	buf := v.buf()
	copy(buf[idx:], buf[idx+count:v.end])
	for newEnd := v.end - count; v.end != newEnd; {
		v.destroyAtEnd()
	}
}

// overlaps reports whether values shares memory with v's buffer.
func (v *Vector[T, A]) overlaps(values []T) bool {
	buf := v.buf()
	if len(values) == 0 || len(buf) == 0 {
		return false
	}
	lo, hi := &buf[0], &buf[len(buf)-1]
	first, last := &values[0], &values[len(values)-1]
	return !(ptrLess(last, lo) || ptrLess(hi, first))
}

func ptrLess[T any](a, b *T) bool {
	return uintptr(unsafe.Pointer(a)) < uintptr(unsafe.Pointer(b))
}
