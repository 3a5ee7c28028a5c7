package vector

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

var errConstruct = errors.New("construct refused")

// countingAlloc is a heap allocator that counts every call and can be told
// to refuse allocations or constructions.
type countingAlloc[T any] struct {
	allocs, deallocs     int
	constructs, destroys int

	failAlloc bool
	// budget is the number of constructions still allowed; negative means
	// unlimited.
	budget  int
	maxSize int
}

func newCountingAlloc[T any]() *countingAlloc[T] {
	return &countingAlloc[T]{budget: -1}
}

func (c *countingAlloc[T]) Allocate(n int) ([]T, error) {
	if c.failAlloc {
		return nil, errors.Wrap(ErrBadAlloc, "refused")
	}
	c.allocs++
	return make([]T, n), nil
}

func (c *countingAlloc[T]) Deallocate([]T) { c.deallocs++ }

func (c *countingAlloc[T]) Construct(slot *T, value T) error {
	if c.budget == 0 {
		return errConstruct
	}
	if c.budget > 0 {
		c.budget--
	}
	c.constructs++
	*slot = value
	return nil
}

func (c *countingAlloc[T]) Destroy(slot *T) {
	c.destroys++
	var zero T
	*slot = zero
}

func (c *countingAlloc[T]) MaxSize() int {
	if c.maxSize > 0 {
		return c.maxSize
	}
	return maxSizeOf[T]()
}

// live is the number of constructed elements not yet destroyed.
func (c *countingAlloc[T]) live() int { return c.constructs - c.destroys }

// buffers is the number of buffers not yet deallocated.
func (c *countingAlloc[T]) buffers() int { return c.allocs - c.deallocs }

func checkInvariants[T any, A Allocator[T]](t *testing.T, v *Vector[T, A]) {
	t.Helper()
	require.GreaterOrEqual(t, v.Len(), 0)
	require.LessOrEqual(t, v.Len(), v.Cap())
	require.LessOrEqual(t, v.Cap(), v.MaxSize())
	require.Equal(t, v.Cap() == 0, v.buf() == nil, "nil buffer iff zero capacity")
	require.Equal(t, v.Len() == 0, v.Empty())
	require.Equal(t, v.Len(), v.End().Diff(v.Begin()))
	require.Len(t, v.Data(), v.Len())
}

func countingVector(t *testing.T, values ...int) (*Vector[int, *countingAlloc[int]], *countingAlloc[int]) {
	t.Helper()
	ca := newCountingAlloc[int]()
	v, err := FromSlice(ca, values)
	require.NoError(t, err)
	return v, ca
}
