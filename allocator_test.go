package vector

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/vector/arena"
)

func TestHeapAllocate(t *testing.T) {
	var h Heap[int32]
	buf, err := h.Allocate(4)
	require.NoError(t, err)
	assert.Len(t, buf, 4)

	for _, n := range []int{-1, h.MaxSize() + 1} {
		_, err := h.Allocate(n)
		assert.True(t, errors.Is(err, ErrBadAlloc), "Allocate(%d)", n)
	}

	_, err = h.Allocate(h.MaxSize())
	assert.True(t, errors.Is(err, ErrBadAlloc), "runtime refusal is reported, not raised")
}

func TestHeapConstructDestroy(t *testing.T) {
	var h Heap[string]
	var slot string
	require.NoError(t, h.Construct(&slot, "x"))
	assert.Equal(t, "x", slot)
	h.Destroy(&slot)
	assert.Equal(t, "", slot)
}

func TestMaxSize(t *testing.T) {
	assert.Equal(t, maxSizeOf[int64](), New[int64]().MaxSize())
	assert.Equal(t, maxSizeOf[byte](), New[byte]().MaxSize())
	assert.Greater(t, New[byte]().MaxSize(), New[int64]().MaxSize())
	assert.Equal(t, maxSizeOf[struct{}](), New[struct{}]().MaxSize())

	ca := newCountingAlloc[int64]()
	ca.maxSize = 7
	assert.Equal(t, 7, NewWith[int64](ca).MaxSize())
}

func TestReserveBeyondHeap(t *testing.T) {
	v := Of[int64](1, 2, 3)
	err := v.Reserve(v.MaxSize())
	require.True(t, errors.Is(err, ErrBadAlloc))
	assert.Equal(t, []int64{1, 2, 3}, v.Data())
	assert.Equal(t, 3, v.Cap())
}

func TestNewArenaAllocatorRejectsPointers(t *testing.T) {
	a := arena.NewArena(0)
	defer a.Release()

	type flat struct {
		X, Y int32
		Tags [4]uint16
	}
	type nested struct {
		N  int
		In struct{ P *int }
	}

	_, err := NewArenaAllocator[*int](a)
	assert.Error(t, err)
	_, err = NewArenaAllocator[string](a)
	assert.Error(t, err)
	_, err = NewArenaAllocator[[]byte](a)
	assert.Error(t, err)
	_, err = NewArenaAllocator[nested](a)
	assert.Error(t, err)
	_, err = NewArenaAllocator[[2]any](a)
	assert.Error(t, err)

	_, err = NewArenaAllocator[int64](a)
	assert.NoError(t, err)
	_, err = NewArenaAllocator[flat](a)
	assert.NoError(t, err)
	_, err = NewArenaAllocator[[0]*int](a)
	assert.NoError(t, err)
}

func TestArenaAllocatorBacksVector(t *testing.T) {
	a := arena.NewArena(1 << 12)
	defer a.Release()
	al, err := NewArenaAllocator[int64](a)
	require.NoError(t, err)
	require.Same(t, a, al.Arena())

	v := NewWith[int64](al)
	for i := int64(0); i < 100; i++ {
		require.NoError(t, v.PushBack(i))
	}
	checkInvariants(t, v)
	assert.Equal(t, 128, v.Cap())
	assert.Equal(t, int64(99), v.Back())

	// 1+2+...+128 slots of 8 bytes; old buffers are never the newest.
	assert.Equal(t, 255*8, a.SizeInUse())
	assert.Equal(t, 0, a.Metrics().Rollbacks)

	v.Release()
	assert.Equal(t, 127*8, a.SizeInUse(), "newest buffer is rolled back")
	assert.Equal(t, 1, a.Metrics().Rollbacks)
}

func TestArenaAllocatorReleasedArena(t *testing.T) {
	a := arena.NewArena(0)
	al, err := NewArenaAllocator[int32](a)
	require.NoError(t, err)
	v := NewWith[int32](al)
	require.NoError(t, v.PushBack(1))

	a.Release()
	err = v.PushBack(2)
	assert.True(t, errors.Is(err, ErrBadAlloc))
	assert.True(t, errors.Is(err, arena.ErrReleased))
	assert.Equal(t, []int32{1}, v.Data())
}

func TestMetricsAllocator(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := RegisterMetricsAllocator[int64](reg, "test", Heap[int64]{})
	require.NoError(t, err)

	v := NewWith[int64](m)
	for i := int64(0); i < 5; i++ {
		require.NoError(t, v.PushBack(i))
	}

	assert.Equal(t, float64((1+2+4+8)*8), testutil.ToFloat64(m.allocateBytesCounter))
	assert.Equal(t, float64(8*8), testutil.ToFloat64(m.inuseBytesGauge))
	assert.Equal(t, float64(4), testutil.ToFloat64(m.allocateObjectsCounter))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.inuseObjectsGauge))
	assert.Equal(t, float64(5+1+2+4), testutil.ToFloat64(m.constructCounter), "pushes plus relocations")

	require.NoError(t, v.EmplaceBack(func(x *int64) error {
		*x = 5
		return nil
	}))
	assert.Equal(t, float64(5+1+2+4+1), testutil.ToFloat64(m.constructCounter), "emplace is counted")

	v.Release()
	assert.Equal(t, float64(0), testutil.ToFloat64(m.inuseBytesGauge))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.inuseObjectsGauge))

	_, err = RegisterMetricsAllocator[int64](reg, "test", Heap[int64]{})
	assert.Error(t, err, "collectors are already registered")
}

func TestMetricsAllocatorWithoutCollectors(t *testing.T) {
	m := NewMetricsAllocator[int](Heap[int]{}, nil, nil, nil, nil, nil)
	v := NewWith[int](m)
	require.NoError(t, v.PushBack(1))
	v.Release()
	assert.Equal(t, Heap[int]{}, m.Upstream())
}

func TestMetricsAllocatorPassesFailures(t *testing.T) {
	ca := newCountingAlloc[int]()
	reg := prometheus.NewRegistry()
	m, err := RegisterMetricsAllocator[int](reg, "fail", ca)
	require.NoError(t, err)

	v := NewWith[int](m)
	require.NoError(t, v.PushBack(1))
	ca.budget = 0
	require.ErrorIs(t, v.PushBack(2), errConstruct)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.constructCounter))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.inuseObjectsGauge))
	assert.Equal(t, 1, ca.live())
}
