package vector

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsAllocator forwards to an upstream allocator and records what
// passes through it. Any collector may be nil.
type MetricsAllocator[T any, U Allocator[T]] struct {
	upstream U
	elemSize uint64

	allocateBytesCounter   prometheus.Counter
	inuseBytesGauge        prometheus.Gauge
	allocateObjectsCounter prometheus.Counter
	inuseObjectsGauge      prometheus.Gauge
	constructCounter       prometheus.Counter
}

var _ Allocator[int] = new(MetricsAllocator[int, Heap[int]])

func NewMetricsAllocator[T any, U Allocator[T]](
	upstream U,
	allocateBytesCounter prometheus.Counter,
	inuseBytesGauge prometheus.Gauge,
	allocateObjectsCounter prometheus.Counter,
	inuseObjectsGauge prometheus.Gauge,
	constructCounter prometheus.Counter,
) *MetricsAllocator[T, U] {
	return &MetricsAllocator[T, U]{
		upstream:               upstream,
		elemSize:               uint64(unsafe.Sizeof(*new(T))),
		allocateBytesCounter:   allocateBytesCounter,
		inuseBytesGauge:        inuseBytesGauge,
		allocateObjectsCounter: allocateObjectsCounter,
		inuseObjectsGauge:      inuseObjectsGauge,
		constructCounter:       constructCounter,
	}
}

// RegisterMetricsAllocator builds the full set of collectors under
// namespace, registers them with reg and wraps upstream.
func RegisterMetricsAllocator[T any, U Allocator[T]](
	reg prometheus.Registerer,
	namespace string,
	upstream U,
) (*MetricsAllocator[T, U], error) {
	allocateBytes := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "vector",
		Name:      "allocate_bytes_total",
		Help:      "Bytes of slot storage allocated.",
	})
	inuseBytes := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "vector",
		Name:      "inuse_bytes",
		Help:      "Bytes of slot storage not yet deallocated.",
	})
	allocateObjects := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "vector",
		Name:      "allocate_buffers_total",
		Help:      "Slot buffers allocated.",
	})
	inuseObjects := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "vector",
		Name:      "inuse_buffers",
		Help:      "Slot buffers not yet deallocated.",
	})
	constructs := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "vector",
		Name:      "construct_total",
		Help:      "Elements constructed into slots.",
	})
	for _, c := range []prometheus.Collector{allocateBytes, inuseBytes, allocateObjects, inuseObjects, constructs} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "register allocator metrics")
		}
	}
	return NewMetricsAllocator[T](upstream, allocateBytes, inuseBytes, allocateObjects, inuseObjects, constructs), nil
}

// Upstream returns the wrapped allocator.
func (m *MetricsAllocator[T, U]) Upstream() U { return m.upstream }

// Allocate forwards to the upstream allocator and records the buffer.
func (m *MetricsAllocator[T, U]) Allocate(n int) ([]T, error) {
	buf, err := m.upstream.Allocate(n)
	if err != nil {
		return nil, err
	}
	size := float64(uint64(len(buf)) * m.elemSize)
	if m.allocateBytesCounter != nil {
		m.allocateBytesCounter.Add(size)
	}
	if m.inuseBytesGauge != nil {
		m.inuseBytesGauge.Add(size)
	}
	if m.allocateObjectsCounter != nil {
		m.allocateObjectsCounter.Inc()
	}
	if m.inuseObjectsGauge != nil {
		m.inuseObjectsGauge.Inc()
	}
	return buf, nil
}

// Deallocate records the release and forwards buf upstream.
func (m *MetricsAllocator[T, U]) Deallocate(buf []T) {
	m.upstream.Deallocate(buf)
	if m.inuseBytesGauge != nil {
		m.inuseBytesGauge.Sub(float64(uint64(len(buf)) * m.elemSize))
	}
	if m.inuseObjectsGauge != nil {
		m.inuseObjectsGauge.Dec()
	}
}

// Construct forwards upstream and counts successful constructions.
func (m *MetricsAllocator[T, U]) Construct(slot *T, value T) error {
	if err := m.upstream.Construct(slot, value); err != nil {
		return err
	}
	if m.constructCounter != nil {
		m.constructCounter.Inc()
	}
	return nil
}

// Destroy forwards to the upstream allocator.
func (m *MetricsAllocator[T, U]) Destroy(slot *T) {
	m.upstream.Destroy(slot)
}

// MaxSize returns the upstream limit.
func (m *MetricsAllocator[T, U]) MaxSize() int {
	return m.upstream.MaxSize()
}
