package vector

import "unsafe"

// Stats describes how a vector uses its storage.
type Stats struct {
	Len           int     // Live elements
	Cap           int     // Allocated slots
	Spare         int     // Cap - Len
	ElemSize      int     // Bytes per slot
	BytesInUse    int     // Len * ElemSize
	BytesReserved int     // Cap * ElemSize
	Utilization   float64 // Len / Cap, 0 when nothing is allocated
}

// Stats returns a snapshot of v's storage usage.
func (v *Vector[T, A]) Stats() Stats {
	size := int(unsafe.Sizeof(*new(T)))
	s := Stats{
		Len:           v.end,
		Cap:           v.Cap(),
		Spare:         v.Cap() - v.end,
		ElemSize:      size,
		BytesInUse:    v.end * size,
		BytesReserved: v.Cap() * size,
	}
	if s.Cap != 0 {
		s.Utilization = float64(s.Len) / float64(s.Cap)
	}
	return s
}
