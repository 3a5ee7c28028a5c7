package arena

// Metrics is a snapshot of arena usage together with the allocation calls
// made since the arena was created.
type Metrics struct {
	SizeInUse   int     // Bytes handed out and not rolled back, padding included
	Capacity    int     // Bytes held in chunks
	NumChunks   int     // Chunks held
	ChunkSize   int     // Default size of a new chunk
	Utilization float64 // SizeInUse / Capacity, 0 without chunks
	Allocs      int     // Successful non-empty allocations
	Frees       int     // Free calls on non-empty slices
	Rollbacks   int     // Frees that gave bytes back
}

// Metrics walks the chunks once and returns the current snapshot.
func (a *Arena) Metrics() Metrics {
	m := Metrics{
		NumChunks: len(a.chunks),
		ChunkSize: a.chunkSize,
		Allocs:    a.allocs,
		Frees:     a.frees,
		Rollbacks: a.rollbacks,
	}
	for _, c := range a.chunks {
		m.SizeInUse += int(c.offset)
		m.Capacity += len(c.buf)
	}
	if m.Capacity > 0 {
		m.Utilization = float64(m.SizeInUse) / float64(m.Capacity)
	}
	return m
}

// SizeInUse returns the bytes handed out across all chunks.
func (a *Arena) SizeInUse() int { return a.Metrics().SizeInUse }

// Capacity returns the total size of all chunks.
func (a *Arena) Capacity() int { return a.Metrics().Capacity }

// Utilization returns SizeInUse / Capacity.
func (a *Arena) Utilization() float64 { return a.Metrics().Utilization }

// NumChunks returns the number of chunks held.
func (a *Arena) NumChunks() int { return len(a.chunks) }

// ChunkSize returns the default size of a new chunk.
func (a *Arena) ChunkSize() int { return a.chunkSize }
