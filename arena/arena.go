// Package arena implements a chunked bump allocator that backs vector
// storage. Allocations are carved sequentially from large chunks; the
// newest allocation of a chunk can be handed back with Free, which lets a
// vector that grows and discards its latest buffer reuse the same bytes.
package arena

import (
	"unsafe"

	"github.com/cockroachdb/errors"
)

// DefaultChunkSize is the default chunk size for new arenas (64 KiB).
const DefaultChunkSize = 1 << 16

// ErrReleased is returned by allocations on an arena after Release.
var ErrReleased = errors.New("arena: use after Release")

// chunk represents a single memory chunk within an arena.
type chunk struct {
	buf    []byte  // backing memory
	offset uintptr // next free byte; always pointer aligned
}

// Arena is a chunked bump allocator. It is not goroutine-safe.
type Arena struct {
	chunks    []chunk
	chunkSize int
	current   int

	allocs    int
	frees     int
	rollbacks int
}

// NewArena creates a new Arena with the specified chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewArena(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	a := &Arena{chunkSize: chunkSize}
	a.grow(chunkSize)
	return a
}

// AllocBytes returns n bytes carved from the arena. The slice stays valid
// until Reset, Release, or a Free of this very slice.
// Returns nil, nil if n <= 0.
func (a *Arena) AllocBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	if a.chunks == nil {
		return nil, ErrReleased
	}
	size := alignPtr(uintptr(n))
	if size < uintptr(n) {
		return nil, errors.Newf("arena: allocation of %d bytes overflows", n)
	}

	// Fast path: current chunk, then any chunk left over from a Reset.
	for i := a.current; i < len(a.chunks); i++ {
		c := &a.chunks[i]
		if c.offset+size <= uintptr(len(c.buf)) {
			a.current = i
			return a.take(c, n, size), nil
		}
	}

	a.grow(int(size))
	return a.take(&a.chunks[a.current], n, size), nil
}

func (a *Arena) take(c *chunk, n int, size uintptr) []byte {
	start := c.offset
	c.offset += size
	a.allocs++
	return unsafe.Slice((*byte)(unsafe.Pointer(&c.buf[start])), n)
}

// Free hands b back to the arena. Only the newest allocation of a chunk
// can be reclaimed; for anything else Free records the call and returns
// false, and the bytes stay in use until Reset.
func (a *Arena) Free(b []byte) bool {
	if len(b) == 0 || a.chunks == nil {
		return false
	}
	a.frees++
	p := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	for i := range a.chunks {
		c := &a.chunks[i]
		base := uintptr(unsafe.Pointer(unsafe.SliceData(c.buf)))
		if p < base || p >= base+uintptr(len(c.buf)) {
			continue
		}
		start := p - base
		if start+alignPtr(uintptr(len(b))) != c.offset {
			return false
		}
		c.offset = start
		a.rollbacks++
		return true
	}
	return false
}

// EnsureCapacity ensures the current chunk has at least n free bytes.
// If not, it grows the arena with a new chunk. A negative n is an error;
// zero is a no-op.
func (a *Arena) EnsureCapacity(n int) error {
	if a.chunks == nil {
		return ErrReleased
	}
	if n < 0 {
		return errors.Newf("arena: negative capacity %d", n)
	}
	if n == 0 {
		return nil
	}
	size := alignPtr(uintptr(n))
	if size < uintptr(n) {
		return errors.Newf("arena: capacity of %d bytes overflows", n)
	}
	c := &a.chunks[a.current]
	if size+c.offset > uintptr(len(c.buf)) {
		a.grow(n)
	}
	return nil
}

// Reset rewinds every chunk but keeps them for reuse.
func (a *Arena) Reset() error {
	if a.chunks == nil {
		return ErrReleased
	}
	for i := range a.chunks {
		a.chunks[i].offset = 0
	}
	a.current = 0
	return nil
}

// Release drops all chunks and makes the arena unusable.
func (a *Arena) Release() {
	a.chunks = nil
	a.current = 0
}

// Released reports whether Release has been called.
func (a *Arena) Released() bool {
	return a.chunks == nil
}

// grow appends a new chunk of at least min bytes and makes it current.
func (a *Arena) grow(min int) {
	size := a.chunkSize
	if min > size {
		size = min
	}
	a.chunks = append(a.chunks, chunk{buf: make([]byte, size)})
	a.current = len(a.chunks) - 1
}

// alignPtr aligns the offset up to pointer size alignment.
func alignPtr(off uintptr) uintptr {
	const align = unsafe.Sizeof(uintptr(0))
	mask := align - 1
	return (off + mask) & ^mask
}
