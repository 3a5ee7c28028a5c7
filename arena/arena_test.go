package arena

import (
	"errors"
	"fmt"
	"testing"
	"unsafe"
)

func TestNewArena(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		expected  int
	}{
		{"default chunk size", 0, DefaultChunkSize},
		{"negative chunk size", -1, DefaultChunkSize},
		{"custom chunk size", 8192, 8192},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArena(tt.chunkSize)
			if a.chunkSize != tt.expected {
				t.Errorf("NewArena(%d) chunk size = %d, want %d", tt.chunkSize, a.chunkSize, tt.expected)
			}
			if len(a.chunks) != 1 {
				t.Errorf("NewArena(%d) chunks = %d, want 1", tt.chunkSize, len(a.chunks))
			}
		})
	}
}

func TestArenaAllocBytes(t *testing.T) {
	a := NewArena(1024)

	b1, err := a.AllocBytes(100)
	if err != nil || len(b1) != 100 {
		t.Fatalf("AllocBytes(100) = %d bytes, %v", len(b1), err)
	}

	for _, n := range []int{0, -1} {
		b, err := a.AllocBytes(n)
		if b != nil || err != nil {
			t.Errorf("AllocBytes(%d) = %v, %v, want nil, nil", n, b, err)
		}
	}

	// Larger than a chunk forces growth.
	b4, err := a.AllocBytes(2000)
	if err != nil || len(b4) != 2000 {
		t.Fatalf("AllocBytes(2000) = %d bytes, %v", len(b4), err)
	}
	if a.NumChunks() != 2 {
		t.Errorf("NumChunks after large allocation = %d, want 2", a.NumChunks())
	}
}

func TestArenaEnsureCapacity(t *testing.T) {
	a := NewArena(1024)
	initialChunks := a.NumChunks()

	if err := a.EnsureCapacity(100); err != nil {
		t.Fatal(err)
	}
	if a.NumChunks() != initialChunks {
		t.Errorf("EnsureCapacity(100) changed chunk count")
	}

	if err := a.EnsureCapacity(2000); err != nil {
		t.Fatal(err)
	}
	if a.NumChunks() != initialChunks+1 {
		t.Errorf("EnsureCapacity(2000) chunks = %d, want %d", a.NumChunks(), initialChunks+1)
	}

	before := a.Metrics()
	if err := a.EnsureCapacity(-1); err == nil {
		t.Error("EnsureCapacity(-1) succeeded")
	}
	if err := a.EnsureCapacity(0); err != nil {
		t.Errorf("EnsureCapacity(0) err = %v", err)
	}
	if after := a.Metrics(); after != before {
		t.Errorf("non-positive EnsureCapacity changed the arena: %+v, want %+v", after, before)
	}
}

func TestArenaReset(t *testing.T) {
	a := NewArena(1024)
	_, _ = a.AllocBytes(100)
	_, _ = a.AllocBytes(200)

	if a.SizeInUse() == 0 {
		t.Error("Expected non-zero size in use after allocations")
	}

	if err := a.Reset(); err != nil {
		t.Fatal(err)
	}
	if a.SizeInUse() != 0 {
		t.Errorf("SizeInUse after Reset() = %d, want 0", a.SizeInUse())
	}
	if a.NumChunks() == 0 {
		t.Error("Expected chunks to remain after Reset()")
	}
}

func TestArenaResetReusesLaterChunks(t *testing.T) {
	a := NewArena(1024)
	_, _ = a.AllocBytes(1000)
	_, _ = a.AllocBytes(1000)
	if a.NumChunks() != 2 {
		t.Fatalf("NumChunks = %d, want 2", a.NumChunks())
	}

	_ = a.Reset()
	_, _ = a.AllocBytes(1000)
	_, _ = a.AllocBytes(1000)
	if a.NumChunks() != 2 {
		t.Errorf("NumChunks after reuse = %d, want 2", a.NumChunks())
	}
}

func TestArenaRelease(t *testing.T) {
	a := NewArena(1024)
	_, _ = a.AllocBytes(100)

	a.Release()

	if !a.Released() {
		t.Error("Expected Released() after Release()")
	}
	if _, err := a.AllocBytes(100); !errors.Is(err, ErrReleased) {
		t.Errorf("AllocBytes after Release() err = %v, want ErrReleased", err)
	}
	if err := a.Reset(); !errors.Is(err, ErrReleased) {
		t.Errorf("Reset after Release() err = %v, want ErrReleased", err)
	}
	if err := a.EnsureCapacity(1); !errors.Is(err, ErrReleased) {
		t.Errorf("EnsureCapacity after Release() err = %v, want ErrReleased", err)
	}
}

func TestArenaFree(t *testing.T) {
	a := NewArena(1024)
	x, _ := a.AllocBytes(64)
	y, _ := a.AllocBytes(32)

	if a.Free(x) {
		t.Error("Free of an older allocation must not roll back")
	}
	if !a.Free(y) {
		t.Error("Free of the newest allocation must roll back")
	}
	if a.SizeInUse() != 64 {
		t.Errorf("SizeInUse after rollback = %d, want 64", a.SizeInUse())
	}
	if !a.Free(x) {
		t.Error("x became the newest allocation and must roll back")
	}
	if a.SizeInUse() != 0 {
		t.Errorf("SizeInUse = %d, want 0", a.SizeInUse())
	}

	m := a.Metrics()
	if m.Allocs != 2 || m.Frees != 3 || m.Rollbacks != 2 {
		t.Errorf("Metrics = %+v, want 2 allocs, 3 frees, 2 rollbacks", m)
	}
}

func TestArenaFreeReusesBytes(t *testing.T) {
	a := NewArena(1024)
	_, _ = a.AllocBytes(8)
	y, _ := a.AllocBytes(24)
	a.Free(y)
	z, _ := a.AllocBytes(24)
	if &y[0] != &z[0] {
		t.Error("expected rolled back bytes to be handed out again")
	}
}

func TestArenaFreeForeign(t *testing.T) {
	a := NewArena(1024)
	if a.Free(make([]byte, 8)) {
		t.Error("Free of memory outside the arena must not roll back")
	}
	if a.Free(nil) {
		t.Error("Free(nil) must not roll back")
	}
}

func TestAlignPtr(t *testing.T) {
	ptrSize := unsafe.Sizeof(uintptr(0))

	tests := []struct {
		input    uintptr
		expected uintptr
	}{
		{0, 0},
		{1, ptrSize},
		{ptrSize, ptrSize},
		{ptrSize + 1, ptrSize * 2},
	}

	for _, tt := range tests {
		result := alignPtr(tt.input)
		if result != tt.expected {
			t.Errorf("alignPtr(%d) = %d, want %d", tt.input, result, tt.expected)
		}
	}
}

func BenchmarkArenaAllocBytes(b *testing.B) {
	a := NewArena(1024 * 1024)
	sizes := []int{8, 64, 256, 1024}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("size-%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = a.AllocBytes(size)
				if i%1000 == 999 {
					_ = a.Reset()
				}
			}
		})
	}
}
