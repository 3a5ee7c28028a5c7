// Package vector implements a generic growable array whose storage comes
// from a pluggable allocator.
//
// # Overview
//
// A Vector[T, A] keeps its elements in one contiguous buffer of slots.
// The first Len slots hold live elements; the remaining Cap-Len slots are
// allocated but empty. Storage is requested from an Allocator, which also
// constructs and destroys elements. That makes the vector useful for:
//
//   - Drawing storage from an arena instead of the garbage-collected heap
//   - Counting allocations and element copies with Prometheus
//   - Injecting failures to exercise rollback paths
//
// # Basic Usage
//
//	v := vector.New[int]()
//	defer v.Release()
//
//	_ = v.PushBack(1)
//	_ = v.PushBack(3)
//	it, _ := v.Insert(v.Begin().Next(), 2) // {1, 2, 3}
//	v.Erase(it)                           // {1, 3}
//
//	for i, x := range v.All() {
//		fmt.Println(i, x)
//	}
//
// # Allocators
//
// Heap is the default allocator and takes no space inside the vector.
// ArenaAllocator carves buffers from an arena.Arena and hands the newest
// buffer back on Deallocate, so a vector that grows repeatedly reuses the
// same arena bytes. MetricsAllocator wraps any other allocator and exports
// counters and gauges.
//
// # Growth
//
// When an insertion does not fit, the capacity doubles, or grows to the
// requested size if that is larger. Once doubling would pass MaxSize the
// capacity jumps straight to MaxSize. Reserve and ShrinkToFit reallocate to
// an exact capacity.
//
// # Failures
//
// Operations that can fail return an error instead of panicking:
// ErrLength for sizes beyond MaxSize, ErrBadAlloc when the allocator has no
// storage, ErrOutOfRange from At, and whatever Allocator.Construct or an
// emplace constructor returns. Reallocation, insertion, copying and
// assignment that needs new storage leave the vector unchanged on failure.
// Assign into existing capacity and ResizeFill may leave a shorter vector.
//
// # Iterator invalidation
//
// Iterators are plain (buffer, index) pairs. Any reallocation invalidates
// every iterator; Insert and Erase invalidate those at or after the
// affected position. An invalidated iterator still compares unequal to
// fresh ones taken after a reallocation, but reading through it is an
// error the package does not detect.
//
// # Thread Safety
//
// A Vector is not safe for concurrent use.
package vector
