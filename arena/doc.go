// Package arena implements a first-fit, address-ordered free-list
// allocator over plain Go byte segments, with block splitting, neighbor
// coalescing, double-free detection, and full accounting.
//
// 🚀 What is arena?
//
//	An Arena carves owned buffers out of large backing segments instead of
//	asking the runtime for every buffer individually. Freed blocks return
//	to an address-ordered free list and merge with physically adjacent
//	neighbors, so the arena can serve long allocate/release workloads
//	without fragmenting. It is handy for:
//	  • pools of short-lived buffers with bursty lifecycles
//	  • bounded-memory components (cap the arena, observe ErrExhausted)
//	  • teaching and testing allocator behavior deterministically
//
// ✨ Key features:
//   - first-fit search in address order with a perfect-fit fast path
//   - block split on allocation, bidirectional merge on release
//   - realloc-style Reallocate (shrink in place, grow via copy)
//   - overflow-checked Calloc and malloc_usable_size-style UsableSize
//   - duplicate and foreign releases rejected with mem.ErrDoubleFree
//   - Stats snapshot: capacity, live/free bytes, splits, merges, grows
//   - optional zap tracing of every allocator event
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/heaplab/arena"
//
//	a := arena.New(
//	  arena.WithSegmentSize(64<<10), // grow 64 KiB at a time
//	  arena.WithMaxBytes(1<<20),     // hard cap; beyond it: mem.ErrExhausted
//	)
//	buf, err := a.Allocate(512)
//	if err != nil { ... }
//	defer a.Release()
//	...
//	_ = a.Free(buf)
//
// An Arena is a value for a single owner: it is NOT safe for concurrent
// use. Wrap it in mem.NewChecked for a concurrency-safe accounting layer.
//
// Performance:
//
//   - Allocate/Free: O(F) over free spans, O(1) when fragmentation is low
//   - UsableSize: O(1)
//   - Memory: segments plus one span record per free range and live block
package arena
