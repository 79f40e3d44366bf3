// Package mem defines the allocator abstraction shared by every component
// of github.com/katalvlaran/heaplab: a fallible source of owned byte
// buffers, plus wrappers that add accounting and recycling on top of it.
//
// Ownership contract (applies to every Allocator in this module):
//
//   - A buffer returned by Allocate or AllocateZeroed belongs exclusively
//     to the caller until it is handed back to Free.
//   - Buffers must be returned exactly as issued: same first byte, not
//     resliced from the front. Reslicing the tail (buf[:n]) is fine.
//   - Zero-size requests yield a nil buffer and no error; Free of a nil or
//     empty buffer is a no-op. "No buffer" is therefore representable and
//     round-trips safely.
//
// Implementations are NOT safe for concurrent use unless their own
// documentation says otherwise.
package mem

// Allocator is a fallible source of owned byte buffers.
type Allocator interface {
	// Allocate returns an owned buffer of exactly size bytes with
	// unspecified contents. size < 0 returns ErrBadSize; size == 0
	// returns (nil, nil).
	Allocate(size int) ([]byte, error)

	// AllocateZeroed behaves like Allocate with the buffer zero-filled.
	AllocateZeroed(size int) ([]byte, error)

	// Free releases an owned buffer. Freeing nil or an empty buffer is a
	// no-op. Implementations that track ownership return ErrDoubleFree
	// for duplicate or foreign buffers.
	Free(buf []byte) error
}

// GoAllocator delegates to the Go runtime: Allocate is make, Free is a
// no-op and the garbage collector reclaims the bytes. It never reports
// ErrExhausted; a request the runtime cannot satisfy terminates the
// process, which is the module-wide exhaustion policy unless a capped
// allocator is configured instead.
type GoAllocator struct{}

// Allocate returns a fresh runtime-managed buffer.
// Complexity: O(size) (runtime clears new memory).
func (GoAllocator) Allocate(size int) ([]byte, error) {
	if size < 0 {
		return nil, ErrBadSize
	}
	if size == 0 {
		return nil, nil
	}

	return make([]byte, size), nil
}

// AllocateZeroed returns a fresh zero-filled buffer. Runtime allocations
// arrive zeroed already, so this is identical to Allocate.
func (g GoAllocator) AllocateZeroed(size int) ([]byte, error) {
	return g.Allocate(size)
}

// Free is a no-op; the garbage collector owns reclamation.
// Complexity: O(1).
func (GoAllocator) Free(_ []byte) error { return nil }

// Default is the allocator used by components when no explicit Allocator
// is configured.
var Default Allocator = GoAllocator{}
