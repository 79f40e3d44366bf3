package mem

import (
	"sync"
	"unsafe"
)

// DefaultPoolClass is the buffer class recycled by NewPooled when callers
// have no better estimate (16 KiB).
const DefaultPoolClass = 16 * 1024

// PooledAllocator recycles buffers of one fixed class through a sync.Pool.
// Requests up to the class size are served from the pool with the full
// class capacity behind them; larger requests fall through to the next
// allocator. Recycled memory is dirty, so AllocateZeroed clears before
// returning.
//
// The pool stores only the first byte of each class buffer and rebuilds
// the slice on Get, which keeps Put allocation-free.
type PooledAllocator struct {
	class int
	pool  sync.Pool
	next  Allocator
}

// NewPooled builds a PooledAllocator for the given class size, falling
// through to next for requests the pool cannot serve.
func NewPooled(class int, next Allocator) *PooledAllocator {
	if class <= 0 {
		panic("mem: NewPooled: class size must be positive")
	}
	if next == nil {
		panic("mem: NewPooled: nil fallthrough allocator")
	}
	p := &PooledAllocator{class: class, next: next}
	p.pool.New = func() interface{} {
		b := make([]byte, class)

		return &b[0]
	}

	return p
}

// Allocate serves size bytes from the pool when size fits the class,
// otherwise from the fallthrough allocator. Pool-served buffers keep the
// full class capacity so releases can identify them.
// Complexity: O(1) amortized.
func (p *PooledAllocator) Allocate(size int) ([]byte, error) {
	if size < 0 {
		return nil, ErrBadSize
	}
	if size == 0 {
		return nil, nil
	}
	if size > p.class {
		return p.next.Allocate(size)
	}
	ptr := p.pool.Get().(*byte)

	return unsafe.Slice(ptr, p.class)[:size], nil
}

// AllocateZeroed behaves like Allocate and clears the buffer, since
// recycled class buffers carry previous contents.
func (p *PooledAllocator) AllocateZeroed(size int) ([]byte, error) {
	buf, err := p.Allocate(size)
	if err != nil || buf == nil {
		return nil, err
	}
	clear(buf)

	return buf, nil
}

// Free returns class buffers to the pool and hands everything else to the
// fallthrough allocator. Class membership is decided by capacity: only
// pool-served buffers carry exactly the class capacity (the fallthrough
// serves strictly larger requests).
// Complexity: O(1).
func (p *PooledAllocator) Free(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if cap(buf) != p.class {
		return p.next.Free(buf)
	}
	p.pool.Put(&buf[0])

	return nil
}
