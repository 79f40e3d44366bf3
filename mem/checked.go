package mem

import (
	"fmt"
	"sync"
)

// CheckedAllocator wraps another Allocator and accounts for every buffer
// it issues: live buffer count and bytes, the high-water mark, and
// cumulative allocation/release totals. It rejects duplicate and foreign
// releases with ErrDoubleFree before they reach the inner allocator.
//
// Unlike the allocators it wraps, CheckedAllocator is safe for concurrent
// use; the inner allocator still sees one call at a time.
type CheckedAllocator struct {
	inner Allocator

	mu        sync.Mutex
	live      map[*byte]int // first byte of a live buffer -> its length
	liveBytes int
	peakBytes int
	allocs    uint64
	frees     uint64
}

// NewChecked wraps inner with full buffer accounting.
func NewChecked(inner Allocator) *CheckedAllocator {
	if inner == nil {
		panic("mem: NewChecked: nil inner allocator")
	}

	return &CheckedAllocator{
		inner: inner,
		live:  make(map[*byte]int),
	}
}

// Allocate issues a buffer from the inner allocator and records it.
func (c *CheckedAllocator) Allocate(size int) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.track(c.inner.Allocate, size)
}

// AllocateZeroed issues a zero-filled buffer and records it.
func (c *CheckedAllocator) AllocateZeroed(size int) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.track(c.inner.AllocateZeroed, size)
}

// track delegates to one of the inner allocation entry points and records
// the result. Zero-size requests produce nil buffers and are not tracked;
// Free of nil is a symmetric no-op.
func (c *CheckedAllocator) track(alloc func(int) ([]byte, error), size int) ([]byte, error) {
	buf, err := alloc(size)
	if err != nil || len(buf) == 0 {
		return buf, err
	}
	c.live[&buf[0]] = len(buf)
	c.liveBytes += len(buf)
	if c.liveBytes > c.peakBytes {
		c.peakBytes = c.liveBytes
	}
	c.allocs++

	return buf, nil
}

// Free releases a recorded buffer. Buffers this allocator never issued,
// or already released, are rejected with ErrDoubleFree and the inner
// allocator is left untouched.
func (c *CheckedAllocator) Free(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	c.mu.Lock()
	n, ok := c.live[&buf[0]]
	if !ok {
		c.mu.Unlock()

		return ErrDoubleFree
	}
	delete(c.live, &buf[0])
	c.liveBytes -= n
	c.frees++
	err := c.inner.Free(buf)
	c.mu.Unlock()

	return err
}

// LiveBuffers reports how many issued buffers have not been released.
func (c *CheckedAllocator) LiveBuffers() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.live)
}

// LiveBytes reports the total length of live buffers.
func (c *CheckedAllocator) LiveBytes() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.liveBytes
}

// PeakBytes reports the highest LiveBytes value observed.
func (c *CheckedAllocator) PeakBytes() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.peakBytes
}

// Allocs reports the cumulative number of tracked allocations.
func (c *CheckedAllocator) Allocs() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.allocs
}

// Frees reports the cumulative number of tracked releases.
func (c *CheckedAllocator) Frees() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.frees
}

// CheckLeaks returns nil when every issued buffer has been released, and
// an error wrapping ErrLeak describing the outstanding buffers otherwise.
func (c *CheckedAllocator) CheckLeaks() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.live) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %d buffers, %d bytes", ErrLeak, len(c.live), c.liveBytes)
}
