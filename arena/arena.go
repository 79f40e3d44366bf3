package arena

import (
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/heaplab/mem"
)

// Arena carves owned buffers out of runtime-backed segments using a
// first-fit, address-ordered free list. Bookkeeping lives entirely
// outside the managed bytes: live blocks are tracked by their first byte,
// free ranges as (segment, offset, size) spans.
//
// An Arena belongs to a single owner and is not safe for concurrent use.
type Arena struct {
	segs [][]byte       // backing segments, never shrunk before Release
	free []span         // free spans in (segment, offset) order
	live map[*byte]span // first byte of a live buffer -> its block

	segSize  int // growth step, page-aligned
	maxBytes int // capacity cap; 0 means uncapped
	lg       *zap.Logger
	released bool

	capBytes  int
	liveBytes int
	peakLive  int

	nAllocs, nFrees, nSplits, nMerges, nGrows, nFailed, nDoubleFrees uint64
}

var _ mem.Allocator = (*Arena)(nil)

// New constructs an empty Arena. No segment is acquired until the first
// allocation, so construction never fails; invalid options panic.
func New(opts ...Option) *Arena {
	a := &Arena{
		segSize: DefaultSegmentSize,
		lg:      zap.NewNop(),
		live:    make(map[*byte]span),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Allocate returns an owned buffer of exactly size bytes with unspecified
// contents. The buffer capacity may exceed size when the serving block
// carries slack; the whole block is reclaimed on Free either way.
// Complexity: O(F) over free spans, O(1) when fragmentation is low.
func (a *Arena) Allocate(size int) ([]byte, error) {
	if a.released {
		return nil, ErrReleased
	}
	if size < 0 {
		return nil, mem.ErrBadSize
	}
	if size == 0 {
		return nil, nil
	}
	need := padBlock(size)
	if need < size { // padding overflowed int
		a.nFailed++

		return nil, mem.ErrExhausted
	}

	s, ok := a.takeSpan(need)
	if !ok {
		if err := a.grow(need); err != nil {
			a.nFailed++
			a.lg.Warn("arena exhausted",
				zap.Int("need", need),
				zap.Int("capacity", a.capBytes),
				zap.Int("cap_limit", a.maxBytes))

			return nil, err
		}
		s, _ = a.takeSpan(need) // fresh segment always satisfies need
	}

	buf := a.segs[s.seg][s.off : s.off+size : s.off+s.size]
	a.live[&buf[0]] = s
	a.liveBytes += s.size
	if a.liveBytes > a.peakLive {
		a.peakLive = a.liveBytes
	}
	a.nAllocs++
	a.lg.Debug("alloc",
		zap.Int("size", size),
		zap.Int("block", s.size),
		zap.Int("segment", s.seg),
		zap.Int("offset", s.off))

	return buf, nil
}

// AllocateZeroed behaves like Allocate with the buffer cleared; recycled
// blocks carry previous contents.
func (a *Arena) AllocateZeroed(size int) ([]byte, error) {
	buf, err := a.Allocate(size)
	if err != nil || buf == nil {
		return nil, err
	}
	clear(buf)

	return buf, nil
}

// Free releases a buffer previously issued by this arena, returning its
// block to the free list and merging with adjacent free neighbors. The
// buffer must be handed back exactly as issued. Duplicate and foreign
// buffers are rejected with mem.ErrDoubleFree; arena state stays intact.
// Freeing nil or an empty buffer is a no-op.
// Complexity: O(F) for the ordered reinsert, O(1) lookup.
func (a *Arena) Free(buf []byte) error {
	if a.released {
		return ErrReleased
	}
	if len(buf) == 0 {
		return nil
	}
	s, ok := a.live[&buf[0]]
	if !ok {
		a.nDoubleFrees++
		a.lg.Error("double free detected", zap.Int("len", len(buf)))

		return mem.ErrDoubleFree
	}
	delete(a.live, &buf[0])
	a.liveBytes -= s.size
	a.insertFree(s)
	a.nFrees++
	a.lg.Debug("free",
		zap.Int("block", s.size),
		zap.Int("segment", s.seg),
		zap.Int("offset", s.off))

	return nil
}

// Reallocate resizes buf to size bytes, preserving contents up to the
// shorter length. A nil buf behaves like Allocate; size 0 releases buf
// and returns a nil buffer. Shrinks happen in place, shedding the tail
// when it can stand alone as a free span; growth allocates a new block,
// copies, and releases the old one. On failure the original buffer stays
// valid.
func (a *Arena) Reallocate(size int, buf []byte) ([]byte, error) {
	if a.released {
		return nil, ErrReleased
	}
	if size < 0 {
		return nil, mem.ErrBadSize
	}
	if len(buf) == 0 {
		return a.Allocate(size)
	}
	if size == 0 {
		if err := a.Free(buf); err != nil {
			return nil, err
		}

		return nil, nil
	}
	s, ok := a.live[&buf[0]]
	if !ok {
		a.nDoubleFrees++
		a.lg.Error("reallocate of unowned buffer", zap.Int("len", len(buf)))

		return nil, mem.ErrDoubleFree
	}

	need := padBlock(size)
	switch {
	case need == s.size:
		// Same block, adjusted length.
	case need < s.size:
		// Shrink in place; shed the tail when it can stand alone.
		if rest := s.size - need; rest >= minSplitSize {
			tail := span{seg: s.seg, off: s.off + need, size: rest}
			s = span{seg: s.seg, off: s.off, size: need}
			a.live[&buf[0]] = s
			a.liveBytes -= rest
			a.insertFree(tail)
			a.nSplits++
			a.lg.Debug("shrink", zap.Int("block", s.size), zap.Int("shed", rest))
		}
	default:
		// Grow: fresh block, copy, release the old one.
		fresh, err := a.Allocate(size)
		if err != nil {
			return nil, err
		}
		copy(fresh, buf)
		if err := a.Free(buf); err != nil {
			return nil, err
		}

		return fresh, nil
	}

	return a.segs[s.seg][s.off : s.off+size : s.off+s.size], nil
}

// Calloc allocates a zero-filled buffer for n elements of size bytes
// each, guarding the product against overflow. Zero elements or
// zero-size elements yield a nil buffer.
func (a *Arena) Calloc(n, size int) ([]byte, error) {
	if a.released {
		return nil, ErrReleased
	}
	if n < 0 || size < 0 {
		return nil, mem.ErrBadSize
	}
	if n == 0 || size == 0 {
		return nil, nil
	}
	if n > math.MaxInt/size {
		a.nFailed++

		return nil, ErrCallocOverflow
	}

	return a.AllocateZeroed(n * size)
}

// UsableSize reports the padded block size backing buf, which may exceed
// the requested length. Buffers this arena does not own report 0.
// Complexity: O(1).
func (a *Arena) UsableSize(buf []byte) int {
	if a.released || len(buf) == 0 {
		return 0
	}
	if s, ok := a.live[&buf[0]]; ok {
		return s.size
	}

	return 0
}

// Release drops every segment and all bookkeeping in one step. The arena
// is terminal afterwards: every operation returns ErrReleased, and
// buffers issued earlier must not be touched again. Release is
// idempotent.
func (a *Arena) Release() {
	if a.released {
		return
	}
	a.lg.Debug("release",
		zap.Int("live_blocks", len(a.live)),
		zap.Int("capacity", a.capBytes))
	a.segs, a.free, a.live = nil, nil, nil
	a.capBytes, a.liveBytes = 0, 0
	a.released = true
}

// Stats returns a point-in-time snapshot of arena accounting.
// Complexity: O(F) over free spans.
func (a *Arena) Stats() Stats {
	st := Stats{
		Segments:      len(a.segs),
		CapacityBytes: a.capBytes,
		LiveBytes:     a.liveBytes,
		LiveBlocks:    len(a.live),
		FreeSpans:     len(a.free),
		PeakLiveBytes: a.peakLive,
		Allocs:        a.nAllocs,
		Frees:         a.nFrees,
		Splits:        a.nSplits,
		Merges:        a.nMerges,
		Grows:         a.nGrows,
		FailedAllocs:  a.nFailed,
		DoubleFrees:   a.nDoubleFrees,
	}
	for _, s := range a.free {
		st.FreeBytes += s.size
	}

	return st
}

// grow acquires one more segment sized to cover need, honoring the
// capacity cap when one is set. The fresh segment lands on the free list
// whole, so the allocation that triggered growth is served by the next
// first-fit pass.
func (a *Arena) grow(need int) error {
	segBytes := a.segSize
	if need > segBytes {
		segBytes = pageAlign(need)
	}
	if a.maxBytes > 0 && a.capBytes+segBytes > a.maxBytes {
		// A full growth step does not fit; try the tight fit before
		// giving up.
		segBytes = pageAlign(need)
		if a.capBytes+segBytes > a.maxBytes {
			return mem.ErrExhausted
		}
	}
	if segBytes < need { // page rounding overflowed int
		return mem.ErrExhausted
	}

	a.segs = append(a.segs, make([]byte, segBytes))
	a.capBytes += segBytes
	a.insertFree(span{seg: len(a.segs) - 1, off: 0, size: segBytes})
	a.nGrows++
	a.lg.Debug("grow",
		zap.Int("segment_bytes", segBytes),
		zap.Int("segments", len(a.segs)),
		zap.Int("capacity", a.capBytes))

	return nil
}
