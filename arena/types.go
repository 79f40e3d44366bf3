// Package arena: core types, options, and sentinel errors for the arena
// allocator of github.com/katalvlaran/heaplab.

package arena

import (
	"errors"

	"go.uber.org/zap"
)

// Sentinel errors for arena operations. Size and ownership violations
// reuse the shared sentinels from package mem (mem.ErrBadSize,
// mem.ErrDoubleFree, mem.ErrExhausted).
var (
	// ErrReleased indicates use of an arena after Release.
	ErrReleased = errors.New("arena: arena already released")

	// ErrCallocOverflow indicates the element count times element size
	// does not fit in int.
	ErrCallocOverflow = errors.New("arena: calloc size overflows")
)

// Block geometry and growth defaults.
const (
	// DefaultSegmentSize is the growth step when none is configured
	// (128 KiB).
	DefaultSegmentSize = 128 << 10

	// blockAlign is the allocation granularity; every block size is
	// padded up to a multiple of it.
	blockAlign = 16

	// minSplitSize is the smallest remainder worth keeping as a free
	// span of its own. Smaller leftovers stay attached to the block that
	// produced them and surface through UsableSize.
	minSplitSize = 32

	// pageSize rounds segment growth the way the backing OS would.
	pageSize = 4096
)

// Stats is a point-in-time snapshot of arena accounting. Structural
// fields describe the current state; cumulative fields only ever grow.
type Stats struct {
	Segments      int // backing segments currently held
	CapacityBytes int // total bytes across all segments
	LiveBytes     int // bytes inside live blocks, padding included
	LiveBlocks    int // live block count
	FreeBytes     int // bytes sitting on the free list
	FreeSpans     int // free-list span count
	PeakLiveBytes int // high-water mark of LiveBytes

	Allocs       uint64 // successful allocations
	Frees        uint64 // successful releases
	Splits       uint64 // blocks split to serve a smaller request
	Merges       uint64 // adjacent free spans coalesced
	Grows        uint64 // segments acquired from the runtime
	FailedAllocs uint64 // requests refused for capacity reasons
	DoubleFrees  uint64 // duplicate or foreign releases rejected
}

// Option configures an Arena at construction time.
type Option func(*Arena)

// WithSegmentSize sets the bytes acquired per growth step. The value is
// rounded up to a whole page. Panics if n is not positive.
func WithSegmentSize(n int) Option {
	if n <= 0 {
		panic("arena: WithSegmentSize: size must be positive")
	}

	return func(a *Arena) { a.segSize = pageAlign(n) }
}

// WithMaxBytes caps the total capacity the arena may acquire. Requests
// beyond the cap fail with mem.ErrExhausted instead of growing. Panics
// if n is not positive.
func WithMaxBytes(n int) Option {
	if n <= 0 {
		panic("arena: WithMaxBytes: cap must be positive")
	}

	return func(a *Arena) { a.maxBytes = n }
}

// WithLogger attaches a zap logger; the arena traces every allocator
// event at Debug level and reports double frees at Error level. Panics
// if lg is nil (use zap.NewNop() to silence explicitly).
func WithLogger(lg *zap.Logger) Option {
	if lg == nil {
		panic("arena: WithLogger: nil logger")
	}

	return func(a *Arena) { a.lg = lg }
}
