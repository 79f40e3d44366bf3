// Package mem: sentinel error set shared by all allocator implementations.
// Every message is prefixed with "mem: " for consistency and to allow easy
// grepping across logs. Callers match these via errors.Is; wrapping with
// fmt.Errorf("ctx: %w", ErrX) is reserved for outer boundaries where extra
// context is essential.

package mem

import "errors"

var (
	// ErrExhausted indicates the allocator cannot satisfy the request
	// within its configured capacity. Allocators without a capacity cap
	// never return it.
	ErrExhausted = errors.New("mem: allocator exhausted")

	// ErrBadSize indicates a negative buffer size was requested.
	ErrBadSize = errors.New("mem: negative buffer size")

	// ErrDoubleFree indicates a buffer was released twice, or was never
	// issued by the allocator it was handed back to.
	ErrDoubleFree = errors.New("mem: buffer already released or not owned")

	// ErrLeak indicates live buffers remained when a leak check ran.
	ErrLeak = errors.New("mem: unreleased buffers remain")
)
