// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the
// matrix package. Operations return these sentinels and tests check them
// via errors.Is. Panics are reserved for programmer errors in option
// constructors and the Must* entry points.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to
// allow easy grepping across logs. Allocator failures are NOT redeclared
// here; they propagate wrapped from package mem, so callers match them
// with errors.Is against mem.ErrExhausted and friends.

var (
	// ErrNegativeDims is returned when a requested dimension is negative.
	// Zero is a valid dimension and produces an empty matrix.
	ErrNegativeDims = errors.New("matrix: dimensions must be non-negative")

	// ErrTooManyCells is returned when rows*cols does not fit in int.
	ErrTooManyCells = errors.New("matrix: cell count overflows")

	// ErrOutOfRange indicates that a row or column index is outside the
	// matrix bounds. Public accessors MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrBadCellSize indicates a non-positive cell buffer size; an empty
	// slot is expressed by Clear, not by a zero-size allocation.
	ErrBadCellSize = errors.New("matrix: cell size must be positive")

	// ErrDestroyed indicates use of a matrix after Destroy. Destroying
	// twice is a contract violation; it is reported, never re-executed.
	ErrDestroyed = errors.New("matrix: matrix already destroyed")
)
