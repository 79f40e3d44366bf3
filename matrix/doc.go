// SPDX-License-Identifier: MIT

// Package matrix provides a rectangular grid of independently owned,
// individually nullable heap cells.
//
// The matrix package provides:
//
//   - Matrix, an opaque handle owning rows × cols cell slots; dimensions
//     travel inside the handle, so teardown needs no external bookkeeping.
//   - Per-cell buffer ownership: Allocate fills a slot with a fresh zeroed
//     buffer, Clear releases one, Destroy releases everything exactly once.
//   - An explicit empty state: a slot without content is nil, never a
//     stand-in sentinel value.
//   - Pluggable allocation through mem.Allocator (WithAllocator), so cell
//     buffers can come from the runtime, an arena, or a leak-checking
//     harness.
//
// Construction is fallible (New) for callers that handle exhaustion, and
// aborting (MustNew) for the classic allocate-or-die policy. Zero-size
// dimensions are valid and produce an empty structure; negative
// dimensions and cell-count overflow are rejected.
//
// A Matrix belongs to a single owner; it is not safe for concurrent use.
//
// See the examples in this package for usage patterns.
package matrix
