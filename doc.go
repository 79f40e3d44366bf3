// Package heaplab is your in-memory playground for explicit heap
// management — owned buffers, arena allocation and leak-proof teardown,
// all in plain Go.
//
// 🚀 What is heaplab?
//
//	A small, focused toolkit that brings together:
//		• Allocator abstraction: one fallible interface for every buffer source
//		• Arena: first-fit free-list allocation with split, merge & realloc
//		• Owned matrix: a rows×cols grid of individually nullable heap cells
//		• Leak harness: per-buffer accounting with double-free detection
//		• Observability: Prometheus metrics & optional zap event tracing
//
// ✨ Why choose heaplab?
//
//   - Explicit ownership – every buffer has exactly one owner and one release
//   - Deterministic – no hidden caches; stats account for every byte
//   - Safe by default – double frees are rejected and reported, never executed
//   - Composable – stack the harness on the arena, point the matrix at either
//
// Under the hood, everything is organized under four subpackages:
//
//	mem/     — Allocator interface, runtime- and pool-backed allocators, leak harness
//	arena/   — segment-based free-list allocator with realloc/calloc semantics
//	matrix/  — owned-cell matrix: construct, fill, clear, destroy exactly once
//	metrics/ — Prometheus collector over arena statistics
//
// Quick ASCII example:
//
//	    matrix 2×2          arena segment
//	    ┌────┬────┐          ┌──────┬──────┬─────────┐
//	    │ 16B│ ∅  │   ──▶    │ live │ live │  free   │
//	    ├────┼────┤          └──────┴──────┴─────────┘
//	    │ ∅  │ 8B │          Destroy() returns every block
//	    └────┴────┘
//
// The cmd/memdemo command exercises all of it from the terminal: a bulk
// stress run, an allocate/calloc smoke test, and a matrix lifecycle under
// the leak harness.
//
//	go get github.com/katalvlaran/heaplab
package heaplab
