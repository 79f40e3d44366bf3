// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"

	"github.com/katalvlaran/heaplab/mem"
)

// Matrix owns a rows × cols grid of cell slots. Each slot is either empty
// (nil) or holds a buffer owned exclusively by the matrix. Ownership is
// strictly tree-shaped: the matrix owns the slot storage, the slots own
// their buffers, nothing is shared.
//
// The zero value is not usable; construct with New or MustNew.
type Matrix struct {
	rows, cols int
	alloc      mem.Allocator
	cells      [][]byte // row-major slots, index row*cols+col; nil = empty
	destroyed  bool
}

// New constructs a Matrix with the given dimensions and every slot empty.
// Zero rows or columns are valid and produce an empty structure. Negative
// dimensions return ErrNegativeDims; a cell count that does not fit in
// int returns ErrTooManyCells.
// Complexity: O(rows*cols) memory for the slot storage, no cell buffers.
func New(rows, cols int, opts ...Option) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrNegativeDims
	}
	if rows > 0 && cols > 0 && rows > math.MaxInt/cols {
		return nil, ErrTooManyCells
	}
	m := &Matrix{
		rows:  rows,
		cols:  cols,
		alloc: mem.Default,
		cells: make([][]byte, rows*cols),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// MustNew is the allocate-or-die construction policy: it panics where New
// would return an error. With the default runtime allocator a request the
// process cannot satisfy already terminates it, so MustNew callers treat
// construction as infallible.
func MustNew(rows, cols int, opts ...Option) *Matrix {
	m, err := New(rows, cols, opts...)
	if err != nil {
		panic(err)
	}

	return m
}

// Rows reports the row count fixed at construction.
// Complexity: O(1).
func (m *Matrix) Rows() int { return m.rows }

// Cols reports the column count fixed at construction.
// Complexity: O(1).
func (m *Matrix) Cols() int { return m.cols }

// At returns the buffer owned by slot (row, col), or nil when the slot is
// empty. The buffer remains owned by the matrix; callers may read and
// write it but must not release it.
// Complexity: O(1).
func (m *Matrix) At(row, col int) ([]byte, error) {
	if err := m.check(row, col); err != nil {
		return nil, err
	}

	return m.cells[m.idx(row, col)], nil
}

// Occupied reports whether slot (row, col) holds a buffer.
// Complexity: O(1).
func (m *Matrix) Occupied(row, col int) (bool, error) {
	if err := m.check(row, col); err != nil {
		return false, err
	}

	return m.cells[m.idx(row, col)] != nil, nil
}

// Allocate fills slot (row, col) with a fresh zeroed buffer of size bytes
// drawn from the configured allocator, releasing any previous occupant.
// The new buffer is acquired before the old one is released, so a failed
// allocation leaves the slot untouched. size must be positive; an empty
// slot is expressed with Clear.
// Complexity: O(size).
func (m *Matrix) Allocate(row, col, size int) ([]byte, error) {
	if err := m.check(row, col); err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, ErrBadCellSize
	}
	buf, err := m.alloc.AllocateZeroed(size)
	if err != nil {
		return nil, fmt.Errorf("matrix: allocate cell (%d,%d): %w", row, col, err)
	}
	i := m.idx(row, col)
	if old := m.cells[i]; old != nil {
		if err = m.alloc.Free(old); err != nil {
			return nil, fmt.Errorf("matrix: replace cell (%d,%d): %w", row, col, err)
		}
	}
	m.cells[i] = buf

	return buf, nil
}

// MustAllocate is the aborting twin of Allocate for allocate-or-die
// callers: it panics where Allocate would return an error.
func (m *Matrix) MustAllocate(row, col, size int) []byte {
	buf, err := m.Allocate(row, col, size)
	if err != nil {
		panic(err)
	}

	return buf
}

// Clear releases the buffer in slot (row, col) and marks the slot empty.
// Clearing an empty slot is a no-op success.
// Complexity: O(1) plus the allocator release.
func (m *Matrix) Clear(row, col int) error {
	if err := m.check(row, col); err != nil {
		return err
	}
	i := m.idx(row, col)
	if m.cells[i] == nil {
		return nil
	}
	if err := m.alloc.Free(m.cells[i]); err != nil {
		return fmt.Errorf("matrix: clear cell (%d,%d): %w", row, col, err)
	}
	m.cells[i] = nil

	return nil
}

// Destroy releases every occupied cell and the slot storage, exactly
// once. Empty slots are skipped; releasing nothing is a no-op. After
// Destroy every operation, including a second Destroy, returns
// ErrDestroyed. The matrix is marked destroyed even when a cell release
// fails, so teardown never runs twice; the first release error is
// reported after all slots have been attempted.
// Complexity: O(rows*cols).
func (m *Matrix) Destroy() error {
	if m.destroyed {
		return ErrDestroyed
	}
	var firstErr error
	for i, buf := range m.cells {
		if buf == nil {
			continue
		}
		if err := m.alloc.Free(buf); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("matrix: destroy cell (%d,%d): %w", i/m.cols, i%m.cols, err)
		}
		m.cells[i] = nil
	}
	m.cells = nil
	m.destroyed = true

	return firstErr
}

// idx maps (row, col) to the row-major slot index.
// Complexity: O(1).
func (m *Matrix) idx(row, col int) int {
	return row*m.cols + col
}

// check validates liveness and bounds for a slot access.
func (m *Matrix) check(row, col int) error {
	if m.destroyed {
		return ErrDestroyed
	}
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return ErrOutOfRange
	}

	return nil
}
