// SPDX-License-Identifier: MIT

package matrix

import "github.com/katalvlaran/heaplab/mem"

// Option configures a Matrix at construction time.
type Option func(*Matrix)

// WithAllocator selects the allocator cell buffers are drawn from and
// returned to. The default is mem.Default. Panics if a is nil.
func WithAllocator(a mem.Allocator) Option {
	if a == nil {
		panic("matrix: WithAllocator: nil allocator")
	}

	return func(m *Matrix) { m.alloc = a }
}
