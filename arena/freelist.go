package arena

import "sort"

// span describes a contiguous block inside one backing segment. Spans
// never cross segment boundaries, and their sizes are always multiples
// of blockAlign.
type span struct {
	seg  int // segment index
	off  int // byte offset within the segment
	size int // span length in bytes
}

// before reports whether s precedes t in address order (segment, offset).
func (s span) before(t span) bool {
	return s.seg < t.seg || (s.seg == t.seg && s.off < t.off)
}

// adjacent reports whether t begins exactly where s ends within the same
// segment.
func adjacent(s, t span) bool {
	return s.seg == t.seg && s.off+s.size == t.off
}

// insertFree returns s to the free list, keeping address order and
// coalescing with physically adjacent neighbors. At most one merge to the
// left and one to the right can apply per insert.
func (a *Arena) insertFree(s span) {
	i := sort.Search(len(a.free), func(k int) bool { return s.before(a.free[k]) })

	lo, hi := i, i // a.free[lo:hi] will be replaced by the merged span
	if lo > 0 && adjacent(a.free[lo-1], s) {
		s.off = a.free[lo-1].off
		s.size += a.free[lo-1].size
		lo--
		a.nMerges++
	}
	if hi < len(a.free) && adjacent(s, a.free[hi]) {
		s.size += a.free[hi].size
		hi++
		a.nMerges++
	}

	if lo == hi { // no merge: open a slot at lo
		a.free = append(a.free, span{})
		copy(a.free[lo+1:], a.free[lo:])
		a.free[lo] = s

		return
	}
	a.free[lo] = s
	a.free = append(a.free[:lo+1], a.free[hi:]...)
}

// takeSpan removes and returns a span able to serve need bytes, first-fit
// in address order. An exact-size span is taken whole; a larger span is
// split when the remainder can stand alone, otherwise the whole span is
// handed out and the slack stays with the block.
func (a *Arena) takeSpan(need int) (span, bool) {
	for i, s := range a.free {
		switch {
		case s.size == need:
			a.free = append(a.free[:i], a.free[i+1:]...)

			return s, true
		case s.size > need && s.size-need >= minSplitSize:
			a.free[i] = span{seg: s.seg, off: s.off + need, size: s.size - need}
			a.nSplits++

			return span{seg: s.seg, off: s.off, size: need}, true
		case s.size > need:
			a.free = append(a.free[:i], a.free[i+1:]...)

			return s, true
		}
	}

	return span{}, false
}

// padBlock rounds size up to the allocation granularity.
func padBlock(size int) int {
	return (size + blockAlign - 1) &^ (blockAlign - 1)
}

// pageAlign rounds n up to a whole page.
func pageAlign(n int) int {
	return (n + pageSize - 1) &^ (pageSize - 1)
}
