package arena_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/heaplab/arena"
	"github.com/katalvlaran/heaplab/mem"
)

// ExampleArena shows the basic allocate/free round trip and the padded
// block size surfacing through UsableSize.
func ExampleArena() {
	a := arena.New()
	defer a.Release()

	buf, _ := a.Allocate(100)
	fmt.Println("len:", len(buf), "usable:", a.UsableSize(buf))

	_ = a.Free(buf)
	st := a.Stats()
	fmt.Println("live blocks:", st.LiveBlocks)
	fmt.Println("drained:", st.FreeBytes == st.CapacityBytes)
	// Output:
	// len: 100 usable: 112
	// live blocks: 0
	// drained: true
}

// ExampleArena_Reallocate walks the realloc ladder: calloc, grow with
// content preserved, release via size zero.
func ExampleArena_Reallocate() {
	a := arena.New()
	defer a.Release()

	buf, _ := a.Calloc(4, 4)
	copy(buf, "heap")

	buf, _ = a.Reallocate(64, buf)
	fmt.Println(string(buf[:4]), len(buf))

	buf, _ = a.Reallocate(0, buf)
	fmt.Println(buf == nil)
	// Output:
	// heap 64
	// true
}

// ExampleArena_capped demonstrates a bounded arena reporting exhaustion
// instead of growing.
func ExampleArena_capped() {
	a := arena.New(arena.WithSegmentSize(4096), arena.WithMaxBytes(4096))
	defer a.Release()

	first, _ := a.Allocate(4096)
	_, err := a.Allocate(1)
	fmt.Println(errors.Is(err, mem.ErrExhausted))

	_ = a.Free(first)
	// Output:
	// true
}
