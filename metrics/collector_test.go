package metrics_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/heaplab/arena"
	"github.com/katalvlaran/heaplab/metrics"
)

// TestCollector_Exposition drives the arena into a known state and
// compares the full exposition text.
func TestCollector_Exposition(t *testing.T) {
	a := arena.New(arena.WithSegmentSize(4096))
	defer a.Release()

	buf, err := a.Allocate(64)
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Free(buf)) }()

	c := metrics.NewArenaCollector(a)

	expected := `
# HELP heaplab_arena_allocs_total Successful allocations.
# TYPE heaplab_arena_allocs_total counter
heaplab_arena_allocs_total 1
# HELP heaplab_arena_capacity_bytes Total bytes across all backing segments.
# TYPE heaplab_arena_capacity_bytes gauge
heaplab_arena_capacity_bytes 4096
# HELP heaplab_arena_double_frees_total Duplicate or foreign releases rejected.
# TYPE heaplab_arena_double_frees_total counter
heaplab_arena_double_frees_total 0
# HELP heaplab_arena_failed_allocs_total Requests refused for capacity reasons.
# TYPE heaplab_arena_failed_allocs_total counter
heaplab_arena_failed_allocs_total 0
# HELP heaplab_arena_free_bytes Bytes sitting on the free list.
# TYPE heaplab_arena_free_bytes gauge
heaplab_arena_free_bytes 4032
# HELP heaplab_arena_free_spans Free-list span count.
# TYPE heaplab_arena_free_spans gauge
heaplab_arena_free_spans 1
# HELP heaplab_arena_frees_total Successful releases.
# TYPE heaplab_arena_frees_total counter
heaplab_arena_frees_total 0
# HELP heaplab_arena_grows_total Segments acquired from the runtime.
# TYPE heaplab_arena_grows_total counter
heaplab_arena_grows_total 1
# HELP heaplab_arena_live_blocks Live block count.
# TYPE heaplab_arena_live_blocks gauge
heaplab_arena_live_blocks 1
# HELP heaplab_arena_live_bytes Bytes inside live blocks, padding included.
# TYPE heaplab_arena_live_bytes gauge
heaplab_arena_live_bytes 64
# HELP heaplab_arena_merges_total Adjacent free spans coalesced.
# TYPE heaplab_arena_merges_total counter
heaplab_arena_merges_total 0
# HELP heaplab_arena_peak_live_bytes High-water mark of live bytes.
# TYPE heaplab_arena_peak_live_bytes gauge
heaplab_arena_peak_live_bytes 64
# HELP heaplab_arena_segments Backing segments currently held.
# TYPE heaplab_arena_segments gauge
heaplab_arena_segments 1
# HELP heaplab_arena_splits_total Blocks split to serve a smaller request.
# TYPE heaplab_arena_splits_total counter
heaplab_arena_splits_total 1
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected)))
}

// TestCollector_Registers verifies the collector satisfies a pedantic
// registry (unique descriptors, consistent help strings).
func TestCollector_Registers(t *testing.T) {
	a := arena.New()
	defer a.Release()

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(metrics.NewArenaCollector(a)))

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 14)
}

// TestCollector_NilArenaPanics pins the constructor contract.
func TestCollector_NilArenaPanics(t *testing.T) {
	require.Panics(t, func() { metrics.NewArenaCollector(nil) })
}
