// Package metrics exposes arena accounting as Prometheus metrics.
//
// The Collector reads one arena's Stats snapshot on every scrape and
// emits const metrics under the heaplab_arena_* namespace; it keeps no
// state of its own, so registering it costs nothing between scrapes.
// Scrapes must not race the arena's owner: collect from the goroutine
// that owns the arena, or from a quiesced one.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/heaplab/arena"
)

const (
	namespace = "heaplab"
	subsystem = "arena"
)

// metricDef binds one exported series to the Stats field backing it.
type metricDef struct {
	desc *prometheus.Desc
	typ  prometheus.ValueType
	get  func(arena.Stats) float64
}

// Collector implements prometheus.Collector over a single Arena.
type Collector struct {
	arena *arena.Arena
	defs  []metricDef
}

var _ prometheus.Collector = (*Collector)(nil)

// NewArenaCollector builds a Collector for a. Panics if a is nil.
func NewArenaCollector(a *arena.Arena) *Collector {
	if a == nil {
		panic("metrics: NewArenaCollector: nil arena")
	}

	gauge := func(name, help string, get func(arena.Stats) float64) metricDef {
		return metricDef{
			desc: prometheus.NewDesc(
				prometheus.BuildFQName(namespace, subsystem, name), help, nil, nil),
			typ: prometheus.GaugeValue,
			get: get,
		}
	}
	counter := func(name, help string, get func(arena.Stats) float64) metricDef {
		return metricDef{
			desc: prometheus.NewDesc(
				prometheus.BuildFQName(namespace, subsystem, name), help, nil, nil),
			typ: prometheus.CounterValue,
			get: get,
		}
	}

	return &Collector{
		arena: a,
		defs: []metricDef{
			gauge("capacity_bytes", "Total bytes across all backing segments.",
				func(s arena.Stats) float64 { return float64(s.CapacityBytes) }),
			gauge("live_bytes", "Bytes inside live blocks, padding included.",
				func(s arena.Stats) float64 { return float64(s.LiveBytes) }),
			gauge("free_bytes", "Bytes sitting on the free list.",
				func(s arena.Stats) float64 { return float64(s.FreeBytes) }),
			gauge("live_blocks", "Live block count.",
				func(s arena.Stats) float64 { return float64(s.LiveBlocks) }),
			gauge("free_spans", "Free-list span count.",
				func(s arena.Stats) float64 { return float64(s.FreeSpans) }),
			gauge("segments", "Backing segments currently held.",
				func(s arena.Stats) float64 { return float64(s.Segments) }),
			gauge("peak_live_bytes", "High-water mark of live bytes.",
				func(s arena.Stats) float64 { return float64(s.PeakLiveBytes) }),
			counter("allocs_total", "Successful allocations.",
				func(s arena.Stats) float64 { return float64(s.Allocs) }),
			counter("frees_total", "Successful releases.",
				func(s arena.Stats) float64 { return float64(s.Frees) }),
			counter("splits_total", "Blocks split to serve a smaller request.",
				func(s arena.Stats) float64 { return float64(s.Splits) }),
			counter("merges_total", "Adjacent free spans coalesced.",
				func(s arena.Stats) float64 { return float64(s.Merges) }),
			counter("grows_total", "Segments acquired from the runtime.",
				func(s arena.Stats) float64 { return float64(s.Grows) }),
			counter("failed_allocs_total", "Requests refused for capacity reasons.",
				func(s arena.Stats) float64 { return float64(s.FailedAllocs) }),
			counter("double_frees_total", "Duplicate or foreign releases rejected.",
				func(s arena.Stats) float64 { return float64(s.DoubleFrees) }),
		},
	}
}

// Describe sends every metric descriptor once.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range c.defs {
		ch <- d.desc
	}
}

// Collect snapshots the arena and emits one const metric per series.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.arena.Stats()
	for _, d := range c.defs {
		ch <- prometheus.MustNewConstMetric(d.desc, d.typ, d.get(st))
	}
}
