package vamana

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// graphMetrics holds the Prometheus collectors for a single Graph
// instance. Unlike the promauto-registered globals a server package would
// use, these are built with the plain constructors and never registered
// to prometheus.DefaultRegisterer: a library has no business reaching for
// a process-wide registry, since an application embedding more than one
// Graph would collide on metric names. Callers that want these exposed
// register Collectors() against their own registry.
type graphMetrics struct {
	nodeCount         prometheus.Gauge
	searchLatency     prometheus.Histogram
	medoidRecomputes  prometheus.Counter
	entryPointRepairs prometheus.Counter
}

func newGraphMetrics() *graphMetrics {
	return &graphMetrics{
		nodeCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vamana_graph_nodes",
			Help: "Number of live (non-tombstoned) nodes in the graph.",
		}),
		searchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vamana_search_duration_seconds",
			Help:    "Latency of Search calls.",
			Buckets: prometheus.DefBuckets,
		}),
		medoidRecomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vamana_medoid_recomputes_total",
			Help: "Number of times the streaming medoid tracker re-centered the entry point.",
		}),
		entryPointRepairs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vamana_entry_point_repairs_total",
			Help: "Number of times Remove had to pick a new entry point because the old one was deleted.",
		}),
	}
}

// Collectors returns every metric this graph maintains, so an embedding
// application can register them against its own prometheus.Registerer.
func (g *Graph) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		g.metrics.nodeCount,
		g.metrics.searchLatency,
		g.metrics.medoidRecomputes,
		g.metrics.entryPointRepairs,
	}
}

type latencyTimer struct {
	hist  prometheus.Histogram
	start time.Time
}

func (m *graphMetrics) histTimer(h prometheus.Histogram) latencyTimer {
	return latencyTimer{hist: h, start: time.Now()}
}

func (t latencyTimer) observe() {
	t.hist.Observe(time.Since(t.start).Seconds())
}

// searchTimer begins timing a Search call against this graph's searchLatency
// histogram.
func (m *graphMetrics) searchTimer() latencyTimer {
	return m.histTimer(m.searchLatency)
}
