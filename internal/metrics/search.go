package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and index Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "supplysearch",
			Name:      "search_requests_total",
			Help:      "Total number of search requests by serving mode",
		},
		[]string{"mode", "status"}, // mode: "index" / "fallback"
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "supplysearch",
			Name:      "search_duration_seconds",
			Help:      "Search execution duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"mode"},
	)

	IndexWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "supplysearch",
			Name:      "index_writes_total",
			Help:      "Total index writes and removals",
		},
		[]string{"result"}, // "ok" / "error"
	)

	RebuildDocumentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "supplysearch",
			Name:      "rebuild_documents_total",
			Help:      "Documents processed during index rebuilds",
		},
		[]string{"entity_type", "result"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(IndexWritesTotal)
	prometheus.MustRegister(RebuildDocumentsTotal)
	searchMetricsRegistered = true
}
