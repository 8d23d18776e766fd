package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	AssignsTotal    prometheus.Counter
	BucketsCreated  prometheus.Counter
	ResolvesByLayer *prometheus.CounterVec
	ResolveDuration prometheus.Histogram
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		AssignsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propsearch_assigns_total",
			Help: "Total number of property-to-bucket assignments",
		}),
		BucketsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propsearch_buckets_created_total",
			Help: "Total number of geo-buckets created",
		}),
		ResolvesByLayer: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "propsearch_resolves_total",
			Help: "Total number of resolve calls by terminal matching layer",
		}, []string{"layer"}),
		ResolveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "propsearch_resolve_duration_seconds",
			Help:    "Latency of resolve calls across all matching layers",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveResolve records one completed resolve: the deepest layer that ran and
// the total duration in seconds.
func (m *Metrics) ObserveResolve(terminalLayer string, seconds float64) {
	m.ResolvesByLayer.WithLabelValues(terminalLayer).Inc()
	m.ResolveDuration.Observe(seconds)
}

// IncrementAssigns increments the assignment counter by 1.
func (m *Metrics) IncrementAssigns() {
	m.AssignsTotal.Inc()
}

// IncrementBucketsCreated increments the bucket creation counter by 1.
func (m *Metrics) IncrementBucketsCreated() {
	m.BucketsCreated.Inc()
}
