package panel

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	// ParsesTotal counts parse calls by outcome kind.
	ParsesTotal *prometheus.CounterVec

	// SchemaViolations counts hard rejections (unknown panel/field,
	// column out of range, malformed directive payload).
	SchemaViolations prometheus.Counter

	// InternalFailures counts contained panics during parsing. The
	// caller sees a no-block outcome; this counter is the only trace.
	InternalFailures prometheus.Counter

	// Cache metrics.
	CacheHits      prometheus.Counter
	CacheEvictions prometheus.Counter
}

// NewMetrics creates and registers the collectors on the given registerer.
// Tests pass a private prometheus.NewRegistry() to avoid collisions.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ParsesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "infopanel",
				Name:      "parses_total",
				Help:      "Total parse calls by outcome kind",
			},
			[]string{"outcome"},
		),
		SchemaViolations: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "infopanel",
				Name:      "schema_violations_total",
				Help:      "Blocks rejected for violating the schema snapshot",
			},
		),
		InternalFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "infopanel",
				Name:      "internal_failures_total",
				Help:      "Panics contained during parsing",
			},
		),
		CacheHits: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "infopanel",
				Name:      "cache_hits_total",
				Help:      "Parse calls answered from the outcome cache",
			},
		),
		CacheEvictions: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "infopanel",
				Name:      "cache_evictions_total",
				Help:      "Outcome cache entries evicted at capacity",
			},
		),
	}
}
