// Package metrics exposes prometheus collectors for quad store activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the store collectors. A nil *Metrics records nothing.
type Metrics struct {
	triplesInserted prometheus.Counter
	insertFailures  *prometheus.CounterVec
	queries         *prometheus.CounterVec
	queryFailures   *prometheus.CounterVec
	queryResults    *prometheus.HistogramVec
}

// New registers the collectors with reg. Pass prometheus.DefaultRegisterer to
// expose them on the default /metrics handler.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		triplesInserted: factory.NewCounter(prometheus.CounterOpts{
			Name: "rdfstore_triples_inserted_total",
			Help: "Total number of triples inserted.",
		}),
		insertFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rdfstore_insert_failures_total",
			Help: "Total number of failed inserts by error code.",
		}, []string{"code"}),
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rdfstore_queries_total",
			Help: "Total number of answered queries by pattern.",
		}, []string{"pattern"}),
		queryFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rdfstore_query_failures_total",
			Help: "Total number of failed queries by pattern and error code.",
		}, []string{"pattern", "code"}),
		queryResults: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rdfstore_query_results",
			Help:    "Number of triples returned per query.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"pattern"}),
	}
}

func (m *Metrics) TripleInserted() {
	if m == nil {
		return
	}
	m.triplesInserted.Inc()
}

func (m *Metrics) InsertFailed(code string) {
	if m == nil {
		return
	}
	m.insertFailures.WithLabelValues(code).Inc()
}

func (m *Metrics) QueryServed(pattern string, results int) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(pattern).Inc()
	m.queryResults.WithLabelValues(pattern).Observe(float64(results))
}

func (m *Metrics) QueryFailed(pattern, code string) {
	if m == nil {
		return
	}
	m.queryFailures.WithLabelValues(pattern, code).Inc()
}
