package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.TripleInserted()
	m.TripleInserted()
	m.InsertFailed("failure to insert triple")
	m.QueryServed("s", 3)
	m.QueryServed("s", 0)
	m.QueryFailed("spo", "triple not found")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.triplesInserted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.insertFailures.WithLabelValues("failure to insert triple")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.queries.WithLabelValues("s")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.queryFailures.WithLabelValues("spo", "triple not found")))

	n, err := testutil.GatherAndCount(reg, "rdfstore_query_results")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.TripleInserted()
		m.InsertFailed("x")
		m.QueryServed("o", 1)
		m.QueryFailed("o", "x")
	})
}

func TestNew_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
