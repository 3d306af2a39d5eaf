package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest("GET", "ok", 0.02)
	m.ObserveRequest("GET", "ok", 0.03)
	m.ObserveRequest("POST", "UNAUTHORIZED", 0.01)
	m.IncrementAuthRefresh("refreshed")
	m.IncrementRowsSkipped("team_member")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("POST", "UNAUTHORIZED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthRefreshes.WithLabelValues("refreshed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RowsSkipped.WithLabelValues("team_member")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestDuration))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", "ok", 1)
		m.IncrementAuthRefresh("error")
		m.IncrementRowsSkipped("tender")
	})
}
