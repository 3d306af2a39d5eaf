package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the API client layer.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	AuthRefreshes   *prometheus.CounterVec
	RowsSkipped     *prometheus.CounterVec
}

// New creates the client metrics and registers them with reg.
// A nil reg falls back to the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tenderai_api_requests_total",
			Help: "Total number of API requests by method and outcome code",
		}, []string{"method", "outcome"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tenderai_api_request_duration_seconds",
			Help:    "Latency of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		AuthRefreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tenderai_api_auth_refreshes_total",
			Help: "Total number of credential refresh attempts by result",
		}, []string{"result"}),
		RowsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tenderai_mapper_rows_skipped_total",
			Help: "Total number of wire rows dropped by row-skipping mappers",
		}, []string{"entity"}),
	}
}

// ObserveRequest records one finished request. outcome is "ok" or the error code.
func (m *Metrics) ObserveRequest(method, outcome string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(method, outcome).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(durationSeconds)
}

// IncrementAuthRefresh counts a refresh attempt: "refreshed", "empty" or "error".
func (m *Metrics) IncrementAuthRefresh(result string) {
	if m == nil {
		return
	}
	m.AuthRefreshes.WithLabelValues(result).Inc()
}

// IncrementRowsSkipped counts a dropped row for entity.
func (m *Metrics) IncrementRowsSkipped(entity string) {
	if m == nil {
		return
	}
	m.RowsSkipped.WithLabelValues(entity).Inc()
}
