package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the gateway's Prometheus collectors on a private registry.
type Metrics struct {
	reg        *prometheus.Registry
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	roster     prometheus.Gauge
}

func NewMetrics() *Metrics {
	r := prometheus.NewRegistry()
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tab_operations_total",
		Help: "Tab session operations by outcome.",
	}, []string{"op", "outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tab_operation_duration_seconds",
		Help:    "Duration of tab session operations, re-read included.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	roster := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "roster_tables",
		Help: "Tables in the last normalized roster.",
	})

	r.MustRegister(operations, latency, roster)
	return &Metrics{reg: r, operations: operations, latency: latency, roster: roster}
}

func (m *Metrics) ObserveOperation(op, outcome string, elapsed time.Duration) {
	m.operations.WithLabelValues(op, outcome).Inc()
	m.latency.WithLabelValues(op).Observe(elapsed.Seconds())
}

func (m *Metrics) SetRosterSize(n int) { m.roster.Set(float64(n)) }

func (m *Metrics) Handler() http.Handler { return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}) }
