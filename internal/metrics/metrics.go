// Package metrics exposes Prometheus collectors for rounds and content.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the game collectors on their own registry.
type Metrics struct {
	reg *prometheus.Registry

	RoundsStarted   *prometheus.CounterVec
	RoundsCompleted *prometheus.CounterVec
	RoundsCancelled *prometheus.CounterVec
	Points          *prometheus.HistogramVec
	ContentFailures *prometheus.CounterVec
	ActiveSessions  prometheus.Gauge
}

// New registers the collectors plus the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		RoundsStarted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "linguoquest_rounds_started_total",
			Help: "Rounds started, by mode.",
		}, []string{"mode"}),
		RoundsCompleted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "linguoquest_rounds_completed_total",
			Help: "Rounds completed, by mode and whether a penalty applied.",
		}, []string{"mode", "penalty"}),
		RoundsCancelled: f.NewCounterVec(prometheus.CounterOpts{
			Name: "linguoquest_rounds_cancelled_total",
			Help: "Rounds abandoned before completion, by mode.",
		}, []string{"mode"}),
		Points: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "linguoquest_round_points",
			Help:    "Points awarded per completed round.",
			Buckets: []float64{0, 20, 40, 60, 80, 100, 120},
		}, []string{"mode"}),
		ContentFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "linguoquest_content_failures_total",
			Help: "Rounds that entered the content error phase, by mode.",
		}, []string{"mode"}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "linguoquest_ws_sessions",
			Help: "Open websocket sessions.",
		}),
	}
}

// Registry returns the registry backing Handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// Handler serves the registry in the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
