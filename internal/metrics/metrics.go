// Package metrics exposes Prometheus metrics for speech synthesis calls.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "eardo"

// OutcomeSuccess labels a synthesis call that produced audio.
const OutcomeSuccess = "success"

// Recorder owns a registry with the synthesis metrics. A nil *Recorder is
// valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	generateTotal    *prometheus.CounterVec
	generateDuration *prometheus.HistogramVec
	inFlight         prometheus.Gauge
}

// NewRecorder creates a Recorder with its own registry, including Go runtime
// and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		generateTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "speech",
				Name:      "generate_total",
				Help:      "Total number of speech generation calls by outcome",
			},
			[]string{"outcome"}, // success or error kind
		),
		generateDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "speech",
				Name:      "generate_duration_seconds",
				Help:      "Duration of speech generation calls in seconds",
				Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"outcome"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "speech",
				Name:      "generate_in_flight",
				Help:      "Number of speech generation calls currently running",
			},
		),
	}

	r.registry.MustRegister(
		r.generateTotal,
		r.generateDuration,
		r.inFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// Start marks a call as running. The returned func records the outcome and
// duration; it must be called exactly once.
func (r *Recorder) Start() func(outcome string) {
	if r == nil {
		return func(string) {}
	}

	started := time.Now()
	r.inFlight.Inc()

	return func(outcome string) {
		r.inFlight.Dec()
		r.generateTotal.WithLabelValues(outcome).Inc()
		r.generateDuration.WithLabelValues(outcome).Observe(time.Since(started).Seconds())
	}
}

// Registry returns the underlying Prometheus registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler returns an http.Handler serving the registry in exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
