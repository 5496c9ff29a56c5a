// Package metrics holds the Prometheus collectors for conversions.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "csv2json"

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics contains all conversion metrics and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	ConversionsTotal   *prometheus.CounterVec
	ConversionDuration *prometheus.HistogramVec
	InputBytes         prometheus.Histogram
	RecordsTotal       prometheus.Counter
	ActiveConversions  prometheus.Gauge
	RateLimited        prometheus.Counter
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		ConversionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "conversions",
				Name:      "total",
				Help:      "Conversions by source and result; failures carry the error kind",
			},
			[]string{"source", "result", "kind"},
		),

		ConversionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "conversions",
				Name:      "duration_seconds",
				Help:      "Time spent parsing and rendering, excluding queueing",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"source"},
		),

		InputBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "conversions",
				Name:      "input_bytes",
				Help:      "Size of CSV inputs",
				Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
			},
		),

		RecordsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "conversions",
				Name:      "records_total",
				Help:      "Output records produced",
			},
		),

		ActiveConversions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "conversions",
				Name:      "active",
				Help:      "Conversions currently holding a slot",
			},
		),

		RateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "rate_limited_total",
				Help:      "Requests rejected by the per-IP rate limiter",
			},
		),
	}

	m.registry.MustRegister(
		m.ConversionsTotal,
		m.ConversionDuration,
		m.InputBytes,
		m.RecordsTotal,
		m.ActiveConversions,
		m.RateLimited,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveSuccess records a completed conversion.
func (m *Metrics) ObserveSuccess(source string, inputBytes, records int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ConversionsTotal.WithLabelValues(source, ResultSuccess, "").Inc()
	m.ConversionDuration.WithLabelValues(source).Observe(elapsed.Seconds())
	m.InputBytes.Observe(float64(inputBytes))
	m.RecordsTotal.Add(float64(records))
}

// ObserveFailure records a rejected conversion.
func (m *Metrics) ObserveFailure(source, kind string, inputBytes int) {
	if m == nil {
		return
	}
	m.ConversionsTotal.WithLabelValues(source, ResultFailure, kind).Inc()
	m.InputBytes.Observe(float64(inputBytes))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
