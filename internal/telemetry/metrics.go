// Package telemetry exports Prometheus metrics for the sentimento service.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sentimento"

// Metrics holds the service metrics on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Classifications  *prometheus.CounterVec
	DatasetUploads   *prometheus.CounterVec
	DatasetRows      prometheus.Histogram
	TrainingDuration prometheus.Histogram
	HeldOutAccuracy  prometheus.Gauge
	RequestDuration  *prometheus.HistogramVec
}

// NewMetrics registers every metric on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Classifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Single-text classifications by strategy and label.",
		}, []string{"strategy", "label"}),
		DatasetUploads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_uploads_total",
			Help:      "Dataset uploads by outcome: trained, cached, untrained or rejected.",
		}, []string{"outcome"}),
		DatasetRows: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Rows per accepted dataset.",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 6),
		}),
		TrainingDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "training_duration_seconds",
			Help:      "Time spent fitting a model.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		HeldOutAccuracy: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "held_out_accuracy",
			Help:      "Held-out accuracy of the current model.",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// ObserveTraining records a finished training run.
func (m *Metrics) ObserveTraining(d time.Duration, accuracy float64) {
	m.TrainingDuration.Observe(d.Seconds())
	m.HeldOutAccuracy.Set(accuracy)
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
