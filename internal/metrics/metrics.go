// Package metrics holds the Prometheus collectors for the upload path.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upload outcomes.
const (
	OutcomeStored   = "stored"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Metrics groups the relay's collectors under one registry.
type Metrics struct {
	registry      *prometheus.Registry
	uploads       *prometheus.CounterVec
	uploadBytes   prometheus.Histogram
	storeDuration *prometheus.HistogramVec
}

// New creates and registers the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "photorelay",
			Name:      "uploads_total",
			Help:      "Upload requests by outcome.",
		}, []string{"outcome"}),
		uploadBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "photorelay",
			Name:      "upload_bytes",
			Help:      "Size of accepted photo payloads.",
			Buckets:   prometheus.ExponentialBuckets(16<<10, 2, 10),
		}),
		storeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "photorelay",
			Name:      "store_duration_seconds",
			Help:      "Latency of backend writes.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(m.uploads, m.uploadBytes, m.storeDuration)
	return m
}

// Rejected records a request turned away before the backend call.
func (m *Metrics) Rejected() {
	m.uploads.WithLabelValues(OutcomeRejected).Inc()
}

// Stored records a successful backend write of size bytes.
func (m *Metrics) Stored(size int, elapsed time.Duration) {
	m.uploads.WithLabelValues(OutcomeStored).Inc()
	m.uploadBytes.Observe(float64(size))
	m.storeDuration.WithLabelValues(OutcomeStored).Observe(elapsed.Seconds())
}

// Failed records a backend write that returned an error.
func (m *Metrics) Failed(elapsed time.Duration) {
	m.uploads.WithLabelValues(OutcomeFailed).Inc()
	m.storeDuration.WithLabelValues(OutcomeFailed).Observe(elapsed.Seconds())
}

// Uploads exposes the outcome counter for tests.
func (m *Metrics) Uploads() *prometheus.CounterVec {
	return m.uploads
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
