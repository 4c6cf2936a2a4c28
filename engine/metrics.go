package engine

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/astrotime/metric"
)

// contextMetrics holds Prometheus metrics for Context lifecycle operations.
type contextMetrics struct {
	// Lifecycle
	inits        *prometheus.CounterVec // By status (success/failure)
	initDuration prometheus.Histogram
	closes       prometheus.Counter

	// File provisioning
	fileRequests        *prometheus.CounterVec // By outcome (hit/absent/error)
	fileRequestDuration prometheus.Histogram

	// State
	resolverCount prometheus.Gauge
}

// newContextMetrics creates and registers Context metrics with the provided
// registry.
func newContextMetrics(registry *metric.MetricsRegistry) (*contextMetrics, error) {
	if registry == nil {
		return nil, nil // Metrics disabled
	}

	m := &contextMetrics{
		inits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "astrotime",
			Subsystem: "engine",
			Name:      "inits_total",
			Help:      "Total number of context initialization attempts",
		}, []string{"status"}), // status: success, failure

		initDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "astrotime",
			Subsystem: "engine",
			Name:      "init_duration_seconds",
			Help:      "Context initialization duration in seconds",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		}),

		closes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "astrotime",
			Subsystem: "engine",
			Name:      "closes_total",
			Help:      "Total number of context disposals",
		}),

		fileRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "astrotime",
			Subsystem: "engine",
			Name:      "file_requests_total",
			Help:      "Total number of file requests answered by the context",
		}, []string{"outcome"}), // outcome: hit, absent, error

		fileRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "astrotime",
			Subsystem: "engine",
			Name:      "file_request_duration_seconds",
			Help:      "File request duration in seconds",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 1.0},
		}),

		resolverCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "astrotime",
			Subsystem: "engine",
			Name:      "resolvers",
			Help:      "Current number of registered file resolvers",
		}),
	}

	if err := registry.RegisterCounterVec("engine", "inits", m.inits); err != nil {
		return nil, err
	}
	if err := registry.RegisterHistogram("engine", "init_duration", m.initDuration); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter("engine", "closes", m.closes); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec("engine", "file_requests", m.fileRequests); err != nil {
		return nil, err
	}
	if err := registry.RegisterHistogram("engine", "file_request_duration", m.fileRequestDuration); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge("engine", "resolvers", m.resolverCount); err != nil {
		return nil, err
	}

	return m, nil
}

// recordInit records an initialization attempt.
func (m *contextMetrics) recordInit(success bool, duration float64) {
	if m == nil {
		return
	}

	status := "success"
	if !success {
		status = "failure"
	}

	m.inits.WithLabelValues(status).Inc()
	m.initDuration.Observe(duration)
}

// recordClose records a disposal.
func (m *contextMetrics) recordClose() {
	if m == nil {
		return
	}
	m.closes.Inc()
	m.resolverCount.Set(0)
}

// recordFileRequest records a file request and its duration.
func (m *contextMetrics) recordFileRequest(outcome string, duration float64) {
	if m == nil {
		return
	}
	m.fileRequests.WithLabelValues(outcome).Inc()
	m.fileRequestDuration.Observe(duration)
}

// setResolverCount updates the resolver gauge.
func (m *contextMetrics) setResolverCount(count int) {
	if m == nil {
		return
	}
	m.resolverCount.Set(float64(count))
}
