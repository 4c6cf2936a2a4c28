package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the core metrics of the computation core (not
// collaborator-specific).
type Metrics struct {
	// Context lifecycle
	ContextState    *prometheus.GaugeVec
	ContextsCreated prometheus.Counter

	// Time and calendar conversions
	ConversionsTotal *prometheus.CounterVec
	DeltaTLookups    *prometheus.CounterVec

	// Ephemeris file provisioning
	FileRequests        *prometheus.CounterVec
	FileRequestDuration *prometheus.HistogramVec

	// Error tracking
	ErrorsTotal *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance with all core metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		ContextState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "astrotime",
				Subsystem: "context",
				Name:      "state",
				Help:      "Context lifecycle state (0=uninitialized, 1=initialized, 2=disposed)",
			},
			[]string{"context"},
		),

		ContextsCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "astrotime",
				Subsystem: "context",
				Name:      "created_total",
				Help:      "Total number of contexts created",
			},
		),

		ConversionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "astrotime",
				Subsystem: "conversions",
				Name:      "total",
				Help:      "Total number of time and calendar conversions",
			},
			[]string{"operation", "status"},
		),

		DeltaTLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "astrotime",
				Subsystem: "deltat",
				Name:      "lookups_total",
				Help:      "Total number of Delta-T evaluations",
			},
			[]string{"model"},
		),

		FileRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "astrotime",
				Subsystem: "files",
				Name:      "requests_total",
				Help:      "Total number of ephemeris file requests",
			},
			[]string{"file", "outcome"},
		),

		FileRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "astrotime",
				Subsystem: "files",
				Name:      "request_duration_seconds",
				Help:      "Ephemeris file request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"source"},
		),

		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "astrotime",
				Subsystem: "errors",
				Name:      "total",
				Help:      "Total number of errors",
			},
			[]string{"component", "class"},
		),
	}
}

// RecordContextState updates the lifecycle state gauge of a context.
func (c *Metrics) RecordContextState(contextName string, state int) {
	c.ContextState.WithLabelValues(contextName).Set(float64(state))
}

// RecordContextCreated increments the context creation counter.
func (c *Metrics) RecordContextCreated() {
	c.ContextsCreated.Inc()
}

// RecordConversion increments the conversion counter for an operation.
// Status is "ok" or "error".
func (c *Metrics) RecordConversion(operation, status string) {
	c.ConversionsTotal.WithLabelValues(operation, status).Inc()
}

// RecordDeltaTLookup increments the Delta-T evaluation counter for a model.
func (c *Metrics) RecordDeltaTLookup(model string) {
	c.DeltaTLookups.WithLabelValues(model).Inc()
}

// RecordFileRequest increments the file request counter. Outcome is "hit",
// "absent" or "error".
func (c *Metrics) RecordFileRequest(file, outcome string) {
	c.FileRequests.WithLabelValues(file, outcome).Inc()
}

// ObserveFileRequestDuration records how long a provider took to answer.
func (c *Metrics) ObserveFileRequestDuration(source string, duration time.Duration) {
	c.FileRequestDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordError increments the error counter for a component and error class.
func (c *Metrics) RecordError(component, class string) {
	c.ErrorsTotal.WithLabelValues(component, class).Inc()
}
