// Package metric provides Prometheus-based metrics for the astrotime core.
//
// A MetricsRegistry owns a private Prometheus registry preloaded with the
// core metrics every context records: calendar conversions, Delta-T lookups,
// ephemeris file requests and context lifecycle state. Collaborators register
// their own metrics through the MetricsRegistrar interface, which keeps a
// per-owner namespace and rejects duplicates before they reach Prometheus.
//
// A small HTTP server exposes the registry in Prometheus exposition format:
//
//	registry := metric.NewMetricsRegistry()
//	server := metric.NewServer(9090, "/metrics", registry)
//	go server.Start()
//	defer server.Stop()
//
//	registry.CoreMetrics().RecordConversion("julian_day", "ok")
//
// All core metrics live under the "astrotime" namespace, for example
// astrotime_conversions_total{operation="julian_day",status="ok"} and
// astrotime_files_requests_total{file="seas_18.se1",outcome="hit"}.
package metric
