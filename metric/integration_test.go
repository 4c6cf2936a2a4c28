package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProvider simulates an ephemeris file provider that registers its own
// metrics alongside the core ones.
type mockProvider struct {
	name    string
	metrics struct {
		bytesServed prometheus.Counter
		openFiles   prometheus.Gauge
	}
}

func newMockProvider(name string) *mockProvider {
	return &mockProvider{name: name}
}

// RegisterMetrics registers provider-specific metrics.
func (m *mockProvider) RegisterMetrics(registrar MetricsRegistrar) error {
	m.metrics.bytesServed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "astrotime",
		Subsystem: "mock_provider",
		Name:      "bytes_served_total",
		Help:      "Total bytes served from coefficient files",
	})

	if err := registrar.RegisterCounter(m.name, "bytes_served_total", m.metrics.bytesServed); err != nil {
		return err
	}

	m.metrics.openFiles = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "astrotime",
		Subsystem: "mock_provider",
		Name:      "open_files",
		Help:      "Number of currently open coefficient files",
	})

	return registrar.RegisterGauge(m.name, "open_files", m.metrics.openFiles)
}

// serve simulates file activity and updates metrics.
func (m *mockProvider) serve(bytes, open int) {
	m.metrics.bytesServed.Add(float64(bytes))
	m.metrics.openFiles.Set(float64(open))
}

func TestMetricsIntegration_ProviderRegistration(t *testing.T) {
	registry := NewMetricsRegistry()

	provider := newMockProvider("dir-provider")
	require.NoError(t, provider.RegisterMetrics(registry))

	provider.serve(4096, 2)

	names := gatheredNames(t, registry)
	assert.True(t, names["astrotime_mock_provider_bytes_served_total"],
		"provider bytes_served metric should be registered")
	assert.True(t, names["astrotime_mock_provider_open_files"],
		"provider open_files metric should be registered")
}

func TestMetricsIntegration_NoDuplicateRegistration(t *testing.T) {
	registry := NewMetricsRegistry()

	first := newMockProvider("duplicate-provider")
	second := newMockProvider("duplicate-provider")

	require.NoError(t, first.RegisterMetrics(registry))

	err := second.RegisterMetrics(registry)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestMetricsIntegration_CoreAndProviderMetricsSeparate(t *testing.T) {
	registry := NewMetricsRegistry()
	core := registry.CoreMetrics()

	provider := newMockProvider("separation-test")
	require.NoError(t, provider.RegisterMetrics(registry))

	core.RecordContextState("separation-test", 1)
	core.RecordFileRequest("semo_18.se1", "hit")
	provider.serve(128, 1)

	names := gatheredNames(t, registry)
	assert.True(t, names["astrotime_context_state"],
		"core context state metric should be present")
	assert.True(t, names["astrotime_files_requests_total"],
		"core file request metric should be present")
	assert.True(t, names["astrotime_mock_provider_bytes_served_total"],
		"provider-specific metric should be present")
}

func TestMetricsIntegration_Unregistration(t *testing.T) {
	registry := NewMetricsRegistry()

	provider := newMockProvider("unregister-test")
	require.NoError(t, provider.RegisterMetrics(registry))
	provider.serve(1, 1)

	require.True(t, gatheredNames(t, registry)["astrotime_mock_provider_bytes_served_total"])

	assert.True(t, registry.Unregister("unregister-test", "bytes_served_total"))

	names := gatheredNames(t, registry)
	assert.False(t, names["astrotime_mock_provider_bytes_served_total"],
		"metric should be absent after unregistration")
	assert.True(t, names["astrotime_mock_provider_open_files"],
		"other provider metrics should remain")
}
