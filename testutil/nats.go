package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// NATSServer is a throwaway NATS server running in a container.
type NATSServer struct {
	container testcontainers.Container
	Conn      *nats.Conn
	URL       string
	cleanup   func()
}

// natsConfig holds configuration for the test server.
type natsConfig struct {
	jetstream    bool
	natsVersion  string
	timeout      time.Duration
	startTimeout time.Duration
}

// NATSOption configures the test server.
type NATSOption func(*natsConfig)

// WithJetStream enables JetStream, required for ObjectStore tests.
func WithJetStream() NATSOption {
	return func(cfg *natsConfig) {
		cfg.jetstream = true
	}
}

// WithNATSVersion pins a specific NATS server image version.
func WithNATSVersion(version string) NATSOption {
	return func(cfg *natsConfig) {
		cfg.natsVersion = version
	}
}

// WithConnectTimeout sets the client connection timeout.
func WithConnectTimeout(timeout time.Duration) NATSOption {
	return func(cfg *natsConfig) {
		cfg.timeout = timeout
	}
}

// WithStartTimeout sets the container startup timeout.
func WithStartTimeout(timeout time.Duration) NATSOption {
	return func(cfg *natsConfig) {
		cfg.startTimeout = timeout
	}
}

// NewNATSServer starts a NATS container and connects to it. The test skips
// unless INTEGRATION_TESTS is set. Cleanup is registered on t.
func NewNATSServer(t testing.TB, opts ...NATSOption) *NATSServer {
	t.Helper()

	if os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration test. Set INTEGRATION_TESTS=1 to run.")
	}

	srv, err := StartNATSServer(opts...)
	if err != nil {
		t.Fatalf("Failed to start NATS server: %v", err)
	}
	t.Cleanup(srv.Terminate)
	return srv
}

// StartNATSServer starts a NATS container without a testing.TB, for use in
// TestMain. Callers must invoke Terminate themselves.
func StartNATSServer(opts ...NATSOption) (*NATSServer, error) {
	cfg := &natsConfig{
		natsVersion:  "2.11.7-alpine",
		timeout:      5 * time.Second,
		startTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx := context.Background()

	args := []string{
		"--port", "4222",
		"--http_port", "8222",
	}
	if cfg.jetstream {
		args = append(args, "--js")
	}

	req := testcontainers.ContainerRequest{
		Image:        "nats:" + cfg.natsVersion,
		ExposedPorts: []string{"4222/tcp", "8222/tcp"},
		Cmd:          args,
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("4222/tcp"),
			wait.ForHTTP("/").WithPort("8222/tcp").WithStartupTimeout(cfg.startTimeout),
		),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start NATS container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "4222")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	url := fmt.Sprintf("nats://%s:%s", host, port.Port())

	conn, err := nats.Connect(url,
		nats.Timeout(cfg.timeout),
		nats.MaxReconnects(0), // No reconnects in tests
	)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSServer{
		container: container,
		Conn:      conn,
		URL:       url,
		cleanup: func() {
			conn.Close()
			_ = container.Terminate(context.Background()) // Best effort test cleanup
		},
	}, nil
}

// Terminate stops the client and the container. Safe to call twice.
func (s *NATSServer) Terminate() {
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
}
