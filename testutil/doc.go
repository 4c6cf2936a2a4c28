// Package testutil provides shared helpers for astrotime tests: a
// testcontainers-backed NATS server for object-store integration tests and
// fixture data for ephemeris files.
//
// Integration helpers are guarded twice: tests using them carry the
// integration build tag, and NewNATSServer skips unless INTEGRATION_TESTS is
// set, so plain `go test ./...` never needs Docker.
package testutil
