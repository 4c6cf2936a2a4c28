// Package objectstore provides an ephemeris file provider backed by a NATS
// JetStream ObjectStore bucket.
//
// The provider maps logical file names straight to object names in one
// bucket, so a fleet of services can share a central coefficient file set
// without shipping files in images or volumes. An object missing from the
// bucket is reported absent, matching the provider contract: absence is a
// soft signal, not a failure.
//
//	store, err := objectstore.New(ctx, conn, "EPHEMERIS", logger)
//	if err != nil { ... }
//	cached, _ := provider.NewCached(store, 16)
//
// Wrap the store in provider.Cached for read-heavy workloads; coefficient
// files are immutable, so cache entries never go stale.
package objectstore
