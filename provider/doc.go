// Package provider defines the data-provider capability of the astrotime
// core: resolving a logical ephemeris resource name to a byte stream, or
// signaling that no such resource is available.
//
// Absence is a soft signal, not an error: Resolve returns ok=false with a
// nil error, and the caller (ultimately the planetary collaborator) decides
// whether a missing file is fatal for its computation. Errors are reserved
// for genuine failures such as I/O faults. A resolution is attempted exactly
// once per request; no provider retries.
//
// The core never assumes a filesystem. Empty provides nothing, Dir serves a
// directory, Static serves an in-memory map (embedded resources), Chain
// composes providers first-responder-wins, and Cached adds a byte cache in
// front of any of them. The objectstore subpackage resolves from a NATS
// JetStream ObjectStore bucket.
//
// Thread safety is the obligation of the concrete implementation; the
// implementations in this package are safe for concurrent use.
package provider
