// Package cache provides a thread-safe LRU cache for resolved ephemeris file
// payloads, with optional time-to-live expiry and built-in statistics
// (observability is not optional).
//
// The cache stores byte slices keyed by logical file name. It backs the
// caching data-provider wrapper; nothing in the core requires it.
package cache
