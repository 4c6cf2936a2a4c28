// Package errors provides standardized error handling for the astrotime core.
// It defines the error taxonomy of the time/resource layer (invalid dates,
// disposed containers, unavailable ephemeris resources), error classification
// for callers that need to distinguish recoverable from fatal conditions, and
// helper functions for consistent error wrapping across packages.
//
// Resource absence is deliberately not part of this taxonomy: a data provider
// that cannot resolve a named ephemeris file signals absence through its
// return values, never through an error. Only the planetary collaborator may
// decide that a missing file is fatal for its particular computation.
package errors
