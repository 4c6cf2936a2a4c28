// Package dateengine composes the calendar layer and the Delta-T model into
// the single date façade of the astrotime core: civil dates in, Julian Days
// and Ephemeris Times out, and back again.
//
// An Engine carries no mutable state beyond the configuration snapshot it was
// constructed with, so it is safe for unsynchronized concurrent readers.
package dateengine
