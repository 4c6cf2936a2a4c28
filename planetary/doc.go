// Package planetary defines the boundary to the math-engine collaborator:
// the opaque library that computes body positions, house cusps and heliacal
// events from the Julian-Day/Ephemeris-Time inputs produced by the astrotime
// core.
//
// The core only depends on the Engine interface and on the FileLoader hook
// through which an engine requests named ephemeris coefficient files. When a
// loader reports a file absent the engine must degrade gracefully: it
// returns a well-defined error (errors.ErrEphemerisUnavailable), never
// panics, and never treats absence as a loader fault.
//
// Basic is a reference engine for wiring and tests. It gates computation on
// coefficient-file availability exactly like a full library would, then
// serves low-precision analytic positions (mean orbital elements and
// truncated series). Callers needing arcsecond accuracy wire a full
// ephemeris library behind the same interface.
package planetary
