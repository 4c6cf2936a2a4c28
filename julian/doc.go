// Package julian implements the calendar layer of the astrotime core: the
// bidirectional mapping between civil calendar dates and the continuous
// Julian Day number, plus the value objects (JulianDay, DateUT,
// EphemerisTime) the rest of the system exchanges.
//
// Both the Julian and the Gregorian calendar conventions are supported. The
// calendar system is carried as a tag on every value derived from a civil
// date; the tag records how the value was derived and never changes its
// numeric meaning. Two Julian Days compare as plain real numbers regardless
// of tag.
//
// Conversions are pure functions of their inputs. Leap seconds are ignored:
// ephemeris time scales are uniform and do not observe them. Fractional
// day parts decompose to hour/minute/second with round-to-nearest-second,
// so round-trips hold to one-second granularity.
package julian
