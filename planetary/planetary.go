package planetary

import (
	"context"
	"io"

	"github.com/c360/astrotime/julian"
)

// Body identifies a celestial body.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
)

// String returns the body name
func (b Body) String() string {
	switch b {
	case Sun:
		return "sun"
	case Moon:
		return "moon"
	case Mercury:
		return "mercury"
	case Venus:
		return "venus"
	case Mars:
		return "mars"
	case Jupiter:
		return "jupiter"
	case Saturn:
		return "saturn"
	case Uranus:
		return "uranus"
	case Neptune:
		return "neptune"
	case Pluto:
		return "pluto"
	default:
		return "unknown"
	}
}

// CoefficientFile returns the logical name of the ephemeris coefficient file
// a full engine needs for this body, following the conventional naming of
// the legacy file set (18 denotes the file covering the modern epoch range).
func (b Body) CoefficientFile() string {
	switch b {
	case Moon:
		return "semo_18.se1"
	case Pluto:
		return "seas_18.se1"
	default:
		return "sepl_18.se1"
	}
}

// Position is an ecliptic position of date: longitude and latitude in
// degrees, distance in AU, with daily rates of change.
type Position struct {
	Longitude float64
	Latitude  float64
	Distance  float64

	LongitudeSpeed float64 // degrees per day
	LatitudeSpeed  float64 // degrees per day
	DistanceSpeed  float64 // AU per day
}

// GeoLocation is an observer location: geographic latitude and longitude in
// degrees (east positive), altitude in meters.
type GeoLocation struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
}

// HouseSystem selects the house-cusp method, by its conventional letter.
type HouseSystem byte

const (
	// EqualHouses divides the ecliptic into twelve 30-degree houses from
	// the ascendant
	EqualHouses HouseSystem = 'E'
	// WholeSignHouses assigns each house to a whole zodiac sign starting at
	// the ascendant's sign
	WholeSignHouses HouseSystem = 'W'
)

// Houses is a house-cusp computation result. Cusps[1] through Cusps[12] are
// the cusp longitudes in degrees; Cusps[0] is unused, matching the
// conventional 1-based cusp numbering.
type Houses struct {
	Cusps     [13]float64
	Ascendant float64
	MC        float64
}

// HeliacalEvent selects a visibility event kind.
type HeliacalEvent int

const (
	// MorningFirst is the first visibility of a body in the morning sky
	// (heliacal rising)
	MorningFirst HeliacalEvent = iota
	// EveningLast is the last visibility in the evening sky (heliacal
	// setting)
	EveningLast
)

// FileLoader resolves a named ephemeris coefficient file to a byte stream.
// ok=false with nil error means the file is unavailable; the engine must
// degrade gracefully and must not escalate absence into a loader fault.
type FileLoader func(ctx context.Context, name string) (io.ReadCloser, bool, error)

// Engine is the opaque math collaborator consuming Julian-Day and
// Ephemeris-Time inputs produced by the astrotime core.
type Engine interface {
	// Position computes the ecliptic position of a body at an instant.
	Position(ctx context.Context, et julian.EphemerisTime, body Body) (Position, error)

	// Houses computes house cusps for an observer location at an instant.
	Houses(ctx context.Context, et julian.EphemerisTime, geo GeoLocation, system HouseSystem) (Houses, error)

	// NextHeliacalEvent searches forward from an instant for the next
	// visibility event of a body at an observer location.
	NextHeliacalEvent(ctx context.Context, et julian.EphemerisTime, geo GeoLocation, body Body, event HeliacalEvent) (julian.JulianDay, error)

	// SetFileLoader registers the hook the engine uses to request named
	// coefficient files. Passing nil removes the hook; every subsequent
	// request then sees the file as unavailable.
	SetFileLoader(loader FileLoader)

	// Close releases engine resources. In-flight file requests fail closed
	// after Close returns.
	Close() error
}
