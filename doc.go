// Package astrotime provides the time and resource core for astronomical
// computation: calendar date / Julian Day / Ephemeris Time conversion with a
// pluggable Delta-T model, plus the lazily-initialized engine container that
// wires the heavier subsystems (planetary engine, ephemeris data provider)
// together for one disposable session.
//
// # Architecture
//
// The core is a stack of small packages, leaves first:
//
//	┌─────────────────────────────────────┐
//	│          engine.Context             │  Lazy exactly-once init,
//	│  (date engine, provider, planetary) │  lifecycle, disposal
//	└─────────────────────────────────────┘
//	           ↓ composes
//	┌─────────────────────────────────────┐
//	│        dateengine.Engine            │  Civil date ↔ JD ↔ ET
//	│      (julian + deltat + config)     │  conversions
//	└─────────────────────────────────────┘
//	           ↓ resolves files via
//	┌─────────────────────────────────────┐
//	│        provider.Provider            │  Named resource → byte
//	│  (empty, dir, chain, objectstore)   │  stream, or absent
//	└─────────────────────────────────────┘
//
// The planetary engine is a collaborator behind the planetary.Engine
// interface: astrotime establishes when (which instant, in which time scale)
// and how ephemeris data becomes available, and hands the position math and
// file parsing to the collaborator.
//
// # Time scales
//
// Civil dates are expressed in Universal Time (UT). The uniform scale used by
// orbital mechanics is Ephemeris/Dynamical Time (ET), offset from UT by the
// empirical Delta-T correction. Conversions are pure functions: the same
// input always produces the same output, and no leap-second table is
// consulted (ephemeris time scales are uniform).
//
// # Quick start
//
//	c, err := engine.NewContext("main", config.Default(),
//	    engine.WithProvider(provider.NewDir("/var/lib/ephe", logger)),
//	)
//	if err != nil { ... }
//	defer c.Close()
//
//	jd, err := c.JulianDay(julian.DateUT{
//	    Year: 2000, Month: 1, Day: 1, Hour: 12, System: julian.Gregorian,
//	})
//	et, err := c.EphemerisTime(jd)
//
// Collaborators are created on first use and torn down together by Close.
// A closed Context stays closed: further access fails with errors.ErrDisposed.
package astrotime
