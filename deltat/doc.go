// Package deltat estimates the Delta-T correction (ET - UT) that bridges the
// civil Universal Time scale and the uniform Ephemeris/Dynamical time scale
// used by orbital mechanics.
//
// Two interchangeable models are provided, selected by configuration:
//
//   - Standard: a table fit of observed values from 1620 to the present on a
//     two-year grid with linear interpolation, the long-term parabola of the
//     historical record before the table, and trend extrapolation after it.
//   - EspenakMeeus: the Espenak-Meeus (2006) piecewise polynomial set,
//     fitted from -500 to +2150 with parabolic extrapolation outside.
//
// Both models are pure functions of the input Julian Day. Values outside the
// tabulated/fitted range are extrapolations: accuracy degrades there, which
// is a documented limitation rather than an error. Small discontinuities at
// segment boundaries, at the precision of the source tables, are likewise
// accepted.
package deltat
