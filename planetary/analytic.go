package planetary

import "math"

// Low-precision analytic position math for the reference engine: mean
// orbital elements propagated from J2000 for the planets, a truncated
// lunar series for the Moon. Good to a fraction of a degree in the modern
// era, degrading outside roughly 1800-2050.

const (
	deg2rad = math.Pi / 180.0
	rad2deg = 180.0 / math.Pi
	auPerKm = 1.0 / 149597870.7
)

// norm360 normalizes an angle in degrees to [0, 360).
func norm360(a float64) float64 {
	a = math.Mod(a, 360.0)
	if a < 0 {
		a += 360.0
	}
	return a
}

// normDiff normalizes an angle difference in degrees to [-180, 180).
func normDiff(a float64) float64 {
	a = norm360(a)
	if a >= 180.0 {
		a -= 360.0
	}
	return a
}

// elements holds mean orbital elements at J2000 and their per-century rates:
// semi-major axis (AU), eccentricity, inclination, mean longitude,
// longitude of perihelion, longitude of ascending node (degrees).
type elements struct {
	a, aDot       float64
	e, eDot       float64
	i, iDot       float64
	l, lDot       float64
	peri, periDot float64
	node, nodeDot float64
}

// Mean elements valid for the modern era, heliocentric ecliptic of J2000.
var planetElements = map[Body]elements{
	Mercury: {0.38709927, 0.00000037, 0.20563593, 0.00001906, 7.00497902, -0.00594749,
		252.25032350, 149472.67411175, 77.45779628, 0.16047689, 48.33076593, -0.12534081},
	Venus: {0.72333566, 0.00000390, 0.00677672, -0.00004107, 3.39467605, -0.00078890,
		181.97909950, 58517.81538729, 131.60246718, 0.00268329, 76.67984255, -0.27769418},
	Mars: {1.52371034, 0.00001847, 0.09339410, 0.00007882, 1.84969142, -0.00813131,
		-4.55343205, 19140.30268499, -23.94362959, 0.44441088, 49.55953891, -0.29257343},
	Jupiter: {5.20288700, -0.00011607, 0.04838624, -0.00013253, 1.30439695, -0.00183714,
		34.39644051, 3034.74612775, 14.72847983, 0.21252668, 100.47390909, 0.20469106},
	Saturn: {9.53667594, -0.00125060, 0.05386179, -0.00050991, 2.48599187, 0.00193609,
		49.95424423, 1222.49362201, 92.59887831, -0.41897216, 113.66242448, -0.28867794},
	Uranus: {19.18916464, -0.00196176, 0.04725744, -0.00004397, 0.77263783, -0.00242939,
		313.23810451, 428.48202785, 170.95427630, 0.40805281, 74.01692503, 0.04240589},
	Neptune: {30.06992276, 0.00026291, 0.00859048, 0.00005105, 1.77004347, 0.00035372,
		-55.12002969, 218.45945325, 44.96476227, -0.32241464, 131.78422574, -0.00508664},
	Pluto: {39.48211675, -0.00031596, 0.24882730, 0.00005170, 17.14001206, 0.00004818,
		238.92903833, 145.20780515, 224.06891629, -0.04062942, 110.30393684, -0.01183482},
}

// Earth-Moon barycenter elements, used to reduce heliocentric positions to
// geocentric ones and to place the Sun.
var earthElements = elements{1.00000261, 0.00000562, 0.01671123, -0.00004392, -0.00001531, -0.01294668,
	100.46457166, 35999.37244981, 102.93768193, 0.32327364, 0.0, 0.0}

// heliocentric returns ecliptic J2000 rectangular coordinates in AU for a
// body's mean elements at Julian centuries T from J2000 (ephemeris time).
func heliocentric(el elements, T float64) (x, y, z float64) {
	a := el.a + el.aDot*T
	e := el.e + el.eDot*T
	i := (el.i + el.iDot*T) * deg2rad
	l := el.l + el.lDot*T
	peri := el.peri + el.periDot*T
	node := el.node + el.nodeDot*T

	m := norm360(l-peri) * deg2rad
	omega := (peri - node) * deg2rad
	nodeRad := node * deg2rad

	// Kepler's equation, Newton iteration; converges in a few steps for
	// planetary eccentricities.
	ecc := m
	for iter := 0; iter < 10; iter++ {
		delta := (ecc - e*math.Sin(ecc) - m) / (1.0 - e*math.Cos(ecc))
		ecc -= delta
		if math.Abs(delta) < 1e-12 {
			break
		}
	}

	xp := a * (math.Cos(ecc) - e)
	yp := a * math.Sqrt(1.0-e*e) * math.Sin(ecc)

	cosO, sinO := math.Cos(nodeRad), math.Sin(nodeRad)
	cosI, sinI := math.Cos(i), math.Sin(i)
	cosW, sinW := math.Cos(omega), math.Sin(omega)

	x = (cosW*cosO-sinW*sinO*cosI)*xp + (-sinW*cosO-cosW*sinO*cosI)*yp
	y = (cosW*sinO+sinW*cosO*cosI)*xp + (-sinW*sinO+cosW*cosO*cosI)*yp
	z = (sinW*sinI)*xp + (cosW*sinI)*yp
	return x, y, z
}

// bodyEcliptic returns the geocentric ecliptic longitude/latitude (degrees)
// and distance (AU) of a body at a Julian Day on the ephemeris time scale.
func bodyEcliptic(jde float64, body Body) (lon, lat, dist float64) {
	T := (jde - 2451545.0) / 36525.0

	if body == Moon {
		return moonEcliptic(T)
	}

	ex, ey, ez := heliocentric(earthElements, T)

	var gx, gy, gz float64
	if body == Sun {
		gx, gy, gz = -ex, -ey, -ez
	} else {
		bx, by, bz := heliocentric(planetElements[body], T)
		gx, gy, gz = bx-ex, by-ey, bz-ez
	}

	dist = math.Sqrt(gx*gx + gy*gy + gz*gz)
	lon = norm360(math.Atan2(gy, gx) * rad2deg)
	lat = math.Atan2(gz, math.Sqrt(gx*gx+gy*gy)) * rad2deg
	return lon, lat, dist
}

// moonEcliptic evaluates the principal terms of the lunar theory. T is in
// Julian centuries from J2000 (ephemeris time).
func moonEcliptic(T float64) (lon, lat, dist float64) {
	lp := norm360(218.3164477 + 481267.88123421*T) // mean longitude
	d := norm360(297.8501921 + 445267.1114034*T)   // mean elongation
	m := norm360(357.5291092 + 35999.0502909*T)    // sun mean anomaly
	mp := norm360(134.9633964 + 477198.8675055*T)  // moon mean anomaly
	f := norm360(93.2720950 + 483202.0175233*T)    // argument of latitude

	sin := func(deg float64) float64 { return math.Sin(deg * deg2rad) }
	cos := func(deg float64) float64 { return math.Cos(deg * deg2rad) }

	lon = norm360(lp +
		6.288774*sin(mp) +
		1.274027*sin(2*d-mp) +
		0.658314*sin(2*d) +
		0.213618*sin(2*mp) -
		0.185116*sin(m) -
		0.114332*sin(2*f))

	lat = 5.128122*sin(f) +
		0.280602*sin(mp+f) +
		0.277693*sin(mp-f)

	distKm := 385000.56 - 20905.355*cos(mp) - 3699.111*cos(2*d-mp) - 2955.968*cos(2*d)
	dist = distKm * auPerKm
	return lon, lat, dist
}

// obliquity returns the mean obliquity of the ecliptic in degrees.
func obliquity(T float64) float64 {
	return 23.43929111 - 0.01300417*T - 1.64e-7*T*T
}

// gmst returns Greenwich mean sidereal time in degrees for a Julian Day on
// the universal time scale.
func gmst(jdUT float64) float64 {
	T := (jdUT - 2451545.0) / 36525.0
	return norm360(280.46061837 + 360.98564736629*(jdUT-2451545.0) +
		0.000387933*T*T - T*T*T/38710000.0)
}
