package deltat

// Model selects the Delta-T estimation algorithm.
type Model int

const (
	// Standard is the observed-value table fit, the default model
	Standard Model = iota
	// EspenakMeeus is the Espenak-Meeus (2006) polynomial fit, more accurate
	// in parts of the 20th/21st century; used only when explicitly configured
	EspenakMeeus
)

// String returns the string representation of the model
func (m Model) String() string {
	switch m {
	case Standard:
		return "standard"
	case EspenakMeeus:
		return "espenak-meeus"
	default:
		return "unknown"
	}
}

// j2000 is the Julian Day of 2000-01-01 12:00 UT.
const j2000 = 2451545.0

// Seconds returns Delta-T (ET - UT) in seconds for the given Julian Day.
func Seconds(jd float64, model Model) float64 {
	// Julian years; the table and polynomial fits are parameterized by year.
	year := 2000.0 + (jd-j2000)/365.25
	if model == EspenakMeeus {
		return espenakMeeus(year)
	}
	return standard(year)
}

// Days returns Delta-T (ET - UT) as a fraction of a day, the unit applied to
// Julian Day values.
func Days(jd float64, model Model) float64 {
	return Seconds(jd, model) / 86400.0
}

// standard evaluates the table fit: linear interpolation on the two-year grid
// inside [tableStart, tableEnd], the long-term parabola of the historical
// record before it, and the last segment's trend after it.
func standard(year float64) float64 {
	switch {
	case year < tableStart:
		return longTermParabola(year)
	case year >= tableEnd:
		n := len(table)
		slope := (table[n-1] - table[n-2]) / tableStep
		return table[n-1] + slope*(year-tableEnd)
	default:
		pos := (year - tableStart) / tableStep
		i := int(pos)
		frac := pos - float64(i)
		return table[i] + frac*(table[i+1]-table[i])
	}
}

// longTermParabola is the Morrison-Stephenson long-term fit of the historical
// record, anchored at 1820.
func longTermParabola(year float64) float64 {
	u := (year - 1820.0) / 100.0
	return -20.0 + 32.0*u*u
}

// espenakMeeus evaluates the Espenak-Meeus (2006) polynomial set. Segment
// boundaries and coefficients follow the published fit; outside [-500, 2150]
// the long-term parabola applies, with the published linear blend on the
// modern side.
func espenakMeeus(year float64) float64 {
	y := year
	switch {
	case y < -500.0:
		return longTermParabola(y)

	case y < 500.0:
		u := y / 100.0
		return 10583.6 + u*(-1014.41+u*(33.78311+u*(-5.952053+
			u*(-0.1798452+u*(0.022174192+u*0.0090316521)))))

	case y < 1600.0:
		u := (y - 1000.0) / 100.0
		return 1574.2 + u*(-556.01+u*(71.23472+u*(0.319781+
			u*(-0.8503463+u*(-0.005050998+u*0.0083572073)))))

	case y < 1700.0:
		t := y - 1600.0
		return 120.0 + t*(-0.9808+t*(-0.01532+t/7129.0))

	case y < 1800.0:
		t := y - 1700.0
		return 8.83 + t*(0.1603+t*(-0.0059285+t*(0.00013336-t/1174000.0)))

	case y < 1860.0:
		t := y - 1800.0
		return 13.72 + t*(-0.332447+t*(0.0068612+t*(0.0041116+
			t*(-0.00037436+t*(0.0000121272+t*(-0.0000001699+t*0.000000000875))))))

	case y < 1900.0:
		t := y - 1860.0
		return 7.62 + t*(0.5737+t*(-0.251754+t*(0.01680668+
			t*(-0.0004473624+t/233174.0))))

	case y < 1920.0:
		t := y - 1900.0
		return -2.79 + t*(1.494119+t*(-0.0598939+t*(0.0061966-t*0.000197)))

	case y < 1941.0:
		t := y - 1920.0
		return 21.20 + t*(0.84493+t*(-0.076100+t*0.0020936))

	case y < 1961.0:
		t := y - 1950.0
		return 29.07 + t*(0.407+t*(-1.0/233.0+t/2547.0))

	case y < 1986.0:
		t := y - 1975.0
		return 45.45 + t*(1.067+t*(-1.0/260.0-t/718.0))

	case y < 2005.0:
		t := y - 2000.0
		return 63.86 + t*(0.3345+t*(-0.060374+t*(0.0017275+
			t*(0.000651814+t*0.00002373599))))

	case y < 2050.0:
		t := y - 2000.0
		return 62.92 + t*(0.32217+t*0.005589)

	case y < 2150.0:
		return longTermParabola(y) - 0.5628*(2150.0-y)

	default:
		return longTermParabola(y)
	}
}
