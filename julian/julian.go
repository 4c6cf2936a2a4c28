package julian

import (
	"fmt"
	"math"
	"time"

	"github.com/c360/astrotime/errors"
)

// J2000 is the Julian Day of the fixed reference epoch
// 2000-01-01 12:00:00 UT, Gregorian calendar.
const J2000 = 2451545.0

// Supported civil year span. Dates outside fail validation rather than
// degrade silently; the span comfortably covers the range of available
// ephemeris coefficient files.
const (
	MinYear = -13000
	MaxYear = 17000
)

// JulianDay is a continuous real-valued day count on the calendar-independent
// time axis, tagged with the calendar system in effect when it was derived
// from a civil date. The tag only records provenance: two Julian Days compare
// as plain real numbers regardless of tag.
type JulianDay struct {
	Value  float64
	System CalendarSystem
}

// Add returns a new Julian Day offset by the given number of days.
func (jd JulianDay) Add(days float64) JulianDay {
	return JulianDay{Value: jd.Value + days, System: jd.System}
}

// Sub returns the difference jd - other in days.
func (jd JulianDay) Sub(other JulianDay) float64 {
	return jd.Value - other.Value
}

// Before reports whether jd is earlier than other on the continuous axis.
func (jd JulianDay) Before(other JulianDay) bool {
	return jd.Value < other.Value
}

// String returns the day count and calendar tag, e.g. "2451545.000000 (gregorian)"
func (jd JulianDay) String() string {
	return fmt.Sprintf("%f (%s)", jd.Value, jd.System)
}

// DateUT is a civil calendar date and time of day expressed in Universal
// Time, with the calendar convention it belongs to. Seconds are whole:
// sub-second fractions are rounded away at construction, which is the
// granularity the round-trip contract is defined at.
type DateUT struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
	System CalendarSystem
}

// NewDateUT builds a DateUT from a fractional hour (e.g. 12.5 for 12:30:00),
// rounding to the nearest second.
func NewDateUT(year, month, day int, hour float64, sys CalendarSystem) DateUT {
	totalSec := int(math.Floor(hour*3600.0 + 0.5))
	return DateUT{
		Year:   year,
		Month:  month,
		Day:    day,
		Hour:   totalSec / 3600,
		Minute: (totalSec % 3600) / 60,
		Second: totalSec % 60,
		System: sys,
	}
}

// NewDateUTClock builds a DateUT from explicit hour/minute/second components.
func NewDateUTClock(year, month, day, hour, minute, second int, sys CalendarSystem) DateUT {
	return DateUT{
		Year:   year,
		Month:  month,
		Day:    day,
		Hour:   hour,
		Minute: minute,
		Second: second,
		System: sys,
	}
}

// FractionalHour returns the time of day as a fractional hour.
func (d DateUT) FractionalHour() float64 {
	return float64(d.Hour) + float64(d.Minute)/60.0 + float64(d.Second)/3600.0
}

// String returns the date in "YYYY-MM-DD HH:MM:SS UT (system)" form.
func (d DateUT) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d UT (%s)",
		d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second, d.System)
}

// Validate checks the civil components. Out-of-range values are reported,
// never silently clamped or wrapped into neighboring fields.
func (d DateUT) Validate() error {
	if d.Year < MinYear || d.Year > MaxYear {
		return fmt.Errorf("year %d: %w", d.Year, errors.ErrYearOutOfRange)
	}
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("month %d out of range: %w", d.Month, errors.ErrInvalidDate)
	}
	if dim := daysInMonth(d.Year, d.Month, d.System); d.Day < 1 || d.Day > dim {
		return fmt.Errorf("day %d out of range for %04d-%02d: %w",
			d.Day, d.Year, d.Month, errors.ErrInvalidDate)
	}
	if d.Hour < 0 || d.Hour > 23 {
		return fmt.Errorf("hour %d out of range: %w", d.Hour, errors.ErrInvalidDate)
	}
	if d.Minute < 0 || d.Minute > 59 {
		return fmt.Errorf("minute %d out of range: %w", d.Minute, errors.ErrInvalidDate)
	}
	if d.Second < 0 || d.Second > 59 {
		return fmt.Errorf("second %d out of range: %w", d.Second, errors.ErrInvalidDate)
	}
	return nil
}

// EphemerisTime pairs a UT-derived Julian Day with the Delta-T correction
// applied to it, expressing the instant on the uniform Ephemeris/Dynamical
// time scale. It derives from, but does not own, its Julian Day.
type EphemerisTime struct {
	JulianDay JulianDay
	DeltaT    float64 // ET - UT, in days
}

// Value returns the instant in the Ephemeris Time scale as a day count.
// Invariant: Value() == JulianDay.Value + DeltaT.
func (et EphemerisTime) Value() float64 {
	return et.JulianDay.Value + et.DeltaT
}

// ToJulianDay converts a civil date in Universal Time to its Julian Day.
// The date is validated first; out-of-range components fail rather than wrap.
func ToJulianDay(d DateUT) (JulianDay, error) {
	if err := d.Validate(); err != nil {
		return JulianDay{}, err
	}
	return JulianDay{
		Value:  civilToJD(d.Year, d.Month, d.Day, d.FractionalHour(), d.System),
		System: d.System,
	}, nil
}

// ToCivilDate converts a Julian Day back to a civil date in Universal Time,
// using the calendar system the day is tagged with. The day fraction is
// rounded to the nearest second before decomposition.
func ToCivilDate(jd JulianDay) DateUT {
	// Snap to a whole-second boundary so the H:M:S decomposition is exact.
	v := math.Floor(jd.Value*86400.0+0.5) / 86400.0
	year, month, day, hour := jdToCivil(v, jd.System)
	totalSec := int(math.Floor(hour*3600.0 + 0.5))
	if totalSec >= 86400 {
		// Rounding crossed midnight; take the civil date half a second later.
		year, month, day, _ = jdToCivil(v+0.5/86400.0, jd.System)
		totalSec = 0
	}
	return DateUT{
		Year:   year,
		Month:  month,
		Day:    day,
		Hour:   totalSec / 3600,
		Minute: (totalSec % 3600) / 60,
		Second: totalSec % 60,
		System: jd.System,
	}
}

// FromTime converts a stdlib time.Time (taken in UTC) to its Julian Day on
// the Gregorian calendar.
func FromTime(t time.Time) JulianDay {
	t = t.UTC()
	hour := float64(t.Hour()) +
		float64(t.Minute())/60.0 +
		(float64(t.Second())+float64(t.Nanosecond())/1e9)/3600.0
	return JulianDay{
		Value:  civilToJD(t.Year(), int(t.Month()), t.Day(), hour, Gregorian),
		System: Gregorian,
	}
}

// civilToJD computes the Julian Day for civil components under the given
// calendar convention. The arithmetic follows the standard astronomical
// formulation built on a 4-year/400-year cycle count from the -4712 epoch.
func civilToJD(year, month, day int, hour float64, sys CalendarSystem) float64 {
	u := float64(year)
	if month < 3 {
		u--
	}
	u0 := u + 4712.0
	u1 := float64(month) + 1.0
	if u1 < 4 {
		u1 += 12.0
	}
	jd := math.Floor(u0*365.25) + math.Floor(30.6*u1+0.000001) +
		float64(day) + hour/24.0 - 63.5
	if sys == Gregorian {
		u2 := math.Floor(math.Abs(u)/100.0) - math.Floor(math.Abs(u)/400.0)
		if u < 0.0 {
			u2 = -u2
		}
		jd = jd - u2 + 2.0
		if u < 0.0 && u/100.0 == math.Floor(u/100.0) && u/400.0 != math.Floor(u/400.0) {
			jd--
		}
	}
	return jd
}

// jdToCivil is the inverse of civilToJD. The returned hour is the fractional
// time of day in [0, 24).
func jdToCivil(jd float64, sys CalendarSystem) (year, month, day int, hour float64) {
	u0 := jd + 32082.5
	if sys == Gregorian {
		u1 := u0 + math.Floor(u0/36525.0) - math.Floor(u0/146100.0) - 38.0
		if jd >= 1830691.5 {
			u1++
		}
		u0 = u0 + math.Floor(u1/36525.0) - math.Floor(u1/146100.0) - 38.0
	}
	u2 := math.Floor(u0 + 123.0)
	u3 := math.Floor((u2 - 122.2) / 365.25)
	u4 := math.Floor((u2 - math.Floor(365.25*u3)) / 30.6001)
	month = int(u4 - 1.0)
	if month > 12 {
		month -= 12
	}
	day = int(u2 - math.Floor(365.25*u3) - math.Floor(30.6001*u4))
	year = int(u3 + math.Floor((u4-2.0)/12.0) - 4800.0)
	hour = (jd - math.Floor(jd+0.5) + 0.5) * 24.0
	return year, month, day, hour
}
