package julian

// CalendarSystem selects the calendar convention used when deriving a Julian
// Day from a civil date, or when rendering one back.
type CalendarSystem int

const (
	// Julian is the Julian calendar convention (leap year every 4th year)
	Julian CalendarSystem = iota
	// Gregorian is the Gregorian calendar convention (century rule applied)
	Gregorian
)

// String returns a string representation of the calendar system
func (cs CalendarSystem) String() string {
	switch cs {
	case Julian:
		return "julian"
	case Gregorian:
		return "gregorian"
	default:
		return "unknown"
	}
}

// GregorianStart is the Julian Day of the Gregorian calendar adoption,
// 15 October 1582, 00:00 UT.
const GregorianStart = 2299160.5

// DefaultSystem returns the calendar convention conventionally in effect for
// a civil date: Julian before 15 October 1582, Gregorian from that day on.
// Callers may always override the default explicitly.
func DefaultSystem(year, month, day int) CalendarSystem {
	if year > 1582 {
		return Gregorian
	}
	if year < 1582 {
		return Julian
	}
	if month > 10 {
		return Gregorian
	}
	if month < 10 {
		return Julian
	}
	if day >= 15 {
		return Gregorian
	}
	return Julian
}

// daysInMonth returns the number of days of a month under the given calendar
// convention.
func daysInMonth(year, month int, sys CalendarSystem) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year, sys) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// isLeapYear reports whether a year is a leap year under the given calendar
// convention. Uses astronomical year numbering (year 0 exists and is a leap
// year), matching the continuous Julian Day axis.
func isLeapYear(year int, sys CalendarSystem) bool {
	// Astronomical numbering keeps the modulo arithmetic uniform across
	// negative years.
	mod := func(a, n int) int {
		m := a % n
		if m < 0 {
			m += n
		}
		return m
	}
	if mod(year, 4) != 0 {
		return false
	}
	if sys == Julian {
		return true
	}
	if mod(year, 100) != 0 {
		return true
	}
	return mod(year, 400) == 0
}
