package cftime

import (
	"fmt"
	"strings"
)

// monthDays holds the standard-calendar month lengths for non-leap years.
var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// ParseCalendar resolves a CF calendar name, accepting the conventional
// aliases. Matching is case-insensitive. Unknown names return ErrCalendar.
func ParseCalendar(name string) (Calendar, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "standard", "gregorian", "proleptic_gregorian", "default":
		return Standard, nil
	case "noleap", "365_day":
		return NoLeap, nil
	case "all_leap", "366_day":
		return AllLeap, nil
	case "360_day":
		return Cal360Day, nil
	default:
		return Standard, fmt.Errorf("%w: %q", ErrCalendar, name)
	}
}

// String returns the canonical CF name of the calendar.
func (c Calendar) String() string {
	switch c {
	case NoLeap:
		return "noleap"
	case AllLeap:
		return "all_leap"
	case Cal360Day:
		return "360_day"
	default:
		return "standard"
	}
}

// IsLeap reports whether year is a leap year in this calendar. Only the
// standard calendar has the Gregorian leap rule; noleap and 360_day never
// have one and all_leap always does.
func (c Calendar) IsLeap(year int) bool {
	switch c {
	case Standard:
		return year%4 == 0 && (year%100 != 0 || year%400 == 0)
	case AllLeap:
		return true
	default:
		return false
	}
}

// DaysInYear returns the number of days in year for this calendar.
func (c Calendar) DaysInYear(year int) int {
	switch c {
	case Cal360Day:
		return 360
	case NoLeap:
		return 365
	case AllLeap:
		return 366
	default:
		if c.IsLeap(year) {
			return 366
		}
		return 365
	}
}

// DaysInMonth returns the number of days in the given month of year.
// Month must be in 1..12; out-of-range months return 0.
func (c Calendar) DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if c == Cal360Day {
		return 30
	}
	d := monthDays[month-1]
	if month == 2 && c.IsLeap(year) {
		d = 29
	}
	return d
}

// daysPerYear is the average year length used when scaling year counts to
// day counts (chunk translation).
func (c Calendar) daysPerYear() float64 {
	switch c {
	case NoLeap:
		return 365
	case Cal360Day:
		return 360
	case AllLeap:
		return 366
	default:
		return 365.25
	}
}

// MinimumCalendar returns the poorest calendar that all the given
// calendars can be converted to without inventing dates: any 360_day input
// forces 360_day, a noleap input forces noleap unless an all_leap input is
// also present (the two disagree on every February 29, so the mix falls
// back to standard), a uniformly all_leap input stays all_leap, and
// anything else is standard.
func MinimumCalendar(cals ...Calendar) Calendar {
	var noLeap, allLeap, other bool
	for _, c := range cals {
		switch c {
		case Cal360Day:
			return Cal360Day
		case NoLeap:
			noLeap = true
		case AllLeap:
			allLeap = true
		default:
			other = true
		}
	}
	switch {
	case noLeap && !allLeap:
		return NoLeap
	case allLeap && !noLeap && !other:
		return AllLeap
	default:
		return Standard
	}
}
