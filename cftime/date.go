package cftime

import (
	"fmt"
	"strconv"
	"strings"
)

// New builds a validated Date at midnight. Invalid year/month/day
// combinations for the calendar return ErrDate.
func New(year, month, day int, cal Calendar) (Date, error) {
	d := Date{Year: year, Month: month, Day: day, Cal: cal}
	if !d.Valid() {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d (%s)", ErrDate, year, month, day, cal)
	}
	return d, nil
}

// Valid reports whether the date exists in its calendar.
func (d Date) Valid() bool {
	if d.Month < 1 || d.Month > 12 || d.Sec < 0 || d.Sec > 86399 {
		return false
	}
	return d.Day >= 1 && d.Day <= d.Cal.DaysInMonth(d.Year, d.Month)
}

// floorDiv is integer division rounding toward negative infinity, so that
// ordinal math stays correct for years before the epoch.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// daysBeforeYear counts the days from 0001-01-01 to year-01-01.
func daysBeforeYear(year int, cal Calendar) int {
	y := year - 1
	switch cal {
	case Cal360Day:
		return y * 360
	case NoLeap:
		return y * 365
	case AllLeap:
		return y * 366
	default:
		return y*365 + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400)
	}
}

// Ordinal returns the number of whole days between 0001-01-01 of the
// calendar and this date. Sub-day seconds are ignored.
func (d Date) Ordinal() int {
	ord := daysBeforeYear(d.Year, d.Cal)
	for m := 1; m < d.Month; m++ {
		ord += d.Cal.DaysInMonth(d.Year, m)
	}
	return ord + d.Day - 1
}

// fromOrdinal is the inverse of Ordinal; Sec of the result is zero.
func fromOrdinal(ord int, cal Calendar) Date {
	var year int
	switch cal {
	case Cal360Day:
		year = floorDiv(ord, 360) + 1
	case NoLeap:
		year = floorDiv(ord, 365) + 1
	case AllLeap:
		year = floorDiv(ord, 366) + 1
	default:
		// Initial guess from the mean year length, then settle.
		year = floorDiv(ord*400, 146097) + 1
		for daysBeforeYear(year, cal) > ord {
			year--
		}
		for daysBeforeYear(year+1, cal) <= ord {
			year++
		}
	}
	rem := ord - daysBeforeYear(year, cal)
	month := 1
	for rem >= cal.DaysInMonth(year, month) {
		rem -= cal.DaysInMonth(year, month)
		month++
	}
	return Date{Year: year, Month: month, Day: rem + 1, Cal: cal}
}

// AddDays returns the date n days later (earlier for negative n) in the
// same calendar, preserving the time of day.
func (d Date) AddDays(n int) Date {
	out := fromOrdinal(d.Ordinal()+n, d.Cal)
	out.Sec = d.Sec
	return out
}

// AddMonths returns the date n months later, clamping the day to the
// target month's length (Jan 31 + 1 month is Feb 28 outside leap years).
func (d Date) AddMonths(n int) Date {
	mi := d.Year*12 + (d.Month - 1) + n
	year := floorDiv(mi, 12)
	month := mi - year*12 + 1
	day := d.Day
	if max := d.Cal.DaysInMonth(year, month); day > max {
		day = max
	}
	return Date{Year: year, Month: month, Day: day, Sec: d.Sec, Cal: d.Cal}
}

// DaysBetween returns b - a in whole days. The two dates must share a
// calendar; mixing calendars returns ErrCalendarMismatch.
func DaysBetween(a, b Date) (int, error) {
	if a.Cal != b.Cal {
		return 0, fmt.Errorf("%w: %s vs %s", ErrCalendarMismatch, a.Cal, b.Cal)
	}
	return b.Ordinal() - a.Ordinal(), nil
}

// Key returns the month-day key "MM-DD" used by season maps.
func (d Date) Key() string {
	return fmt.Sprintf("%02d-%02d", d.Month, d.Day)
}

// YearStart returns January 1st of the date's year, at midnight.
func (d Date) YearStart() Date {
	return Date{Year: d.Year, Month: 1, Day: 1, Cal: d.Cal}
}

// DayOfYear returns the 1-based day number within the year.
func (d Date) DayOfYear() int {
	return d.Ordinal() - daysBeforeYear(d.Year, d.Cal) + 1
}

// Before reports whether d is strictly earlier than other. Dates are
// assumed to share a calendar; the comparison is purely positional.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	if d.Day != other.Day {
		return d.Day < other.Day
	}
	return d.Sec < other.Sec
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return other.Before(d) }

// Equal reports whether the two dates name the same instant in the same
// calendar.
func (d Date) Equal(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month &&
		d.Day == other.Day && d.Sec == other.Sec && d.Cal == other.Cal
}

// String renders "YYYY-MM-DD", appending "THH:MM:SS" when the time of day
// is not midnight.
func (d Date) String() string {
	if d.Sec == 0 {
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d",
		d.Year, d.Month, d.Day, d.Sec/3600, d.Sec/60%60, d.Sec%60)
}

// ParseDate parses "YYYY-MM-DD", optionally followed by "THH:MM:SS" or
// " HH:MM:SS", into the given calendar.
func ParseDate(s string, cal Calendar) (Date, error) {
	datePart := s
	timePart := ""
	if i := strings.IndexAny(s, "T "); i >= 0 {
		datePart, timePart = s[:i], s[i+1:]
	}
	fields := strings.Split(datePart, "-")
	if len(fields) != 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrDate, s)
	}
	var nums [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", ErrDate, s)
		}
		nums[i] = n
	}
	d, err := New(nums[0], nums[1], nums[2], cal)
	if err != nil {
		return Date{}, err
	}
	if timePart != "" {
		hms := strings.Split(timePart, ":")
		sec := 0
		for _, h := range hms {
			n, err := strconv.Atoi(h)
			if err != nil {
				return Date{}, fmt.Errorf("%w: %q", ErrDate, s)
			}
			sec = sec*60 + n
		}
		// "HH" and "HH:MM" scale up to full seconds.
		for i := len(hms); i < 3; i++ {
			sec *= 60
		}
		if sec < 0 || sec > 86399 {
			return Date{}, fmt.Errorf("%w: %q", ErrDate, s)
		}
		d.Sec = sec
	}
	return d, nil
}

// EncodeDays returns the signed distance from epoch to d in days, including
// the fractional time of day. Both dates must share a calendar.
func EncodeDays(d, epoch Date) (float64, error) {
	whole, err := DaysBetween(epoch, d)
	if err != nil {
		return 0, err
	}
	return float64(whole) + float64(d.Sec-epoch.Sec)/86400, nil
}

// DecodeDays is the inverse of EncodeDays: it resolves a fractional day
// offset from epoch back into a Date in the epoch's calendar.
func DecodeDays(days float64, epoch Date) Date {
	whole := int(days)
	frac := days - float64(whole)
	if frac < 0 {
		whole--
		frac++
	}
	out := epoch.AddDays(whole)
	sec := out.Sec + int(frac*86400+0.5)
	if sec >= 86400 {
		out = out.AddDays(1)
		sec -= 86400
	}
	out.Sec = sec
	return out
}
