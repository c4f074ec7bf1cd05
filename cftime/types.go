package cftime

import "errors"

// Calendar identifies one of the CF-convention model calendars.
type Calendar uint8

const (
	// Standard is the proleptic Gregorian calendar (aliases: "standard",
	// "gregorian", "proleptic_gregorian", "default").
	Standard Calendar = iota
	// NoLeap has fixed 365-day years (aliases: "noleap", "365_day").
	NoLeap
	// AllLeap has fixed 366-day years (aliases: "all_leap", "366_day").
	AllLeap
	// Cal360Day has twelve 30-day months (alias: "360_day").
	Cal360Day
)

// Date is a civil date in a specific model calendar. Sec is the number of
// seconds since midnight, so a Date resolves timestamps down to the second
// while keeping day arithmetic exact. The zero value is 0000-00-00 in the
// Standard calendar and is not a valid date; build Dates with New or
// ParseDate when validity matters.
type Date struct {
	Year  int
	Month int // 1..12
	Day   int // 1..days in month
	Sec   int // 0..86399
	Cal   Calendar
}

// FreqBase is the unit a sampling frequency is counted in.
type FreqBase uint8

const (
	FreqDaily   FreqBase = iota // multiples of one day
	FreqMonth                   // month starts
	FreqQuarter                 // quarter starts
	FreqYear                    // year starts
)

// Freq is a regular sampling frequency: Mult periods of Base, anchored at
// month Anchor for quarter and year starts (0 when not applicable).
// Its String form follows the usual offset spelling: "D", "7D", "MS",
// "2MS", "QS-DEC", "AS-JUL", "2AS-JAN".
type Freq struct {
	Mult   int
	Base   FreqBase
	Anchor int
}

var (
	// ErrCalendar reports an unknown calendar name.
	ErrCalendar = errors.New("cftime: unknown calendar")
	// ErrDate reports an invalid or unparsable civil date.
	ErrDate = errors.New("cftime: invalid date")
	// ErrCalendarMismatch reports arithmetic across different calendars.
	ErrCalendarMismatch = errors.New("cftime: calendar mismatch")
	// ErrInferFreq reports that no regular frequency fits the timestamps.
	ErrInferFreq = errors.New("cftime: cannot infer frequency")
	// ErrFreq reports a malformed frequency.
	ErrFreq = errors.New("cftime: invalid frequency")
	// ErrChunk reports a chunk specification value that cannot be resolved.
	ErrChunk = errors.New("cftime: invalid time chunk")
)
