package cftime

import (
	"fmt"
	"strings"
)

// monthAbbrevs are the conventional uppercase three-letter month names used
// in offset anchors and season labels.
var monthAbbrevs = [12]string{
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
}

// monthInitials spells the twelve month initials in order, the alphabet
// season labels are built from.
const monthInitials = "JFMAMJJASOND"

// MonthAbbrev returns the uppercase three-letter abbreviation of month
// (1..12); out-of-range months return "".
func MonthAbbrev(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthAbbrevs[month-1]
}

// MonthLabel concatenates n month initials starting at month first,
// wrapping past December, e.g. MonthLabel(12, 3) == "DJF".
func MonthLabel(first, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(monthInitials[(first-1+i)%12])
	}
	return b.String()
}

// String renders the frequency in the usual offset spelling: "D" and "7D"
// for day multiples, "MS"/"2MS" for month starts, "QS-DEC"/"2QS-JAN" for
// quarter starts and "AS-JUL"/"2AS-JAN" for year starts.
func (f Freq) String() string {
	mult := ""
	if f.Mult > 1 {
		mult = fmt.Sprintf("%d", f.Mult)
	}
	switch f.Base {
	case FreqDaily:
		return mult + "D"
	case FreqMonth:
		return mult + "MS"
	case FreqQuarter:
		return fmt.Sprintf("%sQS-%s", mult, MonthAbbrev(f.Anchor))
	case FreqYear:
		return fmt.Sprintf("%sAS-%s", mult, MonthAbbrev(f.Anchor))
	default:
		return mult + "?"
	}
}

// InferFreq deduces the regular sampling frequency of a timestamp axis.
// It recognizes, in this order: month-start patterns (month, quarter and
// year starts with any multiple) and constant whole-day spacing. At least
// three timestamps are required, all in the same calendar and in strictly
// increasing order; anything else returns ErrInferFreq.
//
// Complexity: O(n) over the timestamps.
func InferFreq(times []Date) (Freq, error) {
	if len(times) < 3 {
		return Freq{}, fmt.Errorf("%w: need at least 3 timestamps, got %d", ErrInferFreq, len(times))
	}
	cal := times[0].Cal
	for i := 1; i < len(times); i++ {
		if times[i].Cal != cal {
			return Freq{}, fmt.Errorf("%w: %s vs %s", ErrCalendarMismatch, cal, times[i].Cal)
		}
		if !times[i-1].Before(times[i]) {
			return Freq{}, fmt.Errorf("%w: timestamps not strictly increasing at index %d", ErrInferFreq, i)
		}
	}

	// Month-start patterns first: in the 360_day calendar a monthly axis is
	// also evenly spaced in days, and the month reading is the right one.
	if f, ok := inferMonthStart(times); ok {
		return f, nil
	}

	step := times[1].Ordinal() - times[0].Ordinal()
	regular := times[1].Sec == times[0].Sec
	for i := 2; i < len(times) && regular; i++ {
		regular = times[i].Ordinal()-times[i-1].Ordinal() == step && times[i].Sec == times[i-1].Sec
	}
	if regular && step >= 1 {
		return Freq{Mult: step, Base: FreqDaily}, nil
	}
	return Freq{}, fmt.Errorf("%w: irregular spacing", ErrInferFreq)
}

// inferMonthStart matches axes whose points all sit on the first of a
// month at midnight with a constant gap in months.
func inferMonthStart(times []Date) (Freq, bool) {
	for _, t := range times {
		if t.Day != 1 || t.Sec != 0 {
			return Freq{}, false
		}
	}
	idx := func(t Date) int { return t.Year*12 + t.Month - 1 }
	gap := idx(times[1]) - idx(times[0])
	if gap < 1 {
		return Freq{}, false
	}
	for i := 2; i < len(times); i++ {
		if idx(times[i])-idx(times[i-1]) != gap {
			return Freq{}, false
		}
	}
	first := times[0].Month
	switch {
	case gap%12 == 0:
		return Freq{Mult: gap / 12, Base: FreqYear, Anchor: first}, true
	case gap%3 == 0:
		return Freq{Mult: gap / 3, Base: FreqQuarter, Anchor: quarterAnchor(first)}, true
	default:
		return Freq{Mult: gap, Base: FreqMonth}, true
	}
}

// quarterAnchor maps a quarter-start month to the canonical anchor month of
// its residue class: {12,3,6,9} anchor at DEC, {1,4,7,10} at JAN,
// {2,5,8,11} at FEB.
func quarterAnchor(month int) int {
	switch month % 3 {
	case 0:
		return 12
	case 1:
		return 1
	default:
		return 2
	}
}

// Range generates the inclusive sequence of dates from start to end at the
// given frequency. Mult must be positive and end must not precede start.
//
// Complexity: O(n) over the generated dates.
func Range(start, end Date, f Freq) ([]Date, error) {
	if f.Mult < 1 {
		return nil, fmt.Errorf("%w: multiple %d", ErrFreq, f.Mult)
	}
	if start.Cal != end.Cal {
		return nil, fmt.Errorf("%w: %s vs %s", ErrCalendarMismatch, start.Cal, end.Cal)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: range end %s precedes start %s", ErrFreq, end, start)
	}
	var out []Date
	for t := start; !end.Before(t); {
		out = append(out, t)
		switch f.Base {
		case FreqDaily:
			t = t.AddDays(f.Mult)
		case FreqMonth:
			t = t.AddMonths(f.Mult)
		case FreqQuarter:
			t = t.AddMonths(3 * f.Mult)
		case FreqYear:
			t = t.AddMonths(12 * f.Mult)
		default:
			return nil, fmt.Errorf("%w: base %d", ErrFreq, f.Base)
		}
	}
	return out, nil
}
