// Package cftime implements the CF-convention model calendars and the
// calendar-aware date arithmetic the rest of the library is built on.
//
// What
//
//   - Calendar: the four CF calendar families (standard, noleap, all_leap,
//     360_day) with parsing of their conventional aliases.
//   - Date: a calendar-aware civil date (year, month, day, seconds) with
//     ordinal arithmetic, day offsets and range generation.
//   - InferFreq: frequency inference over a timestamp axis (daily multiples,
//     month starts, quarter starts, year starts).
//   - MinimumCalendar: the smallest calendar a set of datasets can be safely
//     converted to.
//   - TranslateTimeChunk: rewrite of storage chunk hints, resolving -1 to
//     the axis length and "Nyear" strings to calendar-dependent day counts.
//
// Why
//
//	Climate model output is produced on simplified calendars. Comparing or
//	merging datasets across models means reconciling those calendars, and
//	every downstream operation (season bucketing, rate conversion, calendar
//	conversion) needs exact day arithmetic in the dataset's own calendar
//	rather than the proleptic Gregorian one of the standard library.
//
// Errors
//
//   - ErrCalendar          unknown calendar name.
//   - ErrDate              invalid or unparsable civil date.
//   - ErrCalendarMismatch  arithmetic across two different calendars.
//   - ErrInferFreq         no regular frequency fits the timestamps.
//   - ErrFreq              malformed frequency (non-positive multiple).
//   - ErrChunk             malformed chunk specification value.
//
// All functions are pure; Date values are immutable.
package cftime
