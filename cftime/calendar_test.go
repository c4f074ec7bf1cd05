package cftime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Youssef-Bakr/xscen/cftime"
)

// TestParseCalendar_Aliases checks that every CF alias resolves to the
// right calendar family, case-insensitively.
func TestParseCalendar_Aliases(t *testing.T) {
	cases := map[string]cftime.Calendar{
		"standard":             cftime.Standard,
		"gregorian":            cftime.Standard,
		"proleptic_gregorian":  cftime.Standard,
		"default":              cftime.Standard,
		"noleap":               cftime.NoLeap,
		"365_day":              cftime.NoLeap,
		"all_leap":             cftime.AllLeap,
		"366_day":              cftime.AllLeap,
		"360_day":              cftime.Cal360Day,
		"Standard":             cftime.Standard,
		"NOLEAP":               cftime.NoLeap,
		" proleptic_gregorian": cftime.Standard,
	}
	for name, want := range cases {
		got, err := cftime.ParseCalendar(name)
		require.NoError(t, err, "alias %q must parse", name)
		assert.Equal(t, want, got, "alias %q", name)
	}
}

// TestParseCalendar_Unknown checks that unknown names surface ErrCalendar.
func TestParseCalendar_Unknown(t *testing.T) {
	_, err := cftime.ParseCalendar("julian-ish")
	assert.ErrorIs(t, err, cftime.ErrCalendar)
	assert.Contains(t, err.Error(), "julian-ish", "error should name the offending input")
}

// TestCalendar_DaysInMonth exercises month lengths across the four
// families, including the leap-year split of the standard calendar.
func TestCalendar_DaysInMonth(t *testing.T) {
	assert.Equal(t, 29, cftime.Standard.DaysInMonth(2000, 2), "2000 is a Gregorian leap year")
	assert.Equal(t, 28, cftime.Standard.DaysInMonth(1900, 2), "1900 is not (century rule)")
	assert.Equal(t, 28, cftime.NoLeap.DaysInMonth(2000, 2))
	assert.Equal(t, 29, cftime.AllLeap.DaysInMonth(1900, 2))
	assert.Equal(t, 30, cftime.Cal360Day.DaysInMonth(2000, 1), "every 360_day month has 30 days")
	assert.Equal(t, 31, cftime.Standard.DaysInMonth(2001, 12))
	assert.Equal(t, 0, cftime.Standard.DaysInMonth(2001, 13), "out-of-range month")
}

// TestCalendar_DaysInYear pins the year lengths per family.
func TestCalendar_DaysInYear(t *testing.T) {
	assert.Equal(t, 366, cftime.Standard.DaysInYear(2000))
	assert.Equal(t, 365, cftime.Standard.DaysInYear(2001))
	assert.Equal(t, 365, cftime.NoLeap.DaysInYear(2000))
	assert.Equal(t, 366, cftime.AllLeap.DaysInYear(2001))
	assert.Equal(t, 360, cftime.Cal360Day.DaysInYear(2000))
}

// TestMinimumCalendar covers the reduction hierarchy: 360_day dominates,
// then noleap (except against all_leap, whose opposite leap rule pushes
// the mix to standard), all_leap only survives unanimity, everything else
// falls back to standard.
func TestMinimumCalendar(t *testing.T) {
	assert.Equal(t, cftime.Cal360Day,
		cftime.MinimumCalendar(cftime.Standard, cftime.Cal360Day))
	assert.Equal(t, cftime.Cal360Day,
		cftime.MinimumCalendar(cftime.AllLeap, cftime.NoLeap, cftime.Cal360Day))
	assert.Equal(t, cftime.NoLeap,
		cftime.MinimumCalendar(cftime.Standard, cftime.NoLeap))
	assert.Equal(t, cftime.Standard,
		cftime.MinimumCalendar(cftime.NoLeap, cftime.AllLeap))
	assert.Equal(t, cftime.AllLeap,
		cftime.MinimumCalendar(cftime.AllLeap, cftime.AllLeap))
	assert.Equal(t, cftime.Standard,
		cftime.MinimumCalendar(cftime.Standard, cftime.AllLeap))
	assert.Equal(t, cftime.Standard,
		cftime.MinimumCalendar(cftime.Standard))
}
