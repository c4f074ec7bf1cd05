package calconv

import (
	"math"
	"math/rand"

	"github.com/Youssef-Bakr/xscen/cftime"
)

// alignDate keeps month and day; dates the target calendar lacks are
// dropped.
func (c *converter) alignDate(d cftime.Date) (cftime.Date, bool) {
	nd := cftime.Date{Year: d.Year, Month: d.Month, Day: d.Day, Sec: d.Sec, Cal: c.target}
	return nd, nd.Valid()
}

// alignYear rescales the day of year onto the target year length, ties to
// even. Collisions are resolved upstream, first occupant wins.
func (c *converter) alignYear(d cftime.Date) (cftime.Date, bool) {
	srcDays := float64(c.source.DaysInYear(d.Year))
	tgtDays := float64(c.target.DaysInYear(d.Year))
	doy := int(math.RoundToEven(tgtDays * float64(d.DayOfYear()) / srcDays))
	if doy < 1 {
		doy = 1
	}
	return dateFromDoy(d.Year, doy, d.Sec, c.target), true
}

// randomAlign distributes the 5 or 6 surplus days of a 360-day
// conversion: one random slot inside each equal section of the year,
// drawn once per year. Growing years skip a target day after each slot;
// shrinking years drop the source day at each slot.
type randomAlign struct {
	rng    *rand.Rand
	source cftime.Calendar
	target cftime.Calendar
	years  map[int][]int
}

func newRandomAlign(rng *rand.Rand, source, target cftime.Calendar) *randomAlign {
	return &randomAlign{rng: rng, source: source, target: target, years: make(map[int][]int)}
}

// slots returns the year's section slots as source days of year, drawing
// them on first use so a fixed seed reproduces the same mapping.
func (a *randomAlign) slots(year int) []int {
	if s, ok := a.years[year]; ok {
		return s
	}
	src := a.source.DaysInYear(year)
	tgt := a.target.DaysInYear(year)
	n := tgt - src
	if n < 0 {
		n = -n
	}
	secLen := src / n
	s := make([]int, n)
	for k := 0; k < n; k++ {
		s[k] = k*secLen + a.rng.Intn(secLen) + 1
	}
	a.years[year] = s
	return s
}

func (a *randomAlign) convert(d cftime.Date) (cftime.Date, bool) {
	slots := a.slots(d.Year)
	doy := d.DayOfYear()
	if a.target.DaysInYear(d.Year) > a.source.DaysInYear(d.Year) {
		off := 0
		for _, s := range slots {
			if s <= doy {
				off++
			}
		}
		return dateFromDoy(d.Year, doy+off, d.Sec, a.target), true
	}
	off := 0
	for _, s := range slots {
		if s == doy {
			return cftime.Date{}, false
		}
		if s < doy {
			off++
		}
	}
	return dateFromDoy(d.Year, doy-off, d.Sec, a.target), true
}

func dateFromDoy(year, doy, sec int, cal cftime.Calendar) cftime.Date {
	d := cftime.Date{Year: year, Month: 1, Day: 1, Sec: sec, Cal: cal}
	return d.AddDays(doy - 1)
}
