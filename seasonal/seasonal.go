package seasonal

import (
	"fmt"
	"math"
	"sort"

	"github.com/ctessum/sparse"
	"go.uber.org/zap"

	"github.com/Youssef-Bakr/xscen/cftime"
	"github.com/Youssef-Bakr/xscen/dataset"
)

// SeasonMap derives the "MM-DD" -> label map UnstackDates would use for
// the given time coordinate, from its inferred sampling frequency.
//
// Monthly data gets the twelve month abbreviations. Quarterly or n-monthly
// data gets wrapped month-initial labels, one per month actually present
// (QS-DEC yields DJF, MAM, JJA, SON). Yearly data gets "annual-ABB" per
// month start, with January 1st spelled plain "annual". Any other
// frequency has no labeling scheme and returns ErrFrequency.
func SeasonMap(times []cftime.Date) (map[string]string, error) {
	f, err := cftime.InferFreq(times)
	if err != nil {
		return nil, fmt.Errorf("seasonal: %w", err)
	}
	switch {
	case f.Base == cftime.FreqQuarter || (f.Base == cftime.FreqMonth && f.Mult > 1):
		n := f.Mult
		if f.Base == cftime.FreqQuarter {
			n *= 3
		}
		m := make(map[string]string)
		for _, d := range times {
			key := fmt.Sprintf("%02d-01", d.Month)
			if _, ok := m[key]; !ok {
				m[key] = cftime.MonthLabel(d.Month, n)
			}
		}
		return m, nil
	case f.Base == cftime.FreqYear:
		m := make(map[string]string, 12)
		for mo := 1; mo <= 12; mo++ {
			m[fmt.Sprintf("%02d-01", mo)] = "annual-" + cftime.MonthAbbrev(mo)
		}
		m["01-01"] = "annual"
		return m, nil
	case f.Base == cftime.FreqMonth:
		m := make(map[string]string, 12)
		for mo := 1; mo <= 12; mo++ {
			m[fmt.Sprintf("%02d-01", mo)] = cftime.MonthAbbrev(mo)
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w %s", ErrFrequency, f)
}

// UnstackDates splits the time dimension of ds into a yearly time axis and
// a season axis. Each timestamp is bucketed by the season map (explicit
// via WithSeasons, otherwise derived with SeasonMap); its year becomes a
// January 1st entry on the shrunken time coordinate and its label an entry
// on the new season coordinate. (year, season) cells with no timestamp are
// NaN.
//
// The season axis is sorted by each label's first chronological
// occurrence, the year axis ascending. The input dataset is not modified.
func UnstackDates(ds *dataset.Dataset, opts ...Option) (*dataset.Dataset, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	o, err := apply(opts)
	if err != nil {
		return nil, err
	}
	times, ok := ds.Times()
	if !ok || len(times) == 0 {
		return nil, ErrNoTime
	}
	seasons := o.Seasons
	if seasons == nil {
		if seasons, err = SeasonMap(times); err != nil {
			return nil, err
		}
	}
	b := &bucketer{ds: ds, o: o, times: times, seasons: seasons}
	if err := b.assign(); err != nil {
		return nil, err
	}
	return b.build()
}

// bucketer carries the state of one reshape pass.
type bucketer struct {
	ds      *dataset.Dataset
	o       Options
	times   []cftime.Date
	seasons map[string]string

	years      []int    // distinct years, ascending
	labels     []string // season labels, by earliest map key
	timeYear   []int    // per timestamp -> year axis index
	timeSeason []int    // per timestamp -> season axis index
}

// assign buckets every timestamp onto its (year, season) cell.
func (b *bucketer) assign() error {
	yearSeen := make(map[int]bool)
	perTime := make([]string, len(b.times))
	// The season axis follows each label's first occurrence in the data,
	// so for QS-DEC data DJF (first seen in December) precedes MAM.
	firstAt := make(map[string]cftime.Date)
	for i, d := range b.times {
		label, ok := b.seasons[d.Key()]
		if !ok {
			return fmt.Errorf("%w: %q", ErrSeasonKey, d.Key())
		}
		perTime[i] = label
		if at, seen := firstAt[label]; !seen || d.Before(at) {
			firstAt[label] = d
		}
		if !yearSeen[d.Year] {
			yearSeen[d.Year] = true
			b.years = append(b.years, d.Year)
		}
	}
	sort.Ints(b.years)

	for label := range firstAt {
		b.labels = append(b.labels, label)
	}
	sort.Slice(b.labels, func(i, j int) bool {
		return firstAt[b.labels[i]].Before(firstAt[b.labels[j]])
	})

	yearIdx := make(map[int]int, len(b.years))
	for i, y := range b.years {
		yearIdx[y] = i
	}
	labelIdx := make(map[string]int, len(b.labels))
	for i, l := range b.labels {
		labelIdx[l] = i
	}

	b.timeYear = make([]int, len(b.times))
	b.timeSeason = make([]int, len(b.times))
	cellSeen := make(map[int]int, len(b.times))
	for i, d := range b.times {
		yi, si := yearIdx[d.Year], labelIdx[perTime[i]]
		cell := yi*len(b.labels) + si
		if prev, dup := cellSeen[cell]; dup {
			return fmt.Errorf("%w: %s and %s are both %d/%s",
				ErrSeasonCell, b.times[prev], d, d.Year, perTime[i])
		}
		cellSeen[cell] = i
		b.timeYear[i] = yi
		b.timeSeason[i] = si
	}
	return nil
}

func (b *bucketer) build() (*dataset.Dataset, error) {
	out := dataset.New()
	out.Attrs().Merge(b.ds.Attrs())

	for _, name := range b.ds.VarNames() {
		v, _ := b.ds.Var(name)
		axis := v.DimIndex("time")
		if axis < 0 {
			if err := out.AddVar(name, v.Clone()); err != nil {
				return nil, fmt.Errorf("seasonal: %w", err)
			}
			continue
		}
		if err := out.AddVar(name, b.bucketVar(v, axis)); err != nil {
			return nil, fmt.Errorf("seasonal: %w", err)
		}
	}

	cal := b.times[0].Cal
	yearDates := make([]cftime.Date, len(b.years))
	for i, y := range b.years {
		yearDates[i] = cftime.Date{Year: y, Month: 1, Day: 1, Cal: cal}
	}
	timeCoord := dataset.NewTimeCoord("time", "time", yearDates)
	if old, ok := b.ds.Coord("time"); ok {
		timeCoord.Attrs = old.Attrs.Clone()
	}
	seasonCoord := dataset.NewStringCoord(b.o.NewDim, b.o.NewDim, b.labels)

	for _, cname := range b.ds.CoordNames() {
		c, _ := b.ds.Coord(cname)
		if c.Dim == "time" {
			continue // replaced by the yearly axis, or unrepresentable
		}
		if err := out.SetCoord(c.Clone()); err != nil {
			return nil, fmt.Errorf("seasonal: %w", err)
		}
	}
	if err := out.SetCoord(timeCoord); err != nil {
		return nil, fmt.Errorf("seasonal: %w", err)
	}
	if err := out.SetCoord(seasonCoord); err != nil {
		return nil, fmt.Errorf("seasonal: %w", err)
	}

	b.o.Logger.Debug("unstacked time into seasons",
		zap.Int("years", len(b.years)),
		zap.Strings("seasons", b.labels))
	return out, nil
}

// bucketVar scatters one variable into (kept dims..., time, season).
func (b *bucketer) bucketVar(v *dataset.Variable, axis int) *dataset.Variable {
	var keptDims []string
	var keptSizes []int
	for i, d := range v.Dims {
		if i != axis {
			keptDims = append(keptDims, d)
			keptSizes = append(keptSizes, v.Data.Shape[i])
		}
	}
	outDims := append(append([]string(nil), keptDims...), "time", b.o.NewDim)
	outShape := append(append([]int(nil), keptSizes...), len(b.years), len(b.labels))

	data := sparse.ZerosDense(outShape...)
	for i := range data.Elements {
		data.Elements[i] = math.NaN()
	}
	outStrides := dataset.Strides(outShape)

	for flat, x := range v.Data.Elements {
		idx := dataset.Unravel(flat, v.Data.Shape)
		t := idx[axis]
		outFlat := 0
		pos := 0
		for i, j := range idx {
			if i == axis {
				continue
			}
			outFlat += j * outStrides[pos]
			pos++
		}
		outFlat += b.timeYear[t] * outStrides[pos]
		outFlat += b.timeSeason[t] * outStrides[pos+1]
		data.Elements[outFlat] = x
	}

	return &dataset.Variable{Dims: outDims, Data: data, Attrs: v.Attrs.Clone()}
}
