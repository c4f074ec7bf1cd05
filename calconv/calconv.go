package calconv

import (
	"fmt"
	"math"

	"github.com/ctessum/sparse"
	"go.uber.org/zap"

	"github.com/Youssef-Bakr/xscen/cftime"
	"github.com/Youssef-Bakr/xscen/dataset"
)

// GetCalendar returns the calendar of the dataset's time coordinate; ok is
// false when there is none.
func GetCalendar(ds *dataset.Dataset) (cftime.Calendar, bool) {
	if ds == nil {
		return cftime.Standard, false
	}
	return ds.Calendar()
}

// ConvertCalendar rebuilds ds on the target calendar. Timestamps with no
// target equivalent are dropped; under WithMissing the output axis is the
// full target date range at the source's inferred frequency, with absent
// rows set to the fill value. Daily data crossing a 360-day boundary
// needs WithAlignOn.
//
// The input dataset is not modified. Converting onto the calendar the
// data already uses returns a plain copy.
func ConvertCalendar(ds *dataset.Dataset, target cftime.Calendar, opts ...Option) (*dataset.Dataset, error) {
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
	source := times[0].Cal
	if source == target {
		return ds.Clone(), nil
	}
	c := &converter{ds: ds, o: o, times: times, source: source, target: target}
	if err := c.mapDates(); err != nil {
		return nil, err
	}
	if err := c.expandMissing(); err != nil {
		return nil, err
	}
	return c.build()
}

// converter carries the state of one conversion pass.
type converter struct {
	ds     *dataset.Dataset
	o      Options
	times  []cftime.Date
	source cftime.Calendar
	target cftime.Calendar

	kept   []int         // source indices that survive, ascending
	axis   []cftime.Date // output time axis
	srcIdx []int         // per output row -> source index, -1 = filled
}

// mapDates picks the date mapping and applies it, keeping the first
// occupant of any duplicate target slot.
func (c *converter) mapDates() error {
	f, ferr := cftime.InferFreq(c.times)
	daily := ferr == nil && f.Base == cftime.FreqDaily
	cross360 := (c.source == cftime.Cal360Day) != (c.target == cftime.Cal360Day)

	var mapDate func(cftime.Date) (cftime.Date, bool)
	switch {
	case cross360 && daily:
		switch c.o.Align {
		case AlignDate:
			mapDate = c.alignDate
		case AlignYear:
			mapDate = c.alignYear
		case AlignRandom:
			mapDate = newRandomAlign(c.o.rng, c.source, c.target).convert
		default:
			return fmt.Errorf("%w (%s to %s)", ErrAlign, c.source, c.target)
		}
	case ferr == nil && !daily:
		// Coarser than daily: clamp the day into the target month, so
		// month ends survive shorter months.
		mapDate = func(d cftime.Date) (cftime.Date, bool) {
			day := d.Day
			if m := c.target.DaysInMonth(d.Year, d.Month); day > m {
				day = m
			}
			return cftime.Date{Year: d.Year, Month: d.Month, Day: day, Sec: d.Sec, Cal: c.target}, true
		}
	default:
		mapDate = c.alignDate
	}

	var last cftime.Date
	for i, d := range c.times {
		nd, ok := mapDate(d)
		if !ok {
			continue
		}
		if len(c.kept) > 0 && !last.Before(nd) {
			continue // duplicate slot, first occupant wins
		}
		last = nd
		c.kept = append(c.kept, i)
		c.axis = append(c.axis, nd)
	}
	return nil
}

// expandMissing reindexes the converted axis onto the full target date
// range at the source frequency when WithMissing is set.
func (c *converter) expandMissing() error {
	c.srcIdx = make([]int, len(c.axis))
	copy(c.srcIdx, c.kept)
	if c.o.Missing == nil || len(c.axis) == 0 {
		return nil
	}
	f, err := cftime.InferFreq(c.times)
	if err != nil {
		return fmt.Errorf("calconv: missing insertion: %w", err)
	}
	full, err := cftime.Range(c.axis[0], c.axis[len(c.axis)-1], f)
	if err != nil {
		return fmt.Errorf("calconv: %w", err)
	}
	idx := make([]int, len(full))
	j := 0
	for i, d := range full {
		idx[i] = -1
		for j < len(c.axis) && c.axis[j].Before(d) {
			j++
		}
		if j < len(c.axis) && c.axis[j].Equal(d) {
			idx[i] = c.kept[j]
			j++
		}
	}
	c.o.Logger.Debug("inserted missing target dates",
		zap.Int("axis", len(full)),
		zap.Int("present", len(c.axis)))
	c.axis = full
	c.srcIdx = idx
	return nil
}

func (c *converter) build() (*dataset.Dataset, error) {
	out := dataset.New()
	out.Attrs().Merge(c.ds.Attrs())
	fill := math.NaN()
	if c.o.Missing != nil {
		fill = *c.o.Missing
	}

	for _, name := range c.ds.VarNames() {
		v, _ := c.ds.Var(name)
		axis := v.DimIndex("time")
		var err error
		if axis < 0 {
			err = out.AddVar(name, v.Clone())
		} else {
			err = out.AddVar(name, mapTimeAxis(v, axis, c.srcIdx, fill))
		}
		if err != nil {
			return nil, fmt.Errorf("calconv: %w", err)
		}
	}

	for _, cname := range c.ds.CoordNames() {
		co, _ := c.ds.Coord(cname)
		var err error
		switch {
		case co.Name == "time":
			continue // rebuilt below
		case co.Dim == "time":
			if c.o.Missing != nil {
				c.o.Logger.Debug("dropping time-riding coordinate",
					zap.String("coord", co.Name))
				continue
			}
			err = out.SetCoord(co.Take(c.kept, "time"))
		default:
			err = out.SetCoord(co.Clone())
		}
		if err != nil {
			return nil, fmt.Errorf("calconv: %w", err)
		}
	}

	tc := dataset.NewTimeCoord("time", "time", c.axis)
	if old, ok := c.ds.Coord("time"); ok {
		tc.Attrs = old.Attrs.Clone()
	}
	if err := out.SetCoord(tc); err != nil {
		return nil, fmt.Errorf("calconv: %w", err)
	}

	c.o.Logger.Debug("converted calendar",
		zap.String("source", c.source.String()),
		zap.String("target", c.target.String()),
		zap.Int("kept", len(c.kept)),
		zap.Int("dropped", len(c.times)-len(c.kept)))
	return out, nil
}

// mapTimeAxis rebuilds one variable on the output time axis: row j comes
// from source row srcIdx[j], or fill when srcIdx[j] is -1.
func mapTimeAxis(v *dataset.Variable, axis int, srcIdx []int, fill float64) *dataset.Variable {
	outShape := append([]int(nil), v.Data.Shape...)
	outShape[axis] = len(srcIdx)
	data := sparse.ZerosDense(outShape...)
	inStrides := dataset.Strides(v.Data.Shape)

	for flat := range data.Elements {
		idx := dataset.Unravel(flat, outShape)
		s := srcIdx[idx[axis]]
		if s < 0 {
			data.Elements[flat] = fill
			continue
		}
		in := 0
		for i, j := range idx {
			if i == axis {
				in += s * inStrides[i]
			} else {
				in += j * inStrides[i]
			}
		}
		data.Elements[flat] = v.Data.Elements[in]
	}

	return &dataset.Variable{
		Dims:  append([]string(nil), v.Dims...),
		Data:  data,
		Attrs: v.Attrs.Clone(),
	}
}
