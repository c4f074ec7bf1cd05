package units

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/unit"

	"github.com/Youssef-Bakr/xscen/cftime"
	"github.com/Youssef-Bakr/xscen/dataset"
)

// Convert moves a single value between two dimensionally equal
// quantities.
func Convert(v float64, from, to Quantity) (float64, error) {
	if !sameDims(from.u.Dimensions(), to.u.Dimensions()) {
		return 0, fmt.Errorf("%w: %q vs %q", ErrIncompatible, from.text, to.text)
	}
	si := v*from.u.Value() + from.offset
	return (si - to.offset) / to.u.Value(), nil
}

// ChangeUnits converts the listed variables of ds to their target units
// and returns the converted copy. Variables absent from ds are skipped.
// The transform is chosen by the difference of the time exponents: zero
// converts directly, +1 treats the source as an integrated amount and
// divides by the per-step duration, -1 treats it as a rate and
// multiplies. Larger differences have no physical meaning and fail.
//
// The input dataset is not modified.
func ChangeUnits(ds *dataset.Dataset, targets map[string]string, opts ...Option) (*dataset.Dataset, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	o := apply(opts)
	out := ds.Clone()
	c := &converter{out: out, o: o}

	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := c.changeVar(name, targets[name]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// converter carries the per-call state, mainly the lazily computed time
// steps shared by all rate/amount transforms.
type converter struct {
	out  *dataset.Dataset
	o    Options
	secs []float64
}

func (c *converter) changeVar(name, target string) error {
	v, ok := c.out.Var(name)
	if !ok {
		c.o.Logger.Debug("unit change skipped, variable absent",
			zap.String("variable", name))
		return nil
	}
	src, ok := v.Attrs.Get("units")
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoUnits, name)
	}
	from, err := Parse(src)
	if err != nil {
		return fmt.Errorf("variable %q: %w", name, err)
	}
	to, err := Parse(target)
	if err != nil {
		return fmt.Errorf("variable %q: %w", name, err)
	}
	if from.Equal(to) {
		c.o.Logger.Debug("unit change skipped, units equal",
			zap.String("variable", name), zap.String("units", src))
		return nil
	}

	diff := from.TimeExponent() - to.TimeExponent()
	switch diff {
	case 0:
		if !sameDims(from.u.Dimensions(), to.u.Dimensions()) {
			return fmt.Errorf("%w: variable %q: %q vs %q",
				ErrIncompatible, name, src, target)
		}
		for i, x := range v.Data.Elements {
			if math.IsNaN(x) {
				continue
			}
			v.Data.Elements[i] = (x*from.u.Value() + from.offset - to.offset) / to.u.Value()
		}
	case 1, -1:
		if err := c.transform(name, v, from, to, diff); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: variable %q: %q and %q (temporal dimensionality mismatch)",
			ErrTransform, name, src, target)
	}

	v.Attrs.Set("units", target)
	c.o.Logger.Debug("converted units",
		zap.String("variable", name),
		zap.String("from", src),
		zap.String("to", target))
	return nil
}

// transform applies amount2rate (diff +1) or rate2amount (diff -1) using
// the per-step durations from the time coordinate.
func (c *converter) transform(name string, v *dataset.Variable, from, to Quantity, diff int) error {
	axis := v.DimIndex("time")
	if axis < 0 {
		return fmt.Errorf("%w: variable %q has no time dimension", ErrNoTime, name)
	}
	secs, err := c.stepSeconds()
	if err != nil {
		return err
	}

	adj := make(unit.Dimensions, len(from.u.Dimensions())+1)
	for d, e := range from.u.Dimensions() {
		adj[d] = e
	}
	adj[unit.TimeDim] -= diff
	if !sameDims(adj, to.u.Dimensions()) {
		return fmt.Errorf("%w: variable %q: %q vs %q",
			ErrIncompatible, name, from.text, to.text)
	}

	fromScale, toScale := from.u.Value(), to.u.Value()
	for flat, x := range v.Data.Elements {
		if math.IsNaN(x) {
			continue
		}
		t := dataset.Unravel(flat, v.Data.Shape)[axis]
		si := x * fromScale
		if diff > 0 {
			si /= secs[t] // integrated amount over the step becomes a rate
		} else {
			si *= secs[t] // rate integrated over the step becomes an amount
		}
		v.Data.Elements[flat] = si / toScale
	}
	return nil
}

// stepSeconds returns the forward-difference step durations of the time
// coordinate in seconds, last step repeated.
func (c *converter) stepSeconds() ([]float64, error) {
	if c.secs != nil {
		return c.secs, nil
	}
	times, ok := c.out.Times()
	if !ok || len(times) < 2 {
		return nil, fmt.Errorf("%w: need a time coordinate with at least two stamps", ErrNoTime)
	}
	secs := make([]float64, len(times))
	for i := 0; i < len(times)-1; i++ {
		days, err := cftime.DaysBetween(times[i], times[i+1])
		if err != nil {
			return nil, fmt.Errorf("units: %w", err)
		}
		secs[i] = float64(days)*86400 + float64(times[i+1].Sec-times[i].Sec)
	}
	secs[len(secs)-1] = secs[len(secs)-2]
	c.secs = secs
	return secs, nil
}
