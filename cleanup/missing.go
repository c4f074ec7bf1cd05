package cleanup

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/Youssef-Bakr/xscen/calconv"
	"github.com/Youssef-Bakr/xscen/cftime"
	"github.com/Youssef-Bakr/xscen/dataset"
)

// convertCalendar is the pipeline's second stage. Points that are
// missing across the whole time axis are remembered per variable and
// forced back to missing after the conversion, so fixed land/ocean
// masks survive a calendar change that inserts values. With
// missing_by_var set the conversion marks inserted dates with the
// sentinel and repairMissing rewrites them afterwards.
func (p *pipeline) convertCalendar() error {
	blk := p.cfg.ConvertCalendar
	if blk == nil {
		return nil
	}
	target, err := cftime.ParseCalendar(blk.Target)
	if err != nil {
		return fmt.Errorf("%w: convert_calendar target: %v", ErrConfig, err)
	}

	type oceanMask struct {
		name string
		m    dataset.Mask
	}
	var masks []oceanMask
	for _, name := range p.out.VarNames() {
		v, _ := p.out.Var(name)
		if v.DimIndex("time") < 0 {
			continue
		}
		m, err := p.out.NullMaskOver(name, "time")
		if err != nil {
			return err
		}
		masks = append(masks, oceanMask{name, m})
	}

	useMissing := len(p.cfg.MissingByVar) > 0
	if useMissing {
		var uncovered []string
		for _, name := range p.out.VarNames() {
			if _, ok := p.cfg.MissingByVar[name]; !ok {
				uncovered = append(uncovered, name)
			}
		}
		if len(uncovered) > 0 {
			return fmt.Errorf("%w: uncovered: %s", ErrMissingPolicy, strings.Join(uncovered, ", "))
		}
	}

	align := blk.AlignOn
	if align == "" {
		if cal, ok := calconv.GetCalendar(p.out); ok && cal == cftime.Cal360Day {
			align = "random"
		}
	}
	opts := []calconv.Option{calconv.WithLogger(p.log)}
	if align != "" {
		mode, err := parseAlign(align)
		if err != nil {
			return err
		}
		opts = append(opts, calconv.WithAlignOn(mode))
	}
	if blk.Seed != nil {
		opts = append(opts, calconv.WithSeed(*blk.Seed))
	}
	if useMissing {
		opts = append(opts, calconv.WithMissing(sentinel))
	}

	p.log.Info("converting calendar",
		zap.String("target", target.String()),
		zap.String("align_on", align))
	out, err := calconv.ConvertCalendar(p.out, target, opts...)
	if err != nil {
		return err
	}
	p.out = out

	for _, om := range masks {
		if err := p.out.FillWhere(om.name, om.m, math.NaN()); err != nil {
			return err
		}
	}
	if !useMissing {
		return nil
	}
	return p.repairMissing()
}

func parseAlign(name string) (calconv.AlignMode, error) {
	switch name {
	case "date":
		return calconv.AlignDate, nil
	case "year":
		return calconv.AlignYear, nil
	case "random":
		return calconv.AlignRandom, nil
	default:
		return calconv.AlignNone, fmt.Errorf("%w: unknown align_on %q", ErrConfig, name)
	}
}

// repairMissing rewrites the sentinel cells left by the calendar
// conversion, per variable policy.
func (p *pipeline) repairMissing() error {
	times, ok := p.out.Times()
	if !ok {
		return nil
	}
	xs := make([]float64, len(times))
	for i, d := range times {
		days, err := cftime.DaysBetween(times[0], d)
		if err != nil {
			return err
		}
		xs[i] = float64(days) + float64(d.Sec-times[0].Sec)/86400
	}
	for _, name := range p.out.VarNames() {
		v, _ := p.out.Var(name)
		pol := p.cfg.MissingByVar[name]
		if !pol.Interpolate {
			filled := 0
			for i, x := range v.Data.Elements {
				if x == sentinel {
					v.Data.Elements[i] = pol.Fill
					filled++
				}
			}
			p.log.Debug("filled missing cells",
				zap.String("variable", name), zap.Int("cells", filled))
			continue
		}
		if v.DimIndex("time") < 0 {
			continue
		}
		interpolateOverTime(v, xs)
		p.log.Debug("interpolated missing cells", zap.String("variable", name))
	}
	return nil
}

// interpolateOverTime replaces sentinel cells with values interpolated
// linearly against the time coordinate, one series at a time. A gap
// touching either end of the axis has only one anchor and is left as
// NaN.
func interpolateOverTime(v *dataset.Variable, xs []float64) {
	axis := v.DimIndex("time")
	n := v.Data.Shape[axis]
	if n == 0 {
		return
	}
	step := dataset.Strides(v.Data.Shape)[axis]
	series := make([]float64, n)
	for base := range v.Data.Elements {
		if dataset.Unravel(base, v.Data.Shape)[axis] != 0 {
			continue
		}
		for t := 0; t < n; t++ {
			series[t] = v.Data.Elements[base+t*step]
		}
		for t, x := range series {
			if x == sentinel {
				series[t] = math.NaN()
			}
		}
		last := -1
		for t := 0; t < n; t++ {
			if math.IsNaN(series[t]) {
				continue
			}
			if last >= 0 && t-last > 1 {
				x0, y0 := xs[last], series[last]
				x1, y1 := xs[t], series[t]
				for k := last + 1; k < t; k++ {
					w := (xs[k] - x0) / (x1 - x0)
					series[k] = y0 + w*(y1-y0)
				}
			}
			last = t
		}
		for t := 0; t < n; t++ {
			v.Data.Elements[base+t*step] = series[t]
		}
	}
}
