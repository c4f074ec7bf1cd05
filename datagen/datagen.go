package datagen

import (
	"fmt"
	"math"
	"sort"

	"github.com/ctessum/sparse"

	"github.com/Youssef-Bakr/xscen/catalog"
	"github.com/Youssef-Bakr/xscen/cftime"
	"github.com/Youssef-Bakr/xscen/dataset"
)

// Builder applies one deterministic mutation to a dataset under
// construction. Builders run in call order and share the resolved options,
// including the generator, so the same options, seed and builder order
// always give an identical dataset.
type Builder func(ds *dataset.Dataset, o *Options) error

// Build resolves opts and applies the builders in order to a fresh
// dataset. The first builder error aborts the build.
func Build(opts []Option, builders ...Builder) (*dataset.Dataset, error) {
	o, err := apply(opts)
	if err != nil {
		return nil, err
	}
	ds := dataset.New()
	for _, b := range builders {
		if err := b(ds, &o); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// Grid adds "lat" and "lon" coordinates of the given sizes, with values
// placed by the lat/lon range options and the conventional CF attributes.
func Grid(nlat, nlon int) Builder {
	return func(ds *dataset.Dataset, o *Options) error {
		if nlat <= 0 || nlon <= 0 {
			return fmt.Errorf("%w: %dx%d grid", ErrSize, nlat, nlon)
		}
		lats := make([]float64, nlat)
		for i := range lats {
			lats[i] = o.LatStart + float64(i)*o.LatStep
		}
		lons := make([]float64, nlon)
		for j := range lons {
			lons[j] = o.LonStart + float64(j)*o.LonStep
		}
		lat := dataset.NewFloatCoord("lat", "lat", lats)
		lat.Attrs = dataset.FromPairs("units", "degrees_north", "standard_name", "latitude")
		lon := dataset.NewFloatCoord("lon", "lon", lons)
		lon.Attrs = dataset.FromPairs("units", "degrees_east", "standard_name", "longitude")
		if err := ds.SetCoord(lat); err != nil {
			return err
		}
		return ds.SetCoord(lon)
	}
}

// DailyTime adds a "time" coordinate of n consecutive days starting at
// start, in start's calendar.
func DailyTime(start cftime.Date, n int) Builder {
	return func(ds *dataset.Dataset, _ *Options) error {
		if n <= 0 {
			return fmt.Errorf("%w: %d days", ErrSize, n)
		}
		if !start.Valid() {
			return fmt.Errorf("%w: %v", ErrDate, start)
		}
		dates := make([]cftime.Date, n)
		for i := range dates {
			dates[i] = start.AddDays(i)
		}
		return ds.SetCoord(dataset.NewTimeCoord("time", "time", dates))
	}
}

// MonthlyTime adds a "time" coordinate of n month starts, beginning with
// the month of start.
func MonthlyTime(start cftime.Date, n int) Builder {
	return func(ds *dataset.Dataset, _ *Options) error {
		if n <= 0 {
			return fmt.Errorf("%w: %d months", ErrSize, n)
		}
		if !start.Valid() {
			return fmt.Errorf("%w: %v", ErrDate, start)
		}
		first := cftime.Date{Year: start.Year, Month: start.Month, Day: 1, Cal: start.Cal}
		dates := make([]cftime.Date, n)
		for i := range dates {
			dates[i] = first.AddMonths(i)
		}
		return ds.SetCoord(dataset.NewTimeCoord("time", "time", dates))
	}
}

// Field adds a data variable over dims: the base level, plus a seasonal
// sinusoid when one of the dims carries a time coordinate, plus the index
// ramp along the other dims, plus Gaussian noise. The units attribute is
// stamped as given. Every dim must already exist on the dataset.
func Field(name, units string, dims ...string) Builder {
	return func(ds *dataset.Dataset, o *Options) error {
		if name == "" {
			return ErrName
		}
		if len(dims) == 0 {
			return fmt.Errorf("%w: field %q has no dimensions", ErrDim, name)
		}
		shape := make([]int, len(dims))
		var times []cftime.Date
		timeAxis := -1
		for i, dim := range dims {
			size, ok := ds.DimSize(dim)
			if !ok {
				return fmt.Errorf("%w: %q", ErrDim, dim)
			}
			shape[i] = size
			if c, ok := ds.Coord(dim); ok && c.Kind == dataset.KindTime {
				times, timeAxis = c.Times, i
			}
		}
		data := sparse.ZerosDense(shape...)
		for flat := range data.Elements {
			idx := dataset.Unravel(flat, shape)
			v := o.Base
			for i, k := range idx {
				if i == timeAxis {
					d := times[k]
					frac := float64(d.DayOfYear()-1) / float64(d.Cal.DaysInYear(d.Year))
					v += o.Amplitude * math.Sin(2*math.Pi*frac)
					continue
				}
				v += o.Gradient * float64(k)
			}
			if o.Noise > 0 {
				v += o.Noise * o.rng.NormFloat64()
			}
			data.Elements[flat] = v
		}
		vr, err := dataset.NewVariable(dims, data)
		if err != nil {
			return err
		}
		if units != "" {
			vr.Attrs.Set("units", units)
		}
		return ds.AddVar(name, vr)
	}
}

// Ocean blanks a random fixed subset of lat/lon cells to NaN on every
// variable spanning both grid dimensions, the same cells across time and
// across variables. frac is the expected drowned share. Variables added
// by later builders are unaffected, so order Ocean after the fields it
// should touch.
func Ocean(frac float64) Builder {
	return func(ds *dataset.Dataset, o *Options) error {
		if frac < 0 || frac > 1 {
			return fmt.Errorf("%w: %v", ErrFraction, frac)
		}
		nlat, ok := ds.DimSize("lat")
		if !ok {
			return fmt.Errorf("%w: %q", ErrDim, "lat")
		}
		nlon, ok := ds.DimSize("lon")
		if !ok {
			return fmt.Errorf("%w: %q", ErrDim, "lon")
		}
		drowned := make([]bool, nlat*nlon)
		for i := range drowned {
			drowned[i] = o.rng.Float64() < frac
		}
		for _, name := range ds.VarNames() {
			v, _ := ds.Var(name)
			ilat, ilon := v.DimIndex("lat"), v.DimIndex("lon")
			if ilat < 0 || ilon < 0 {
				continue
			}
			for flat := range v.Data.Elements {
				idx := dataset.Unravel(flat, v.Data.Shape)
				if drowned[idx[ilat]*nlon+idx[ilon]] {
					v.Data.Elements[flat] = math.NaN()
				}
			}
		}
		return nil
	}
}

// catalogPreset is the conventional column set, in stamping order.
var catalogPreset = [][2]string{
	{"mip_era", "CMIP6"},
	{"activity", "ScenarioMIP"},
	{"institution", "PCC"},
	{"source", "CLIM-1"},
	{"experiment", "ssp245"},
	{"member", "r1i1p1f1"},
	{"domain", "testgrid"},
}

// Catalog stamps the conventional catalog attributes on the dataset's
// global attrs, then merges overrides by column name in sorted order. An
// override with an empty value drops the column.
func Catalog(overrides map[string]string) Builder {
	return func(ds *dataset.Dataset, _ *Options) error {
		for _, kv := range catalogPreset {
			ds.Attrs().Set(catalog.Prefix+kv[0], kv[1])
		}
		cols := make([]string, 0, len(overrides))
		for col := range overrides {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		for _, col := range cols {
			if v := overrides[col]; v == "" {
				ds.Attrs().Del(catalog.Prefix + col)
			} else {
				ds.Attrs().Set(catalog.Prefix+col, v)
			}
		}
		return nil
	}
}
