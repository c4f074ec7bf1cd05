package datagen_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Youssef-Bakr/xscen/catalog"
	"github.com/Youssef-Bakr/xscen/cftime"
	"github.com/Youssef-Bakr/xscen/datagen"
	"github.com/Youssef-Bakr/xscen/dataset"
)

func jan1(cal cftime.Calendar) cftime.Date {
	return cftime.Date{Year: 2000, Month: 1, Day: 1, Cal: cal}
}

// TestBuild_GridTimeField assembles the canonical fixture and checks the
// axes and, with noise off, the exact field values.
func TestBuild_GridTimeField(t *testing.T) {
	ds, err := datagen.Build(
		[]datagen.Option{datagen.WithNoise(0)},
		datagen.Grid(3, 4),
		datagen.DailyTime(jan1(cftime.NoLeap), 5),
		datagen.Field("tas", "K", "time", "lat", "lon"),
	)
	require.NoError(t, err)

	lat, ok := ds.Coord("lat")
	require.True(t, ok)
	assert.Equal(t, []float64{45, 46, 47}, lat.Floats)
	assert.Equal(t, "degrees_north", lat.Attrs.Value("units"))
	lon, ok := ds.Coord("lon")
	require.True(t, ok)
	assert.Equal(t, []float64{-75, -74, -73, -72}, lon.Floats)

	times, ok := ds.Times()
	require.True(t, ok)
	require.Len(t, times, 5)
	assert.Equal(t, cftime.Date{Year: 2000, Month: 1, Day: 5, Cal: cftime.NoLeap}, times[4])

	v, ok := ds.Var("tas")
	require.True(t, ok)
	assert.Equal(t, []string{"time", "lat", "lon"}, v.Dims)
	assert.Equal(t, []int{3, 4}, v.Data.Shape[1:])
	assert.Equal(t, "K", v.Units())

	// Noise off: base, plus the day-of-year sinusoid, plus 0.1 per grid
	// index. January 1 sits at phase zero.
	assert.InDelta(t, 288.0, v.Data.Get(0, 0, 0), 1e-12)
	assert.InDelta(t, 288.3, v.Data.Get(0, 1, 2), 1e-12)
	day3 := 288 + 5*math.Sin(2*math.Pi*2.0/365)
	assert.InDelta(t, day3, v.Data.Get(2, 0, 0), 1e-12)
}

// TestBuild_Deterministic: one seed, one dataset.
func TestBuild_Deterministic(t *testing.T) {
	build := func(seed int64) *dataset.Dataset {
		ds, err := datagen.Build(
			[]datagen.Option{datagen.WithSeed(seed)},
			datagen.Grid(4, 4),
			datagen.DailyTime(jan1(cftime.Standard), 10),
			datagen.Field("pr", "mm/d", "time", "lat", "lon"),
			datagen.Ocean(0.4),
		)
		require.NoError(t, err)
		return ds
	}
	a, _ := build(11).Var("pr")
	b, _ := build(11).Var("pr")
	c, _ := build(12).Var("pr")
	assert.Equal(t, a.Data.Elements, b.Data.Elements)
	assert.NotEqual(t, a.Data.Elements, c.Data.Elements)
}

// TestOcean_MaskIsFixed: the drowned cells are shared by every gridded
// variable and constant along time; a variable without the grid dims is
// untouched.
func TestOcean_MaskIsFixed(t *testing.T) {
	ds, err := datagen.Build(
		[]datagen.Option{datagen.WithSeed(3)},
		datagen.Grid(5, 5),
		datagen.DailyTime(jan1(cftime.NoLeap), 4),
		datagen.Field("tas", "K", "time", "lat", "lon"),
		datagen.Field("pr", "mm", "time", "lat", "lon"),
		datagen.Field("gmt", "K", "time"),
		datagen.Ocean(0.5),
	)
	require.NoError(t, err)

	tas, _ := ds.Var("tas")
	pr, _ := ds.Var("pr")
	drowned := 0
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			cell := math.IsNaN(tas.Data.Get(0, i, j))
			if cell {
				drowned++
			}
			for k := 0; k < 4; k++ {
				assert.Equal(t, cell, math.IsNaN(tas.Data.Get(k, i, j)))
				assert.Equal(t, cell, math.IsNaN(pr.Data.Get(k, i, j)))
			}
		}
	}
	assert.Greater(t, drowned, 0, "half the 25 cells should drown")
	assert.Less(t, drowned, 25)

	gmt, _ := ds.Var("gmt")
	for _, x := range gmt.Data.Elements {
		assert.False(t, math.IsNaN(x), "no grid dims, no ocean")
	}
}

// TestOcean_Extremes: frac 0 drowns nothing, frac 1 everything.
func TestOcean_Extremes(t *testing.T) {
	for _, tc := range []struct {
		frac float64
		wet  bool
	}{{0, false}, {1, true}} {
		ds, err := datagen.Build(nil,
			datagen.Grid(2, 2),
			datagen.DailyTime(jan1(cftime.NoLeap), 2),
			datagen.Field("tas", "K", "time", "lat", "lon"),
			datagen.Ocean(tc.frac),
		)
		require.NoError(t, err)
		v, _ := ds.Var("tas")
		for _, x := range v.Data.Elements {
			assert.Equal(t, tc.wet, math.IsNaN(x))
		}
	}
}

// TestMonthlyTime normalizes to month starts and crosses year boundaries.
func TestMonthlyTime(t *testing.T) {
	start := cftime.Date{Year: 2001, Month: 11, Day: 15, Cal: cftime.Cal360Day}
	ds, err := datagen.Build(nil, datagen.MonthlyTime(start, 3))
	require.NoError(t, err)
	times, ok := ds.Times()
	require.True(t, ok)
	assert.Equal(t, []cftime.Date{
		{Year: 2001, Month: 11, Day: 1, Cal: cftime.Cal360Day},
		{Year: 2001, Month: 12, Day: 1, Cal: cftime.Cal360Day},
		{Year: 2002, Month: 1, Day: 1, Cal: cftime.Cal360Day},
	}, times)
}

// TestCatalog stamps the preset, applies overrides and feeds GenerateID.
func TestCatalog(t *testing.T) {
	ds, err := datagen.Build(nil, datagen.Catalog(map[string]string{
		"domain":        "QC",
		"driving_model": "CanESM5",
		"institution":   "",
	}))
	require.NoError(t, err)

	assert.Equal(t, "CMIP6", ds.Attrs().Value("cat:mip_era"))
	assert.Equal(t, "QC", ds.Attrs().Value("cat:domain"))
	assert.Equal(t, "CanESM5", ds.Attrs().Value("cat:driving_model"))
	assert.False(t, ds.Attrs().Has("cat:institution"), "empty override drops the column")

	id, err := catalog.GenerateID(ds)
	require.NoError(t, err)
	assert.Equal(t, "CMIP6_ScenarioMIP_CanESM5_CLIM-1_ssp245_r1i1p1f1_QC", id)
}

// TestBuild_Errors walks the failure modes.
func TestBuild_Errors(t *testing.T) {
	_, err := datagen.Build(nil, datagen.Grid(0, 2))
	assert.ErrorIs(t, err, datagen.ErrSize)

	_, err = datagen.Build(nil, datagen.DailyTime(cftime.Date{Year: 2000, Month: 13, Day: 1}, 3))
	assert.ErrorIs(t, err, datagen.ErrDate)

	_, err = datagen.Build(nil, datagen.MonthlyTime(jan1(cftime.NoLeap), 0))
	assert.ErrorIs(t, err, datagen.ErrSize)

	_, err = datagen.Build(nil, datagen.Field("tas", "K", "time"))
	assert.ErrorIs(t, err, datagen.ErrDim)

	_, err = datagen.Build(nil, datagen.Grid(2, 2), datagen.Field("", "K", "lat"))
	assert.ErrorIs(t, err, datagen.ErrName)

	_, err = datagen.Build(nil, datagen.Grid(2, 2), datagen.Field("tas", "K"))
	assert.ErrorIs(t, err, datagen.ErrDim)

	_, err = datagen.Build(nil, datagen.Ocean(0.5))
	assert.ErrorIs(t, err, datagen.ErrDim)

	_, err = datagen.Build(nil, datagen.Grid(2, 2), datagen.Ocean(1.5))
	assert.ErrorIs(t, err, datagen.ErrFraction)

	_, err = datagen.Build([]datagen.Option{datagen.WithNoise(-1)}, datagen.Grid(2, 2))
	assert.ErrorIs(t, err, datagen.ErrOptionViolation)

	_, err = datagen.Build([]datagen.Option{datagen.WithLatRange(45, 0)}, datagen.Grid(2, 2))
	assert.ErrorIs(t, err, datagen.ErrOptionViolation)
}
