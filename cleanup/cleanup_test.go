package cleanup_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Youssef-Bakr/xscen/cftime"
	"github.com/Youssef-Bakr/xscen/cleanup"
	"github.com/Youssef-Bakr/xscen/dataset"
	"github.com/Youssef-Bakr/xscen/ncio"
	"github.com/Youssef-Bakr/xscen/stack"
)

// pipeFixture builds a two-variable dataset on a noleap Feb 27 to Mar 1
// 2000 axis: tas rides time alone, pr has an extra x row that is NaN
// at every stamp (an ocean point).
func pipeFixture(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds := dataset.New()
	times := []cftime.Date{
		{Year: 2000, Month: 2, Day: 27, Cal: cftime.NoLeap},
		{Year: 2000, Month: 2, Day: 28, Cal: cftime.NoLeap},
		{Year: 2000, Month: 3, Day: 1, Cal: cftime.NoLeap},
	}

	tasData := sparse.ZerosDense(3)
	copy(tasData.Elements, []float64{300, 301, 302})
	tas, err := dataset.NewVariable([]string{"time"}, tasData)
	require.NoError(t, err)
	tas.Attrs.Set("units", "K")
	tas.Attrs.Set("standard_name", "air_temperature")
	require.NoError(t, ds.AddVar("tas", tas))

	prData := sparse.ZerosDense(2, 3)
	copy(prData.Elements, []float64{1, 2, 3, math.NaN(), math.NaN(), math.NaN()})
	pr, err := dataset.NewVariable([]string{"x", "time"}, prData)
	require.NoError(t, err)
	pr.Attrs.Set("units", "mm")
	require.NoError(t, ds.AddVar("pr", pr))

	require.NoError(t, ds.SetCoord(dataset.NewTimeCoord("time", "time", times)))
	require.NoError(t, ds.SetCoord(dataset.NewFloatCoord("x", "x", []float64{10, 20})))

	ds.Attrs().Set("cat:source", "CRCM5")
	ds.Attrs().Set("cat:domain", "QC")
	ds.Attrs().Set("cat:date_start", "2000-02-27")
	ds.Attrs().Set("title", "raw")
	return ds
}

// dailyDS is a one-variable daily series in the given calendar.
func dailyDS(t *testing.T, start cftime.Date, n int) *dataset.Dataset {
	t.Helper()
	ds := dataset.New()
	times := make([]cftime.Date, n)
	d := start
	data := sparse.ZerosDense(n)
	for i := 0; i < n; i++ {
		times[i] = d
		data.Elements[i] = float64(i)
		d = d.AddDays(1)
	}
	v, err := dataset.NewVariable([]string{"time"}, data)
	require.NoError(t, err)
	require.NoError(t, ds.AddVar("tas", v))
	require.NoError(t, ds.SetCoord(dataset.NewTimeCoord("time", "time", times)))
	return ds
}

func TestMatchAttr(t *testing.T) {
	assert.True(t, cleanup.MatchAttr("cell*", "has_cell_here"))
	assert.True(t, cleanup.MatchAttr("^cat:", "cat:domain"))
	assert.True(t, cleanup.MatchAttr("exact", "exact"))
	assert.False(t, cleanup.MatchAttr("exact", "other"))
	assert.False(t, cleanup.MatchAttr("^cat:", "not_cat:domain"))
	assert.True(t, cleanup.MatchAttr("*", "anything"))
	assert.False(t, cleanup.MatchAttr("", "anything"))
}

func TestApply_NoConfig(t *testing.T) {
	ds := pipeFixture(t)
	out, err := cleanup.Apply(ds, nil)
	require.NoError(t, err)

	// Same content, independent copy.
	tas, _ := out.Var("tas")
	assert.Equal(t, []float64{300, 301, 302}, tas.Data.Elements)
	tas.Data.Elements[0] = -1
	orig, _ := ds.Var("tas")
	assert.Equal(t, 300.0, orig.Data.Elements[0])

	_, err = cleanup.Apply(nil, nil)
	assert.ErrorIs(t, err, cleanup.ErrNilDataset)
}

func TestApply_UnitsAndRound(t *testing.T) {
	ds := pipeFixture(t)
	out, err := cleanup.Apply(ds, &cleanup.Config{
		VariablesAndUnits: map[string]string{"tas": "degC"},
		RoundVar:          map[string]int{"tas": 2},
	})
	require.NoError(t, err)

	tas, _ := out.Var("tas")
	assert.InDelta(t, 26.85, tas.Data.Elements[0], 1e-9)
	assert.Equal(t, "degC", tas.Attrs.Value("units"))
	assert.Equal(t, "air_temperature", tas.Attrs.Value("standard_name"))

	orig, _ := ds.Var("tas")
	assert.Equal(t, 300.0, orig.Data.Elements[0], "input untouched")
}

// TestApply_CalendarMissing runs the full second stage: conversion to
// the standard calendar inserts Feb 29, the sentinel cells are repaired
// per variable, and the all-NaN ocean row stays all-NaN.
func TestApply_CalendarMissing(t *testing.T) {
	ds := pipeFixture(t)
	out, err := cleanup.Apply(ds, &cleanup.Config{
		ConvertCalendar: &cleanup.CalendarBlock{Target: "standard"},
		MissingByVar: map[string]cleanup.MissingPolicy{
			"tas": {Interpolate: true},
			"pr":  {Fill: -1},
		},
	})
	require.NoError(t, err)

	times, ok := out.Times()
	require.True(t, ok)
	require.Len(t, times, 4)
	assert.Equal(t, "2000-02-29", times[2].String())

	tas, _ := out.Var("tas")
	assert.Equal(t, []float64{300, 301, 301.5, 302}, tas.Data.Elements,
		"inserted day linearly interpolated in time")
	assert.Equal(t, "K", tas.Attrs.Value("units"))

	pr, _ := out.Var("pr")
	assert.Equal(t, []float64{1, 2, -1, 3}, pr.Data.Elements[:4],
		"inserted day filled with the policy value")
	for i, x := range pr.Data.Elements[4:] {
		assert.True(t, math.IsNaN(x), "ocean cell %d must stay NaN", i)
	}
}

func TestApply_CalendarMissing_Coverage(t *testing.T) {
	ds := pipeFixture(t)
	_, err := cleanup.Apply(ds, &cleanup.Config{
		ConvertCalendar: &cleanup.CalendarBlock{Target: "standard"},
		MissingByVar: map[string]cleanup.MissingPolicy{
			"tas": {Interpolate: true},
		},
	})
	require.ErrorIs(t, err, cleanup.ErrMissingPolicy)
	assert.Contains(t, err.Error(), "pr")
}

// TestApply_Calendar360Default: a 360-day source defaults align_on to
// the random mode; an explicit mode overrides it.
func TestApply_Calendar360Default(t *testing.T) {
	ds := dailyDS(t, cftime.Date{Year: 2001, Month: 1, Day: 1, Cal: cftime.Cal360Day}, 360)
	seed := int64(5)

	out, err := cleanup.Apply(ds, &cleanup.Config{
		ConvertCalendar: &cleanup.CalendarBlock{Target: "noleap", Seed: &seed},
	})
	require.NoError(t, err)
	times, _ := out.Times()
	assert.Len(t, times, 360, "random alignment keeps every source day")

	out, err = cleanup.Apply(ds, &cleanup.Config{
		ConvertCalendar: &cleanup.CalendarBlock{Target: "noleap", AlignOn: "date"},
	})
	require.NoError(t, err)
	times, _ = out.Times()
	assert.Len(t, times, 358, "date alignment drops Feb 29 and 30")

	_, err = cleanup.Apply(ds, &cleanup.Config{
		ConvertCalendar: &cleanup.CalendarBlock{Target: "noleap", AlignOn: "sideways"},
	})
	assert.ErrorIs(t, err, cleanup.ErrConfig)

	_, err = cleanup.Apply(ds, &cleanup.Config{
		ConvertCalendar: &cleanup.CalendarBlock{Target: "marsian"},
	})
	assert.ErrorIs(t, err, cleanup.ErrConfig)
}

// TestApply_MaybeUnstack stacks a grid, then lets the pipeline restore
// it and resolve the rechunk hint.
func TestApply_MaybeUnstack(t *testing.T) {
	ds := dataset.New()
	times := []cftime.Date{
		{Year: 2000, Month: 1, Day: 1, Cal: cftime.NoLeap},
		{Year: 2000, Month: 1, Day: 2, Cal: cftime.NoLeap},
	}
	data := sparse.ZerosDense(2, 2, 1)
	copy(data.Elements, []float64{1, 2, 3, 4})
	v, err := dataset.NewVariable([]string{"time", "y", "x"}, data)
	require.NoError(t, err)
	require.NoError(t, ds.AddVar("tas", v))
	require.NoError(t, ds.SetCoord(dataset.NewTimeCoord("time", "time", times)))
	require.NoError(t, ds.SetCoord(dataset.NewFloatCoord("y", "y", []float64{45, 46})))
	require.NoError(t, ds.SetCoord(dataset.NewFloatCoord("x", "x", []float64{10})))

	mask, err := dataset.NewMask([]string{"y", "x"}, []int{2, 1})
	require.NoError(t, err)
	mask.Values[0], mask.Values[1] = true, true
	stacked, err := stack.StackDropNaNs(ds, mask)
	require.NoError(t, err)

	out, err := cleanup.Apply(stacked, &cleanup.Config{
		MaybeUnstack: &cleanup.UnstackBlock{
			Stacked: true,
			Rechunk: map[string]any{"time": -1},
		},
	})
	require.NoError(t, err)

	assert.True(t, out.HasDim("y"))
	assert.True(t, out.HasDim("x"))
	tas, _ := out.Var("tas")
	assert.Equal(t, []float64{1, 2, 3, 4}, tas.Data.Elements)
	assert.Equal(t, map[string]int{"time": 2}, out.Chunks(),
		"-1 resolves to the full axis length")

	// Stacked false passes through untouched.
	same, err := cleanup.Apply(stacked, &cleanup.Config{
		MaybeUnstack: &cleanup.UnstackBlock{Stacked: false},
	})
	require.NoError(t, err)
	assert.True(t, same.HasDim("loc"))
}

func TestApply_CommonAttrs_Live(t *testing.T) {
	ds := pipeFixture(t)
	other := dataset.New()
	other.Attrs().Set("cat:source", "CRCM5")
	other.Attrs().Set("cat:domain", "ARC")
	other.Attrs().Set("cat:date_start", "2000-02-27")
	other.Attrs().Set("title", "raw")

	out, err := cleanup.Apply(ds, &cleanup.Config{
		CommonDatasets: []*dataset.Dataset{other},
	})
	require.NoError(t, err)

	assert.False(t, out.Attrs().Has("cat:domain"), "differing value dropped")
	assert.False(t, out.Attrs().Has("cat:date_start"), "date range always dropped")
	assert.Equal(t, "raw", out.Attrs().Value("title"))
	assert.Equal(t, "CRCM5", out.Attrs().Value("cat:source"))
	assert.Equal(t, "CRCM5", out.Attrs().Value("cat:id"),
		"id regenerated from the surviving catalog attrs")
}

func TestApply_CommonAttrs_Path(t *testing.T) {
	ds := pipeFixture(t)

	global := dataset.NewAttrs()
	global.Set("cat:source", "CRCM5")
	global.Set("title", "other title")
	path := filepath.Join(t.TempDir(), "other.nc")
	lat := dataset.NewFloatCoord("lat", "lat", []float64{1})
	require.NoError(t, ncio.WriteCoords(path, []*dataset.Coord{lat}, global))

	out, err := cleanup.Apply(ds, &cleanup.Config{
		CommonAttrsOnly: []string{path},
	})
	require.NoError(t, err)

	assert.Equal(t, "CRCM5", out.Attrs().Value("cat:source"))
	assert.False(t, out.Attrs().Has("title"), "value differs in the file")
	assert.False(t, out.Attrs().Has("cat:domain"), "absent from the file")

	_, err = cleanup.Apply(ds, &cleanup.Config{
		CommonAttrsOnly: []string{filepath.Join(t.TempDir(), "absent.nc")},
	})
	require.Error(t, err)
}

func TestApply_AttrStages(t *testing.T) {
	ds := pipeFixture(t)
	out, err := cleanup.Apply(ds, &cleanup.Config{
		ToLevel: "final",
		AttrsToRemove: map[string][]string{
			"global": {"title"},
			"tas":    {"standard*"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "final", out.Attrs().Value("cat:processing_level"))
	assert.False(t, out.Attrs().Has("title"))
	tas, _ := out.Var("tas")
	assert.False(t, tas.Attrs.Has("standard_name"))
	assert.Equal(t, "K", tas.Attrs.Value("units"))

	_, err = cleanup.Apply(ds, &cleanup.Config{
		AttrsToRemove: map[string][]string{"nosuch": {"a"}},
	})
	assert.ErrorIs(t, err, dataset.ErrNoSuchVar)
}

func TestApply_RemoveAllAttrsExcept(t *testing.T) {
	ds := pipeFixture(t)
	out, err := cleanup.Apply(ds, &cleanup.Config{
		RemoveAllAttrsExcept: map[string][]string{
			"global": {"^cat:"},
			"pr":     {"units"},
		},
	})
	require.NoError(t, err)

	assert.False(t, out.Attrs().Has("title"))
	assert.True(t, out.Attrs().Has("cat:source"))
	assert.True(t, out.Attrs().Has("cat:date_start"))
	pr, _ := out.Var("pr")
	assert.Equal(t, "mm", pr.Attrs.Value("units"))
}

func TestApply_AddAttrs(t *testing.T) {
	ds := pipeFixture(t)
	out, err := cleanup.Apply(ds, &cleanup.Config{
		AddAttrs: map[string]map[string]string{
			"global": {"history": "cleaned"},
			"tas":    {"note": "bias adjusted"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "cleaned", out.Attrs().Value("history"))
	tas, _ := out.Var("tas")
	assert.Equal(t, "bias adjusted", tas.Attrs.Value("note"))

	_, err = cleanup.Apply(ds, &cleanup.Config{
		AddAttrs: map[string]map[string]string{"nosuch": {"a": "b"}},
	})
	assert.ErrorIs(t, err, dataset.ErrNoSuchVar)
}

func TestApply_ChangeAttrPrefix(t *testing.T) {
	ds := pipeFixture(t)
	out, err := cleanup.Apply(ds, &cleanup.Config{ChangeAttrPrefix: "ds:"})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"ds:source", "ds:domain", "ds:date_start", "title"},
		out.Attrs().Keys(), "rename keeps positions")
	assert.Equal(t, "CRCM5", out.Attrs().Value("ds:source"))
	assert.False(t, out.Attrs().Has("cat:source"))
}

// TestApply_StageOrder: to_level writes before the removal stages run,
// and add_attrs lands before the prefix rewrite.
func TestApply_StageOrder(t *testing.T) {
	ds := pipeFixture(t)
	out, err := cleanup.Apply(ds, &cleanup.Config{
		ToLevel:          "final",
		AttrsToRemove:    map[string][]string{"global": {"^cat:processing"}},
		AddAttrs:         map[string]map[string]string{"global": {"cat:extra": "yes"}},
		ChangeAttrPrefix: "ds:",
	})
	require.NoError(t, err)

	assert.False(t, out.Attrs().Has("ds:processing_level"),
		"level set in stage 6 is removable in stage 7")
	assert.Equal(t, "yes", out.Attrs().Value("ds:extra"),
		"attr added in stage 9 gets its prefix rewritten in stage 10")
}

func TestLoadConfig(t *testing.T) {
	body := `
variables_and_units:
  tas: degC
convert_calendar:
  target: noleap
  align_on: date
  seed: 12
missing_by_var:
  tas: interpolate
  pr: -9.0
maybe_unstack:
  stack_drop_nans: true
  coords: /data/{domain}_{shape}.nc
  rechunk:
    time: 2year
round_var:
  tas: 2
to_level: final
attrs_to_remove:
  global: ["note", "cell*"]
add_attrs:
  global:
    title: cleaned
change_attr_prefix: "ds:"
`
	path := filepath.Join(t.TempDir(), "cleanup.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := cleanup.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"tas": "degC"}, cfg.VariablesAndUnits)
	require.NotNil(t, cfg.ConvertCalendar)
	assert.Equal(t, "noleap", cfg.ConvertCalendar.Target)
	assert.Equal(t, "date", cfg.ConvertCalendar.AlignOn)
	require.NotNil(t, cfg.ConvertCalendar.Seed)
	assert.Equal(t, int64(12), *cfg.ConvertCalendar.Seed)
	assert.True(t, cfg.MissingByVar["tas"].Interpolate)
	assert.Equal(t, -9.0, cfg.MissingByVar["pr"].Fill)
	require.NotNil(t, cfg.MaybeUnstack)
	assert.True(t, cfg.MaybeUnstack.Stacked)
	assert.Equal(t, "2year", cfg.MaybeUnstack.Rechunk["time"])
	assert.Equal(t, "final", cfg.ToLevel)
	assert.Equal(t, []string{"note", "cell*"}, cfg.AttrsToRemove["global"])
	assert.Equal(t, "ds:", cfg.ChangeAttrPrefix)
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := cleanup.LoadConfig(filepath.Join(dir, "absent.yml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("missing_by_var:\n  tas: nope\n"), 0o644))
	_, err = cleanup.LoadConfig(bad)
	assert.ErrorIs(t, err, cleanup.ErrConfig)

	mangled := filepath.Join(dir, "mangled.yml")
	require.NoError(t, os.WriteFile(mangled, []byte("{::"), 0o644))
	_, err = cleanup.LoadConfig(mangled)
	assert.ErrorIs(t, err, cleanup.ErrConfig)
}
