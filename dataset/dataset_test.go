package dataset_test

import (
	"testing"

	"github.com/ctessum/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Youssef-Bakr/xscen/cftime"
	"github.com/Youssef-Bakr/xscen/dataset"
)

// TestDataset_AddVar registers dimensions from shapes and rejects size
// conflicts across variables.
func TestDataset_AddVar(t *testing.T) {
	ds := dataset.New()

	tas, err := dataset.NewVariable([]string{"time", "lat"}, sparse.ZerosDense(4, 3))
	require.NoError(t, err)
	require.NoError(t, ds.AddVar("tas", tas))

	size, ok := ds.DimSize("time")
	require.True(t, ok)
	assert.Equal(t, 4, size)

	pr, err := dataset.NewVariable([]string{"time"}, sparse.ZerosDense(5))
	require.NoError(t, err)
	err = ds.AddVar("pr", pr)
	assert.ErrorIs(t, err, dataset.ErrDimSize, "time already registered with size 4")

	assert.Equal(t, []string{"tas"}, ds.VarNames())
}

// TestDataset_VarNamesSorted guarantees deterministic iteration.
func TestDataset_VarNamesSorted(t *testing.T) {
	ds := dataset.New()
	for _, name := range []string{"zg", "tas", "pr"} {
		v, err := dataset.NewVariable([]string{"x"}, sparse.ZerosDense(2))
		require.NoError(t, err)
		require.NoError(t, ds.AddVar(name, v))
	}
	assert.Equal(t, []string{"pr", "tas", "zg"}, ds.VarNames())
}

// TestNewVariable_RankMismatch rejects dims that disagree with the data.
func TestNewVariable_RankMismatch(t *testing.T) {
	_, err := dataset.NewVariable([]string{"x"}, sparse.ZerosDense(2, 2))
	assert.ErrorIs(t, err, dataset.ErrShape)
	_, err = dataset.NewVariable([]string{"x"}, nil)
	assert.ErrorIs(t, err, dataset.ErrNilVariable)
}

// TestDataset_Coords covers registration, ordering and length checks.
func TestDataset_Coords(t *testing.T) {
	ds := dataset.New()
	require.NoError(t, ds.SetCoord(dataset.NewFloatCoord("lat", "lat", []float64{10, 20, 30})))
	require.NoError(t, ds.SetCoord(dataset.NewFloatCoord("lon", "lon", []float64{100, 110})))

	err := ds.SetCoord(dataset.NewFloatCoord("lat2", "lat", []float64{1}))
	assert.ErrorIs(t, err, dataset.ErrCoordLen)

	assert.Equal(t, []string{"lat", "lon"}, ds.CoordNames(), "insertion order")

	// Replacing keeps position.
	require.NoError(t, ds.SetCoord(dataset.NewFloatCoord("lat", "lat", []float64{11, 21, 31})))
	assert.Equal(t, []string{"lat", "lon"}, ds.CoordNames())

	require.True(t, ds.DropCoord("lat"))
	assert.Equal(t, []string{"lon"}, ds.CoordNames())
}

// TestDataset_TimesAndCalendar reads the time axis back with its calendar.
func TestDataset_TimesAndCalendar(t *testing.T) {
	ds := dataset.New()
	_, ok := ds.Times()
	assert.False(t, ok)

	times := []cftime.Date{
		{Year: 2000, Month: 1, Day: 1, Cal: cftime.NoLeap},
		{Year: 2000, Month: 1, Day: 2, Cal: cftime.NoLeap},
	}
	require.NoError(t, ds.SetCoord(dataset.NewTimeCoord("time", "time", times)))

	got, ok := ds.Times()
	require.True(t, ok)
	assert.Equal(t, times, got)

	cal, ok := ds.Calendar()
	require.True(t, ok)
	assert.Equal(t, cftime.NoLeap, cal)
}

// TestDataset_CloneIsDeep mutates the clone and checks isolation.
func TestDataset_CloneIsDeep(t *testing.T) {
	ds := dataset.New()
	v, err := dataset.NewVariable([]string{"x"}, sparse.ZerosDense(2))
	require.NoError(t, err)
	v.Data.Set(1.5, 0)
	require.NoError(t, ds.AddVar("tas", v))
	require.NoError(t, ds.SetCoord(dataset.NewFloatCoord("x", "x", []float64{0, 1})))
	ds.Attrs().Set("cat:domain", "QC")
	ds.SetChunks(map[string]int{"x": 1})

	cp := ds.Clone()
	cv, _ := cp.Var("tas")
	cv.Data.Set(9, 0)
	cc, _ := cp.Coord("x")
	cc.Floats[0] = 99
	cp.Attrs().Set("cat:domain", "other")

	ov, _ := ds.Var("tas")
	oc, _ := ds.Coord("x")
	assert.Equal(t, 1.5, ov.Data.Get(0))
	assert.Equal(t, 0.0, oc.Floats[0])
	assert.Equal(t, "QC", ds.Attrs().Value("cat:domain"))
	assert.Equal(t, map[string]int{"x": 1}, cp.Chunks())
}

// TestCoord_KindValidation rejects payloads under the wrong kind.
func TestCoord_KindValidation(t *testing.T) {
	bad := &dataset.Coord{
		Name: "x", Dim: "x", Kind: dataset.KindFloat,
		Floats:  []float64{1},
		Strings: []string{"a"},
	}
	err := dataset.New().SetCoord(bad)
	assert.ErrorIs(t, err, dataset.ErrKind)
}

// TestStridesUnravel pins the row-major convention.
func TestStridesUnravel(t *testing.T) {
	shape := []int{2, 3, 4}
	assert.Equal(t, []int{12, 4, 1}, dataset.Strides(shape))
	assert.Equal(t, []int{0, 0, 0}, dataset.Unravel(0, shape))
	assert.Equal(t, []int{1, 2, 3}, dataset.Unravel(23, shape))
	assert.Equal(t, []int{1, 0, 2}, dataset.Unravel(14, shape))
}
