package ncio_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Youssef-Bakr/xscen/cftime"
	"github.com/Youssef-Bakr/xscen/dataset"
	"github.com/Youssef-Bakr/xscen/ncio"
)

// TestWriteReadCoords_RoundTrip stores float and date axes with attributes
// and reads them back unchanged.
func TestWriteReadCoords_RoundTrip(t *testing.T) {
	lat := dataset.NewFloatCoord("lat", "lat", []float64{45.0, 45.5, 46.0})
	lat.Attrs.Set("units", "degrees_north")
	lat.Attrs.Set("original_shape", "3x2")
	lon := dataset.NewFloatCoord("lon", "lon", []float64{-73.5, -73.0})
	times := []cftime.Date{
		{Year: 2000, Month: 1, Day: 1, Cal: cftime.NoLeap},
		{Year: 2000, Month: 1, Day: 2, Cal: cftime.NoLeap},
		{Year: 2000, Month: 1, Day: 3, Cal: cftime.NoLeap},
	}
	tc := dataset.NewTimeCoord("time", "time", times)

	path := filepath.Join(t.TempDir(), "nested", "coords_3x2.nc")
	require.NoError(t, ncio.WriteCoords(path, []*dataset.Coord{lat, lon, tc}, nil),
		"write must create parent directories")

	ds, err := ncio.ReadCoords(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"lat", "lon", "time"}, ds.CoordNames())

	gotLat, ok := ds.Coord("lat")
	require.True(t, ok)
	assert.Equal(t, dataset.KindFloat, gotLat.Kind)
	assert.Equal(t, []float64{45.0, 45.5, 46.0}, gotLat.Floats)
	assert.Equal(t, "degrees_north", gotLat.Attrs.Value("units"))
	assert.Equal(t, "3x2", gotLat.Attrs.Value("original_shape"))

	gotTime, ok := ds.Coord("time")
	require.True(t, ok)
	require.Equal(t, dataset.KindTime, gotTime.Kind)
	assert.Equal(t, times, gotTime.Times, "calendar survives the days-since encoding")
	assert.False(t, gotTime.Attrs.Has("units"), "encoding attrs are stripped on read")
	assert.False(t, gotTime.Attrs.Has("calendar"))
}

// TestWriteCoords_Rejections covers the unstorable cases.
func TestWriteCoords_Rejections(t *testing.T) {
	dir := t.TempDir()

	err := ncio.WriteCoords(filepath.Join(dir, "empty.nc"), nil, nil)
	assert.ErrorIs(t, err, ncio.ErrNoCoords)

	season := dataset.NewStringCoord("season", "season", []string{"DJF", "MAM"})
	err = ncio.WriteCoords(filepath.Join(dir, "s.nc"), []*dataset.Coord{season}, nil)
	assert.ErrorIs(t, err, ncio.ErrCoordKind)

	a := dataset.NewFloatCoord("a", "x", []float64{1, 2})
	b := dataset.NewFloatCoord("b", "x", []float64{1, 2, 3})
	err = ncio.WriteCoords(filepath.Join(dir, "c.nc"), []*dataset.Coord{a, b}, nil)
	assert.ErrorIs(t, err, ncio.ErrDim)
}

// TestReadCoords_MissingFile surfaces the underlying open error.
func TestReadCoords_MissingFile(t *testing.T) {
	_, err := ncio.ReadCoords(filepath.Join(t.TempDir(), "absent.nc"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.nc")
}

// TestOpenAttrs reads global attributes without touching variable data.
func TestOpenAttrs(t *testing.T) {
	lat := dataset.NewFloatCoord("lat", "lat", []float64{1, 2})
	global := dataset.NewAttrs()
	global.Set("cat:domain", "QC")
	global.Set("title", "test grid")
	path := filepath.Join(t.TempDir(), "c.nc")
	require.NoError(t, ncio.WriteCoords(path, []*dataset.Coord{lat}, global))

	view, err := ncio.OpenAttrs(path)
	require.NoError(t, err)
	defer view.Close()

	got, ok := view.Get("coords")
	require.True(t, ok)
	assert.Equal(t, "lat", got)

	got, ok = view.Get("cat:domain")
	require.True(t, ok)
	assert.Equal(t, "QC", got)

	_, ok = view.Get("absent")
	assert.False(t, ok)
	assert.Equal(t, path, view.Path())
}
