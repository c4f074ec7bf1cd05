package seasonal_test

import (
	"fmt"

	"github.com/ctessum/sparse"

	"github.com/Youssef-Bakr/xscen/cftime"
	"github.com/Youssef-Bakr/xscen/dataset"
	"github.com/Youssef-Bakr/xscen/seasonal"
)

// ExampleUnstackDates reshapes a quarterly series into (year, season).
func ExampleUnstackDates() {
	ds := dataset.New()
	times := make([]cftime.Date, 0, 4)
	for _, ym := range [][2]int{{2000, 12}, {2001, 3}, {2001, 6}, {2001, 9}} {
		d, _ := cftime.New(ym[0], ym[1], 1, cftime.NoLeap)
		times = append(times, d)
	}
	data := sparse.ZerosDense(4)
	copy(data.Elements, []float64{1, 2, 3, 4})
	v, _ := dataset.NewVariable([]string{"time"}, data)
	_ = ds.AddVar("tas", v)
	_ = ds.SetCoord(dataset.NewTimeCoord("time", "time", times))

	out, _ := seasonal.UnstackDates(ds)

	season, _ := out.Coord("season")
	fmt.Println("seasons:", season.Strings)
	years, _ := out.Times()
	fmt.Println("years:", years[0].Year, years[1].Year)
	tas, _ := out.Var("tas")
	fmt.Println("grid:", tas.Data.Elements)
	// Output:
	// seasons: [DJF MAM JJA SON]
	// years: 2000 2001
	// grid: [1 NaN NaN NaN NaN 2 3 4]
}
