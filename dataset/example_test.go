package dataset_test

import (
	"fmt"

	"github.com/ctessum/sparse"

	"github.com/Youssef-Bakr/xscen/dataset"
)

// ExampleAttrs shows the ordered attribute map: order follows first Set,
// updates stay in place, renames keep position.
func ExampleAttrs() {
	a := dataset.NewAttrs()
	a.Set("cat:domain", "QC")
	a.Set("cat:source", "CRCM5")
	a.Set("title", "daily tas")

	a.Set("cat:domain", "QC-11") // update, no move
	a.Rename("cat:source", "cat:driving_model")

	a.Range(func(k, v string) bool {
		fmt.Println(k, "=", v)
		return true
	})
	// Output:
	// cat:domain = QC-11
	// cat:driving_model = CRCM5
	// title = daily tas
}

// ExampleDataset builds a small dataset and reads a value back.
func ExampleDataset() {
	ds := dataset.New()

	data := sparse.ZerosDense(2, 3)
	data.Set(271.3, 1, 2)
	tas, err := dataset.NewVariable([]string{"time", "x"}, data)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	tas.Attrs.Set("units", "K")

	if err := ds.AddVar("tas", tas); err != nil {
		fmt.Println("error:", err)
		return
	}
	if err := ds.SetCoord(dataset.NewFloatCoord("x", "x", []float64{0, 50, 100})); err != nil {
		fmt.Println("error:", err)
		return
	}

	v, _ := ds.Var("tas")
	fmt.Println(v.Data.Get(1, 2), v.Units())
	// Output:
	// 271.3 K
}
