package dataset

import (
	"fmt"

	"github.com/ctessum/sparse"
)

// Variable is an n-dimensional float64 data array with named dimensions.
// Data is row-major; Dims[i] names axis i of Data.Shape.
type Variable struct {
	Dims  []string
	Data  *sparse.DenseArray
	Attrs *Attrs
}

// NewVariable builds a variable and checks that dims and data agree in
// rank. Dimension sizes are taken from the data shape.
func NewVariable(dims []string, data *sparse.DenseArray) (*Variable, error) {
	if data == nil {
		return nil, ErrNilVariable
	}
	if len(dims) != len(data.Shape) {
		return nil, fmt.Errorf("%w: %d dims for rank-%d data", ErrShape, len(dims), len(data.Shape))
	}
	return &Variable{Dims: append([]string(nil), dims...), Data: data, Attrs: NewAttrs()}, nil
}

// Filled builds a variable of the given shape with every element set to
// fill. It panics on a negative size (programmer error).
func Filled(dims []string, shape []int, fill float64) *Variable {
	if len(dims) != len(shape) {
		panic("dataset: Filled dims and shape disagree")
	}
	data := sparse.ZerosDense(shape...)
	if fill != 0 {
		for i := range data.Elements {
			data.Elements[i] = fill
		}
	}
	return &Variable{Dims: append([]string(nil), dims...), Data: data, Attrs: NewAttrs()}
}

// Units returns the variable's "units" attribute, or "".
func (v *Variable) Units() string { return v.Attrs.Value("units") }

// HasDim reports whether the variable spans the named dimension.
func (v *Variable) HasDim(name string) bool { return v.DimIndex(name) >= 0 }

// DimIndex returns the axis position of the named dimension, or -1.
func (v *Variable) DimIndex(name string) int {
	for i, d := range v.Dims {
		if d == name {
			return i
		}
	}
	return -1
}

// Size returns the total number of elements.
func (v *Variable) Size() int { return len(v.Data.Elements) }

// Clone returns a deep copy.
func (v *Variable) Clone() *Variable {
	return &Variable{
		Dims:  append([]string(nil), v.Dims...),
		Data:  v.Data.Copy(),
		Attrs: v.Attrs.Clone(),
	}
}
