package dataset

import (
	"fmt"
	"math"
)

// Mask is a boolean selection over a set of dimensions, row-major like the
// variables it selects from.
type Mask struct {
	Dims   []string
	Shape  []int
	Values []bool
}

// NewMask returns an all-false mask of the given shape.
func NewMask(dims []string, shape []int) (Mask, error) {
	if len(dims) != len(shape) {
		return Mask{}, fmt.Errorf("%w: %d dims for %d axes", ErrShape, len(dims), len(shape))
	}
	n := 1
	for _, s := range shape {
		if s < 0 {
			return Mask{}, fmt.Errorf("%w: negative size %d", ErrShape, s)
		}
		n *= s
	}
	return Mask{
		Dims:   append([]string(nil), dims...),
		Shape:  append([]int(nil), shape...),
		Values: make([]bool, n),
	}, nil
}

// MaskFromVar builds a mask over the variable's dimensions, true wherever
// the value is finite (not NaN and not infinite).
func MaskFromVar(ds *Dataset, name string) (Mask, error) {
	v, ok := ds.Var(name)
	if !ok {
		return Mask{}, fmt.Errorf("%w: %q", ErrNoSuchVar, name)
	}
	m, err := NewMask(v.Dims, v.Data.Shape)
	if err != nil {
		return Mask{}, err
	}
	for i, x := range v.Data.Elements {
		m.Values[i] = !math.IsNaN(x) && !math.IsInf(x, 0)
	}
	return m, nil
}

// Count returns the number of true cells.
func (m Mask) Count() int {
	n := 0
	for _, b := range m.Values {
		if b {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (m Mask) Clone() Mask {
	return Mask{
		Dims:   append([]string(nil), m.Dims...),
		Shape:  append([]int(nil), m.Shape...),
		Values: append([]bool(nil), m.Values...),
	}
}

// NullMaskOver builds a mask over the variable's dimensions minus dim,
// true where the variable is NaN at every position along dim. This is how
// permanently invalid points (ocean cells in land datasets) are told apart
// from transiently missing values.
func (d *Dataset) NullMaskOver(varName, dim string) (Mask, error) {
	v, ok := d.Var(varName)
	if !ok {
		return Mask{}, fmt.Errorf("%w: %q", ErrNoSuchVar, varName)
	}
	axis := v.DimIndex(dim)
	if axis < 0 {
		return Mask{}, fmt.Errorf("%w: %q on variable %q", ErrNoSuchDim, dim, varName)
	}
	keptDims := make([]string, 0, len(v.Dims)-1)
	keptShape := make([]int, 0, len(v.Dims)-1)
	for i, name := range v.Dims {
		if i != axis {
			keptDims = append(keptDims, name)
			keptShape = append(keptShape, v.Data.Shape[i])
		}
	}
	m, err := NewMask(keptDims, keptShape)
	if err != nil {
		return Mask{}, err
	}
	for i := range m.Values {
		m.Values[i] = true
	}
	outStrides := Strides(keptShape)
	for flat, x := range v.Data.Elements {
		if math.IsNaN(x) {
			continue
		}
		idx := Unravel(flat, v.Data.Shape)
		out := 0
		pos := 0
		for i, j := range idx {
			if i == axis {
				continue
			}
			out += j * outStrides[pos]
			pos++
		}
		m.Values[out] = false
	}
	return m, nil
}

// FillWhere sets the variable to fill at every position where the mask is
// true, broadcasting the mask over the variable's remaining dimensions.
// Every mask dimension must be spanned by the variable with the same size.
func (d *Dataset) FillWhere(varName string, m Mask, fill float64) error {
	v, ok := d.Var(varName)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoSuchVar, varName)
	}
	axes := make([]int, len(m.Dims))
	for i, dim := range m.Dims {
		axis := v.DimIndex(dim)
		if axis < 0 {
			return fmt.Errorf("%w: mask dimension %q on variable %q", ErrNoSuchDim, dim, varName)
		}
		if v.Data.Shape[axis] != m.Shape[i] {
			return fmt.Errorf("%w: mask dimension %q", ErrDimSize, dim)
		}
		axes[i] = axis
	}
	maskStrides := Strides(m.Shape)
	for flat := range v.Data.Elements {
		idx := Unravel(flat, v.Data.Shape)
		mi := 0
		for i, axis := range axes {
			mi += idx[axis] * maskStrides[i]
		}
		if m.Values[mi] {
			v.Data.Elements[flat] = fill
		}
	}
	return nil
}

// Round rounds every element of the variable to the given number of
// decimal places, ties to even. NaN passes through.
func (d *Dataset) Round(varName string, decimals int) error {
	v, ok := d.Var(varName)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoSuchVar, varName)
	}
	scale := math.Pow(10, float64(decimals))
	for i, x := range v.Data.Elements {
		if math.IsNaN(x) {
			continue
		}
		v.Data.Elements[i] = math.RoundToEven(x*scale) / scale
	}
	return nil
}
