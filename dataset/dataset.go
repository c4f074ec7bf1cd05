package dataset

import (
	"fmt"
	"sort"

	"github.com/Youssef-Bakr/xscen/cftime"
)

// Dataset is a collection of variables sharing named dimensions, together
// with coordinates, global attributes and storage chunk hints. Variables
// iterate in sorted name order; coordinates keep their insertion order
// (the order matters when compacted dimensions are rebuilt).
type Dataset struct {
	dims       map[string]int
	vars       map[string]*Variable
	coords     map[string]*Coord
	coordOrder []string
	attrs      *Attrs
	chunks     map[string]int
}

// New returns an empty dataset.
func New() *Dataset {
	return &Dataset{
		dims:   make(map[string]int),
		vars:   make(map[string]*Variable),
		coords: make(map[string]*Coord),
		attrs:  NewAttrs(),
	}
}

// registerDim records a dimension size, rejecting conflicts.
func (d *Dataset) registerDim(name string, size int) error {
	if have, ok := d.dims[name]; ok {
		if have != size {
			return fmt.Errorf("%w: %q is %d, got %d", ErrDimSize, name, have, size)
		}
		return nil
	}
	d.dims[name] = size
	return nil
}

// AddVar registers a variable under name. Its dimensions are registered
// from the data shape; a size conflict with an existing dimension is
// ErrDimSize. Re-adding an existing name replaces the variable, assignment
// style.
func (d *Dataset) AddVar(name string, v *Variable) error {
	if v == nil || v.Data == nil {
		return ErrNilVariable
	}
	if len(v.Dims) != len(v.Data.Shape) {
		return fmt.Errorf("%w: variable %q", ErrShape, name)
	}
	for i, dim := range v.Dims {
		if err := d.registerDim(dim, v.Data.Shape[i]); err != nil {
			return fmt.Errorf("variable %q: %w", name, err)
		}
	}
	if v.Attrs == nil {
		v.Attrs = NewAttrs()
	}
	d.vars[name] = v
	return nil
}

// Var returns the named variable.
func (d *Dataset) Var(name string) (*Variable, bool) {
	v, ok := d.vars[name]
	return v, ok
}

// VarNames returns the variable names in sorted order.
func (d *Dataset) VarNames() []string {
	out := make([]string, 0, len(d.vars))
	for name := range d.vars {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DropVar removes a variable, reporting whether it existed. Dimensions
// stay registered.
func (d *Dataset) DropVar(name string) bool {
	if _, ok := d.vars[name]; !ok {
		return false
	}
	delete(d.vars, name)
	return true
}

// SetCoord registers a coordinate. Its dimension is registered from the
// coordinate length when new; against an existing dimension the length
// must match (ErrCoordLen). Replacing a coordinate keeps its original
// position in the order.
func (d *Dataset) SetCoord(c *Coord) error {
	if c == nil {
		return ErrNoSuchCoord
	}
	if err := c.validate(); err != nil {
		return err
	}
	if have, ok := d.dims[c.Dim]; ok {
		if have != c.Len() {
			return fmt.Errorf("%w: %q has %d points on dimension %q of size %d",
				ErrCoordLen, c.Name, c.Len(), c.Dim, have)
		}
	} else {
		d.dims[c.Dim] = c.Len()
	}
	if c.Attrs == nil {
		c.Attrs = NewAttrs()
	}
	if _, ok := d.coords[c.Name]; !ok {
		d.coordOrder = append(d.coordOrder, c.Name)
	}
	d.coords[c.Name] = c
	return nil
}

// Coord returns the named coordinate.
func (d *Dataset) Coord(name string) (*Coord, bool) {
	c, ok := d.coords[name]
	return c, ok
}

// CoordNames returns the coordinate names in insertion order, as a copy.
func (d *Dataset) CoordNames() []string {
	return append([]string(nil), d.coordOrder...)
}

// DropCoord removes a coordinate, reporting whether it existed.
func (d *Dataset) DropCoord(name string) bool {
	if _, ok := d.coords[name]; !ok {
		return false
	}
	delete(d.coords, name)
	for i, n := range d.coordOrder {
		if n == name {
			d.coordOrder = append(d.coordOrder[:i], d.coordOrder[i+1:]...)
			break
		}
	}
	return true
}

// HasDim reports whether the named dimension is registered.
func (d *Dataset) HasDim(name string) bool {
	_, ok := d.dims[name]
	return ok
}

// DimSize returns the size of the named dimension.
func (d *Dataset) DimSize(name string) (int, bool) {
	n, ok := d.dims[name]
	return n, ok
}

// Dims returns a copy of the dimension size map.
func (d *Dataset) Dims() map[string]int {
	out := make(map[string]int, len(d.dims))
	for k, v := range d.dims {
		out[k] = v
	}
	return out
}

// Attrs returns the global attribute map (live, not a copy).
func (d *Dataset) Attrs() *Attrs { return d.attrs }

// SetChunks replaces the storage chunk hints. Hints are advisory layout
// metadata for downstream writers; nothing in this library consumes them
// beyond carrying and translating them.
func (d *Dataset) SetChunks(chunks map[string]int) {
	if chunks == nil {
		d.chunks = nil
		return
	}
	d.chunks = make(map[string]int, len(chunks))
	for k, v := range chunks {
		d.chunks[k] = v
	}
}

// Chunks returns a copy of the chunk hints, nil when unset.
func (d *Dataset) Chunks() map[string]int {
	if d.chunks == nil {
		return nil
	}
	out := make(map[string]int, len(d.chunks))
	for k, v := range d.chunks {
		out[k] = v
	}
	return out
}

// Times returns the calendar-date payload of the "time" coordinate, when
// present with the right kind.
func (d *Dataset) Times() ([]cftime.Date, bool) {
	c, ok := d.coords["time"]
	if !ok || c.Kind != KindTime {
		return nil, false
	}
	return c.Times, true
}

// Calendar returns the calendar of the time coordinate; ok is false when
// there is no (non-empty) time coordinate.
func (d *Dataset) Calendar() (cftime.Calendar, bool) {
	times, ok := d.Times()
	if !ok || len(times) == 0 {
		return cftime.Standard, false
	}
	return times[0].Cal, true
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	out := New()
	for name, size := range d.dims {
		out.dims[name] = size
	}
	for name, v := range d.vars {
		out.vars[name] = v.Clone()
	}
	for _, name := range d.coordOrder {
		out.coords[name] = d.coords[name].Clone()
		out.coordOrder = append(out.coordOrder, name)
	}
	out.attrs = d.attrs.Clone()
	out.SetChunks(d.chunks)
	return out
}

// Strides returns the row-major strides of shape: the flat-index step of
// each axis.
func Strides(shape []int) []int {
	out := make([]int, len(shape))
	step := 1
	for i := len(shape) - 1; i >= 0; i-- {
		out[i] = step
		step *= shape[i]
	}
	return out
}

// Unravel decomposes a row-major flat index into per-axis indices.
func Unravel(flat int, shape []int) []int {
	idx := make([]int, len(shape))
	for i := len(shape) - 1; i >= 0; i-- {
		idx[i] = flat % shape[i]
		flat /= shape[i]
	}
	return idx
}
