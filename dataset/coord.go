package dataset

import (
	"fmt"
	"strconv"

	"github.com/Youssef-Bakr/xscen/cftime"
)

// Coord is a one-dimensional labeled axis. Name and Dim coincide for index
// coordinates (the labels of a dimension); they differ for auxiliary
// coordinates, such as the per-point latitudes left behind on a compacted
// spatial dimension. Exactly one payload slice is populated, per Kind.
type Coord struct {
	Name    string
	Dim     string
	Kind    CoordKind
	Floats  []float64
	Strings []string
	Times   []cftime.Date
	Attrs   *Attrs
}

// NewFloatCoord builds a numeric coordinate named name over dim.
func NewFloatCoord(name, dim string, values []float64) *Coord {
	return &Coord{Name: name, Dim: dim, Kind: KindFloat, Floats: values, Attrs: NewAttrs()}
}

// NewStringCoord builds a label coordinate named name over dim.
func NewStringCoord(name, dim string, values []string) *Coord {
	return &Coord{Name: name, Dim: dim, Kind: KindString, Strings: values, Attrs: NewAttrs()}
}

// NewTimeCoord builds a calendar-date coordinate named name over dim.
func NewTimeCoord(name, dim string, values []cftime.Date) *Coord {
	return &Coord{Name: name, Dim: dim, Kind: KindTime, Times: values, Attrs: NewAttrs()}
}

// Len returns the number of points on the axis.
func (c *Coord) Len() int {
	switch c.Kind {
	case KindString:
		return len(c.Strings)
	case KindTime:
		return len(c.Times)
	default:
		return len(c.Floats)
	}
}

// validate checks that the populated payload matches Kind and that the
// others are empty.
func (c *Coord) validate() error {
	nf, ns, nt := len(c.Floats), len(c.Strings), len(c.Times)
	ok := false
	switch c.Kind {
	case KindFloat:
		ok = ns == 0 && nt == 0
	case KindString:
		ok = nf == 0 && nt == 0
	case KindTime:
		ok = nf == 0 && ns == 0
	}
	if !ok {
		return fmt.Errorf("%w: coordinate %q declared %s", ErrKind, c.Name, c.Kind)
	}
	return nil
}

// ValueString renders point i canonically: shortest float form, the label
// itself, or the date's string form. Composite unstack keys are built from
// these.
func (c *Coord) ValueString(i int) string {
	switch c.Kind {
	case KindString:
		return c.Strings[i]
	case KindTime:
		return c.Times[i].String()
	default:
		return strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
	}
}

// Take returns a new coordinate holding the points at the given indices,
// in that order, over dim. Attributes are carried over.
func (c *Coord) Take(indices []int, dim string) *Coord {
	out := &Coord{Name: c.Name, Dim: dim, Kind: c.Kind, Attrs: c.Attrs.Clone()}
	switch c.Kind {
	case KindString:
		out.Strings = make([]string, len(indices))
		for i, j := range indices {
			out.Strings[i] = c.Strings[j]
		}
	case KindTime:
		out.Times = make([]cftime.Date, len(indices))
		for i, j := range indices {
			out.Times[i] = c.Times[j]
		}
	default:
		out.Floats = make([]float64, len(indices))
		for i, j := range indices {
			out.Floats[i] = c.Floats[j]
		}
	}
	return out
}

// Clone returns a deep copy.
func (c *Coord) Clone() *Coord {
	out := &Coord{Name: c.Name, Dim: c.Dim, Kind: c.Kind, Attrs: c.Attrs.Clone()}
	if c.Floats != nil {
		out.Floats = append([]float64(nil), c.Floats...)
	}
	if c.Strings != nil {
		out.Strings = append([]string(nil), c.Strings...)
	}
	if c.Times != nil {
		out.Times = append([]cftime.Date(nil), c.Times...)
	}
	return out
}
