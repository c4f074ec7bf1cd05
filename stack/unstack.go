package stack

import (
	"fmt"
	"math"

	"github.com/ctessum/sparse"
	"go.uber.org/zap"

	"github.com/Youssef-Bakr/xscen/dataset"
	"github.com/Youssef-Bakr/xscen/ncio"
)

// UnstackFillNaN rebuilds grid dimensions from a compacted point dimension.
// Each point coordinate on the stacked dimension becomes a rebuilt
// dimension; cells no point maps to are NaN. The rebuilt axes hold the
// unique point values in order of first appearance, unless full ranges are
// supplied (explicitly or via a side-car file), in which case the axes are
// reindexed onto those ranges and points outside them are dropped.
//
// The input dataset is not modified.
//
// Complexity: O(n) over the elements of each variable.
func UnstackFillNaN(ds *dataset.Dataset, opts ...Option) (*dataset.Dataset, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	o, err := apply(opts)
	if err != nil {
		return nil, err
	}
	u := &unstacker{ds: ds, o: o}
	if err := u.validate(); err != nil {
		return nil, err
	}
	if err := u.collectLabels(); err != nil {
		return nil, err
	}
	u.buildLevels()
	if err := u.reindex(); err != nil {
		return nil, err
	}
	return u.build()
}

// MaybeUnstack unstacks only when stacked is set, then records the rechunk
// hint on the result. With stacked false the dataset passes through as-is.
func MaybeUnstack(ds *dataset.Dataset, stacked bool, rechunk map[string]int, opts ...Option) (*dataset.Dataset, error) {
	if !stacked {
		return ds, nil
	}
	out, err := UnstackFillNaN(ds, opts...)
	if err != nil {
		return nil, err
	}
	if rechunk != nil {
		out.SetChunks(rechunk)
	}
	return out, nil
}

// unstacker carries the state of one reconstruction pass.
type unstacker struct {
	ds *dataset.Dataset
	o  Options

	nPts       int
	labels     []*dataset.Coord // point coordinates, rebuild order
	levels     []*dataset.Coord // rebuilt index coordinates, same order
	pointLevel [][]int          // [label][point] -> level index, -1 = dropped
}

func (u *unstacker) validate() error {
	n, ok := u.ds.DimSize(u.o.Dim)
	if !ok {
		return fmt.Errorf("%w: no dimension %q to unstack", ErrDimMismatch, u.o.Dim)
	}
	u.nPts = n
	return nil
}

func (u *unstacker) collectLabels() error {
	if len(u.o.CoordNames) > 0 {
		for _, name := range u.o.CoordNames {
			c, ok := u.ds.Coord(name)
			if !ok {
				return fmt.Errorf("%w: %q is not a coordinate", ErrNoCoords, name)
			}
			if c.Dim != u.o.Dim {
				return fmt.Errorf("%w: coordinate %q lives on %q, not %q",
					ErrDimMismatch, name, c.Dim, u.o.Dim)
			}
			u.labels = append(u.labels, c)
		}
		return nil
	}
	for _, cname := range u.ds.CoordNames() {
		c, _ := u.ds.Coord(cname)
		if c.Dim == u.o.Dim && c.Name != u.o.Dim {
			u.labels = append(u.labels, c)
		}
	}
	if len(u.labels) == 0 {
		return fmt.Errorf("%w: dimension %q", ErrNoCoords, u.o.Dim)
	}
	return nil
}

// buildLevels extracts each label's unique values in order of first
// appearance and maps every point onto its level.
func (u *unstacker) buildLevels() {
	u.levels = make([]*dataset.Coord, len(u.labels))
	u.pointLevel = make([][]int, len(u.labels))
	for j, label := range u.labels {
		seen := make(map[string]int)
		var firstIdx []int
		pl := make([]int, u.nPts)
		for p := 0; p < u.nPts; p++ {
			key := label.ValueString(p)
			idx, ok := seen[key]
			if !ok {
				idx = len(firstIdx)
				seen[key] = idx
				firstIdx = append(firstIdx, p)
			}
			pl[p] = idx
		}
		level := label.Take(firstIdx, label.Name)
		u.levels[j] = level
		u.pointLevel[j] = pl
	}
}

// reindex replaces levels with supplied full ranges, dropping points whose
// value is outside them.
func (u *unstacker) reindex() error {
	targets, err := u.targetCoords()
	if err != nil {
		return err
	}
	if targets == nil {
		return nil
	}
	for j, label := range u.labels {
		t, ok := targets[label.Name]
		if !ok {
			continue
		}
		if t.Kind != label.Kind {
			return fmt.Errorf("%w: coordinate %q is %s, full range is %s",
				ErrDimMismatch, label.Name, label.Kind, t.Kind)
		}
		pos := make(map[string]int, t.Len())
		for i := 0; i < t.Len(); i++ {
			pos[t.ValueString(i)] = i
		}
		old := u.levels[j]
		remap := make([]int, old.Len())
		for i := 0; i < old.Len(); i++ {
			if at, ok := pos[old.ValueString(i)]; ok {
				remap[i] = at
			} else {
				remap[i] = -1
			}
		}
		pl := u.pointLevel[j]
		for p, lvl := range pl {
			pl[p] = remap[lvl]
		}
		level := t.Clone()
		level.Name = label.Name
		level.Dim = label.Name
		level.Attrs = label.Attrs.Clone()
		u.levels[j] = level
	}
	return nil
}

// targetCoords resolves the full-range coordinates, explicit values taking
// precedence over the side-car file. Nil means no reindexing.
func (u *unstacker) targetCoords() (map[string]*dataset.Coord, error) {
	if u.o.CoordValues != nil {
		return u.o.CoordValues, nil
	}
	if u.o.CoordsPath == "" {
		return nil, nil
	}
	shape := ""
	for _, label := range u.labels {
		if s, ok := label.Attrs.Get(OriginalShapeAttr); ok {
			shape = s
			break
		}
	}
	path := ResolvePath(u.o.CoordsPath, u.ds.Attrs(), shape)
	u.o.Logger.Info("reading side-car coordinates", zap.String("path", path))
	side, err := ncio.ReadCoords(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSidecar, err)
	}
	targets := make(map[string]*dataset.Coord)
	for _, label := range u.labels {
		if c, ok := side.Coord(label.Name); ok {
			targets[c.Name] = c
		}
	}
	return targets, nil
}

func (u *unstacker) build() (*dataset.Dataset, error) {
	out := dataset.New()
	out.Attrs().Merge(u.ds.Attrs())

	levelSizes := make([]int, len(u.levels))
	levelDims := make([]string, len(u.levels))
	for j, level := range u.levels {
		levelSizes[j] = level.Len()
		levelDims[j] = level.Name
	}

	for _, name := range u.ds.VarNames() {
		v, _ := u.ds.Var(name)
		axis := v.DimIndex(u.o.Dim)
		if axis < 0 {
			if err := out.AddVar(name, v.Clone()); err != nil {
				return nil, fmt.Errorf("stack: %w", err)
			}
			continue
		}
		if err := out.AddVar(name, u.unstackVar(v, axis, levelDims, levelSizes)); err != nil {
			return nil, fmt.Errorf("stack: %w", err)
		}
	}

	for _, cname := range u.ds.CoordNames() {
		c, _ := u.ds.Coord(cname)
		if c.Dim == u.o.Dim {
			continue // consumed by the reconstruction
		}
		if err := out.SetCoord(c.Clone()); err != nil {
			return nil, fmt.Errorf("stack: %w", err)
		}
	}
	for _, level := range u.levels {
		if err := out.SetCoord(level); err != nil {
			return nil, fmt.Errorf("stack: %w", err)
		}
	}

	u.o.Logger.Debug("rebuilt grid from points",
		zap.String("dim", u.o.Dim),
		zap.Int("points", u.nPts),
		zap.Strings("rebuilt", levelDims))
	return out, nil
}

// unstackVar scatters one variable into (kept dims..., level dims...),
// NaN-filled where no point lands.
func (u *unstacker) unstackVar(v *dataset.Variable, axis int, levelDims []string, levelSizes []int) *dataset.Variable {
	var keptDims []string
	var keptSizes []int
	for i, d := range v.Dims {
		if i != axis {
			keptDims = append(keptDims, d)
			keptSizes = append(keptSizes, v.Data.Shape[i])
		}
	}
	outDims := append(append([]string(nil), keptDims...), levelDims...)
	outShape := append(append([]int(nil), keptSizes...), levelSizes...)

	data := sparse.ZerosDense(outShape...)
	for i := range data.Elements {
		data.Elements[i] = math.NaN()
	}
	outStrides := dataset.Strides(outShape)

	for flat, x := range v.Data.Elements {
		idx := dataset.Unravel(flat, v.Data.Shape)
		p := idx[axis]
		outFlat := 0
		pos := 0
		ok := true
		for i, j := range idx {
			if i == axis {
				continue
			}
			outFlat += j * outStrides[pos]
			pos++
		}
		for j := range u.levels {
			lvl := u.pointLevel[j][p]
			if lvl < 0 {
				ok = false
				break
			}
			outFlat += lvl * outStrides[pos+j]
		}
		if ok {
			data.Elements[outFlat] = x
		}
	}

	return &dataset.Variable{Dims: outDims, Data: data, Attrs: v.Attrs.Clone()}
}
