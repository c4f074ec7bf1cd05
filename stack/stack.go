package stack

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ctessum/sparse"
	"go.uber.org/zap"

	"github.com/Youssef-Bakr/xscen/dataset"
	"github.com/Youssef-Bakr/xscen/ncio"
)

// OriginalShapeAttr is the attribute carrying the pre-stack grid shape,
// e.g. "10x20", on every compacted coordinate.
const OriginalShapeAttr = "original_shape"

// StackDropNaNs collapses the mask's dimensions into a single point
// dimension on every variable spanning them, keeping only the points where
// mask is true, in row-major mask order. The original index coordinates of
// the collapsed dimensions become per-point coordinates on the new
// dimension, each annotated with the original grid shape. When a side-car
// template is configured and the resolved file does not exist yet, the
// full-range coordinates are written there for later reconstruction.
//
// The input dataset is not modified.
//
// Complexity: O(n) over the elements of each stacked variable.
func StackDropNaNs(ds *dataset.Dataset, mask dataset.Mask, opts ...Option) (*dataset.Dataset, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	o, err := apply(opts)
	if err != nil {
		return nil, err
	}
	s := &stacker{ds: ds, mask: mask, o: o}
	if err := s.validate(); err != nil {
		return nil, err
	}
	s.collectPoints()
	out, err := s.build()
	if err != nil {
		return nil, err
	}
	if err := s.writeSidecar(); err != nil {
		return nil, err
	}
	return out, nil
}

// stacker carries the state of one stacking pass.
type stacker struct {
	ds   *dataset.Dataset
	mask dataset.Mask
	o    Options

	shape    string  // "NxM..." of the mask dims
	pointIdx [][]int // mask multi-index of each kept point, row-major order
}

// maskDimPos returns the position of dim among the mask dimensions, or -1.
func (s *stacker) maskDimPos(dim string) int {
	for j, d := range s.mask.Dims {
		if d == dim {
			return j
		}
	}
	return -1
}

func (s *stacker) validate() error {
	if len(s.mask.Dims) == 0 {
		return fmt.Errorf("%w: mask has no dimensions", ErrDimMismatch)
	}
	n := 1
	for i, dim := range s.mask.Dims {
		size, ok := s.ds.DimSize(dim)
		if !ok {
			return fmt.Errorf("%w: mask dimension %q not in dataset", ErrDimMismatch, dim)
		}
		if size != s.mask.Shape[i] {
			return fmt.Errorf("%w: mask dimension %q is %d, dataset has %d",
				ErrDimMismatch, dim, s.mask.Shape[i], size)
		}
		n *= s.mask.Shape[i]
	}
	if len(s.mask.Values) != n {
		return fmt.Errorf("%w: mask holds %d cells for shape of %d", ErrDimMismatch, len(s.mask.Values), n)
	}
	if s.ds.HasDim(s.o.Dim) {
		return fmt.Errorf("%w: dimension %q already exists", ErrDimMismatch, s.o.Dim)
	}
	return nil
}

func (s *stacker) collectPoints() {
	parts := make([]string, len(s.mask.Shape))
	for i, n := range s.mask.Shape {
		parts[i] = strconv.Itoa(n)
	}
	s.shape = strings.Join(parts, "x")

	for flat, keep := range s.mask.Values {
		if keep {
			s.pointIdx = append(s.pointIdx, dataset.Unravel(flat, s.mask.Shape))
		}
	}
}

func (s *stacker) build() (*dataset.Dataset, error) {
	nPts := len(s.pointIdx)
	out := dataset.New()
	out.Attrs().Merge(s.ds.Attrs())

	for _, name := range s.ds.VarNames() {
		v, _ := s.ds.Var(name)
		overlap := 0
		for _, d := range v.Dims {
			if s.maskDimPos(d) >= 0 {
				overlap++
			}
		}
		switch {
		case overlap == 0:
			if err := out.AddVar(name, v.Clone()); err != nil {
				return nil, fmt.Errorf("stack: %w", err)
			}
		case overlap < len(s.mask.Dims):
			return nil, fmt.Errorf("%w: variable %q has dims %v, mask %v",
				ErrDimSubset, name, v.Dims, s.mask.Dims)
		default:
			if err := out.AddVar(name, s.stackVar(v)); err != nil {
				return nil, fmt.Errorf("stack: %w", err)
			}
		}
	}

	for _, cname := range s.ds.CoordNames() {
		c, _ := s.ds.Coord(cname)
		j := s.maskDimPos(c.Dim)
		if j < 0 {
			if err := out.SetCoord(c.Clone()); err != nil {
				return nil, fmt.Errorf("stack: %w", err)
			}
			continue
		}
		indices := make([]int, nPts)
		for p, mIdx := range s.pointIdx {
			indices[p] = mIdx[j]
		}
		nc := c.Take(indices, s.o.Dim)
		nc.Attrs.Set(OriginalShapeAttr, s.shape)
		if err := out.SetCoord(nc); err != nil {
			return nil, fmt.Errorf("stack: %w", err)
		}
	}

	s.o.Logger.Debug("stacked grid to points",
		zap.String("dim", s.o.Dim),
		zap.String("original_shape", s.shape),
		zap.Int("points", nPts))
	return out, nil
}

// stackVar gathers one variable's valid points into (kept dims..., Dim).
func (s *stacker) stackVar(v *dataset.Variable) *dataset.Variable {
	nPts := len(s.pointIdx)
	inStrides := dataset.Strides(v.Data.Shape)

	var keptDims []string
	var keptSizes, keptStrides []int
	for i, d := range v.Dims {
		if s.maskDimPos(d) < 0 {
			keptDims = append(keptDims, d)
			keptSizes = append(keptSizes, v.Data.Shape[i])
			keptStrides = append(keptStrides, inStrides[i])
		}
	}

	// Per-point flat offset along the mask dimensions of this variable.
	ptOff := make([]int, nPts)
	for p, mIdx := range s.pointIdx {
		off := 0
		for j, dim := range s.mask.Dims {
			off += mIdx[j] * inStrides[v.DimIndex(dim)]
		}
		ptOff[p] = off
	}

	outShape := append(append([]int(nil), keptSizes...), nPts)
	data := sparse.ZerosDense(outShape...)
	nKept := 1
	for _, n := range keptSizes {
		nKept *= n
	}
	for kf := 0; kf < nKept; kf++ {
		idx := dataset.Unravel(kf, keptSizes)
		base := 0
		for i, j := range idx {
			base += j * keptStrides[i]
		}
		row := kf * nPts
		for p, off := range ptOff {
			data.Elements[row+p] = v.Data.Elements[base+off]
		}
	}

	return &dataset.Variable{
		Dims:  append(keptDims, s.o.Dim),
		Data:  data,
		Attrs: v.Attrs.Clone(),
	}
}

// writeSidecar stores the full-range coordinates of the mask dimensions
// unless the resolved file already exists.
func (s *stacker) writeSidecar() error {
	if s.o.CoordsPath == "" {
		return nil
	}
	path := ResolvePath(s.o.CoordsPath, s.ds.Attrs(), s.shape)
	if _, err := os.Stat(path); err == nil {
		s.o.Logger.Debug("side-car coordinates already present", zap.String("path", path))
		return nil
	}
	var coords []*dataset.Coord
	for _, cname := range s.ds.CoordNames() {
		c, _ := s.ds.Coord(cname)
		if s.maskDimPos(c.Dim) >= 0 {
			coords = append(coords, c)
		}
	}
	if len(coords) == 0 {
		s.o.Logger.Debug("no grid coordinates to store", zap.String("path", path))
		return nil
	}
	s.o.Logger.Info("writing side-car coordinates",
		zap.String("path", path), zap.String("shape", s.shape))
	if err := ncio.WriteCoords(path, coords, nil); err != nil {
		return fmt.Errorf("stack: side-car: %w", err)
	}
	return nil
}
