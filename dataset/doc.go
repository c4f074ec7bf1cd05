// Package dataset provides the in-memory labeled dataset the rest of the
// library operates on: named dimensions, coordinate variables, data
// variables backed by dense row-major arrays, and ordered attribute maps.
//
// What
//
//   - Attrs: an insertion-ordered string attribute map with explicit
//     set / delete / rename operations. Order is part of a dataset's
//     identity; two attribute maps with equal pairs in different order are
//     not Equal.
//   - Coord: a one-dimensional labeled axis holding float, string or
//     calendar-date values (tagged by CoordKind).
//   - Variable: an n-dimensional float64 array (*sparse.DenseArray) with
//     named dimensions and its own attributes.
//   - Dataset: dimensions, coordinates (insertion order preserved),
//     variables (iterated in sorted name order), global attributes and
//     storage chunk hints.
//   - Mask: a boolean selection over a set of dimensions, plus the
//     missing-data helpers the cleaning pipeline needs (NullMaskOver,
//     FillWhere, Round).
//
// Why
//
//	Every operation in this library - stacking, season bucketing, unit and
//	calendar conversion, attribute cleaning - transforms one of these
//	datasets and returns a new one. Inputs are never mutated; use Clone
//	when building variants by hand.
//
// NaN is the in-band missing-value sentinel for floating data throughout.
//
// Errors
//
//   - ErrNilVariable, ErrShape     malformed variable construction.
//   - ErrDimSize                   a dimension re-registered with a new size.
//   - ErrCoordLen                  coordinate length vs dimension size.
//   - ErrNoSuchVar, ErrNoSuchCoord, ErrNoSuchDim  lookups by unknown name.
//   - ErrKind                      coordinate payload vs declared kind.
package dataset
