// Package stack compacts sparse spatial grids into a dense point dimension
// and restores them, the transformation regional climate products go
// through before statistical processing.
//
// What
//
//   - StackDropNaNs: collapse a set of grid dimensions (lat/lon, rlat/rlon)
//     into one point dimension, keeping only the cells a boolean mask marks
//     valid. A grid that is mostly ocean shrinks to the land points.
//     The original grid shape is recorded as the "original_shape" attribute
//     ("NxM") on every compacted coordinate, and the full-range grid
//     coordinates can be written to a side-car NetCDF file for later
//     reconstruction.
//   - UnstackFillNaN: the inverse. Rebuilds the grid dimensions from the
//     per-point coordinates left on the stacked dimension, filling NaN at
//     the points that were dropped; optionally reindexes onto the full
//     ranges stored in a side-car file (or passed explicitly), so rows and
//     columns that lost every point come back too.
//   - MaybeUnstack: conditional unstack with a rechunk hint applied after,
//     for pipelines that only sometimes receive stacked data.
//
// Side-car paths are templates: "{domain}" resolves to the dataset's
// "cat:domain" attribute ("unknown" when absent) and "{shape}" to the
// recorded original shape, so one configuration line serves a whole
// catalog, e.g. "coords/coords_{domain}_{shape}.nc".
//
// Round trip: for any dataset whose grid coordinates are intact,
// UnstackFillNaN(StackDropNaNs(ds, mask)) restores the original dimensions
// and coordinates, with NaN wherever mask was false.
//
// Complexity: both directions are O(n) over the elements of each variable.
//
// Errors
//
//   - ErrNilDataset       nil input dataset.
//   - ErrOptionViolation  invalid option value.
//   - ErrDimMismatch      mask or stacked dimension absent, or a name clash.
//   - ErrDimSubset        a variable spans only part of the mask dimensions.
//   - ErrNoCoords         nothing to rebuild the grid from.
//   - ErrSidecar          side-car file missing or unreadable.
//
// Side-car IO failures wrap the ncio and os errors they stem from.
package stack
