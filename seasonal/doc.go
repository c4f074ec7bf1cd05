// Package seasonal reshapes a sub-annual time axis into crossed
// (year, season) axes.
//
// What
//
//   - UnstackDates splits the time dimension: the time coordinate shrinks
//     to one January 1st per distinct year and a new season dimension
//     holds the labels of the sub-annual buckets.
//   - SeasonMap derives the "MM-DD" -> label map from the sampling
//     frequency of a time coordinate: month abbreviations for monthly
//     data, wrapped month initials (DJF, MAM, ...) for quarterly or
//     n-monthly data, "annual"/"annual-ABB" for yearly data.
//
// The season axis is ordered by each label's first chronological
// occurrence in the data, so for quarterly data anchored in December the
// order is DJF, MAM, JJA, SON rather than anything lexical.
//
// Cells with no source timestamp are NaN. Variables that do not span the
// time dimension pass through unchanged. Coordinates riding the time
// dimension other than the time index itself cannot survive the reshape
// (they would need two dimensions) and are dropped.
//
// Errors
//
//   - ErrNilDataset       nil input.
//   - ErrNoTime           no (non-empty) time coordinate of time kind.
//   - ErrFrequency        inferred frequency has no season labeling.
//   - ErrSeasonKey        a timestamp's MM-DD key is absent from the map.
//   - ErrSeasonCell       two timestamps land in the same (year, season).
//   - ErrOptionViolation  invalid option value.
package seasonal
