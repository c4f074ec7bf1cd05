// Package cleanup runs the fixed post-processing pipeline that readies
// a dataset for cataloguing: unit conversion, calendar conversion with
// missing-value handling, unstacking, rounding, and a family of
// attribute edits.
//
// Apply walks the stages in a fixed order, each one optional and
// enabled by the presence of its block in the Config:
//
//  1. variables_and_units: units.ChangeUnits on the listed variables.
//  2. convert_calendar: points that are missing across the whole time
//     axis (ocean cells) are remembered per variable, the calendar is
//     converted, and the remembered points are forced back to missing.
//     With missing_by_var set, conversion first marks inserted dates
//     with a numeric sentinel, then every variable is repaired per its
//     policy: "interpolate" fills interior gaps linearly in time, a
//     number overwrites the sentinel cells. A 360-day source without
//     an explicit align_on defaults to the random mode.
//  3. maybe_unstack: stack.MaybeUnstack, with the rechunk block
//     resolved through cftime.TranslateTimeChunk first.
//  4. round_var: per-variable rounding to a number of decimals.
//  5. common_attrs_only: keep only global attributes identical across
//     the given datasets and side-car files, always dropping the date
//     range, then regenerate cat:id.
//  6. to_level: set cat:processing_level.
//  7. attrs_to_remove: per-target attribute removal by pattern.
//  8. remove_all_attrs_except: the inverse filter.
//  9. add_attrs: per-target attribute writes.
//  10. change_attr_prefix: rewrite the "cat:" prefix on global attrs.
//
// Targets in the attribute stages are variable names or the reserved
// word "global". Patterns: a trailing "*" turns the rest into a
// substring test, a leading "^" into a prefix test, anything else must
// match exactly.
//
// The input dataset is never modified; Apply returns the cleaned copy.
//
// Errors returned by this package: ErrNilDataset, ErrConfig (bad block
// values), ErrMissingPolicy (missing_by_var does not cover every
// variable); stages pass through the errors of the packages they call,
// including dataset.ErrNoSuchVar for unknown attribute targets.
package cleanup
