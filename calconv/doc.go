// Package calconv converts datasets between time calendars.
//
// What
//
//   - ConvertCalendar maps every timestamp of the time coordinate onto a
//     target calendar and rebuilds the dataset on the converted axis.
//     Dates with no target equivalent are dropped; WithMissing instead
//     inserts the missing target dates (at the source's inferred sampling
//     frequency) with a fill value.
//   - GetCalendar reports the calendar of a dataset's time coordinate.
//
// Daily data moving between a 360-day calendar and a real-length one has
// no natural date mapping, so an alignment mode must be chosen:
//
//   - AlignDate keeps month and day, dropping dates the target lacks.
//   - AlignYear rescales the day of year proportionally; slot collisions
//     keep the first occupant.
//   - AlignRandom drops or inserts the 5 or 6 surplus days at one random
//     position inside each equal section of the year, per year. The
//     choice is driven by a seeded generator (WithSeed, WithRand), so a
//     fixed seed reproduces the same axis.
//
// Non-daily data converts by date with the day clamped to the target
// month length, so month ends survive a move onto shorter months.
//
// Coordinates riding the time dimension other than the index follow the
// kept rows, except under WithMissing where inserted rows would have no
// value for them; in that case they are dropped.
//
// Errors
//
//   - ErrNilDataset      nil input.
//   - ErrNoTime          no usable time coordinate.
//   - ErrAlign           360-day daily conversion without an align mode.
//   - ErrOptionViolation invalid option value.
package calconv
