// Package datagen builds small synthetic climate datasets for tests,
// examples and benchmarks.
//
// A dataset is assembled by Build from a list of builders applied in
// order: Grid lays down the lat/lon axes, DailyTime or MonthlyTime the
// calendar-aware time axis, Field fills a variable with a seasonal
// sinusoid, an index ramp and Gaussian noise, Ocean drowns a fixed random
// subset of grid cells to NaN, and Catalog stamps the conventional
// catalog attributes.
//
// Everything is deterministic: the generator is seeded (DefaultSeed
// unless WithSeed or WithRand says otherwise) and builders consume it in
// call order, so the same options and builder list always reproduce the
// same dataset.
//
// Errors
//
//   - ErrOptionViolation  an invalid option value.
//   - ErrSize             a non-positive grid or axis size.
//   - ErrName             an empty variable name.
//   - ErrDim              a dimension the dataset does not carry yet.
//   - ErrFraction         a drowned share outside [0, 1].
//   - ErrDate             an invalid start date.
package datagen
