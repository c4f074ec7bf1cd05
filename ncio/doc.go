// Package ncio reads and writes the NetCDF3 ("classic") files this library
// exchanges with the outside world: the side-car coordinate files written
// when a spatial grid is compacted, and read-only attribute views over
// neighbouring dataset files.
//
// Side-car files are self-describing: a global "coords" attribute lists
// the coordinate variables stored in the file, so a reader does not have
// to guess which variables are axes. Files without it fall back to reading
// every variable as a coordinate. Calendar-date axes are stored as
// "days since 1970-01-01" with a "calendar" attribute, the usual CF
// encoding.
//
// Only float and calendar-date coordinates can be stored; NetCDF3 has no
// practical string-array type, and label axes never need a side-car.
package ncio
