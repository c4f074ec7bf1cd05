// Package xscen wrangles gridded climate datasets: compacting sparse
// grids, converting calendars and units, bucketing time into seasons, and
// normalizing the metadata that rides along.
//
// What is xscen?
//
// A library of dataset-shaping operations for climate model output, built
// around an in-memory Dataset of dense arrays with named dimensions,
// coordinates and ordered attributes:
//
//   - Stacking: compact several grid dimensions into one point axis,
//     keeping only cells with data, and expand them back later from
//     side-car coordinate files (stack, ncio).
//   - Calendars: CF calendar arithmetic, frequency inference and
//     conversion between standard, noleap, all_leap and 360_day time
//     axes (cftime, calconv).
//   - Seasons: reshape sub-annual series onto a year-by-season grid
//     (seasonal).
//   - Units: CF unit parsing and conversion, including amount/rate
//     transforms decided by dimensional analysis (units).
//   - Metadata: controlled vocabularies, catalog attributes and
//     deterministic dataset identifiers (vocab, catalog).
//   - Cleanup: the ten-stage post-processing pipeline driven by one YAML
//     configuration (cleanup).
//
// Package map:
//
//	dataset/  — Dataset, Variable, Coord, ordered Attrs, masks
//	cftime/   — calendars, dates, frequencies, chunk translation
//	ncio/     — NetCDF side-car coordinate files and attribute views
//	stack/    — StackDropNaNs / UnstackFillNaN
//	seasonal/ — UnstackDates onto (year, season)
//	units/    — Parse, Convert, ChangeUnits
//	calconv/  — ConvertCalendar with date/year/random alignment
//	vocab/    — embedded controlled vocabularies, lookup policies
//	catalog/  — catalog attrs, GenerateID, NaturalSort
//	cleanup/  — the Apply pipeline
//	relnotes/ — release-notes formatting
//	datagen/  — seeded synthetic fixtures
//
// A typical flow: datagen (or your reader) produces a Dataset, stack
// compacts the ocean away before regridding, cleanup applies the
// project's attribute conventions, and ncio remembers the grid for the
// way back.
//
//	go get github.com/Youssef-Bakr/xscen
package xscen
