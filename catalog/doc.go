// Package catalog works with the catalog-facing side of a dataset: the
// global attributes a data catalog writes under the "cat:" prefix.
//
// Attrs extracts them with the prefix stripped, GenerateID derives the
// deterministic dataset identifier from the fixed id-column order, and
// NaturalSort orders realization-style names ("r1i1p1", "r10i1p1") the
// way a human reads them, digit runs compared numerically.
//
// Errors returned by this package: ErrNoCatAttrs (GenerateID on a
// dataset without any catalog attributes).
package catalog
