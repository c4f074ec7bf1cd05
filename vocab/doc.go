// Package vocab holds the controlled-vocabulary tables used to
// normalize naming conventions across data sources, and the lookup
// machinery around them.
//
// Each table is one flat JSON mapping file. Values are single strings
// or lists of strings. A reserved "is_regex" entry flags the keys as
// regular expressions; lookups then return the value of the first key
// that matches the whole query, in file order. The built-in tables are
// embedded in the binary and parsed once at process start:
//
//   - frequency_to_timedelta: catalog frequency to a nominal duration
//   - frequency_to_offset: catalog frequency to an offset spelling
//   - offset_to_frequency: offset spelling back to a catalog frequency
//   - offset_to_timedelta: offset spelling to a nominal duration
//   - infer_resolution: project name to its grid-label patterns
//   - resampling_methods: variable name to its reduction method
//   - variable_names: foreign variable short names to CF names
//
// A malformed embedded table is a build defect and panics during init,
// naming the offending file. User-supplied directories load through
// LoadDir, which reports the same condition as an error instead.
//
// What a lookup does on an unmapped key is the caller's choice, made
// explicit with a Policy: Raise fails with ErrNotFound, PassThrough
// hands the key back, Fallback substitutes a fixed value.
//
// Errors returned by this package: ErrNotFound (unmapped key under
// Raise), ErrKind (Lookup on a list-valued entry), ErrMalformed (bad
// mapping file).
package vocab
