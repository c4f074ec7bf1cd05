// Package units parses CF unit strings and converts variables between
// equivalent unit representations, including rate and amount transforms.
//
// What
//
//   - Parse reads a CF unit string ("mm", "kg m-2 s-1", "W/m^2", "degC")
//     into a Quantity: an SI scale with a dimensional signature, plus an
//     additive offset for thermometer scales.
//   - Convert moves a value between two dimensionally equal Quantities.
//   - ChangeUnits converts dataset variables to requested target units.
//     Which transform applies is decided by dimensional analysis on the
//     time exponent, not by unit-string spelling: equal exponents convert
//     directly, a source one power of time above the target is an
//     integrated amount and is divided by the per-step duration
//     (amount to rate), one power below is a rate and is multiplied by it
//     (rate to amount).
//
// Per-step durations come from the time coordinate as forward differences
// in seconds, with the last step repeated. All other variable attributes
// are preserved; the units attribute is set to the target spelling.
//
// Errors
//
//   - ErrParse         unknown unit syntax or symbol.
//   - ErrIncompatible  dimensional signatures differ.
//   - ErrTransform     time exponents differ by more than one power.
//   - ErrNoUnits       a listed variable has no units attribute.
//   - ErrNoTime        a transform needs time steps the dataset lacks.
//   - ErrNilDataset    nil input.
package units
