package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/unit"
)

// Quantity is a parsed unit: an SI scale factor with a dimensional
// signature, plus an additive offset for thermometer scales. Build with
// Parse; the zero value is unusable.
type Quantity struct {
	u      *unit.Unit
	offset float64
	text   string
}

// baseUnit is one entry of the symbol table. Scale converts one of the
// unit to SI; offset is additive after scaling (only thermometer scales).
type baseUnit struct {
	scale      float64
	dims       unit.Dimensions
	offset     float64
	prefixable bool
}

var baseUnits = map[string]baseUnit{
	"m":       {scale: 1, dims: unit.Dimensions{unit.LengthDim: 1}, prefixable: true},
	"g":       {scale: 1e-3, dims: unit.Dimensions{unit.MassDim: 1}, prefixable: true},
	"s":       {scale: 1, dims: unit.Dimensions{unit.TimeDim: 1}, prefixable: true},
	"sec":     {scale: 1, dims: unit.Dimensions{unit.TimeDim: 1}},
	"second":  {scale: 1, dims: unit.Dimensions{unit.TimeDim: 1}},
	"seconds": {scale: 1, dims: unit.Dimensions{unit.TimeDim: 1}},
	"min":     {scale: 60, dims: unit.Dimensions{unit.TimeDim: 1}},
	"minute":  {scale: 60, dims: unit.Dimensions{unit.TimeDim: 1}},
	"minutes": {scale: 60, dims: unit.Dimensions{unit.TimeDim: 1}},
	"h":       {scale: 3600, dims: unit.Dimensions{unit.TimeDim: 1}},
	"hr":      {scale: 3600, dims: unit.Dimensions{unit.TimeDim: 1}},
	"hour":    {scale: 3600, dims: unit.Dimensions{unit.TimeDim: 1}},
	"hours":   {scale: 3600, dims: unit.Dimensions{unit.TimeDim: 1}},
	"d":       {scale: 86400, dims: unit.Dimensions{unit.TimeDim: 1}},
	"day":     {scale: 86400, dims: unit.Dimensions{unit.TimeDim: 1}},
	"days":    {scale: 86400, dims: unit.Dimensions{unit.TimeDim: 1}},
	// Julian year, 365.25 days.
	"a":     {scale: 31557600, dims: unit.Dimensions{unit.TimeDim: 1}, prefixable: true},
	"yr":    {scale: 31557600, dims: unit.Dimensions{unit.TimeDim: 1}},
	"year":  {scale: 31557600, dims: unit.Dimensions{unit.TimeDim: 1}},
	"years": {scale: 31557600, dims: unit.Dimensions{unit.TimeDim: 1}},
	"K":     {scale: 1, dims: unit.Dimensions{unit.TemperatureDim: 1}, prefixable: true},
	"degC":  {scale: 1, dims: unit.Dimensions{unit.TemperatureDim: 1}, offset: 273.15},
	"deg_C": {scale: 1, dims: unit.Dimensions{unit.TemperatureDim: 1}, offset: 273.15},
	"celsius": {scale: 1, dims: unit.Dimensions{unit.TemperatureDim: 1},
		offset: 273.15},
	"%":       {scale: 0.01, dims: unit.Dimensions{}},
	"percent": {scale: 0.01, dims: unit.Dimensions{}},
	"1":       {scale: 1, dims: unit.Dimensions{}},
	"Pa": {scale: 1, dims: unit.Dimensions{
		unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -2}, prefixable: true},
	"N": {scale: 1, dims: unit.Dimensions{
		unit.MassDim: 1, unit.LengthDim: 1, unit.TimeDim: -2}, prefixable: true},
	"J": {scale: 1, dims: unit.Dimensions{
		unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -2}, prefixable: true},
	"W": {scale: 1, dims: unit.Dimensions{
		unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -3}, prefixable: true},
	"Hz": {scale: 1, dims: unit.Dimensions{unit.TimeDim: -1}, prefixable: true},
}

var prefixes = []struct {
	sym    string
	factor float64
}{
	{"Y", 1e24}, {"Z", 1e21}, {"E", 1e18}, {"P", 1e15}, {"T", 1e12},
	{"G", 1e9}, {"M", 1e6}, {"k", 1e3}, {"h", 1e2}, {"c", 1e-2},
	{"m", 1e-3}, {"µ", 1e-6}, {"u", 1e-6}, {"n", 1e-9}, {"p", 1e-12},
}

// Parse reads a CF unit string into a Quantity. Terms are separated by
// spaces, dots, "*" or "/" (division negates the following term);
// exponents are written "^n", "**n" or as a trailing signed integer
// ("m2", "s-1"). Symbols resolve against the table first, then as an SI
// prefix plus a table symbol, so "h" is the hour but "hPa" is 100 Pa.
// An empty string is dimensionless.
func Parse(s string) (Quantity, error) {
	text := strings.TrimSpace(s)
	q := Quantity{u: unit.New(1, unit.Dimensions{}), text: text}
	if text == "" {
		return q, nil
	}
	norm := strings.ReplaceAll(text, "**", "^")

	var (
		terms     int
		firstBase baseUnit
		firstExp  int
		div       bool
	)
	i := 0
	for i < len(norm) {
		switch norm[i] {
		case ' ', '.', '*':
			i++
		case '/':
			div = true
			i++
		default:
			j := i
			for j < len(norm) && !isSep(norm[j]) {
				j++
			}
			tok := norm[i:j]
			i = j
			sym, exp, err := splitTerm(tok)
			if err != nil {
				return Quantity{}, err
			}
			b, ok := lookup(sym)
			if !ok {
				return Quantity{}, fmt.Errorf("%w: unknown symbol %q in %q", ErrParse, sym, s)
			}
			if div {
				exp = -exp
				div = false
			}
			val := math.Pow(b.scale, float64(exp))
			dims := make(unit.Dimensions, len(b.dims))
			for d, e := range b.dims {
				dims[d] = e * exp
			}
			q.u = q.u.Mul(unit.New(val, dims))
			terms++
			if terms == 1 {
				firstBase, firstExp = b, exp
			}
		}
	}
	if terms == 0 {
		return Quantity{}, fmt.Errorf("%w: %q has no unit terms", ErrParse, s)
	}
	// Thermometer offsets only survive a plain single-term unit; inside a
	// composite, degC behaves as K.
	if terms == 1 && firstExp == 1 {
		q.offset = firstBase.offset
	}
	return q, nil
}

func isSep(c byte) bool {
	return c == ' ' || c == '.' || c == '*' || c == '/'
}

// splitTerm cuts a term into symbol and exponent.
func splitTerm(tok string) (string, int, error) {
	if body, expStr, found := strings.Cut(tok, "^"); found {
		exp, err := strconv.Atoi(expStr)
		if err != nil {
			return "", 0, fmt.Errorf("%w: bad exponent in %q", ErrParse, tok)
		}
		return body, exp, nil
	}
	if _, ok := baseUnits[tok]; ok {
		return tok, 1, nil
	}
	end := len(tok)
	j := end
	for j > 0 && tok[j-1] >= '0' && tok[j-1] <= '9' {
		j--
	}
	if j == end {
		return tok, 1, nil
	}
	start := j
	if start > 0 && (tok[start-1] == '-' || tok[start-1] == '+') {
		start--
	}
	exp, err := strconv.Atoi(tok[start:end])
	if err != nil {
		return "", 0, fmt.Errorf("%w: bad exponent in %q", ErrParse, tok)
	}
	return tok[:start], exp, nil
}

func lookup(sym string) (baseUnit, bool) {
	if b, ok := baseUnits[sym]; ok {
		return b, true
	}
	for _, p := range prefixes {
		rest, ok := strings.CutPrefix(sym, p.sym)
		if !ok || rest == "" {
			continue
		}
		if b, ok2 := baseUnits[rest]; ok2 && b.prefixable {
			return baseUnit{scale: p.factor * b.scale, dims: b.dims, prefixable: false}, true
		}
	}
	return baseUnit{}, false
}

// String returns the source text the quantity was parsed from.
func (q Quantity) String() string { return q.text }

// Scale returns the multiplicative factor converting one of this unit to
// SI.
func (q Quantity) Scale() float64 { return q.u.Value() }

// Offset returns the additive SI offset (273.15 for degC, else 0).
func (q Quantity) Offset() float64 { return q.offset }

// Dimensions returns the dimensional signature.
func (q Quantity) Dimensions() unit.Dimensions { return q.u.Dimensions() }

// TimeExponent returns the power of the time dimension. This is what
// separates a rate from its integrated amount.
func (q Quantity) TimeExponent() int { return q.u.Dimensions()[unit.TimeDim] }

// Equal reports whether two quantities denote the same physical unit,
// regardless of spelling.
func (q Quantity) Equal(other Quantity) bool {
	return q.u.Value() == other.u.Value() &&
		q.offset == other.offset &&
		sameDims(q.u.Dimensions(), other.u.Dimensions())
}

// sameDims compares signatures ignoring zero-valued entries.
func sameDims(a, b unit.Dimensions) bool {
	for d, e := range a {
		if e != 0 && b[d] != e {
			return false
		}
	}
	for d, e := range b {
		if e != 0 && a[d] != e {
			return false
		}
	}
	return true
}
