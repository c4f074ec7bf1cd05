package vocab

import "errors"

var (
	// ErrNotFound is returned when a key has no mapping and the policy
	// is Raise.
	ErrNotFound = errors.New("vocab: key not found")

	// ErrKind is returned by Lookup when the key maps to a list; use
	// LookupList for those entries.
	ErrKind = errors.New("vocab: entry is not a single string")

	// ErrMalformed flags a mapping file that is not a flat JSON object
	// of strings or string lists.
	ErrMalformed = errors.New("vocab: malformed mapping file")
)

// Value is one mapping entry: a single string, or a list of them when
// IsList is set.
type Value struct {
	Str    string
	List   []string
	IsList bool
}

// Policy decides what a lookup does when the key has no mapping.
type Policy struct {
	mode     policyMode
	fallback string
}

type policyMode uint8

const (
	policyRaise policyMode = iota
	policyPass
	policyFallback
)

// Raise fails the lookup with ErrNotFound.
func Raise() Policy { return Policy{mode: policyRaise} }

// PassThrough returns the key itself, untranslated.
func PassThrough() Policy { return Policy{mode: policyPass} }

// Fallback returns v in place of the missing mapping.
func Fallback(v string) Policy { return Policy{mode: policyFallback, fallback: v} }
