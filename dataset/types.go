package dataset

import "errors"

// CoordKind tags the payload type of a coordinate axis.
type CoordKind uint8

const (
	// KindFloat marks numeric coordinates (latitude, longitude, levels).
	KindFloat CoordKind = iota
	// KindString marks label coordinates (season names, member ids).
	KindString
	// KindTime marks calendar-date coordinates.
	KindTime
)

// String names the kind for error messages.
func (k CoordKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindTime:
		return "time"
	default:
		return "float"
	}
}

var (
	// ErrNilVariable reports a nil *Variable or nil data array.
	ErrNilVariable = errors.New("dataset: nil variable")
	// ErrShape reports a dims list that does not match the data shape.
	ErrShape = errors.New("dataset: dims do not match data shape")
	// ErrDimSize reports an attempt to re-register a dimension with a
	// different size.
	ErrDimSize = errors.New("dataset: dimension size conflict")
	// ErrCoordLen reports a coordinate whose length differs from its
	// dimension's size.
	ErrCoordLen = errors.New("dataset: coordinate length mismatch")
	// ErrNoSuchVar reports a lookup of an unknown variable.
	ErrNoSuchVar = errors.New("dataset: no such variable")
	// ErrNoSuchCoord reports a lookup of an unknown coordinate.
	ErrNoSuchCoord = errors.New("dataset: no such coordinate")
	// ErrNoSuchDim reports a reference to an unknown dimension.
	ErrNoSuchDim = errors.New("dataset: no such dimension")
	// ErrKind reports a coordinate whose payload does not match its kind,
	// or an access under the wrong kind.
	ErrKind = errors.New("dataset: wrong coordinate kind")
)
