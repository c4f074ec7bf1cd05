package ncio

import "errors"

var (
	// ErrNoCoords reports a side-car write with nothing to store.
	ErrNoCoords = errors.New("ncio: no coordinates to write")
	// ErrCoordKind reports a coordinate kind the format cannot store.
	ErrCoordKind = errors.New("ncio: unstorable coordinate kind")
	// ErrDim reports a dimension registered twice with different sizes.
	ErrDim = errors.New("ncio: conflicting dimension size")
	// ErrNoVar reports a variable named by the file's coords attribute but
	// absent from the file.
	ErrNoVar = errors.New("ncio: variable not in file")
	// ErrPayload reports a stored payload type this reader does not accept.
	ErrPayload = errors.New("ncio: unsupported payload type")
)
