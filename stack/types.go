package stack

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Youssef-Bakr/xscen/dataset"
)

var (
	// ErrNilDataset reports a nil input dataset.
	ErrNilDataset = errors.New("stack: nil dataset")
	// ErrOptionViolation reports an invalid option value.
	ErrOptionViolation = errors.New("stack: invalid option")
	// ErrDimMismatch reports a mask or stacked dimension that does not fit
	// the dataset (absent, wrong size, or clashing with an existing name).
	ErrDimMismatch = errors.New("stack: dimension mismatch")
	// ErrDimSubset reports a variable spanning only part of the mask
	// dimensions; such a variable can be neither compacted nor passed
	// through whole.
	ErrDimSubset = errors.New("stack: variable spans only part of the mask dimensions")
	// ErrNoCoords reports an unstack with no point coordinates to rebuild
	// the grid from.
	ErrNoCoords = errors.New("stack: no point coordinates on the stacked dimension")
	// ErrSidecar reports a side-car coordinate file that cannot be read.
	ErrSidecar = errors.New("stack: side-car coordinates unavailable")
)

// Options configures both stacking directions. Zero-value fields fall back
// to the defaults; build from DefaultOptions via the With* functions.
type Options struct {
	// Dim is the name of the compacted point dimension ("loc" by default):
	// the dimension created by StackDropNaNs and consumed by
	// UnstackFillNaN.
	Dim string
	// CoordsPath is the side-car template, supporting "{domain}" and
	// "{shape}" placeholders. Empty disables side-car IO.
	CoordsPath string
	// CoordNames restricts UnstackFillNaN to the named point coordinates;
	// empty means every coordinate living on Dim, in dataset order.
	CoordNames []string
	// CoordValues supplies explicit full-range coordinates to reindex the
	// rebuilt dimensions onto, keyed by coordinate name. Takes precedence
	// over CoordsPath.
	CoordValues map[string]*dataset.Coord
	// Logger receives side-car IO and progress events; zap.NewNop() by
	// default.
	Logger *zap.Logger

	err error
}

// Option mutates Options. Invalid values are deferred and surface as
// ErrOptionViolation when the operation runs.
type Option func(*Options)

// DefaultOptions returns the baseline configuration: dimension "loc", no
// side-car, all point coordinates, no-op logger.
func DefaultOptions() Options {
	return Options{Dim: "loc", Logger: zap.NewNop()}
}

// WithDim sets the name of the compacted point dimension.
func WithDim(name string) Option {
	return func(o *Options) {
		if name == "" {
			o.err = fmt.Errorf("%w: empty dimension name", ErrOptionViolation)
			return
		}
		o.Dim = name
	}
}

// WithCoordsPath sets the side-car template ("{domain}", "{shape}").
func WithCoordsPath(template string) Option {
	return func(o *Options) { o.CoordsPath = template }
}

// WithCoordNames restricts unstacking to the named point coordinates.
func WithCoordNames(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			if n == "" {
				o.err = fmt.Errorf("%w: empty coordinate name", ErrOptionViolation)
				return
			}
		}
		o.CoordNames = append([]string(nil), names...)
	}
}

// WithCoordValues supplies explicit full-range coordinates for reindexing,
// keyed by coordinate name.
func WithCoordValues(coords map[string]*dataset.Coord) Option {
	return func(o *Options) {
		for name, c := range coords {
			if c == nil {
				o.err = fmt.Errorf("%w: nil coordinate %q", ErrOptionViolation, name)
				return
			}
		}
		o.CoordValues = coords
	}
}

// WithLogger sets the logger; nil restores the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.Logger = l
	}
}

// apply folds opts over the defaults and surfaces deferred violations.
func apply(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.err != nil {
		return o, o.err
	}
	return o, nil
}

// ResolvePath expands the side-car template: "{domain}" from the dataset's
// "cat:domain" attribute (or "unknown"), "{shape}" from the given shape
// string.
func ResolvePath(template string, attrs *dataset.Attrs, shape string) string {
	domain := attrs.Value("cat:domain")
	if domain == "" {
		domain = "unknown"
	}
	out := strings.ReplaceAll(template, "{domain}", domain)
	return strings.ReplaceAll(out, "{shape}", shape)
}
