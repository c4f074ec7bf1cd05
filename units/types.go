package units

import (
	"errors"

	"go.uber.org/zap"
)

var (
	// ErrParse is returned for unknown unit syntax or symbols.
	ErrParse = errors.New("units: cannot parse unit")
	// ErrIncompatible is returned when two units have different
	// dimensional signatures.
	ErrIncompatible = errors.New("units: incompatible dimensions")
	// ErrTransform is returned when the time exponents of source and
	// target differ by more than one power, so no physically meaningful
	// conversion exists.
	ErrTransform = errors.New("units: no transformation between units")
	// ErrNoUnits is returned when a listed variable has no units
	// attribute.
	ErrNoUnits = errors.New("units: variable has no units attribute")
	// ErrNoTime is returned when a rate/amount transform needs time steps
	// the dataset cannot provide.
	ErrNoTime = errors.New("units: no usable time steps")
	// ErrNilDataset is returned when the input dataset is nil.
	ErrNilDataset = errors.New("units: nil dataset")
)

// Options configures ChangeUnits.
type Options struct {
	// Logger receives conversion diagnostics.
	Logger *zap.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the baseline configuration.
func DefaultOptions() Options {
	return Options{Logger: zap.NewNop()}
}

// WithLogger sets the logger. Nil restores the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.Logger = l
	}
}

func apply(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
