package calconv

import (
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"
)

var (
	// ErrNilDataset is returned when the input dataset is nil.
	ErrNilDataset = errors.New("calconv: nil dataset")
	// ErrNoTime is returned when the dataset has no non-empty time
	// coordinate of time kind.
	ErrNoTime = errors.New("calconv: no time coordinate")
	// ErrAlign is returned when daily data crosses a 360-day calendar
	// boundary without an alignment mode.
	ErrAlign = errors.New("calconv: align mode required for 360-day daily conversion")
	// ErrOptionViolation is returned when an option carries an invalid
	// value.
	ErrOptionViolation = errors.New("calconv: option violation")
)

// AlignMode selects how daily data is aligned across a 360-day calendar
// boundary.
type AlignMode uint8

const (
	// AlignNone declines the alignment; 360-day daily conversions fail.
	AlignNone AlignMode = iota
	// AlignDate keeps month and day, dropping dates the target lacks.
	AlignDate
	// AlignYear rescales the day of year proportionally.
	AlignYear
	// AlignRandom spreads the surplus days randomly across the year.
	AlignRandom
)

// String implements fmt.Stringer.
func (m AlignMode) String() string {
	switch m {
	case AlignNone:
		return "none"
	case AlignDate:
		return "date"
	case AlignYear:
		return "year"
	case AlignRandom:
		return "random"
	default:
		return fmt.Sprintf("AlignMode(%d)", uint8(m))
	}
}

// DefaultSeed feeds the random alignment when no seed or generator is
// supplied, keeping conversions reproducible by default.
const DefaultSeed int64 = 0

// Options configures ConvertCalendar.
type Options struct {
	// Align selects the 360-day daily alignment.
	Align AlignMode
	// Missing, when set, inserts target dates absent from the source at
	// the inferred source frequency, filled with this value.
	Missing *float64
	// Logger receives conversion diagnostics.
	Logger *zap.Logger

	rng *rand.Rand
	err error
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the baseline configuration: no alignment, no
// missing insertion, generator seeded with DefaultSeed.
func DefaultOptions() Options {
	return Options{Logger: zap.NewNop(), rng: rand.New(rand.NewSource(DefaultSeed))}
}

// WithAlignOn selects the alignment mode for 360-day daily conversions.
func WithAlignOn(m AlignMode) Option {
	return func(o *Options) {
		if m > AlignRandom {
			o.err = fmt.Errorf("%w: unknown align mode %d", ErrOptionViolation, m)
			return
		}
		o.Align = m
	}
}

// WithSeed seeds a fresh generator for the random alignment.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand supplies a shared generator for the random alignment. Nil
// restores the default seeded generator.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		if r == nil {
			r = rand.New(rand.NewSource(DefaultSeed))
		}
		o.rng = r
	}
}

// WithMissing turns on insertion of absent target dates, filled with v.
func WithMissing(v float64) Option {
	return func(o *Options) { o.Missing = &v }
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
