package seasonal

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	// ErrNilDataset is returned when the input dataset is nil.
	ErrNilDataset = errors.New("seasonal: nil dataset")
	// ErrNoTime is returned when the dataset has no non-empty time
	// coordinate of time kind.
	ErrNoTime = errors.New("seasonal: no time coordinate")
	// ErrFrequency is returned when the inferred sampling frequency has no
	// season labeling scheme and no explicit map was supplied.
	ErrFrequency = errors.New("seasonal: no season labels for frequency")
	// ErrSeasonKey is returned when a timestamp's "MM-DD" key is missing
	// from the season map.
	ErrSeasonKey = errors.New("seasonal: date key not in season map")
	// ErrSeasonCell is returned when two timestamps map to the same
	// (year, season) cell.
	ErrSeasonCell = errors.New("seasonal: duplicate (year, season) cell")
	// ErrOptionViolation is returned when an option carries an invalid
	// value.
	ErrOptionViolation = errors.New("seasonal: option violation")
)

// Options configures UnstackDates. Zero value is not ready for use; start
// from DefaultOptions or pass Option values.
type Options struct {
	// Seasons maps "MM-DD" keys to season labels. Nil means derive the map
	// from the inferred sampling frequency.
	Seasons map[string]string
	// NewDim names the season dimension.
	NewDim string
	// Logger receives reshape diagnostics.
	Logger *zap.Logger

	err error
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the baseline configuration: derived season map,
// "season" as the new dimension, no-op logger.
func DefaultOptions() Options {
	return Options{NewDim: "season", Logger: zap.NewNop()}
}

// WithSeasons supplies an explicit "MM-DD" -> label map, bypassing
// frequency inference.
func WithSeasons(m map[string]string) Option {
	return func(o *Options) { o.Seasons = m }
}

// WithNewDim names the season dimension. Empty is invalid.
func WithNewDim(name string) Option {
	return func(o *Options) {
		if name == "" {
			o.err = fmt.Errorf("%w: empty season dimension name", ErrOptionViolation)
			return
		}
		o.NewDim = name
	}
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
