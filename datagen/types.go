package datagen

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrOptionViolation reports an invalid option value.
	ErrOptionViolation = errors.New("datagen: option violation")
	// ErrSize reports a non-positive grid or axis size.
	ErrSize = errors.New("datagen: non-positive size")
	// ErrName reports an empty variable name.
	ErrName = errors.New("datagen: empty variable name")
	// ErrDim reports a dimension the dataset under construction does not
	// carry yet.
	ErrDim = errors.New("datagen: unknown dimension")
	// ErrFraction reports a fraction outside [0, 1].
	ErrFraction = errors.New("datagen: fraction outside [0, 1]")
	// ErrDate reports an invalid start date.
	ErrDate = errors.New("datagen: invalid start date")
)

// DefaultSeed feeds the generator when no seed or generator is supplied,
// so fixtures are reproducible by default.
const DefaultSeed int64 = 0

// Options configures the numeric texture of generated data. Build resolves
// them once and hands the result to every builder.
type Options struct {
	// Base is the level every field oscillates around.
	Base float64
	// Amplitude scales the seasonal sinusoid of fields with a time axis.
	Amplitude float64
	// Gradient is the per-index ramp along every non-time dimension,
	// keeping each grid cell distinguishable.
	Gradient float64
	// Noise is the standard deviation of the Gaussian term.
	Noise float64
	// LatStart, LatStep place the latitude coordinate values.
	LatStart, LatStep float64
	// LonStart, LonStep place the longitude coordinate values.
	LonStart, LonStep float64

	rng *rand.Rand
	err error
}

// Option mutates Options. Invalid values are deferred and surface when
// Build runs.
type Option func(*Options)

// DefaultOptions returns the baseline configuration: fields around 288
// with a seasonal swing of 5, a 0.1 ramp per grid index, unit noise, a
// one-degree grid anchored at 45N 75W, generator seeded with DefaultSeed.
func DefaultOptions() Options {
	return Options{
		Base:      288,
		Amplitude: 5,
		Gradient:  0.1,
		Noise:     1,
		LatStart:  45, LatStep: 1,
		LonStart: -75, LonStep: 1,
		rng: rand.New(rand.NewSource(DefaultSeed)),
	}
}

// WithBase sets the level fields oscillate around.
func WithBase(v float64) Option {
	return func(o *Options) { o.Base = v }
}

// WithAmplitude sets the seasonal swing of fields with a time axis.
func WithAmplitude(v float64) Option {
	return func(o *Options) { o.Amplitude = v }
}

// WithGradient sets the per-index ramp along non-time dimensions.
func WithGradient(v float64) Option {
	return func(o *Options) { o.Gradient = v }
}

// WithNoise sets the standard deviation of the Gaussian term; zero turns
// the noise off.
func WithNoise(sd float64) Option {
	return func(o *Options) {
		if sd < 0 {
			o.err = fmt.Errorf("%w: negative noise %v", ErrOptionViolation, sd)
			return
		}
		o.Noise = sd
	}
}

// WithLatRange places the latitude values: start plus step per index.
// A zero step would collapse the coordinate and is rejected.
func WithLatRange(start, step float64) Option {
	return func(o *Options) {
		if step == 0 {
			o.err = fmt.Errorf("%w: zero latitude step", ErrOptionViolation)
			return
		}
		o.LatStart, o.LatStep = start, step
	}
}

// WithLonRange places the longitude values: start plus step per index.
func WithLonRange(start, step float64) Option {
	return func(o *Options) {
		if step == 0 {
			o.err = fmt.Errorf("%w: zero longitude step", ErrOptionViolation)
			return
		}
		o.LonStart, o.LonStep = start, step
	}
}

// WithSeed seeds a fresh generator, locking every stochastic builder.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand supplies a shared generator. Nil restores the default seeded
// one.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		if r == nil {
			r = rand.New(rand.NewSource(DefaultSeed))
		}
		o.rng = r
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
