package textfx

import "time"

// Option configures a Driver or an Effect during creation.
//
// Example:
//
//	fx, err := textfx.New(host,
//	    textfx.WithCount(300),
//	    textfx.WithSeed(42),
//	)
type Option func(*options)

// options holds optional configuration for Driver and Effect creation.
type options struct {
	cfg     Config
	rnd     Rand
	masks   *MaskGenerator
	onFrame func(*Surface)
}

// defaultOptions returns the default options. The random source is seeded
// from the clock unless WithRand or WithSeed is given.
func defaultOptions() options {
	return options{cfg: DefaultConfig()}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.rnd == nil {
		seed := uint64(time.Now().UnixNano()) //nolint:gosec // wall clock is always positive here
		o.rnd = NewRand(seed)
	}
	return o
}

// WithConfig replaces the whole configuration.
// Options applied after it can still adjust single fields.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithCount sets the number of particles. Negative values mean zero.
func WithCount(n int) Option {
	return func(o *options) {
		o.cfg.Count = max(n, 0)
	}
}

// WithResizeDelay sets the settle time of the debounced resize path.
// Negative values become zero. See Config.ResizeDelay for delays below
// DefaultResizeDelay.
func WithResizeDelay(d time.Duration) Option {
	return func(o *options) {
		o.cfg.ResizeDelay = max(d, 0)
	}
}

// WithRand injects the random source used for particle placement.
// Use it to make an animation reproducible.
func WithRand(r Rand) Option {
	return func(o *options) {
		o.rnd = r
	}
}

// WithSeed is shorthand for WithRand(NewRand(seed)).
func WithSeed(seed uint64) Option {
	return WithRand(NewRand(seed))
}

// WithMaskGenerator sets the generator used to build text masks.
func WithMaskGenerator(g *MaskGenerator) Option {
	return func(o *options) {
		o.masks = g
	}
}

// WithFonts builds masks with fonts from r.
func WithFonts(r *FontRegistry) Option {
	return func(o *options) {
		o.masks = NewMaskGenerator(r)
	}
}

// OnFrame registers fn to be called after every completed frame, once the
// mask has been composited. Hosts use it to present the surface.
func OnFrame(fn func(*Surface)) Option {
	return func(o *options) {
		o.onFrame = fn
	}
}
