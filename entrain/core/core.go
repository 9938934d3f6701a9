package core

import (
	"errors"
	"fmt"
)

// DefaultSampleRate is the sample rate used when no option overrides it.
const DefaultSampleRate = 44100.0

// ErrInvalidDuration is returned when a requested duration is non-positive or
// too short to span a single sample at the configured rate.
var ErrInvalidDuration = errors.New("core: duration must be positive and span at least one sample")

// Config defines common synthesis settings.
type Config struct {
	SampleRate float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults for offline synthesis.
func DefaultConfig() Config {
	return Config{
		SampleRate: DefaultSampleRate,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Samples converts a duration in seconds to a sample count, truncating
// fractional samples. Sub-sample and non-positive durations fail rather than
// silently producing empty buffers.
func (c Config) Samples(durationS float64) (int, error) {
	if c.SampleRate <= 0 {
		return 0, fmt.Errorf("core: sample rate must be > 0: %f", c.SampleRate)
	}

	n := int(c.SampleRate * durationS)
	if durationS <= 0 || n < 1 {
		return 0, fmt.Errorf("%w: %f s at %.0f Hz", ErrInvalidDuration, durationS, c.SampleRate)
	}

	return n, nil
}

// NextPowerOf2 returns the smallest power of two that is >= n, with a
// minimum of 1. FFT consumers use it to size zero-padded transform buffers.
func NextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
