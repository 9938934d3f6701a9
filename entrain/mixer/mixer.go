package mixer

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-entrain/entrain/core"
	"github.com/cwbudde/algo-entrain/entrain/eq"
)

// Errors returned by mixer functions.
var (
	ErrUnknownBackground = errors.New("mixer: unknown background kind")
	ErrNoChannels        = errors.New("mixer: at least one channel is required")
	ErrChannelLength     = errors.New("mixer: channels must have equal, non-zero length")
)

// BackgroundKind selects the generated background bed.
type BackgroundKind string

const (
	// BackgroundWhiteNoise is Gaussian noise shaped toward pink.
	BackgroundWhiteNoise BackgroundKind = "white_noise"
	// BackgroundAmbient is a harmonic drone with slow amplitude movement.
	BackgroundAmbient BackgroundKind = "ambient"
)

const (
	// DefaultDroneBaseHz is the drone fundamental.
	DefaultDroneBaseHz = 100.0

	droneModRateHz = 0.1
	droneModDepth  = 0.1
)

// droneRatios and droneAmps define the five drone partials.
var (
	droneRatios = []float64{1.0, 1.5, 2.0, 2.5, 3.0}
	droneAmps   = []float64{1.0, 0.5, 0.3, 0.2, 0.1}
)

// Option configures a Mixer.
type Option func(*Mixer)

// WithSeed sets a deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(m *Mixer) {
		m.seed = seed
	}
}

// Mixer generates and blends background beds.
type Mixer struct {
	cfg  core.Config
	eq   *eq.Equalizer
	seed int64
}

// NewMixer creates a configured background mixer.
func NewMixer(opts ...core.Option) *Mixer {
	cfg := core.ApplyOptions(opts...)
	return &Mixer{
		cfg:  cfg,
		eq:   eq.New(core.WithSampleRate(cfg.SampleRate)),
		seed: 1,
	}
}

// NewMixerWithOptions creates a background mixer with mixer-specific options.
func NewMixerWithOptions(coreOpts []core.Option, opts ...Option) *Mixer {
	m := NewMixer(coreOpts...)
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Config returns the mixer processing configuration.
func (m *Mixer) Config() core.Config {
	return m.cfg
}

// SetSeed replaces the noise seed.
func (m *Mixer) SetSeed(seed int64) {
	m.seed = seed
}

// Seed returns the current noise seed.
func (m *Mixer) Seed() int64 {
	return m.seed
}

// WhiteNoise generates durationS seconds of pink-leaning noise with its peak
// normalized to exactly volume.
func (m *Mixer) WhiteNoise(durationS, volume float64) ([]float64, error) {
	n, err := m.cfg.Samples(durationS)
	if err != nil {
		return nil, err
	}
	return m.whiteNoiseN(n, volume)
}

// whiteNoiseN generates n samples of shaped noise.
func (m *Mixer) whiteNoiseN(n int, volume float64) ([]float64, error) {
	rng := rand.New(rand.NewSource(m.seed))

	fftSize := core.NextPowerOf2(n)
	timeBuf := make([]complex128, fftSize)
	for i := 0; i < n; i++ {
		timeBuf[i] = complex(rng.NormFloat64(), 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("mixer: failed to create FFT plan: %w", err)
	}

	freqBuf := make([]complex128, fftSize)
	err = plan.Forward(freqBuf, timeBuf)
	if err != nil {
		return nil, err
	}

	// 1/sqrt(f) shaping, DC bin untouched. Conjugate-symmetric bins share
	// a filter value so the inverse stays real.
	for k := 1; k < fftSize; k++ {
		bin := k
		if bin > fftSize/2 {
			bin = fftSize - bin
		}
		filter := 1 / math.Sqrt(float64(bin)/float64(fftSize))
		freqBuf[k] *= complex(filter, 0)
	}

	err = plan.Inverse(timeBuf, freqBuf)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = real(timeBuf[i])
	}

	core.NormalizePeak(out, volume)
	return out, nil
}

// AmbientDrone generates durationS seconds of a five-partial drone over
// baseHz with a slow 0.1 Hz, 10 % amplitude modulation, peak-normalized to
// volume.
func (m *Mixer) AmbientDrone(durationS, baseHz, volume float64) ([]float64, error) {
	n, err := m.cfg.Samples(durationS)
	if err != nil {
		return nil, err
	}
	return m.ambientDroneN(n, baseHz, volume)
}

// ambientDroneN generates n samples of drone.
func (m *Mixer) ambientDroneN(n int, baseHz, volume float64) ([]float64, error) {
	if baseHz <= 0 {
		return nil, fmt.Errorf("mixer: drone base frequency must be > 0: %f", baseHz)
	}

	out := make([]float64, n)
	for p, ratio := range droneRatios {
		step := 2 * math.Pi * baseHz * ratio / m.cfg.SampleRate
		amp := droneAmps[p]
		for i := range out {
			out[i] += amp * math.Sin(step*float64(i))
		}
	}

	mod := make([]float64, n)
	modStep := 2 * math.Pi * droneModRateHz / m.cfg.SampleRate
	for i := range mod {
		mod[i] = 1 + droneModDepth*math.Sin(modStep*float64(i))
	}
	vecmath.MulBlockInPlace(out, mod)

	core.NormalizePeak(out, volume)
	return out, nil
}

// Mix generates a background matching the length of main, optionally
// equalizes it, and adds it to every channel independently. Each output
// channel is peak-limited to 1.0 on its own; the channel shape of the input
// is preserved.
func (m *Mixer) Mix(main [][]float64, kind BackgroundKind, volume float64, eqGains map[eq.Band]float64) ([][]float64, error) {
	if len(main) == 0 {
		return nil, ErrNoChannels
	}
	n := len(main[0])
	for _, ch := range main {
		if len(ch) != n || n == 0 {
			return nil, ErrChannelLength
		}
	}

	var background []float64
	var err error
	switch kind {
	case BackgroundWhiteNoise:
		background, err = m.whiteNoiseN(n, volume)
	case BackgroundAmbient:
		background, err = m.ambientDroneN(n, DefaultDroneBaseHz, volume)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownBackground, kind)
	}
	if err != nil {
		return nil, err
	}

	if len(eqGains) > 0 {
		background, err = m.eq.Process(background, eqGains)
		if err != nil {
			return nil, err
		}
	}

	mixed := make([][]float64, len(main))
	for c, ch := range main {
		out := make([]float64, n)
		copy(out, ch)
		vecmath.AddBlockInPlace(out, background)
		core.LimitPeak(out, 1.0)
		mixed[c] = out
	}
	return mixed, nil
}
