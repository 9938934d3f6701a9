package harmonic

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-entrain/entrain/core"
)

// ErrInvalidFrequency is returned for non-positive fundamentals or
// fundamentals above the overtone safety ceiling.
var ErrInvalidFrequency = errors.New("harmonic: fundamental outside safe range")

// SafetyLimits bound overtone synthesis regardless of any validation done by
// the surrounding application.
type SafetyLimits struct {
	MaxFrequency   float64 // hard ceiling for fundamental and overtones, Hz
	MaxHarmonics   int     // highest harmonic index generated
	MinAmplitude   float64 // overtones below this amplitude are dropped
	AmplitudeDecay float64 // per-harmonic amplitude multiplier
}

// DefaultSafetyLimits returns the stock overtone limits.
func DefaultSafetyLimits() SafetyLimits {
	return SafetyLimits{
		MaxFrequency:   1000.0,
		MaxHarmonics:   5,
		MinAmplitude:   0.1,
		AmplitudeDecay: 0.7,
	}
}

// OvertoneGenerator synthesizes a fundamental enriched with a decaying
// overtone stack.
type OvertoneGenerator struct {
	cfg    core.Config
	calc   *Calculator
	limits SafetyLimits
}

// NewOvertoneGenerator creates an overtone generator with default safety
// limits.
func NewOvertoneGenerator(opts ...core.Option) *OvertoneGenerator {
	return &OvertoneGenerator{
		cfg:    core.ApplyOptions(opts...),
		calc:   NewCalculator(),
		limits: DefaultSafetyLimits(),
	}
}

// Config returns the generator processing configuration.
func (g *OvertoneGenerator) Config() core.Config {
	return g.cfg
}

// Limits returns the active safety limits.
func (g *OvertoneGenerator) Limits() SafetyLimits {
	return g.limits
}

// GenerateOvertones synthesizes fundamental plus overtones for durationS
// seconds. The fundamental sine plays at baseAmplitude; each following
// harmonic decays by AmplitudeDecay and generation stops once a harmonic
// would exceed MaxFrequency or fall below MinAmplitude. The result is
// peak-limited to 1.0 only when the stacked signal actually clips.
func (g *OvertoneGenerator) GenerateOvertones(fundamental, durationS, baseAmplitude float64) ([]float64, error) {
	if fundamental <= 0 || fundamental > g.limits.MaxFrequency {
		return nil, fmt.Errorf("%w: %.3f Hz (ceiling %.0f Hz)", ErrInvalidFrequency, fundamental, g.limits.MaxFrequency)
	}

	n, err := g.cfg.Samples(durationS)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	amplitude := baseAmplitude

	addSine(out, fundamental, amplitude, g.cfg.SampleRate)

	for h := 2; h <= g.limits.MaxHarmonics; h++ {
		overtone := fundamental * float64(h)
		if overtone > g.limits.MaxFrequency {
			break
		}

		amplitude *= g.limits.AmplitudeDecay
		if amplitude < g.limits.MinAmplitude {
			break
		}

		addSine(out, overtone, amplitude, g.cfg.SampleRate)
	}

	core.LimitPeak(out, 1.0)
	return out, nil
}

// GenerateEnhanced synthesizes target with harmonic enhancement: an
// overtone-rich optimal carrier at 60 % of baseAmplitude layered with the
// target itself at 40 %, peak-limited to 1.0.
func (g *OvertoneGenerator) GenerateEnhanced(target, durationS, baseAmplitude float64) ([]float64, error) {
	carrier := g.calc.OptimizeCarrier(target, DefaultMinCarrier, DefaultMaxCarrier)

	carrierSignal, err := g.GenerateOvertones(carrier, durationS, baseAmplitude*0.6)
	if err != nil {
		return nil, err
	}

	targetSignal, err := g.GenerateOvertones(target, durationS, baseAmplitude*0.4)
	if err != nil {
		return nil, err
	}

	vecmath.AddBlockInPlace(carrierSignal, targetSignal)
	core.LimitPeak(carrierSignal, 1.0)
	return carrierSignal, nil
}

// addSine accumulates amplitude*sin(2*pi*freq*t) into out.
func addSine(out []float64, freqHz, amplitude, sampleRate float64) {
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] += amplitude * math.Sin(step*float64(i))
	}
}
