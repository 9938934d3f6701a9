package transition

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-entrain/entrain/core"
)

// Errors returned by transition functions.
var (
	ErrLengthMismatch = errors.New("transition: frequencies and timestamps must have the same length")
	ErrUnknownCurve   = errors.New("transition: unknown curve kind")
)

const (
	// DefaultPower is the exponent used by Exponential curves.
	DefaultPower = 2.0

	// DefaultSmoothness is the logistic steepness used by Sigmoid curves.
	DefaultSmoothness = 6.0
)

// Curve selects a transition curve shape.
type Curve int

const (
	// Linear sweeps at a constant rate.
	Linear Curve = iota
	// Exponential lingers near the start frequency before accelerating.
	Exponential
	// Sigmoid eases both out of the start and into the end frequency.
	Sigmoid
)

// String returns the curve kind name.
func (c Curve) String() string {
	switch c {
	case Linear:
		return "linear"
	case Exponential:
		return "exponential"
	case Sigmoid:
		return "sigmoid"
	default:
		return "unknown"
	}
}

// ParseCurve maps a curve kind name to its Curve value.
func ParseCurve(s string) (Curve, error) {
	switch s {
	case "linear":
		return Linear, nil
	case "exponential":
		return Exponential, nil
	case "sigmoid":
		return Sigmoid, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCurve, s)
	}
}

// Generator produces frequency curves at a configured sample rate.
type Generator struct {
	cfg core.Config
}

// NewGenerator creates a configured transition generator.
func NewGenerator(opts ...core.Option) *Generator {
	return &Generator{cfg: core.ApplyOptions(opts...)}
}

// Config returns the generator processing configuration.
func (g *Generator) Config() core.Config {
	return g.cfg
}

// Generate produces the curve of the given kind with default shape
// parameters.
func (g *Generator) Generate(kind Curve, startHz, endHz, durationS float64) ([]float64, error) {
	switch kind {
	case Linear:
		return g.Linear(startHz, endHz, durationS)
	case Exponential:
		return g.Exponential(startHz, endHz, durationS, DefaultPower)
	case Sigmoid:
		return g.Sigmoid(startHz, endHz, durationS, DefaultSmoothness)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCurve, int(kind))
	}
}

// Linear returns evenly spaced frequencies from startHz to endHz inclusive.
func (g *Generator) Linear(startHz, endHz, durationS float64) ([]float64, error) {
	n, err := g.cfg.Samples(durationS)
	if err != nil {
		return nil, err
	}
	if n == 1 {
		return []float64{startHz}, nil
	}
	return floats.Span(make([]float64, n), startHz, endHz), nil
}

// Exponential returns a curve that stays near startHz for longer before
// accelerating toward endHz: f(t) = start + (end-start)*t^power for t in
// [0, 1].
func (g *Generator) Exponential(startHz, endHz, durationS, power float64) ([]float64, error) {
	if power <= 0 || math.IsNaN(power) || math.IsInf(power, 0) {
		return nil, fmt.Errorf("transition: power must be > 0 and finite: %f", power)
	}

	n, err := g.cfg.Samples(durationS)
	if err != nil {
		return nil, err
	}
	if n == 1 {
		return []float64{startHz}, nil
	}

	out := floats.Span(make([]float64, n), 0, 1)
	span := endHz - startHz
	for i, t := range out {
		out[i] = startHz + span*math.Pow(t, power)
	}
	return out, nil
}

// Sigmoid returns a logistic-shaped curve from startHz to endHz. The raw
// logistic over t in [-smoothness/2, smoothness/2] never reaches 0 or 1, so
// the curve is renormalized against its own first and last sampled values to
// hit the endpoints exactly.
func (g *Generator) Sigmoid(startHz, endHz, durationS, smoothness float64) ([]float64, error) {
	if smoothness <= 0 || math.IsNaN(smoothness) || math.IsInf(smoothness, 0) {
		return nil, fmt.Errorf("transition: smoothness must be > 0 and finite: %f", smoothness)
	}

	n, err := g.cfg.Samples(durationS)
	if err != nil {
		return nil, err
	}
	if n == 1 {
		return []float64{startHz}, nil
	}

	out := floats.Span(make([]float64, n), -smoothness/2, smoothness/2)
	for i, t := range out {
		out[i] = 1 / (1 + math.Exp(-t))
	}

	first := out[0]
	last := out[n-1]
	span := endHz - startHz
	for i, s := range out {
		out[i] = startHz + span*(s-first)/(last-first)
	}
	return out, nil
}

// OptimalDuration recommends a transition length from the frequency delta.
// Larger jumps get more time so the sweep stays comfortable.
func OptimalDuration(startHz, endHz float64) float64 {
	delta := math.Abs(endHz - startHz)

	switch {
	case delta < 2.0:
		return 5.0
	case delta < 5.0:
		return 10.0
	default:
		return 20.0
	}
}

// Point describes one leg of a multi-frequency session schedule.
type Point struct {
	StartTime float64
	EndTime   float64
	Duration  float64
}

// Points pairs consecutive schedule entries into transition legs. The two
// inputs must have the same length; n entries yield n-1 legs.
func Points(frequencies, timestamps []float64) ([]Point, error) {
	if len(frequencies) != len(timestamps) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(frequencies), len(timestamps))
	}

	if len(timestamps) < 2 {
		return nil, nil
	}

	points := make([]Point, 0, len(timestamps)-1)
	for i := 0; i < len(timestamps)-1; i++ {
		points = append(points, Point{
			StartTime: timestamps[i],
			EndTime:   timestamps[i+1],
			Duration:  timestamps[i+1] - timestamps[i],
		})
	}
	return points, nil
}
