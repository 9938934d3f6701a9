// Package eq implements a fixed three-band gain equalizer operating in the
// frequency domain.
//
// Gain is applied per FFT bin: the buffer is zero-padded to a power of two,
// transformed, every bin whose frequency falls inside the band (mirrored onto
// the negative-frequency half so the inverse stays real) is scaled, and the
// result is transformed back and truncated to the original length.
package eq

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-entrain/entrain/core"
)

// Errors returned by equalizer functions.
var (
	ErrUnknownBand = errors.New("eq: unknown band")
	ErrEmptyInput  = errors.New("eq: input must not be empty")
)

// Band names one of the three fixed equalizer bands.
type Band string

// The fixed bands. Edges are inclusive at the low end and exclusive at the
// high end, so a bin at exactly 250 Hz belongs to mid, not low.
const (
	BandLow  Band = "low"  // [20, 250) Hz
	BandMid  Band = "mid"  // [250, 4000) Hz
	BandHigh Band = "high" // [4000, 20000) Hz
)

// bandOrder fixes the application order in Process so results do not depend
// on map iteration.
var bandOrder = []Band{BandLow, BandMid, BandHigh}

var bandRanges = map[Band][2]float64{
	BandLow:  {20, 250},
	BandMid:  {250, 4000},
	BandHigh: {4000, 20000},
}

// Equalizer applies per-band gain via frequency-domain filtering.
type Equalizer struct {
	cfg core.Config
}

// New creates a configured equalizer.
func New(opts ...core.Option) *Equalizer {
	return &Equalizer{cfg: core.ApplyOptions(opts...)}
}

// Config returns the equalizer processing configuration.
func (e *Equalizer) Config() core.Config {
	return e.cfg
}

// ApplyBandFilter scales the named band by gainDb (converted to a linear
// multiplier 10^(gainDb/20)) and returns a buffer of the same length.
func (e *Equalizer) ApplyBandFilter(audio []float64, band Band, gainDb float64) ([]float64, error) {
	bandRange, ok := bandRanges[band]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBand, band)
	}
	if len(audio) == 0 {
		return nil, ErrEmptyInput
	}

	gain := math.Pow(10, gainDb/20)

	fftSize := core.NextPowerOf2(len(audio))
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("eq: failed to create FFT plan: %w", err)
	}

	timeBuf := make([]complex128, fftSize)
	for i, v := range audio {
		timeBuf[i] = complex(v, 0)
	}

	freqBuf := make([]complex128, fftSize)
	err = plan.Forward(freqBuf, timeBuf)
	if err != nil {
		return nil, err
	}

	binWidth := e.cfg.SampleRate / float64(fftSize)
	for k := range freqBuf {
		// Mirror the upper half onto its negative-frequency alias so both
		// conjugate bins receive the same gain and the inverse stays real.
		bin := k
		if bin > fftSize/2 {
			bin = fftSize - bin
		}
		freq := float64(bin) * binWidth
		if freq >= bandRange[0] && freq < bandRange[1] {
			freqBuf[k] *= complex(gain, 0)
		}
	}

	err = plan.Inverse(timeBuf, freqBuf)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(audio))
	for i := range out {
		out[i] = real(timeBuf[i])
	}
	return out, nil
}

// Process applies every gain in the map, always in low/mid/high order, and
// peak-limits the final result to 1.0. Unknown band names fail before any
// filtering happens.
func (e *Equalizer) Process(audio []float64, gains map[Band]float64) ([]float64, error) {
	for band := range gains {
		if _, ok := bandRanges[band]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBand, band)
		}
	}

	result := make([]float64, len(audio))
	copy(result, audio)

	for _, band := range bandOrder {
		gainDb, ok := gains[band]
		if !ok {
			continue
		}

		var err error
		result, err = e.ApplyBandFilter(result, band, gainDb)
		if err != nil {
			return nil, err
		}
	}

	core.LimitPeak(result, 1.0)
	return result, nil
}
