// Package pcm converts float sample buffers to 16-bit PCM and defines the
// sink abstraction that receives encoded sessions.
//
// Conversion scales each float sample in [-1, 1] by 32767 and truncates
// toward zero. The truncation policy is part of the package contract:
// switching to round-to-nearest would change the bytes of every generated
// file.
package pcm

import (
	"errors"
	"fmt"
	"math"
)

// ErrLengthMismatch is returned when the two stereo channels differ in
// length.
var ErrLengthMismatch = errors.New("pcm: left and right channels must have the same length")

const fullScale = 32767.0

// Sink receives an encoded PCM session and returns a retrievable handle
// (a path or identifier). Persistence mechanics belong to the sink.
type Sink interface {
	Store(name string, data []int, sampleRate int) (string, error)
}

// EncodeStereo16 interleaves left/right into L0 R0 L1 R1 ... 16-bit samples.
// Inputs are expected in [-1, 1]; out-of-range values are clamped before
// scaling so overdriven buffers cannot wrap around.
func EncodeStereo16(left, right []float64) ([]int, error) {
	if len(left) != len(right) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(left), len(right))
	}

	out := make([]int, len(left)*2)
	for i := range left {
		out[i*2] = quantize(left[i])
		out[i*2+1] = quantize(right[i])
	}
	return out, nil
}

// quantize truncates toward zero after scaling to full range.
func quantize(v float64) int {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int(v * fullScale)
}

// Stats returns the stereo peak and RMS across both channels, for
// reporting after generation. Channels must have the same length.
func Stats(left, right []float64) (peak, rms float64) {
	if len(left) == 0 || len(left) != len(right) {
		return 0, 0
	}

	var sum float64
	for i := range left {
		lv := left[i]
		rv := right[i]
		a := math.Abs(lv)
		if b := math.Abs(rv); b > a {
			a = b
		}
		if a > peak {
			peak = a
		}
		sum += lv*lv + rv*rv
	}
	return peak, math.Sqrt(sum / float64(len(left)*2))
}
