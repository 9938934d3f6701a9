// Package safety gates session parameters before synthesis runs.
//
// The gate is a collaborator of the synthesis core, not part of it: callers
// are expected to validate here first, while the overtone generator keeps its
// own independent 1000 Hz hard ceiling as defense in depth.
package safety

import "fmt"

// Limits bound acceptable session parameters.
type Limits struct {
	MinFrequency float64 // Hz
	MaxFrequency float64 // Hz
	MaxVolume    float64 // 0..1
	MaxDurationS float64 // seconds
}

// DefaultLimits returns the stock safety envelope: 0.5-100 Hz entrainment
// targets, 0.8 maximum volume, one-hour maximum session.
func DefaultLimits() Limits {
	return Limits{
		MinFrequency: 0.5,
		MaxFrequency: 100.0,
		MaxVolume:    0.8,
		MaxDurationS: 3600.0,
	}
}

// ValidateFrequency reports whether frequency lies in the safe range.
func (l Limits) ValidateFrequency(frequency float64) bool {
	return frequency >= l.MinFrequency && frequency <= l.MaxFrequency
}

// ValidateVolume reports whether volume lies in [0, MaxVolume].
func (l Limits) ValidateVolume(volume float64) bool {
	return volume >= 0 && volume <= l.MaxVolume
}

// ValidateSession checks all session parameters and returns a human-readable
// reason on rejection. Duration must be in (0, MaxDurationS].
func (l Limits) ValidateSession(frequency, volume, durationS float64) (bool, string) {
	if !l.ValidateFrequency(frequency) {
		return false, fmt.Sprintf("frequency %gHz is outside safe range", frequency)
	}

	if !l.ValidateVolume(volume) {
		return false, fmt.Sprintf("volume level %g is outside safe range", volume)
	}

	if durationS <= 0 || durationS > l.MaxDurationS {
		return false, fmt.Sprintf("duration %gs is invalid", durationS)
	}

	return true, "parameters validated successfully"
}
