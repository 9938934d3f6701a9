package core

import "math"

// MaxAbs returns the largest absolute sample value in data, or 0 for an
// empty slice.
func MaxAbs(data []float64) float64 {
	maxAbs := 0.0
	for _, v := range data {
		av := math.Abs(v)
		if av > maxAbs {
			maxAbs = av
		}
	}
	return maxAbs
}

// Scale multiplies every sample in data by factor, in place.
func Scale(data []float64, factor float64) {
	for i := range data {
		data[i] *= factor
	}
}

// NormalizePeak scales data in place so its peak equals targetPeak. A silent
// buffer is left untouched.
func NormalizePeak(data []float64, targetPeak float64) {
	peak := MaxAbs(data)
	if peak == 0 {
		return
	}
	Scale(data, targetPeak/peak)
}

// LimitPeak scales data down in place so max(|sample|) does not exceed limit.
// Signals already under the limit are left untouched, preserving their level.
func LimitPeak(data []float64, limit float64) {
	peak := MaxAbs(data)
	if peak <= limit || peak == 0 {
		return
	}
	Scale(data, limit/peak)
}
