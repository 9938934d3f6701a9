package harmonic

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"
)

// CanonicalRatios lists the interval ratios considered harmonic, in contract
// order: unison, octave, perfect fifth, perfect fourth, major third, minor
// third. Earlier entries win nearest-harmonic ties.
var CanonicalRatios = []float64{1.0, 2.0, 1.5, 1.333, 1.25, 1.2}

const (
	// DefaultCommonTolerance is the default deviation accepted when matching
	// harmonics of two different fundamentals.
	DefaultCommonTolerance = 0.1

	// DefaultMinCarrier and DefaultMaxCarrier bound the carrier search range.
	DefaultMinCarrier = 200.0
	DefaultMaxCarrier = 1000.0

	// DefaultMaxRatio is the widest frequency ratio accepted by
	// ValidateCombination when no harmonic decomposition exists.
	DefaultMaxRatio = 2.0

	// ratioTolerance absorbs floating-point error when comparing a reduced
	// ratio against a canonical entry.
	ratioTolerance = 0.01
)

// coreCarriers maps canonical entrainment frequencies to validated carriers:
// alpha 10 Hz -> 200 Hz (2^4 * 1.25), theta 6 Hz -> 288 Hz (2^5 * 1.5),
// delta 2 Hz -> 256 Hz (2^7).
var coreCarriers = []struct {
	target  float64
	carrier float64
}{
	{10.0, 200.0},
	{6.0, 288.0},
	{2.0, 256.0},
}

// Calculator computes and validates harmonic relationships between
// frequencies. The zero value is ready to use.
type Calculator struct{}

// NewCalculator creates a harmonic calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// FindNearestHarmonic returns the canonical harmonic of base closest to
// target, along with the ratio that produced it. Ties resolve to the ratio
// listed first in CanonicalRatios.
func (c *Calculator) FindNearestHarmonic(base, target float64) (freq, ratio float64) {
	bestDiff := math.Inf(1)
	for _, r := range CanonicalRatios {
		candidate := base * r
		diff := math.Abs(candidate - target)
		if diff < bestDiff {
			bestDiff = diff
			freq = candidate
			ratio = r
		}
	}
	return freq, ratio
}

// Series returns the first n integer harmonics of fundamental:
// fundamental*1 .. fundamental*n.
func (c *Calculator) Series(fundamental float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = fundamental * float64(i+1)
	}
	return out
}

// CommonHarmonics returns averaged near-coincident harmonics of f1 and f2.
// The first ten harmonics of each input are compared pairwise; every pair
// within tolerance contributes (h1+h2)/2. The result is sorted ascending and
// deliberately not deduplicated, so several qualifying pairs near the same
// value all appear.
func (c *Calculator) CommonHarmonics(f1, f2, tolerance float64) []float64 {
	h1 := c.Series(f1, 10)
	h2 := c.Series(f2, 10)

	var common []float64
	for _, a := range h1 {
		for _, b := range h2 {
			if math.Abs(a-b) <= tolerance {
				common = append(common, (a+b)/2)
			}
		}
	}

	sort.Float64s(common)
	return common
}

// DecomposeRatio reduces ratio by repeated halving into [1, 2] and compares
// the remainder against the canonical ratios. It returns 1.0 on a match and
// the unmatched remainder otherwise.
//
// The contract assumes ratio >= 1; values below 1 pass through without
// reduction, which callers forming max/min ratios never trigger.
func (c *Calculator) DecomposeRatio(ratio float64) float64 {
	for ratio > 2.0 {
		ratio /= 2.0
	}

	for _, r := range CanonicalRatios {
		if math.Abs(ratio-r) < ratioTolerance {
			return 1.0
		}
	}
	return ratio
}

// OptimizeCarrier finds a carrier frequency in [minCarrier, maxCarrier] that
// forms a canonical harmonic relationship with target. Core entrainment
// frequencies (10, 6, 2 Hz) use validated carriers when those fall inside the
// range; otherwise integer multiples of target are scanned and the smallest
// multiplier whose octave-reduced ratio matches a canonical ratio wins.
//
// When no multiplier in range matches, minCarrier is returned as a silent
// fallback; callers that need a harmonic guarantee must re-check the result
// with ValidateCombination.
func (c *Calculator) OptimizeCarrier(target, minCarrier, maxCarrier float64) float64 {
	if target <= 0 {
		return minCarrier
	}

	for _, cc := range coreCarriers {
		if math.Abs(target-cc.target) < ratioTolerance {
			if cc.carrier >= minCarrier && cc.carrier <= maxCarrier {
				logrus.WithFields(logrus.Fields{
					"target_hz":  target,
					"carrier_hz": cc.carrier,
				}).Debug("using validated core carrier")
				return cc.carrier
			}
		}
	}

	minMultiplier := int(math.Ceil(minCarrier / target))
	for m := minMultiplier; target*float64(m) <= maxCarrier; m++ {
		reduced := float64(m)
		for reduced > 2.0 {
			reduced /= 2.0
		}

		for _, r := range CanonicalRatios {
			if math.Abs(reduced-r) < ratioTolerance {
				carrier := target * float64(m)
				logrus.WithFields(logrus.Fields{
					"target_hz":  target,
					"carrier_hz": carrier,
					"multiplier": m,
				}).Debug("found harmonic carrier")
				return carrier
			}
		}
	}

	logrus.WithFields(logrus.Fields{
		"target_hz":  target,
		"carrier_hz": minCarrier,
	}).Debug("no harmonic carrier in range, falling back to minimum")
	return minCarrier
}

// ValidateCombination reports whether two frequencies form an acceptable
// harmonic relationship: either their ratio decomposes into canonical ratios
// (within 10 %) or it stays at or below maxRatio.
func (c *Calculator) ValidateCombination(f1, f2, maxRatio float64) bool {
	lo, hi := f1, f2
	if lo > hi {
		lo, hi = hi, lo
	}
	ratio := hi / lo

	if math.Abs(c.DecomposeRatio(ratio)-1.0) < 0.1 {
		return true
	}
	return ratio <= maxRatio
}
