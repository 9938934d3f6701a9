// Package harmonic provides harmonic-relationship math and overtone
// synthesis for entrainment carriers.
//
// The Calculator works on a fixed, ordered set of canonical interval ratios
// (unison, octave, fifth, fourth, major third, minor third). The list order
// is part of the contract: nearest-harmonic ties resolve to the earlier
// entry, keeping results deterministic across implementations.
//
// The OvertoneGenerator builds a fundamental plus a decaying overtone stack
// under hard safety limits, independent of any validation performed by the
// surrounding application.
package harmonic
