// Package synth orchestrates the full entrainment synthesis pipeline:
// binaural beats and isochronic tones, optional overtone enrichment,
// frequency-sweep transitions between sessions, fades, joint normalization,
// background mixing, and PCM hand-off to a sink.
//
// Session continuity is explicit: Generate takes the previous session state
// as an argument and returns the next one instead of keeping hidden mutable
// state, so a single Synthesizer is safe for concurrent use across
// independent sessions.
//
// Transitions are synthesized in a single pass over the whole frequency
// curve with phase accumulation, so a sweep costs the same per sample as a
// steady tone and stays free of phase discontinuities.
package synth
