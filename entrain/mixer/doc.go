// Package mixer generates background beds (shaped noise, ambient drones) and
// mixes them underneath entrainment audio.
//
// Noise uses a Gaussian source shaped by a 1/sqrt(f) spectral filter, giving
// a pink-leaning floor that sits more naturally under low-frequency content
// than flat white noise. Backgrounds can be equalized before mixing, and
// mixed output preserves the channel shape of the input.
package mixer
