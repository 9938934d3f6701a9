// Package transition generates frequency-vs-time curves for smooth sweeps
// between entrainment targets.
//
// All three curve shapes hit their start and end frequencies exactly and are
// monotone in between. The sigmoid shape renormalizes the raw logistic using
// its own first and last sampled values, so the curve reaches the endpoints
// instead of approaching them asymptotically.
package transition
