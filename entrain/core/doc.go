// Package core provides shared configuration and small numeric helpers used
// by every synthesis package.
//
// The package intentionally contains no synthesis logic. It defines the
// processing configuration (sample rate), duration-to-sample conversion with
// fail-fast validation, and peak/normalization primitives shared by the
// generators.
package core
