package safety

import (
	"strings"
	"testing"
)

func TestValidateFrequency(t *testing.T) {
	l := DefaultLimits()

	cases := []struct {
		freq float64
		want bool
	}{
		{0.5, true},
		{100, true},
		{10, true},
		{0.49, false},
		{100.1, false},
		{-5, false},
	}

	for _, tc := range cases {
		if got := l.ValidateFrequency(tc.freq); got != tc.want {
			t.Fatalf("ValidateFrequency(%v) = %v, want %v", tc.freq, got, tc.want)
		}
	}
}

func TestValidateVolume(t *testing.T) {
	l := DefaultLimits()

	cases := []struct {
		vol  float64
		want bool
	}{
		{0, true},
		{0.8, true},
		{0.81, false},
		{-0.1, false},
	}

	for _, tc := range cases {
		if got := l.ValidateVolume(tc.vol); got != tc.want {
			t.Fatalf("ValidateVolume(%v) = %v, want %v", tc.vol, got, tc.want)
		}
	}
}

func TestValidateSession(t *testing.T) {
	l := DefaultLimits()

	ok, msg := l.ValidateSession(10, 0.7, 600)
	if !ok {
		t.Fatalf("valid session rejected: %s", msg)
	}

	cases := []struct {
		freq, vol, dur float64
		wantReason     string
	}{
		{200, 0.7, 600, "frequency"},
		{10, 0.9, 600, "volume"},
		{10, 0.7, 0, "duration"},
		{10, 0.7, 3601, "duration"},
	}

	for _, tc := range cases {
		ok, msg := l.ValidateSession(tc.freq, tc.vol, tc.dur)
		if ok {
			t.Fatalf("ValidateSession(%v, %v, %v) accepted, want rejection", tc.freq, tc.vol, tc.dur)
		}
		if !strings.Contains(msg, tc.wantReason) {
			t.Fatalf("rejection message %q does not mention %q", msg, tc.wantReason)
		}
	}
}

func TestValidateSessionBoundaryDuration(t *testing.T) {
	l := DefaultLimits()

	if ok, msg := l.ValidateSession(10, 0.7, 3600); !ok {
		t.Fatalf("one-hour session rejected: %s", msg)
	}
}
