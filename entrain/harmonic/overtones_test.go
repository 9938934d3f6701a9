package harmonic

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-entrain/entrain/core"
	"github.com/cwbudde/algo-entrain/internal/testutil"
)

func TestGenerateOvertonesLength(t *testing.T) {
	g := NewOvertoneGenerator(core.WithSampleRate(8000))

	out, err := g.GenerateOvertones(220, 0.5, 0.5)
	if err != nil {
		t.Fatalf("GenerateOvertones() error = %v", err)
	}
	if len(out) != 4000 {
		t.Fatalf("len = %d, want 4000", len(out))
	}
	testutil.RequireFinite(t, out)
	testutil.RequirePeakAtMost(t, out, 1.0)
}

func TestGenerateOvertonesRejectsUnsafeFundamentals(t *testing.T) {
	g := NewOvertoneGenerator(core.WithSampleRate(8000))

	for _, f := range []float64{1200, 0, -50} {
		_, err := g.GenerateOvertones(f, 1.0, 0.5)
		if !errors.Is(err, ErrInvalidFrequency) {
			t.Fatalf("GenerateOvertones(%v) error = %v, want ErrInvalidFrequency", f, err)
		}
	}
}

func TestGenerateOvertonesInvalidDuration(t *testing.T) {
	g := NewOvertoneGenerator(core.WithSampleRate(8000))

	_, err := g.GenerateOvertones(220, 0, 0.5)
	if !errors.Is(err, core.ErrInvalidDuration) {
		t.Fatalf("error = %v, want ErrInvalidDuration", err)
	}
}

func TestGenerateOvertonesCeilingStopsStack(t *testing.T) {
	g := NewOvertoneGenerator(core.WithSampleRate(8000))

	// At 900 Hz the second harmonic (1800 Hz) already exceeds the ceiling,
	// so the output is a pure sine at the base amplitude.
	out, err := g.GenerateOvertones(900, 0.25, 0.5)
	if err != nil {
		t.Fatalf("GenerateOvertones() error = %v", err)
	}

	peak := testutil.Peak(out)
	if peak > 0.5+1e-9 {
		t.Fatalf("peak = %v, want <= 0.5 for a bare fundamental", peak)
	}
}

func TestGenerateOvertonesDecayFloorStopsStack(t *testing.T) {
	g := NewOvertoneGenerator(core.WithSampleRate(8000))

	// With base amplitude 0.12 the first overtone would sit at 0.084,
	// below the 0.1 floor, so again only the fundamental is emitted.
	out, err := g.GenerateOvertones(100, 0.25, 0.12)
	if err != nil {
		t.Fatalf("GenerateOvertones() error = %v", err)
	}

	peak := testutil.Peak(out)
	if peak > 0.12+1e-9 {
		t.Fatalf("peak = %v, want <= 0.12 for a bare fundamental", peak)
	}
}

func TestGenerateEnhanced(t *testing.T) {
	g := NewOvertoneGenerator(core.WithSampleRate(8000))

	out, err := g.GenerateEnhanced(10, 0.5, 0.5)
	if err != nil {
		t.Fatalf("GenerateEnhanced() error = %v", err)
	}
	if len(out) != 4000 {
		t.Fatalf("len = %d, want 4000", len(out))
	}
	testutil.RequireFinite(t, out)
	testutil.RequirePeakAtMost(t, out, 1.0)
}

func TestGenerateEnhancedPropagatesInvalidTarget(t *testing.T) {
	g := NewOvertoneGenerator(core.WithSampleRate(8000))

	_, err := g.GenerateEnhanced(-5, 0.5, 0.5)
	if !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("error = %v, want ErrInvalidFrequency", err)
	}
}

func BenchmarkGenerateOvertones(b *testing.B) {
	g := NewOvertoneGenerator()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := g.GenerateOvertones(220, 1.0, 0.5)
		if err != nil {
			b.Fatal(err)
		}
	}
}
