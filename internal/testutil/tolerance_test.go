package testutil

import "testing"

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 2})
	if err != nil {
		t.Fatalf("MaxAbsDiff() error = %v", err)
	}
	if d != 1 {
		t.Fatalf("MaxAbsDiff = %v, want 1", d)
	}

	if _, err := MaxAbsDiff([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestPeak(t *testing.T) {
	if got := Peak([]float64{0.1, -0.8, 0.3}); got != 0.8 {
		t.Fatalf("Peak = %v, want 0.8", got)
	}
	if got := Peak(nil); got != 0 {
		t.Fatalf("Peak(nil) = %v, want 0", got)
	}
}

func TestRequireMonotone(t *testing.T) {
	RequireMonotone(t, []float64{1, 2, 2, 3}, true)
	RequireMonotone(t, []float64{3, 2, 2, 1}, false)
}
