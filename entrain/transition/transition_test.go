package transition

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-entrain/entrain/core"
	"github.com/cwbudde/algo-entrain/internal/testutil"
)

func TestLinear(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))

	curve, err := g.Linear(8, 4, 5)
	if err != nil {
		t.Fatalf("Linear() error = %v", err)
	}
	if len(curve) != 5000 {
		t.Fatalf("len = %d, want 5000", len(curve))
	}
	if math.Abs(curve[0]-8) > 1e-9 || math.Abs(curve[len(curve)-1]-4) > 1e-9 {
		t.Fatalf("endpoints = %v, %v, want 8, 4", curve[0], curve[len(curve)-1])
	}
	if mid := curve[len(curve)/2]; math.Abs(mid-6.0) > 0.1 {
		t.Fatalf("midpoint = %v, want 6.0 +- 0.1", mid)
	}
	testutil.RequireMonotone(t, curve, false)
}

func TestExponentialBiasesTowardStart(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))

	curve, err := g.Exponential(8, 4, 5, DefaultPower)
	if err != nil {
		t.Fatalf("Exponential() error = %v", err)
	}
	if math.Abs(curve[0]-8) > 1e-9 || math.Abs(curve[len(curve)-1]-4) > 1e-9 {
		t.Fatalf("endpoints = %v, %v, want 8, 4", curve[0], curve[len(curve)-1])
	}

	// Halfway through, a squared curve has only covered a quarter of the
	// frequency span.
	mid := curve[len(curve)/2]
	if math.Abs(mid-7.0) > 0.05 {
		t.Fatalf("midpoint = %v, want 7.0 +- 0.05", mid)
	}
	testutil.RequireMonotone(t, curve, false)
}

func TestExponentialInvalidPower(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))

	if _, err := g.Exponential(8, 4, 5, 0); err == nil {
		t.Fatal("expected error for power = 0")
	}
}

func TestSigmoidHitsEndpointsExactly(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))

	curve, err := g.Sigmoid(8, 4, 5, DefaultSmoothness)
	if err != nil {
		t.Fatalf("Sigmoid() error = %v", err)
	}
	if math.Abs(curve[0]-8) > 1e-12 {
		t.Fatalf("first sample = %v, want exactly 8", curve[0])
	}
	if math.Abs(curve[len(curve)-1]-4) > 1e-12 {
		t.Fatalf("last sample = %v, want exactly 4", curve[len(curve)-1])
	}
	testutil.RequireMonotone(t, curve, false)

	// A raw logistic over [-3, 3] would start at ~0.047 above its floor;
	// the renormalized curve must instead pass through the true midpoint.
	mid := curve[len(curve)/2]
	if math.Abs(mid-6.0) > 0.05 {
		t.Fatalf("midpoint = %v, want 6.0 +- 0.05", mid)
	}
}

func TestSigmoidInvalidSmoothness(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))

	if _, err := g.Sigmoid(8, 4, 5, -1); err == nil {
		t.Fatal("expected error for negative smoothness")
	}
}

func TestGenerateDispatch(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))

	for _, kind := range []Curve{Linear, Exponential, Sigmoid} {
		curve, err := g.Generate(kind, 4, 8, 2)
		if err != nil {
			t.Fatalf("Generate(%v) error = %v", kind, err)
		}
		if len(curve) != 2000 {
			t.Fatalf("Generate(%v) len = %d, want 2000", kind, len(curve))
		}
		testutil.RequireMonotone(t, curve, true)
	}

	if _, err := g.Generate(Curve(42), 4, 8, 2); !errors.Is(err, ErrUnknownCurve) {
		t.Fatalf("error = %v, want ErrUnknownCurve", err)
	}
}

func TestGenerateInvalidDuration(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))

	if _, err := g.Generate(Linear, 4, 8, 0); !errors.Is(err, core.ErrInvalidDuration) {
		t.Fatalf("error = %v, want ErrInvalidDuration", err)
	}
}

func TestParseCurve(t *testing.T) {
	for name, want := range map[string]Curve{
		"linear":      Linear,
		"exponential": Exponential,
		"sigmoid":     Sigmoid,
	} {
		got, err := ParseCurve(name)
		if err != nil {
			t.Fatalf("ParseCurve(%q) error = %v", name, err)
		}
		if got != want {
			t.Fatalf("ParseCurve(%q) = %v, want %v", name, got, want)
		}
		if got.String() != name {
			t.Fatalf("String() = %q, want %q", got.String(), name)
		}
	}

	if _, err := ParseCurve("bezier"); !errors.Is(err, ErrUnknownCurve) {
		t.Fatalf("error = %v, want ErrUnknownCurve", err)
	}
}

func TestOptimalDuration(t *testing.T) {
	cases := []struct {
		start, end float64
		want       float64
	}{
		{8, 9, 5},
		{8, 6.5, 5},
		{8, 4, 10},
		{4, 8, 10},
		{10, 2, 20},
	}

	for _, tc := range cases {
		if got := OptimalDuration(tc.start, tc.end); got != tc.want {
			t.Fatalf("OptimalDuration(%v, %v) = %v, want %v", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestPoints(t *testing.T) {
	points, err := Points([]float64{10, 8, 6, 4}, []float64{0, 10, 20, 30})
	if err != nil {
		t.Fatalf("Points() error = %v", err)
	}
	want := []Point{
		{0, 10, 10},
		{10, 20, 10},
		{20, 30, 10},
	}
	if len(points) != len(want) {
		t.Fatalf("len = %d, want %d", len(points), len(want))
	}
	for i := range want {
		if points[i] != want[i] {
			t.Fatalf("points[%d] = %+v, want %+v", i, points[i], want[i])
		}
	}
}

func TestPointsLengthMismatch(t *testing.T) {
	_, err := Points([]float64{10, 8}, []float64{0})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("error = %v, want ErrLengthMismatch", err)
	}
}
