package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func vecAlmostEqual(a, b Vec2) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y)
}

func TestNormalize(t *testing.T) {
	v := V(3, 4).Normalize()
	if !vecAlmostEqual(v, V(0.6, 0.8)) {
		t.Errorf("expected (0.6, 0.8), got (%f, %f)", v.X, v.Y)
	}

	z := V(0, 0).Normalize()
	if !z.IsZero() {
		t.Errorf("expected zero vector from degenerate input, got (%f, %f)", z.X, z.Y)
	}
}

func TestCrossSign(t *testing.T) {
	if c := V(1, 0).Cross(V(0, 1)); c <= 0 {
		t.Errorf("expected positive cross for ccw pair, got %f", c)
	}
	if c := V(0, 1).Cross(V(1, 0)); c >= 0 {
		t.Errorf("expected negative cross for cw pair, got %f", c)
	}
}

func TestFromAngleRoundTrip(t *testing.T) {
	for _, a := range []float64{0, math.Pi / 3, -math.Pi / 2, 3} {
		v := FromAngle(a)
		if !almostEqual(v.Length(), 1) {
			t.Errorf("FromAngle(%f) not unit length: %f", a, v.Length())
		}
		if !almostEqual(NormalizeAngle(v.Angle()-a), 0) {
			t.Errorf("FromAngle(%f).Angle() = %f", a, v.Angle())
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{2 * math.Pi, 0},
		{3 * math.Pi, -math.Pi},
		{-3 * math.Pi / 2, math.Pi / 2},
		{5 * math.Pi / 2, math.Pi / 2},
	}
	for _, tt := range tests {
		if got := NormalizeAngle(tt.in); !almostEqual(got, tt.want) {
			t.Errorf("NormalizeAngle(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestAngleDiffShortestPath(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{math.Pi / 2, 0, math.Pi / 2},
		{0, math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 4, 3 * math.Pi / 4, math.Pi / 2},
		{3 * math.Pi / 4, -3 * math.Pi / 4, -math.Pi / 2},
	}
	for _, tt := range tests {
		if got := AngleDiff(tt.a, tt.b); !almostEqual(got, tt.want) {
			t.Errorf("AngleDiff(%f, %f) = %f, want %f", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSmoothstep(t *testing.T) {
	if got := Smoothstep(0); got != 0 {
		t.Errorf("Smoothstep(0) = %f", got)
	}
	if got := Smoothstep(1); got != 1 {
		t.Errorf("Smoothstep(1) = %f", got)
	}
	if got := Smoothstep(0.5); !almostEqual(got, 0.5) {
		t.Errorf("Smoothstep(0.5) = %f", got)
	}
	if got := Smoothstep(-2); got != 0 {
		t.Errorf("expected clamp below, got %f", got)
	}
	if got := Smoothstep(3); got != 1 {
		t.Errorf("expected clamp above, got %f", got)
	}

	prev := 0.0
	for i := 1; i <= 10; i++ {
		cur := Smoothstep(float64(i) / 10)
		if cur < prev {
			t.Fatalf("Smoothstep not monotonic at %d/10", i)
		}
		prev = cur
	}
}
