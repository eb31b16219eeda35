package geom

import "math"

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Smoothstep is the cubic ease 3t²-2t³ with t clamped to [0, 1].
func Smoothstep(t float64) float64 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// NormalizeAngle wraps a into [-π, π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// AngleDiff returns the shortest signed rotation that carries angle b
// onto angle a.
func AngleDiff(a, b float64) float64 {
	return NormalizeAngle(a - b)
}
