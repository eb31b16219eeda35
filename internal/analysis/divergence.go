package analysis

import (
	"math"

	"github.com/san-kum/crittersim/internal/sim"
)

// DivergenceRate estimates the mean exponential separation rate of two
// recorded runs, in nats per second. Positive values mean the runs pull
// apart; wander scenes seeded a hair apart typically diverge, settled
// hanging scenes do not.
//
// Steps where either separation is zero carry no information and are
// skipped.
func DivergenceRate(a, b []sim.State, dt float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n < 2 || dt <= 0 {
		return 0
	}

	sumLog := 0.0
	count := 0
	prev := separation(a[0], b[0])
	for i := 1; i < n; i++ {
		sep := separation(a[i], b[i])
		if sep > 0 && prev > 0 {
			sumLog += math.Log(sep / prev)
			count++
		}
		if sep > 0 {
			prev = sep
		}
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}

func separation(x, y sim.State) float64 {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		d := x[i] - y[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
