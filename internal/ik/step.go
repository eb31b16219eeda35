package ik

import (
	"math"

	"github.com/san-kum/crittersim/internal/creature"
	"github.com/san-kum/crittersim/internal/geom"
)

// advanceStep drives the planted/stepping foot cycle and leaves the
// current foot position in l.Target.
//
// Planted feet hold still until the ideal point drifts past
// StepThreshold, then arm a step from the held target to the ideal
// point. A step lasts distance/StepSpeed seconds and sweeps the foot
// along a smoothstepped arc with a sine lift of StepHeight. If the
// ideal point drifts more than half a threshold mid-step, the
// destination is recaptured without restarting the clock.
func advanceStep(l *creature.Limb, ideal geom.Vec2, dt float64) {
	if !l.Stepping {
		if l.Target.Distance(ideal) > l.StepThreshold {
			l.Stepping = true
			l.StepStart = l.Target
			l.StepDest = ideal
			l.StepElapsed = 0
		}
		return
	}

	l.StepElapsed += dt

	if l.StepDest.Distance(ideal) > 0.5*l.StepThreshold {
		l.StepDest = ideal
	}

	t := 1.0
	if duration := l.StepStart.Distance(l.StepDest) / l.StepSpeed; duration > 0 {
		t = math.Min(l.StepElapsed/duration, 1)
	}
	if t >= 1 {
		l.Stepping = false
		l.StepElapsed = 0
		l.Target = l.StepDest
		return
	}

	s := geom.Smoothstep(t)
	foot := l.StepStart.Lerp(l.StepDest, s)
	foot.Y += math.Sin(s*math.Pi) * l.StepHeight
	l.Target = foot
}
