package steer

import (
	"math"

	"github.com/san-kum/crittersim/internal/creature"
	"github.com/san-kum/crittersim/internal/geom"
)

const (
	// wanderScanPoints are probed ahead of the anchor each frame,
	// spaced from 1.5 radii out to amplitude plus 1.5 seconds of travel.
	wanderScanPoints = 4

	// Peers closer than this to a scan point are treated as coincident
	// and skipped.
	minPeerDistance = 1e-3
)

// wander turns the anchor's wander direction away from walls and other
// creatures, then emits a smoothed target at amplitude range along it.
func wander(w *creature.World, self int, tn Tuning, simTime, dt float64) {
	n := &w.Nodes[self]
	t := simTime + n.Move.Phase
	safe := w.Playground.SafeBounds(n.Radius)

	// Two incommensurate sines keep long straight runs from looking
	// mechanical.
	n.WanderDir += (math.Sin(t*0.3)*0.15 + math.Sin(t*0.17)*0.08) * 0.48 * dt

	scanBase := 1.5 * n.Radius
	scanMax := n.Move.Amplitude + 1.5*n.Move.Speed
	steering := 0.0
	for s := 0; s < wanderScanPoints; s++ {
		frac := float64(s) / float64(wanderScanPoints-1)
		dist := scanBase + (scanMax-scanBase)*frac
		point := n.Pos.Add(geom.FromAngle(n.WanderDir).Scale(dist))
		steering += boundarySteer(point, safe, n.WanderDir, tn)
		steering += peerSteer(w, self, point, tn)
	}
	steering = geom.Clamp(steering, -math.Pi, math.Pi)
	n.WanderDir += steering * tn.Responsiveness * dt

	// Nudge toward whichever horizontal heading is nearer.
	level := 0.0
	if math.Abs(geom.AngleDiff(math.Pi, n.WanderDir)) < math.Abs(geom.AngleDiff(0, n.WanderDir)) {
		level = math.Pi
	}
	n.WanderDir += geom.AngleDiff(level, n.WanderDir) * tn.HorizontalBias * dt
	n.WanderDir = geom.NormalizeAngle(n.WanderDir)

	raw := n.Pos.Add(geom.FromAngle(n.WanderDir).Scale(n.Move.Amplitude))

	// Both axes out means the anchor is aimed into a corner. Rotate
	// toward the playground center at double rate before clamping.
	outX := raw.X < safe.Min.X || raw.X > safe.Max.X
	outY := raw.Y < safe.Min.Y || raw.Y > safe.Max.Y
	if outX && outY {
		toCenter := w.Playground.Center().Sub(n.Pos).Angle()
		n.WanderDir = steerToward(n.WanderDir, toCenter, 2*tn.TurnRate*dt)
		raw = n.Pos.Add(geom.FromAngle(n.WanderDir).Scale(n.Move.Amplitude))
	}
	raw = safe.ClampPoint(raw)

	// A clamped target sitting on top of the anchor means it is pinned
	// against geometry. Force a rotation so it works itself free.
	if raw.Distance(n.Pos) < tn.StuckRadius {
		n.WanderDir = geom.NormalizeAngle(n.WanderDir + tn.TurnRate*dt)
	}

	n.TargetPos = n.TargetPos.Lerp(raw, tn.TargetSmoothing)
}

// boundarySteer rotates the heading toward the inward normal of any
// wall within range of the scan point, with quadratic falloff.
func boundarySteer(p geom.Vec2, safe geom.Rect, dir float64, tn Tuning) float64 {
	s := 0.0
	if d := p.X - safe.Min.X; d < tn.BoundaryRange {
		s += geom.AngleDiff(0, dir) * tn.Strength * boundaryUrgency(d, tn.BoundaryRange)
	} else if d := safe.Max.X - p.X; d < tn.BoundaryRange {
		s += geom.AngleDiff(math.Pi, dir) * tn.Strength * boundaryUrgency(d, tn.BoundaryRange)
	}
	if d := p.Y - safe.Min.Y; d < tn.BoundaryRange {
		s += geom.AngleDiff(math.Pi/2, dir) * tn.Strength * boundaryUrgency(d, tn.BoundaryRange)
	} else if d := safe.Max.Y - p.Y; d < tn.BoundaryRange {
		s += geom.AngleDiff(-math.Pi/2, dir) * tn.Strength * boundaryUrgency(d, tn.BoundaryRange)
	}
	return s
}

func boundaryUrgency(dist, rng float64) float64 {
	u := 1 - geom.Clamp(dist, 0, rng)/rng
	return u * u
}

// peerSteer rotates the heading away from foreign bodies near the scan
// point. Same-group nodes and limb joints never repel.
func peerSteer(w *creature.World, self int, scan geom.Vec2, tn Tuning) float64 {
	n := &w.Nodes[self]
	s := 0.0
	for j := range w.Nodes {
		if j == self {
			continue
		}
		o := &w.Nodes[j]
		if o.Kind == creature.KindLimb {
			continue
		}
		if n.Group != creature.GroupNone && o.Group == n.Group {
			continue
		}
		minSafe := n.Radius + o.Radius + tn.AvoidBuffer
		d := scan.Distance(o.Pos)
		if d >= minSafe || d < minPeerDistance {
			continue
		}
		urgency := 1 - d/minSafe
		away := n.Pos.Sub(o.Pos).Angle()
		s += geom.AngleDiff(away, n.WanderDir) * tn.Strength * urgency
	}
	return s
}

// steerToward rotates current toward target by at most maxStep, taking
// the short way around.
func steerToward(current, target, maxStep float64) float64 {
	d := geom.AngleDiff(target, current)
	return geom.NormalizeAngle(current + geom.Clamp(d, -maxStep, maxStep))
}
