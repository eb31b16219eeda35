// Package steer drives anchor nodes between frames: follow targets,
// circle and wave paths, and boundary/peer-aware wandering. It runs
// after integration and before constraint solving, so anchors arrive at
// their new positions with zero implicit velocity.
package steer

import (
	"math"

	"github.com/san-kum/crittersim/internal/creature"
	"github.com/san-kum/crittersim/internal/geom"
)

// Targets closer than this don't move the anchor.
const minTargetDistance = 1e-3

// Tuning carries the world-level wander constants. Per-anchor amplitude
// and speed live on the node's MoveSpec.
type Tuning struct {
	// Strength scales every scan-point steering contribution.
	Strength float64
	// Responsiveness is how fast accumulated steering turns the wander
	// direction, per second.
	Responsiveness float64
	// TurnRate is the forced rotation rate when stuck; corners use
	// twice this.
	TurnRate float64
	// BoundaryRange is the distance at which walls start repelling
	// scan points.
	BoundaryRange float64
	// AvoidBuffer widens the radius sum when judging peer clearance.
	AvoidBuffer float64
	// StuckRadius flags a raw target this close to the anchor as stuck.
	StuckRadius float64
	// TargetSmoothing is the per-frame low-pass fraction of the emitted
	// target.
	TargetSmoothing float64
	// HorizontalBias pulls travel toward horizontal, per second.
	HorizontalBias float64
}

func DefaultTuning() Tuning {
	return Tuning{
		Strength:        1.2,
		Responsiveness:  2.5,
		TurnRate:        3.0,
		BoundaryRange:   90,
		AvoidBuffer:     18,
		StuckRadius:     2,
		TargetSmoothing: 0.12,
		HorizontalBias:  0.05,
	}
}

// Update advances every anchor toward its movement target. simTime
// parameterizes the procedural paths; dt scales steering and travel.
func Update(w *creature.World, tn Tuning, simTime, dt float64) {
	for i := range w.Nodes {
		n := &w.Nodes[i]
		if n.Kind != creature.KindAnchor {
			continue
		}
		switch n.Move.Mode {
		case creature.MoveFollow:
			if t := n.Move.TargetNode; t >= 0 && t < len(w.Nodes) && t != i {
				n.TargetPos = w.Nodes[t].Pos
			}
			moveToward(n, dt)
		case creature.MoveCircle:
			t := simTime + n.Move.Phase
			n.TargetPos = geom.V(
				n.Move.Center.X+n.Move.Amplitude*math.Cos(t),
				n.Move.Center.Y+n.Move.Amplitude*math.Sin(t),
			)
			moveToward(n, dt)
		case creature.MoveWave:
			t := simTime + n.Move.Phase
			n.TargetPos = geom.V(
				n.Move.Center.X+n.Move.Amplitude*math.Cos(t),
				n.Move.Center.Y+n.Move.Amplitude*math.Sin(2*t),
			)
			moveToward(n, dt)
		case creature.MoveWander:
			wander(w, i, tn, simTime, dt)
			moveToward(n, dt)
		default:
			n.TargetPos = n.Pos
		}
	}
}

// moveToward steps the anchor at most Speed·dt along the target offset,
// shifting Pos and Prev together so the anchor stays velocity-frozen.
// The heading is recorded as the anchor's chain angle.
func moveToward(n *creature.Node, dt float64) {
	offset := n.TargetPos.Sub(n.Pos)
	dist := offset.Length()
	if dist < minTargetDistance {
		return
	}
	step := math.Min(n.Move.Speed*dt, dist)
	if step <= 0 {
		return
	}
	dir := offset.Scale(1 / dist)
	n.MoveBy(dir.Scale(step))
	n.ChainAngle = dir.Angle()
}
