package physics

import (
	"github.com/san-kum/crittersim/internal/creature"
	"github.com/san-kum/crittersim/internal/geom"
)

// DefaultIterations is the constraint relaxation count per frame.
const DefaultIterations = 4

// Segments shorter than this skip normalization instead of dividing.
const minSeparation = 1e-9

// SolveConstraints runs the relaxation loop: every distance edge once,
// then every angle link once in root→tip chain order, iterations times.
// One distance visit closes half the length error, so the loop converges
// geometrically; corrections shift Pos and Prev together and leave
// implicit velocity alone.
func SolveConstraints(w *creature.World, iterations int) {
	for it := 0; it < iterations; it++ {
		for i := range w.Constraints {
			relaxDistance(w, &w.Constraints[i])
		}
		for _, l := range w.AngleLinks() {
			relaxAngle(w, l)
		}
	}
}

func relaxDistance(w *creature.World, c *creature.DistanceConstraint) {
	a := &w.Nodes[c.A]
	b := &w.Nodes[c.B]
	// Limb joints are owned by the IK solver; their edges only carry
	// segment rest lengths.
	if a.Kind == creature.KindLimb || b.Kind == creature.KindLimb {
		return
	}

	d := b.Pos.Sub(a.Pos)
	dist := d.Length()
	if dist < minSeparation {
		return
	}
	correction := d.Scale((dist - c.Rest) * 0.5 / dist)

	aFixed := a.Kind == creature.KindAnchor
	bFixed := b.Kind == creature.KindAnchor
	switch {
	case aFixed && bFixed:
	case aFixed:
		b.MoveBy(correction.Scale(-1))
	case bFixed:
		a.MoveBy(correction)
	default:
		a.MoveBy(correction.Scale(0.5))
		b.MoveBy(correction.Scale(-0.5))
	}
}

// relaxAngle clamps the segment arriving at the link's node to the
// node's angular window around the parent's chain angle, rewriting the
// node position at the current segment length and recording the clamped
// absolute angle.
func relaxAngle(w *creature.World, l creature.AngleLink) {
	node := &w.Nodes[l.Node]
	par := &w.Nodes[l.Parent]

	seg := node.Pos.Sub(par.Pos)
	length := seg.Length()
	var segAngle float64
	if length < minSeparation {
		// Degenerate segment: rebuild it along the parent heading at
		// the edge's rest length.
		segAngle = par.ChainAngle
		length = l.Rest
	} else {
		segAngle = seg.Angle()
	}

	rel := geom.Clamp(geom.AngleDiff(segAngle, par.ChainAngle), node.AngleMin, node.AngleMax)
	abs := geom.NormalizeAngle(par.ChainAngle + rel)
	target := par.Pos.Add(geom.FromAngle(abs).Scale(length))
	node.MoveBy(target.Sub(node.Pos))
	node.ChainAngle = abs
}
