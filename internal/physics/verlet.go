// Package physics advances node state frame by frame: position Verlet
// integration followed by iterative distance and angle constraint
// relaxation.
package physics

import (
	"github.com/san-kum/crittersim/internal/creature"
	"github.com/san-kum/crittersim/internal/geom"
)

// DefaultAirDamping is the fraction of implicit velocity a free node
// keeps each frame.
const DefaultAirDamping = 0.98

// Integrate advances every Normal node one frame and consumes its
// per-frame acceleration. Anchor and Limb nodes only re-sync their
// previous position so implicit velocity stays zero while the steering
// and IK stages drive them.
func Integrate(w *creature.World, airDamping float64) {
	for i := range w.Nodes {
		n := &w.Nodes[i]
		if n.Kind != creature.KindNormal {
			n.Prev = n.Pos
			continue
		}
		vel := n.Pos.Sub(n.Prev)
		next := n.Pos.Add(vel.Scale(airDamping)).Add(n.FrameAccel).Add(n.ConstAccel)
		n.Prev = n.Pos
		n.Pos = next
		n.FrameAccel = geom.Vec2{}
	}
}
