// Package ik positions limb chains with a FABRIK solver and a
// planted/stepping foot cycle. It runs last in the frame pipeline and
// owns every Limb-kind node: positions are written with zero implicit
// velocity, so the integrator and collision passes never fight it.
package ik

import (
	"github.com/san-kum/crittersim/internal/creature"
	"github.com/san-kum/crittersim/internal/geom"
)

// Root/tip closer than this leaves the bend side alone.
const minAxisLengthSq = 1e-9

// Update advances stepping and solves every limb chain in w.
func Update(w *creature.World, dt float64) {
	var chain []geom.Vec2
	for li := range w.Limbs {
		chain = solveLimb(w, &w.Limbs[li], chain[:0], dt)
	}
}

func solveLimb(w *creature.World, l *creature.Limb, chain []geom.Vec2, dt float64) []geom.Vec2 {
	if len(l.Joints) == 0 || len(l.Lengths) != len(l.Joints) {
		return chain
	}
	body := &w.Nodes[l.Body]

	ideal := idealTarget(w, l, body)
	if l.Target.IsZero() {
		l.Target = ideal
	}
	advanceStep(l, ideal, dt)
	target := w.Playground.Bounds.ClampPoint(l.Target)

	chain = append(chain, body.Pos)
	for _, j := range l.Joints {
		chain = append(chain, w.Nodes[j].Pos)
	}

	solveChain(w, l, chain, target, body.ChainAngle)
	writeBack(w, l, chain)
	return chain
}

// idealTarget is where the foot wants to plant: an explicit target
// node's position, or the reach ray cast from the body along its
// heading and clipped to the playground.
func idealTarget(w *creature.World, l *creature.Limb, body *creature.Node) geom.Vec2 {
	if t := l.TargetNode; t >= 0 && t < len(w.Nodes) {
		return w.Nodes[t].Pos
	}
	dir := geom.FromAngle(body.ChainAngle + l.TargetDirOffset)
	end := body.Pos.Add(dir.Scale(l.MaxReach))
	return w.Playground.Bounds.ClipRay(body.Pos, end)
}

// solveChain runs FABRIK over chain in place. chain[0] is the body and
// stays pinned; chain[i+1] is joint i.
func solveChain(w *creature.World, l *creature.Limb, chain []geom.Vec2, target geom.Vec2, bodyAngle float64) {
	root := chain[0]

	// Out of reach: lay the chain out straight toward the target.
	if target.Distance(root) >= l.TotalLength() {
		dir := target.Sub(root).Normalize()
		if dir.IsZero() {
			dir = geom.V(1, 0)
		}
		for i, length := range l.Lengths {
			chain[i+1] = chain[i].Add(dir.Scale(length))
		}
		return
	}

	last := len(chain) - 1
	for it := 0; it < l.Iterations; it++ {
		chain[last] = target
		for i := len(l.Lengths) - 1; i >= 0; i-- {
			chain[i] = placeAt(chain[i], chain[i+1], l.Lengths[i])
		}

		chain[0] = root
		prevAngle := bodyAngle
		for i, length := range l.Lengths {
			raw := prevAngle
			if seg := chain[i+1].Sub(chain[i]); !seg.IsZero() {
				raw = seg.Angle()
			}
			j := &w.Nodes[l.Joints[i]]
			rel := geom.Clamp(geom.AngleDiff(raw, prevAngle), j.AngleMin, j.AngleMax)
			ang := geom.NormalizeAngle(prevAngle + rel)
			chain[i+1] = chain[i].Add(geom.FromAngle(ang).Scale(length))
			prevAngle = ang
		}

		if len(chain) > 2 {
			enforceBendSide(chain, l.FlipBend)
		}
		if chain[last].Distance(target) <= l.Tolerance {
			break
		}
	}
}

// placeAt returns the point at the given distance from anchor along the
// direction toward p. Coincident points fall back to +X.
func placeAt(p, anchor geom.Vec2, dist float64) geom.Vec2 {
	dir := p.Sub(anchor).Normalize()
	if dir.IsZero() {
		dir = geom.V(1, 0)
	}
	return anchor.Add(dir.Scale(dist))
}

// enforceBendSide reflects interior joints across the root-tip axis when
// they settled on the wrong side. flip[i] selects the positive cross
// side for interior joint i; the default is the negative side.
func enforceBendSide(chain []geom.Vec2, flip []bool) {
	root := chain[0]
	tip := chain[len(chain)-1]
	axis := tip.Sub(root)
	lenSq := axis.LengthSq()
	if lenSq < minAxisLengthSq {
		return
	}
	for i := 1; i < len(chain)-1; i++ {
		want := -1.0
		if i-1 < len(flip) && flip[i-1] {
			want = 1.0
		}
		cross := axis.Cross(chain[i].Sub(root))
		if cross*want < 0 {
			t := chain[i].Sub(root).Dot(axis) / lenSq
			proj := root.Add(axis.Scale(t))
			chain[i] = proj.Add(proj.Sub(chain[i]))
		}
	}
}

// writeBack copies solved positions onto the joint nodes with velocity
// zeroed. Interior joints face the next joint; the tip keeps the arrival
// direction.
func writeBack(w *creature.World, l *creature.Limb, chain []geom.Vec2) {
	for i, idx := range l.Joints {
		n := &w.Nodes[idx]
		n.Pos = chain[i+1]
		n.Prev = chain[i+1]

		var seg geom.Vec2
		if i < len(l.Joints)-1 {
			seg = chain[i+2].Sub(chain[i+1])
		} else {
			seg = chain[i+1].Sub(chain[i])
		}
		if !seg.IsZero() {
			n.ChainAngle = seg.Angle()
		}
	}
}
