package collide

import (
	"math"

	"github.com/san-kum/crittersim/internal/creature"
	"github.com/san-kum/crittersim/internal/geom"
)

// DefaultPasses bounds the rebuild-and-resolve rounds per frame.
const DefaultPasses = 4

const (
	// A pass that moves no node farther than this ends the loop.
	settleEpsilon = 1e-4
	minSeparation = 1e-9
)

// Stats reports what one Resolve call did.
type Stats struct {
	Passes        int
	BroadPairs    int
	Pushes        int
	BoundaryHits  int
	MaxCorrection float64
}

// Resolve runs up to passes rounds of boundary clamping followed by
// grid-accelerated pair separation. Boundary clamping comes first in
// every round; the loop exits early once a round settles.
func Resolve(w *creature.World, g *Grid, passes int) Stats {
	var st Stats
	for p := 0; p < passes; p++ {
		st.Passes++
		moved := clampBoundaries(w, &st)

		g.Rebuild(w.Nodes)
		st.BroadPairs += len(g.pairs)
		for _, pr := range g.pairs {
			moved = math.Max(moved, resolvePair(w, pr[0], pr[1], &st))
		}

		st.MaxCorrection = math.Max(st.MaxCorrection, moved)
		if moved <= settleEpsilon {
			break
		}
	}
	return st
}

// clampBoundaries keeps every node's circle inside the playground. A
// clamped axis rewrites Prev so the implicit velocity flips, damped by
// the playground's ImpactDamping. Returns the largest correction.
func clampBoundaries(w *creature.World, st *Stats) float64 {
	bounds := w.Playground.Bounds
	damp := w.Playground.ImpactDamping
	maxMove := 0.0

	for i := range w.Nodes {
		n := &w.Nodes[i]
		vel := n.Velocity()
		hit := false

		lo, hi := bounds.Min.X+n.Radius, bounds.Max.X-n.Radius
		if moved := clampAxis(&n.Pos.X, &n.Prev.X, lo, hi, vel.X, damp); moved > 0 {
			maxMove = math.Max(maxMove, moved)
			hit = true
		}
		lo, hi = bounds.Min.Y+n.Radius, bounds.Max.Y-n.Radius
		if moved := clampAxis(&n.Pos.Y, &n.Prev.Y, lo, hi, vel.Y, damp); moved > 0 {
			maxMove = math.Max(maxMove, moved)
			hit = true
		}
		if hit {
			st.BoundaryHits++
		}
	}
	return maxMove
}

func clampAxis(pos, prev *float64, lo, hi, vel, damp float64) float64 {
	if lo > hi {
		// The usable span is narrower than the node: center it and
		// kill the axis velocity.
		mid := (lo + hi) / 2
		moved := math.Abs(*pos - mid)
		*pos = mid
		*prev = mid
		return moved
	}
	switch {
	case *pos < lo:
		moved := lo - *pos
		*pos = lo
		*prev = *pos + vel*damp
		return moved
	case *pos > hi:
		moved := *pos - hi
		*pos = hi
		*prev = *pos + vel*damp
		return moved
	}
	return 0
}

// resolvePair pushes two overlapping circles apart. Peers sharing a
// non-null group id are one creature and never collide; anchors act as
// infinite mass. Returns the largest single-node correction.
func resolvePair(w *creature.World, ai, bi int, st *Stats) float64 {
	a := &w.Nodes[ai]
	b := &w.Nodes[bi]
	if a.Group != creature.GroupNone && a.Group == b.Group {
		return 0
	}

	d := b.Pos.Sub(a.Pos)
	dist := d.Length()
	sum := a.Radius + b.Radius
	if dist >= sum || dist < minSeparation {
		return 0
	}
	overlap := sum - dist
	dir := d.Scale(1 / dist)

	aFixed := a.Kind == creature.KindAnchor
	bFixed := b.Kind == creature.KindAnchor
	switch {
	case aFixed && bFixed:
		return 0
	case aFixed:
		pushNode(b, dir.Scale(overlap))
		st.Pushes++
		return overlap
	case bFixed:
		pushNode(a, dir.Scale(-overlap))
		st.Pushes++
		return overlap
	default:
		pushNode(a, dir.Scale(-overlap*0.5))
		pushNode(b, dir.Scale(overlap*0.5))
		st.Pushes++
		return overlap * 0.5
	}
}

// pushNode displaces the node and mirrors a damping-scaled share of the
// push into Prev, so the implicit velocity gain is (1−damping)·push.
func pushNode(n *creature.Node, push geom.Vec2) {
	n.Pos = n.Pos.Add(push)
	n.Prev = n.Prev.Add(push.Scale(n.CollisionDamping))
}
