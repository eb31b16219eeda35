package ik

import (
	"math"
	"testing"

	"github.com/san-kum/crittersim/internal/creature"
	"github.com/san-kum/crittersim/internal/geom"
)

func vecNear(a, b geom.Vec2, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// newLegWorld builds body(0) -> joint(1) -> joint(2), two segments of
// length 10, plus a free node(3) the limb can follow.
func newLegWorld(t *testing.T) *creature.World {
	t.Helper()
	w := creature.NewWorld(creature.NewPlayground(2000, 2000, 10))
	w.AddNode(creature.NewNode(geom.V(0, 0)))
	w.AddNode(creature.NewLimbNode(geom.V(10, 0)))
	w.AddNode(creature.NewLimbNode(geom.V(20, 0)))
	w.AddNode(creature.NewNode(geom.V(0, 25)))
	for _, c := range [][2]int{{0, 1}, {1, 2}} {
		if _, err := w.Connect(c[0], c[1], 10); err != nil {
			t.Fatalf("connect %v: %v", c, err)
		}
	}
	l := creature.NewLimb(0, 1, 2)
	l.TargetNode = 3
	if _, err := w.AddLimb(l); err != nil {
		t.Fatalf("add limb: %v", err)
	}
	if err := w.RebuildTopology(); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	return w
}

func TestOutOfReachChainLiesStraight(t *testing.T) {
	w := newLegWorld(t)

	// Target node sits 25 from the body; total reach is 20.
	Update(w, 1.0/60)

	if got := w.Nodes[1].Pos; !vecNear(got, geom.V(0, 10), 1e-9) {
		t.Fatalf("expected first joint at (0,10), got %v", got)
	}
	if got := w.Nodes[2].Pos; !vecNear(got, geom.V(0, 20), 1e-9) {
		t.Fatalf("expected tip at (0,20), got %v", got)
	}
	if got := w.Nodes[2].Pos.Distance(w.Nodes[0].Pos); math.Abs(got-20) > 1e-9 {
		t.Errorf("expected tip exactly 20 from the body, got %v", got)
	}
	for _, i := range []int{1, 2} {
		if vel := w.Nodes[i].Velocity(); !vel.IsZero() {
			t.Errorf("joint %d: expected zero velocity after solve, got %v", i, vel)
		}
		if got := w.Nodes[i].ChainAngle; math.Abs(got-math.Pi/2) > 1e-9 {
			t.Errorf("joint %d: expected chain angle pi/2, got %v", i, got)
		}
	}
}

func TestReachableTargetConvergesWithinTolerance(t *testing.T) {
	w := newLegWorld(t)
	w.Nodes[3].Pos = geom.V(14, 3)
	w.Nodes[3].Prev = w.Nodes[3].Pos

	Update(w, 1.0/60)

	l := &w.Limbs[0]
	tip := w.Nodes[2].Pos
	if got := tip.Distance(geom.V(14, 3)); got > l.Tolerance {
		t.Fatalf("expected tip within %v of target, got distance %v", l.Tolerance, got)
	}
	for i, want := range l.Lengths {
		var from geom.Vec2
		if i == 0 {
			from = w.Nodes[0].Pos
		} else {
			from = w.Nodes[l.Joints[i-1]].Pos
		}
		got := w.Nodes[l.Joints[i]].Pos.Distance(from)
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("segment %d: expected length %v, got %v", i, want, got)
		}
	}
}

func TestBendSideFollowsFlipFlag(t *testing.T) {
	side := func(flip bool) float64 {
		w := newLegWorld(t)
		w.Nodes[3].Pos = geom.V(14, 3)
		w.Nodes[3].Prev = w.Nodes[3].Pos
		w.Limbs[0].FlipBend[0] = flip

		Update(w, 1.0/60)

		root := w.Nodes[0].Pos
		tip := w.Nodes[2].Pos
		return tip.Sub(root).Cross(w.Nodes[1].Pos.Sub(root))
	}

	if got := side(false); got >= 0 {
		t.Errorf("expected negative bend side by default, got cross %v", got)
	}
	if got := side(true); got <= 0 {
		t.Errorf("expected positive bend side when flipped, got cross %v", got)
	}
}

func TestForwardPassClampsJointWindow(t *testing.T) {
	w := creature.NewWorld(creature.NewPlayground(2000, 2000, 10))
	w.AddNode(creature.NewNode(geom.V(0, 0)))
	w.AddNode(creature.NewLimbNode(geom.V(10, 0)))
	w.AddNode(creature.NewNode(geom.V(0, 8)))
	if _, err := w.Connect(0, 1, 10); err != nil {
		t.Fatalf("connect: %v", err)
	}
	w.Nodes[0].ChainAngle = 0
	w.Nodes[1].AngleMin = -0.2
	w.Nodes[1].AngleMax = 0.2
	l := creature.NewLimb(0, 1)
	l.TargetNode = 2
	if _, err := w.AddLimb(l); err != nil {
		t.Fatalf("add limb: %v", err)
	}
	if err := w.RebuildTopology(); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	Update(w, 1.0/60)

	want := geom.V(10*math.Cos(0.2), 10*math.Sin(0.2))
	if got := w.Nodes[1].Pos; !vecNear(got, want, 1e-9) {
		t.Fatalf("expected joint clamped to %v, got %v", want, got)
	}
	if got := w.Nodes[1].ChainAngle; math.Abs(got-0.2) > 1e-9 {
		t.Errorf("expected chain angle clamped to 0.2, got %v", got)
	}
}

func TestIdealTargetPrefersTargetNode(t *testing.T) {
	w := newLegWorld(t)
	got := idealTarget(w, &w.Limbs[0], &w.Nodes[0])
	if got != w.Nodes[3].Pos {
		t.Errorf("expected target node position %v, got %v", w.Nodes[3].Pos, got)
	}
}

func TestIdealTargetRayClipsAtWall(t *testing.T) {
	w := creature.NewWorld(creature.NewPlayground(70, 70, 10))
	w.AddNode(creature.NewNode(geom.V(0, 0)))
	w.AddNode(creature.NewLimbNode(geom.V(10, 0)))
	if _, err := w.Connect(0, 1, 10); err != nil {
		t.Fatalf("connect: %v", err)
	}
	w.Nodes[0].ChainAngle = 0
	l := creature.NewLimb(0, 1)
	l.MaxReach = 60
	if _, err := w.AddLimb(l); err != nil {
		t.Fatalf("add limb: %v", err)
	}
	if err := w.RebuildTopology(); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	got := idealTarget(w, &w.Limbs[0], &w.Nodes[0])
	if !vecNear(got, geom.V(25, 0), 1e-9) {
		t.Errorf("expected ray clipped at the wall (25,0), got %v", got)
	}
}
