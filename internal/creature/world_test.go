package creature

import (
	"errors"
	"testing"

	"github.com/san-kum/crittersim/internal/geom"
)

func testPlayground() Playground {
	return NewPlayground(800, 600, 10)
}

func TestConnectDerivesRestFromLayout(t *testing.T) {
	w := NewWorld(testPlayground())
	a := w.AddNode(NewNode(geom.V(0, 0)))
	b := w.AddNode(NewNode(geom.V(30, 40)))

	ci, err := w.Connect(a, b, 0)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if got := w.Constraints[ci].Rest; got != 50 {
		t.Errorf("expected derived rest 50, got %f", got)
	}
}

func TestConnectRejectsBadReferences(t *testing.T) {
	w := NewWorld(testPlayground())
	a := w.AddNode(NewNode(geom.V(0, 0)))

	if _, err := w.Connect(a, 7, 10); !errors.Is(err, ErrNodeIndex) {
		t.Errorf("expected ErrNodeIndex, got %v", err)
	}
	if _, err := w.Connect(a, a, 10); !errors.Is(err, ErrSelfLink) {
		t.Errorf("expected ErrSelfLink, got %v", err)
	}

	b := w.AddNode(NewNode(geom.V(0, 0)))
	if _, err := w.Connect(a, b, 0); !errors.Is(err, ErrRestLength) {
		t.Errorf("expected ErrRestLength for coincident nodes, got %v", err)
	}
}

func TestRemoveNodeRemapsReferences(t *testing.T) {
	w := NewWorld(testPlayground())
	a := w.AddNode(NewAnchor(geom.V(0, 0), MoveSpec{Mode: MoveWander, TargetNode: -1}))
	b := w.AddNode(NewNode(geom.V(20, 0)))
	c := w.AddNode(NewNode(geom.V(40, 0)))
	mustConnect(t, w, a, b, 20)
	mustConnect(t, w, b, c, 20)
	mustConnect(t, w, a, c, 40)

	if err := w.RemoveNode(b); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(w.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(w.Nodes))
	}
	if len(w.Constraints) != 1 {
		t.Fatalf("expected only the a-c constraint to survive, got %d", len(w.Constraints))
	}
	got := w.Constraints[0]
	if got.A != 0 || got.B != 1 {
		t.Errorf("expected remapped constraint 0-1, got %d-%d", got.A, got.B)
	}
}

func TestRemoveNodeDropsDependentLimb(t *testing.T) {
	w := NewWorld(testPlayground())
	body := w.AddNode(NewNode(geom.V(0, 0)))
	j0 := w.AddNode(NewLimbNode(geom.V(10, 0)))
	j1 := w.AddNode(NewLimbNode(geom.V(20, 0)))
	mustConnect(t, w, body, j0, 10)
	mustConnect(t, w, j0, j1, 10)
	if _, err := w.AddLimb(NewLimb(body, j0, j1)); err != nil {
		t.Fatalf("add limb: %v", err)
	}

	if err := w.RemoveNode(j0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(w.Limbs) != 0 {
		t.Errorf("expected limb to drop with its joint, got %d limbs", len(w.Limbs))
	}
}

func TestRebuildAssignsGroups(t *testing.T) {
	w := NewWorld(testPlayground())
	a := w.AddNode(NewNode(geom.V(0, 0)))
	b := w.AddNode(NewNode(geom.V(20, 0)))
	c := w.AddNode(NewNode(geom.V(200, 0)))
	d := w.AddNode(NewNode(geom.V(220, 0)))
	loner := w.AddNode(NewNode(geom.V(-200, 0)))
	mustConnect(t, w, a, b, 20)
	mustConnect(t, w, c, d, 20)

	if err := w.RebuildTopology(); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if w.GroupCount() != 2 {
		t.Fatalf("expected 2 groups, got %d", w.GroupCount())
	}
	if w.Nodes[a].Group != w.Nodes[b].Group {
		t.Error("connected nodes landed in different groups")
	}
	if w.Nodes[a].Group == w.Nodes[c].Group {
		t.Error("separate components share a group")
	}
	if w.Nodes[loner].Group != GroupNone {
		t.Errorf("isolated node got group %d", w.Nodes[loner].Group)
	}
	if w.Dirty() {
		t.Error("world still dirty after rebuild")
	}
}

func TestRebuildPrefersAnchorRoot(t *testing.T) {
	w := NewWorld(testPlayground())
	// The anchor sits mid-arena; the chain should still hang off it.
	tail := w.AddNode(NewNode(geom.V(40, 0)))
	mid := w.AddNode(NewNode(geom.V(20, 0)))
	head := w.AddNode(NewAnchor(geom.V(0, 0), MoveSpec{Mode: MoveWander, TargetNode: -1}))
	mustConnect(t, w, head, mid, 20)
	mustConnect(t, w, mid, tail, 20)

	if err := w.RebuildTopology(); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if w.Parent(head) != -1 {
		t.Errorf("anchor should be the root, has parent %d", w.Parent(head))
	}
	if w.Parent(mid) != head || w.Parent(tail) != mid {
		t.Errorf("unexpected chain parents: mid=%d tail=%d", w.Parent(mid), w.Parent(tail))
	}

	order := w.ChainOrder()
	if len(order) != 3 || order[0] != head {
		t.Errorf("expected chain order to start at the anchor, got %v", order)
	}
}

func TestAngleLinksSkipAnchorsAndLimbs(t *testing.T) {
	w := NewWorld(testPlayground())
	head := w.AddNode(NewAnchor(geom.V(0, 0), MoveSpec{Mode: MoveNone, TargetNode: -1}))
	body := w.AddNode(NewNode(geom.V(20, 0)))
	foot := w.AddNode(NewLimbNode(geom.V(40, 0)))
	mustConnect(t, w, head, body, 20)
	mustConnect(t, w, body, foot, 20)

	if err := w.RebuildTopology(); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	links := w.AngleLinks()
	if len(links) != 1 {
		t.Fatalf("expected a single angle link, got %d", len(links))
	}
	if links[0].Node != body || links[0].Parent != head {
		t.Errorf("unexpected link %+v", links[0])
	}
	if links[0].Rest != 20 {
		t.Errorf("expected rest 20, got %f", links[0].Rest)
	}
}

func TestRebuildRefreshesLimbLengths(t *testing.T) {
	w := NewWorld(testPlayground())
	body := w.AddNode(NewNode(geom.V(0, 0)))
	j0 := w.AddNode(NewLimbNode(geom.V(12, 0)))
	j1 := w.AddNode(NewLimbNode(geom.V(30, 0)))
	mustConnect(t, w, body, j0, 12)
	mustConnect(t, w, j0, j1, 18)
	li, err := w.AddLimb(NewLimb(body, j0, j1))
	if err != nil {
		t.Fatalf("add limb: %v", err)
	}

	if err := w.RebuildTopology(); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	l := w.Limbs[li]
	if len(l.Lengths) != 2 || l.Lengths[0] != 12 || l.Lengths[1] != 18 {
		t.Errorf("unexpected segment lengths %v", l.Lengths)
	}
	if l.TotalLength() != 30 {
		t.Errorf("expected total reach 30, got %f", l.TotalLength())
	}
	if len(l.FlipBend) != 1 {
		t.Errorf("expected one interior bend flag, got %d", len(l.FlipBend))
	}
}

func TestAutoBuildLimbs(t *testing.T) {
	w := NewWorld(testPlayground())
	body := w.AddNode(NewNode(geom.V(0, 0)))
	l0 := w.AddNode(NewLimbNode(geom.V(10, 0)))
	l1 := w.AddNode(NewLimbNode(geom.V(20, 0)))
	r0 := w.AddNode(NewLimbNode(geom.V(-10, 0)))
	r1 := w.AddNode(NewLimbNode(geom.V(-20, 0)))
	mustConnect(t, w, body, l0, 10)
	mustConnect(t, w, l0, l1, 10)
	mustConnect(t, w, body, r0, 10)
	mustConnect(t, w, r0, r1, 10)

	if added := w.AutoBuildLimbs(); added != 2 {
		t.Fatalf("expected 2 traced limbs, got %d", added)
	}
	if err := w.RebuildTopology(); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if got := len(w.Limbs[0].Joints); got != 2 {
		t.Errorf("expected 2 joints on first limb, got %d", got)
	}

	// Re-running must not duplicate claimed chains.
	if added := w.AutoBuildLimbs(); added != 0 {
		t.Errorf("expected no new limbs on second pass, got %d", added)
	}
}

func TestValidateRejectsBadWorlds(t *testing.T) {
	tests := []struct {
		name string
		make func() *World
		want error
	}{
		{
			name: "zero radius",
			make: func() *World {
				w := NewWorld(testPlayground())
				n := NewNode(geom.V(0, 0))
				n.Radius = 0
				w.AddNode(n)
				return w
			},
			want: ErrRadius,
		},
		{
			name: "inverted angle limits",
			make: func() *World {
				w := NewWorld(testPlayground())
				n := NewNode(geom.V(0, 0))
				n.AngleMin, n.AngleMax = 0.5, -0.5
				w.AddNode(n)
				return w
			},
			want: ErrAngleRange,
		},
		{
			name: "follow target out of range",
			make: func() *World {
				w := NewWorld(testPlayground())
				w.AddNode(NewAnchor(geom.V(0, 0), MoveSpec{Mode: MoveFollow, TargetNode: 5}))
				return w
			},
			want: ErrTargetRef,
		},
		{
			name: "inverted playground",
			make: func() *World {
				pg := testPlayground()
				pg.Bounds = geom.NewRect(10, 0, -10, 5)
				w := NewWorld(pg)
				w.AddNode(NewNode(geom.V(0, 0)))
				return w
			},
			want: ErrBounds,
		},
		{
			name: "limb joint of wrong kind",
			make: func() *World {
				w := NewWorld(testPlayground())
				body := w.AddNode(NewNode(geom.V(0, 0)))
				j := w.AddNode(NewNode(geom.V(10, 0)))
				w.Limbs = append(w.Limbs, NewLimb(body, j))
				return w
			},
			want: ErrLimbChain,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.make().RebuildTopology()
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func mustConnect(t *testing.T, w *World, a, b int, rest float64) {
	t.Helper()
	if _, err := w.Connect(a, b, rest); err != nil {
		t.Fatalf("connect %d-%d: %v", a, b, err)
	}
}
