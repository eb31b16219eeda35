package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/crittersim/internal/collide"
	"github.com/san-kum/crittersim/internal/creature"
	"github.com/san-kum/crittersim/internal/geom"
	"github.com/san-kum/crittersim/internal/sim"
)

func newMetricWorld() *creature.World {
	return creature.NewWorld(creature.NewPlayground(800, 600, 10))
}

func TestKineticEnergySkipsDrivenNodes(t *testing.T) {
	w := newMetricWorld()
	n := creature.NewNode(geom.V(0, 0))
	n.Prev = geom.V(-3, -4)
	w.AddNode(n)

	a := creature.NewAnchor(geom.V(50, 0), creature.MoveSpec{TargetNode: -1})
	a.Prev = geom.V(40, 0)
	w.AddNode(a)

	m := NewKineticEnergy()
	m.Observe(w, sim.FrameStats{Time: 1})
	m.Observe(w, sim.FrameStats{Time: 2})

	// Speed 5 on the normal node only: 0.5*25 per frame.
	if got := m.Value(); math.Abs(got-12.5) > 1e-9 {
		t.Errorf("expected mean kinetic energy 12.5, got %v", got)
	}

	m.Reset()
	if got := m.Value(); got != 0 {
		t.Errorf("expected zero after reset, got %v", got)
	}
}

func TestMaxSpeedKeepsThePeak(t *testing.T) {
	w := newMetricWorld()
	n := creature.NewNode(geom.V(0, 0))
	n.Prev = geom.V(-5, 0)
	idx := w.AddNode(n)

	m := NewMaxSpeed()
	m.Observe(w, sim.FrameStats{})

	w.Nodes[idx].Prev = geom.V(-2, 0)
	m.Observe(w, sim.FrameStats{})

	if got := m.Value(); math.Abs(got-5) > 1e-9 {
		t.Errorf("expected peak speed 5, got %v", got)
	}
}

func TestConstraintResidualAveragesEdges(t *testing.T) {
	w := newMetricWorld()
	w.AddNode(creature.NewNode(geom.V(0, 0)))
	w.AddNode(creature.NewNode(geom.V(60, 0)))
	w.AddNode(creature.NewNode(geom.V(60, 40)))
	if _, err := w.Connect(0, 1, 50); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := w.Connect(1, 2, 40); err != nil {
		t.Fatalf("connect: %v", err)
	}

	m := NewConstraintResidual()
	m.Observe(w, sim.FrameStats{})

	// Edge residuals 10 and 0 average to 5.
	if got := m.Value(); math.Abs(got-5) > 1e-9 {
		t.Errorf("expected mean residual 5, got %v", got)
	}
}

func TestCollisionLoadAveragesFrames(t *testing.T) {
	w := newMetricWorld()
	m := NewCollisionLoad()

	m.Observe(w, sim.FrameStats{Collision: collide.Stats{Pushes: 3, BoundaryHits: 1}})
	m.Observe(w, sim.FrameStats{})

	if got := m.Value(); math.Abs(got-2) > 1e-9 {
		t.Errorf("expected mean load 2, got %v", got)
	}
}

func TestStepCadenceCountsLaunchesPerSecond(t *testing.T) {
	w := newMetricWorld()
	w.AddNode(creature.NewNode(geom.V(0, 0)))
	w.AddNode(creature.NewLimbNode(geom.V(10, 0)))
	w.AddNode(creature.NewLimbNode(geom.V(20, 0)))
	for _, l := range []creature.Limb{creature.NewLimb(0, 1), creature.NewLimb(0, 2)} {
		if _, err := w.AddLimb(l); err != nil {
			t.Fatalf("add limb: %v", err)
		}
	}

	m := NewStepCadence()
	m.Observe(w, sim.FrameStats{Time: 0})

	w.Limbs[0].Stepping = true
	m.Observe(w, sim.FrameStats{Time: 0.5})
	m.Observe(w, sim.FrameStats{Time: 1.0})

	w.Limbs[0].Stepping = false
	w.Limbs[1].Stepping = true
	m.Observe(w, sim.FrameStats{Time: 1.5})

	// Two launches over 1.5 seconds.
	if got := m.Value(); math.Abs(got-2.0/1.5) > 1e-9 {
		t.Errorf("expected cadence %v, got %v", 2.0/1.5, got)
	}
}
