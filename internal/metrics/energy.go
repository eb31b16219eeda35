package metrics

import (
	"math"

	"github.com/san-kum/crittersim/internal/creature"
	"github.com/san-kum/crittersim/internal/sim"
)

// KineticEnergy tracks the mean per-frame kinetic energy of the normal
// nodes. Velocities are the implicit per-frame displacements, so the
// value is in squared units per frame.
type KineticEnergy struct {
	name    string
	samples int
	total   float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(w *creature.World, stats sim.FrameStats) {
	frame := 0.0
	for i := range w.Nodes {
		n := &w.Nodes[i]
		if n.Kind != creature.KindNormal {
			continue
		}
		frame += 0.5 * n.Velocity().LengthSq()
	}
	k.total += frame
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}

// MaxSpeed tracks the fastest per-frame displacement seen on any node
// over the run.
type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(w *creature.World, stats sim.FrameStats) {
	for i := range w.Nodes {
		m.max = math.Max(m.max, w.Nodes[i].Velocity().Length())
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }
