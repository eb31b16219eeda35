package metrics

import (
	"github.com/san-kum/crittersim/internal/creature"
	"github.com/san-kum/crittersim/internal/sim"
)

// CollisionLoad tracks the mean number of corrections per frame, pair
// pushes and boundary hits combined.
type CollisionLoad struct {
	name    string
	samples int
	total   float64
}

func NewCollisionLoad() *CollisionLoad {
	return &CollisionLoad{name: "collision_load"}
}

func (c *CollisionLoad) Name() string { return c.name }

func (c *CollisionLoad) Observe(w *creature.World, stats sim.FrameStats) {
	c.total += float64(stats.Collision.Pushes + stats.Collision.BoundaryHits)
	c.samples++
}

func (c *CollisionLoad) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.total / float64(c.samples)
}

func (c *CollisionLoad) Reset() {
	c.total = 0
	c.samples = 0
}

// StepCadence counts limb step launches per second of simulated time.
type StepCadence struct {
	name     string
	inFlight []bool
	steps    int
	firstT   float64
	lastT    float64
	samples  int
}

func NewStepCadence() *StepCadence {
	return &StepCadence{name: "step_cadence"}
}

func (s *StepCadence) Name() string { return s.name }

func (s *StepCadence) Observe(w *creature.World, stats sim.FrameStats) {
	if len(s.inFlight) != len(w.Limbs) {
		s.inFlight = make([]bool, len(w.Limbs))
	}
	for i := range w.Limbs {
		stepping := w.Limbs[i].Stepping
		if stepping && !s.inFlight[i] {
			s.steps++
		}
		s.inFlight[i] = stepping
	}
	if s.samples == 0 {
		s.firstT = stats.Time
	}
	s.lastT = stats.Time
	s.samples++
}

func (s *StepCadence) Value() float64 {
	elapsed := s.lastT - s.firstT
	if elapsed <= 0 {
		return float64(s.steps)
	}
	return float64(s.steps) / elapsed
}

func (s *StepCadence) Reset() {
	s.inFlight = nil
	s.steps = 0
	s.firstT = 0
	s.lastT = 0
	s.samples = 0
}
