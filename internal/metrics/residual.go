package metrics

import (
	"math"

	"github.com/san-kum/crittersim/internal/creature"
	"github.com/san-kum/crittersim/internal/sim"
)

// ConstraintResidual tracks the mean absolute deviation of edge lengths
// from their rest lengths, averaged per frame. A healthy solver keeps
// this a small fraction of the typical rest length.
type ConstraintResidual struct {
	name    string
	samples int
	total   float64
}

func NewConstraintResidual() *ConstraintResidual {
	return &ConstraintResidual{name: "constraint_residual"}
}

func (c *ConstraintResidual) Name() string { return c.name }

func (c *ConstraintResidual) Observe(w *creature.World, stats sim.FrameStats) {
	if len(w.Constraints) == 0 {
		return
	}
	frame := 0.0
	for _, edge := range w.Constraints {
		dist := w.Nodes[edge.A].Pos.Distance(w.Nodes[edge.B].Pos)
		frame += math.Abs(dist - edge.Rest)
	}
	c.total += frame / float64(len(w.Constraints))
	c.samples++
}

func (c *ConstraintResidual) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.total / float64(c.samples)
}

func (c *ConstraintResidual) Reset() {
	c.total = 0
	c.samples = 0
}
