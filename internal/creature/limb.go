package creature

import "github.com/san-kum/crittersim/internal/geom"

// Limb is an IK chain hanging off a body node. Joints are Limb-kind node
// indices ordered body-adjacent first to tip last; Lengths carries one
// segment rest length per joint and is refreshed from the constraint
// graph at every topology rebuild.
type Limb struct {
	Body    int
	Joints  []int
	Lengths []float64
	// FlipBend picks the bend side per interior joint (one entry per
	// joint between the first and the tip).
	FlipBend []bool

	// TargetNode pins the foot to another node; negative means the
	// stepping machine computes the target from the body heading.
	TargetNode      int
	MaxReach        float64
	TargetDirOffset float64

	Iterations int
	Tolerance  float64

	StepThreshold float64
	StepHeight    float64
	StepSpeed     float64

	// Stepping runtime state. Planted is the zero state: the foot target
	// holds still until the ideal point drifts past StepThreshold.
	Target      geom.Vec2
	Stepping    bool
	StepStart   geom.Vec2
	StepDest    geom.Vec2
	StepElapsed float64
}

// NewLimb returns a limb over the given joint chain with default tuning.
func NewLimb(body int, joints ...int) Limb {
	interior := 0
	if len(joints) > 1 {
		interior = len(joints) - 1
	}
	return Limb{
		Body:          body,
		Joints:        joints,
		FlipBend:      make([]bool, interior),
		TargetNode:    -1,
		MaxReach:      100,
		Iterations:    10,
		Tolerance:     0.1,
		StepThreshold: 20,
		StepHeight:    10,
		StepSpeed:     240,
	}
}

// TotalLength is the full reach of the chain when laid out straight.
func (l *Limb) TotalLength() float64 {
	sum := 0.0
	for _, v := range l.Lengths {
		sum += v
	}
	return sum
}
