package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/crittersim/internal/collide"
	"github.com/san-kum/crittersim/internal/creature"
	"github.com/san-kum/crittersim/internal/steer"
)

// State is a flattened node-position snapshot: x0, y0, x1, y1, ...
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Snapshot flattens the world's node positions into a State.
func Snapshot(w *creature.World) State {
	s := make(State, 0, 2*len(w.Nodes))
	for i := range w.Nodes {
		s = append(s, w.Nodes[i].Pos.X, w.Nodes[i].Pos.Y)
	}
	return s
}

// Metric accumulates a scalar over a run. Observe is called once per
// frame after the pipeline completes; stats carries the frame time and
// collision counters.
type Metric interface {
	Name() string
	Observe(w *creature.World, stats FrameStats)
	Value() float64
	Reset()
}

// Observer sees the world after every completed frame.
type Observer interface {
	OnFrame(w *creature.World, stats FrameStats)
}

// FrameStats summarizes the last completed frame.
type FrameStats struct {
	Frame     int
	Time      float64
	Collision collide.Stats
	// StepsInFlight counts limbs mid-step at frame end.
	StepsInFlight int
}

type Config struct {
	Dt       float64
	Duration float64
	Seed     int64

	AirDamping      float64
	SolverIters     int
	CollisionPasses int
	// CellSize fixes the broad-phase cell edge; zero derives it from
	// the largest node radius at engine construction.
	CellSize float64

	Steer steer.Tuning

	// ValidateState stops a run on the first NaN/Inf coordinate.
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:              1.0 / 60,
		Duration:        10.0,
		AirDamping:      0.98,
		SolverIters:     4,
		CollisionPasses: 4,
		Steer:           steer.DefaultTuning(),
		ValidateState:   true,
	}
}

type Result struct {
	Times   []float64
	States  []State
	Metrics map[string]float64
	Frames  int
	Errors  []error
}

// FrameError marks a frame that broke a run.
type FrameError struct {
	Time    float64
	Frame   int
	Message string
}

func (e FrameError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %s", e.Frame, e.Time, e.Message)
}
