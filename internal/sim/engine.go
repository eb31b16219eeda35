// Package sim owns the per-frame pipeline: integrate, steer, solve
// constraints, resolve collisions, solve limbs. A frame either runs
// every stage to completion or the configuration was invalid before it
// started; no stage blocks or suspends.
package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/crittersim/internal/collide"
	"github.com/san-kum/crittersim/internal/creature"
	"github.com/san-kum/crittersim/internal/ik"
	"github.com/san-kum/crittersim/internal/physics"
	"github.com/san-kum/crittersim/internal/steer"
)

type Engine struct {
	world *creature.World
	cfg   Config
	grid  *collide.Grid

	metrics   []Metric
	observers []Observer

	time  float64
	frame int
	stats FrameStats
}

// New wires an engine over w. The world must already validate; Tick
// rebuilds topology on demand when the graph was edited between frames.
func New(w *creature.World, cfg Config) *Engine {
	cell := cfg.CellSize
	if cell <= 0 {
		cell = collide.AutoCellSize(w.Nodes)
	}
	return &Engine{
		world: w,
		cfg:   cfg,
		grid:  collide.NewGrid(cell),
	}
}

func (e *Engine) AddMetric(m Metric)     { e.metrics = append(e.metrics, m) }
func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Engine) World() *creature.World { return e.world }
func (e *Engine) Config() Config         { return e.cfg }
func (e *Engine) Time() float64          { return e.time }
func (e *Engine) Frame() int             { return e.frame }
func (e *Engine) LastStats() FrameStats  { return e.stats }

// Tick advances the world one frame. Graph edits made since the last
// frame are folded in first; a failed rebuild leaves the world
// positions untouched.
func (e *Engine) Tick(dt float64) error {
	if e.world.Dirty() {
		if err := e.world.RebuildTopology(); err != nil {
			return err
		}
	}

	physics.Integrate(e.world, e.cfg.AirDamping)
	steer.Update(e.world, e.cfg.Steer, e.time, dt)
	physics.SolveConstraints(e.world, e.cfg.SolverIters)
	collision := collide.Resolve(e.world, e.grid, e.cfg.CollisionPasses)
	ik.Update(e.world, dt)

	e.time += dt
	e.frame++
	inFlight := 0
	for i := range e.world.Limbs {
		if e.world.Limbs[i].Stepping {
			inFlight++
		}
	}
	e.stats = FrameStats{
		Frame:         e.frame,
		Time:          e.time,
		Collision:     collision,
		StepsInFlight: inFlight,
	}

	for _, m := range e.metrics {
		m.Observe(e.world, e.stats)
	}
	for _, o := range e.observers {
		o.OnFrame(e.world, e.stats)
	}
	return nil
}

// Run advances the engine for cfg.Duration and records a snapshot per
// frame. Cancellation returns the partial result with the context
// error.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if err := validateConfig(e.cfg); err != nil {
		return nil, err
	}

	steps := int(e.cfg.Duration / e.cfg.Dt)
	result := &Result{
		Times:   make([]float64, 0, steps+1),
		States:  make([]State, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	result.Times = append(result.Times, e.time)
	result.States = append(result.States, Snapshot(e.world))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := e.Tick(e.cfg.Dt); err != nil {
			result.Errors = append(result.Errors, err)
			break
		}

		snap := Snapshot(e.world)
		if e.cfg.ValidateState && !snap.IsValid() {
			result.Errors = append(result.Errors, FrameError{
				Time: e.time, Frame: e.frame, Message: "invalid state (NaN/Inf)",
			})
			break
		}

		result.Frames++
		result.Times = append(result.Times, e.time)
		result.States = append(result.States, snap)
	}

	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// RunWithCallback advances until cfg.Duration or until the callback
// returns false. The callback sees the world after each completed
// frame; no snapshots are retained.
func (e *Engine) RunWithCallback(ctx context.Context, callback func(w *creature.World, stats FrameStats) bool) error {
	if err := validateConfig(e.cfg); err != nil {
		return err
	}

	for e.time < e.cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := e.Tick(e.cfg.Dt); err != nil {
			return err
		}
		if e.cfg.ValidateState && !Snapshot(e.world).IsValid() {
			return FrameError{Time: e.time, Frame: e.frame, Message: "invalid state (NaN/Inf)"}
		}
		if !callback(e.world, e.stats) {
			return nil
		}
	}
	return nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("sim: dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("sim: duration must be positive, got %f", cfg.Duration)
	}
	if cfg.SolverIters <= 0 {
		return fmt.Errorf("sim: solver iterations must be positive, got %d", cfg.SolverIters)
	}
	if cfg.CollisionPasses <= 0 {
		return fmt.Errorf("sim: collision passes must be positive, got %d", cfg.CollisionPasses)
	}
	return nil
}
