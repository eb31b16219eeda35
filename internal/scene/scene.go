// Package scene turns a config.Scene into a validated world the engine
// can tick. Building is the only place configuration strings are parsed;
// everything downstream works on the typed arena.
package scene

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/crittersim/internal/config"
	"github.com/san-kum/crittersim/internal/creature"
	"github.com/san-kum/crittersim/internal/geom"
	"github.com/san-kum/crittersim/internal/sim"
	"github.com/san-kum/crittersim/internal/steer"
)

// Build constructs the world a scene describes and the engine config to
// run it with. Validation failures surface here, before the first tick.
// The seed randomizes initial wander headings; builds with equal seeds
// are identical.
func Build(cfg *config.Scene, seed int64) (*creature.World, sim.Config, error) {
	simCfg := engineConfig(cfg, seed)

	pg := creature.NewPlayground(cfg.Playground.Width, cfg.Playground.Height, cfg.Playground.Margin)
	pg.ImpactDamping = cfg.Playground.ImpactDamping
	w := creature.NewWorld(pg)

	rng := rand.New(rand.NewSource(seed))
	for i, nc := range cfg.Nodes {
		n, err := buildNode(nc, rng)
		if err != nil {
			return nil, simCfg, fmt.Errorf("node %d: %w", i, err)
		}
		w.AddNode(n)
	}

	for i, cc := range cfg.Constraints {
		if _, err := w.Connect(cc.A, cc.B, cc.Rest); err != nil {
			return nil, simCfg, fmt.Errorf("constraint %d: %w", i, err)
		}
	}

	for i, lc := range cfg.Limbs {
		if _, err := w.AddLimb(buildLimb(lc)); err != nil {
			return nil, simCfg, fmt.Errorf("limb %d: %w", i, err)
		}
	}

	if err := w.RebuildTopology(); err != nil {
		return nil, simCfg, err
	}
	return w, simCfg, nil
}

func buildNode(nc config.NodeConfig, rng *rand.Rand) (creature.Node, error) {
	n := creature.NewNode(geom.V(nc.X, nc.Y))

	switch nc.Kind {
	case "", "normal":
	case "anchor":
		n.Kind = creature.KindAnchor
	case "limb":
		n.Kind = creature.KindLimb
	default:
		return n, fmt.Errorf("scene: unknown node kind %q", nc.Kind)
	}

	if nc.Radius > 0 {
		n.Radius = nc.Radius
	}
	if nc.CollisionDamping > 0 {
		n.CollisionDamping = nc.CollisionDamping
	}
	if nc.Angle != nil {
		n.AngleMin = nc.Angle.Min
		n.AngleMax = nc.Angle.Max
	}
	n.ConstAccel = geom.V(nc.ConstAccel.X, nc.ConstAccel.Y)

	move, err := buildMove(nc.Move)
	if err != nil {
		return n, err
	}
	n.Move = move
	if n.Kind == creature.KindAnchor && move.Mode == creature.MoveWander {
		n.WanderDir = rng.Float64()*2*math.Pi - math.Pi
		n.ChainAngle = n.WanderDir
	}
	return n, nil
}

func buildMove(mc config.MoveConfig) (creature.MoveSpec, error) {
	m := creature.MoveSpec{
		Speed:      mc.Speed,
		Amplitude:  mc.Amplitude,
		Phase:      mc.Phase,
		Center:     geom.V(mc.Center.X, mc.Center.Y),
		TargetNode: -1,
	}
	if mc.Target != nil {
		m.TargetNode = *mc.Target
	}
	switch mc.Mode {
	case "", "none":
		m.Mode = creature.MoveNone
	case "follow":
		m.Mode = creature.MoveFollow
	case "circle":
		m.Mode = creature.MoveCircle
	case "wave":
		m.Mode = creature.MoveWave
	case "wander":
		m.Mode = creature.MoveWander
	default:
		return m, fmt.Errorf("scene: unknown move mode %q", mc.Mode)
	}
	return m, nil
}

func buildLimb(lc config.LimbConfig) creature.Limb {
	l := creature.NewLimb(lc.Body, lc.Joints...)
	copy(l.FlipBend, lc.Flip)
	if lc.Target != nil {
		l.TargetNode = *lc.Target
	}
	if lc.MaxReach > 0 {
		l.MaxReach = lc.MaxReach
	}
	l.TargetDirOffset = lc.DirectionOffset
	if lc.Iterations > 0 {
		l.Iterations = lc.Iterations
	}
	if lc.Tolerance > 0 {
		l.Tolerance = lc.Tolerance
	}
	if lc.Step.Threshold > 0 {
		l.StepThreshold = lc.Step.Threshold
	}
	if lc.Step.Height > 0 {
		l.StepHeight = lc.Step.Height
	}
	if lc.Step.Speed > 0 {
		l.StepSpeed = lc.Step.Speed
	}
	return l
}

func engineConfig(cfg *config.Scene, seed int64) sim.Config {
	c := sim.DefaultConfig()
	c.Seed = seed
	p := cfg.Physics
	if p.Dt > 0 {
		c.Dt = p.Dt
	}
	if p.Duration > 0 {
		c.Duration = p.Duration
	}
	if p.AirDamping > 0 {
		c.AirDamping = p.AirDamping
	}
	if p.SolverIterations > 0 {
		c.SolverIters = p.SolverIterations
	}
	if p.CollisionPasses > 0 {
		c.CollisionPasses = p.CollisionPasses
	}
	c.CellSize = p.CellSize
	c.Steer = steeringTuning(cfg.Steering)
	return c
}

// steeringTuning merges non-zero overrides over the wander defaults.
func steeringTuning(sc config.SteeringConfig) steer.Tuning {
	t := steer.DefaultTuning()
	if sc.Strength > 0 {
		t.Strength = sc.Strength
	}
	if sc.Responsiveness > 0 {
		t.Responsiveness = sc.Responsiveness
	}
	if sc.TurnRate > 0 {
		t.TurnRate = sc.TurnRate
	}
	if sc.BoundaryRange > 0 {
		t.BoundaryRange = sc.BoundaryRange
	}
	if sc.AvoidBuffer > 0 {
		t.AvoidBuffer = sc.AvoidBuffer
	}
	if sc.StuckRadius > 0 {
		t.StuckRadius = sc.StuckRadius
	}
	if sc.TargetSmoothing > 0 {
		t.TargetSmoothing = sc.TargetSmoothing
	}
	if sc.HorizontalBias != 0 {
		t.HorizontalBias = sc.HorizontalBias
	}
	return t
}
