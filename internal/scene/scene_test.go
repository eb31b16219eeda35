package scene

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/crittersim/internal/config"
	"github.com/san-kum/crittersim/internal/creature"
	"github.com/san-kum/crittersim/internal/sim"
)

func TestBuildPresets(t *testing.T) {
	for _, name := range config.ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := config.Preset(name)
			w, simCfg, err := Build(cfg, 7)
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}
			if len(w.Nodes) != len(cfg.Nodes) {
				t.Errorf("expected %d nodes, got %d", len(cfg.Nodes), len(w.Nodes))
			}
			if w.Dirty() {
				t.Error("world should arrive with topology built")
			}
			if err := w.Validate(); err != nil {
				t.Errorf("built world does not validate: %v", err)
			}
			if simCfg.Dt != cfg.Physics.Dt {
				t.Errorf("dt not carried: %f vs %f", simCfg.Dt, cfg.Physics.Dt)
			}
			for li, l := range w.Limbs {
				for si, length := range l.Lengths {
					if length <= 0 {
						t.Errorf("limb %d segment %d has length %f", li, si, length)
					}
				}
			}
		})
	}
}

func TestBuildPresetsTick(t *testing.T) {
	// Every preset must survive a short headless run without producing
	// invalid coordinates.
	for _, name := range config.ListPresets() {
		t.Run(name, func(t *testing.T) {
			w, simCfg, err := Build(config.Preset(name), 3)
			if err != nil {
				t.Fatal(err)
			}
			simCfg.Duration = 1.0
			eng := sim.New(w, simCfg)
			result, err := eng.Run(context.Background())
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if len(result.Errors) > 0 {
				t.Fatalf("frame errors: %v", result.Errors)
			}
			for _, s := range result.States {
				if !s.IsValid() {
					t.Fatal("NaN/Inf coordinate in recorded state")
				}
			}
		})
	}
}

func TestBuildDeterministicPerSeed(t *testing.T) {
	a, _, err := Build(config.Preset("worm"), 42)
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := Build(config.Preset("worm"), 42)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Nodes {
		if a.Nodes[i].WanderDir != b.Nodes[i].WanderDir {
			t.Fatalf("node %d wander dir differs across equal-seed builds", i)
		}
	}

	c, _, err := Build(config.Preset("worm"), 43)
	if err != nil {
		t.Fatal(err)
	}
	if a.Nodes[0].WanderDir == c.Nodes[0].WanderDir {
		t.Error("different seeds produced the same wander heading")
	}
}

func TestBuildAppliesDefaults(t *testing.T) {
	cfg := config.DefaultScene()
	cfg.Nodes = []config.NodeConfig{{X: 1, Y: 2}}
	w, simCfg, err := Build(cfg, 0)
	if err != nil {
		t.Fatal(err)
	}
	n := w.Nodes[0]
	if n.Radius != config.DefaultRadius {
		t.Errorf("expected default radius, got %f", n.Radius)
	}
	if n.CollisionDamping != config.DefaultNodeDamping {
		t.Errorf("expected default collision damping, got %f", n.CollisionDamping)
	}
	if n.AngleMin != -math.Pi || n.AngleMax != math.Pi {
		t.Error("omitted angle limits should stay unconstrained")
	}
	if n.Kind != creature.KindNormal {
		t.Errorf("empty kind should be normal, got %v", n.Kind)
	}
	if simCfg.SolverIters != config.DefaultSolverIters {
		t.Errorf("solver iterations not defaulted: %d", simCfg.SolverIters)
	}
}

func TestBuildRejectsBadConfig(t *testing.T) {
	base := func() *config.Scene {
		cfg := config.DefaultScene()
		cfg.Nodes = []config.NodeConfig{{}, {X: 10}}
		return cfg
	}

	cases := []struct {
		name   string
		mutate func(*config.Scene)
	}{
		{"unknown kind", func(c *config.Scene) { c.Nodes[0].Kind = "ghost" }},
		{"unknown move mode", func(c *config.Scene) { c.Nodes[0].Move.Mode = "teleport" }},
		{"constraint out of range", func(c *config.Scene) {
			c.Constraints = []config.ConstraintConfig{{A: 0, B: 9}}
		}},
		{"self constraint", func(c *config.Scene) {
			c.Constraints = []config.ConstraintConfig{{A: 1, B: 1}}
		}},
		{"limb without joints", func(c *config.Scene) {
			c.Limbs = []config.LimbConfig{{Body: 0}}
		}},
		{"limb joint wrong kind", func(c *config.Scene) {
			c.Limbs = []config.LimbConfig{{Body: 0, Joints: []int{1}}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			if _, _, err := Build(cfg, 0); err == nil {
				t.Error("expected build error")
			}
		})
	}
}
