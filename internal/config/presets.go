package config

import (
	"math"
	"sort"
)

// Built-in scenes. Each entry is a constructor so callers always get a
// fresh value they can mutate.
var presets = map[string]func() *Scene{
	"worm":     wormScene,
	"strider":  striderScene,
	"jelly":    jellyScene,
	"drifters": driftersScene,
}

// Preset returns a named built-in scene, or nil when the name is
// unknown.
func Preset(name string) *Scene {
	build, ok := presets[name]
	if !ok {
		return nil
	}
	return build()
}

// ListPresets returns the built-in scene names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// wormScene is a wandering head towing a chain of body segments with
// tight angle limits, so the body snakes instead of folding.
func wormScene() *Scene {
	s := DefaultScene()
	s.Name = "worm"

	s.Nodes = append(s.Nodes, NodeConfig{
		Kind:   "anchor",
		Radius: 8,
		Move: MoveConfig{
			Mode:      "wander",
			Speed:     60,
			Amplitude: 100,
		},
	})
	const segments = 6
	for i := 1; i <= segments; i++ {
		s.Nodes = append(s.Nodes, NodeConfig{
			X:      -18 * float64(i),
			Radius: 7 - 0.5*float64(i),
			Angle:  &AngleConfig{Min: -0.6, Max: 0.6},
		})
		s.Constraints = append(s.Constraints, ConstraintConfig{A: i - 1, B: i, Rest: 18})
	}
	return s
}

// striderScene is a two-node body walking on four 2-segment legs. Left
// and right legs bend to opposite sides; diagonal phase comes from the
// staggered direction offsets.
func striderScene() *Scene {
	s := DefaultScene()
	s.Name = "strider"

	s.Nodes = append(s.Nodes,
		NodeConfig{
			Kind:   "anchor",
			Radius: 12,
			Move: MoveConfig{
				Mode:      "wander",
				Speed:     45,
				Amplitude: 90,
			},
		},
		NodeConfig{X: -26, Radius: 10, Angle: &AngleConfig{Min: -0.8, Max: 0.8}},
	)
	s.Constraints = append(s.Constraints, ConstraintConfig{A: 0, B: 1, Rest: 26})

	// body node index, knee/foot layout side, heading offset of the
	// ideal plant point, bend side
	legs := []struct {
		body   int
		side   float64
		offset float64
		flip   bool
	}{
		{0, 1, 0.7, false},
		{0, -1, -0.7, true},
		{1, 1, 2.2, false},
		{1, -1, -2.2, true},
	}
	for _, leg := range legs {
		bx := 0.0
		if leg.body == 1 {
			bx = -26
		}
		knee := len(s.Nodes)
		s.Nodes = append(s.Nodes,
			NodeConfig{X: bx + 8, Y: leg.side * 16, Radius: 4, Kind: "limb"},
			NodeConfig{X: bx + 16, Y: leg.side * 30, Radius: 4, Kind: "limb"},
		)
		s.Constraints = append(s.Constraints,
			ConstraintConfig{A: leg.body, B: knee, Rest: 18},
			ConstraintConfig{A: knee, B: knee + 1, Rest: 18},
		)
		s.Limbs = append(s.Limbs, LimbConfig{
			Body:            leg.body,
			Joints:          []int{knee, knee + 1},
			Flip:            []bool{leg.flip},
			MaxReach:        34,
			DirectionOffset: leg.offset,
			Step:            StepConfig{Threshold: 22, Height: 10, Speed: 200},
		})
	}
	return s
}

// jellyScene is a soft ring of nodes spoked to a hub that rides a
// circular path, so the whole body deforms against the walls.
func jellyScene() *Scene {
	s := DefaultScene()
	s.Name = "jelly"

	s.Nodes = append(s.Nodes, NodeConfig{
		Kind:   "anchor",
		Radius: 9,
		Move: MoveConfig{
			Mode:      "circle",
			Speed:     70,
			Amplitude: 130,
		},
	})
	const ring = 8
	const spoke = 42.0
	for i := 0; i < ring; i++ {
		a := 2 * math.Pi * float64(i) / ring
		s.Nodes = append(s.Nodes, NodeConfig{
			X:      spoke * math.Cos(a),
			Y:      spoke * math.Sin(a),
			Radius: 7,
		})
		s.Constraints = append(s.Constraints, ConstraintConfig{A: 0, B: i + 1, Rest: spoke})
	}
	for i := 0; i < ring; i++ {
		s.Constraints = append(s.Constraints, ConstraintConfig{
			A: i + 1,
			B: (i+1)%ring + 1,
		})
	}
	return s
}

// driftersScene scatters unconnected nodes under gravity between two
// wandering anchors. Every node is its own group, so everything
// collides with everything.
func driftersScene() *Scene {
	s := DefaultScene()
	s.Name = "drifters"

	s.Nodes = append(s.Nodes,
		NodeConfig{X: -200, Y: 100, Kind: "anchor", Radius: 14,
			Move: MoveConfig{Mode: "wander", Speed: 55, Amplitude: 110}},
		NodeConfig{X: 200, Y: -100, Kind: "anchor", Radius: 14,
			Move: MoveConfig{Mode: "wander", Speed: 55, Amplitude: 110, Phase: math.Pi}},
	)
	spots := []Vec2Config{
		{X: -120, Y: 40}, {X: -60, Y: -80}, {X: 0, Y: 120}, {X: 50, Y: -30},
		{X: 110, Y: 90}, {X: 160, Y: -140}, {X: -180, Y: -50}, {X: 80, Y: 10},
	}
	for i, p := range spots {
		s.Nodes = append(s.Nodes, NodeConfig{
			X:                p.X,
			Y:                p.Y,
			Radius:           8 + float64(i%3)*3,
			CollisionDamping: 0.3,
			ConstAccel:       Vec2Config{Y: -0.12},
		})
	}
	return s
}
