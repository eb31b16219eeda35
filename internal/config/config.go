package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt            = 1.0 / 60
	DefaultDuration      = 10.0
	DefaultAirDamping    = 0.98
	DefaultSolverIters   = 4
	DefaultPasses        = 4
	DefaultImpactDamping = 0.5
	DefaultRadius        = 5.0
	DefaultNodeDamping   = 0.5
)

// Scene is the YAML description of one simulation setup: the playground,
// the solver tuning, and the creatures living in it. scene.Build turns a
// Scene into a validated world.
type Scene struct {
	Name        string             `yaml:"name"`
	Playground  PlaygroundConfig   `yaml:"playground"`
	Physics     PhysicsConfig      `yaml:"physics"`
	Steering    SteeringConfig     `yaml:"steering"`
	Nodes       []NodeConfig       `yaml:"nodes"`
	Constraints []ConstraintConfig `yaml:"constraints"`
	Limbs       []LimbConfig       `yaml:"limbs"`
}

type PlaygroundConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Margin        float64 `yaml:"margin"`
	ImpactDamping float64 `yaml:"impact_damping"`
}

type PhysicsConfig struct {
	Dt               float64 `yaml:"dt"`
	Duration         float64 `yaml:"duration"`
	AirDamping       float64 `yaml:"air_damping"`
	SolverIterations int     `yaml:"solver_iterations"`
	CollisionPasses  int     `yaml:"collision_passes"`
	CellSize         float64 `yaml:"cell_size"`
}

// SteeringConfig overrides the world-level wander tuning. Zero fields
// keep the built-in defaults.
type SteeringConfig struct {
	Strength        float64 `yaml:"strength"`
	Responsiveness  float64 `yaml:"responsiveness"`
	TurnRate        float64 `yaml:"turn_rate"`
	BoundaryRange   float64 `yaml:"boundary_range"`
	AvoidBuffer     float64 `yaml:"avoid_buffer"`
	StuckRadius     float64 `yaml:"stuck_radius"`
	TargetSmoothing float64 `yaml:"target_smoothing"`
	HorizontalBias  float64 `yaml:"horizontal_bias"`
}

type Vec2Config struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// AngleConfig bounds a segment direction relative to its parent. A nil
// AngleConfig on a node means unconstrained (±π).
type AngleConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type MoveConfig struct {
	// Mode is one of none, follow, circle, wave, wander.
	Mode      string     `yaml:"mode"`
	Speed     float64    `yaml:"speed"`
	Amplitude float64    `yaml:"amplitude"`
	Phase     float64    `yaml:"phase"`
	Center    Vec2Config `yaml:"center"`
	// Target is the node a follow-mode anchor tracks; nil means the
	// target position is written externally.
	Target *int `yaml:"target"`
}

type NodeConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	// Radius of zero selects the default (5).
	Radius float64 `yaml:"radius"`
	// Kind is one of normal, anchor, limb. Empty means normal.
	Kind string `yaml:"kind"`
	// CollisionDamping of zero selects the default (0.5); use a small
	// positive value for a near-elastic node.
	CollisionDamping float64      `yaml:"collision_damping"`
	Angle            *AngleConfig `yaml:"angle"`
	ConstAccel       Vec2Config   `yaml:"const_accel"`
	Move             MoveConfig   `yaml:"move"`
}

type ConstraintConfig struct {
	A int `yaml:"a"`
	B int `yaml:"b"`
	// Rest of zero adopts the layout distance between the endpoints.
	Rest float64 `yaml:"rest"`
}

type StepConfig struct {
	Threshold float64 `yaml:"threshold"`
	Height    float64 `yaml:"height"`
	Speed     float64 `yaml:"speed"`
}

type LimbConfig struct {
	Body   int    `yaml:"body"`
	Joints []int  `yaml:"joints"`
	Flip   []bool `yaml:"flip"`
	// Target pins the foot to a node; nil computes the plant point from
	// the body heading.
	Target          *int       `yaml:"target"`
	MaxReach        float64    `yaml:"max_reach"`
	DirectionOffset float64    `yaml:"direction_offset"`
	Iterations      int        `yaml:"iterations"`
	Tolerance       float64    `yaml:"tolerance"`
	Step            StepConfig `yaml:"step"`
}

// DefaultScene returns an empty scene with the standard playground and
// solver tuning filled in.
func DefaultScene() *Scene {
	return &Scene{
		Playground: PlaygroundConfig{
			Width:         800,
			Height:        600,
			Margin:        20,
			ImpactDamping: DefaultImpactDamping,
		},
		Physics: PhysicsConfig{
			Dt:               DefaultDt,
			Duration:         DefaultDuration,
			AirDamping:       DefaultAirDamping,
			SolverIterations: DefaultSolverIters,
			CollisionPasses:  DefaultPasses,
		},
	}
}

// Load reads a scene file, merging it over the defaults.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := DefaultScene()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

func Save(path string, s *Scene) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
