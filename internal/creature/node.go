package creature

import (
	"math"

	"github.com/san-kum/crittersim/internal/geom"
)

// NodeKind selects per-stage behavior for a node. Stages branch on the
// kind; there is no per-kind dispatch table.
type NodeKind uint8

const (
	// KindNormal nodes are fully simulated: integrated, constrained and
	// collision-resolved.
	KindNormal NodeKind = iota
	// KindAnchor nodes are externally driven by the steering layer and
	// act as infinite mass for constraints and collisions.
	KindAnchor
	// KindLimb nodes belong to IK chains and are positioned exclusively
	// by the limb solver.
	KindLimb
)

func (k NodeKind) String() string {
	switch k {
	case KindAnchor:
		return "anchor"
	case KindLimb:
		return "limb"
	default:
		return "normal"
	}
}

// MoveMode selects how the steering layer drives an anchor.
type MoveMode uint8

const (
	MoveNone MoveMode = iota
	MoveFollow
	MoveCircle
	MoveWave
	MoveWander
)

func (m MoveMode) String() string {
	switch m {
	case MoveFollow:
		return "follow"
	case MoveCircle:
		return "circle"
	case MoveWave:
		return "wave"
	case MoveWander:
		return "wander"
	default:
		return "none"
	}
}

// MoveSpec configures anchor movement. Speed is in units per second;
// Amplitude is the path radius for circle/wave and the scan/target reach
// for wander.
type MoveSpec struct {
	Mode       MoveMode
	Speed      float64
	Amplitude  float64
	Phase      float64
	Center     geom.Vec2
	TargetNode int
}

// GroupNone marks a node that belongs to no constraint component. Such
// nodes collide with everything, including each other.
const GroupNone = -1

type Node struct {
	Pos  geom.Vec2
	Prev geom.Vec2

	Radius float64
	Kind   NodeKind

	// ChainAngle is the absolute direction of the segment arriving at
	// this node, or the heading for chain roots and moving anchors.
	ChainAngle float64
	// AngleMin/AngleMax bound the segment direction relative to the
	// parent segment. The default ±π leaves the joint unconstrained.
	AngleMin float64
	AngleMax float64

	// ConstAccel applies every frame; FrameAccel is consumed and zeroed
	// by the integrator. Both are per-frame displacement contributions.
	ConstAccel geom.Vec2
	FrameAccel geom.Vec2

	// CollisionDamping scales how much of a pair push is mirrored into
	// Prev: 1 kills the velocity gain, 0 keeps the full impulse.
	CollisionDamping float64

	Group int

	Move MoveSpec

	// Steering runtime state.
	WanderDir float64
	TargetPos geom.Vec2
}

// NewNode returns a Normal node at rest at pos with default tuning.
func NewNode(pos geom.Vec2) Node {
	return Node{
		Pos:              pos,
		Prev:             pos,
		Radius:           5,
		ChainAngle:       math.Pi,
		AngleMin:         -math.Pi,
		AngleMax:         math.Pi,
		CollisionDamping: 0.5,
		Group:            GroupNone,
		Move:             MoveSpec{TargetNode: -1},
		TargetPos:        pos,
	}
}

// NewAnchor returns an Anchor node at pos with the given movement spec.
// A negative Move.TargetNode makes follow mode read the externally
// written TargetPos instead of another node.
func NewAnchor(pos geom.Vec2, move MoveSpec) Node {
	n := NewNode(pos)
	n.Kind = KindAnchor
	n.Move = move
	return n
}

// NewLimbNode returns a Limb-kind node at pos.
func NewLimbNode(pos geom.Vec2) Node {
	n := NewNode(pos)
	n.Kind = KindLimb
	return n
}

// Velocity is the implicit per-frame velocity carried by the position
// pair.
func (n *Node) Velocity() geom.Vec2 { return n.Pos.Sub(n.Prev) }

// MoveBy translates the node without changing its implicit velocity.
func (n *Node) MoveBy(d geom.Vec2) {
	n.Pos = n.Pos.Add(d)
	n.Prev = n.Prev.Add(d)
}

// Accelerate adds a one-frame acceleration contribution.
func (n *Node) Accelerate(a geom.Vec2) {
	n.FrameAccel = n.FrameAccel.Add(a)
}
