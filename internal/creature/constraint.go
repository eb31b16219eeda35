package creature

// DistanceConstraint keeps two nodes at a fixed rest separation. Indices
// point into the world's node arena.
type DistanceConstraint struct {
	A, B int
	Rest float64
}

// AngleLink is a derived parent→node relation along a chain. The node's
// own AngleMin/AngleMax bound the segment direction relative to the
// parent's ChainAngle. Links are emitted in root→tip order. Rest carries
// the distance edge's rest length as the fallback for degenerate
// segments.
type AngleLink struct {
	Node, Parent int
	Rest         float64
}
