package creature

import "fmt"

// World owns the node arena, the distance constraints and the limbs of
// every creature sharing a playground. Simulation stages mutate node
// state in place; derived topology (groups, chains, angle links, limb
// segment lengths) is recomputed by RebuildTopology after any structural
// edit. Mutators only mark the world dirty, so edits batch cheaply.
type World struct {
	Nodes       []Node
	Constraints []DistanceConstraint
	Limbs       []Limb
	Playground  Playground

	adj        [][]int
	parent     []int
	chainOrder []int
	angleLinks []AngleLink
	groupCount int
	dirty      bool
}

func NewWorld(pg Playground) *World {
	return &World{Playground: pg, dirty: true}
}

// AddNode appends n to the arena and returns its index.
func (w *World) AddNode(n Node) int {
	w.Nodes = append(w.Nodes, n)
	w.dirty = true
	return len(w.Nodes) - 1
}

// Connect adds a distance constraint between a and b. A non-positive
// rest adopts the current separation of the two nodes.
func (w *World) Connect(a, b int, rest float64) (int, error) {
	if a < 0 || a >= len(w.Nodes) || b < 0 || b >= len(w.Nodes) {
		return 0, fmt.Errorf("%w: connect %d-%d", ErrNodeIndex, a, b)
	}
	if a == b {
		return 0, fmt.Errorf("%w: node %d", ErrSelfLink, a)
	}
	if rest <= 0 {
		rest = w.Nodes[a].Pos.Distance(w.Nodes[b].Pos)
	}
	if rest <= 0 {
		return 0, fmt.Errorf("%w: connect %d-%d", ErrRestLength, a, b)
	}
	w.Constraints = append(w.Constraints, DistanceConstraint{A: a, B: b, Rest: rest})
	w.dirty = true
	return len(w.Constraints) - 1, nil
}

// AddLimb appends a limb after checking its arena references. Segment
// lengths are filled in at the next topology rebuild.
func (w *World) AddLimb(l Limb) (int, error) {
	if l.Body < 0 || l.Body >= len(w.Nodes) {
		return 0, fmt.Errorf("%w: limb body %d", ErrNodeIndex, l.Body)
	}
	if len(l.Joints) == 0 {
		return 0, fmt.Errorf("%w: no joints", ErrLimbChain)
	}
	for _, j := range l.Joints {
		if j < 0 || j >= len(w.Nodes) {
			return 0, fmt.Errorf("%w: limb joint %d", ErrNodeIndex, j)
		}
	}
	w.Limbs = append(w.Limbs, l)
	w.dirty = true
	return len(w.Limbs) - 1, nil
}

// RemoveConstraint deletes constraint i, preserving order.
func (w *World) RemoveConstraint(i int) error {
	if i < 0 || i >= len(w.Constraints) {
		return fmt.Errorf("%w: constraint %d", ErrNodeIndex, i)
	}
	w.Constraints = append(w.Constraints[:i], w.Constraints[i+1:]...)
	w.dirty = true
	return nil
}

// RemoveNode deletes node i, drops every constraint and limb touching
// it, and shifts the remaining arena references down.
func (w *World) RemoveNode(i int) error {
	if i < 0 || i >= len(w.Nodes) {
		return fmt.Errorf("%w: remove %d", ErrNodeIndex, i)
	}
	w.Nodes = append(w.Nodes[:i], w.Nodes[i+1:]...)

	shift := func(idx int) int {
		if idx > i {
			return idx - 1
		}
		return idx
	}
	retarget := func(idx int) int {
		if idx == i {
			return -1
		}
		if idx > i {
			return idx - 1
		}
		return idx
	}

	kept := w.Constraints[:0]
	for _, c := range w.Constraints {
		if c.A == i || c.B == i {
			continue
		}
		c.A, c.B = shift(c.A), shift(c.B)
		kept = append(kept, c)
	}
	w.Constraints = kept

	keptLimbs := w.Limbs[:0]
	for _, l := range w.Limbs {
		if l.Body == i || containsIndex(l.Joints, i) {
			continue
		}
		l.Body = shift(l.Body)
		for k, j := range l.Joints {
			l.Joints[k] = shift(j)
		}
		if l.TargetNode >= 0 {
			l.TargetNode = retarget(l.TargetNode)
		}
		keptLimbs = append(keptLimbs, l)
	}
	w.Limbs = keptLimbs

	for k := range w.Nodes {
		if w.Nodes[k].Move.TargetNode >= 0 {
			w.Nodes[k].Move.TargetNode = retarget(w.Nodes[k].Move.TargetNode)
		}
	}

	w.dirty = true
	return nil
}

// SetPlayground swaps the usable area between frames.
func (w *World) SetPlayground(p Playground) { w.Playground = p }

// Dirty reports whether topology must be rebuilt before the next tick.
func (w *World) Dirty() bool { return w.dirty }

// Adjacency returns the sorted neighbor indices of node i over distance
// edges. Valid after RebuildTopology.
func (w *World) Adjacency(i int) []int { return w.adj[i] }

// Parent returns node i's chain parent, or -1 for roots and isolated
// nodes. Valid after RebuildTopology.
func (w *World) Parent(i int) int { return w.parent[i] }

// ChainOrder lists every node in root→tip visitation order across all
// components. Valid after RebuildTopology.
func (w *World) ChainOrder() []int { return w.chainOrder }

// AngleLinks lists the derived angle relations in root→tip order. Valid
// after RebuildTopology.
func (w *World) AngleLinks() []AngleLink { return w.angleLinks }

// GroupCount is the number of connected components with at least one
// edge. Valid after RebuildTopology.
func (w *World) GroupCount() int { return w.groupCount }

// RestBetween looks up the rest length of the distance edge joining a
// and b.
func (w *World) RestBetween(a, b int) (float64, bool) {
	for _, c := range w.Constraints {
		if (c.A == a && c.B == b) || (c.A == b && c.B == a) {
			return c.Rest, true
		}
	}
	return 0, false
}

func containsIndex(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
