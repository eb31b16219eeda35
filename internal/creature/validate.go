package creature

import "fmt"

// Validate re-runs every construction-time check. RebuildTopology calls
// the same checks; this is for callers that want to probe a world
// without rebuilding it.
func (w *World) Validate() error {
	if err := w.validateStatic(); err != nil {
		return err
	}
	return w.validateLimbs()
}

func (w *World) validateStatic() error {
	b := w.Playground.Bounds
	if b.Min.X >= b.Max.X || b.Min.Y >= b.Max.Y {
		return fmt.Errorf("%w: min (%g, %g), max (%g, %g)", ErrBounds,
			b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
	}

	for i := range w.Nodes {
		n := &w.Nodes[i]
		if n.Radius <= 0 {
			return fmt.Errorf("%w: node %d", ErrRadius, i)
		}
		if n.AngleMin > n.AngleMax {
			return fmt.Errorf("%w: node %d", ErrAngleRange, i)
		}
		if n.CollisionDamping < 0 || n.CollisionDamping > 1 {
			return fmt.Errorf("%w: node %d collision damping %g", ErrParamRange, i, n.CollisionDamping)
		}
		if t := n.Move.TargetNode; t >= 0 {
			if t >= len(w.Nodes) {
				return fmt.Errorf("%w: node %d follows %d", ErrTargetRef, i, t)
			}
			if t == i {
				return fmt.Errorf("%w: node %d follows itself", ErrTargetRef, i)
			}
		}
		if n.Move.Speed < 0 {
			return fmt.Errorf("%w: node %d speed %g", ErrParamRange, i, n.Move.Speed)
		}
	}

	for ci, c := range w.Constraints {
		if c.A < 0 || c.A >= len(w.Nodes) || c.B < 0 || c.B >= len(w.Nodes) {
			return fmt.Errorf("%w: constraint %d", ErrNodeIndex, ci)
		}
		if c.A == c.B {
			return fmt.Errorf("%w: constraint %d on node %d", ErrSelfLink, ci, c.A)
		}
		if c.Rest <= 0 {
			return fmt.Errorf("%w: constraint %d", ErrRestLength, ci)
		}
	}

	if w.Playground.ImpactDamping < 0 || w.Playground.ImpactDamping > 1 {
		return fmt.Errorf("%w: impact damping %g", ErrParamRange, w.Playground.ImpactDamping)
	}
	return nil
}

func (w *World) validateLimbs() error {
	for li := range w.Limbs {
		l := &w.Limbs[li]
		if l.Body < 0 || l.Body >= len(w.Nodes) {
			return fmt.Errorf("%w: limb %d body", ErrNodeIndex, li)
		}
		if w.Nodes[l.Body].Kind == KindLimb {
			return fmt.Errorf("%w: limb %d rooted on a limb node", ErrLimbChain, li)
		}
		if len(l.Joints) == 0 {
			return fmt.Errorf("%w: limb %d has no joints", ErrLimbChain, li)
		}
		seen := make(map[int]bool, len(l.Joints))
		for _, j := range l.Joints {
			if j < 0 || j >= len(w.Nodes) {
				return fmt.Errorf("%w: limb %d joint", ErrNodeIndex, li)
			}
			if w.Nodes[j].Kind != KindLimb {
				return fmt.Errorf("%w: limb %d joint %d is %s", ErrLimbChain, li, j, w.Nodes[j].Kind)
			}
			if seen[j] {
				return fmt.Errorf("%w: limb %d repeats joint %d", ErrLimbChain, li, j)
			}
			seen[j] = true
		}
		if len(l.Lengths) != len(l.Joints) {
			return fmt.Errorf("%w: limb %d has %d lengths for %d joints",
				ErrLimbChain, li, len(l.Lengths), len(l.Joints))
		}
		for si, length := range l.Lengths {
			if length <= 0 {
				return fmt.Errorf("%w: limb %d segment %d", ErrRestLength, li, si)
			}
		}
		if l.TargetNode >= len(w.Nodes) {
			return fmt.Errorf("%w: limb %d target %d", ErrTargetRef, li, l.TargetNode)
		}
		if l.Iterations <= 0 {
			return fmt.Errorf("%w: limb %d", ErrIterations, li)
		}
		if l.Tolerance <= 0 {
			return fmt.Errorf("%w: limb %d tolerance %g", ErrParamRange, li, l.Tolerance)
		}
		if l.MaxReach <= 0 {
			return fmt.Errorf("%w: limb %d max reach %g", ErrParamRange, li, l.MaxReach)
		}
		if l.StepThreshold < 0 || l.StepHeight < 0 {
			return fmt.Errorf("%w: limb %d step shape", ErrParamRange, li)
		}
		if l.StepSpeed <= 0 {
			return fmt.Errorf("%w: limb %d step speed %g", ErrParamRange, li, l.StepSpeed)
		}
	}
	return nil
}
