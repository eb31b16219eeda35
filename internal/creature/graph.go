package creature

import "sort"

// Limb chains traced by AutoBuildLimbs are cut at this depth to survive
// malformed cyclic graphs.
const maxLimbDepth = 100

// RebuildTopology validates the arena, recomputes connected components,
// chain orders and angle links, and refreshes limb segment lengths from
// the constraint graph. Must run after structural edits and before the
// next tick; the engine calls it automatically when the world is dirty.
func (w *World) RebuildTopology() error {
	if err := w.validateStatic(); err != nil {
		return err
	}
	w.buildAdjacency()
	w.assignGroups()
	w.buildChains()
	w.collectAngleLinks()
	if err := w.refreshLimbs(); err != nil {
		return err
	}
	w.dirty = false
	return nil
}

func (w *World) buildAdjacency() {
	n := len(w.Nodes)
	if cap(w.adj) < n {
		w.adj = make([][]int, n)
	}
	w.adj = w.adj[:n]
	for i := range w.adj {
		w.adj[i] = w.adj[i][:0]
	}
	for _, c := range w.Constraints {
		w.adj[c.A] = append(w.adj[c.A], c.B)
		w.adj[c.B] = append(w.adj[c.B], c.A)
	}
	// Sorted neighbor order keeps traversal, group ids and chains
	// deterministic across rebuilds.
	for i := range w.adj {
		sort.Ints(w.adj[i])
	}
}

// assignGroups labels connected components over distance edges with ids
// in ascending discovery order. Nodes without edges keep GroupNone.
func (w *World) assignGroups() {
	w.groupCount = 0
	for i := range w.Nodes {
		w.Nodes[i].Group = GroupNone
	}
	var stack []int
	for i := range w.Nodes {
		if w.Nodes[i].Group != GroupNone || len(w.adj[i]) == 0 {
			continue
		}
		id := w.groupCount
		w.groupCount++
		w.Nodes[i].Group = id
		stack = append(stack[:0], i)
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, m := range w.adj[cur] {
				if w.Nodes[m].Group == GroupNone {
					w.Nodes[m].Group = id
					stack = append(stack, m)
				}
			}
		}
	}
}

// buildChains picks a root per component (lowest-index Anchor if the
// component has one, else its lowest index) and runs a breadth-first
// walk, recording parents and the global root→tip visitation order.
func (w *World) buildChains() {
	n := len(w.Nodes)
	if cap(w.parent) < n {
		w.parent = make([]int, n)
	}
	w.parent = w.parent[:n]
	for i := range w.parent {
		w.parent[i] = -1
	}
	w.chainOrder = w.chainOrder[:0]

	roots := w.chainRoots()
	visited := make([]bool, n)
	var queue []int
	for _, root := range roots {
		if visited[root] {
			continue
		}
		visited[root] = true
		queue = append(queue[:0], root)
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			w.chainOrder = append(w.chainOrder, cur)
			for _, m := range w.adj[cur] {
				if !visited[m] {
					visited[m] = true
					w.parent[m] = cur
					queue = append(queue, m)
				}
			}
		}
	}
}

func (w *World) chainRoots() []int {
	first := make([]int, w.groupCount)
	anchor := make([]int, w.groupCount)
	for i := range first {
		first[i] = -1
		anchor[i] = -1
	}
	var isolated []int
	for i := range w.Nodes {
		g := w.Nodes[i].Group
		if g == GroupNone {
			isolated = append(isolated, i)
			continue
		}
		if first[g] < 0 {
			first[g] = i
		}
		if anchor[g] < 0 && w.Nodes[i].Kind == KindAnchor {
			anchor[g] = i
		}
	}
	roots := make([]int, 0, w.groupCount+len(isolated))
	for g := 0; g < w.groupCount; g++ {
		if anchor[g] >= 0 {
			roots = append(roots, anchor[g])
		} else if first[g] >= 0 {
			roots = append(roots, first[g])
		}
	}
	roots = append(roots, isolated...)
	return roots
}

// collectAngleLinks emits one link per chained non-Limb node in root→tip
// order. Anchors are never repositioned, so links never target them;
// limb joints are bounded inside the IK solver instead.
func (w *World) collectAngleLinks() {
	w.angleLinks = w.angleLinks[:0]
	for _, i := range w.chainOrder {
		p := w.parent[i]
		if p < 0 {
			continue
		}
		if w.Nodes[i].Kind != KindNormal || w.Nodes[p].Kind == KindLimb {
			continue
		}
		rest, ok := w.RestBetween(p, i)
		if !ok {
			rest = 1
		}
		w.angleLinks = append(w.angleLinks, AngleLink{Node: i, Parent: p, Rest: rest})
	}
}

// refreshLimbs re-reads segment rest lengths from the constraint graph
// (1.0 when a chain hop has no edge) and normalizes FlipBend to one
// entry per interior joint.
func (w *World) refreshLimbs() error {
	for li := range w.Limbs {
		l := &w.Limbs[li]
		if cap(l.Lengths) < len(l.Joints) {
			l.Lengths = make([]float64, len(l.Joints))
		}
		l.Lengths = l.Lengths[:len(l.Joints)]
		prev := l.Body
		for i, j := range l.Joints {
			rest, ok := w.RestBetween(prev, j)
			if !ok {
				rest = 1
			}
			l.Lengths[i] = rest
			prev = j
		}

		interior := 0
		if len(l.Joints) > 1 {
			interior = len(l.Joints) - 1
		}
		for len(l.FlipBend) < interior {
			l.FlipBend = append(l.FlipBend, false)
		}
		l.FlipBend = l.FlipBend[:interior]
	}
	return w.validateLimbs()
}

// AutoBuildLimbs traces maximal Limb-kind chains hanging off non-Limb
// nodes and registers a default-tuned limb for each chain not already
// claimed. Returns how many limbs were added.
func (w *World) AutoBuildLimbs() int {
	w.buildAdjacency()

	used := make([]bool, len(w.Nodes))
	for _, l := range w.Limbs {
		for _, j := range l.Joints {
			if j >= 0 && j < len(used) {
				used[j] = true
			}
		}
	}

	added := 0
	for body := range w.Nodes {
		if w.Nodes[body].Kind == KindLimb {
			continue
		}
		for _, nb := range w.adj[body] {
			if w.Nodes[nb].Kind != KindLimb || used[nb] {
				continue
			}
			joints := w.traceLimbChain(body, nb, used)
			if len(joints) == 0 {
				continue
			}
			w.Limbs = append(w.Limbs, NewLimb(body, joints...))
			added++
		}
	}
	if added > 0 {
		w.dirty = true
	}
	return added
}

func (w *World) traceLimbChain(body, head int, used []bool) []int {
	var joints []int
	prev, cur := body, head
	for depth := 0; depth < maxLimbDepth; depth++ {
		joints = append(joints, cur)
		used[cur] = true
		next := -1
		for _, m := range w.adj[cur] {
			if m != prev && w.Nodes[m].Kind == KindLimb && !used[m] {
				next = m
				break
			}
		}
		if next < 0 {
			break
		}
		prev, cur = cur, next
	}
	return joints
}
