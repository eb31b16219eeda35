// Package collide keeps nodes inside the playground and pushes
// overlapping circles apart, using a throwaway spatial hash for the
// broad phase.
package collide

import (
	"math"
	"sort"

	"github.com/san-kum/crittersim/internal/creature"
)

// DefaultCellSize is used when the caller configures no cell size and
// the world has no nodes to derive one from.
const DefaultCellSize = 48

type gridEntry struct {
	key  uint64
	node int
}

// Grid is the broad-phase spatial hash. It is rebuilt from scratch every
// collision pass and never persists across frames; entry and pair
// buffers are reused between rebuilds.
type Grid struct {
	cellSize float64
	entries  []gridEntry
	pairs    [][2]int
}

func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Grid{cellSize: cellSize}
}

// AutoCellSize picks a cell size of four times the largest node radius,
// floored at 16.
func AutoCellSize(nodes []creature.Node) float64 {
	maxR := 0.0
	for i := range nodes {
		maxR = math.Max(maxR, nodes[i].Radius)
	}
	return math.Max(16, 4*maxR)
}

func cellKey(cx, cy int32) uint64 {
	return uint64(uint32(cx))<<32 | uint64(uint32(cy))
}

// Rebuild registers every non-Limb node into each cell its bounding box
// overlaps, then recomputes the deduplicated candidate pair set from
// same-cell runs.
func (g *Grid) Rebuild(nodes []creature.Node) {
	g.entries = g.entries[:0]
	inv := 1 / g.cellSize
	for i := range nodes {
		n := &nodes[i]
		if n.Kind == creature.KindLimb {
			continue
		}
		minX := int32(math.Floor((n.Pos.X - n.Radius) * inv))
		maxX := int32(math.Floor((n.Pos.X + n.Radius) * inv))
		minY := int32(math.Floor((n.Pos.Y - n.Radius) * inv))
		maxY := int32(math.Floor((n.Pos.Y + n.Radius) * inv))
		for cx := minX; cx <= maxX; cx++ {
			for cy := minY; cy <= maxY; cy++ {
				g.entries = append(g.entries, gridEntry{key: cellKey(cx, cy), node: i})
			}
		}
	}

	sort.Slice(g.entries, func(i, j int) bool {
		if g.entries[i].key != g.entries[j].key {
			return g.entries[i].key < g.entries[j].key
		}
		return g.entries[i].node < g.entries[j].node
	})

	g.collectPairs()
}

// Pairs lists candidate (low, high) index pairs in sorted order. Valid
// until the next Rebuild.
func (g *Grid) Pairs() [][2]int { return g.pairs }

func (g *Grid) collectPairs() {
	g.pairs = g.pairs[:0]
	es := g.entries
	for start := 0; start < len(es); {
		end := start + 1
		for end < len(es) && es[end].key == es[start].key {
			end++
		}
		for i := start; i < end; i++ {
			for j := i + 1; j < end; j++ {
				a, b := es[i].node, es[j].node
				if a > b {
					a, b = b, a
				}
				g.pairs = append(g.pairs, [2]int{a, b})
			}
		}
		start = end
	}

	// Nodes spanning several cells meet more than once; sort and compact
	// so every pair is tested exactly once.
	sort.Slice(g.pairs, func(i, j int) bool {
		if g.pairs[i][0] != g.pairs[j][0] {
			return g.pairs[i][0] < g.pairs[j][0]
		}
		return g.pairs[i][1] < g.pairs[j][1]
	})
	n := 0
	for i := range g.pairs {
		if n > 0 && g.pairs[i] == g.pairs[n-1] {
			continue
		}
		g.pairs[n] = g.pairs[i]
		n++
	}
	g.pairs = g.pairs[:n]
}
