// Package optim sweeps engine tuning parameters against a recorded
// metric.
package optim

import (
	"context"
	"math"

	"github.com/san-kum/crittersim/internal/sim"
)

// EngineBuilder constructs a fresh engine (metrics attached) for one
// parameter combination.
type EngineBuilder func(params map[string]float64) (*sim.Engine, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs every combination and returns the parameters minimizing
// the named metric. Combinations whose build or run fails are skipped;
// an exhausted search with no successful run returns +Inf.
func (g *GridSearch) Search(ctx context.Context, build EngineBuilder, metricName string) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	g.searchRecursive(ctx, 0, make(map[string]float64), build, metricName, &best, &bestParams)

	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build EngineBuilder,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) {
	if depth == len(g.paramNames) {
		eng, err := build(current)
		if err != nil {
			return
		}
		result, err := eng.Run(ctx)
		if err != nil {
			return
		}
		val, ok := result.Metrics[metricName]
		if !ok {
			return
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64)
		for k, v := range current {
			next[k] = v
		}
		next[paramName] = val

		g.searchRecursive(ctx, depth+1, next, build, metricName, best, bestParams)
	}
}

// Span builds an inclusive n-point range from lo to hi.
func Span(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	vals := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range vals {
		vals[i] = lo + step*float64(i)
	}
	return vals
}
