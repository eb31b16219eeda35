package sim

import (
	"context"
	"sync"

	"github.com/san-kum/crittersim/internal/creature"
)

// WorldFactory builds a fresh world for one ensemble member. Runs never
// share a world, so the factory must not hand out aliased state.
type WorldFactory func(seed int64) (*creature.World, error)

// MetricFactory builds a fresh metric set per run; accumulators are
// never shared across goroutines.
type MetricFactory func() []Metric

// Ensemble runs the same configuration across consecutive seeds in
// parallel.
type Ensemble struct {
	factory   WorldFactory
	metrics   MetricFactory
	runs      int
	seedStart int64
}

func NewEnsemble(factory WorldFactory, runs int, seedStart int64) *Ensemble {
	return &Ensemble{factory: factory, runs: runs, seedStart: seedStart}
}

// UseMetrics installs a per-run metric constructor.
func (e *Ensemble) UseMetrics(f MetricFactory) { e.metrics = f }

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.runs)
	errs := make([]error, e.runs)

	var wg sync.WaitGroup
	for i := 0; i < e.runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			w, err := e.factory(cfgCopy.Seed)
			if err != nil {
				errs[idx] = err
				return
			}
			eng := New(w, cfgCopy)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					eng.AddMetric(m)
				}
			}
			results[idx], errs[idx] = eng.Run(ctx)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
