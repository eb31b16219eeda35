package optim

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/crittersim/internal/creature"
	"github.com/san-kum/crittersim/internal/geom"
	"github.com/san-kum/crittersim/internal/sim"
)

// paraboloid is a stand-in metric whose value is fixed at observation
// time, so Search sees a known landscape.
type paraboloid struct{ val float64 }

func (p *paraboloid) Name() string                                { return "score" }
func (p *paraboloid) Observe(w *creature.World, s sim.FrameStats) {}
func (p *paraboloid) Value() float64                              { return p.val }
func (p *paraboloid) Reset()                                      {}

func buildWith(score float64) (*sim.Engine, error) {
	w := creature.NewWorld(creature.NewPlayground(100, 100, 5))
	w.AddNode(creature.NewNode(geom.V(0, 0)))
	if err := w.RebuildTopology(); err != nil {
		return nil, err
	}
	cfg := sim.DefaultConfig()
	cfg.Duration = 0.1
	eng := sim.New(w, cfg)
	eng.AddMetric(&paraboloid{val: score})
	return eng, nil
}

func TestSearchFindsMinimum(t *testing.T) {
	gs := NewGridSearch(
		[]string{"a", "b"},
		[][]float64{{1, 2, 3}, {10, 20}},
	)

	build := func(params map[string]float64) (*sim.Engine, error) {
		// Minimum at a=2, b=20.
		score := math.Pow(params["a"]-2, 2) + math.Pow(params["b"]-20, 2)/100
		return buildWith(score)
	}

	params, best, err := gs.Search(context.Background(), build, "score")
	if err != nil {
		t.Fatal(err)
	}
	if params["a"] != 2 || params["b"] != 20 {
		t.Errorf("expected minimum at a=2 b=20, got %v", params)
	}
	if best != 0 {
		t.Errorf("expected score 0 at minimum, got %f", best)
	}
}

func TestSearchSkipsFailedBuilds(t *testing.T) {
	gs := NewGridSearch([]string{"a"}, [][]float64{{1, 2}})

	build := func(params map[string]float64) (*sim.Engine, error) {
		if params["a"] == 1 {
			return nil, context.Canceled
		}
		return buildWith(5)
	}

	params, best, err := gs.Search(context.Background(), build, "score")
	if err != nil {
		t.Fatal(err)
	}
	if params["a"] != 2 || best != 5 {
		t.Errorf("expected the surviving combination, got %v (%f)", params, best)
	}
}

func TestSearchUnknownMetric(t *testing.T) {
	gs := NewGridSearch([]string{"a"}, [][]float64{{1}})
	build := func(map[string]float64) (*sim.Engine, error) { return buildWith(1) }

	params, best, err := gs.Search(context.Background(), build, "missing")
	if err != nil {
		t.Fatal(err)
	}
	if params != nil || !math.IsInf(best, 1) {
		t.Error("expected no winner for an unrecorded metric")
	}
}

func TestSpan(t *testing.T) {
	got := Span(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	if len(got) != len(want) {
		t.Fatalf("expected 5 values, got %d", len(got))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("value %d: expected %f, got %f", i, want[i], got[i])
		}
	}
	if vals := Span(3, 9, 1); len(vals) != 1 || vals[0] != 3 {
		t.Error("single-point span should collapse to lo")
	}
}
