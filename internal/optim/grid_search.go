package optim

import (
	"context"
	"errors"
	"math"

	"github.com/san-kum/bubblenav/internal/sim"
)

var ErrNoCandidate = errors.New("no parameter combination produced the metric")

// Evaluate runs one headless simulation for a parameter combination.
type Evaluate func(ctx context.Context, params map[string]float64) (*sim.Result, error)

// GridSearch tries every combination of the given values and keeps the one
// minimising a metric. Negative metric values mean "never reached" (an
// unsettled settle_tick) and are skipped.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Candidate is one evaluated combination.
type Candidate struct {
	Params map[string]float64
	Value  float64
}

// Search returns the best combination and every scored candidate in
// visiting order. Evaluation errors abort the search.
func (g *GridSearch) Search(ctx context.Context, eval Evaluate, metricName string) (Candidate, []Candidate, error) {
	best := Candidate{Value: math.Inf(1)}
	var all []Candidate

	err := g.searchRecursive(ctx, 0, make(map[string]float64), eval, metricName, &best, &all)
	if err != nil {
		return Candidate{}, all, err
	}
	if best.Params == nil {
		return Candidate{}, all, ErrNoCandidate
	}
	return best, all, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	eval Evaluate,
	metricName string,
	best *Candidate,
	all *[]Candidate,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		result, err := eval(ctx, current)
		if err != nil {
			return err
		}

		val, ok := result.Metrics[metricName]
		if !ok || val < 0 {
			return nil
		}
		*all = append(*all, Candidate{Params: current, Value: val})
		if val < best.Value {
			*best = Candidate{Params: current, Value: val}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, eval, metricName, best, all); err != nil {
			return err
		}
	}
	return nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
