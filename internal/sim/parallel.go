package sim

import (
	"context"
	"math"
	"runtime"

	"github.com/san-kum/bubblenav/internal/bubble"
	"golang.org/x/sync/errgroup"
)

// WorldFactory builds an independent world for one ensemble member.
type WorldFactory func(seed int64) (*bubble.World, error)

// MetricFactory returns fresh metric instances; metrics keep state and are
// never shared between runs.
type MetricFactory func() []Metric

// Ensemble runs the same configuration over consecutive seeds in parallel.
type Ensemble struct {
	newWorld   WorldFactory
	newMetrics MetricFactory
	numRuns    int
	seedStart  int64
	limit      int
}

func NewEnsemble(newWorld WorldFactory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{
		newWorld:  newWorld,
		numRuns:   numRuns,
		seedStart: seedStart,
		limit:     runtime.GOMAXPROCS(0),
	}
}

func (e *Ensemble) WithMetrics(f MetricFactory) *Ensemble {
	e.newMetrics = f
	return e
}

// WithLimit caps the number of worlds simulated at once.
func (e *Ensemble) WithLimit(n int) *Ensemble {
	if n > 0 {
		e.limit = n
	}
	return e
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)

	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			w, err := e.newWorld(e.seedStart + int64(idx))
			if err != nil {
				return err
			}
			d := New(w)
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					d.AddMetric(m)
				}
			}
			res, err := d.Run(ctx, cfg)
			if err != nil {
				return err
			}
			results[idx] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary condenses an ensemble into settle statistics.
type Summary struct {
	Runs           int
	Settled        int
	MeanSettle     float64
	MinSettle      int
	MaxSettle      int
	MeanCollisions float64
	Metrics        map[string]float64
}

func Summarize(results []*Result) Summary {
	s := Summary{
		Runs:      len(results),
		MinSettle: -1,
		MaxSettle: -1,
		Metrics:   make(map[string]float64),
	}
	if len(results) == 0 {
		return s
	}

	settleSum, collisions := 0, 0
	for _, r := range results {
		collisions += r.Collisions
		for k, v := range r.Metrics {
			s.Metrics[k] += v / float64(len(results))
		}
		if !r.Settled() {
			continue
		}
		s.Settled++
		settleSum += r.SettledAt
		if s.MinSettle < 0 || r.SettledAt < s.MinSettle {
			s.MinSettle = r.SettledAt
		}
		s.MaxSettle = int(math.Max(float64(s.MaxSettle), float64(r.SettledAt)))
	}
	if s.Settled > 0 {
		s.MeanSettle = float64(settleSum) / float64(s.Settled)
	}
	s.MeanCollisions = float64(collisions) / float64(len(results))
	return s
}
