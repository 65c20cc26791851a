package sim

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/bubblenav/internal/bubble"
)

// Driver runs a world for a fixed number of ticks without a display,
// recording frames and feeding metrics and observers.
type Driver struct {
	world     *bubble.World
	metrics   []Metric
	observers []Observer
	pool      *BodyPool
}

func New(world *bubble.World) *Driver {
	size := 0
	if world != nil {
		size = world.Len()
	}
	return &Driver{
		world:     world,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		pool:      NewBodyPool(size),
	}
}

func (d *Driver) AddMetric(m Metric)     { d.metrics = append(d.metrics, m) }
func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }
func (d *Driver) World() *bubble.World   { return d.world }

func (d *Driver) Run(ctx context.Context, cfg Config) (*Result, error) {
	if d.world == nil {
		return nil, ErrNoWorld
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	resizes := append([]ResizeEvent(nil), cfg.Resizes...)
	sort.SliceStable(resizes, func(i, j int) bool { return resizes[i].Tick < resizes[j].Tick })

	for _, m := range d.metrics {
		m.Reset()
	}

	result := &Result{
		Frames:    make([]Frame, 0, cfg.Ticks/cfg.SampleEvery+1),
		Metrics:   make(map[string]float64),
		SettledAt: -1,
		Labels:    d.world.Labels(),
	}

	epoch := 0
	result.Frames = append(result.Frames, d.frame(0, epoch))

	next := 0
	for t := 1; t <= cfg.Ticks; t++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for next < len(resizes) && resizes[next].Tick <= t {
			d.world.Resize(resizes[next].Viewport())
			next++
			epoch++
			result.Resets++
			result.SettledAt = -1
			for _, m := range d.metrics {
				if em, ok := m.(EpochMetric); ok {
					em.NewEpoch()
				}
			}
		}

		rep := d.world.Tick()
		result.Collisions += rep.Collisions
		result.TicksTaken++

		bodies := d.world.AppendBodies(d.pool.Get())
		for _, m := range d.metrics {
			m.Observe(bodies, rep, t)
		}
		for _, obs := range d.observers {
			obs.OnTick(t, bodies, rep)
		}
		d.pool.Put(bodies)

		settledNow := false
		if result.SettledAt < 0 && d.world.AllStopped() {
			result.SettledAt = t
			settledNow = true
		}

		record := t%cfg.SampleEvery == 0 || settledNow || t == cfg.Ticks
		stop := cfg.StopWhenSettled && result.Settled() && next >= len(resizes)
		if record || stop {
			result.Frames = append(result.Frames, d.frame(t, epoch))
		}
		if stop {
			break
		}
	}

	for _, m := range d.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (d *Driver) frame(tick, epoch int) Frame {
	return Frame{
		Tick:     tick,
		Epoch:    epoch,
		Viewport: d.world.Viewport(),
		Bodies:   d.world.Bodies(),
	}
}

func validateConfig(cfg Config) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidTicks, cfg.Ticks)
	}
	if cfg.SampleEvery <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidSample, cfg.SampleEvery)
	}
	for _, r := range cfg.Resizes {
		if r.Tick < 1 || r.Tick > cfg.Ticks {
			return fmt.Errorf("%w: tick %d outside 1..%d", ErrInvalidResize, r.Tick, cfg.Ticks)
		}
		if r.Width <= 0 || r.Height <= 0 {
			return fmt.Errorf("%w: viewport %s at tick %d", ErrInvalidResize, r.Viewport(), r.Tick)
		}
	}
	return nil
}

// RunWithCallback drives the world until callback returns false or ctx ends.
// It is the headless counterpart of the display-refresh loop.
func (d *Driver) RunWithCallback(ctx context.Context, callback func(tick int, rep bubble.TickReport) bool) error {
	if d.world == nil {
		return ErrNoWorld
	}
	for t := 1; ; t++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rep := d.world.Tick()
		if !callback(t, rep) {
			return nil
		}
	}
}
