package metrics

import "github.com/san-kum/bubblenav/internal/bubble"

// Containment is the fraction of ticks on which every body sat inside the
// viewport. Collisions resolved after the wall check can push a body past a
// side wall for a tick, so this is not always 1.
type Containment struct {
	name       string
	world      *bubble.World
	violations int
	samples    int
}

func NewContainment(w *bubble.World) *Containment {
	return &Containment{
		name:  "containment",
		world: w,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(bodies []bubble.Body, rep bubble.TickReport, tick int) {
	c.samples++
	vp, r := c.world.Viewport(), c.world.Radius()
	for _, b := range bodies {
		if b.X < r || b.X > vp.Width-r || b.Y < r || b.Y > vp.Height-r {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}

// Settle records the first tick on which every body of the current epoch
// was frozen, or -1. A resize starts a new epoch and clears it.
type Settle struct {
	name string
	tick int
}

func NewSettle() *Settle {
	return &Settle{name: "settle_tick", tick: -1}
}

func (s *Settle) Name() string { return s.name }

func (s *Settle) Observe(bodies []bubble.Body, rep bubble.TickReport, tick int) {
	if s.tick >= 0 || len(bodies) == 0 {
		return
	}
	for _, b := range bodies {
		if !b.Stopped {
			return
		}
	}
	s.tick = tick
}

func (s *Settle) Value() float64 { return float64(s.tick) }
func (s *Settle) Reset()         { s.tick = -1 }
func (s *Settle) NewEpoch()      { s.tick = -1 }

// Frozen is the fraction of bodies frozen on the last observed tick.
type Frozen struct {
	name     string
	fraction float64
}

func NewFrozen() *Frozen {
	return &Frozen{name: "frozen"}
}

func (f *Frozen) Name() string { return f.name }

func (f *Frozen) Observe(bodies []bubble.Body, rep bubble.TickReport, tick int) {
	f.fraction = FrozenFraction(bodies)
}

func (f *Frozen) Value() float64 { return f.fraction }
func (f *Frozen) Reset()         { f.fraction = 0 }

func FrozenFraction(bodies []bubble.Body) float64 {
	if len(bodies) == 0 {
		return 0
	}
	n := 0
	for _, b := range bodies {
		if b.Stopped {
			n++
		}
	}
	return float64(n) / float64(len(bodies))
}
