package metrics

import "github.com/san-kum/bubblenav/internal/bubble"

// Collisions averages the pair corrections applied per tick. Every touching
// pair usually counts twice because both sides correct it.
type Collisions struct {
	name    string
	sum     int
	samples int
}

func NewCollisions() *Collisions {
	return &Collisions{
		name: "collisions",
	}
}

func (c *Collisions) Name() string {
	return c.name
}

func (c *Collisions) Observe(bodies []bubble.Body, rep bubble.TickReport, tick int) {
	c.sum += rep.Collisions
	c.samples++
}

func (c *Collisions) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.sum) / float64(c.samples)
}

// Total returns the raw number of corrections observed.
func (c *Collisions) Total() int { return c.sum }

func (c *Collisions) Reset() {
	c.sum = 0
	c.samples = 0
}
