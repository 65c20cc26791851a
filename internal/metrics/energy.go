package metrics

import (
	"math"

	"github.com/san-kum/bubblenav/internal/bubble"
)

// Energy averages the kinetic energy per moving body (unit mass, pixels per
// tick). It falls toward zero as bubbles freeze.
type Energy struct {
	name    string
	samples int
	total   float64
	last    float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(bodies []bubble.Body, rep bubble.TickReport, tick int) {
	e.last = KineticEnergy(bodies)
	e.total += e.last
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

// Last returns the energy seen on the most recent tick.
func (e *Energy) Last() float64 { return e.last }

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
	e.last = 0
}

// KineticEnergy sums 0.5*|v|^2 over the moving bodies.
func KineticEnergy(bodies []bubble.Body) float64 {
	sum := 0.0
	for _, b := range bodies {
		if b.Stopped {
			continue
		}
		sum += 0.5 * (b.VX*b.VX + b.VY*b.VY)
	}
	return sum
}

// MeanSpeed tracks the average speed of moving bodies.
type MeanSpeed struct {
	name    string
	sum     float64
	samples int
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "mean_speed"}
}

func (m *MeanSpeed) Name() string { return m.name }

func (m *MeanSpeed) Observe(bodies []bubble.Body, rep bubble.TickReport, tick int) {
	for _, b := range bodies {
		if b.Stopped {
			continue
		}
		m.sum += math.Hypot(b.VX, b.VY)
		m.samples++
	}
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}
