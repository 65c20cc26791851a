package sim

import "github.com/san-kum/bubblenav/internal/bubble"

type Metric interface {
	Name() string
	Observe(bodies []bubble.Body, rep bubble.TickReport, tick int)
	Value() float64
	Reset()
}

// EpochMetric is a Metric whose value describes only the current placement.
// The driver calls NewEpoch whenever a resize discards the bodies.
type EpochMetric interface {
	Metric
	NewEpoch()
}

// Observer sees every tick. The bodies slice is only valid during the call.
type Observer interface {
	OnTick(tick int, bodies []bubble.Body, rep bubble.TickReport)
}

// ResizeEvent replaces the viewport right before the given tick runs.
type ResizeEvent struct {
	Tick   int     `yaml:"tick" json:"tick"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

func (e ResizeEvent) Viewport() bubble.Viewport {
	return bubble.Viewport{Width: e.Width, Height: e.Height}
}

type Config struct {
	Ticks           int
	SampleEvery     int
	Resizes         []ResizeEvent
	StopWhenSettled bool
}

func DefaultConfig() Config {
	return Config{
		Ticks:       600,
		SampleEvery: 1,
	}
}

// Frame is a recorded copy of the bodies after a tick. Epoch counts the
// resizes applied so far; every epoch starts from a fresh placement.
type Frame struct {
	Tick     int
	Epoch    int
	Viewport bubble.Viewport
	Bodies   []bubble.Body
}

type Result struct {
	Frames     []Frame
	Metrics    map[string]float64
	TicksTaken int
	SettledAt  int
	Collisions int
	Resets     int
	Labels     []string
}

// Settled reports whether every body of the last epoch froze.
func (r *Result) Settled() bool { return r.SettledAt >= 0 }
