package bubble

import (
	"fmt"
	"math"
)

const (
	DefaultRadius   = 48.0
	DefaultBand     = 40.0
	DefaultAttempts = 1000
)

// DefaultPalette holds the glass tints, one entry per slot.
var DefaultPalette = []string{
	"rgba(0, 0, 0, 0.71)",
	"rgba(0, 0, 0, 0.71)",
	"rgba(0, 0, 0, 0.71)",
	"rgba(0, 0, 0, 0.71)",
	"rgba(0, 0, 0, 0.71)",
	"rgba(0, 0, 0, 0.71)",
}

// DefaultLabels are the sibling pages offered as bubbles.
var DefaultLabels = []string{"contact", "info", "puzzles", "projects", "music", "opponent", "resume"}

// Handle identifies a visual created by a Renderer.
type Handle int

// Renderer mirrors body positions onto some visual surface.
type Renderer interface {
	Create(label, color string, x, y float64) Handle
	Update(h Handle, x, y float64)
	Clear()
}

type Viewport struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

func (v Viewport) String() string {
	return fmt.Sprintf("%.0fx%.0f", v.Width, v.Height)
}

// Body is one bubble. X and Y locate the center in viewport pixels, VX and VY
// are the displacement applied per tick.
type Body struct {
	Label   string
	Color   string
	X, Y    float64
	VX, VY  float64
	Stopped bool
	Handle  Handle
}

// Dist returns the distance between the centers of b and o.
func (b Body) Dist(o Body) float64 {
	return math.Hypot(o.X-b.X, o.Y-b.Y)
}

// Params holds the tunables of a World. The zero value is not usable; start
// from DefaultParams.
type Params struct {
	Radius   float64
	Band     float64
	Attempts int
	VXMin    float64
	VXMax    float64
	VYMin    float64
	VYMax    float64
	Palette  []string
}

func DefaultParams() Params {
	return Params{
		Radius:   DefaultRadius,
		Band:     DefaultBand,
		Attempts: DefaultAttempts,
		VXMin:    -1,
		VXMax:    1,
		VYMin:    -4,
		VYMax:    -2,
		Palette:  DefaultPalette,
	}
}

func (p Params) Validate() error {
	if p.Radius <= 0 || math.IsNaN(p.Radius) || math.IsInf(p.Radius, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidRadius, p.Radius)
	}
	if p.Band < 0 {
		return fmt.Errorf("%w: band %v", ErrInvalidParams, p.Band)
	}
	if p.Attempts < 0 {
		return fmt.Errorf("%w: attempts %d", ErrInvalidParams, p.Attempts)
	}
	if p.VXMin > p.VXMax || p.VYMin > p.VYMax {
		return fmt.Errorf("%w: velocity range inverted", ErrInvalidParams)
	}
	if len(p.Palette) == 0 {
		return fmt.Errorf("%w: empty palette", ErrInvalidParams)
	}
	return nil
}

// TickReport describes what one call to Step did.
type TickReport struct {
	Moved      []int
	Frozen     []int
	Collisions int
}
