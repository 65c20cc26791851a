package bubble

import (
	"fmt"
	"math/rand"
)

// World is the complete simulation state: the active labels, the viewport,
// the bodies and the random source used to scatter them.
type World struct {
	params   Params
	all      []string
	current  string
	labels   []string
	viewport Viewport
	bodies   []Body
	renderer Renderer
	rng      *rand.Rand
	ticks    int
	resets   int
}

// NewWorld builds a world for labels minus current and places the first set
// of bodies. The renderer can be attached later with SetRenderer.
func NewWorld(labels []string, current string, vp Viewport, p Params, seed int64) (*World, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, ErrNoLabels
	}
	if vp.Width <= 0 || vp.Height <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyViewport, vp)
	}
	if vp.Width < 2*p.Radius || vp.Height < 2*p.Radius {
		return nil, fmt.Errorf("%w: %s for radius %.0f", ErrViewportTooSmall, vp, p.Radius)
	}

	w := &World{
		params:   p,
		all:      append([]string(nil), labels...),
		current:  current,
		labels:   ActiveLabels(labels, current),
		viewport: vp,
		rng:      rand.New(rand.NewSource(seed)),
	}
	w.Reset()
	return w, nil
}

// ActiveLabels drops the first occurrence of current from labels. An unknown
// current page leaves the list intact.
func ActiveLabels(labels []string, current string) []string {
	out := make([]string, 0, len(labels))
	skipped := false
	for _, l := range labels {
		if !skipped && l == current {
			skipped = true
			continue
		}
		out = append(out, l)
	}
	return out
}

// SetRenderer attaches r and rebuilds the visuals for the current bodies.
func (w *World) SetRenderer(r Renderer) {
	w.renderer = r
	if r == nil {
		return
	}
	r.Clear()
	for i := range w.bodies {
		b := &w.bodies[i]
		b.Handle = r.Create(b.Label, b.Color, b.X, b.Y)
	}
}

// Reset clears the renderer and the body list, then places one body per
// active label in order.
func (w *World) Reset() {
	if w.renderer != nil {
		w.renderer.Clear()
	}
	w.bodies = make([]Body, 0, len(w.labels))
	for i, label := range w.labels {
		x, y := w.Place(w.bodies, w.params.Radius)
		b := Body{
			Label: label,
			Color: w.params.Palette[i%len(w.params.Palette)],
			X:     x,
			Y:     y,
			VX:    uniform(w.rng, w.params.VXMin, w.params.VXMax),
			VY:    uniform(w.rng, w.params.VYMin, w.params.VYMax),
		}
		if w.renderer != nil {
			b.Handle = w.renderer.Create(b.Label, b.Color, b.X, b.Y)
		}
		w.bodies = append(w.bodies, b)
	}
	w.ticks = 0
	w.resets++
}

// Resize discards every body and places the set again inside vp.
func (w *World) Resize(vp Viewport) {
	w.viewport = vp
	w.Reset()
}

// Navigate makes page the current page, which changes the active labels and
// starts a fresh set of bodies.
func (w *World) Navigate(page string) {
	w.current = page
	w.labels = ActiveLabels(w.all, page)
	w.Reset()
}

// Tick advances every moving body by one step and mirrors the new positions
// to the renderer.
func (w *World) Tick() TickReport {
	rep := Step(w.bodies, w.viewport, w.params.Radius)
	w.ticks++
	if w.renderer != nil {
		for _, i := range rep.Moved {
			b := w.bodies[i]
			w.renderer.Update(b.Handle, b.X, b.Y)
		}
	}
	return rep
}

// HitTest returns the index of the body whose disc contains (x, y), or -1.
// Later bodies are drawn on top, so they win.
func (w *World) HitTest(x, y float64) int {
	probe := Body{X: x, Y: y}
	for i := len(w.bodies) - 1; i >= 0; i-- {
		if probe.Dist(w.bodies[i]) <= w.params.Radius {
			return i
		}
	}
	return -1
}

func (w *World) AllStopped() bool {
	for _, b := range w.bodies {
		if !b.Stopped {
			return false
		}
	}
	return true
}

// Bodies returns a copy of the current bodies.
func (w *World) Bodies() []Body {
	out := make([]Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// AppendBodies appends the current bodies to dst and returns the result.
func (w *World) AppendBodies(dst []Body) []Body {
	return append(dst, w.bodies...)
}

// SetBodies replaces the bodies without placing them. Renderer handles are
// rebuilt when a renderer is attached.
func (w *World) SetBodies(bodies []Body) {
	w.bodies = append([]Body(nil), bodies...)
	w.SetRenderer(w.renderer)
}

func (w *World) Len() int            { return len(w.bodies) }
func (w *World) Radius() float64     { return w.params.Radius }
func (w *World) Params() Params      { return w.params }
func (w *World) Viewport() Viewport  { return w.viewport }
func (w *World) Labels() []string    { return append([]string(nil), w.labels...) }
func (w *World) CurrentPage() string { return w.current }
func (w *World) Ticks() int          { return w.ticks }
func (w *World) Resets() int         { return w.resets }
func (w *World) Renderer() Renderer  { return w.renderer }
func (w *World) Body(i int) Body     { return w.bodies[i] }

// Frozen counts the bodies that reached the top.
func (w *World) Frozen() (n int) {
	for _, b := range w.bodies {
		if b.Stopped {
			n++
		}
	}
	return n
}
