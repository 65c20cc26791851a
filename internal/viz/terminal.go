package viz

import (
	"math"
	"sort"

	"github.com/san-kum/bubblenav/internal/bubble"
)

type sprite struct {
	label string
	color string
	x, y  float64
}

// Terminal is the bubble.Renderer behind the live view. It keeps one sprite
// per handle in viewport pixels and rasterises them onto a Canvas, Scale
// pixels per braille dot.
type Terminal struct {
	Scale   float64
	next    bubble.Handle
	sprites map[bubble.Handle]*sprite
}

func NewTerminal(scale float64) *Terminal {
	if scale <= 0 {
		scale = DefaultScale
	}
	return &Terminal{
		Scale:   scale,
		sprites: make(map[bubble.Handle]*sprite),
	}
}

func (t *Terminal) Create(label, color string, x, y float64) bubble.Handle {
	t.next++
	t.sprites[t.next] = &sprite{label: label, color: color, x: x, y: y}
	return t.next
}

func (t *Terminal) Update(h bubble.Handle, x, y float64) {
	if s, ok := t.sprites[h]; ok {
		s.x, s.y = x, y
	}
}

func (t *Terminal) Clear() {
	t.sprites = make(map[bubble.Handle]*sprite)
}

func (t *Terminal) Len() int { return len(t.sprites) }

// Position returns where the sprite for h was last moved to.
func (t *Terminal) Position(h bubble.Handle) (x, y float64, ok bool) {
	s, ok := t.sprites[h]
	if !ok {
		return 0, 0, false
	}
	return s.x, s.y, true
}

// ToDots maps viewport pixels to canvas sub-pixels.
func (t *Terminal) ToDots(x, y float64) (int, int) {
	return int(math.Round(x / t.Scale)), int(math.Round(y / t.Scale))
}

// CellToPixel maps a canvas cell to the viewport pixel at its center.
func (t *Terminal) CellToPixel(col, row int) (float64, float64) {
	return (float64(col)*2 + 1) * t.Scale, (float64(row)*4 + 2) * t.Scale
}

// ViewportFor returns the viewport that exactly covers a cols x rows canvas.
func (t *Terminal) ViewportFor(cols, rows int) bubble.Viewport {
	return bubble.Viewport{
		Width:  float64(cols*2) * t.Scale,
		Height: float64(rows*4) * t.Scale,
	}
}

// Draw outlines every sprite with radius r pixels and centers its label.
func (t *Terminal) Draw(c *Canvas, r float64) {
	handles := make([]bubble.Handle, 0, len(t.sprites))
	for h := range t.sprites {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	rd := int(math.Round(r / t.Scale))
	for _, h := range handles {
		s := t.sprites[h]
		cx, cy := t.ToDots(s.x, s.y)
		c.DrawCircle(cx, cy, rd)
	}
	// Labels go on last so no outline cuts through them.
	for _, h := range handles {
		s := t.sprites[h]
		cx, cy := t.ToDots(s.x, s.y)
		label := []rune(s.label)
		c.Text(cx/2-len(label)/2, cy/4, s.label)
	}
}
