package export

import (
	"fmt"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/san-kum/bubblenav/internal/bubble"
	"github.com/san-kum/bubblenav/internal/nav"
	"github.com/san-kum/bubblenav/internal/sim"
	"github.com/san-kum/bubblenav/internal/viz"
)

type svgBubble struct {
	label, color string
	x, y         float64
}

// Scene is a bubble.Renderer that keeps one linked circle per bubble and
// serialises them as a standalone SVG page.
type Scene struct {
	Width, Height float64
	Radius        float64
	Background    string

	pages *nav.Pages
	next  bubble.Handle
	items map[bubble.Handle]*svgBubble
}

func NewScene(vp bubble.Viewport, radius float64) *Scene {
	return &Scene{
		Width:      vp.Width,
		Height:     vp.Height,
		Radius:     radius,
		Background: "#f4f1ea",
		pages:      nav.NewPages(".", nil),
		items:      make(map[bubble.Handle]*svgBubble),
	}
}

func (s *Scene) Create(label, color string, x, y float64) bubble.Handle {
	s.next++
	s.items[s.next] = &svgBubble{label: label, color: color, x: x, y: y}
	return s.next
}

func (s *Scene) Update(h bubble.Handle, x, y float64) {
	if it, ok := s.items[h]; ok {
		it.x, it.y = x, y
	}
}

func (s *Scene) Clear() {
	s.items = make(map[bubble.Handle]*svgBubble)
}

func (s *Scene) Len() int { return len(s.items) }

// SetBase changes the directory the bubble links point into.
func (s *Scene) SetBase(base string) { s.pages = nav.NewPages(base, nil) }

// Resize follows the world viewport; the next SVG uses the new size.
func (s *Scene) Resize(vp bubble.Viewport) {
	s.Width, s.Height = vp.Width, vp.Height
}

func (s *Scene) String() string {
	var sb strings.Builder
	s.write(&sb)
	return sb.String()
}

func (s *Scene) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func (s *Scene) write(sb *strings.Builder) {
	r := s.Radius
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<defs>
<radialGradient id="glass" cx="35%%" cy="35%%" r="75%%">
<stop offset="40%%" stop-color="#ffffff" stop-opacity="0.55"/>
<stop offset="80%%" stop-color="#ffffff" stop-opacity="0.18"/>
<stop offset="100%%" stop-color="#ffffff" stop-opacity="0.08"/>
</radialGradient>
<filter id="glow" x="-50%%" y="-50%%" width="200%%" height="200%%">
<feGaussianBlur stdDeviation="12"/>
</filter>
</defs>
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, s.Background))

	// Handles are issued in creation order, which is also the stacking order.
	handles := make([]bubble.Handle, 0, len(s.items))
	for h := range s.items {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	for _, h := range handles {
		it := s.items[h]
		label := html.EscapeString(it.label)
		sb.WriteString(fmt.Sprintf(`<a href="%s" opacity="0.85">
<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" filter="url(#glow)"/>
<circle cx="%.1f" cy="%.1f" r="%.1f" fill="url(#glass)" stroke="rgba(255,255,255,0.35)" stroke-width="1.2"/>
<text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-weight="bold" font-size="19" fill="hsla(0,100%%,1%%,0.95)">%s</text>
</a>
`, html.EscapeString(s.pages.Href(it.label)),
			it.x, it.y, r, it.color,
			it.x, it.y, r,
			it.x, it.y, label))
	}

	sb.WriteString("</svg>")
}

// FrameToSVG renders a recorded frame. Bodies without a color, as loaded
// from disk, take the default palette by index.
func FrameToSVG(f sim.Frame, radius float64) string {
	s := NewScene(f.Viewport, radius)
	for i, b := range f.Bodies {
		color := b.Color
		if color == "" {
			color = bubble.DefaultPalette[i%len(bubble.DefaultPalette)]
		}
		s.Create(b.Label, color, b.X, b.Y)
	}
	return s.String()
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#e0e0e0">
`, width, height, width, height))

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if !canvas.Get(col*2+dx, row*4+dy) {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
