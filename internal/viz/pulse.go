package viz

import "github.com/charmbracelet/harmonica"

// pulse is a ring that springs out from a clicked bubble and settles back.
type pulse struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	x, y   float64
	active bool
}

func newPulse(fps int) pulse {
	if fps <= 0 {
		fps = 60
	}
	return pulse{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 0.4)}
}

// kick starts a pulse at (x, y) in viewport pixels.
func (p *pulse) kick(x, y float64) {
	p.x, p.y = x, y
	p.pos, p.vel = 0, 4
	p.active = true
}

// step advances the spring one frame and returns the ring growth, 0..~1.
func (p *pulse) step() float64 {
	if !p.active {
		return 0
	}
	p.pos, p.vel = p.spring.Update(p.pos, p.vel, 0)
	if abs(p.pos) < 0.01 && abs(p.vel) < 0.01 {
		p.active = false
		p.pos, p.vel = 0, 0
	}
	return p.pos
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
