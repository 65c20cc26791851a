package bubble

import "math"

// Step advances every moving body in bodies by one tick, in index order:
// integrate, reflect off the side walls, separate from every other body,
// reflect off the bottom wall, and freeze at the top wall.
//
// Each overlapping pair is visited from both sides, so it is pushed apart
// twice per tick, and a collision reverses the whole velocity of both
// bodies. A stopped body is still an obstacle but is never moved.
//
// Step has no side effects beyond bodies, which makes it usable without a
// renderer.
func Step(bodies []Body, vp Viewport, radius float64) TickReport {
	var rep TickReport
	minDist := 2 * radius

	for i := range bodies {
		b := &bodies[i]
		if b.Stopped {
			continue
		}

		b.X += b.VX
		b.Y += b.VY

		if b.X-radius < 0 {
			b.X = radius
			b.VX *= -1
		}
		if b.X+radius > vp.Width {
			b.X = vp.Width - radius
			b.VX *= -1
		}

		for j := range bodies {
			if i == j {
				continue
			}
			o := &bodies[j]
			dx, dy := o.X-b.X, o.Y-b.Y
			dist := math.Hypot(dx, dy)
			if dist >= minDist {
				continue
			}
			overlap := minDist - dist
			angle := math.Atan2(dy, dx)
			px := math.Cos(angle) * overlap / 2
			py := math.Sin(angle) * overlap / 2

			b.X -= px
			b.Y -= py
			b.VX *= -1
			b.VY *= -1
			if !o.Stopped {
				o.X += px
				o.Y += py
				o.VX *= -1
				o.VY *= -1
			}
			rep.Collisions++
		}

		if b.Y+radius > vp.Height {
			b.Y = vp.Height - radius
			b.VY *= -1
		}

		if b.Y-radius <= 0 {
			b.Y = radius
			b.VX = 0
			b.VY = 0
			b.Stopped = true
			rep.Frozen = append(rep.Frozen, i)
		}

		rep.Moved = append(rep.Moved, i)
	}

	return rep
}
