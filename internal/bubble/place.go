package bubble

import "math/rand"

// Place picks a center for a new body of the given radius that does not
// overlap any of existing. Candidates are drawn uniformly across the width
// and within the placement band at the bottom of the viewport. When the
// attempt budget runs out the body is parked at a fixed spot to the right of
// the viewport instead.
func (w *World) Place(existing []Body, radius float64) (float64, float64) {
	return place(w.rng, existing, radius, w.viewport, w.params.Band, w.params.Attempts)
}

func place(rng *rand.Rand, existing []Body, radius float64, vp Viewport, band float64, attempts int) (float64, float64) {
	tries := 0
	for tries < attempts {
		x := rng.Float64()*(vp.Width-2*radius) + radius
		y := vp.Height - radius - rng.Float64()*band
		if vacant(existing, x, y, radius) {
			return x, y
		}
		tries++
	}
	return radius + float64(tries)*2, vp.Height - radius
}

func vacant(existing []Body, x, y, radius float64) bool {
	probe := Body{X: x, Y: y}
	for _, b := range existing {
		if probe.Dist(b) < 2*radius {
			return false
		}
	}
	return true
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
