package metrics

import (
	"github.com/san-kum/bubblenav/internal/bubble"
	"github.com/san-kum/bubblenav/internal/sim"
)

// Standard is the metric set every headless run records.
func Standard(w *bubble.World) []sim.Metric {
	return []sim.Metric{
		NewFrozen(),
		NewSettle(),
		NewCollisions(),
		NewMeanSpeed(),
		NewEnergy(),
		NewContainment(w),
	}
}
