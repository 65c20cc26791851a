package sim

import "errors"

var (
	// ErrInvalidTicks indicates a run length below one tick.
	ErrInvalidTicks = errors.New("sim: ticks must be positive")

	// ErrInvalidSample indicates a non-positive sampling interval.
	ErrInvalidSample = errors.New("sim: sample interval must be positive")

	// ErrInvalidResize indicates a resize event outside the run or without area.
	ErrInvalidResize = errors.New("sim: invalid resize event")

	// ErrNoWorld indicates a driver built without a world.
	ErrNoWorld = errors.New("sim: driver has no world")
)
