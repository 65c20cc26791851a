package bubble

import "errors"

// Setup errors. The simulation itself never fails once a World exists.
var (
	// ErrInvalidRadius indicates a radius that is not a positive finite number.
	ErrInvalidRadius = errors.New("bubble: radius must be positive and finite")

	// ErrInvalidParams indicates an inconsistent placement or velocity setting.
	ErrInvalidParams = errors.New("bubble: invalid parameters")

	// ErrEmptyViewport indicates a viewport with no area.
	ErrEmptyViewport = errors.New("bubble: viewport has no area")

	// ErrViewportTooSmall indicates a viewport narrower or shorter than one bubble.
	ErrViewportTooSmall = errors.New("bubble: viewport smaller than a bubble")

	// ErrNoLabels indicates an empty label list.
	ErrNoLabels = errors.New("bubble: no labels configured")
)
