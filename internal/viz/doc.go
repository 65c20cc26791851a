// Package viz is the terminal front end for a bubble world.
//
// The live view is a Bubble Tea program:
//
//   - [Model]: ticks the world at a fixed frame rate and draws it
//   - [Terminal]: the bubble.Renderer that keeps sprites for the canvas
//   - [Canvas]: Braille-based pixel canvas, 2x4 dots per cell
//
// # Key Bindings
//
//	Click     - Open the page behind a bubble
//	Tab       - Select the next bubble
//	Enter     - Open the selected bubble
//	Space     - Pause/Resume
//	R         - Scatter the bubbles again
//	T         - Cycle color themes
//	Q         - Quit
//
// Resizing the terminal resizes the world viewport, which scatters the
// bubbles again from the bottom band.
package viz
