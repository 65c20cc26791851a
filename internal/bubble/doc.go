// Package bubble implements the motion simulator behind the navigation bubbles.
//
// A [World] owns a set of circular [Body] values that share one radius. Bodies
// are scattered in a narrow band at the bottom of the viewport, drift upward,
// bounce off the side and bottom walls and off each other, and freeze for good
// once they touch the top edge.
//
//   - [World.Place]: rejection-sampled non-overlapping placement
//   - [Step]: the pure per-tick update over a body slice
//   - [World.Tick]: [Step] followed by a sync to the [Renderer]
//   - [World.Resize]: discard every body and place the set again
//
// # Collisions
//
// Every ordered pair (i, j) is checked, so a touching pair is corrected twice
// per tick. Both bodies reverse their whole velocity vector instead of the
// normal component. Both behaviours are kept on purpose; the animation looks
// the way it does because of them.
//
// # Example
//
//	w, _ := bubble.NewWorld(labels, "index", bubble.Viewport{Width: 800, Height: 600}, bubble.DefaultParams(), 1)
//	for {
//	    w.Tick()
//	}
//
// # Thread Safety
//
// A World is not safe for concurrent use. It is meant to be driven from a
// single frame loop.
package bubble
