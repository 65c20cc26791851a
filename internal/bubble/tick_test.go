package bubble

import (
	"math"
	"testing"
)

var testViewport = Viewport{Width: 800, Height: 600}

func TestStep_FreeMotion(t *testing.T) {
	bodies := []Body{
		{Label: "a", X: 100, Y: 500, VX: 1, VY: -3},
		{Label: "b", X: 200, Y: 500, VX: -1, VY: -3},
		{Label: "c", X: 700, Y: 500, VX: 0, VY: -2},
	}

	rep := Step(bodies, testViewport, DefaultRadius)

	want := [][4]float64{
		{101, 497, 1, -3},
		{199, 497, -1, -3},
		{700, 498, 0, -2},
	}
	for i, w := range want {
		b := bodies[i]
		if b.X != w[0] || b.Y != w[1] || b.VX != w[2] || b.VY != w[3] {
			t.Errorf("body %d: got (%v, %v, %v, %v), want %v", i, b.X, b.Y, b.VX, b.VY, w)
		}
		if b.Stopped {
			t.Errorf("body %d should still be moving", i)
		}
	}
	if rep.Collisions != 0 {
		t.Errorf("expected no collisions, got %d", rep.Collisions)
	}
	if len(rep.Moved) != 3 || len(rep.Frozen) != 0 {
		t.Errorf("unexpected report: %+v", rep)
	}
}

func TestStep_WallReflection(t *testing.T) {
	tests := []struct {
		name   string
		body   Body
		wantX  float64
		wantVX float64
	}{
		{"left", Body{X: 10, Y: 300, VX: -2}, 48, 2},
		{"right", Body{X: 790, Y: 300, VX: 3}, 752, -3},
		{"inside", Body{X: 400, Y: 300, VX: 5}, 405, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bodies := []Body{tt.body}
			Step(bodies, testViewport, DefaultRadius)
			if bodies[0].X != tt.wantX {
				t.Errorf("x = %v, want %v", bodies[0].X, tt.wantX)
			}
			if bodies[0].VX != tt.wantVX {
				t.Errorf("vx = %v, want %v", bodies[0].VX, tt.wantVX)
			}
		})
	}
}

func TestStep_BottomReflection(t *testing.T) {
	bodies := []Body{{X: 400, Y: 550, VX: 0, VY: 4}}
	Step(bodies, testViewport, DefaultRadius)

	if bodies[0].Y != 552 {
		t.Errorf("y = %v, want 552", bodies[0].Y)
	}
	if bodies[0].VY != -4 {
		t.Errorf("vy = %v, want -4", bodies[0].VY)
	}
}

func TestStep_TopFreeze(t *testing.T) {
	bodies := []Body{{X: 400, Y: 43, VX: 1.5, VY: -3}}

	rep := Step(bodies, testViewport, DefaultRadius)

	b := bodies[0]
	if b.Y != DefaultRadius || b.VX != 0 || b.VY != 0 || !b.Stopped {
		t.Fatalf("expected frozen body at y=48, got %+v", b)
	}
	if len(rep.Frozen) != 1 || rep.Frozen[0] != 0 {
		t.Errorf("expected body 0 reported frozen, got %v", rep.Frozen)
	}

	frozen := b
	for i := 0; i < 50; i++ {
		rep = Step(bodies, testViewport, DefaultRadius)
		if bodies[0] != frozen {
			t.Fatalf("tick %d: frozen body changed to %+v", i, bodies[0])
		}
		if len(rep.Moved) != 0 {
			t.Fatalf("tick %d: stopped body reported as moved", i)
		}
	}
}

func TestStep_FreezeAtExactBoundary(t *testing.T) {
	bodies := []Body{{X: 400, Y: 50, VY: -2}}
	Step(bodies, testViewport, DefaultRadius)
	if !bodies[0].Stopped {
		t.Error("body touching the top edge should freeze")
	}
}

func TestStep_CollisionSeparates(t *testing.T) {
	bodies := []Body{
		{X: 300, Y: 300, VX: 1, VY: -2},
		{X: 380, Y: 300, VX: -1, VY: -3},
	}

	rep := Step(bodies, testViewport, DefaultRadius)

	if rep.Collisions != 1 {
		t.Fatalf("expected one correction, got %d", rep.Collisions)
	}
	if d := bodies[0].Dist(bodies[1]); d < 2*DefaultRadius {
		t.Errorf("bodies still overlap after correction: dist %.4f", d)
	}
	if bodies[0].X >= 301 {
		t.Errorf("body 0 should have been pushed left, x=%v", bodies[0].X)
	}
	if bodies[1].X <= 380 {
		t.Errorf("body 1 should have been pushed right, x=%v", bodies[1].X)
	}
	if bodies[0].VX != -1 || bodies[0].VY != 2 {
		t.Errorf("body 0 velocity = (%v, %v), want (-1, 2)", bodies[0].VX, bodies[0].VY)
	}
}

func TestStep_PairCorrectedFromBothSides(t *testing.T) {
	bodies := []Body{
		{X: 300, Y: 300},
		{X: 390, Y: 300, VX: 1},
	}

	rep := Step(bodies, testViewport, DefaultRadius)

	// i=0: overlap 6 moves the pair to 297 and 393 and flips body 1 to vx=-1.
	// i=1: body 1 steps back to 392, overlap 1 is split again.
	if rep.Collisions != 2 {
		t.Fatalf("expected two corrections, got %d", rep.Collisions)
	}
	if math.Abs(bodies[0].X-296.5) > 1e-9 {
		t.Errorf("body 0 x = %v, want 296.5", bodies[0].X)
	}
	if math.Abs(bodies[1].X-392.5) > 1e-9 {
		t.Errorf("body 1 x = %v, want 392.5", bodies[1].X)
	}
	if bodies[1].VX != 1 {
		t.Errorf("body 1 vx = %v, want 1 after two inversions", bodies[1].VX)
	}
}

func TestStep_CollisionFirstPass(t *testing.T) {
	// Two bodies on a horizontal line, the left one not moving.
	bodies := []Body{
		{X: 300, Y: 300},
		{X: 390, Y: 300, Stopped: true},
	}

	Step(bodies, testViewport, DefaultRadius)

	// overlap = 96 - 90 = 6, body 0 takes half of it.
	if math.Abs(bodies[0].X-297) > 1e-9 || math.Abs(bodies[0].Y-300) > 1e-9 {
		t.Errorf("body 0 at (%v, %v), want (297, 300)", bodies[0].X, bodies[0].Y)
	}
	if bodies[1].X != 390 || bodies[1].Y != 300 {
		t.Errorf("stopped body moved to (%v, %v)", bodies[1].X, bodies[1].Y)
	}
}

func TestStep_VelocityInversion(t *testing.T) {
	bodies := []Body{
		{X: 300, Y: 300, VX: 0.5, VY: -2},
		{X: 400, Y: 300, VX: 0, VY: -2},
	}

	// Both bodies stay just outside 2*radius of each other.
	Step(bodies, testViewport, DefaultRadius)
	if bodies[0].VX != 0.5 || bodies[1].VY != -2 {
		t.Fatalf("no collision expected, got %+v", bodies)
	}

	bodies = []Body{
		{X: 300, Y: 300, VX: 5, VY: -2},
		{X: 392, Y: 298, VX: 0, VY: -2},
	}
	Step(bodies, testViewport, DefaultRadius)

	// body 0 lands at (305, 298), 87 away from body 1: one correction from
	// i=0 flips both, then i=1 moves and the pair is already separated.
	if bodies[0].VX != -5 || bodies[0].VY != 2 {
		t.Errorf("body 0 velocity = (%v, %v), want (-5, 2)", bodies[0].VX, bodies[0].VY)
	}
	if bodies[1].VX != 0 || bodies[1].VY != 2 {
		t.Errorf("body 1 velocity = (%v, %v), want (0, 2)", bodies[1].VX, bodies[1].VY)
	}
}

func TestStep_ContainmentSingleBody(t *testing.T) {
	bodies := []Body{{X: 400, Y: 500, VX: 7.3, VY: -1.1}}
	for i := 0; i < 2000; i++ {
		Step(bodies, testViewport, DefaultRadius)
		b := bodies[0]
		if b.X < DefaultRadius || b.X > testViewport.Width-DefaultRadius {
			t.Fatalf("tick %d: x=%v out of bounds", i, b.X)
		}
		if b.Y < DefaultRadius || b.Y > testViewport.Height-DefaultRadius {
			t.Fatalf("tick %d: y=%v out of bounds", i, b.Y)
		}
	}
	if !bodies[0].Stopped {
		t.Error("an upward drifting body should eventually freeze")
	}
}
