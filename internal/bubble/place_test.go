package bubble

import (
	"math/rand"
	"testing"
)

func TestPlace_NonOverlapping(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		vp := Viewport{Width: 1600, Height: 900}
		var placed []Body
		for k := 0; k < 5; k++ {
			x, y := place(rng, placed, DefaultRadius, vp, DefaultBand, DefaultAttempts)
			placed = append(placed, Body{X: x, Y: y})
		}

		for i := range placed {
			for j := i + 1; j < len(placed); j++ {
				if d := placed[i].Dist(placed[j]); d < 2*DefaultRadius {
					t.Errorf("seed %d: bodies %d and %d overlap (dist %.2f)", seed, i, j, d)
				}
			}
		}
	}
}

func TestPlace_WithinBand(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	vp := Viewport{Width: 800, Height: 600}

	for i := 0; i < 200; i++ {
		x, y := place(rng, nil, DefaultRadius, vp, DefaultBand, DefaultAttempts)
		if x < DefaultRadius || x > vp.Width-DefaultRadius {
			t.Fatalf("x=%v outside [%v, %v]", x, DefaultRadius, vp.Width-DefaultRadius)
		}
		if y < vp.Height-DefaultRadius-DefaultBand || y > vp.Height-DefaultRadius {
			t.Fatalf("y=%v outside placement band", y)
		}
	}
}

func TestPlace_Fallback(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	vp := Viewport{Width: 100, Height: 600}
	existing := []Body{{X: 50, Y: 540}}

	x, y := place(rng, existing, DefaultRadius, vp, DefaultBand, DefaultAttempts)

	if x != DefaultRadius+2000 {
		t.Errorf("fallback x = %v, want %v", x, DefaultRadius+2000)
	}
	if y != vp.Height-DefaultRadius {
		t.Errorf("fallback y = %v, want %v", y, vp.Height-DefaultRadius)
	}
}

func TestPlace_FallbackScalesWithAttempts(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	vp := Viewport{Width: 100, Height: 600}
	existing := []Body{{X: 50, Y: 540}}

	x, _ := place(rng, existing, 10, vp, 0, 0)
	if x != 10 {
		t.Errorf("zero attempts should park at x=radius, got %v", x)
	}
}

func TestWorld_FallbackPlacement(t *testing.T) {
	w, err := NewWorld([]string{"a", "b", "c"}, "", Viewport{Width: 100, Height: 600}, DefaultParams(), 3)
	if err != nil {
		t.Fatalf("new world: %v", err)
	}

	for i := 1; i < w.Len(); i++ {
		b := w.Body(i)
		if b.X != DefaultRadius+2000 || b.Y != 600-DefaultRadius {
			t.Errorf("body %d at (%v, %v), want fallback (%v, %v)", i, b.X, b.Y, DefaultRadius+2000, 600-DefaultRadius)
		}
	}
}

func TestActiveLabels(t *testing.T) {
	tests := []struct {
		name    string
		labels  []string
		current string
		want    []string
	}{
		{"excludes current", []string{"a", "b", "c"}, "b", []string{"a", "c"}},
		{"unknown page", []string{"a", "b"}, "index", []string{"a", "b"}},
		{"first occurrence only", []string{"a", "b", "a"}, "a", []string{"b", "a"}},
		{"empty current", []string{"a"}, "", []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ActiveLabels(tt.labels, tt.current)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}
