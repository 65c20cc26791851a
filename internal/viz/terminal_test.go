package viz

import "testing"

func TestTerminalRenderer(t *testing.T) {
	term := NewTerminal(0)
	if term.Scale != DefaultScale {
		t.Fatalf("expected default scale, got %f", term.Scale)
	}

	h1 := term.Create("a", "#fff", 60, 60)
	h2 := term.Create("b", "#fff", 180, 60)
	if h1 == h2 {
		t.Fatal("handles must be unique")
	}

	term.Update(h2, 200, 90)
	if x, y, ok := term.Position(h2); !ok || x != 200 || y != 90 {
		t.Errorf("unexpected position (%f,%f,%v)", x, y, ok)
	}

	term.Update(999, 1, 1)
	if term.Len() != 2 {
		t.Errorf("update of unknown handle changed sprites")
	}

	term.Clear()
	if term.Len() != 0 {
		t.Errorf("expected no sprites after clear")
	}
	if _, _, ok := term.Position(h1); ok {
		t.Error("cleared handle should be gone")
	}
}

func TestTerminalMapping(t *testing.T) {
	term := NewTerminal(6)

	vp := term.ViewportFor(40, 20)
	if vp.Width != 480 || vp.Height != 480 {
		t.Errorf("unexpected viewport %s", vp)
	}

	x, y := term.CellToPixel(2, 3)
	if x != 30 || y != 84 {
		t.Errorf("unexpected pixel (%f,%f)", x, y)
	}
	if dx, dy := term.ToDots(x, y); dx != 5 || dy != 14 {
		t.Errorf("unexpected dots (%d,%d)", dx, dy)
	}
}

func TestTerminalDraw(t *testing.T) {
	term := NewTerminal(6)
	term.Create("hi", "#fff", 120, 120)

	c := NewCanvas(40, 20)
	term.Draw(c, 48)

	if !c.Get(20+8, 20) {
		t.Error("expected outline at radius")
	}
	if c.Grid[5][9] != 'h' || c.Grid[5][10] != 'i' {
		t.Errorf("expected centered label, got %q", string(c.Grid[5][8:12]))
	}
}

func TestPulseSettles(t *testing.T) {
	p := newPulse(60)
	if p.step() != 0 {
		t.Error("idle pulse should not move")
	}

	p.kick(10, 20)
	peak := 0.0
	for i := 0; i < 600 && p.active; i++ {
		if g := p.step(); g > peak {
			peak = g
		}
	}
	if peak <= 0 {
		t.Error("expected the ring to grow")
	}
	if p.active {
		t.Error("expected the pulse to settle")
	}
}
