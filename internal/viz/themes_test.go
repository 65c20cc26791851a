package viz

import "testing"

func TestNextThemeWraps(t *testing.T) {
	names := ThemeNames()
	if len(names) != 4 || names[0] != "glass" {
		t.Fatalf("unexpected themes %v", names)
	}

	name := names[0]
	for i := 0; i < len(names); i++ {
		name = NextTheme(name).Name
	}
	if name != names[0] {
		t.Errorf("cycling %d times should wrap to %s, got %s", len(names), names[0], name)
	}
	if NextTheme("unknown").Name != "glass" {
		t.Error("unknown theme should restart at glass")
	}
}

func TestGetTheme(t *testing.T) {
	if GetTheme("mono").Name != "mono" {
		t.Error("mono theme missing")
	}
	if GetTheme("cyberpunk").Name != "glass" {
		t.Error("unknown theme should fall back to glass")
	}
}

func TestGradientTextNonHex(t *testing.T) {
	out := GradientText("ab", ThemeMono.Primary, ThemeMono.Secondary)
	if out == "" {
		t.Error("expected rendered text for ANSI palette colors")
	}
}
