package config

import (
	"sort"

	"github.com/san-kum/bubblenav/internal/bubble"
)

var Presets = map[string]*Config{
	"site":     site(),
	"laptop":   sized(1366, 768),
	"phone":    sized(390, 844),
	"crowded":  crowded(),
	"slowrise": slowRise(),
}

func site() *Config {
	return DefaultConfig()
}

func sized(w, h float64) *Config {
	cfg := DefaultConfig()
	cfg.Viewport = bubble.Viewport{Width: w, Height: h}
	return cfg
}

// crowded packs more bubbles than fit in one row, so placement falls back.
func crowded() *Config {
	cfg := sized(480, 600)
	cfg.Labels = append(cfg.Labels, "blog", "talks", "photos", "garden")
	cfg.CurrentPage = ""
	return cfg
}

func slowRise() *Config {
	cfg := sized(1280, 720)
	cfg.Velocity = VelocityConfig{VXMin: -0.5, VXMax: 0.5, VYMin: -1.5, VYMax: -0.5}
	cfg.Ticks = 1800
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
