package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/san-kum/bubblenav/internal/bubble"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth       = 800.0
	DefaultHeight      = 600.0
	DefaultFPS         = 60
	DefaultTicks       = 600
	DefaultSampleEvery = 1
	DefaultCurrentPage = "index"
	DefaultBasePath    = "/"
	DefaultTheme       = "glass"
	DefaultDataDir     = ".bubblenav"
)

// Environment variables read by ApplyEnv.
const (
	EnvDataDir  = "BUBBLENAV_DATA"
	EnvTheme    = "BUBBLENAV_THEME"
	EnvLogLevel = "BUBBLENAV_LOG_LEVEL"
	EnvSeed     = "BUBBLENAV_SEED"
)

type Config struct {
	Labels      []string        `yaml:"labels"`
	CurrentPage string          `yaml:"current_page"`
	Radius      float64         `yaml:"radius"`
	Viewport    bubble.Viewport `yaml:"viewport"`
	Placement   PlacementConfig `yaml:"placement"`
	Velocity    VelocityConfig  `yaml:"velocity"`
	Palette     []string        `yaml:"palette"`
	FPS         int             `yaml:"fps"`
	Seed        int64           `yaml:"seed"`
	Ticks       int             `yaml:"ticks"`
	SampleEvery int             `yaml:"sample_every"`
	BasePath    string          `yaml:"base_path"`
	Theme       string          `yaml:"theme"`
	DataDir     string          `yaml:"data_dir"`
	LogLevel    string          `yaml:"log_level"`
}

type PlacementConfig struct {
	Band     float64 `yaml:"band"`
	Attempts int     `yaml:"attempts"`
}

type VelocityConfig struct {
	VXMin float64 `yaml:"vx_min"`
	VXMax float64 `yaml:"vx_max"`
	VYMin float64 `yaml:"vy_min"`
	VYMax float64 `yaml:"vy_max"`
}

func DefaultConfig() *Config {
	p := bubble.DefaultParams()
	return &Config{
		Labels:      append([]string(nil), bubble.DefaultLabels...),
		CurrentPage: DefaultCurrentPage,
		Radius:      p.Radius,
		Viewport:    bubble.Viewport{Width: DefaultWidth, Height: DefaultHeight},
		Placement: PlacementConfig{
			Band:     p.Band,
			Attempts: p.Attempts,
		},
		Velocity: VelocityConfig{
			VXMin: p.VXMin,
			VXMax: p.VXMax,
			VYMin: p.VYMin,
			VYMax: p.VYMax,
		},
		Palette:     append([]string(nil), p.Palette...),
		FPS:         DefaultFPS,
		Ticks:       DefaultTicks,
		SampleEvery: DefaultSampleEvery,
		BasePath:    DefaultBasePath,
		Theme:       DefaultTheme,
		DataDir:     DefaultDataDir,
		LogLevel:    "info",
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base, so fields the file leaves out keep
// their base values. base is modified and returned.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv loads the optional .env files (missing files are ignored) and
// overrides fields from BUBBLENAV_* variables.
func (c *Config) ApplyEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		c.Theme = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	return nil
}

// Params converts the simulation fields to bubble.Params.
func (c *Config) Params() bubble.Params {
	return bubble.Params{
		Radius:   c.Radius,
		Band:     c.Placement.Band,
		Attempts: c.Placement.Attempts,
		VXMin:    c.Velocity.VXMin,
		VXMax:    c.Velocity.VXMax,
		VYMin:    c.Velocity.VYMin,
		VYMax:    c.Velocity.VYMax,
		Palette:  c.Palette,
	}
}

// Validate checks the fields the simulator and the frame driver depend on.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if len(c.Labels) == 0 {
		return bubble.ErrNoLabels
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", c.Ticks)
	}
	if c.SampleEvery <= 0 {
		return fmt.Errorf("sample_every must be positive, got %d", c.SampleEvery)
	}
	return nil
}

// ResolveSeed turns the "pick one for me" seed 0 into a time-based seed.
func ResolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// NewWorld builds a world from the configuration.
func (c *Config) NewWorld() (*bubble.World, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return bubble.NewWorld(c.Labels, c.CurrentPage, c.Viewport, c.Params(), c.Seed)
}

// Clone returns a deep copy, so presets can be adjusted without touching the
// shared table.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Labels = append([]string(nil), c.Labels...)
	cp.Palette = append([]string(nil), c.Palette...)
	return &cp
}
