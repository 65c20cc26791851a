package automation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/san-kum/bubblenav/internal/bubble"
	"github.com/san-kum/bubblenav/internal/config"
	"github.com/san-kum/bubblenav/internal/metrics"
	"github.com/san-kum/bubblenav/internal/optim"
	"github.com/san-kum/bubblenav/internal/sim"
	"github.com/san-kum/bubblenav/internal/storage"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownPreset = errors.New("unknown preset")
	ErrUnknownParam  = errors.New("unknown sweep parameter")
	ErrEmptyScenario = errors.New("scenario has no steps")
)

// Scenario is a scripted sequence of headless runs.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step runs one preset, optionally overridden, for a number of ticks.
// Resizes replay window size changes at the given ticks.
type Step struct {
	Preset          string             `yaml:"preset"`
	Page            *string            `yaml:"page"`
	Viewport        *bubble.Viewport   `yaml:"viewport"`
	Seed            int64              `yaml:"seed"`
	Ticks           int                `yaml:"ticks"`
	SampleEvery     int                `yaml:"sample_every"`
	Resizes         []sim.ResizeEvent  `yaml:"resizes"`
	StopWhenSettled bool               `yaml:"stop_when_settled"`
	Params          map[string]float64 `yaml:"params"`
	SaveAs          string             `yaml:"save_as"`
}

type StepResult struct {
	Step   Step
	Config *config.Config
	Result *sim.Result
	RunID  string
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, ErrEmptyScenario
	}
	return &scenario, nil
}

// Runner executes scenarios and sweeps. Store may be nil, in which case
// save_as is ignored.
type Runner struct {
	Store  *storage.Store
	Logger *log.Logger
}

func NewRunner(store *storage.Store, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Store: store, Logger: logger}
}

// Config resolves the preset of a step and applies its overrides.
func (s Step) Config() (*config.Config, error) {
	name := s.Preset
	if name == "" {
		name = "site"
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	if s.Page != nil {
		cfg.CurrentPage = *s.Page
	}
	if s.Viewport != nil {
		cfg.Viewport = *s.Viewport
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	cfg.Seed = config.ResolveSeed(cfg.Seed)
	if s.Ticks > 0 {
		cfg.Ticks = s.Ticks
	}
	if s.SampleEvery > 0 {
		cfg.SampleEvery = s.SampleEvery
	}
	for k, v := range s.Params {
		if err := SetParam(cfg, k, v); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		r.Logger.Info("running step", "step", i+1, "of", len(scenario.Steps), "preset", step.Preset)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		res, err := r.run(ctx, cfg, sim.Config{
			Ticks:           cfg.Ticks,
			SampleEvery:     cfg.SampleEvery,
			Resizes:         step.Resizes,
			StopWhenSettled: step.StopWhenSettled,
		})
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Step: step, Config: cfg, Result: res}
		if step.SaveAs != "" && r.Store != nil {
			id, err := r.Store.Save(storage.RunInfo{
				Preset:      step.SaveAs,
				Seed:        cfg.Seed,
				Radius:      cfg.Radius,
				Viewport:    cfg.Viewport,
				CurrentPage: cfg.CurrentPage,
				Ticks:       cfg.Ticks,
				SampleEvery: cfg.SampleEvery,
			}, res)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			sr.RunID = id
			r.Logger.Info("saved", "run", id)
		}
		results = append(results, sr)
	}

	return results, nil
}

func (r *Runner) run(ctx context.Context, cfg *config.Config, sc sim.Config) (*sim.Result, error) {
	w, err := cfg.NewWorld()
	if err != nil {
		return nil, err
	}
	d := sim.New(w)
	for _, m := range metrics.Standard(w) {
		d.AddMetric(m)
	}
	return d.Run(ctx, sc)
}

// ParameterSweep runs one preset across evenly spaced values of a parameter.
type ParameterSweep struct {
	Preset    string
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Ticks     int
	Seed      int64
}

type SweepResult struct {
	ParamValue float64
	SettledAt  int
	Collisions int
	Frozen     float64
	MeanSpeed  float64
}

func (r *Runner) RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	// one seed for every value, so only the parameter differs
	base := Step{Preset: sweep.Preset, Seed: config.ResolveSeed(sweep.Seed), Ticks: sweep.Ticks}
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		val := sweep.ParamMin + float64(i)*paramStep
		cfg, err := base.Config()
		if err != nil {
			return nil, err
		}
		if err := SetParam(cfg, sweep.ParamName, val); err != nil {
			return nil, err
		}

		res, err := r.run(ctx, cfg, sim.Config{Ticks: cfg.Ticks, SampleEvery: cfg.Ticks})
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, val, err)
		}

		results = append(results, SweepResult{
			ParamValue: val,
			SettledAt:  res.SettledAt,
			Collisions: res.Collisions,
			Frozen:     res.Metrics["frozen"],
			MeanSpeed:  res.Metrics["mean_speed"],
		})
		r.Logger.Debug("sweep", "step", i+1, "of", sweep.NumSteps, sweep.ParamName, val)
	}

	return results, nil
}

// Search evaluates base under every combination of the named parameter
// values and returns the combination minimising metric.
func (r *Runner) Search(ctx context.Context, base Step, params []string, ranges [][]float64, metric string) (optim.Candidate, []optim.Candidate, error) {
	if len(params) == 0 || len(params) != len(ranges) {
		return optim.Candidate{}, nil, fmt.Errorf("search needs one range per parameter, got %d params and %d ranges", len(params), len(ranges))
	}
	for _, name := range params {
		if err := SetParam(config.DefaultConfig(), name, 0); err != nil {
			return optim.Candidate{}, nil, err
		}
	}

	base.Seed = config.ResolveSeed(base.Seed)
	eval := func(ctx context.Context, values map[string]float64) (*sim.Result, error) {
		cfg, err := base.Config()
		if err != nil {
			return nil, err
		}
		for k, v := range values {
			if err := SetParam(cfg, k, v); err != nil {
				return nil, err
			}
		}
		r.Logger.Debug("search", "params", values)
		return r.run(ctx, cfg, sim.Config{Ticks: cfg.Ticks, SampleEvery: cfg.Ticks})
	}

	return optim.NewGridSearch(params, ranges).Search(ctx, eval, metric)
}

// SweepParams lists the names SetParam accepts.
var SweepParams = []string{"radius", "band", "width", "height", "vx_min", "vx_max", "vy_min", "vy_max"}

func SetParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "radius":
		cfg.Radius = v
	case "band":
		cfg.Placement.Band = v
	case "width":
		cfg.Viewport.Width = v
	case "height":
		cfg.Viewport.Height = v
	case "vx_min":
		cfg.Velocity.VXMin = v
	case "vx_max":
		cfg.Velocity.VXMax = v
	case "vy_min":
		cfg.Velocity.VYMin = v
	case "vy_max":
		cfg.Velocity.VYMax = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return nil
}
