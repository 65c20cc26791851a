package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bubblenav/internal/automation"
	"github.com/san-kum/bubblenav/internal/bubble"
	"github.com/san-kum/bubblenav/internal/config"
	"github.com/san-kum/bubblenav/internal/export"
	"github.com/san-kum/bubblenav/internal/metrics"
	"github.com/san-kum/bubblenav/internal/nav"
	"github.com/san-kum/bubblenav/internal/optim"
	"github.com/san-kum/bubblenav/internal/sim"
	"github.com/san-kum/bubblenav/internal/storage"
	"github.com/san-kum/bubblenav/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	envFile    string
	logLevel   string
	seed       int64
	width      float64
	height     float64
	page       string
	// run
	ticks       int
	sampleEvery int
	resizeSpecs []string
	stopSettled bool
	// live
	frameRate int
	theme     string
	logFile   string
	// ensemble
	numRuns  int
	parallel int
	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	// search
	gridSpecs    []string
	searchMetric string
	// export
	outFile   string
	frameTick int

	logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, TimeFormat: time.Kitchen})
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "bubblenav",
		Short:         "floating bubble navigation, in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLive,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger.SetLevel(lvl)
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", "", "data directory (default .bubblenav)")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a preset")
	pf.StringVar(&envFile, "env", ".env", "dotenv file with BUBBLENAV_* overrides")
	pf.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	pf.Int64Var(&seed, "seed", 0, "random seed (default: time based)")
	pf.Float64Var(&width, "width", config.DefaultWidth, "viewport width in pixels")
	pf.Float64Var(&height, "height", config.DefaultHeight, "viewport height in pixels")
	pf.StringVar(&page, "page", config.DefaultCurrentPage, "current page, left out of the bubbles")

	rootCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs here while the view is open")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and save the frames",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	runCmd.Flags().IntVar(&sampleEvery, "sample", config.DefaultSampleEvery, "record a frame every n ticks")
	runCmd.Flags().StringArrayVar(&resizeSpecs, "resize", nil, "resize at a tick, as tick:WIDTHxHEIGHT (repeatable)")
	runCmd.Flags().BoolVar(&stopSettled, "stop-when-settled", false, "stop once every bubble is frozen")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot frozen bubbles and mean height over a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a frame as linked SVG bubbles (a fresh placement without run_id)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&frameTick, "tick", -1, "frame tick to render (default: last)")
	for _, c := range []*cobra.Command{exportJSONCmd, exportCSVCmd, exportSVGCmd} {
		c.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	}

	placeCmd := &cobra.Command{
		Use:   "place",
		Short: "print a placement without running it",
		Args:  cobra.NoArgs,
		RunE:  printPlacement,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run many seeds in parallel and summarise settling",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 16, "number of seeds")
	ensembleCmd.Flags().IntVar(&parallel, "parallel", 0, "max concurrent runs (default GOMAXPROCS)")
	ensembleCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "ticks per run")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter and report settling",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "vy_min", "parameter ("+strings.Join(automation.SweepParams, ", ")+")")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", -8, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", -2.5, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of values")
	sweepCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "ticks per run")

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "grid search parameters minimising a metric",
		Args:  cobra.NoArgs,
		RunE:  runSearch,
	}
	searchCmd.Flags().StringArrayVar(&gridSpecs, "grid", []string{"vy_min=-8:-3:4", "radius=32:56:4"}, "parameter range name=lo:hi:n (repeatable)")
	searchCmd.Flags().StringVar(&searchMetric, "metric", "settle_tick", "metric to minimise")
	searchCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "ticks per run")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, placeCmd, presetsCmd, ensembleCmd, sweepCmd, searchCmd, scenarioCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

// loadConfig layers preset, config file, environment and flags, in that
// order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		var err error
		if cfg, err = config.LoadOver(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := cfg.ApplyEnv(envFile); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	cfg.Seed = config.ResolveSeed(cfg.Seed)
	if flags.Changed("width") {
		cfg.Viewport.Width = width
	}
	if flags.Changed("height") {
		cfg.Viewport.Height = height
	}
	if flags.Changed("page") {
		cfg.CurrentPage = page
	}
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("sample") {
		cfg.SampleEvery = sampleEvery
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if !flags.Changed("log-level") && cfg.LogLevel != "" {
		if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
			logger.SetLevel(lvl)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// openStore resolves the data directory from --data, then the environment,
// then the default.
func openStore() (*storage.Store, error) {
	cfg := config.DefaultConfig()
	if err := cfg.ApplyEnv(envFile); err != nil {
		return nil, err
	}
	st := storage.New(orDefault(dataDir, cfg.DataDir))
	return st, st.Init()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The view owns the terminal, so logs go to a file or nowhere.
	tuiLog := log.New(io.Discard)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		tuiLog = log.NewWithOptions(f, log.Options{ReportTimestamp: true, Level: logger.GetLevel()})
	}

	w, err := cfg.NewWorld()
	if err != nil {
		return err
	}
	pages := nav.NewPages(cfg.BasePath, cfg.Labels)
	tuiLog.Info("starting", "seed", cfg.Seed, "viewport", cfg.Viewport, "page", cfg.CurrentPage)

	if err := viz.Run(w, viz.Options{FPS: cfg.FPS, Theme: cfg.Theme, Pages: pages, Logger: tuiLog}); err != nil {
		return err
	}

	if hist := pages.History(); len(hist) > 0 {
		fmt.Println("visited:")
		for _, dest := range hist {
			fmt.Printf("  %s\n", dest)
		}
	}
	return nil
}

func parseResize(arg string) (sim.ResizeEvent, error) {
	tickStr, size, ok := strings.Cut(arg, ":")
	if !ok {
		return sim.ResizeEvent{}, fmt.Errorf("resize %q: want tick:WIDTHxHEIGHT", arg)
	}
	wStr, hStr, ok := strings.Cut(size, "x")
	if !ok {
		return sim.ResizeEvent{}, fmt.Errorf("resize %q: want tick:WIDTHxHEIGHT", arg)
	}
	tick, err := strconv.Atoi(tickStr)
	if err != nil {
		return sim.ResizeEvent{}, fmt.Errorf("resize %q: %w", arg, err)
	}
	w, err := strconv.ParseFloat(wStr, 64)
	if err != nil {
		return sim.ResizeEvent{}, fmt.Errorf("resize %q: %w", arg, err)
	}
	h, err := strconv.ParseFloat(hStr, 64)
	if err != nil {
		return sim.ResizeEvent{}, fmt.Errorf("resize %q: %w", arg, err)
	}
	return sim.ResizeEvent{Tick: tick, Width: w, Height: h}, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	resizes := make([]sim.ResizeEvent, 0, len(resizeSpecs))
	for _, arg := range resizeSpecs {
		ev, err := parseResize(arg)
		if err != nil {
			return err
		}
		resizes = append(resizes, ev)
	}

	st, err := openStore()
	if err != nil {
		return err
	}

	w, err := cfg.NewWorld()
	if err != nil {
		return err
	}
	driver := sim.New(w)
	for _, m := range metrics.Standard(w) {
		driver.AddMetric(m)
	}

	logger.Info("running", "bubbles", w.Len(), "viewport", cfg.Viewport, "seed", cfg.Seed, "ticks", cfg.Ticks)
	start := time.Now()

	result, err := driver.Run(cmd.Context(), sim.Config{
		Ticks:           cfg.Ticks,
		SampleEvery:     cfg.SampleEvery,
		Resizes:         resizes,
		StopWhenSettled: stopSettled,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunInfo{
		Preset:      orDefault(preset, "run"),
		Seed:        cfg.Seed,
		Radius:      cfg.Radius,
		Viewport:    cfg.Viewport,
		CurrentPage: cfg.CurrentPage,
		Ticks:       cfg.Ticks,
		SampleEvery: cfg.SampleEvery,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d  frames: %d  resets: %d\n", result.TicksTaken, len(result.Frames), result.Resets)
	if result.Settled() {
		fmt.Printf("settled at tick %d\n", result.SettledAt)
	} else {
		fmt.Println("not settled")
	}
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range sortedKeys(m) {
		fmt.Fprintf(w, "  %s\t%.4f\n", name, m[name])
	}
	w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tVIEWPORT\tPAGE\tBUBBLES\tTICKS\tSETTLED")
	for _, run := range runs {
		settled := "-"
		if run.SettledAt >= 0 {
			settled = strconv.Itoa(run.SettledAt)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Viewport,
			orDefault(run.CurrentPage, "-"),
			len(run.Labels),
			run.TicksTaken,
			settled,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) < 2 {
		return fmt.Errorf("not enough frames to plot")
	}

	frozen := make([]float64, len(frames))
	meanY := make([]float64, len(frames))
	for i, f := range frames {
		frozen[i] = metrics.FrozenFraction(f.Bodies) * float64(len(f.Bodies))
		for _, b := range f.Bodies {
			meanY[i] += f.Viewport.Height - b.Y
		}
		if len(f.Bodies) > 0 {
			meanY[i] /= float64(len(f.Bodies))
		}
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("viewport: %s  seed: %d\n", meta.Viewport, meta.Seed)
	fmt.Printf("frames: %d\n\n", len(frames))

	fmt.Println(asciigraph.Plot(frozen,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("frozen bubbles per frame"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(meanY,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("mean height above the bottom edge (px)"),
	))
	return nil
}

func output() (io.Writer, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(w, *meta, frames); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := storage.WriteFrames(w, frames); err != nil {
		closeFn()
		return err
	}
	if outFile != "" {
		logger.Info("exported", "frames", len(frames), "file", outFile)
	}
	return closeFn()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var svg string
	if len(args) == 0 {
		w, err := cfg.NewWorld()
		if err != nil {
			return err
		}
		scene := export.NewScene(w.Viewport(), w.Radius())
		scene.SetBase(cfg.BasePath)
		w.SetRenderer(scene)
		svg = scene.String()
	} else {
		st, err := openStore()
		if err != nil {
			return err
		}
		frames, err := st.LoadFrames(args[0])
		if err != nil {
			return err
		}
		if len(frames) == 0 {
			return fmt.Errorf("run %s has no frames", args[0])
		}
		radius := cfg.Radius
		if meta, err := st.Load(args[0]); err == nil && meta.Radius > 0 {
			radius = meta.Radius
		}
		f := frames[len(frames)-1]
		if frameTick >= 0 {
			found := false
			for _, fr := range frames {
				if fr.Tick == frameTick {
					f, found = fr, true
				}
			}
			if !found {
				return fmt.Errorf("no frame at tick %d", frameTick)
			}
		}
		svg = export.FrameToSVG(f, radius)
	}

	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, svg+"\n"); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func printPlacement(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	w, err := cfg.NewWorld()
	if err != nil {
		return err
	}

	fmt.Printf("viewport %s  radius %.0f  seed %d  page %s\n\n", w.Viewport(), w.Radius(), cfg.Seed, orDefault(w.CurrentPage(), "-"))
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LABEL\tX\tY\tVX\tVY\tHREF")
	pages := nav.NewPages(cfg.BasePath, cfg.Labels)
	for _, b := range w.Bodies() {
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%.2f\t%.2f\t%s\n", b.Label, b.X, b.Y, b.VX, b.VY, pages.Href(b.Label))
	}
	return tw.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVIEWPORT\tLABELS\tPAGE\tTICKS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\n", name, p.Viewport, len(p.Labels), orDefault(p.CurrentPage, "-"), p.Ticks)
	}
	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	factory := func(s int64) (*bubble.World, error) {
		c := cfg.Clone()
		c.Seed = s
		return c.NewWorld()
	}
	e := sim.NewEnsemble(factory, numRuns, cfg.Seed).
		WithMetrics(func() []sim.Metric {
			return []sim.Metric{metrics.NewCollisions(), metrics.NewMeanSpeed(), metrics.NewEnergy()}
		})
	if parallel > 0 {
		e = e.WithLimit(parallel)
	}

	logger.Info("ensemble", "runs", numRuns, "ticks", cfg.Ticks, "seed", cfg.Seed)
	start := time.Now()
	results, err := e.Run(cmd.Context(), sim.Config{Ticks: cfg.Ticks, SampleEvery: cfg.Ticks})
	if err != nil {
		return err
	}
	s := sim.Summarize(results)

	fmt.Printf("completed %d runs in %v\n", s.Runs, time.Since(start))
	fmt.Printf("settled: %d/%d\n", s.Settled, s.Runs)
	if s.Settled > 0 {
		fmt.Printf("settle tick: mean %.1f  min %d  max %d\n", s.MeanSettle, s.MinSettle, s.MaxSettle)
	}
	fmt.Printf("collisions per run: %.1f\n", s.MeanCollisions)
	fmt.Println("\nmean metrics:")
	printMetrics(s.Metrics)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	r := automation.NewRunner(nil, logger)
	results, err := r.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Preset:    orDefault(preset, "site"),
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Ticks:     cfg.Ticks,
		Seed:      cfg.Seed,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSETTLED\tCOLLISIONS\tFROZEN\tSPEED\n", strings.ToUpper(sweepParam))
	for _, res := range results {
		settled := "-"
		if res.SettledAt >= 0 {
			settled = strconv.Itoa(res.SettledAt)
		}
		fmt.Fprintf(w, "%.3f\t%s\t%d\t%.2f\t%.3f\n", res.ParamValue, settled, res.Collisions, res.Frozen, res.MeanSpeed)
	}
	return w.Flush()
}

// parseGrid reads name=lo:hi:n.
func parseGrid(arg string) (string, []float64, error) {
	name, rng, ok := strings.Cut(arg, "=")
	parts := strings.Split(rng, ":")
	if !ok || name == "" || len(parts) != 3 {
		return "", nil, fmt.Errorf("grid %q: want name=lo:hi:n", arg)
	}
	lo, err1 := strconv.ParseFloat(parts[0], 64)
	hi, err2 := strconv.ParseFloat(parts[1], 64)
	n, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || n < 1 {
		return "", nil, fmt.Errorf("grid %q: want name=lo:hi:n", arg)
	}
	return name, optim.Linspace(lo, hi, n), nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(gridSpecs))
	ranges := make([][]float64, 0, len(gridSpecs))
	for _, arg := range gridSpecs {
		name, values, err := parseGrid(arg)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	base := automation.Step{Preset: orDefault(preset, "site"), Seed: cfg.Seed, Ticks: cfg.Ticks}
	best, all, err := automation.NewRunner(nil, logger).Search(cmd.Context(), base, names, ranges, searchMetric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(searchMetric))
	for _, c := range all {
		for _, name := range names {
			fmt.Fprintf(w, "%.3f\t", c.Params[name])
		}
		fmt.Fprintf(w, "%.3f\n", c.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest %s=%.3f", searchMetric, best.Value)
	for _, name := range names {
		fmt.Printf(" %s=%.3f", name, best.Params[name])
	}
	fmt.Println()
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}

	logger.Info("scenario", "name", sc.Name, "steps", len(sc.Steps))
	results, err := automation.NewRunner(st, logger).RunScenario(cmd.Context(), sc)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tPRESET\tTICKS\tRESETS\tSETTLED\tRUN")
	for i, res := range results {
		settled := "-"
		if res.Result.Settled() {
			settled = strconv.Itoa(res.Result.SettledAt)
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%s\n", i+1, orDefault(res.Step.Preset, "site"), res.Result.TicksTaken, res.Result.Resets, settled, orDefault(res.RunID, "-"))
	}
	return w.Flush()
}
