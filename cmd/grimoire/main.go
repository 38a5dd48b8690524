package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/grimoire/internal/automation"
	"github.com/san-kum/grimoire/internal/config"
	"github.com/san-kum/grimoire/internal/draw"
	"github.com/san-kum/grimoire/internal/experiment"
	"github.com/san-kum/grimoire/internal/export"
	"github.com/san-kum/grimoire/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configFile string
	preset     string
	seed       uint64
	fps        int
	width      int
	height     int
	duration   float64
	theme      string
	logLevel   string
	logFile    string
	// render
	outFile string
	svgFile string
	every   int
	// stats
	csvOut      bool
	jsonOut     bool
	withSamples bool
	graphHeight int
	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	sweepRuns  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "grimoire",
		Short:        "magic book particle effect",
		SilenceUsage: true,
		RunE:         runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.IntVar(&width, "width", config.DefaultWidth, "surface width in pixels (headless)")
	pf.IntVar(&height, "height", config.DefaultHeight, "surface height in pixels (headless)")
	pf.Float64Var(&duration, "duration", config.DefaultDuration, "run length in milliseconds (headless)")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "open the book in the terminal",
		RunE:  runLive,
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render a headless run to an animated GIF",
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "grimoire.gif", "output GIF path")
	renderCmd.Flags().StringVar(&svgFile, "svg", "", "also write the last frame as SVG")
	renderCmd.Flags().IntVar(&every, "every", 2, "keep one frame out of every N")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "run headless and report population statistics",
		RunE:  runStats,
	}
	statsCmd.Flags().BoolVar(&csvOut, "csv", false, "write per-frame stats as CSV")
	statsCmd.Flags().BoolVar(&jsonOut, "json", false, "write the report as JSON")
	statsCmd.Flags().BoolVar(&withSamples, "samples", false, "include per-frame samples in the JSON report")
	statsCmd.Flags().IntVar(&graphHeight, "graph-height", 10, "population plot height")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one effect parameter over seed ensembles",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "emit_interval_ms", "parameter ("+strings.Join(automation.ParamNames(), ", ")+")")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 20, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 120, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of values")
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 4, "seeds per value")
	sweepCmd.Flags().IntVar(&graphHeight, "graph-height", 10, "plot height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "presets:")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(out, "  %-8s theme=%s emit=%gms burst=%d\n", name, p.Theme, p.Effect.EmitInterval, p.Effect.OpenBurst)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	rootCmd.AddCommand(liveCmd, renderCmd, statsCmd, sweepCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig builds the run configuration: preset, then config file, then
// any flag set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("duration") {
		cfg.DurationMs = duration
	}
	if flags.Changed("theme") {
		if !slices.Contains(viz.ThemeNames(), theme) {
			return nil, fmt.Errorf("unknown theme: %s (available: %v)", theme, viz.ThemeNames())
		}
		cfg.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging installs the default logger. The terminal view owns stdout
// and stderr, so it only logs to a file.
func setupLogging(tui bool) (func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", logLevel, err)
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	switch {
	case logFile != "" && tui:
		f, err := tea.LogToFile(logFile, "grimoire")
		if err != nil {
			return nil, err
		}
		w, closer = f, func() { f.Close() }
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, err
		}
		w, closer = f, func() { f.Close() }
	case tui:
		w = io.Discard
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return closer, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	closeLog, err := setupLogging(true)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	slog.Info("opening book", "preset", preset, "fps", cfg.FPS, "theme", cfg.Theme)
	return viz.Run(cfg)
}

// headless runs cfg to completion, interruptible with Ctrl-C.
func headless(cfg *config.Config, observe func(*experiment.Experiment)) (*experiment.Result, error) {
	exp, err := experiment.New(cfg)
	if err != nil {
		return nil, err
	}
	if observe != nil {
		observe(exp)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return exp.Run(ctx)
}

func background(cfg *config.Config) colorful.Color {
	bg, err := colorful.Hex(string(viz.GetTheme(cfg.Theme).Background))
	if err != nil {
		return colorful.Color{}
	}
	return bg
}

func runRender(cmd *cobra.Command, args []string) error {
	closeLog, err := setupLogging(false)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if every < 1 {
		return fmt.Errorf("--every must be at least 1, got %d", every)
	}

	bg := background(cfg)
	delay := int(math.Max(1, math.Round(float64(every)*cfg.FrameInterval()/10)))
	var anim *export.GIF
	res, err := headless(cfg, func(exp *experiment.Experiment) {
		anim = export.NewGIF(exp.Surface(), bg, every, delay)
		exp.AddObserver(anim)
	})
	if err != nil {
		return err
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	if err := anim.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", outFile, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if info, err := os.Stat(outFile); err == nil {
		fmt.Fprintf(out, "wrote %s: %d frames, %s\n", filepath.Base(outFile), anim.Len(), humanize.Bytes(uint64(info.Size())))
	}

	if svgFile != "" {
		size := draw.Size{W: float64(cfg.Width), H: float64(cfg.Height)}
		if err := os.WriteFile(svgFile, []byte(export.FrameToSVG(res.Last, size, bg.Hex())), 0644); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", filepath.Base(svgFile))
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	closeLog, err := setupLogging(false)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	res, err := headless(cfg, nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case csvOut:
		return res.Series.WriteCSV(out)
	case jsonOut:
		return export.WriteJSON(out, export.NewReport(preset, cfg.Seed, cfg.FPS, cfg.DurationMs, res, withSamples))
	}

	if res.Frames > 1 {
		graph := asciigraph.Plot(res.Series.Live(),
			asciigraph.Height(graphHeight),
			asciigraph.Width(80),
			asciigraph.Caption("live particles per frame"),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}

	sum := res.Summary
	fmt.Fprintf(out, "frames:     %s (%s at %d fps)\n", humanize.Comma(int64(sum.Frames)), humanize.FtoaWithDigits(cfg.DurationMs/1000, 2)+"s", cfg.FPS)
	fmt.Fprintf(out, "spawned:    %s (%s continuous, %s burst)\n",
		humanize.Comma(int64(sum.Spawned)), humanize.Comma(int64(sum.Continuous)), humanize.Comma(int64(sum.Burst)))
	fmt.Fprintf(out, "population: mean %.1f ± %.1f, peak %.0f, live at end %d\n", sum.Mean, sum.StdDev, sum.Peak, res.Live)
	fmt.Fprintln(out, "\nmetrics:")
	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %.3f\n", name, res.Metrics[name])
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	closeLog, err := setupLogging(false)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	results, err := automation.RunSweep(ctx, &automation.Sweep{
		Base:  cfg,
		Param: sweepParam,
		Min:   sweepMin,
		Max:   sweepMax,
		Steps: sweepSteps,
		Runs:  sweepRuns,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMEAN\tSTDDEV\tPEAK\tSPAWNED\n", strings.ToUpper(sweepParam))
	means := make([]float64, len(results))
	for i, r := range results {
		means[i] = r.MeanPopulation
		fmt.Fprintf(w, "%.4g\t%.1f\t%.1f\t%.0f\t%s\n",
			r.Value, r.MeanPopulation, r.StdDev, r.PeakPopulation, humanize.Comma(int64(math.Round(r.Spawned))))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, asciigraph.Plot(means,
		asciigraph.Height(graphHeight),
		asciigraph.Caption("mean population by "+sweepParam),
	))
	return nil
}
