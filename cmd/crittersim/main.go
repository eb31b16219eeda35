package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/crittersim/internal/analysis"
	"github.com/san-kum/crittersim/internal/config"
	"github.com/san-kum/crittersim/internal/export"
	"github.com/san-kum/crittersim/internal/metrics"
	"github.com/san-kum/crittersim/internal/optim"
	"github.com/san-kum/crittersim/internal/scene"
	"github.com/san-kum/crittersim/internal/sim"
	"github.com/san-kum/crittersim/internal/storage"
	"github.com/san-kum/crittersim/internal/viz"
)

var (
	dataDir    string
	configFile string
	dt         float64
	duration   float64
	seed       int64
	frameRate  int
	nodeIndex  int
	axisName   string
	outFile    string
	settleTime float64
	svgNode    int
	tuneMetric string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "crittersim",
		Short: "articulated creature simulation lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".crittersim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a scene headless and record the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScene,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration override")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().StringVar(&configFile, "config", "", "scene file (yaml)")

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "run a scene with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	liveCmd.Flags().StringVar(&configFile, "config", "", "scene file (yaml)")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenes",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tNODES\tCONSTRAINTS\tLIMBS")
			for _, name := range config.ListPresets() {
				s := config.Preset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\n",
					name, len(s.Nodes), len(s.Constraints), len(s.Limbs))
			}
			return w.Flush()
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "check a scene file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.Load(args[0])
			if err != nil {
				return err
			}
			w, _, err := scene.Build(s, 0)
			if err != nil {
				return err
			}
			fmt.Printf("ok: %d nodes, %d constraints, %d limbs, %d groups\n",
				len(w.Nodes), len(w.Constraints), len(w.Limbs), w.GroupCount())
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a node track from a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&nodeIndex, "node", 0, "node index")
	plotCmd.Flags().StringVar(&axisName, "axis", "x", "coordinate to plot (x or y)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a node track",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&nodeIndex, "node", 0, "node index")
	analyzeCmd.Flags().StringVar(&axisName, "axis", "y", "coordinate to analyze (x or y)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [scene|run_id]",
		Short: "render a scene snapshot or a recorded trail to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <name>.svg)")
	exportSVGCmd.Flags().Float64Var(&settleTime, "settle", 2.0, "seconds to simulate before a scene snapshot")
	exportSVGCmd.Flags().IntVar(&svgNode, "node", 0, "node index for a run trail")

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "benchmark a scene",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScene,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune [scene]",
		Short: "grid-search damping parameters against a metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tuneScene,
	}
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "constraint_residual", "metric to minimize")
	tuneCmd.Flags().Float64Var(&duration, "time", 3.0, "run duration per combination")

	rootCmd.AddCommand(runCmd, liveCmd, presetsCmd, validateCmd, listCmd,
		plotCmd, analyzeCmd, exportSVGCmd, benchCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadScene resolves the scene: an explicit --config file wins, then a
// preset by name, defaulting to the worm.
func loadScene(args []string) (*config.Scene, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	name := "worm"
	if len(args) > 0 {
		name = args[0]
	}
	s := config.Preset(name)
	if s == nil {
		return nil, fmt.Errorf("unknown scene: %s (available: %v)", name, config.ListPresets())
	}
	return s, nil
}

func defaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewKineticEnergy(),
		metrics.NewMaxSpeed(),
		metrics.NewConstraintResidual(),
		metrics.NewCollisionLoad(),
		metrics.NewStepCadence(),
	}
}

func runScene(cmd *cobra.Command, args []string) error {
	s, err := loadScene(args)
	if err != nil {
		return err
	}

	w, cfg, err := scene.Build(s, seed)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	eng := sim.New(w, cfg)
	for _, m := range defaultMetrics() {
		eng.AddMetric(m)
	}

	fmt.Printf("running %s...\n", s.Name)
	start := time.Now()
	result, err := eng.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if len(result.Errors) > 0 {
		fmt.Printf("stopped early: %v\n", result.Errors[0])
	}

	runID, err := st.Save(s.Name, cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.Frames)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	s, err := loadScene(args)
	if err != nil {
		return err
	}

	build := func() (*sim.Engine, error) {
		w, cfg, err := scene.Build(s, seed)
		if err != nil {
			return nil, err
		}
		// The live view owns the clock.
		cfg.Duration = 1e9
		return sim.New(w, cfg), nil
	}

	eng, err := build()
	if err != nil {
		return err
	}

	m := viz.NewModel(s.Name, eng, build, frameRate)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tDURATION\tDT\tFRAMES\tNODES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Frames,
			run.Nodes,
		)
	}
	return w.Flush()
}

// trackOf pulls one coordinate series out of recorded snapshots.
func trackOf(states []sim.State, node int, axis string) ([]float64, error) {
	idx := 2 * node
	if axis == "y" {
		idx++
	} else if axis != "x" {
		return nil, fmt.Errorf("axis must be x or y, got %q", axis)
	}
	if len(states) == 0 || idx >= len(states[0]) {
		return nil, fmt.Errorf("node %d not present in recorded states", node)
	}
	return analysis.Component(states, idx), nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	data, err := trackOf(states, nodeIndex, axisName)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\nscene: %s\nsamples: %d\n\n", meta.ID, meta.Scene, len(data))
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("node %d %s vs time", nodeIndex, axisName)),
	)
	fmt.Println(graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	data, err := trackOf(states, nodeIndex, axisName)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\nscene: %s\n\n", meta.ID, meta.Scene)

	ps := analysis.PowerSpectrum(data)
	if len(ps) == 0 {
		return fmt.Errorf("track too short for analysis")
	}
	plotData := ps
	if len(ps) > 4 {
		plotData = ps[:len(ps)/4]
	}
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (node %d %s)", nodeIndex, axisName)),
	)
	fmt.Println(graph)
	fmt.Println()

	freq, power := analysis.DominantFrequency(data, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz (power %.3g)\n", freq, power)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	name := args[0]
	st := storage.New(dataDir)

	out := outFile
	if out == "" {
		out = strings.ReplaceAll(name, "/", "_") + ".svg"
	}

	// A stored run id renders as a trail; otherwise the argument names
	// a scene to snapshot.
	if _, err := st.Load(name); err == nil {
		states, _, err := st.LoadStates(name)
		if err != nil {
			return err
		}
		svg := export.TrailSVG(states, svgNode, 800, 600)
		if svg == "" {
			return fmt.Errorf("node %d has no recorded trail", svgNode)
		}
		if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote trail of node %d to %s\n", svgNode, out)
		return nil
	}

	s, err := loadScene(args)
	if err != nil {
		return err
	}
	w, cfg, err := scene.Build(s, seed)
	if err != nil {
		return err
	}
	eng := sim.New(w, cfg)
	for t := 0.0; t < settleTime; t += cfg.Dt {
		if err := eng.Tick(cfg.Dt); err != nil {
			return err
		}
	}
	if err := os.WriteFile(out, []byte(export.WorldSVG(w, 800, 600)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s snapshot to %s\n", s.Name, out)
	return nil
}

func benchScene(cmd *cobra.Command, args []string) error {
	s, err := loadScene(args)
	if err != nil {
		return err
	}

	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{1.0 / 240, 1.0 / 60, 1.0 / 30}

	fmt.Printf("benchmarking %s\n\n", s.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tFRAMES\tTIME\tFRAMES/SEC")

	for _, dur := range durations {
		for _, step := range dts {
			world, cfg, err := scene.Build(s, 42)
			if err != nil {
				return err
			}
			cfg.Dt = step
			cfg.Duration = dur

			eng := sim.New(world, cfg)
			start := time.Now()
			result, err := eng.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			perSec := float64(result.Frames) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
				dur, step, result.Frames, elapsed, perSec)
		}
	}
	return w.Flush()
}

func tuneScene(cmd *cobra.Command, args []string) error {
	s, err := loadScene(args)
	if err != nil {
		return err
	}

	gs := optim.NewGridSearch(
		[]string{"air_damping", "impact_damping"},
		[][]float64{
			optim.Span(0.90, 0.99, 4),
			optim.Span(0.1, 0.9, 5),
		},
	)

	build := func(params map[string]float64) (*sim.Engine, error) {
		world, cfg, err := scene.Build(s, 42)
		if err != nil {
			return nil, err
		}
		cfg.AirDamping = params["air_damping"]
		cfg.Duration = duration
		world.Playground.ImpactDamping = params["impact_damping"]

		eng := sim.New(world, cfg)
		for _, m := range defaultMetrics() {
			eng.AddMetric(m)
		}
		return eng, nil
	}

	fmt.Printf("tuning %s to minimize %s...\n", s.Name, tuneMetric)
	start := time.Now()
	best, val, err := gs.Search(context.Background(), build, tuneMetric)
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("no combination produced metric %q", tuneMetric)
	}

	fmt.Printf("searched in %v\n\nbest %s: %.6f\n", time.Since(start), tuneMetric, val)
	names := make([]string, 0, len(best))
	for name := range best {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s = %.4f\n", name, best[name])
	}
	return nil
}
