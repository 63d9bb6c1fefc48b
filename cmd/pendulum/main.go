package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pendulum/internal/analysis"
	"github.com/san-kum/pendulum/internal/config"
	"github.com/san-kum/pendulum/internal/dynamo"
	"github.com/san-kum/pendulum/internal/export"
	"github.com/san-kum/pendulum/internal/metrics"
	"github.com/san-kum/pendulum/internal/playback"
	"github.com/san-kum/pendulum/internal/scene"
	"github.com/san-kum/pendulum/internal/sim"
	"github.com/san-kum/pendulum/internal/storage"
	"github.com/san-kum/pendulum/internal/tui"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	preset     string
	length     float64
	angle      float64
	omega      float64
	legacyPi   bool
	playing    bool
	fps        int
	dt         float64
	duration   float64
	compress   bool
	noSave     bool
	outFile    string
	params     []string
	follow     bool
	every      float64
	force      bool
)

// main registers the commands and runs the live view when no subcommand is
// given. It exits with status 1 if the command returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "pendulum",
		Short:         "single-point pendulum simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pendulum", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	addModelFlags(rootCmd)
	rootCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	rootCmd.Flags().BoolVar(&playing, "playing", false, "start playing instead of paused")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the pendulum in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addModelFlags(liveCmd)
	liveCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	liveCmd.Flags().BoolVar(&playing, "playing", false, "start playing instead of paused")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a fixed-step simulation and record it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addModelFlags(runCmd)
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().BoolVar(&compress, "compress", false, "store the trace zstd-compressed")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the run")
	runCmd.Flags().StringArrayVar(&params, "param", nil, "set a model parameter as name=value (repeatable)")
	runCmd.Flags().BoolVar(&follow, "follow", false, "stream samples to stdout instead of recording")
	runCmd.Flags().Float64Var(&every, "every", 0.1, "seconds between streamed samples with --follow")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot angle and velocity of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "measure the swing period of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the phase portrait of a run to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "phase.svg", "output file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLENGTH\tANGLE\tOMEGA")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%.2fm\t%.1fdeg\t%.2frad/s\n", name, p.Length, p.AngleDegrees, p.AngularVelocity)
			}
			w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	addModelFlags(configInitCmd)
	configInitCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	configInitCmd.Flags().BoolVar(&playing, "playing", false, "start playing instead of paused")
	configInitCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	configInitCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(liveCmd, runCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportSVGCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&length, "length", config.DefaultLength, "pendulum length in meters")
	cmd.Flags().Float64Var(&angle, "angle", 0, "initial angle in degrees from the horizontal")
	cmd.Flags().Float64Var(&omega, "omega", 0, "initial angular velocity in rad/s")
	cmd.Flags().BoolVar(&legacyPi, "legacy-pi", false, "convert degrees with pi = 3.14")
}

func newLogger(w io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "pendulum",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}), nil
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command, logger *log.Logger) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
		logger.Debug("applied preset", "name", preset)
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		logger.Debug("loaded config", "path", configFile)
	}

	flags := cmd.Flags()
	if flags.Changed("length") {
		cfg.Length = length
	}
	if flags.Changed("angle") {
		cfg.AngleDegrees = angle
	}
	if flags.Changed("omega") {
		cfg.AngularVelocity = omega
	}
	if flags.Changed("legacy-pi") {
		cfg.LegacyPi = legacyPi
	}
	if flags.Changed("playing") {
		cfg.StartPlaying = playing
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	logFile, err := os.OpenFile(filepath.Join(dataDir, "live.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := newLogger(logFile)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd, logger)
	if err != nil {
		return err
	}

	p, err := cfg.NewPendulum()
	if err != nil {
		return err
	}
	clock := playback.New(playback.RealTime{}, cfg.InitialState())
	s := scene.New(p, clock)

	logger.Info("starting live view", "length", cfg.Length, "angle", cfg.AngleDegrees, "state", clock.State())
	return tui.Run(s, tui.Options{
		FPS:         cfg.FPS,
		PauseOnBlur: cfg.PauseOnBlur,
		Logger:      logger,
	})
}

func runSimulation(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd, logger)
	if err != nil {
		return err
	}

	p, err := cfg.NewPendulum()
	if err != nil {
		return err
	}

	if err := config.ApplyParams(p, params); err != nil {
		return err
	}

	simulator := sim.New(p)
	for _, m := range metrics.Defaults(p.Length(), p) {
		simulator.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	simCfg := sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, ValidateState: true}
	logger.Info("running simulation", "params", config.FormatParams(p), "angle", cfg.AngleDegrees, "dt", cfg.Dt, "duration", cfg.Duration)

	if follow {
		return followRun(ctx, simulator, simCfg)
	}

	start := time.Now()
	result, err := simulator.Run(ctx, simCfg)
	if err != nil {
		return err
	}
	for _, e := range result.Errors {
		logger.Warn("simulation stopped early", "err", e)
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("params: %s\n", config.FormatParams(p))
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("energy drift: %.6f\n", result.EnergyDrift)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Length:       p.Length(),
		AngleDegrees: cfg.AngleDegrees,
		Velocity:     cfg.AngularVelocity,
		Gravity:      p.Gravity,
		LegacyPi:     cfg.LegacyPi,
		Dt:           cfg.Dt,
		Duration:     cfg.Duration,
		Compressed:   compress,
	}, result)
	if err != nil {
		return err
	}
	logger.Info("run saved", "id", runID, "dir", filepath.Join(dataDir, runID))
	fmt.Printf("run id: %s\n", runID)

	return nil
}

// followRun prints one sample every --every seconds of simulated time until
// the run ends or is interrupted.
func followRun(ctx context.Context, simulator *sim.Simulator, cfg sim.Config) error {
	stride := int(math.Max(1, math.Round(every/cfg.Dt)))

	fmt.Printf("%10s %12s %12s %14s\n", "time", "angle", "velocity", "acceleration")
	step := 0
	err := simulator.RunWithCallback(ctx, cfg, func(x dynamo.State, t float64) bool {
		if step%stride == 0 {
			fmt.Printf("%10.3f %12.6f %12.6f %14.6f\n", t, x[dynamo.Angle], x[dynamo.Velocity], x[dynamo.Acceleration])
		}
		step++
		return true
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func initConfig(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	path := "pendulum.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg, err := resolveConfig(cmd, logger)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	logger.Info("config written", "path", path)
	return nil
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
	fmt.Fprintln(w, "ID\tTIME\tLENGTH\tANGLE\tDURATION\tDT\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2fm\t%.1fdeg\t%.2fs\t%.4fs\t%.4f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Length,
			run.AngleDegrees,
			run.Duration,
			run.Dt,
			run.EnergyDrift,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []dynamo.State, []float64, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(states) == 0 {
		return nil, nil, nil, errors.New("no data")
	}
	return meta, states, times, nil
}

func column(states []dynamo.State, idx int) []float64 {
	data := make([]float64, len(states))
	for i, s := range states {
		if idx < len(s) {
			data[i] = s[idx]
		}
	}
	return data
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, states, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("length: %.2f m  angle: %.1f deg\n", meta.Length, meta.AngleDegrees)
	fmt.Printf("samples: %d\n\n", len(states))

	captions := []string{"angle (rad)", "angular velocity (rad/s)", "angular acceleration (rad/s^2)"}
	for idx, caption := range captions {
		graph := asciigraph.Plot(column(states, idx),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, states, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	period := analysis.SwingPeriod(column(states, dynamo.Angle), meta.Dt)
	fmt.Printf("run: %s\n", meta.ID)
	if period == 0 {
		fmt.Println("no oscillation detected")
		return nil
	}
	fmt.Printf("swing period: %.3f s\n", period)
	fmt.Printf("frequency: %.3f hz\n", 1/period)

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, states, times, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if outFile == "" {
		return export.WriteJSON(os.Stdout, *meta, states, times)
	}
	if err := export.JSONFile(outFile, *meta, states, times); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, states, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	svg := export.TrajectoryToSVG(export.PhasePoints(states), 800, 600, "#00ff88")
	if svg == "" {
		return errors.New("not enough points for a phase portrait")
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}
