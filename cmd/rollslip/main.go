package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/rollslip/rollslip/internal/analysis"
	"github.com/rollslip/rollslip/internal/config"
	"github.com/rollslip/rollslip/internal/contact"
	"github.com/rollslip/rollslip/internal/drive"
	"github.com/rollslip/rollslip/internal/dynamics"
	"github.com/rollslip/rollslip/internal/experiment"
	"github.com/rollslip/rollslip/internal/integrators"
	"github.com/rollslip/rollslip/internal/optim"
	"github.com/rollslip/rollslip/internal/sim"
	"github.com/rollslip/rollslip/internal/storage"
	"github.com/rollslip/rollslip/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	dt       float64
	duration float64
	v0       float64
	omega0   float64

	mass    float64
	radius  float64
	inertia float64
	gravity float64
	muS     float64
	muK     float64
	ke      float64
	kr      float64
	etaT    float64
	etaR    float64

	driveName  string
	driveForce float64
	driveTq    float64
	forceRate  float64
	torqueRate float64

	integrator string
	frameRate  int

	// Plot/phase column selection
	plotColumns []string
	xColumn     string
	yColumn     string

	// Sweep
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int

	// Calibration
	targetDistance float64
	gridSteps      int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rollslip",
		Short: "stick-slip rolling contact simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rollslip", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run columns",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&plotColumns, "columns", []string{"v", "roll_speed", "friction", "slip"}, "columns to plot")
	plotCmd.Flags().Float64Var(&radius, "radius", config.Default().Body.Radius, "contact radius for ω·r, m")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of two columns",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&xColumn, "x", "v", "x-axis column")
	phaseCmd.Flags().StringVar(&yColumn, "y", "roll_speed", "y-axis column")
	phaseCmd.Flags().Float64Var(&radius, "radius", config.Default().Body.Radius, "contact radius for ω·r, m")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "stick-slip frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal view",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportMeta,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export full run data as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "print run samples as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [parameter]",
		Short: "sweep one contact parameter across independent runs",
		Long:  "parameter is one of: mu_s, mu_k, ke, kr, eta_t, eta_r",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first parameter value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 0, "last parameter value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	calibrateCmd := &cobra.Command{
		Use:   "calibrate",
		Short: "fit mu_k and rolling stiffness to a target stopping distance",
		RunE:  runCalibrate,
	}
	addScenarioFlags(calibrateCmd)
	calibrateCmd.Flags().Float64Var(&targetDistance, "target-distance", 0, "observed travel distance, m")
	calibrateCmd.Flags().IntVar(&gridSteps, "grid", 9, "grid resolution per parameter")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, phaseCmd, analyzeCmd, liveCmd,
		exportCmd, exportJSONCmd, exportCSVCmd, presetsCmd, sweepCmd, calibrateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	def := config.Default()

	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "scenario preset")

	cmd.Flags().Float64Var(&dt, "dt", def.Dt, "timestep, s")
	cmd.Flags().Float64Var(&duration, "time", def.Duration, "duration, s")
	cmd.Flags().Float64Var(&v0, "v0", def.Init.Velocity, "initial velocity, m/s")
	cmd.Flags().Float64Var(&omega0, "omega0", def.Init.Spin, "initial spin, rad/s")

	cmd.Flags().Float64Var(&mass, "mass", def.Body.Mass, "mass, kg")
	cmd.Flags().Float64Var(&radius, "radius", def.Body.Radius, "contact radius, m")
	cmd.Flags().Float64Var(&inertia, "inertia", def.Body.Inertia, "moment of inertia, kg·m²")
	cmd.Flags().Float64Var(&gravity, "gravity", def.Contact.Gravity, "gravity, m/s²")
	cmd.Flags().Float64Var(&muS, "mu-s", def.Contact.MuStatic, "static friction coefficient")
	cmd.Flags().Float64Var(&muK, "mu-k", def.Contact.MuKinetic, "kinetic friction coefficient")
	cmd.Flags().Float64Var(&ke, "ke", def.Contact.TangentStiffness, "tangential stiffness, N/m")
	cmd.Flags().Float64Var(&kr, "kr", def.Contact.RollingStiffness, "rolling stiffness, N·m/rad")
	cmd.Flags().Float64Var(&etaT, "eta-t", def.Contact.TangentDamping, "tangential damping ratio")
	cmd.Flags().Float64Var(&etaR, "eta-r", def.Contact.RollingDamping, "rolling damping ratio")

	cmd.Flags().StringVar(&driveName, "drive", def.Drive.Type, "drive (none, constant, ramp)")
	cmd.Flags().Float64Var(&driveForce, "force", 0, "constant drive force, N")
	cmd.Flags().Float64Var(&driveTq, "torque", 0, "constant drive torque, N·m")
	cmd.Flags().Float64Var(&forceRate, "force-rate", 0, "ramp force rate, N/s")
	cmd.Flags().Float64Var(&torqueRate, "torque-rate", 0, "ramp torque rate, N·m/s")

	cmd.Flags().StringVar(&integrator, "integrator", def.Integrator, "integration scheme")
}

// buildConfig resolves precedence: explicit flags override a config
// file, which overrides a preset, which overrides the defaults.
func buildConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.Default()
	scenario := "benchmark"

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		copied := *p
		cfg = &copied
		scenario = preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		scenario = trimExt(filepath.Base(configFile))
	}

	flagOverrides := []struct {
		name string
		dst  *float64
		src  float64
	}{
		{"dt", &cfg.Dt, dt},
		{"time", &cfg.Duration, duration},
		{"v0", &cfg.Init.Velocity, v0},
		{"omega0", &cfg.Init.Spin, omega0},
		{"mass", &cfg.Body.Mass, mass},
		{"radius", &cfg.Body.Radius, radius},
		{"inertia", &cfg.Body.Inertia, inertia},
		{"gravity", &cfg.Contact.Gravity, gravity},
		{"mu-s", &cfg.Contact.MuStatic, muS},
		{"mu-k", &cfg.Contact.MuKinetic, muK},
		{"ke", &cfg.Contact.TangentStiffness, ke},
		{"kr", &cfg.Contact.RollingStiffness, kr},
		{"eta-t", &cfg.Contact.TangentDamping, etaT},
		{"eta-r", &cfg.Contact.RollingDamping, etaR},
		{"force", &cfg.Drive.Force, driveForce},
		{"torque", &cfg.Drive.Torque, driveTq},
		{"force-rate", &cfg.Drive.ForceRate, forceRate},
		{"torque-rate", &cfg.Drive.TorqueRate, torqueRate},
	}
	for _, o := range flagOverrides {
		if cmd.Flags().Changed(o.name) {
			*o.dst = o.src
		}
	}
	if cmd.Flags().Changed("drive") {
		cfg.Drive.Type = driveName
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, scenario, nil
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, scenario, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %s scenario...\n", scenario)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(scenario, cfg.Dt, cfg.Duration, result)
	if err != nil {
		return err
	}

	final := result.Final()
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("final: v=%.4f m/s  ω·r=%.4f m/s  x=%.4f m\n",
		final.V, final.Omega*cfg.Body.Radius, final.X)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.6fs\t%d\n",
			run.ID, run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration, run.Dt, run.Steps)
	}
	return w.Flush()
}

// column extracts one named series from the samples. roll_speed is the
// derived ω·r trace used to eyeball the no-slip convergence.
func column(samples []dynamics.Sample, radius float64, name string) ([]float64, bool) {
	data := make([]float64, len(samples))
	for i, s := range samples {
		switch name {
		case "x":
			data[i] = s.X
		case "v":
			data[i] = s.V
		case "a":
			data[i] = s.A
		case "theta":
			data[i] = s.Theta
		case "omega":
			data[i] = s.Omega
		case "alpha":
			data[i] = s.Alpha
		case "roll_speed":
			data[i] = s.Omega * radius
		case "friction":
			data[i] = s.Friction
		case "rolling":
			data[i] = s.Rolling
		case "elastic_force":
			data[i] = s.ElasticForce
		case "damping_force":
			data[i] = s.DampingForce
		case "slip":
			data[i] = s.Slip
		case "excursion":
			data[i] = s.Excursion
		default:
			return nil, false
		}
	}
	return data, true
}

func loadRun(runID string) (*storage.RunMetadata, []dynamics.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, samples, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(samples))

	for _, name := range plotColumns {
		data, ok := column(samples, radius, name)
		if !ok {
			return fmt.Errorf("unknown column: %s", name)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	x, ok := column(samples, radius, xColumn)
	if !ok {
		return fmt.Errorf("unknown column: %s", xColumn)
	}
	y, ok := column(samples, radius, yColumn)
	if !ok {
		return fmt.Errorf("unknown column: %s", yColumn)
	}

	fmt.Printf("phase portrait: %s (%s vs %s)\n\n", meta.ID, yColumn, xColumn)
	portrait := analysis.NewPortrait(xColumn, yColumn, x, y)
	fmt.Print(portrait.Render(80, 24))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	data, _ := column(samples, radius, "friction")

	fmt.Printf("stick-slip analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n\n", meta.Scenario)

	ps := analysis.PowerSpectrum(data)
	plotData := ps[:len(ps)/4]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("friction force power spectrum"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	params, err := cfg.Params()
	if err != nil {
		return err
	}
	stepper, err := integrators.New(cfg.Integrator)
	if err != nil {
		return err
	}
	drv, err := drive.New(cfg.Drive.Type, cfg.DriveParams())
	if err != nil {
		return err
	}

	model := viz.NewModel(params, stepper, drv, cfg.InitState(), cfg.Dt, cfg.Duration, frameRate)
	return viz.Run(model)
}

func exportMeta(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, samples)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	path := filepath.Join(dataDir, args[0], "samples.csv")
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(os.Stdout, file)
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	param := args[0]

	cfg, _, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("from") || !cmd.Flags().Changed("to") {
		return fmt.Errorf("sweep requires --from and --to")
	}
	if sweepSteps < 2 {
		return fmt.Errorf("sweep requires at least 2 steps")
	}

	values := optim.Range(sweepFrom, sweepTo, sweepSteps)
	variants := make([]sim.Variant, 0, len(values))
	for _, v := range values {
		varied := *cfg
		if err := setContactParam(&varied, param, v); err != nil {
			return err
		}
		params, err := varied.Params()
		if err != nil {
			return fmt.Errorf("%s=%g: %w", param, v, err)
		}
		variants = append(variants, sim.Variant{
			Label:  fmt.Sprintf("%s=%g", param, v),
			Params: params,
			Init:   varied.InitState(),
		})
	}

	// Validate the names once; the factories then build a fresh
	// instance per variant.
	if _, err := integrators.New(cfg.Integrator); err != nil {
		return err
	}
	if _, err := drive.New(cfg.Drive.Type, cfg.DriveParams()); err != nil {
		return err
	}
	drv := func() dynamics.Drive {
		d, _ := drive.New(cfg.Drive.Type, cfg.DriveParams())
		return d
	}
	stepper := func() dynamics.Stepper {
		s, _ := integrators.New(cfg.Integrator)
		return s
	}

	fmt.Printf("sweeping %s across %d runs...\n\n", param, len(variants))
	sweep := sim.NewSweep(stepper, drv, variants)
	results, err := sweep.Run(context.Background(), cfg.RunConfig())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tFINAL V\tFINAL ω·r\tDISTANCE\tSLIP TIME")
	for i, res := range results {
		final := res.Final()
		slipTime := slipSeconds(res, cfg.Dt)
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.3fs\n",
			variants[i].Label, final.V, final.Omega*variants[i].Params.Radius, final.X, slipTime)
	}
	return w.Flush()
}

func slipSeconds(res *dynamics.Result, dt float64) float64 {
	slipping := 0
	for s := range res.Series() {
		if s.SlideMode == contact.Slip {
			slipping++
		}
	}
	return float64(slipping) * dt
}

func setContactParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "mu_s":
		cfg.Contact.MuStatic = v
	case "mu_k":
		cfg.Contact.MuKinetic = v
	case "ke":
		cfg.Contact.TangentStiffness = v
	case "kr":
		cfg.Contact.RollingStiffness = v
	case "eta_t":
		cfg.Contact.TangentDamping = v
	case "eta_r":
		cfg.Contact.RollingDamping = v
	default:
		return fmt.Errorf("unknown sweep parameter: %s", name)
	}
	return nil
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	cfg, _, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("target-distance") {
		return fmt.Errorf("calibrate requires --target-distance")
	}

	gs := optim.NewGridSearch(
		[]string{"mu_k", "kr"},
		[][]float64{
			optim.Range(0.05, cfg.Contact.MuStatic, gridSteps),
			optim.Range(cfg.Contact.RollingStiffness/10, cfg.Contact.RollingStiffness*10, gridSteps),
		},
	)

	objective := func(ctx context.Context, p map[string]float64) (float64, error) {
		candidate := *cfg
		candidate.Contact.MuKinetic = p["mu_k"]
		candidate.Contact.RollingStiffness = p["kr"]

		exp, err := experiment.New(&candidate)
		if err != nil {
			return 0, err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return 0, err
		}
		miss := result.Final().X - targetDistance
		return miss * miss, nil
	}

	fmt.Printf("calibrating mu_k and kr against distance %.4f m...\n", targetDistance)
	start := time.Now()
	best, cost, err := gs.Search(context.Background(), objective)
	if err != nil {
		return err
	}

	fmt.Printf("finished in %v\n", time.Since(start))
	if best == nil {
		return fmt.Errorf("no stable candidate found")
	}
	fmt.Printf("best: mu_k=%.4f  kr=%.4g  (distance error %.4g m)\n",
		best["mu_k"], best["kr"], cost)
	return nil
}
