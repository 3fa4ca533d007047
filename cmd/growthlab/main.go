package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/san-kum/growthlab/internal/analysis"
	"github.com/san-kum/growthlab/internal/config"
	"github.com/san-kum/growthlab/internal/experiment"
	"github.com/san-kum/growthlab/internal/logger"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	variant    string
	logMode    string
	format     string
	// Parameter set
	prodB float64
	sRate float64
	nRate float64
	alpha float64
	delta float64
	phi   float64
	// Solver
	method  string
	lo      float64
	hi      float64
	tol     float64
	maxIter int
	// Sweep
	sweepParam string
	values     []float64
	from       float64
	to         float64
	steps      int
	workers    int
	// Transition diagram
	kMin   float64
	kMax   float64
	points int
	// Capital path
	k0      float64
	periods int

	log *logger.Logger
)

// main registers the growthlab commands and flags and executes the root command.
// It exits the process with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "growthlab",
		Short: "solow growth model steady states and sweeps",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			log, err = logger.New(logMode)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&variant, "variant", "basic", "model variant (basic, externality)")
	pf.StringVar(&logMode, "log-mode", "quiet", "log mode (dev, prod, quiet)")
	pf.StringVar(&format, "format", "table", "output format (table, json)")
	pf.Float64Var(&prodB, "B", config.DefaultB, "productivity scale")
	pf.Float64Var(&sRate, "s", config.DefaultS, "savings rate")
	pf.Float64Var(&nRate, "n", config.DefaultN, "population growth rate")
	pf.Float64Var(&alpha, "alpha", config.DefaultAlpha, "capital elasticity")
	pf.Float64Var(&delta, "delta", config.DefaultDelta, "depreciation rate (basic)")
	pf.Float64Var(&phi, "phi", config.DefaultPhi, "productivity externality exponent (externality)")
	pf.StringVar(&method, "method", "closed", "solver method (closed, numeric)")
	pf.Float64Var(&lo, "lo", 0.1, "bracket lower bound (numeric)")
	pf.Float64Var(&hi, "hi", 1000, "bracket upper bound (numeric)")
	pf.Float64Var(&tol, "tol", 1e-10, "residual tolerance")
	pf.IntVar(&maxIter, "max-iter", 200, "bisection iteration budget")

	steadyCmd := &cobra.Command{
		Use:   "steady",
		Short: "solve the steady state",
		Args:  cobra.NoArgs,
		RunE:  runSteady,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "steady state across values of one parameter",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "s", "parameter to sweep")
	sweepCmd.Flags().Float64SliceVar(&values, "values", nil, "comma separated parameter values")
	sweepCmd.Flags().Float64Var(&from, "from", 0, "range start (with --steps)")
	sweepCmd.Flags().Float64Var(&to, "to", 0, "range end (with --steps)")
	sweepCmd.Flags().IntVar(&steps, "steps", 0, "number of evenly spaced values from --from to --to")
	sweepCmd.Flags().IntVar(&workers, "workers", 1, "concurrent solves")

	transitionCmd := &cobra.Command{
		Use:   "transition",
		Short: "sample k against next-period k",
		Args:  cobra.NoArgs,
		RunE:  runTransition,
	}
	transitionCmd.Flags().Float64Var(&kMin, "k-min", analysis.DefaultKMin, "display domain start")
	transitionCmd.Flags().Float64Var(&kMax, "k-max", analysis.DefaultKMax, "display domain end")
	transitionCmd.Flags().IntVar(&points, "points", analysis.DefaultPoints, "samples")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "iterate capital per worker from an initial stock",
		Args:  cobra.NoArgs,
		RunE:  runPath,
	}
	pathCmd.Flags().Float64Var(&k0, "k0", config.DefaultK0, "initial capital per worker")
	pathCmd.Flags().IntVar(&periods, "periods", config.DefaultPeriods, "periods to simulate")

	deriveCmd := &cobra.Command{
		Use:   "derive",
		Short: "print the recurrence and its closed-form steady state",
		Args:  cobra.NoArgs,
		RunE:  runDerive,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [variant]",
		Short: "list available presets for a variant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for variant: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(steadyCmd, sweepCmd, transitionCmd, pathCmd, deriveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves defaults, preset, config file and flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	flags := cmd.Flags()

	if preset != "" {
		p := config.GetPreset(variant, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(variant))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if flags.Changed("variant") || (preset == "" && configFile == "") {
		cfg.Variant = variant
	}
	if flags.Changed("B") {
		cfg.Params.B = prodB
	}
	if flags.Changed("s") {
		cfg.Params.S = sRate
	}
	if flags.Changed("n") {
		cfg.Params.N = nRate
	}
	if flags.Changed("alpha") {
		cfg.Params.Alpha = alpha
	}
	if flags.Changed("delta") {
		cfg.Params.Delta = delta
	}
	if flags.Changed("phi") {
		cfg.Params.Phi = phi
	}
	if flags.Changed("method") {
		cfg.Solver.Method = method
	}
	if flags.Changed("lo") || flags.Changed("hi") {
		cfg.Solver.Bracket = []float64{lo, hi}
	}
	if flags.Changed("tol") {
		cfg.Solver.Tolerance = tol
	}
	if flags.Changed("max-iter") {
		cfg.Solver.MaxIter = maxIter
	}

	if flags.Lookup("param") != nil {
		if flags.Changed("param") {
			cfg.Sweep.Param = sweepParam
		}
		if flags.Changed("values") {
			cfg.Sweep.Values = values
		}
		if flags.Changed("steps") {
			cfg.Sweep.Values = analysis.Linspace(from, to, steps)
		}
		if flags.Changed("workers") {
			cfg.Sweep.Workers = workers
		}
	}
	if flags.Lookup("k-min") != nil {
		if flags.Changed("k-min") {
			cfg.Transition.KMin = kMin
		}
		if flags.Changed("k-max") {
			cfg.Transition.KMax = kMax
		}
		if flags.Changed("points") {
			cfg.Transition.Points = points
		}
	}
	if flags.Lookup("k0") != nil {
		if flags.Changed("k0") {
			cfg.Path.K0 = k0
		}
		if flags.Changed("periods") {
			cfg.Path.Periods = periods
		}
	}

	return cfg, nil
}

func setup(cmd *cobra.Command) (*experiment.Experiment, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	exp := experiment.New(cfg, log)
	if err := exp.Setup(); err != nil {
		return nil, err
	}
	return exp, nil
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runSteady(cmd *cobra.Command, args []string) error {
	exp, err := setup(cmd)
	if err != nil {
		return err
	}
	ss, err := exp.SteadyState()
	if err != nil {
		return err
	}

	if format == "json" {
		return writeJSON(ss)
	}

	p := ss.Params
	fmt.Printf("variant: %s\n", ss.Variant)
	fmt.Printf("method: %s\n", ss.Method)
	fmt.Printf("params: B=%g s=%g n=%g alpha=%g delta=%g phi=%g\n", p.B, p.S, p.N, p.Alpha, p.Delta, p.Phi)
	fmt.Printf("\nk*: %.13f\n", ss.K)
	fmt.Printf("y*: %.13f\n", ss.Y)
	fmt.Printf("residual: %.3e\n", ss.Residual)
	if ss.Iterations > 0 {
		fmt.Printf("iterations: %d\n", ss.Iterations)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	exp, err := setup(cmd)
	if err != nil {
		return err
	}
	pts, err := exp.Sweep(context.Background())
	if err != nil {
		return err
	}

	if format == "json" {
		return writeJSON(pts)
	}

	param := exp.Config().Sweep.Param
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tK*\tY*\tSTATUS\n", param)
	for _, p := range pts {
		if p.Err != nil {
			fmt.Fprintf(w, "%g\t-\t-\t%v\n", p.Value, p.Err)
			continue
		}
		fmt.Fprintf(w, "%g\t%.7f\t%.7f\tok\n", p.Value, p.K, p.Y)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if n := analysis.Failed(pts); n > 0 {
		fmt.Printf("\n%d of %d points failed\n", n, len(pts))
	}
	return nil
}

func runTransition(cmd *cobra.Command, args []string) error {
	exp, err := setup(cmd)
	if err != nil {
		return err
	}
	curve, err := exp.Transition()
	if err != nil {
		return err
	}

	if format == "json" {
		return writeJSON(curve)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "K\tK_NEXT\tY\tK_NEXT-K")
	for _, p := range curve {
		fmt.Fprintf(w, "%.4f\t%.6f\t%.6f\t%+.6f\n", p.K, p.Next, p.Y, p.Next-p.K)
	}
	return w.Flush()
}

func runPath(cmd *cobra.Command, args []string) error {
	exp, err := setup(cmd)
	if err != nil {
		return err
	}
	report, err := exp.Path()
	if err != nil {
		return err
	}

	if format == "json" {
		return writeJSON(report)
	}

	fmt.Printf("steady state k*: %.10f\n", report.SteadyState)
	if report.Converged >= 0 {
		fmt.Printf("within %.0e of k* after %d periods\n\n", experiment.ConvergenceTolerance, report.Converged)
	} else {
		fmt.Printf("not within %.0e of k* after %d periods\n\n", experiment.ConvergenceTolerance, len(report.Points)-1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T\tK\tY\tA")
	for _, p := range report.Points {
		fmt.Fprintf(w, "%d\t%.6f\t%.6f\t%.6f\n", p.T, p.K, p.Y, p.A)
	}
	return w.Flush()
}

func runDerive(cmd *cobra.Command, args []string) error {
	exp, err := setup(cmd)
	if err != nil {
		return err
	}
	d, err := exp.Derivation()
	if err != nil {
		return err
	}

	if format == "json" {
		return writeJSON(d)
	}

	fmt.Printf("variant: %s\n", d.Variant)
	fmt.Printf("  %s\n", d.Recurrence)
	fmt.Printf("  %s\n", d.SteadyState)
	fmt.Printf("\nat the given parameters: k* = %.13f\n", d.Value)
	return nil
}
