package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stagesim/stagesim/sim"
	"github.com/stagesim/stagesim/sim/trace"
	"github.com/stagesim/stagesim/sim/workload"
)

var (
	logLevel string // Log verbosity level

	// CLI flags for the queueing simulation
	configPath         string   // YAML/JSON run configuration; flags below override it
	hours              int      // Number of simulated hours
	arrivalRatePerHour float64  // Mean Poisson arrivals per hour
	toleranceMinutes   float64  // Wait a customer accepts before considering leaving
	abandonProbability float64  // Probability an impatient customer leaves
	stageFlags         []string // Stages as name:family:param1:param2, in service order
	seed               int64    // Seed for every random stream of the run
	outputFormat       string   // text, json or yaml
	traceLevel         string   // Decision trace verbosity
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:           "stagesim",
	Short:         "Discrete-event simulator for multi-stage service lines",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)
		return nil
	},
}

// runCmd executes one simulation from a config file and/or inline flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate arrivals through a sequence of single-server stages",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildRunConfig(cmd)
		if err != nil {
			return err
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			return fmt.Errorf("invalid trace level %q; valid: none, decisions", traceLevel)
		}

		key := sim.EntropyKey()
		if cfg.Seed != nil {
			key = sim.NewSimulationKey(*cfg.Seed)
		}
		logrus.Infof("Starting simulation: %d hours, %.2f arrivals/hour, %d stages, seed=%d",
			cfg.Hours, cfg.ArrivalRatePerHour, len(cfg.Stages), int64(key))

		s, err := sim.NewSimulator(cfg, key, trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
		if err != nil {
			return err
		}
		report, err := s.Run()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if err := writeOutput(out, outputFormat, report, report.Print); err != nil {
			return err
		}
		if s.Trace != nil && outputFormat == "text" {
			printTraceSummary(out, trace.Summarize(s.Trace), report.StageNames)
		}
		logrus.Info("Simulation complete.")
		return nil
	},
}

// buildRunConfig loads --config when given, then applies every flag the
// user set explicitly on top of it.
func buildRunConfig(cmd *cobra.Command) (*sim.SimulationConfig, error) {
	cfg := &sim.SimulationConfig{
		Hours:              hours,
		ArrivalRatePerHour: arrivalRatePerHour,
		ToleranceMinutes:   toleranceMinutes,
		AbandonProbability: abandonProbability,
	}
	changed := cmd.Flags().Changed
	if configPath != "" {
		loaded, err := sim.LoadSimulationConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		if changed("hours") {
			cfg.Hours = hours
		}
		if changed("rate") {
			cfg.ArrivalRatePerHour = arrivalRatePerHour
		}
		if changed("tolerance") {
			cfg.ToleranceMinutes = toleranceMinutes
		}
		if changed("abandon-prob") {
			cfg.AbandonProbability = abandonProbability
		}
	}
	if changed("stage") || configPath == "" {
		stages := make([]sim.StageSpec, 0, len(stageFlags))
		for _, raw := range stageFlags {
			st, err := parseStage(raw)
			if err != nil {
				return nil, err
			}
			stages = append(stages, st)
		}
		cfg.Stages = stages
	}
	if changed("seed") || configPath == "" {
		s := seed
		cfg.Seed = &s
	}
	return cfg, nil
}

// parseStage parses "name:family:param1:param2". param2 may be omitted for
// the exponential family.
func parseStage(raw string) (sim.StageSpec, error) {
	parts := strings.Split(raw, ":")
	if len(parts) == 3 {
		parts = append(parts, "0")
	}
	if len(parts) != 4 {
		return sim.StageSpec{}, fmt.Errorf("stage %q: want name:family:param1:param2", raw)
	}
	family, err := workload.ParseFamily(parts[1])
	if err != nil {
		return sim.StageSpec{}, fmt.Errorf("stage %q: %w", raw, err)
	}
	p1, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return sim.StageSpec{}, fmt.Errorf("stage %q: param1: %w", raw, err)
	}
	p2, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return sim.StageSpec{}, fmt.Errorf("stage %q: param2: %w", raw, err)
	}
	return sim.NewStageSpec(parts[0], family, p1, p2), nil
}

// writeOutput renders v as JSON or YAML, or through text for "text".
func writeOutput(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		if text == nil {
			return fmt.Errorf("text output is not available here; use json or yaml")
		}
		text(w)
		return nil
	}
	return fmt.Errorf("unknown output format %q; valid: text, json, yaml", format)
}

func printTraceSummary(w io.Writer, ts *trace.TraceSummary, stageNames []string) {
	fmt.Fprintln(w, "=== Decision Trace ===")
	fmt.Fprintf(w, "Reservations         : %d\n", ts.TotalReservations)
	fmt.Fprintf(w, "Abandonments         : %d (boundary=%d impatience=%d)\n", ts.TotalAbandonments,
		ts.AbandonsByReason[trace.ReasonBoundary], ts.AbandonsByReason[trace.ReasonImpatience])
	for i, name := range stageNames {
		fmt.Fprintf(w, "Stage %-14s : busy=%.2f min idle=%.2f min\n", name, ts.StageBusyTime[i], ts.StageIdleTime[i])
	}
	if !ts.MonotonicStages {
		logrus.Warn("server busy-until went backwards on at least one stage")
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

// registerRunFlags binds the run flags to cmd.
func registerRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML or JSON run configuration")
	cmd.Flags().IntVar(&hours, "hours", 8, "Number of simulated hours")
	cmd.Flags().Float64Var(&arrivalRatePerHour, "rate", 10, "Mean arrivals per hour")
	cmd.Flags().Float64Var(&toleranceMinutes, "tolerance", 15, "Expected wait (minutes) a customer accepts without considering leaving")
	cmd.Flags().Float64Var(&abandonProbability, "abandon-prob", 0.5, "Probability an over-tolerance customer leaves")
	cmd.Flags().StringArrayVar(&stageFlags, "stage", nil, "Stage as name:family:param1:param2 (repeat in service order)")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for the run's random streams (overrides the config seed when set)")
	cmd.Flags().StringVar(&outputFormat, "output", "text", "Output format (text, json, yaml)")
	cmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Decision trace level (none, decisions)")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	registerRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}
