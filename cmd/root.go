package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/procsched/procsched/sim"
	"github.com/procsched/procsched/sim/report"
	"github.com/procsched/procsched/sim/trace"
	"github.com/procsched/procsched/sim/workload"
)

var (
	// CLI flags for the run command
	jobsPath   string // YAML job-set file
	policyName string // Policy menu name or short identifier
	quantum    int64  // Round robin time slice (in ticks)
	maxSteps   int64  // Max scheduling decisions (0 = unlimited)
	maxTicks   int64  // Max simulated time (0 = unlimited)
	outputFmt  string // Output format (text, json, yaml)
	traceLevel string // Decision trace level (none, decisions)
	statePath  string // Settings file remembered between runs
	logLevel   string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "procsched",
	Short: "Single-CPU process scheduling simulator",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runOptions carries everything a single simulation run needs.
type runOptions struct {
	JobsPath   string
	Policy     string
	Quantum    int64
	Limits     sim.Limits
	Format     report.Format
	TraceLevel trace.TraceLevel
	StatePath  string
}

// runSimulation loads the job set, runs the engine once and renders the result to out.
// The selected policy and job count are remembered in the settings file.
func runSimulation(opts runOptions, out io.Writer) error {
	if !report.IsValidFormat(string(opts.Format)) {
		return fmt.Errorf("unknown output format %q; valid: text, json, yaml", opts.Format)
	}
	if !trace.IsValidTraceLevel(string(opts.TraceLevel)) {
		return fmt.Errorf("unknown trace level %q; valid: none, decisions", opts.TraceLevel)
	}

	state, err := LoadAppState(opts.StatePath)
	if err != nil {
		return err
	}
	name := opts.Policy
	if name == "" {
		name = state.Policy
	}
	if name == "" {
		return fmt.Errorf("no policy given and none remembered; choose one of %q", sim.PolicyNames())
	}
	policy, err := sim.ParsePolicy(name, opts.Quantum)
	if err != nil {
		return err
	}

	jobs, err := workload.LoadJobSet(opts.JobsPath)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	log := logrus.WithFields(logrus.Fields{"run": runID, "policy": policy.Kind, "jobs": len(jobs)})
	log.Infof("Starting simulation: %s", policy)

	s, err := sim.NewSimulator(jobs, policy, opts.Limits)
	if err != nil {
		return err
	}
	s.SetTraceLevel(opts.TraceLevel)
	res, err := s.Run()
	if err != nil {
		return err
	}
	log.Infof("Simulation complete: makespan=%d decisions=%d", res.Aggregate.Makespan, res.Steps)

	if err := report.Write(out, opts.Format, runID, res); err != nil {
		return err
	}

	state.JobCount = uint16(len(jobs))
	state.Policy = policy.DisplayName()
	state.ViewportOpen = true
	if err := SaveAppState(opts.StatePath, state); err != nil {
		log.Warnf("Could not save settings: %v", err)
	}
	return nil
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scheduling simulation over a job set",
	Run: func(cmd *cobra.Command, args []string) {
		if jobsPath == "" {
			logrus.Fatalf("Job set not provided (--jobs). Exiting simulation.")
		}
		opts := runOptions{
			JobsPath:   jobsPath,
			Policy:     policyName,
			Quantum:    quantum,
			Limits:     sim.Limits{MaxSteps: maxSteps, MaxTicks: maxTicks},
			Format:     report.Format(outputFmt),
			TraceLevel: trace.TraceLevel(traceLevel),
			StatePath:  statePath,
		}
		if err := runSimulation(opts, os.Stdout); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
	},
}

// policiesCmd lists the policy menu
var policiesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List the supported scheduling policies",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range sim.PolicyNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().StringVar(&jobsPath, "jobs", "", "Path to a YAML job-set file")
	runCmd.Flags().StringVar(&policyName, "policy", "", "Scheduling policy (menu name or fcfs, sjn, srt, rr); defaults to the last one used")
	runCmd.Flags().Int64Var(&quantum, "quantum", 2, "Round robin time slice (in ticks)")
	runCmd.Flags().Int64Var(&maxSteps, "max-steps", 0, "Max scheduling decisions (0 = unlimited)")
	runCmd.Flags().Int64Var(&maxTicks, "max-ticks", 0, "Max simulated time in ticks (0 = unlimited)")
	runCmd.Flags().StringVar(&outputFmt, "output", string(report.FormatText), "Output format (text, json, yaml)")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelNone), "Decision trace level (none, decisions)")
	runCmd.Flags().StringVar(&statePath, "state", defaultStatePath(), "Settings file remembered between runs (empty disables)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(policiesCmd)
	rootCmd.AddCommand(generateCmd)
}
