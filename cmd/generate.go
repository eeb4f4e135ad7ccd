package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/procsched/procsched/sim/workload"
)

var (
	// CLI flags for the generate command
	genSpecPath    string  // YAML generator spec; overrides the flags below
	genSeed        int64   // Seed for random job generation
	genCount       int     // Number of jobs
	genArrival     string  // Arrival process (poisson, uniform, batch)
	genMeanGap     float64 // Mean inter-arrival gap for poisson
	genMaxGap      int     // Max inter-arrival gap for uniform
	genBurstDist   string  // Burst distribution (uniform, gaussian, exponential)
	genMinBurst    int64   // Min burst
	genMaxBurst    int64   // Max burst
	genBurstMean   float64 // Mean burst for gaussian/exponential
	genBurstStdev  float64 // Stddev burst for gaussian
	genMaxPriority int64   // Max priority (0 = all zero)
	genOutPath     string  // Output file (stdout if empty)
)

// generateJobSet builds the job set described by spec and writes it as YAML.
func generateJobSet(spec *workload.GeneratorSpec, out io.Writer) error {
	jobs, err := workload.GenerateJobs(spec)
	if err != nil {
		return err
	}
	logrus.Infof("Generated %d jobs with seed %d", len(jobs), spec.Seed)
	return workload.WriteJobSet(out, jobs)
}

// emitJobSet writes the generated job set to outPath, or to stdout when
// outPath is empty. The file is only created once generation has succeeded.
func emitJobSet(spec *workload.GeneratorSpec, outPath string, stdout io.Writer) error {
	if outPath == "" {
		return generateJobSet(spec, stdout)
	}
	var buf bytes.Buffer
	if err := generateJobSet(spec, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing job set: %w", err)
	}
	return nil
}

// generateCmd writes a random job set
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random job set (deterministic per seed)",
	Run: func(cmd *cobra.Command, args []string) {
		spec := &workload.GeneratorSpec{
			Seed:  genSeed,
			Count: genCount,
			Arrival: workload.ArrivalSpec{
				Process: genArrival,
				MeanGap: genMeanGap,
				MaxGap:  genMaxGap,
			},
			Burst: workload.BurstSpec{
				Type:   genBurstDist,
				Min:    genMinBurst,
				Max:    genMaxBurst,
				Mean:   genBurstMean,
				StdDev: genBurstStdev,
			},
			MaxPriority: genMaxPriority,
		}
		if genSpecPath != "" {
			loaded, err := workload.LoadGeneratorSpec(genSpecPath)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			spec = loaded
		}

		if err := emitJobSet(spec, genOutPath, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}
		if genOutPath != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d jobs to %s\n", spec.Count, genOutPath)
		}
	},
}

func init() {
	generateCmd.Flags().StringVar(&genSpecPath, "spec", "", "Path to a YAML generator spec (overrides the other generation flags)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 42, "Seed for random job generation")
	generateCmd.Flags().IntVar(&genCount, "count", 2, "Number of jobs (0..65535)")
	generateCmd.Flags().StringVar(&genArrival, "arrival", "poisson", "Arrival process (poisson, uniform, batch)")
	generateCmd.Flags().Float64Var(&genMeanGap, "mean-gap", 3, "Mean inter-arrival gap in ticks (poisson)")
	generateCmd.Flags().IntVar(&genMaxGap, "max-gap", 5, "Max inter-arrival gap in ticks (uniform)")
	generateCmd.Flags().StringVar(&genBurstDist, "burst-dist", "uniform", "Burst distribution (uniform, gaussian, exponential)")
	generateCmd.Flags().Int64Var(&genMinBurst, "min-burst", 1, "Min burst in ticks")
	generateCmd.Flags().Int64Var(&genMaxBurst, "max-burst", 10, "Max burst in ticks")
	generateCmd.Flags().Float64Var(&genBurstMean, "burst-mean", 5, "Mean burst in ticks (gaussian, exponential)")
	generateCmd.Flags().Float64Var(&genBurstStdev, "burst-stdev", 2, "Stddev burst in ticks (gaussian)")
	generateCmd.Flags().Int64Var(&genMaxPriority, "max-priority", 0, "Max job priority (0 = all zero)")
	generateCmd.Flags().StringVar(&genOutPath, "out", "", "Output file (stdout if empty)")
}
