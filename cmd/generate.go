package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/stagesim/stagesim/sim/fit"
	"github.com/stagesim/stagesim/sim/sampling"
	"github.com/stagesim/stagesim/sim/workload"
)

var (
	genDist   string  // uniform, normal, exponential, poisson, binomial
	genCount  int     // Number of values (or batch means)
	genParam1 float64 // First distribution parameter
	genParam2 float64 // Second distribution parameter
	genSeed   uint64  // Stream seed
	genBatch  int     // When > 0, emit means of batches of this size
	genFormat string  // text, json or yaml
	invFamily string  // normal, exponential or uniform
	invProb   float64 // Cumulative probability
	invParam1 float64
	invParam2 float64
	invFormat string
)

// generateCmd writes seeded random variates
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate seeded random variates",
	Long: `Generate seeded random variates.

Parameters by distribution:
  uniform       U(0,1); params ignored
  normal        p1=mean p2=standard deviation
  exponential   p1=mean
  poisson       p1=lambda
  binomial      p1=trials p2=success probability

With --batch N the command emits --n means of N draws each; the families
are then normal (p1=mean p2=variance), exponential (p1=mean) and
uniform (p1=min p2=max).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := generate()
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), genFormat, values, func(w io.Writer) {
			for _, v := range values {
				fmt.Fprintln(w, v)
			}
		})
	},
}

func generate() ([]float64, error) {
	if genBatch > 0 {
		spec := workload.DistSpec{Family: workload.Family(genDist), Param1: genParam1, Param2: genParam2}
		return sampling.SampleMeans(spec, genBatch, genCount, genSeed)
	}
	switch genDist {
	case "uniform":
		return sampling.Uniform(genCount, genSeed)
	case "normal":
		return sampling.Normal(genCount, genParam1, genParam2, genSeed)
	case "exponential":
		return sampling.Exponential(genCount, genParam1, genSeed)
	case "poisson":
		return sampling.Poisson(genCount, genParam1, genSeed)
	case "binomial":
		return sampling.Binomial(genCount, int(genParam1), genParam2, genSeed)
	}
	return nil, fmt.Errorf("unknown distribution %q; valid: uniform, normal, exponential, poisson, binomial", genDist)
}

// inverseCmd maps a probability back to a variate
var inverseCmd = &cobra.Command{
	Use:   "inverse",
	Short: "Evaluate the inverse CDF (normal: mean/variance, exponential: mean, uniform: min/max)",
	RunE: func(cmd *cobra.Command, args []string) error {
		spec := workload.DistSpec{Family: workload.Family(invFamily), Param1: invParam1, Param2: invParam2}
		inv, err := fit.InverseCDF(spec, invProb)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), invFormat, inv, func(w io.Writer) {
			fmt.Fprintf(w, "x = %g\n", inv.Value)
			if inv.ZScore != nil {
				fmt.Fprintf(w, "z = %g\n", *inv.ZScore)
			}
		})
	},
}

func init() {
	generateCmd.Flags().StringVar(&genDist, "dist", "uniform", "Distribution (uniform, normal, exponential, poisson, binomial)")
	generateCmd.Flags().IntVar(&genCount, "n", 10, "Number of values")
	generateCmd.Flags().Float64Var(&genParam1, "p1", 0, "First parameter")
	generateCmd.Flags().Float64Var(&genParam2, "p2", 0, "Second parameter")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 42, "Seed")
	generateCmd.Flags().IntVar(&genBatch, "batch", 0, "Emit means of batches of this many draws")
	generateCmd.Flags().StringVar(&genFormat, "output", "text", "Output format (text, json, yaml)")

	inverseCmd.Flags().StringVar(&invFamily, "family", "normal", "Distribution family (normal, exponential, uniform)")
	inverseCmd.Flags().Float64Var(&invProb, "p", 0.5, "Cumulative probability, strictly between 0 and 1")
	inverseCmd.Flags().Float64Var(&invParam1, "p1", 0, "First parameter")
	inverseCmd.Flags().Float64Var(&invParam2, "p2", 1, "Second parameter")
	inverseCmd.Flags().StringVar(&invFormat, "output", "text", "Output format (text, json, yaml)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(inverseCmd)
}
