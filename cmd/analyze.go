package cmd

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stagesim/stagesim/sim/analysis"
)

var (
	samplesPath   string  // File of samples; "-" reads stdin
	forcedBins    int     // Class count override
	forcedMin     float64 // Lower bound override for grouping
	forcedMax     float64 // Upper bound override for grouping
	analyzeFormat string  // json or yaml
)

// analyzeCmd runs the descriptive pipeline over a file of numbers
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Describe a sample: summary, histogram, box plot and best-fitting distribution",
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if samplesPath != "-" {
			f, err := os.Open(samplesPath)
			if err != nil {
				return fmt.Errorf("opening samples: %w", err)
			}
			defer f.Close()
			r = f
		}
		samples, err := readSamples(r)
		if err != nil {
			return err
		}
		logrus.Infof("Analyzing %d samples", len(samples))

		opts := analysis.Options{Bins: forcedBins}
		if cmd.Flags().Changed("min") {
			opts.Min = &forcedMin
		}
		if cmd.Flags().Changed("max") {
			opts.Max = &forcedMax
		}
		report, err := analysis.Analyze(samples, opts)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), analyzeFormat, report, nil)
	},
}

// readSamples parses numbers separated by whitespace, commas or semicolons.
// Lines starting with '#' are skipped.
func readSamples(r io.Reader) ([]float64, error) {
	var out []float64
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(c rune) bool {
			return c == ',' || c == ';' || c == ' ' || c == '\t'
		})
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %q is not a number", line, f)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("line %d: %q is not a finite number", line, f)
			}
			out = append(out, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading samples: %w", err)
	}
	return out, nil
}

func init() {
	analyzeCmd.Flags().StringVar(&samplesPath, "file", "-", "File of numeric samples (\"-\" for stdin)")
	analyzeCmd.Flags().IntVar(&forcedBins, "bins", 0, "Number of classes (0 = Sturges rule)")
	analyzeCmd.Flags().Float64Var(&forcedMin, "min", 0, "Lower bound of the grouped range (default: sample minimum)")
	analyzeCmd.Flags().Float64Var(&forcedMax, "max", 0, "Upper bound of the grouped range (default: sample maximum)")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "output", "json", "Output format (json, yaml)")

	rootCmd.AddCommand(analyzeCmd)
}
