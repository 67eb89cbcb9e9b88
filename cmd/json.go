package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/stagesim/stagesim/sim"
)

var jsonInputPath string // JSON run configuration; "-" reads stdin

// jsonCmd exposes the JSON transport: a config document in, a report document out
var jsonCmd = &cobra.Command{
	Use:   "json",
	Short: "Run a JSON-encoded configuration and print the JSON-encoded report",
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if jsonInputPath != "-" {
			f, err := os.Open(jsonInputPath)
			if err != nil {
				return fmt.Errorf("opening input: %w", err)
			}
			defer f.Close()
			r = f
		}
		input, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		out, err := sim.RunJSON(string(input))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	jsonCmd.Flags().StringVar(&jsonInputPath, "file", "-", "JSON configuration file (\"-\" for stdin)")
	rootCmd.AddCommand(jsonCmd)
}
