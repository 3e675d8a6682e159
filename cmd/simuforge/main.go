package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// main is the entry point for the simuforge CLI. It registers every
// subcommand and executes the root command, exiting with the
// underlying SimulationReport's exit code when the command produced
// one (spec.md §6.3) or 2 for any other command failure.
func main() {
	rootCmd := &cobra.Command{
		Use:   "simuforge",
		Short: "deterministic rigid-body experiment harness",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newBaselineCmd(),
		newSuiteCmd(),
		newValidateCmd(),
		newScenariosCmd(),
		newServeMetricsCmd(),
		newAnalyzeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
