package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sankum/simuforge/internal/runner"
)

func newSuiteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suite <dir>",
		Short: "run every *.yaml spec in a directory and roll up one exit code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := filepath.Glob(filepath.Join(args[0], "*.yaml"))
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no *.yaml specs found in %s", args[0])
			}

			entries := make([]runner.SuiteEntry, 0, len(paths))
			for _, path := range paths {
				spec, err := loadSpec(path)
				if err != nil {
					return fmt.Errorf("loading %s: %w", path, err)
				}
				entries = append(entries, runner.SuiteEntry{
					Spec:     spec,
					Baseline: runner.Options{Factory: defaultFactory},
				})
			}

			results := runner.RunSuite(context.Background(), entries)
			for _, r := range results {
				if r.Err != nil {
					fmt.Printf("%-24s error: %v\n", r.SpecName, r.Err)
					continue
				}
				fmt.Printf("%-24s %s\n", r.SpecName, r.Report.Status)
			}

			os.Exit(runner.SuiteExitCode(results))
			return nil
		},
	}
}
