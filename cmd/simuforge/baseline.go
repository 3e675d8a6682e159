package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sankum/simuforge/internal/baseline"
	"github.com/sankum/simuforge/internal/runner"
)

func newBaselineCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "baseline <spec.yaml>",
		Short: "run a spec and save its aggregate metrics as a baseline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := loadSpec(args[0])
			if err != nil {
				return err
			}

			rep, err := runner.Run(context.Background(), spec, runner.Options{Factory: defaultFactory})
			if err != nil {
				return err
			}
			if rep.Metrics == nil {
				return fmt.Errorf("run produced no metrics (status=%s)", rep.Status)
			}

			base := baseline.Baseline{SpecName: spec.Metadata.Name, Metrics: *rep.Metrics}
			data, err := baseline.Save(base)
			if err != nil {
				return err
			}

			if outPath == "" {
				outPath = spec.Metadata.Name + ".baseline.yaml"
			}
			if err := os.WriteFile(outPath, data, 0644); err != nil {
				return err
			}

			fmt.Printf("wrote baseline: %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "output path (default: <spec name>.baseline.yaml)")
	return cmd
}
