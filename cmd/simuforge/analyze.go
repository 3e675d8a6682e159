package main

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/sankum/simuforge/internal/analysis"
	"github.com/sankum/simuforge/internal/store"
)

func newAnalyzeCmd() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "analyze <run_id>",
		Short: "plot the power spectrum of a saved run's total-energy trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := store.New(dataDir)
			trace, err := st.LoadTotalEnergyTrace(args[0])
			if err != nil {
				return err
			}
			if len(trace) == 0 {
				return fmt.Errorf("run %s has no frame trace to analyze", args[0])
			}

			spectrum := analysis.PowerSpectrum(trace)
			plotLen := len(spectrum) / 4
			if plotLen < 2 {
				plotLen = len(spectrum)
			}

			graph := asciigraph.Plot(spectrum[:plotLen],
				asciigraph.Height(15),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("energy power spectrum: %s", args[0])),
			)
			fmt.Println(graph)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", ".simuforge", "directory runs were saved under")
	return cmd
}
