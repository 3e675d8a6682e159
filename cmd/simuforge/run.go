package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sankum/simuforge/internal/baseline"
	"github.com/sankum/simuforge/internal/metricworld"
	"github.com/sankum/simuforge/internal/report"
	"github.com/sankum/simuforge/internal/runner"
	"github.com/sankum/simuforge/internal/solver"
	"github.com/sankum/simuforge/internal/solver/fake"
	"github.com/sankum/simuforge/internal/specmodel"
	"github.com/sankum/simuforge/internal/store"
	"github.com/sankum/simuforge/internal/tui"
)

func defaultFactory(cfg solver.Config) solver.Solver {
	return fake.New(cfg)
}

func newRunCmd() *cobra.Command {
	var baselinePath string
	var dataDir string
	var watch bool

	cmd := &cobra.Command{
		Use:   "run <spec.yaml>",
		Short: "run one experiment and print its SimulationReport",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := loadSpec(args[0])
			if err != nil {
				return err
			}

			opts := runner.Options{Factory: defaultFactory}

			if baselinePath != "" {
				data, err := os.ReadFile(baselinePath)
				if err != nil {
					return fmt.Errorf("reading baseline: %w", err)
				}
				base, err := baseline.Load(data)
				if err != nil {
					return fmt.Errorf("loading baseline: %w", err)
				}
				opts.Baseline = base
			}

			var frames []metricworld.MetricFrame
			var program *tea.Program
			var uiDone chan tea.Msg

			if watch {
				uiDone = make(chan tea.Msg)
				model := tui.NewModel(spec.Metadata.Name, spec.Duration.Steps, uiDone)
				program = tea.NewProgram(model)
				opts.OnStep = tui.StepObserverFor(uiDone)
				go func() {
					if _, err := program.Run(); err != nil {
						fmt.Fprintln(os.Stderr, "tui error:", err)
					}
				}()
			} else {
				opts.OnStep = func(frame metricworld.MetricFrame) {
					frames = append(frames, frame)
				}
			}

			rep, err := runner.Run(context.Background(), spec, opts)

			if program != nil {
				uiDone <- tui.DoneMsg{Err: err}
			}

			if err != nil {
				return err
			}

			printReport(rep)

			if dataDir != "" {
				st := store.New(dataDir)
				if err := st.Init(); err != nil {
					return err
				}
				runID, err := st.Save(rep, frames)
				if err != nil {
					return err
				}
				fmt.Printf("saved run: %s\n", runID)
			}

			os.Exit(rep.ExitCode())
			return nil
		},
	}

	cmd.Flags().StringVar(&baselinePath, "baseline", "", "compare against a saved baseline.yaml")
	cmd.Flags().StringVar(&dataDir, "data", "", "directory to persist the report and frame trace under")
	cmd.Flags().BoolVar(&watch, "watch", false, "show a live bubbletea progress view while the run executes")

	return cmd
}

func loadSpec(path string) (*specmodel.ExperimentSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec: %w", err)
	}
	return specmodel.Parse(data)
}

func printReport(rep *report.SimulationReport) {
	fmt.Printf("spec: %s\n", rep.SpecName)
	fmt.Printf("status: %s\n", rep.Status)
	if rep.Metrics != nil {
		fmt.Printf("frames: %d\n", rep.Metrics.FrameCount)
		fmt.Printf("energy drift: %.4f%%\n", rep.Metrics.EnergyDriftPercent)
		fmt.Printf("max penetration: %.6f\n", rep.Metrics.MaxPenetrationEver)
		fmt.Printf("constraint violations: %d\n", rep.Metrics.TotalConstraintViolations)
		fmt.Printf("average contact count: %.3f\n", rep.Metrics.AverageContactCount)
		if rep.Metrics.StabilityTime != nil {
			fmt.Printf("stability time: %.4fs\n", *rep.Metrics.StabilityTime)
		}
	}
	for tag, result := range rep.CriteriaResults {
		status := "pass"
		if !result.Passed {
			status = "FAIL"
		}
		fmt.Printf("criterion %-28s %-4s value=%.4f %s\n", tag, status, result.Value, result.Message)
	}
	if rep.BaselineComparison != nil {
		fmt.Printf("baseline recommendation: %s\n", rep.BaselineComparison.Recommendation)
		for _, mc := range rep.BaselineComparison.Metrics {
			fmt.Printf("  %-28s current=%.4f baseline=%.4f verdict=%s\n", mc.Tag, mc.Current, mc.Baseline, mc.Verdict)
		}
	}
	if rep.Error != "" {
		fmt.Printf("error: %s\n", rep.Error)
	}
}
