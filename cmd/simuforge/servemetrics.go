package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/sankum/simuforge/internal/runner"
	"github.com/sankum/simuforge/internal/telemetry"
)

func newServeMetricsCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve-metrics <spec.yaml>",
		Short: "run a spec and expose its aggregate metrics as Prometheus gauges",
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

			recorder := telemetry.NewRecorder()
			if rep.Metrics != nil {
				recorder.ObserveResult(*rep.Metrics)
			}
			recorder.ObserveStatus(string(rep.Status))

			fmt.Printf("serving metrics for %s (status=%s) on %s/metrics\n", spec.Metadata.Name, rep.Status, addr)

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(recorder.Registry(), promhttp.HandlerOpts{}))
			return http.ListenAndServe(addr, mux)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":9100", "address to serve /metrics on")
	return cmd
}
