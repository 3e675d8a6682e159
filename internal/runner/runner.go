// Package runner orchestrates one experiment end to end: build the
// scenario, drive the solver to completion, aggregate the resulting
// frames, evaluate criteria, optionally compare against a baseline,
// and produce a terminal SimulationReport (spec.md §4.6).
package runner

import (
	"context"
	"errors"

	"github.com/sankum/simuforge/internal/aggregate"
	"github.com/sankum/simuforge/internal/baseline"
	"github.com/sankum/simuforge/internal/criteria"
	"github.com/sankum/simuforge/internal/errs"
	"github.com/sankum/simuforge/internal/metricworld"
	"github.com/sankum/simuforge/internal/report"
	"github.com/sankum/simuforge/internal/specmodel"
	"github.com/sankum/simuforge/internal/telemetry"
)

// StepObserver is notified after each completed step, letting a live
// progress display (internal/tui) or a logger follow along without the
// Runner importing either.
type StepObserver func(frame metricworld.MetricFrame)

// Options configures one Run.
type Options struct {
	Factory  metricworld.Factory
	Baseline *baseline.Baseline
	Logger   *telemetry.Logger
	OnStep   StepObserver
}

// Run executes spec to completion and returns its SimulationReport.
// Run never returns a non-nil error for an ordinary failed/errored
// simulation -- those are reported via SimulationReport.Status. A
// non-nil error only indicates the spec itself was invalid in a way
// that must be surfaced before any simulation begins (spec.md §7
// "Propagation policy"). Run does not check the baseline itself;
// BaselineIncompatible comes from baseline.Load, before Run is called.
func Run(ctx context.Context, spec *specmodel.ExperimentSpec, opts Options) (*report.SimulationReport, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := criteria.ValidateTags(spec.Criteria); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = telemetry.NewLogger(telemetry.LoggerConfig{})
	}
	log = log.WithField("spec", spec.Metadata.Name)

	world, err := metricworld.New(spec, opts.Factory)
	if err != nil {
		var solverErr *errs.SolverError
		if errors.As(err, &solverErr) {
			log.WithError(solverErr).Error("solver error, aborting run")
			return errorReport(spec, solverErr), nil
		}
		return nil, err
	}
	defer world.Close()

	frames := make([]metricworld.MetricFrame, 0, spec.Duration.Steps)
	for !world.IsComplete() {
		select {
		case <-ctx.Done():
			return errorReport(spec, ctx.Err()), nil
		default:
		}

		frame, stepErr := world.Step()
		if stepErr != nil {
			var solverErr *errs.SolverError
			if errors.As(stepErr, &solverErr) {
				log.WithError(solverErr).Error("solver error, aborting run")
				return errorReport(spec, solverErr), nil
			}
			return nil, stepErr
		}

		frames = append(frames, frame)
		if opts.OnStep != nil {
			opts.OnStep(frame)
		}
	}

	agg := aggregate.Aggregate(frames, spec.Physics.Timestep)

	criteriaResults, status, err := criteria.Evaluate(agg, spec.Criteria)
	if err != nil {
		return nil, err
	}

	rep := &report.SimulationReport{
		SpecName:        spec.Metadata.Name,
		Status:          report.FromCriteriaStatus(status),
		Metrics:         &agg,
		CriteriaResults: criteriaResults,
	}

	if opts.Baseline != nil {
		cmp := baseline.Compare(agg, status, *opts.Baseline)
		rep.BaselineComparison = &cmp
	}

	log.WithField("status", string(rep.Status)).Info("run complete")
	return rep, nil
}

func errorReport(spec *specmodel.ExperimentSpec, err error) *report.SimulationReport {
	return &report.SimulationReport{
		SpecName: spec.Metadata.Name,
		Status:   report.StatusError,
		Error:    err.Error(),
	}
}
