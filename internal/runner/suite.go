package runner

import (
	"context"
	"sync"

	"github.com/sankum/simuforge/internal/report"
	"github.com/sankum/simuforge/internal/specmodel"
)

// SuiteEntry pairs a spec with the Options its Run uses. Despite its
// name, the Baseline field holds the full Options (factory, optional
// baseline, logger, step observer), not just a baseline.
type SuiteEntry struct {
	Spec     *specmodel.ExperimentSpec
	Baseline Options
}

// SuiteResult is one entry's outcome, alongside any invalid-spec error
// that prevented it from producing a report at all.
type SuiteResult struct {
	SpecName string
	Report   *report.SimulationReport
	Err      error
}

// RunSuite runs every entry concurrently, one goroutine per entry, and
// collects results into a slice addressed by entry index so result
// order always matches entries regardless of completion order.
func RunSuite(ctx context.Context, entries []SuiteEntry) []SuiteResult {
	results := make([]SuiteResult, len(entries))

	var wg sync.WaitGroup
	for i, entry := range entries {
		wg.Add(1)
		go func(idx int, e SuiteEntry) {
			defer wg.Done()
			rep, err := Run(ctx, e.Spec, e.Baseline)
			results[idx] = SuiteResult{SpecName: e.Spec.Metadata.Name, Report: rep, Err: err}
		}(i, entry)
	}
	wg.Wait()

	return results
}

// SuiteExitCode rolls per-entry statuses into one process exit code:
// error takes precedence over failed, which takes precedence over
// passed (SPEC_FULL.md Open Question #3).
func SuiteExitCode(results []SuiteResult) int {
	code := 0
	for _, r := range results {
		if r.Err != nil || r.Report == nil {
			return 2
		}
		if c := r.Report.ExitCode(); c > code {
			code = c
		}
	}
	return code
}
