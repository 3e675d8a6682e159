// Package report defines SimulationReport, the Runner's terminal
// output (spec.md §6.2). It is a separate package from specmodel so
// that criteria and baseline -- which specmodel must not import back
// -- can be referenced here without an import cycle.
package report

import (
	"github.com/sankum/simuforge/internal/aggregate"
	"github.com/sankum/simuforge/internal/baseline"
	"github.com/sankum/simuforge/internal/criteria"
)

// Status is the top-level report status.
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
	StatusError  Status = "error"
)

// SimulationReport is the single terminal artifact of one run
// (spec.md §6.2). It is always either structurally complete
// (Status passed/failed, Metrics and CriteriaResults populated) or
// minimally populated with Error set (Status error).
type SimulationReport struct {
	SpecName           string                              `json:"spec_name" yaml:"spec_name"`
	Status             Status                               `json:"status" yaml:"status"`
	Metrics            *aggregate.Result                    `json:"metrics" yaml:"metrics"`
	CriteriaResults    map[string]criteria.CriterionResult `json:"criteria_results,omitempty" yaml:"criteria_results,omitempty"`
	BaselineComparison *baseline.Comparison                 `json:"baseline_comparison,omitempty" yaml:"baseline_comparison,omitempty"`
	Error              string                                `json:"error,omitempty" yaml:"error,omitempty"`
}

// FromCriteriaStatus maps the closed criteria.Status enum onto the
// report's passed/failed status values.
func FromCriteriaStatus(s criteria.Status) Status {
	if s == criteria.StatusPassed {
		return StatusPassed
	}
	return StatusFailed
}

// ExitCode returns the process exit code spec.md §6.3 assigns to each
// status: 0 passed, 1 failed, 2 error.
func (r SimulationReport) ExitCode() int {
	switch r.Status {
	case StatusPassed:
		return 0
	case StatusFailed:
		return 1
	default:
		return 2
	}
}
