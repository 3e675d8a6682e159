// Package criteria evaluates a spec's pass/fail thresholds against an
// aggregate.Result (spec.md §4.4).
package criteria

import (
	"fmt"
	"sort"

	"github.com/sankum/simuforge/internal/aggregate"
	"github.com/sankum/simuforge/internal/errs"
	"github.com/sankum/simuforge/internal/specmodel"
)

// Status is the overall pass/fail verdict for one evaluation.
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
)

// CriterionResult is the evaluated outcome of one named criterion.
type CriterionResult struct {
	Tag       string   `json:"tag" yaml:"tag"`
	Value     float64  `json:"value" yaml:"value"`
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Passed    bool     `json:"passed" yaml:"passed"`
	Message   string   `json:"message" yaml:"message"`
}

// knownTags is the closed enum of aggregate keys a criterion may name.
var knownTags = map[string]bool{
	"energy_drift_percent":        true,
	"max_penetration_ever":        true,
	"total_constraint_violations": true,
	"average_contact_count":       true,
	"frame_count":                 true,
	"stability_time":              true,
}

// ValidateTags checks every criterion key against the closed aggregate
// enum without needing an aggregate.Result, so a typo'd tag surfaces as
// errs.UnknownCriterion before a simulation runs rather than after it
// completes (spec.md §7 "Propagation policy").
func ValidateTags(criteria map[string]specmodel.Criterion) error {
	tags := make([]string, 0, len(criteria))
	for tag := range criteria {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		if !knownTags[tag] {
			return &errs.UnknownCriterion{Tag: tag}
		}
	}
	return nil
}

// aggregateValue resolves a recognised tag against a Result. This is
// the closed enum of evaluable aggregates -- every criterion key in a
// spec must name one of these or Evaluate fails with UnknownCriterion.
// recognised is false only for tags outside that enum; stability_time
// is always recognised even when the run never stabilised, in which
// case isNull reports that there is no numeric value to compare.
func aggregateValue(agg aggregate.Result, tag string) (value float64, recognised bool, isNull bool) {
	switch tag {
	case "energy_drift_percent":
		return agg.EnergyDriftPercent, true, false
	case "max_penetration_ever":
		return agg.MaxPenetrationEver, true, false
	case "total_constraint_violations":
		return float64(agg.TotalConstraintViolations), true, false
	case "average_contact_count":
		return agg.AverageContactCount, true, false
	case "frame_count":
		return float64(agg.FrameCount), true, false
	case "stability_time":
		if agg.StabilityTime == nil {
			return 0, true, true
		}
		return *agg.StabilityTime, true, false
	default:
		return 0, false, false
	}
}

// Evaluate applies every criterion in specs against agg, returning one
// CriterionResult per tag plus the overall status. A tag not in the
// closed aggregate enum is reported as errs.UnknownCriterion and no
// partial results are returned.
func Evaluate(agg aggregate.Result, criteria map[string]specmodel.Criterion) (map[string]CriterionResult, Status, error) {
	results := make(map[string]CriterionResult, len(criteria))
	status := StatusPassed

	tags := make([]string, 0, len(criteria))
	for tag := range criteria {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		c := criteria[tag]
		value, recognised, isNull := aggregateValue(agg, tag)
		if !recognised {
			return nil, StatusFailed, &errs.UnknownCriterion{Tag: tag}
		}

		var result CriterionResult
		if isNull {
			// never stabilised: no max bound can hold, any min bound does.
			result = CriterionResult{Tag: tag, Min: c.Min, Max: c.Max, Passed: c.Max == nil}
			if !result.Passed {
				result.Message = "never stabilised within the observed frames"
			}
		} else {
			result = CriterionResult{Tag: tag, Value: value, Min: c.Min, Max: c.Max, Passed: true}

			if c.Min != nil && value < *c.Min {
				result.Passed = false
				result.Message = fmt.Sprintf("%v below minimum %v", value, *c.Min)
			}
			if c.Max != nil && value > *c.Max {
				result.Passed = false
				if result.Message != "" {
					result.Message += "; "
				}
				result.Message += fmt.Sprintf("%v above maximum %v", value, *c.Max)
			}
		}
		if !result.Passed {
			status = StatusFailed
		}

		results[tag] = result
	}

	return results, status, nil
}
