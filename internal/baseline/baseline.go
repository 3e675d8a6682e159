// Package baseline compares a run's aggregates against a previously
// stored baseline and recommends accepting, rejecting, or flagging the
// run for manual review (spec.md §4.5).
package baseline

import (
	"math"

	"gopkg.in/yaml.v3"

	"github.com/sankum/simuforge/internal/aggregate"
	"github.com/sankum/simuforge/internal/criteria"
	"github.com/sankum/simuforge/internal/errs"
)

// RelTol and AbsTol bound how much an aggregate must move before it
// counts as improved or regressed (spec.md §4.5).
const (
	RelTol = 0.01
	AbsTol = 1e-6
)

// Verdict classifies one metric's movement relative to its baseline.
type Verdict string

const (
	VerdictNeutral   Verdict = "neutral"
	VerdictImproved  Verdict = "improved"
	VerdictRegressed Verdict = "regressed"
)

// Recommendation is the three-way verdict on whether a run's
// aggregates should be accepted as the new baseline.
type Recommendation string

const (
	RecommendationAccept Recommendation = "ACCEPT"
	RecommendationReject Recommendation = "REJECT"
	RecommendationReview Recommendation = "REVIEW"
)

// MetricComparison is one comparison-set aggregate's movement.
type MetricComparison struct {
	Tag      string  `json:"tag" yaml:"tag"`
	Current  float64 `json:"current" yaml:"current"`
	Baseline float64 `json:"baseline" yaml:"baseline"`
	Verdict  Verdict `json:"verdict" yaml:"verdict"`
}

// Comparison is the full result of comparing a run against a baseline.
type Comparison struct {
	Recommendation Recommendation     `json:"recommendation" yaml:"recommendation"`
	Metrics        []MetricComparison `json:"metrics" yaml:"metrics"`
}

// Baseline is a previously accepted run's aggregates, persisted for
// comparison against future runs of the same experiment.
type Baseline struct {
	SpecName string           `json:"spec_name" yaml:"spec_name"`
	Metrics  aggregate.Result `json:"metrics" yaml:"metrics"`
}

// Load decodes a Baseline from YAML (the format Save writes baselines
// in; JSON is accepted too since JSON is a YAML subset).
func Load(data []byte) (*Baseline, error) {
	var b Baseline
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	if b.SpecName == "" {
		return nil, &errs.BaselineIncompatible{Reason: "missing spec_name"}
	}
	return &b, nil
}

// Save encodes a Baseline as YAML.
func Save(b Baseline) ([]byte, error) {
	return yaml.Marshal(b)
}

type comparisonSpec struct {
	tag          string
	currentValue func(aggregate.Result) float64
}

var comparisonSet = []comparisonSpec{
	{"energy_drift_percent", func(r aggregate.Result) float64 { return math.Abs(r.EnergyDriftPercent) }},
	{"max_penetration_ever", func(r aggregate.Result) float64 { return r.MaxPenetrationEver }},
	{"total_constraint_violations", func(r aggregate.Result) float64 { return float64(r.TotalConstraintViolations) }},
	{"average_contact_count", func(r aggregate.Result) float64 { return r.AverageContactCount }},
}

// Compare diffs current against baseline.Metrics across the fixed
// comparison set and produces a recommendation. average_contact_count
// is reported but never drives improved/regressed classification
// (spec.md §4.5 "closer to baseline is neutral; not counted").
func Compare(current aggregate.Result, status criteria.Status, base Baseline) Comparison {
	var metrics []MetricComparison
	improved, regressed := 0, 0

	for _, spec := range comparisonSet {
		curVal := spec.currentValue(current)
		baseVal := spec.currentValue(base.Metrics)

		verdict := VerdictNeutral
		if spec.tag != "average_contact_count" {
			verdict = classify(curVal, baseVal)
			switch verdict {
			case VerdictImproved:
				improved++
			case VerdictRegressed:
				regressed++
			}
		}

		metrics = append(metrics, MetricComparison{
			Tag:      spec.tag,
			Current:  curVal,
			Baseline: baseVal,
			Verdict:  verdict,
		})
	}

	return Comparison{
		Recommendation: recommend(status, improved, regressed),
		Metrics:        metrics,
	}
}

// classify compares curVal against baseVal, both understood as
// "lower is better", and returns whether curVal improved, regressed,
// or stayed neutral relative to the tolerance.
func classify(curVal, baseVal float64) Verdict {
	threshold := math.Max(RelTol*math.Abs(baseVal), AbsTol)
	diff := baseVal - curVal // positive: current is lower (better)
	switch {
	case diff > threshold:
		return VerdictImproved
	case diff < -threshold:
		return VerdictRegressed
	default:
		return VerdictNeutral
	}
}

func recommend(status criteria.Status, improved, regressed int) Recommendation {
	if status == criteria.StatusFailed {
		return RecommendationReject
	}
	if regressed > 0 && improved == 0 {
		return RecommendationReject
	}
	if regressed > 0 && improved > 0 {
		return RecommendationReview
	}
	return RecommendationAccept
}
