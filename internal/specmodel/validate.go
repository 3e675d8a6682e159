package specmodel

import (
	"math"

	"github.com/sankum/simuforge/internal/errs"
)

var recognisedScenarios = map[string]bool{
	ScenarioBoxStack:      true,
	ScenarioRollingSphere: true,
	ScenarioBouncingBall:  true,
	ScenarioFrictionRamp:  true,
}

// Validate checks the structural invariants spec.md §7 assigns to
// SpecInvalid: non-finite floats, empty names, unknown scenarios,
// negative counts, non-positive timesteps. It returns the first
// violation found as *errs.SpecInvalid.
func (s *ExperimentSpec) Validate() error {
	if s.Metadata.Name == "" {
		return &errs.SpecInvalid{Field: "metadata.name", Reason: "must be non-empty"}
	}

	if !isFinitePositive(s.Physics.Timestep) {
		return &errs.SpecInvalid{Field: "physics.timestep", Reason: "must be a positive finite float"}
	}
	if !isFiniteVec3(s.Physics.Gravity) {
		return &errs.SpecInvalid{Field: "physics.gravity", Reason: "components must be finite"}
	}
	if s.Physics.SolverIterations <= 0 {
		return &errs.SpecInvalid{Field: "physics.solver_iterations", Reason: "must be a positive integer"}
	}

	if s.Duration.Kind != DurationKindFixed {
		return &errs.SpecInvalid{Field: "duration.kind", Reason: "only \"fixed\" is supported"}
	}
	if s.Duration.Steps <= 0 {
		return &errs.SpecInvalid{Field: "duration.steps", Reason: "must be a positive integer"}
	}

	if s.Scenario.Kind != "builtin" {
		return &errs.SpecInvalid{Field: "scenario.kind", Reason: "only \"builtin\" is supported"}
	}
	if !recognisedScenarios[s.Scenario.Name] {
		return &errs.SpecInvalid{Field: "scenario.name", Reason: "unknown scenario: " + s.Scenario.Name}
	}

	for tag, c := range s.Criteria {
		if c.Min == nil && c.Max == nil {
			return &errs.SpecInvalid{Field: "criteria." + tag, Reason: "must declare at least one of min/max"}
		}
		if c.Min != nil && !isFinite(*c.Min) {
			return &errs.SpecInvalid{Field: "criteria." + tag + ".min", Reason: "must be finite"}
		}
		if c.Max != nil && !isFinite(*c.Max) {
			return &errs.SpecInvalid{Field: "criteria." + tag + ".max", Reason: "must be finite"}
		}
	}

	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func isFinitePositive(f float64) bool {
	return isFinite(f) && f > 0
}

func isFiniteVec3(v interface{ IsFinite() bool }) bool {
	return v.IsFinite()
}
