// Package specmodel defines the typed, immutable in-memory form of a
// declarative experiment description (spec.md §3) and the bodies the
// Scenario Builder materialises from it. Parsing is a thin
// deserialisation step over this package's struct tags; all semantic
// validation happens in Validate.
package specmodel

import (
	"github.com/sankum/simuforge/internal/numerics"
)

// APIVersion is the only accepted value of the top-level apiVersion
// field (spec.md §6.1).
const APIVersion = "simuforge/v1"

// Kind is the only accepted value of the top-level kind field.
const Kind = "Experiment"

// Document is the top-level wire envelope accepted by Parse.
type Document struct {
	APIVersion string       `yaml:"apiVersion" json:"apiVersion"`
	Kind       string       `yaml:"kind" json:"kind"`
	Metadata   Metadata     `yaml:"metadata" json:"metadata"`
	Spec       ExperimentSpec `yaml:"spec" json:"spec"`
}

// Metadata identifies an experiment.
type Metadata struct {
	Name string `yaml:"name" json:"name"`
}

// ExperimentSpec is the immutable, validated description of one
// experiment run, exactly spec.md §3.
type ExperimentSpec struct {
	Metadata Metadata       `yaml:"-" json:"-"`
	Physics  PhysicsConfig  `yaml:"physics" json:"physics"`
	Duration DurationConfig `yaml:"duration" json:"duration"`
	Scenario ScenarioConfig `yaml:"scenario" json:"scenario"`
	Metrics  MetricsConfig  `yaml:"metrics" json:"metrics"`
	Criteria map[string]Criterion `yaml:"criteria" json:"criteria"`
}

// PhysicsConfig is spec.md's physics block.
type PhysicsConfig struct {
	Timestep            float64       `yaml:"timestep" json:"timestep"`
	Gravity             numerics.Vec3 `yaml:"gravity" json:"gravity"`
	SolverIterations    int           `yaml:"solver_iterations" json:"solver_iterations"`
	EnhancedDeterminism bool          `yaml:"enhanced_determinism" json:"enhanced_determinism"`
	Seed                uint64        `yaml:"seed" json:"seed"`
}

// DurationKindFixed is the only duration kind the core accepts
// (spec.md §3, "Only fixed duration in core scope").
const DurationKindFixed = "fixed"

// DurationConfig describes how long a run lasts. The Kind field keeps
// the wire format extensible (Open Question §1 in SPEC_FULL.md) even
// though Validate rejects anything but "fixed" today.
type DurationConfig struct {
	Kind  string `yaml:"kind" json:"kind"`
	Steps int    `yaml:"steps" json:"steps"`
}

// ScenarioConfig names a builtin scenario and its parameter bag.
type ScenarioConfig struct {
	Kind   string             `yaml:"kind" json:"kind"`
	Name   string             `yaml:"name" json:"name"`
	Params map[string]float64 `yaml:"params" json:"params"`
}

// Builtin scenario names (spec.md §4.1).
const (
	ScenarioBoxStack      = "box_stack"
	ScenarioRollingSphere = "rolling_sphere"
	ScenarioBouncingBall  = "bouncing_ball"
	ScenarioFrictionRamp  = "friction_ramp"
)

// MetricsConfig selects which per-frame and aggregate tags are
// collected. In this implementation every recognised tag is always
// computed (there is no incremental cost to skipping one), so these
// sets are informational only: Validate does not check them and they
// don't gate computation.
type MetricsConfig struct {
	PerFrame  []string `yaml:"per_frame" json:"per_frame"`
	Aggregate []string `yaml:"aggregate" json:"aggregate"`
}

// Criterion is a min/max threshold applied to a named aggregate.
type Criterion struct {
	Min    *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max    *float64 `yaml:"max,omitempty" json:"max,omitempty"`
}
