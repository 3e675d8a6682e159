// Package metricworld wraps an opaque solver.Solver with the
// per-step metric extraction contract (spec.md §4.2): energy,
// momentum, contact accounting and per-body state, all computed
// deterministically from the solver's post-step state.
package metricworld

import "github.com/sankum/simuforge/internal/numerics"

// PenetrationWarnThreshold (PEN_WARN) is the penetration depth above
// which a contact counts as a constraint violation.
const PenetrationWarnThreshold = 1e-3

// EnergyFrame is the kinetic/potential/total energy decomposition for
// one step. Total is reported as kinetic+potential, not independently
// measured, so the two are equal to floating-point epsilon by
// construction.
type EnergyFrame struct {
	Kinetic   float64 `json:"kinetic" yaml:"kinetic"`
	Potential float64 `json:"potential" yaml:"potential"`
	Total     float64 `json:"total" yaml:"total"`
}

// MomentumFrame is the summed linear and angular momentum of all
// dynamic bodies, in body-id order (spec.md §9 "Body ordering").
type MomentumFrame struct {
	Linear           numerics.Vec3 `json:"linear" yaml:"linear"`
	Angular          numerics.Vec3 `json:"angular" yaml:"angular"`
	LinearMagnitude  float64       `json:"linear_magnitude" yaml:"linear_magnitude"`
	AngularMagnitude float64       `json:"angular_magnitude" yaml:"angular_magnitude"`
}

// ContactFrame is the per-step contact accounting extracted from the
// solver's active contact manifolds.
type ContactFrame struct {
	ContactCount         int     `json:"contact_count" yaml:"contact_count"`
	MaxPenetration       float64 `json:"max_penetration" yaml:"max_penetration"`
	TotalPenetration     float64 `json:"total_penetration" yaml:"total_penetration"`
	ConstraintViolations int     `json:"constraint_violations" yaml:"constraint_violations"`
}

// BodyFrame is one body's readback state at a given step.
type BodyFrame struct {
	ID              int                `json:"id" yaml:"id"`
	Name            string             `json:"name" yaml:"name"`
	Transform       numerics.Transform `json:"transform" yaml:"transform"`
	LinearVelocity  numerics.Vec3      `json:"linear_velocity" yaml:"linear_velocity"`
	AngularVelocity numerics.Vec3      `json:"angular_velocity" yaml:"angular_velocity"`
	Sleeping        bool               `json:"sleeping" yaml:"sleeping"`
}

// MetricFrame is one immutable snapshot of the simulation, emitted
// once per step in strictly increasing step order (spec.md §4.2).
type MetricFrame struct {
	Step     int           `json:"step" yaml:"step"`
	Time     float64       `json:"time" yaml:"time"`
	Energy   EnergyFrame   `json:"energy" yaml:"energy"`
	Momentum MomentumFrame `json:"momentum" yaml:"momentum"`
	Contacts ContactFrame  `json:"contacts" yaml:"contacts"`
	Bodies   []BodyFrame   `json:"bodies" yaml:"bodies"`
}
