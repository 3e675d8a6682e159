// Package solver defines the opaque rigid-body solver contract
// (spec.md §6.4) that Metric World drives. The core never assumes any
// concrete solver beyond this interface; internal/solver/fake supplies
// a deterministic reference implementation for tests and as the
// harness's embedded default.
package solver

import (
	"fmt"

	"github.com/sankum/simuforge/internal/numerics"
)

// BodyHandle is a stable reference to a body inserted into a Solver,
// returned in insertion order (spec.md §6.4(b)).
type BodyHandle int

// Config configures a Solver at construction time.
type Config struct {
	Iterations          int
	EnhancedDeterminism bool
	Seed                uint64
}

// BodySpec is everything a Solver needs to insert one body. It is the
// solver-facing projection of specmodel.BodyDescriptor.
type BodySpec struct {
	Static                 bool
	Shape                  Shape
	InitialTransform       numerics.Transform
	InitialLinearVelocity  numerics.Vec3
	InitialAngularVelocity numerics.Vec3
	Mass                   float64
	Friction               float64
	Restitution            float64
}

// ShapeKind mirrors specmodel.ShapeKind without importing specmodel,
// keeping the solver contract free of the spec layer's vocabulary.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
	ShapeCapsule
	ShapeCylinder
)

type Shape struct {
	Kind        ShapeKind
	HalfExtents numerics.Vec3
	Radius      float64
	HalfHeight  float64
}

// BodyState is a snapshot of one body's solver state, read back after
// a Step (spec.md §6.4(d)).
type BodyState struct {
	Transform       numerics.Transform
	LinearVelocity  numerics.Vec3
	AngularVelocity numerics.Vec3
	Sleeping        bool
}

// ContactPoint is one point within a ContactManifold.
type ContactPoint struct {
	Penetration float64
}

// ContactManifold is the set of contact points between a pair of
// colliders at the current step (GLOSSARY).
type ContactManifold struct {
	BodyA, BodyB BodyHandle
	Points       []ContactPoint
}

// Solver is the opaque collaborator Metric World drives. A
// conforming implementation must be deterministic when Config.
// EnhancedDeterminism is set: equal insertion sequences and equal
// Step call sequences must produce bit-identical BodyState and
// ContactManifold sequences.
type Solver interface {
	// NewBody inserts a body and returns its stable handle. Handles are
	// assigned in insertion order starting at 0.
	NewBody(spec BodySpec) (BodyHandle, error)

	// Step advances the simulation by exactly dt seconds under the
	// given gravity vector.
	Step(dt float64, gravity numerics.Vec3) error

	// BodyState reads back the current state of a previously inserted
	// body.
	BodyState(h BodyHandle) (BodyState, error)

	// Contacts returns the active contact manifolds as of the most
	// recent Step, as owned copies (spec.md §9 "Frame ownership") safe
	// to retain after the solver mutates further.
	Contacts() []ContactManifold

	// Close releases solver resources. Safe to call more than once.
	Close() error
}

// OutOfRangeError is returned by BodyState when asked about a handle
// that was never inserted (or has been invalidated by Close).
type OutOfRangeError struct {
	Handle int
	Count  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("solver: body handle %d out of range (have %d bodies)", e.Handle, e.Count)
}

// InvalidTimestepError is returned by Step when dt is not a positive
// number.
type InvalidTimestepError struct {
	Dt float64
}

func (e *InvalidTimestepError) Error() string {
	return fmt.Sprintf("solver: invalid timestep %v, must be positive", e.Dt)
}
