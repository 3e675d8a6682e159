package specmodel

import "github.com/sankum/simuforge/internal/numerics"

// BodyKind distinguishes simulated (Dynamic) from immovable (Static)
// bodies. This is the sole authority for static/dynamic classification
// -- nothing in the harness may infer it from Name (spec.md §9).
type BodyKind int

const (
	Dynamic BodyKind = iota
	Static
)

func (k BodyKind) String() string {
	if k == Static {
		return "static"
	}
	return "dynamic"
}

// ShapeKind tags which field of Shape is populated.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
	ShapeCapsule
	ShapeCylinder
)

// Shape is a tagged-union collider description. Only the field named
// by Kind is meaningful.
type Shape struct {
	Kind        ShapeKind
	HalfExtents numerics.Vec3 // Box
	Radius      float64       // Sphere, Capsule, Cylinder
	HalfHeight  float64       // Capsule, Cylinder
}

func BoxShape(halfExtents numerics.Vec3) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: halfExtents}
}

func SphereShape(radius float64) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius}
}

func CapsuleShape(radius, halfHeight float64) Shape {
	return Shape{Kind: ShapeCapsule, Radius: radius, HalfHeight: halfHeight}
}

func CylinderShape(radius, halfHeight float64) Shape {
	return Shape{Kind: ShapeCylinder, Radius: radius, HalfHeight: halfHeight}
}

// BodyDescriptor is produced by the Scenario Builder in deterministic,
// monotonically-assigned id order and consumed by the Metric World to
// populate the solver (spec.md §3).
type BodyDescriptor struct {
	ID                    int
	Name                  string
	Kind                  BodyKind
	Shape                 Shape
	InitialTransform      numerics.Transform
	InitialLinearVelocity numerics.Vec3
	InitialAngularVelocity numerics.Vec3
	Mass                  float64 // meaningless for Static bodies (infinite mass)
	Friction              float64
	Restitution           float64
}

// JointDescriptor is reserved for scenarios that couple bodies with
// constraints. No current builtin scenario emits one; the slot exists
// so the Solver contract's joint-capable bodies can be exercised by
// future scenarios without changing the Scenario Builder signature
// (SPEC_FULL.md Open Question #2).
type JointDescriptor struct {
	BodyA, BodyB int
	Kind         string
	Params       map[string]float64
}
