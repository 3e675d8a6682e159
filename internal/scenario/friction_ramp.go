package scenario

import (
	"github.com/sankum/simuforge/internal/numerics"
	"github.com/sankum/simuforge/internal/specmodel"
)

// buildFrictionRamp places a box on an inclined static ramp so the
// harness can observe whether friction is enough to hold it in place
// or whether it slides (spec.md §3 friction_ramp). The box starts with
// the same tilt as the ramp so its rest face sits flush against the
// ramp surface.
func buildFrictionRamp(params map[string]float64, physics specmodel.PhysicsConfig) ([]specmodel.BodyDescriptor, []specmodel.JointDescriptor, error) {
	angle := paramOr(params, "ramp_angle", 0.5)
	halfLength := paramOr(params, "ramp_half_length", 5)
	halfThickness := paramOr(params, "ramp_half_thickness", 0.3)
	halfWidth := paramOr(params, "ramp_half_width", 2)
	boxHalfExtent := paramOr(params, "box_half_extent", 0.3)
	startOffset := paramOr(params, "start_offset", halfLength*0.7)
	friction := paramOr(params, "friction", 0.3)
	restitution := paramOr(params, "restitution", 0)
	mass := paramOr(params, "mass", 1)

	tilt := numerics.FromAxisAngle(numerics.Vec3{Z: 1}, angle)

	ramp := specmodel.BodyDescriptor{
		ID:   0,
		Name: "ramp",
		Kind: specmodel.Static,
		Shape: specmodel.BoxShape(numerics.Vec3{X: halfLength, Y: halfThickness, Z: halfWidth}),
		InitialTransform: numerics.Transform{
			Position: numerics.Vec3{},
			Rotation: tilt,
		},
		Friction: friction,
	}

	localRest := numerics.Vec3{X: startOffset, Y: halfThickness + boxHalfExtent}
	box := specmodel.BodyDescriptor{
		ID:   1,
		Name: "box",
		Kind: specmodel.Dynamic,
		Shape: specmodel.BoxShape(numerics.Vec3{X: boxHalfExtent, Y: boxHalfExtent, Z: boxHalfExtent}),
		InitialTransform: numerics.Transform{
			Position: tilt.RotateVec3(localRest),
			Rotation: tilt,
		},
		Mass:        mass,
		Friction:    friction,
		Restitution: restitution,
	}

	return []specmodel.BodyDescriptor{ramp, box}, nil, nil
}
