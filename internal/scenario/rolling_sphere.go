package scenario

import (
	"github.com/sankum/simuforge/internal/numerics"
	"github.com/sankum/simuforge/internal/specmodel"
)

// buildRollingSphere places one sphere resting on the ground with a
// horizontal initial velocity so friction and momentum transfer are
// observable as it rolls to a stop (spec.md §3 rolling_sphere).
func buildRollingSphere(params map[string]float64, physics specmodel.PhysicsConfig) ([]specmodel.BodyDescriptor, []specmodel.JointDescriptor, error) {
	radius := paramOr(params, "radius", 0.5)
	speed := paramOr(params, "initial_speed", 5)
	friction := paramOr(params, "friction", 0.5)
	restitution := paramOr(params, "restitution", 0.1)
	mass := paramOr(params, "mass", 1)

	ground := groundDescriptor(0, friction)
	sphere := specmodel.BodyDescriptor{
		ID:   1,
		Name: "sphere",
		Kind: specmodel.Dynamic,
		Shape: specmodel.SphereShape(radius),
		InitialTransform: numerics.Transform{
			Position: numerics.Vec3{Y: radius},
			Rotation: numerics.Identity,
		},
		InitialLinearVelocity: numerics.Vec3{X: speed},
		Mass:                  mass,
		Friction:               friction,
		Restitution:            restitution,
	}

	return []specmodel.BodyDescriptor{ground, sphere}, nil, nil
}
