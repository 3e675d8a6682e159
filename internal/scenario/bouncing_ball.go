package scenario

import (
	"github.com/sankum/simuforge/internal/numerics"
	"github.com/sankum/simuforge/internal/specmodel"
)

// buildBouncingBall drops one sphere from drop_height above the ground
// with a restitution high enough to produce several visible bounces
// before settling (spec.md §3 bouncing_ball).
func buildBouncingBall(params map[string]float64, physics specmodel.PhysicsConfig) ([]specmodel.BodyDescriptor, []specmodel.JointDescriptor, error) {
	radius := paramOr(params, "radius", 0.5)
	dropHeight := paramOr(params, "drop_height", 10)
	restitution := paramOr(params, "restitution", 0.8)
	friction := paramOr(params, "friction", 0.2)
	mass := paramOr(params, "mass", 1)

	ground := groundDescriptor(0, friction)
	ball := specmodel.BodyDescriptor{
		ID:   1,
		Name: "ball",
		Kind: specmodel.Dynamic,
		Shape: specmodel.SphereShape(radius),
		InitialTransform: numerics.Transform{
			Position: numerics.Vec3{Y: dropHeight},
			Rotation: numerics.Identity,
		},
		Mass:        mass,
		Friction:    friction,
		Restitution: restitution,
	}

	return []specmodel.BodyDescriptor{ground, ball}, nil, nil
}
