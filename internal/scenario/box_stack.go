package scenario

import (
	"github.com/sankum/simuforge/internal/numerics"
	"github.com/sankum/simuforge/internal/specmodel"
)

// buildBoxStack places count boxes directly above a ground plane, each
// separated from its neighbour by a small initial gap so the stack
// starts slightly unsettled and the harness can observe it come to
// rest (spec.md §3 box_stack).
func buildBoxStack(params map[string]float64, physics specmodel.PhysicsConfig) ([]specmodel.BodyDescriptor, []specmodel.JointDescriptor, error) {
	count := int(paramOr(params, "count", 10))
	if count < 1 {
		count = 1
	}
	halfExtent := paramOr(params, "half_extent", 0.5)
	gap := paramOr(params, "gap", 1e-3)
	friction := paramOr(params, "friction", 0.5)
	restitution := paramOr(params, "restitution", 0)
	mass := paramOr(params, "mass", 1)

	bodies := []specmodel.BodyDescriptor{groundDescriptor(0, friction)}

	y := halfExtent
	for i := 0; i < count; i++ {
		bodies = append(bodies, specmodel.BodyDescriptor{
			ID:   i + 1,
			Name: boxName(i),
			Kind: specmodel.Dynamic,
			Shape: specmodel.BoxShape(numerics.Vec3{X: halfExtent, Y: halfExtent, Z: halfExtent}),
			InitialTransform: numerics.Transform{
				Position: numerics.Vec3{Y: y},
				Rotation: numerics.Identity,
			},
			Mass:        mass,
			Friction:    friction,
			Restitution: restitution,
		})
		y += 2*halfExtent + gap
	}

	return bodies, nil, nil
}

func boxName(i int) string {
	names := [...]string{"box_a", "box_b", "box_c", "box_d", "box_e", "box_f", "box_g", "box_h", "box_i", "box_j"}
	if i < len(names) {
		return names[i]
	}
	return "box_extra"
}
