// Package scenario builds the body and joint descriptors for the
// builtin scenarios named in an experiment spec (spec.md §3). Each
// builder is a pure function: same name, params and physics config in,
// same descriptor slice out, with bodies always ordered so that body
// IDs are deterministic across runs (spec.md §9 "Body ordering").
package scenario

import (
	"fmt"

	"github.com/sankum/simuforge/internal/numerics"
	"github.com/sankum/simuforge/internal/specmodel"
)

// Builder constructs the bodies and joints for one scenario kind given
// its params and the experiment's physics configuration.
type Builder func(params map[string]float64, physics specmodel.PhysicsConfig) ([]specmodel.BodyDescriptor, []specmodel.JointDescriptor, error)

var registry = map[string]Builder{
	specmodel.ScenarioBoxStack:      buildBoxStack,
	specmodel.ScenarioRollingSphere: buildRollingSphere,
	specmodel.ScenarioBouncingBall:  buildBouncingBall,
	specmodel.ScenarioFrictionRamp:  buildFrictionRamp,
}

// UnknownScenarioError is returned by Build for a name with no
// registered builder. specmodel.Validate rejects unknown names before
// a spec reaches Build, so this only fires for callers that construct
// a ScenarioConfig by hand.
type UnknownScenarioError struct {
	Name string
}

func (e *UnknownScenarioError) Error() string {
	return fmt.Sprintf("scenario: unknown builtin %q", e.Name)
}

// Names lists the registered builtin scenario names in a fixed order
// for stable CLI output (the `scenarios` command, spec.md §6.3).
func Names() []string {
	return []string{
		specmodel.ScenarioBoxStack,
		specmodel.ScenarioRollingSphere,
		specmodel.ScenarioBouncingBall,
		specmodel.ScenarioFrictionRamp,
	}
}

// Build dispatches to the registered builder for cfg.Name.
func Build(cfg specmodel.ScenarioConfig, physics specmodel.PhysicsConfig) ([]specmodel.BodyDescriptor, []specmodel.JointDescriptor, error) {
	builder, ok := registry[cfg.Name]
	if !ok {
		return nil, nil, &UnknownScenarioError{Name: cfg.Name}
	}
	return builder(cfg.Params, physics)
}

func paramOr(params map[string]float64, key string, fallback float64) float64 {
	if v, ok := params[key]; ok {
		return v
	}
	return fallback
}

// groundDescriptor returns a large static box whose top face sits at
// y=0, the common floor every scenario but the ramp rests bodies on.
func groundDescriptor(id int, friction float64) specmodel.BodyDescriptor {
	return specmodel.BodyDescriptor{
		ID:   id,
		Name: "ground",
		Kind: specmodel.Static,
		Shape: specmodel.BoxShape(numerics.Vec3{X: 50, Y: 0.5, Z: 50}),
		InitialTransform: numerics.Transform{
			Position: numerics.Vec3{Y: -0.5},
			Rotation: numerics.Identity,
		},
		Friction: friction,
	}
}
