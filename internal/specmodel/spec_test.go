package specmodel

import (
	"errors"
	"testing"

	"github.com/sankum/simuforge/internal/errs"
	"github.com/sankum/simuforge/internal/numerics"
)

func validSpec() ExperimentSpec {
	return ExperimentSpec{
		Metadata: Metadata{Name: "falling-box"},
		Physics: PhysicsConfig{
			Timestep:         1.0 / 60.0,
			Gravity:          numerics.Vec3{Y: -9.81},
			SolverIterations: 8,
		},
		Duration: DurationConfig{Kind: DurationKindFixed, Steps: 60},
		Scenario: ScenarioConfig{Kind: "builtin", Name: ScenarioBoxStack, Params: map[string]float64{"count": 1}},
		Criteria: map[string]Criterion{},
	}
}

func TestValidateAcceptsWellFormedSpec(t *testing.T) {
	s := validSpec()
	if err := s.Validate(); err != nil {
		t.Fatalf("expected valid spec, got %v", err)
	}
}

func TestValidateRejectsEmptyName(t *testing.T) {
	s := validSpec()
	s.Metadata.Name = ""
	err := s.Validate()
	var specErr *errs.SpecInvalid
	if !errors.As(err, &specErr) {
		t.Fatalf("expected *errs.SpecInvalid, got %v", err)
	}
	if specErr.Field != "metadata.name" {
		t.Errorf("expected metadata.name field, got %q", specErr.Field)
	}
}

func TestValidateRejectsNonPositiveTimestep(t *testing.T) {
	s := validSpec()
	s.Physics.Timestep = 0
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for zero timestep")
	}
}

func TestValidateRejectsUnknownScenario(t *testing.T) {
	s := validSpec()
	s.Scenario.Name = "tornado"
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for unknown scenario")
	}
}

func TestValidateRejectsCriterionWithNoBounds(t *testing.T) {
	s := validSpec()
	s.Criteria["max_penetration_ever"] = Criterion{}
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for criterion with neither min nor max")
	}
}

func TestParseRejectsWrongAPIVersion(t *testing.T) {
	doc := []byte(`
apiVersion: simuforge/v2
kind: Experiment
metadata:
  name: x
spec: {}
`)
	if _, err := Parse(doc); err == nil {
		t.Fatal("expected rejection of unknown apiVersion")
	}
}

func TestParseRoundTrip(t *testing.T) {
	doc := []byte(`
apiVersion: simuforge/v1
kind: Experiment
metadata:
  name: falling-box
spec:
  physics:
    timestep: 0.0166666
    gravity: {x: 0, y: -9.81, z: 0}
    solver_iterations: 8
  duration:
    kind: fixed
    steps: 60
  scenario:
    kind: builtin
    name: box_stack
    params:
      count: 1
  criteria:
    max_penetration_ever:
      max: 0.01
`)
	spec, err := Parse(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Metadata.Name != "falling-box" {
		t.Errorf("expected name falling-box, got %q", spec.Metadata.Name)
	}
	if spec.Duration.Steps != 60 {
		t.Errorf("expected 60 steps, got %d", spec.Duration.Steps)
	}
	if spec.Criteria["max_penetration_ever"].Max == nil {
		t.Fatal("expected max_penetration_ever.max to be set")
	}
}
