package metricworld

import (
	"errors"
	"math"
	"testing"

	"github.com/sankum/simuforge/internal/errs"
	"github.com/sankum/simuforge/internal/numerics"
	"github.com/sankum/simuforge/internal/solver"
	"github.com/sankum/simuforge/internal/solver/fake"
	"github.com/sankum/simuforge/internal/specmodel"
)

func fakeFactory(cfg solver.Config) solver.Solver {
	return fake.New(cfg)
}

func fallingBoxSpec(steps int) *specmodel.ExperimentSpec {
	return &specmodel.ExperimentSpec{
		Metadata: specmodel.Metadata{Name: "falling-box"},
		Physics: specmodel.PhysicsConfig{
			Timestep:         1.0 / 60.0,
			Gravity:          numerics.Vec3{Y: -9.81},
			SolverIterations: 8,
		},
		Duration: specmodel.DurationConfig{Kind: specmodel.DurationKindFixed, Steps: steps},
		Scenario: specmodel.ScenarioConfig{Kind: "builtin", Name: specmodel.ScenarioBoxStack, Params: map[string]float64{"count": 1}},
		Criteria: map[string]specmodel.Criterion{},
	}
}

func TestStepEmitsStrictlyIncreasingSteps(t *testing.T) {
	w, err := New(fallingBoxSpec(10), fakeFactory)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 10; i++ {
		frame, err := w.Step()
		if err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
		if frame.Step != i {
			t.Errorf("expected step %d, got %d", i, frame.Step)
		}
	}
	if !w.IsComplete() {
		t.Error("expected world to be complete after target_steps calls")
	}
}

func TestStepPastCompletionReturnsAlreadyComplete(t *testing.T) {
	w, err := New(fallingBoxSpec(1), fakeFactory)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := w.Step(); err != nil {
		t.Fatalf("first Step: %v", err)
	}
	_, err = w.Step()
	var ac *errs.AlreadyComplete
	if !errors.As(err, &ac) {
		t.Fatalf("expected *errs.AlreadyComplete, got %v", err)
	}
}

func TestEnergyDecomposesToKineticPlusPotential(t *testing.T) {
	w, err := New(fallingBoxSpec(30), fakeFactory)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 30; i++ {
		frame, err := w.Step()
		if err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
		total := frame.Energy.Kinetic + frame.Energy.Potential
		tolerance := 1e-6 * math.Max(1, math.Abs(frame.Energy.Total))
		if math.Abs(frame.Energy.Total-total) > tolerance {
			t.Errorf("step %d: total %.9f != kinetic+potential %.9f", i, frame.Energy.Total, total)
		}
	}
}

func TestFrameTimeIsStepTimesTimestep(t *testing.T) {
	w, err := New(fallingBoxSpec(5), fakeFactory)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	dt := 1.0 / 60.0
	for i := 0; i < 5; i++ {
		frame, err := w.Step()
		if err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
		want := float64(i) * dt
		if frame.Time != want {
			t.Errorf("frame %d: Time = %v, want %v", i, frame.Time, want)
		}
	}
}

func TestBoundingSphereInertiaUsesShapeNotMassAlone(t *testing.T) {
	boxShape := specmodel.BoxShape(numerics.Vec3{X: 1, Y: 1, Z: 1})
	sphereShape := specmodel.SphereShape(0.5)

	boxInertia := boundingSphereInertia(boxShape, 2)
	sphereInertia := boundingSphereInertia(sphereShape, 2)

	if boxInertia == sphereInertia {
		t.Fatalf("expected different shapes with the same mass to produce different scalar inertia, both gave %v", boxInertia)
	}

	r := boxShape.HalfExtents.Length()
	want := 0.4 * 2 * r * r
	if math.Abs(boxInertia-want) > 1e-12 {
		t.Errorf("box inertia = %v, want %v (0.4*m*r^2 with r = half-extents length)", boxInertia, want)
	}

	wantSphere := 0.4 * 2 * 0.5 * 0.5
	if math.Abs(sphereInertia-wantSphere) > 1e-12 {
		t.Errorf("sphere inertia = %v, want %v", sphereInertia, wantSphere)
	}
}

func TestBodyIDsAreDenseAndStable(t *testing.T) {
	w, err := New(fallingBoxSpec(5), fakeFactory)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 5; i++ {
		frame, err := w.Step()
		if err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
		for j, b := range frame.Bodies {
			if b.ID != j {
				t.Errorf("step %d: body at index %d has id %d, expected dense ids", i, j, b.ID)
			}
		}
	}
}

func TestResetIdempotence(t *testing.T) {
	spec := fallingBoxSpec(40)

	direct, err := New(spec, fakeFactory)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var directFrames []MetricFrame
	for !direct.IsComplete() {
		f, err := direct.Step()
		if err != nil {
			t.Fatalf("direct Step: %v", err)
		}
		directFrames = append(directFrames, f)
	}

	restarted, err := New(spec, fakeFactory)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 10; i++ {
		if _, err := restarted.Step(); err != nil {
			t.Fatalf("restarted partial Step: %v", err)
		}
	}
	if err := restarted.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if restarted.CurrentStep() != 0 {
		t.Fatalf("expected step 0 after reset, got %d", restarted.CurrentStep())
	}
	var restartedFrames []MetricFrame
	for !restarted.IsComplete() {
		f, err := restarted.Step()
		if err != nil {
			t.Fatalf("restarted Step: %v", err)
		}
		restartedFrames = append(restartedFrames, f)
	}

	if len(directFrames) != len(restartedFrames) {
		t.Fatalf("expected equal frame counts, got %d and %d", len(directFrames), len(restartedFrames))
	}
	for i := range directFrames {
		if directFrames[i].Energy.Total != restartedFrames[i].Energy.Total {
			t.Errorf("frame %d: energy diverged after reset (%.9f vs %.9f)", i, directFrames[i].Energy.Total, restartedFrames[i].Energy.Total)
		}
	}
}
