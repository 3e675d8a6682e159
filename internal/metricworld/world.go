package metricworld

import (
	"math"

	"github.com/sankum/simuforge/internal/errs"
	"github.com/sankum/simuforge/internal/numerics"
	"github.com/sankum/simuforge/internal/scenario"
	"github.com/sankum/simuforge/internal/solver"
	"github.com/sankum/simuforge/internal/specmodel"
)

// Factory constructs a fresh, empty Solver configured per cfg. Reset
// calls it again to rebuild the simulation from scratch with the same
// spec (spec.md §4.2 "reset").
type Factory func(cfg solver.Config) solver.Solver

// MetricWorld owns the solver instance, the descriptor table, the
// current step counter, and the cached last MetricFrame (spec.md
// §4.2). It is not safe for concurrent use.
type MetricWorld struct {
	spec    *specmodel.ExperimentSpec
	bodies  []specmodel.BodyDescriptor
	factory Factory

	sv        solver.Solver
	handles   []solver.BodyHandle
	step      int
	lastFrame *MetricFrame
}

// New builds the scenario for spec, inserts its bodies into a fresh
// solver produced by factory, and returns a MetricWorld ready to step.
func New(spec *specmodel.ExperimentSpec, factory Factory) (*MetricWorld, error) {
	bodies, _, err := scenario.Build(spec.Scenario, spec.Physics)
	if err != nil {
		return nil, err
	}

	w := &MetricWorld{spec: spec, bodies: bodies, factory: factory}
	if err := w.init(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *MetricWorld) init() error {
	w.sv = w.factory(solver.Config{
		Iterations:          w.spec.Physics.SolverIterations,
		EnhancedDeterminism: w.spec.Physics.EnhancedDeterminism,
		Seed:                w.spec.Physics.Seed,
	})

	w.handles = make([]solver.BodyHandle, len(w.bodies))
	for i, b := range w.bodies {
		spec := solver.BodySpec{
			Static:                 b.Kind == specmodel.Static,
			Shape:                  toSolverShape(b.Shape),
			InitialTransform:       b.InitialTransform,
			InitialLinearVelocity:  b.InitialLinearVelocity,
			InitialAngularVelocity: b.InitialAngularVelocity,
			Mass:                   b.Mass,
			Friction:               b.Friction,
			Restitution:            b.Restitution,
		}
		h, err := w.sv.NewBody(spec)
		if err != nil {
			return &errs.SolverError{Message: "inserting body " + b.Name, Wrapped: err}
		}
		w.handles[i] = h
	}

	w.step = 0
	w.lastFrame = nil
	return nil
}

// boundingSphereInertia returns the scalar moment of inertia of a
// solid sphere bounding desc's shape, the fallback spec.md §4.2
// mandates when the solver does not expose a full inertia tensor:
// Iₛ = (2/5)·m·r², with r the bounding sphere's radius.
func boundingSphereInertia(shape specmodel.Shape, mass float64) float64 {
	r := boundingSphereRadius(shape)
	return 0.4 * mass * r * r
}

func boundingSphereRadius(shape specmodel.Shape) float64 {
	switch shape.Kind {
	case specmodel.ShapeBox:
		return shape.HalfExtents.Length()
	case specmodel.ShapeSphere:
		return shape.Radius
	case specmodel.ShapeCapsule:
		return shape.Radius + shape.HalfHeight
	case specmodel.ShapeCylinder:
		return math.Hypot(shape.Radius, shape.HalfHeight)
	default:
		return 0
	}
}

func toSolverShape(s specmodel.Shape) solver.Shape {
	return solver.Shape{
		Kind:        solver.ShapeKind(s.Kind),
		HalfExtents: s.HalfExtents,
		Radius:      s.Radius,
		HalfHeight:  s.HalfHeight,
	}
}

// TargetSteps is the total number of steps the spec's duration calls for.
func (w *MetricWorld) TargetSteps() int { return w.spec.Duration.Steps }

// CurrentStep is the number of steps completed so far.
func (w *MetricWorld) CurrentStep() int { return w.step }

// IsComplete reports whether Step has been called TargetSteps times.
func (w *MetricWorld) IsComplete() bool { return w.step >= w.TargetSteps() }

// Step advances the solver by exactly one timestep and extracts the
// resulting MetricFrame. It fails with errs.AlreadyComplete once
// IsComplete is true.
func (w *MetricWorld) Step() (MetricFrame, error) {
	if w.IsComplete() {
		return MetricFrame{}, &errs.AlreadyComplete{Step: w.step, Target: w.TargetSteps()}
	}

	if err := w.sv.Step(w.spec.Physics.Timestep, w.spec.Physics.Gravity); err != nil {
		return MetricFrame{}, &errs.SolverError{Message: "stepping solver", Wrapped: err}
	}

	frame, err := w.extract()
	if err != nil {
		return MetricFrame{}, err
	}

	w.step++
	w.lastFrame = &frame
	return frame, nil
}

// LastFrame returns the most recently extracted frame, or false if
// Step has never been called (or Reset since).
func (w *MetricWorld) LastFrame() (MetricFrame, bool) {
	if w.lastFrame == nil {
		return MetricFrame{}, false
	}
	return *w.lastFrame, true
}

// Reset discards solver state and rebuilds it from the same spec,
// returning the step counter to 0.
func (w *MetricWorld) Reset() error {
	if w.sv != nil {
		_ = w.sv.Close()
	}
	return w.init()
}

// Close releases the underlying solver. Safe to call more than once.
func (w *MetricWorld) Close() error {
	if w.sv == nil {
		return nil
	}
	err := w.sv.Close()
	w.sv = nil
	return err
}

func (w *MetricWorld) extract() (MetricFrame, error) {
	gravityMagnitude := w.spec.Physics.Gravity.Length()

	var kinetic, potential float64
	var linMomentum, angMomentum numerics.Vec3
	bodyFrames := make([]BodyFrame, len(w.bodies))

	for i, desc := range w.bodies {
		state, err := w.sv.BodyState(w.handles[i])
		if err != nil {
			return MetricFrame{}, &errs.SolverError{Message: "reading body state", Wrapped: err}
		}

		bodyFrames[i] = BodyFrame{
			ID:              desc.ID,
			Name:            desc.Name,
			Transform:       state.Transform,
			LinearVelocity:  state.LinearVelocity,
			AngularVelocity: state.AngularVelocity,
			Sleeping:        state.Sleeping,
		}

		if desc.Kind != specmodel.Dynamic {
			continue
		}

		scalarInertia := boundingSphereInertia(desc.Shape, desc.Mass)

		speedSq := state.LinearVelocity.LengthSquared()
		angSpeedSq := state.AngularVelocity.LengthSquared()
		kinetic += 0.5*desc.Mass*speedSq + 0.5*scalarInertia*angSpeedSq
		potential += desc.Mass * gravityMagnitude * state.Transform.Position.Y

		linMomentum = linMomentum.Add(state.LinearVelocity.Scale(desc.Mass))
		angMomentum = angMomentum.Add(state.AngularVelocity.Scale(scalarInertia))
	}

	contacts := w.extractContacts()

	return MetricFrame{
		Step: w.step,
		Time: float64(w.step) * w.spec.Physics.Timestep,
		Energy: EnergyFrame{
			Kinetic:   kinetic,
			Potential: potential,
			Total:     kinetic + potential,
		},
		Momentum: MomentumFrame{
			Linear:           linMomentum,
			Angular:          angMomentum,
			LinearMagnitude:  linMomentum.Length(),
			AngularMagnitude: angMomentum.Length(),
		},
		Contacts: contacts,
		Bodies:   bodyFrames,
	}, nil
}

func (w *MetricWorld) extractContacts() ContactFrame {
	manifolds := w.sv.Contacts()

	var frame ContactFrame
	for _, m := range manifolds {
		if len(m.Points) == 0 {
			continue
		}
		frame.ContactCount++

		maxPen := 0.0
		for _, p := range m.Points {
			frame.TotalPenetration += p.Penetration
			maxPen = math.Max(maxPen, p.Penetration)
		}
		if maxPen > frame.MaxPenetration {
			frame.MaxPenetration = maxPen
		}
		if maxPen > PenetrationWarnThreshold {
			frame.ConstraintViolations++
		}
	}
	return frame
}
