// Package fake implements a small, deterministic reference Solver
// (spec.md §6.4) used by tests and as simuforge's embedded default
// when no production physics engine is wired in. It is a scaled-down
// sequential-impulse solver in the spirit of the Bullet-derived
// PGS solver referenced by the physics packages this module learns
// from: contacts are converted into velocity constraints and solved
// iteratively, then positions are corrected for leftover penetration.
//
// It is deliberately not a general-purpose rigid-body engine: shapes
// never rotate away from the axis they were created with (no dynamic
// body in the builtin scenarios carries initial angular velocity, so
// this is exact for them, not an approximation), and contacts are
// only generated along the world/ramp "up" axis rather than from full
// narrow-phase collision detection. That is enough to support_stack,
// roll, bounce and slide boxes, spheres and ramps deterministically.
package fake

import (
	"math"
	"sort"

	"github.com/sankum/simuforge/internal/numerics"
	"github.com/sankum/simuforge/internal/solver"
)

const (
	// baumgarteFactor is the fraction of remaining penetration
	// corrected positionally after each step, trading a little energy
	// for guaranteed non-growing overlap (standard Baumgarte stabilisation).
	baumgarteFactor = 0.2

	// sleepLinearThreshold and sleepAngularThreshold bound the speed
	// below which a body accumulates sleep time.
	sleepLinearThreshold  = 0.01
	sleepAngularThreshold = 0.01

	// sleepSeconds is how long a body must stay below threshold before
	// it is put to sleep (and its integration frozen).
	sleepSeconds = 0.5
)

type body struct {
	spec     solver.BodySpec
	invMass  float64
	transform numerics.Transform
	linVel   numerics.Vec3
	angVel   numerics.Vec3
	sleeping bool
	restTime float64
}

func newBody(spec solver.BodySpec) *body {
	invMass := 0.0
	if !spec.Static && spec.Mass > 0 {
		invMass = 1 / spec.Mass
	}
	return &body{
		spec:      spec,
		invMass:   invMass,
		transform: spec.InitialTransform,
		linVel:    spec.InitialLinearVelocity,
		angVel:    spec.InitialAngularVelocity,
	}
}

// Solver is the deterministic reference implementation of solver.Solver.
type Solver struct {
	cfg     solver.Config
	bodies  []*body
	contacts []solver.ContactManifold
}

// New constructs a fake solver configured with the given iteration
// count and determinism flag. EnhancedDeterminism has no effect here
// (this solver is always single-threaded and order-stable) beyond
// being recorded, matching the contract's requirement that it be
// accepted.
func New(cfg solver.Config) *Solver {
	return &Solver{cfg: cfg}
}

func (s *Solver) NewBody(spec solver.BodySpec) (solver.BodyHandle, error) {
	s.bodies = append(s.bodies, newBody(spec))
	return solver.BodyHandle(len(s.bodies) - 1), nil
}

func (s *Solver) BodyState(h solver.BodyHandle) (solver.BodyState, error) {
	b, err := s.body(h)
	if err != nil {
		return solver.BodyState{}, err
	}
	return solver.BodyState{
		Transform:       b.transform,
		LinearVelocity:  b.linVel,
		AngularVelocity: b.angVel,
		Sleeping:        b.sleeping,
	}, nil
}

func (s *Solver) Contacts() []solver.ContactManifold {
	out := make([]solver.ContactManifold, len(s.contacts))
	copy(out, s.contacts)
	return out
}

func (s *Solver) Close() error {
	s.bodies = nil
	s.contacts = nil
	return nil
}

func (s *Solver) body(h solver.BodyHandle) (*body, error) {
	if int(h) < 0 || int(h) >= len(s.bodies) {
		return nil, &solver.OutOfRangeError{Handle: int(h), Count: len(s.bodies)}
	}
	return s.bodies[h], nil
}

// supportExtent is the half-thickness of shape along its local "up"
// axis -- the distance from center to the nearest face in the
// direction the shape rests against a support.
func supportExtent(shape solver.Shape) float64 {
	switch shape.Kind {
	case solver.ShapeBox:
		return shape.HalfExtents.Y
	case solver.ShapeSphere:
		return shape.Radius
	case solver.ShapeCapsule, solver.ShapeCylinder:
		return shape.HalfHeight + shape.Radius
	default:
		return 0
	}
}

func upVector(t numerics.Transform) numerics.Vec3 {
	return t.Rotation.RotateVec3(numerics.Vec3{Y: 1})
}

type pairContact struct {
	lower, upper int // indices into s.bodies
	normal       numerics.Vec3
	penetration  float64
}

// findContacts generates contacts for every body pair whose support
// extents overlap along the reference normal, iterating pairs in
// ascending (i, j) index order so results never depend on map
// iteration order (spec.md §9 "Body ordering").
func (s *Solver) findContacts() []pairContact {
	var out []pairContact
	for i := 0; i < len(s.bodies); i++ {
		for j := i + 1; j < len(s.bodies); j++ {
			a, b := s.bodies[i], s.bodies[j]
			if a.spec.Static && b.spec.Static {
				continue
			}

			var normal numerics.Vec3
			switch {
			case a.spec.Static:
				normal = upVector(a.transform)
			case b.spec.Static:
				normal = upVector(b.transform)
			default:
				normal = numerics.Vec3{Y: 1}
			}

			d := b.transform.Position.Sub(a.transform.Position).Dot(normal)
			required := supportExtent(a.spec.Shape) + supportExtent(b.spec.Shape)
			separation := math.Abs(d)
			penetration := required - separation
			if penetration <= 0 {
				continue
			}

			lower, upper := i, j
			n := normal
			if d < 0 {
				lower, upper = j, i
				n = normal.Scale(-1)
			}
			out = append(out, pairContact{lower: lower, upper: upper, normal: n, penetration: penetration})
		}
	}
	return out
}

func combinedFriction(a, b solver.BodySpec) float64 {
	return (a.Friction + b.Friction) / 2
}

func combinedRestitution(a, b solver.BodySpec) float64 {
	return math.Max(a.Restitution, b.Restitution)
}

func (s *Solver) Step(dt float64, gravity numerics.Vec3) error {
	if dt <= 0 {
		return &solver.InvalidTimestepError{Dt: dt}
	}

	for _, b := range s.bodies {
		if b.spec.Static || b.sleeping {
			continue
		}
		b.linVel = b.linVel.Add(gravity.Scale(dt))
	}

	contacts := s.findContacts()
	sort.Slice(contacts, func(i, j int) bool {
		if contacts[i].lower != contacts[j].lower {
			return contacts[i].lower < contacts[j].lower
		}
		return contacts[i].upper < contacts[j].upper
	})

	iterations := s.cfg.Iterations
	if iterations <= 0 {
		iterations = 1
	}
	for iter := 0; iter < iterations; iter++ {
		for _, c := range contacts {
			s.solveVelocity(c)
		}
	}

	for _, b := range s.bodies {
		if b.spec.Static || b.sleeping {
			continue
		}
		b.transform.Position = b.transform.Position.Add(b.linVel.Scale(dt))
		b.transform.Rotation = b.transform.Rotation.IntegrateAngularVelocity(b.angVel, dt)
	}

	for _, c := range contacts {
		s.correctPosition(c)
	}

	s.updateSleepState(dt)

	final := s.findContacts()
	manifolds := make(map[[2]int]*solver.ContactManifold)
	order := make([][2]int, 0, len(final))
	for _, c := range final {
		key := [2]int{c.lower, c.upper}
		m, ok := manifolds[key]
		if !ok {
			m = &solver.ContactManifold{BodyA: solver.BodyHandle(c.lower), BodyB: solver.BodyHandle(c.upper)}
			manifolds[key] = m
			order = append(order, key)
		}
		m.Points = append(m.Points, solver.ContactPoint{Penetration: c.penetration})
	}
	s.contacts = make([]solver.ContactManifold, 0, len(order))
	for _, key := range order {
		s.contacts = append(s.contacts, *manifolds[key])
	}

	return nil
}

func (s *Solver) solveVelocity(c pairContact) {
	lower, upper := s.bodies[c.lower], s.bodies[c.upper]
	invL, invU := invMassOf(lower), invMassOf(upper)
	sumInv := invL + invU
	if sumInv == 0 {
		return
	}

	relVel := upper.linVel.Sub(lower.linVel)
	vn := relVel.Dot(c.normal)
	if vn >= 0 {
		return
	}

	restitution := combinedRestitution(lower.spec, upper.spec)
	jn := -(1 + restitution) * vn / sumInv
	if jn < 0 {
		jn = 0
	}
	impulse := c.normal.Scale(jn)
	applyImpulse(upper, impulse, invU)
	applyImpulse(lower, impulse.Scale(-1), invL)

	relVel2 := upper.linVel.Sub(lower.linVel)
	vt := relVel2.Sub(c.normal.Scale(relVel2.Dot(c.normal)))
	vtLen := vt.Length()
	if vtLen < 1e-9 {
		return
	}
	tangent := vt.Scale(-1 / vtLen)
	jt := vtLen / sumInv
	maxJt := combinedFriction(lower.spec, upper.spec) * jn
	if jt > maxJt {
		jt = maxJt
	}
	friction := tangent.Scale(jt)
	applyImpulse(upper, friction, invU)
	applyImpulse(lower, friction.Scale(-1), invL)
}

func (s *Solver) correctPosition(c pairContact) {
	lower, upper := s.bodies[c.lower], s.bodies[c.upper]
	invL, invU := invMassOf(lower), invMassOf(upper)
	sumInv := invL + invU
	if sumInv == 0 {
		return
	}
	correction := c.normal.Scale(c.penetration * baumgarteFactor / sumInv)
	upper.transform.Position = upper.transform.Position.Add(correction.Scale(invU))
	lower.transform.Position = lower.transform.Position.Sub(correction.Scale(invL))
}

func invMassOf(b *body) float64 {
	if b.spec.Static || b.sleeping {
		return 0
	}
	return b.invMass
}

func applyImpulse(b *body, impulse numerics.Vec3, invMass float64) {
	if invMass == 0 {
		return
	}
	b.linVel = b.linVel.Add(impulse.Scale(invMass))
}

func (s *Solver) updateSleepState(dt float64) {
	for _, b := range s.bodies {
		if b.spec.Static {
			continue
		}
		speed := b.linVel.Length() + b.angVel.Length()
		if speed < sleepLinearThreshold+sleepAngularThreshold {
			b.restTime += dt
			if b.restTime >= sleepSeconds {
				b.sleeping = true
				b.linVel = numerics.Vec3{}
				b.angVel = numerics.Vec3{}
			}
		} else {
			b.restTime = 0
			b.sleeping = false
		}
	}
}
