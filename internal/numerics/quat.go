package numerics

import "math"

// Quat is a unit quaternion laid out [x, y, z, w], matching spec's
// wire layout so serialisers don't need to reorder components.
type Quat struct {
	X, Y, Z, W float64
}

// Identity is the no-rotation quaternion.
var Identity = Quat{W: 1}

// FromAxisAngle builds a unit quaternion rotating by angle radians
// about axis (which need not be normalised).
func FromAxisAngle(axis Vec3, angle float64) Quat {
	a := axis.Normalized()
	half := angle * 0.5
	s := math.Sin(half)
	return Quat{X: a.X * s, Y: a.Y * s, Z: a.Z * s, W: math.Cos(half)}.Normalized()
}

func (q Quat) LengthSquared() float64 {
	return q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
}

func (q Quat) Normalized() Quat {
	l := math.Sqrt(q.LengthSquared())
	if l < 1e-12 {
		return Identity
	}
	inv := 1 / l
	return Quat{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

// Mul composes rotations: (q.Mul(r)) applies r first, then q.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// RotateVec3 applies the rotation represented by q to v.
func (q Quat) RotateVec3(v Vec3) Vec3 {
	qv := Vec3{q.X, q.Y, q.Z}
	uv := qv.Cross(v)
	uuv := qv.Cross(uv)
	return v.Add(uv.Scale(2 * q.W)).Add(uuv.Scale(2))
}

// IntegrateAngularVelocity advances q by angular velocity omega over
// dt seconds using the standard first-order quaternion derivative
// dq/dt = 0.5 * (0, omega) * q, followed by renormalisation. This is
// the integration scheme a semi-implicit Euler rigid-body stepper
// uses for orientation.
func (q Quat) IntegrateAngularVelocity(omega Vec3, dt float64) Quat {
	spin := Quat{X: omega.X, Y: omega.Y, Z: omega.Z, W: 0}
	delta := spin.Mul(q)
	return Quat{
		X: q.X + 0.5*dt*delta.X,
		Y: q.Y + 0.5*dt*delta.Y,
		Z: q.Z + 0.5*dt*delta.Z,
		W: q.W + 0.5*dt*delta.W,
	}.Normalized()
}
