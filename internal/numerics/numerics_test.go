package numerics

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add: got %v", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub: got %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot: expected 32, got %f", got)
	}
}

func TestVec3Normalized(t *testing.T) {
	v := Vec3{3, 0, 4}
	n := v.Normalized()
	if math.Abs(n.Length()-1.0) > 1e-9 {
		t.Errorf("expected unit length, got %f", n.Length())
	}
	if z := (Vec3{}).Normalized(); z != (Vec3{}) {
		t.Errorf("zero vector should normalize to zero, got %v", z)
	}
}

func TestQuatIdentityRotation(t *testing.T) {
	v := Vec3{1, 2, 3}
	if got := Identity.RotateVec3(v); got != v {
		t.Errorf("identity rotation should be a no-op, got %v", got)
	}
}

func TestQuatAxisAngleRotatesQuarterTurn(t *testing.T) {
	q := FromAxisAngle(Vec3{0, 1, 0}, math.Pi/2)
	got := q.RotateVec3(Vec3{1, 0, 0})
	want := Vec3{0, 0, -1}
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 || math.Abs(got.Z-want.Z) > 1e-9 {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestQuatIntegrateAngularVelocityStaysUnit(t *testing.T) {
	q := Identity
	omega := Vec3{0, 0, 3.0}
	for i := 0; i < 100; i++ {
		q = q.IntegrateAngularVelocity(omega, 0.01)
	}
	if math.Abs(q.LengthSquared()-1.0) > 1e-6 {
		t.Errorf("expected unit quaternion after integration, got |q|^2=%f", q.LengthSquared())
	}
}

func TestTransformPoint(t *testing.T) {
	tr := Transform{Position: Vec3{1, 0, 0}, Rotation: Identity}
	got := tr.TransformPoint(Vec3{0, 1, 0})
	if got != (Vec3{1, 1, 0}) {
		t.Errorf("expected {1 1 0}, got %v", got)
	}
}
