package numerics

// Transform is a rigid position + orientation pair, the pose type
// every BodyDescriptor and MetricFrame body snapshot carries.
type Transform struct {
	Position Vec3 `json:"position" yaml:"position"`
	Rotation Quat `json:"rotation" yaml:"rotation"`
}

// IdentityTransform places a body at the origin with no rotation.
var IdentityTransform = Transform{Rotation: Identity}

// TransformPoint maps a point from local space into world space under t.
func (t Transform) TransformPoint(p Vec3) Vec3 {
	return t.Rotation.RotateVec3(p).Add(t.Position)
}
