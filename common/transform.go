package common

// Transform is a translation, rotation and scale in the parent's space.
// The zero value is not valid; use NewTransform or TransformFromXYZ.
type Transform struct {
	Translation [3]float32
	Rotation    Quat
	Scale       [3]float32
}

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return Transform{
		Rotation: QuatIdentity(),
		Scale:    [3]float32{1, 1, 1},
	}
}

// TransformFromXYZ returns an unrotated, unscaled transform at (x, y, z).
//
// Parameters:
//   - x, y, z: translation components
//
// Returns:
//   - Transform: the transform
func TransformFromXYZ(x, y, z float32) Transform {
	t := NewTransform()
	t.Translation = [3]float32{x, y, z}
	return t
}

// LookingAt returns a copy of t rotated so that its forward axis (-Z) points at target
// and its local Y axis is as close to up as possible.
//
// Parameters:
//   - target: world-space point to face
//   - up: approximate up direction
//
// Returns:
//   - Transform: the re-oriented transform
func (t Transform) LookingAt(target, up [3]float32) Transform {
	back := Normalize3(Sub3(t.Translation, target))
	right := Normalize3(Cross3(up, back))
	if Length3(right) == 0 {
		return t
	}
	trueUp := Cross3(back, right)
	t.Rotation = QuatFromBasis(right, trueUp, back)
	return t
}

// Rotate applies q after the current rotation, in parent space.
func (t *Transform) Rotate(q Quat) {
	t.Rotation = q.Mul(t.Rotation).Normalize()
}

// RotateLocal applies q before the current rotation, about the transform's own axes.
func (t *Transform) RotateLocal(q Quat) {
	t.Rotation = t.Rotation.Mul(q).Normalize()
}

// RotateLocalX rotates about the local X axis by angle radians.
func (t *Transform) RotateLocalX(angle float32) {
	t.RotateLocal(QuatFromAxisAngle(AxisX, angle))
}

// RotateLocalZ rotates about the local Z axis by angle radians.
func (t *Transform) RotateLocalZ(angle float32) {
	t.RotateLocal(QuatFromAxisAngle(AxisZ, angle))
}

// RotateAround rotates the transform about a world-space point, changing both its
// translation and its rotation.
//
// Parameters:
//   - point: the pivot in parent space
//   - q: the rotation to apply
func (t *Transform) RotateAround(point [3]float32, q Quat) {
	t.Translation = Add3(point, q.Rotate(Sub3(t.Translation, point)))
	t.Rotate(q)
}

// Forward returns the direction of the local -Z axis.
func (t Transform) Forward() [3]float32 {
	return t.Rotation.Rotate([3]float32{0, 0, -1})
}

// Matrix returns the column-major model matrix T * R * S.
func (t Transform) Matrix() Mat4 {
	m := t.Rotation.Mat4()
	for c := 0; c < 3; c++ {
		for r := 0; r < 3; r++ {
			m[c*4+r] *= t.Scale[c]
		}
	}
	m[12], m[13], m[14] = t.Translation[0], t.Translation[1], t.Translation[2]
	return m
}
