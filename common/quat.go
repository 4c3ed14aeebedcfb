package common

import "github.com/chewxy/math32"

// Quat is a rotation quaternion stored as (x, y, z, w).
type Quat [4]float32

// Unit axes used by the rotation helpers.
var (
	AxisX = [3]float32{1, 0, 0}
	AxisY = [3]float32{0, 1, 0}
	AxisZ = [3]float32{0, 0, 1}
)

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{0, 0, 0, 1}
}

// QuatFromAxisAngle builds a rotation of angle radians about axis.
//
// Parameters:
//   - axis: rotation axis (normalized before use)
//   - angle: rotation angle in radians, counter-clockwise when looking down the axis
//
// Returns:
//   - Quat: the rotation
func QuatFromAxisAngle(axis [3]float32, angle float32) Quat {
	a := Normalize3(axis)
	s, c := math32.Sincos(angle / 2)
	return Quat{a[0] * s, a[1] * s, a[2] * s, c}
}

// QuatFromBasis builds the rotation whose local X, Y and Z axes map to the given
// orthonormal world vectors.
//
// Parameters:
//   - x, y, z: orthonormal basis vectors (the columns of the rotation matrix)
//
// Returns:
//   - Quat: the rotation
func QuatFromBasis(x, y, z [3]float32) Quat {
	m00, m11, m22 := x[0], y[1], z[2]
	trace := m00 + m11 + m22
	var q Quat
	switch {
	case trace > 0:
		s := math32.Sqrt(trace+1) * 2
		q = Quat{(y[2] - z[1]) / s, (z[0] - x[2]) / s, (x[1] - y[0]) / s, s / 4}
	case m00 > m11 && m00 > m22:
		s := math32.Sqrt(1+m00-m11-m22) * 2
		q = Quat{s / 4, (y[0] + x[1]) / s, (z[0] + x[2]) / s, (y[2] - z[1]) / s}
	case m11 > m22:
		s := math32.Sqrt(1+m11-m00-m22) * 2
		q = Quat{(y[0] + x[1]) / s, s / 4, (z[1] + y[2]) / s, (z[0] - x[2]) / s}
	default:
		s := math32.Sqrt(1+m22-m00-m11) * 2
		q = Quat{(z[0] + x[2]) / s, (z[1] + y[2]) / s, s / 4, (x[1] - y[0]) / s}
	}
	return q.Normalize()
}

// Mul returns the Hamilton product q * o (apply o first, then q).
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		q[3]*o[0] + q[0]*o[3] + q[1]*o[2] - q[2]*o[1],
		q[3]*o[1] - q[0]*o[2] + q[1]*o[3] + q[2]*o[0],
		q[3]*o[2] + q[0]*o[1] - q[1]*o[0] + q[2]*o[3],
		q[3]*o[3] - q[0]*o[0] - q[1]*o[1] - q[2]*o[2],
	}
}

// Normalize returns q scaled to unit length. A zero quaternion becomes the identity.
func (q Quat) Normalize() Quat {
	l := math32.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if l == 0 {
		return QuatIdentity()
	}
	return Quat{q[0] / l, q[1] / l, q[2] / l, q[3] / l}
}

// Rotate applies the rotation to v.
//
// Parameters:
//   - v: the vector to rotate
//
// Returns:
//   - [3]float32: the rotated vector
func (q Quat) Rotate(v [3]float32) [3]float32 {
	u := [3]float32{q[0], q[1], q[2]}
	t := Scale3(Cross3(u, v), 2)
	return Add3(Add3(v, Scale3(t, q[3])), Cross3(u, t))
}

// Mat4 returns the rotation as a column-major 4x4 matrix.
func (q Quat) Mat4() Mat4 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z
	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0,
		2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0,
		2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}

// AngleAbout returns the signed rotation angle of q about axis, in (-π, π]. It is exact
// for rotations that only turn about that axis.
//
// Parameters:
//   - axis: the unit axis to measure around
//
// Returns:
//   - float32: the angle in radians
func (q Quat) AngleAbout(axis [3]float32) float32 {
	s := Dot3([3]float32{q[0], q[1], q[2]}, axis)
	a := 2 * math32.Atan2(s, q[3])
	return WrapAngle(a)
}

// ApproxEqual reports whether q and o describe the same rotation within eps. q and -q
// are treated as equal.
func (q Quat) ApproxEqual(o Quat, eps float32) bool {
	dot := q[0]*o[0] + q[1]*o[1] + q[2]*o[2] + q[3]*o[3]
	return math32.Abs(dot) >= 1-eps
}

// WrapAngle maps an angle in radians into (-π, π].
func WrapAngle(a float32) float32 {
	a = math32.Mod(a+math32.Pi, 2*math32.Pi)
	if a <= 0 {
		a += 2 * math32.Pi
	}
	return a - math32.Pi
}
