package common

import (
	"unsafe"

	"github.com/chewxy/math32"
)

// Mat4 is a 4x4 matrix stored in column-major order (WebGPU convention).
type Mat4 [16]float32

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	clear(m)
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// IdentityMat4 returns a new identity matrix.
//
// Returns:
//   - Mat4: the identity matrix
func IdentityMat4() Mat4 {
	var m Mat4
	Identity(m[:])
	return m
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// The returned slice shares memory with the input.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(unsafe.Sizeof(zero))*len(data))
}

// Mul4 multiplies two 4x4 matrices and stores the result in out (out = a * b).
// out may alias a or b.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			buf[col*4+row] = sum
		}
	}
	copy(out, buf[:])
}

// Mul returns m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	Mul4(out[:], m[:], o[:])
	return out
}

// MulPoint transforms the homogeneous point (p, 1) and returns the full clip-space vector.
//
// Parameters:
//   - p: the point to transform
//
// Returns:
//   - [4]float32: the transformed (x, y, z, w) vector
func (m Mat4) MulPoint(p [3]float32) [4]float32 {
	return [4]float32{
		m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12],
		m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13],
		m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14],
		m[3]*p[0] + m[7]*p[1] + m[11]*p[2] + m[15],
	}
}

// MulDirection transforms the direction (d, 0), ignoring translation.
func (m Mat4) MulDirection(d [3]float32) [3]float32 {
	return [3]float32{
		m[0]*d[0] + m[4]*d[1] + m[8]*d[2],
		m[1]*d[0] + m[5]*d[1] + m[9]*d[2],
		m[2]*d[0] + m[6]*d[1] + m[10]*d[2],
	}
}

// Perspective creates a right-handed perspective projection matrix mapping depth to the
// WebGPU clip range [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1 / math32.Tan(fovY/2)
	clear(out[:16])

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1
	out[14] = (near * far) / (near - far)
}

// RigidInverse inverts a matrix made only of rotation and translation. The camera view
// matrix is the rigid inverse of the camera's world transform.
//
// Parameters:
//   - m: a rotation + translation matrix
//
// Returns:
//   - Mat4: the inverse of m
func RigidInverse(m Mat4) Mat4 {
	var out Mat4
	// transpose the 3x3 rotation block
	for c := 0; c < 3; c++ {
		for r := 0; r < 3; r++ {
			out[c*4+r] = m[r*4+c]
		}
	}
	t := [3]float32{m[12], m[13], m[14]}
	for r := 0; r < 3; r++ {
		out[12+r] = -(out[r]*t[0] + out[4+r]*t[1] + out[8+r]*t[2])
	}
	out[15] = 1
	return out
}
