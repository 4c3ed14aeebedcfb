package common

import "github.com/chewxy/math32"

// Add3 returns a + b.
func Add3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub3 returns a - b.
func Sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale3 returns v scaled by s.
func Scale3(v [3]float32, s float32) [3]float32 {
	return [3]float32{v[0] * s, v[1] * s, v[2] * s}
}

// Mul3 returns the component-wise product of a and b.
func Mul3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Dot3 returns the dot product of a and b.
func Dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross3 returns the cross product a x b.
func Cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Length3 returns the Euclidean length of v.
func Length3(v [3]float32) float32 {
	return math32.Sqrt(Dot3(v, v))
}

// Normalize3 returns v scaled to unit length. A zero vector is returned unchanged.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - [3]float32: the unit-length vector, or v if its length is zero
func Normalize3(v [3]float32) [3]float32 {
	l := Length3(v)
	if l == 0 {
		return v
	}
	return Scale3(v, 1/l)
}
