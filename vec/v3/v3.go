// Package v3 provides a small 3-D vector value type shared by the
// segmentation, octree, and remesh packages.
package v3

import "math"

// Vec is a 3-D vector or point.
type Vec struct {
	X, Y, Z float64
}

// Zero returns the zero vector.
func Zero() Vec {
	return Vec{}
}

// Add returns a+b.
func (a Vec) Add(b Vec) Vec {
	return Vec{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns a-b.
func (a Vec) Sub(b Vec) Vec {
	return Vec{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// MulScalar returns a scaled by s.
func (a Vec) MulScalar(s float64) Vec {
	return Vec{a.X * s, a.Y * s, a.Z * s}
}

// Mul returns the component-wise product of a and b.
func (a Vec) Mul(b Vec) Vec {
	return Vec{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

// Dot returns the dot product of a and b.
func (a Vec) Dot(b Vec) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a x b.
func (a Vec) Cross(b Vec) Vec {
	return Vec{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Length returns the Euclidean norm of a.
func (a Vec) Length() float64 {
	return math.Sqrt(a.Dot(a))
}

// Equals reports whether a and b are bit-equal, component-wise.
func (a Vec) Equals(b Vec) bool {
	return a.X == b.X && a.Y == b.Y && a.Z == b.Z
}

// Normalize returns a scaled to unit length, or the zero vector if a is zero.
func (a Vec) Normalize() Vec {
	l := a.Length()
	if l == 0 {
		return Vec{}
	}
	return a.MulScalar(1 / l)
}

// Midpoint returns the midpoint of a and b.
func (a Vec) Midpoint(b Vec) Vec {
	return a.Add(b).MulScalar(0.5)
}
