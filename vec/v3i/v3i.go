// Package v3i provides a small 3-D integer vector value type used for
// voxel/lattice indexing.
package v3i

// Vec is a 3-D integer vector, typically a voxel or lattice index.
type Vec struct {
	X, Y, Z int
}

// Add returns a+b.
func (a Vec) Add(b Vec) Vec {
	return Vec{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Equals reports whether a and b are equal, component-wise.
func (a Vec) Equals(b Vec) bool {
	return a.X == b.X && a.Y == b.Y && a.Z == b.Z
}
