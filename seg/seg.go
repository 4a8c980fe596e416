// Package seg implements the dense segmentation store (§3) and its two
// direct operations: hex mesh emission (§4.1) and defeature (§4.2).
package seg

import (
	"github.com/autotwin/automesh/mesh"
	v3 "github.com/autotwin/automesh/vec/v3"
)

// Segmentation is a dense 3-D array of material labels indexed (i, j, k)
// with extents (Nx, Ny, Nz), read-only once constructed.
type Segmentation struct {
	Nx, Ny, Nz int
	// data[i + Nx*j + Nx*Ny*k] is the label at (i, j, k).
	data []uint8
}

// New constructs a segmentation of the given positive extents, zero-filled.
func New(nx, ny, nz int) (*Segmentation, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, &mesh.Error{Kind: mesh.InvalidInput, Message: "segmentation extents must be positive", Index: -1}
	}
	return &Segmentation{Nx: nx, Ny: ny, Nz: nz, data: make([]uint8, nx*ny*nz)}, nil
}

// FromData wraps an existing flat array, indexed i + Nx*j + Nx*Ny*k, as a
// segmentation without copying.
func FromData(nx, ny, nz int, data []uint8) (*Segmentation, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, &mesh.Error{Kind: mesh.InvalidInput, Message: "segmentation extents must be positive", Index: -1}
	}
	if len(data) != nx*ny*nz {
		return nil, &mesh.Error{Kind: mesh.InvalidInput, Message: "data length does not match extents", Index: -1}
	}
	return &Segmentation{Nx: nx, Ny: ny, Nz: nz, data: data}, nil
}

func (s *Segmentation) index(i, j, k int) int {
	return i + s.Nx*j + s.Nx*s.Ny*k
}

// At returns the label at (i, j, k).
func (s *Segmentation) At(i, j, k int) uint8 {
	return s.data[s.index(i, j, k)]
}

// Set assigns the label at (i, j, k).
func (s *Segmentation) Set(i, j, k int, label uint8) {
	s.data[s.index(i, j, k)] = label
}

// Data returns the segmentation's flat backing array, in i-fast,
// j-middle, k-slow order. Read-only: callers must not mutate it except
// through Set.
func (s *Segmentation) Data() []uint8 {
	return s.data
}

// Clone returns a deep copy of the segmentation.
func (s *Segmentation) Clone() *Segmentation {
	d := make([]uint8, len(s.data))
	copy(d, s.data)
	return &Segmentation{Nx: s.Nx, Ny: s.Ny, Nz: s.Nz, data: d}
}

// Options configures the direct segmentation->hex mesh emission of §4.1.
type Options struct {
	// Remove is the set of labels not to be meshed. Default {0}.
	Remove map[uint8]bool
	// Scale multiplies coordinates before translation; all components
	// must be > 0.
	Scale v3.Vec
	// Translate is an additive offset applied after scale.
	Translate v3.Vec
}

// DefaultOptions returns the spec.md §6 default configuration: remove
// label 0, unit scale, zero translation.
func DefaultOptions() Options {
	return Options{
		Remove: map[uint8]bool{0: true},
		Scale:  v3.Vec{X: 1, Y: 1, Z: 1},
	}
}

func (o Options) removed(label uint8) bool {
	return o.Remove != nil && o.Remove[label]
}
