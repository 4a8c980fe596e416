package remesh

import (
	"github.com/autotwin/automesh/mesh"
	v3 "github.com/autotwin/automesh/vec/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

// SmoothingKind selects one of §4.7's two smoothing methods.
type SmoothingKind int

const (
	// Laplacian replaces each coordinate by a weighted step toward the
	// mean of its neighbors.
	Laplacian SmoothingKind = iota
	// Taubin alternates a positive-scale Laplacian step with a
	// negative-scale one to damp shrinkage.
	Taubin
)

// Smoothing configures one smoothing pass.
type Smoothing struct {
	Kind SmoothingKind

	// Iterations is the number of passes to run.
	Iterations int
	// Lambda is the Laplacian step scale.
	Lambda float64
	// PassBand is Taubin's k_PB parameter; only used when Kind == Taubin.
	PassBand float64

	// Hierarchical smooths boundary and interior nodes against their
	// own sub-connectivity instead of pooling every node together.
	Hierarchical bool
}

// Smooth runs s.Iterations passes of the configured method over every
// node's coordinates. Grounded on spec.md §4.7: Laplacian moves
// x_i toward x_i + lambda*(mean(neighbor x_j) - x_i); Taubin runs one
// positive-lambda Laplacian step followed by one
// negative-lambda_PB = -lambda/(1 - k_PB*lambda) step per iteration, the
// classic shrinkage-free variant.
func (tm *TriMesh) Smooth(s Smoothing) {
	boundary := tm.boundaryNodes()
	for i := 0; i < s.Iterations; i++ {
		switch s.Kind {
		case Laplacian:
			tm.laplacianStep(s.Lambda, boundary, s.Hierarchical)
		case Taubin:
			lambdaNeg := -s.Lambda / (1 - s.PassBand*s.Lambda)
			tm.laplacianStep(s.Lambda, boundary, s.Hierarchical)
			tm.laplacianStep(lambdaNeg, boundary, s.Hierarchical)
		}
	}
}

func (tm *TriMesh) laplacianStep(lambda float64, boundary map[int]bool, hierarchical bool) {
	n := tm.Mesh.NumNodes()
	next := make([]v3.Vec, n)
	copy(next, tm.Mesh.Coordinates)
	for i := 0; i < n; i++ {
		id := i + mesh.NodeNumberingOffset
		neighbors := tm.NodeNodes(id)
		if hierarchical {
			neighbors = sameClass(neighbors, boundary, boundary[id])
		}
		if len(neighbors) == 0 {
			continue
		}
		mean := v3.Zero()
		for _, nb := range neighbors {
			mean = mean.Add(tm.coord(nb))
		}
		mean = mean.MulScalar(1.0 / float64(len(neighbors)))
		delta := mean.Sub(tm.coord(id)).MulScalar(lambda)
		next[i] = tm.coord(id).Add(delta)
	}
	tm.Mesh.Coordinates = next
}

func sameClass(neighbors []int, boundary map[int]bool, wantBoundary bool) []int {
	out := neighbors[:0:0]
	for _, n := range neighbors {
		if boundary[n] == wantBoundary {
			out = append(out, n)
		}
	}
	return out
}

// boundaryNodes returns the set of node ids incident to at least one
// edge bordering fewer than two triangles: the free boundary of an open
// surface mesh. A closed surface (every edge shared by exactly two
// triangles) has no boundary nodes.
func (tm *TriMesh) boundaryNodes() map[int]bool {
	counts := make(map[[2]int]int)
	for _, conn := range tm.Mesh.Connectivity {
		pairs := [3][2]int{{conn[0], conn[1]}, {conn[1], conn[2]}, {conn[2], conn[0]}}
		for _, p := range pairs {
			counts[sortedPair(p[0], p[1])]++
		}
	}
	boundary := make(map[int]bool)
	for e, c := range counts {
		if c < 2 {
			boundary[e[0]] = true
			boundary[e[1]] = true
		}
	}
	return boundary
}

// r3Of converts a v3.Vec to a gonum spatial/r3.Vec for the cross/dot
// math curvature and normal computations share with the rest of the
// corpus's geometry code.
func r3Of(v v3.Vec) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}
