// Package remesh implements §4.7's triangular surface remesher: edge
// split/collapse/flip over a mutable connectivity graph, degenerate-node
// repair, Laplacian/Taubin smoothing, discrete Gaussian curvature, and
// per-triangle quality metrics.
//
// Grounded on original_source/src/fem/tri/mod.rs. Its debugging
// scaffolding — println!-based tracing, the per-collapse "asdf.exo"
// dump, the hardcoded safety counter around the collapse loop — is
// intentionally left out per §9(c); everything else (the incremental
// node-element/node-node/edge patching on split, collapse, flip, and
// degenerate repair) is a direct translation, since TriMesh keeps its
// own connectivity tables rather than mesh.Mesh's cached ones: a full
// mesh.Mesh recompute after every single edge operation would be
// correct but needlessly quadratic over a remesh pass.
package remesh

import (
	"sort"

	"github.com/autotwin/automesh/mesh"
	v3 "github.com/autotwin/automesh/vec/v3"
)

// TriMesh wraps a triangular mesh.Mesh with the edge list, edge
// lengths, and node-element/node-node connectivity the remesh
// operations keep up to date incrementally as they edit the mesh.
type TriMesh struct {
	Mesh *mesh.Mesh

	// Edges holds each distinct edge as a sorted pair of 1-based node
	// ids.
	Edges [][2]int
	// Lengths holds the current Euclidean length of Edges[i].
	Lengths []float64

	// nodeElement[i] lists the 0-based element indices incident to node
	// i+mesh.NodeNumberingOffset.
	nodeElement [][]int
	// nodeNode[i] lists the 1-based node ids adjacent to node
	// i+mesh.NodeNumberingOffset, sorted.
	nodeNode [][]int
}

// New wraps m, which must already be a triangle mesh, and computes its
// initial connectivity and edge list.
func New(m *mesh.Mesh) (*TriMesh, error) {
	if m.Type != mesh.Tri {
		return nil, &mesh.Error{Kind: mesh.InvalidInput, Message: "remesh requires a triangular mesh", Index: -1}
	}
	tm := &TriMesh{Mesh: m}
	tm.Refresh()
	return tm, nil
}

// Refresh rebuilds node-element connectivity, node-node connectivity,
// and the deduplicated edge list (with recomputed lengths) from the
// mesh's current connectivity and coordinates from scratch. Called once
// at construction and once per remesh iteration (§4.7.2); split,
// collapse, flip, and degenerate repair otherwise maintain these tables
// incrementally.
func (tm *TriMesh) Refresh() {
	n := tm.Mesh.NumNodes()
	ne := make([][]int, n)
	for ei, conn := range tm.Mesh.Connectivity {
		for _, id := range conn {
			idx := id - mesh.NodeNumberingOffset
			ne[idx] = append(ne[idx], ei)
		}
	}
	tm.nodeElement = ne

	nn := make([][]int, n)
	for _, conn := range tm.Mesh.Connectivity {
		for i, id := range conn {
			a, b := conn[(i+1)%3], conn[(i+2)%3]
			idx := id - mesh.NodeNumberingOffset
			nn[idx] = appendUnique(nn[idx], a)
			nn[idx] = appendUnique(nn[idx], b)
		}
	}
	for i := range nn {
		sort.Ints(nn[i])
	}
	tm.nodeNode = nn

	tm.rebuildEdges()
}

func appendUnique(s []int, v int) []int {
	if containsInt(s, v) {
		return s
	}
	return append(s, v)
}

func (tm *TriMesh) rebuildEdges() {
	seen := make(map[[2]int]bool)
	var edges [][2]int
	for _, conn := range tm.Mesh.Connectivity {
		pairs := [3][2]int{{conn[0], conn[1]}, {conn[1], conn[2]}, {conn[2], conn[0]}}
		for _, p := range pairs {
			if p[0] > p[1] {
				p[0], p[1] = p[1], p[0]
			}
			if !seen[p] {
				seen[p] = true
				edges = append(edges, p)
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
	lengths := make([]float64, len(edges))
	for i, e := range edges {
		lengths[i] = tm.coord(e[0]).Sub(tm.coord(e[1])).Length()
	}
	tm.Edges = edges
	tm.Lengths = lengths
}

func (tm *TriMesh) coord(id int) v3.Vec {
	return tm.Mesh.Coordinates[id-mesh.NodeNumberingOffset]
}

// NodeElements returns the 0-based element indices incident to the
// 1-based node id.
func (tm *TriMesh) NodeElements(id int) []int {
	return tm.nodeElement[id-mesh.NodeNumberingOffset]
}

// NodeNodes returns the sorted 1-based node ids adjacent to the 1-based
// node id.
func (tm *TriMesh) NodeNodes(id int) []int {
	return tm.nodeNode[id-mesh.NodeNumberingOffset]
}

// Valence returns the number of nodes adjacent to the 1-based node id.
func (tm *TriMesh) Valence(id int) int {
	return len(tm.nodeNode[id-mesh.NodeNumberingOffset])
}

// edgeInfo finds the two triangles sharing edge (a, b) and the two
// "opposite" nodes c and d — c from the triangle not containing b's
// other neighbor, d from the other triangle — mirroring
// original_source's edge_info. Fails InvalidMesh if the edge does not
// border exactly two triangles: a non-manifold or boundary edge,
// neither of which this remesher supports.
func (tm *TriMesh) edgeInfo(a, b int) (elemA, elemB, c, d int, err error) {
	elemsB := make(map[int]bool, len(tm.NodeElements(b)))
	for _, e := range tm.NodeElements(b) {
		elemsB[e] = true
	}
	var shared []int
	for _, e := range tm.NodeElements(a) {
		if elemsB[e] {
			shared = append(shared, e)
		}
	}
	if len(shared) != 2 {
		return 0, 0, 0, 0, &mesh.Error{Kind: mesh.InvalidMesh, Message: "edge does not border exactly two triangles", Index: a}
	}
	elemA, elemB = shared[0], shared[1]
	connA := tm.Mesh.Connectivity[elemA]
	connB := tm.Mesh.Connectivity[elemB]
	inB := map[int]bool{connB[0]: true, connB[1]: true, connB[2]: true}
	for _, n := range connA {
		if !inB[n] {
			c = n
		}
	}
	inA := map[int]bool{connA[0]: true, connA[1]: true, connA[2]: true}
	for _, n := range connB {
		if !inA[n] {
			d = n
		}
	}
	return elemA, elemB, c, d, nil
}

// slot returns the local index of node id within conn, or -1.
func slot(conn []int, id int) int {
	for i, n := range conn {
		if n == id {
			return i
		}
	}
	return -1
}

// cyclicSuccessor reports whether b directly follows a in a triangle's
// winding order (0->1->2->0), the orientation test original_source uses
// to decide which of the two equivalent split/flip layouts preserves
// winding.
func cyclicSuccessor(spotA, spotB int) bool {
	return (spotA == 0 && spotB == 1) || (spotA == 1 && spotB == 2) || (spotA == 2 && spotB == 0)
}

func removeInt(s []int, v int) []int {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func sortedInsert(s []int, v int) []int {
	s = append(s, v)
	sort.Ints(s)
	return s
}
