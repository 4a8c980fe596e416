package seg

import (
	"sort"

	"github.com/autotwin/automesh/mesh"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// maxDefeatureIterationFactor bounds the relabel/recompute loop at a multiple
// of voxel count, per spec.md §4.2 ("a bound linear in voxel count").
const maxDefeatureIterationFactor = 4

// Defeature implements §4.2: identify 6-connected same-label components;
// any component with fewer than m voxels is relabeled to the majority
// label among its boundary voxels' 6-neighbors (ties broken by lowest
// label id); iterate until no small component remains. Fails Unstable if
// convergence is not reached within a bound linear in voxel count.
func (s *Segmentation) Defeature(m int) (*Segmentation, error) {
	cur := s.Clone()
	n := cur.Nx * cur.Ny * cur.Nz
	maxIter := maxDefeatureIterationFactor*n + 16

	for iter := 0; iter < maxIter; iter++ {
		components, changed := cur.defeatureOnePass(m)
		_ = components
		if !changed {
			return cur, nil
		}
	}
	return nil, &mesh.Error{Kind: mesh.Unstable, Message: "defeature did not converge", Index: -1}
}

// sameLabelGraph builds a gonum undirected graph over voxel linear
// indices, with an edge between every pair of 6-face-adjacent voxels
// that share a label. Connected components of this graph are exactly
// the §4.2 "connected components under 6-connectivity" components.
func (s *Segmentation) sameLabelGraph() graph.Undirected {
	g := simple.NewUndirectedGraph()
	for idx := 0; idx < len(s.data); idx++ {
		g.AddNode(simple.Node(int64(idx)))
	}
	for k := 0; k < s.Nz; k++ {
		for j := 0; j < s.Ny; j++ {
			for i := 0; i < s.Nx; i++ {
				idx := s.index(i, j, k)
				label := s.data[idx]
				if i+1 < s.Nx && s.data[s.index(i+1, j, k)] == label {
					g.SetEdge(simple.Edge{F: simple.Node(int64(idx)), T: simple.Node(int64(s.index(i+1, j, k)))})
				}
				if j+1 < s.Ny && s.data[s.index(i, j+1, k)] == label {
					g.SetEdge(simple.Edge{F: simple.Node(int64(idx)), T: simple.Node(int64(s.index(i, j+1, k)))})
				}
				if k+1 < s.Nz && s.data[s.index(i, j, k+1)] == label {
					g.SetEdge(simple.Edge{F: simple.Node(int64(idx)), T: simple.Node(int64(s.index(i, j, k+1)))})
				}
			}
		}
	}
	return g
}

// defeatureOnePass finds all same-label 6-connected components, relabels
// every component smaller than m, and reports whether any relabeling
// occurred.
func (s *Segmentation) defeatureOnePass(m int) ([][]int64, bool) {
	g := s.sameLabelGraph()
	components := topo.ConnectedComponents(g)

	changed := false
	for _, comp := range components {
		if len(comp) >= m {
			continue
		}
		newLabel, ok := s.majorityBoundaryLabel(comp)
		if !ok {
			continue
		}
		for _, n := range comp {
			idx := int(n.ID())
			if s.data[idx] != newLabel {
				changed = true
			}
			s.data[idx] = newLabel
		}
	}
	return components, changed
}

// majorityBoundaryLabel computes the majority label among the 6-neighbor
// labels of the component's boundary voxels (voxels with at least one
// neighbor outside the component), ties broken by lowest label id.
func (s *Segmentation) majorityBoundaryLabel(comp []graph.Node) (uint8, bool) {
	inComp := make(map[int]bool, len(comp))
	for _, n := range comp {
		inComp[int(n.ID())] = true
	}
	counts := make(map[uint8]int)
	for _, n := range comp {
		idx := int(n.ID())
		k := idx / (s.Nx * s.Ny)
		rem := idx % (s.Nx * s.Ny)
		j := rem / s.Nx
		i := rem % s.Nx
		neighbors := [][3]int{{i - 1, j, k}, {i + 1, j, k}, {i, j - 1, k}, {i, j + 1, k}, {i, j, k - 1}, {i, j, k + 1}}
		for _, nb := range neighbors {
			ni, nj, nk := nb[0], nb[1], nb[2]
			if ni < 0 || ni >= s.Nx || nj < 0 || nj >= s.Ny || nk < 0 || nk >= s.Nz {
				continue
			}
			nIdx := s.index(ni, nj, nk)
			if inComp[nIdx] {
				continue
			}
			counts[s.data[nIdx]]++
		}
	}
	if len(counts) == 0 {
		return 0, false
	}
	var best uint8
	bestCount := -1
	labels := make([]uint8, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(a, b int) bool { return labels[a] < labels[b] })
	for _, l := range labels {
		c := counts[l]
		if c > bestCount {
			bestCount = c
			best = l
		}
	}
	return best, true
}
