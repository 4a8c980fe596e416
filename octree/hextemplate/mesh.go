package hextemplate

import (
	"github.com/autotwin/automesh/mesh"
	"github.com/autotwin/automesh/octree"
)

// BuildMesh assembles a hex mesh from a balanced, pruned tree: a leaf
// with no corner bordering a refinement jump contributes its own
// whole-cell hex (via LeafNodes' connectivity); a leaf that does is
// dropped in favor of its eight octants (Vertex/Edge/Face/Coarse),
// which together exactly tile that leaf's volume. Every octant
// carries the block label of the leaf it came from, never a
// fabricated one.
func BuildMesh(tree *octree.Tree, nm *octree.NodeMap, leafConn [][8]int, leafLabels []int) *mesh.Mesh {
	leaves := tree.Leaves()
	transitionLeaf := make(map[int]bool, len(leaves))
	for li, idx := range leaves {
		if IsTransitioning(tree.Cells[idx].Bound, nm) {
			transitionLeaf[li] = true
		}
	}

	m := mesh.New(mesh.Hex)
	for li, conn := range leafConn {
		if transitionLeaf[li] {
			continue
		}
		c := make([]int, 8)
		for n := 0; n < 8; n++ {
			c[n] = conn[n] + mesh.NodeNumberingOffset
		}
		m.Connectivity = append(m.Connectivity, c)
		m.Blocks = append(m.Blocks, leafLabels[li])
	}

	appendAll := func(octants []Octant) {
		for _, o := range octants {
			c := make([]int, 8)
			for n := 0; n < 8; n++ {
				c[n] = o.IDs[n] + mesh.NodeNumberingOffset
			}
			m.Connectivity = append(m.Connectivity, c)
			m.Blocks = append(m.Blocks, o.Label)
		}
	}
	appendAll(VertexTemplates(tree, nm, leafLabels))
	appendAll(EdgeTemplates(tree, nm, leafLabels))
	appendAll(FaceTemplates(tree, nm, leafLabels))
	appendAll(CoarseOctants(tree, nm, leafLabels))

	m.Coordinates = nm.Coordinates()
	return m
}
