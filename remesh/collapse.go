package remesh

import "github.com/autotwin/automesh/mesh"

// fourFifths is the under-length threshold factor of §4.7: an edge
// shorter than (4/5)*target is collapsed.
const fourFifths = 4.0 / 5.0

// CollapseEdges merges the endpoints of every edge shorter than
// (4/5)*target into a single node at their midpoint, removing the two
// triangles the edge bordered, and runs a degenerate-triangle sweep
// (§4.7.1) around the surviving node after each collapse. Grounded on
// original_source's collapse_edges, with its debugging scaffolding
// (println! tracing, the per-collapse EXO dump, the iteration safety
// counter) left out per §9(c).
//
// Collapsing renumbers every node id above the removed one down by one,
// which invalidates every edge index recorded anywhere else in the same
// pass, so each collapse calls Refresh and the scan restarts from the
// beginning rather than trying to patch a snapshot in place.
func (tm *TriMesh) CollapseEdges(target float64) error {
	threshold := fourFifths * target
	for {
		idx := -1
		for i, length := range tm.Lengths {
			if length < threshold {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil
		}
		nodeA, nodeB := tm.Edges[idx][0], tm.Edges[idx][1]
		survivor, err := tm.collapseOne(nodeA, nodeB)
		if err != nil {
			return err
		}
		if err := tm.repairDegenerateAround(survivor); err != nil {
			return err
		}
	}
}

// collapseOne merges nodeB into nodeA at their midpoint and returns the
// merged node's id after renumbering (nodeA's id shifts down by one if
// nodeA > nodeB, since removing nodeB closes a gap below it).
func (tm *TriMesh) collapseOne(nodeA, nodeB int) (int, error) {
	elem1, elem2, _, _, err := tm.edgeInfo(nodeA, nodeB)
	if err != nil {
		return 0, err
	}

	merged := tm.coord(nodeA).Midpoint(tm.coord(nodeB))
	tm.Mesh.Coordinates[nodeA-mesh.NodeNumberingOffset] = merged
	tm.removeCoordinate(nodeB)

	tm.removeElement(max(elem1, elem2))
	tm.removeElement(min(elem1, elem2))

	survivor := nodeA
	if nodeA > nodeB {
		survivor--
	}
	tm.renumberNode(nodeB, nodeA)

	tm.Refresh()
	return survivor, nil
}

// removeCoordinate deletes node id's coordinate, shifting every later
// node's coordinate down by one slot. Callers must renumber
// connectivity references separately via renumberNode.
func (tm *TriMesh) removeCoordinate(id int) {
	i := id - mesh.NodeNumberingOffset
	tm.Mesh.Coordinates = append(tm.Mesh.Coordinates[:i], tm.Mesh.Coordinates[i+1:]...)
}

func (tm *TriMesh) removeElement(ei int) {
	tm.Mesh.Blocks = append(tm.Mesh.Blocks[:ei], tm.Mesh.Blocks[ei+1:]...)
	tm.Mesh.Connectivity = append(tm.Mesh.Connectivity[:ei], tm.Mesh.Connectivity[ei+1:]...)
}

// renumberNode replaces every connectivity reference to "from" with the
// post-removal id of "to" (to, or to-1 if to > from), then decrements
// every other reference above "from" by one to close the gap its
// removal leaves in the dense node numbering.
func (tm *TriMesh) renumberNode(from, to int) {
	target := to
	if to > from {
		target--
	}
	for _, conn := range tm.Mesh.Connectivity {
		for i, n := range conn {
			switch {
			case n == from:
				conn[i] = target
			case n > from:
				conn[i] = n - 1
			}
		}
	}
}
