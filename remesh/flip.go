package remesh

import "github.com/autotwin/automesh/mesh"

// regularDegree is the valence of an interior node in a fully regular
// triangulation (6 triangles meet at every interior vertex).
const regularDegree = 6

// FlipEdges considers every current edge (a, b) bordering triangles
// (a,b,c) and (b,a,d) and replaces it with (c,d,b)/(d,c,a) — the
// diagonal flip of the quad the two triangles form — whenever that
// reduces the sum, over the four nodes, of |valence-regularDegree|.
// Grounded on original_source's flip_edges; flipping never adds or
// removes a node, so it is safe to patch node-element, node-node, and
// the flipped edge's own entry in place, as the original does.
func (tm *TriMesh) FlipEdges() error {
	for i := 0; i < len(tm.Edges); i++ {
		a, b := tm.Edges[i][0], tm.Edges[i][1]
		elem1, elem2, c, d, err := tm.edgeInfo(a, b)
		if err != nil {
			return err
		}

		before := absDeviation(tm.Valence(a)) + absDeviation(tm.Valence(b)) + absDeviation(tm.Valence(c)) + absDeviation(tm.Valence(d))
		after := absDeviation(tm.Valence(a)-1) + absDeviation(tm.Valence(b)-1) + absDeviation(tm.Valence(c)+1) + absDeviation(tm.Valence(d)+1)
		if before <= after {
			continue
		}

		conn1 := tm.Mesh.Connectivity[elem1]
		spotA, spotB := slot(conn1, a), slot(conn1, b)
		if cyclicSuccessor(spotA, spotB) {
			tm.Mesh.Connectivity[elem1] = []int{b, c, d}
			tm.Mesh.Connectivity[elem2] = []int{a, d, c}
		} else {
			tm.Mesh.Connectivity[elem1] = []int{c, b, d}
			tm.Mesh.Connectivity[elem2] = []int{d, a, c}
		}

		tm.nodeElement[a-mesh.NodeNumberingOffset] = removeInt(tm.nodeElement[a-mesh.NodeNumberingOffset], elem1)
		tm.nodeElement[b-mesh.NodeNumberingOffset] = removeInt(tm.nodeElement[b-mesh.NodeNumberingOffset], elem2)
		tm.nodeElement[c-mesh.NodeNumberingOffset] = append(tm.nodeElement[c-mesh.NodeNumberingOffset], elem2)
		tm.nodeElement[d-mesh.NodeNumberingOffset] = append(tm.nodeElement[d-mesh.NodeNumberingOffset], elem1)

		tm.nodeNode[a-mesh.NodeNumberingOffset] = removeInt(tm.nodeNode[a-mesh.NodeNumberingOffset], b)
		tm.nodeNode[b-mesh.NodeNumberingOffset] = removeInt(tm.nodeNode[b-mesh.NodeNumberingOffset], a)
		tm.nodeNode[c-mesh.NodeNumberingOffset] = sortedInsert(tm.nodeNode[c-mesh.NodeNumberingOffset], d)
		tm.nodeNode[d-mesh.NodeNumberingOffset] = sortedInsert(tm.nodeNode[d-mesh.NodeNumberingOffset], c)

		tm.Edges[i] = sortedPair(c, d)
		tm.Lengths[i] = tm.coord(c).Sub(tm.coord(d)).Length()
	}
	return nil
}

func absDeviation(valence int) int {
	d := valence - regularDegree
	if d < 0 {
		return -d
	}
	return d
}
