package remesh

import "github.com/autotwin/automesh/mesh"

// fourThirds is the over-length threshold factor of §4.7: an edge
// longer than (4/3)*target is split.
const fourThirds = 4.0 / 3.0

// SplitEdges inserts a midpoint node on every edge longer than
// (4/3)*target, replacing its two incident triangles with four and
// extending node-element, node-node, and edge connectivity to match.
// Grounded on original_source's split_edges: since splitting only
// appends new nodes, edges, and elements (it never renumbers or removes
// an existing one), every qualifying edge from the pre-call snapshot
// can be processed in one pass without needing a connectivity refresh
// between them.
func (tm *TriMesh) SplitEdges(target float64) error {
	threshold := fourThirds * target
	n := len(tm.Edges)
	for i := 0; i < n; i++ {
		if tm.Lengths[i] <= threshold {
			continue
		}
		if err := tm.splitOne(i); err != nil {
			return err
		}
	}
	return nil
}

func (tm *TriMesh) splitOne(edgeIndex int) error {
	a, b := tm.Edges[edgeIndex][0], tm.Edges[edgeIndex][1]
	elem1, elem2, c, d, err := tm.edgeInfo(a, b)
	if err != nil {
		return err
	}

	block1 := tm.Mesh.Blocks[elem1]
	block2 := tm.Mesh.Blocks[elem2]

	e := tm.coord(a).Midpoint(tm.coord(b))
	tm.Mesh.Coordinates = append(tm.Mesh.Coordinates, e)
	nodeE := len(tm.Mesh.Coordinates)

	conn1 := tm.Mesh.Connectivity[elem1]
	spotA := slot(conn1, a)
	spotB := slot(conn1, b)

	var newConn1, newConn2, conn3, conn4 []int
	if cyclicSuccessor(spotA, spotB) {
		newConn1 = []int{c, nodeE, b}
		newConn2 = []int{a, nodeE, c}
		conn3 = []int{d, nodeE, a}
		conn4 = []int{b, nodeE, d}
	} else {
		newConn1 = []int{nodeE, c, b}
		newConn2 = []int{nodeE, a, c}
		conn3 = []int{nodeE, d, a}
		conn4 = []int{nodeE, b, d}
	}
	tm.Mesh.Connectivity[elem1] = newConn1
	tm.Mesh.Connectivity[elem2] = newConn2
	tm.Mesh.Connectivity = append(tm.Mesh.Connectivity, conn3, conn4)
	elem3 := len(tm.Mesh.Connectivity) - 2
	elem4 := len(tm.Mesh.Connectivity) - 1
	tm.Mesh.Blocks = append(tm.Mesh.Blocks, block1, block2)

	tm.nodeElement[a-mesh.NodeNumberingOffset] = removeInt(tm.nodeElement[a-mesh.NodeNumberingOffset], elem1)
	tm.nodeElement[a-mesh.NodeNumberingOffset] = append(tm.nodeElement[a-mesh.NodeNumberingOffset], elem3)
	tm.nodeElement[b-mesh.NodeNumberingOffset] = removeInt(tm.nodeElement[b-mesh.NodeNumberingOffset], elem2)
	tm.nodeElement[b-mesh.NodeNumberingOffset] = append(tm.nodeElement[b-mesh.NodeNumberingOffset], elem4)
	tm.nodeElement[c-mesh.NodeNumberingOffset] = append(tm.nodeElement[c-mesh.NodeNumberingOffset], elem2)
	tm.nodeElement[d-mesh.NodeNumberingOffset] = removeInt(tm.nodeElement[d-mesh.NodeNumberingOffset], elem1)
	tm.nodeElement[d-mesh.NodeNumberingOffset] = removeInt(tm.nodeElement[d-mesh.NodeNumberingOffset], elem2)
	tm.nodeElement[d-mesh.NodeNumberingOffset] = append(tm.nodeElement[d-mesh.NodeNumberingOffset], elem3, elem4)
	tm.nodeElement = append(tm.nodeElement, []int{elem1, elem2, elem3, elem4})

	tm.nodeNode[a-mesh.NodeNumberingOffset] = removeInt(tm.nodeNode[a-mesh.NodeNumberingOffset], b)
	tm.nodeNode[a-mesh.NodeNumberingOffset] = sortedInsert(tm.nodeNode[a-mesh.NodeNumberingOffset], nodeE)
	tm.nodeNode[b-mesh.NodeNumberingOffset] = removeInt(tm.nodeNode[b-mesh.NodeNumberingOffset], a)
	tm.nodeNode[b-mesh.NodeNumberingOffset] = sortedInsert(tm.nodeNode[b-mesh.NodeNumberingOffset], nodeE)
	tm.nodeNode[c-mesh.NodeNumberingOffset] = sortedInsert(tm.nodeNode[c-mesh.NodeNumberingOffset], nodeE)
	tm.nodeNode[d-mesh.NodeNumberingOffset] = sortedInsert(tm.nodeNode[d-mesh.NodeNumberingOffset], nodeE)
	tm.nodeNode = append(tm.nodeNode, []int{a, b, c, d})

	// The original (a, b) edge becomes (a, e); three new edges (e, b),
	// (e, c), (e, d) complete node e's degree-4 star.
	halfLength := tm.Lengths[edgeIndex] * 0.5
	tm.Edges[edgeIndex] = sortedPair(a, nodeE)
	tm.Lengths[edgeIndex] = halfLength
	tm.Edges = append(tm.Edges, sortedPair(nodeE, b), sortedPair(nodeE, c), sortedPair(nodeE, d))
	tm.Lengths = append(tm.Lengths,
		halfLength,
		tm.coord(nodeE).Sub(tm.coord(c)).Length(),
		tm.coord(nodeE).Sub(tm.coord(d)).Length(),
	)
	return nil
}

func sortedPair(a, b int) [2]int {
	if a > b {
		return [2]int{b, a}
	}
	return [2]int{a, b}
}
