package mesh

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// cornerAdjacency lists, per element type and local corner slot, the
// local slots that are edge-adjacent to that corner. Hex follows the
// bottom-quad-then-top-quad node order of §3; tet and tri are fully
// connected (every corner is edge-adjacent to every other corner).
var hexCornerAdjacency = [8][3]int{
	{1, 3, 4},
	{0, 2, 5},
	{1, 3, 6},
	{0, 2, 7},
	{0, 5, 7},
	{1, 4, 6},
	{2, 5, 7},
	{3, 4, 6},
}

var tetCornerAdjacency = [4][3]int{
	{1, 2, 3},
	{0, 2, 3},
	{0, 1, 3},
	{0, 1, 2},
}

var triCornerAdjacency = [3][2]int{
	{1, 2},
	{0, 2},
	{0, 1},
}

// NodeElementConnectivity inverts element-node connectivity: for each
// node, the 0-based indices of the elements that reference it.
func (m *Mesh) NodeElementConnectivity() {
	ne := make([][]int, m.NumNodes())
	for ei, conn := range m.Connectivity {
		for _, id := range conn {
			idx := id - NodeNumberingOffset
			ne[idx] = append(ne[idx], ei)
		}
	}
	m.nodeElement = ne
}

// HasNodeElementConnectivity reports whether NodeElementConnectivity has
// been computed.
func (m *Mesh) HasNodeElementConnectivity() bool {
	return m.nodeElement != nil
}

// NodeElements returns the element indices referencing 1-based node id.
func (m *Mesh) NodeElements(id int) []int {
	return m.nodeElement[id-NodeNumberingOffset]
}

// NodeNodeConnectivity computes, for each node n, the union over its
// incident elements of the nodes locally adjacent to n inside that
// element, sorted and deduplicated (§4.3). Fails MissingPrerequisite if
// NodeElementConnectivity has not been computed.
func (m *Mesh) NodeNodeConnectivity() error {
	if !m.HasNodeElementConnectivity() {
		return newErr(MissingPrerequisite, -1, "node-element connectivity required before node-node connectivity")
	}
	n := m.NumNodes()
	sets := make([]map[int]bool, n)
	for i := range sets {
		sets[i] = make(map[int]bool)
	}
	for ei, conn := range m.Connectivity {
		_ = ei
		for slot, id := range conn {
			for _, nbrSlot := range localAdjacency(m.Type, slot) {
				sets[id-NodeNumberingOffset][conn[nbrSlot]] = true
			}
		}
	}
	nn := make([][]int, n)
	for i, set := range sets {
		list := make([]int, 0, len(set))
		for id := range set {
			list = append(list, id)
		}
		sort.Ints(list)
		nn[i] = list
	}
	m.nodeNode = nn
	return nil
}

// HasNodeNodeConnectivity reports whether NodeNodeConnectivity has been
// computed.
func (m *Mesh) HasNodeNodeConnectivity() bool {
	return m.nodeNode != nil
}

// NodeNodes returns the sorted, deduplicated 1-based node ids adjacent
// to 1-based node id.
func (m *Mesh) NodeNodes(id int) []int {
	return m.nodeNode[id-NodeNumberingOffset]
}

func localAdjacency(t ElementType, slot int) []int {
	switch t {
	case Hex:
		return hexCornerAdjacency[slot][:]
	case Tet:
		return tetCornerAdjacency[slot][:]
	case Tri:
		return triCornerAdjacency[slot][:]
	default:
		panic("mesh: unknown element type")
	}
}

// NodeNodeGraph returns the node-node connectivity as a gonum
// graph.Undirected, for callers that want to run a generic graph
// algorithm over the mesh's connectivity instead of walking the
// adjacency-list form directly. Fails MissingPrerequisite if
// NodeNodeConnectivity has not been computed.
func (m *Mesh) NodeNodeGraph() (graph.Undirected, error) {
	if !m.HasNodeNodeConnectivity() {
		return nil, newErr(MissingPrerequisite, -1, "node-node connectivity required to build graph")
	}
	g := simple.NewUndirectedGraph()
	for i := 0; i < m.NumNodes(); i++ {
		id := int64(i + NodeNumberingOffset)
		g.AddNode(simple.Node(id))
	}
	for i, neighbors := range m.nodeNode {
		u := int64(i + NodeNumberingOffset)
		for _, v := range neighbors {
			if int64(v) > u {
				g.SetEdge(simple.Edge{F: simple.Node(u), T: simple.Node(int64(v))})
			}
		}
	}
	return g, nil
}

// Hierarchy classifies nodes into interior, exterior, interface, and
// boundary sets for hex meshes only (§4.3).
type Hierarchy struct {
	Interior  []int
	Exterior  []int
	Interface []int
	Boundary  []int
}

// NodalHierarchy classifies each node by the distinct material blocks of
// its incident elements: more than one block means interface; fewer
// than 8 incident elements means exterior; otherwise interior. All sets
// are sorted ascending.
//
// This classification is only exact on a regular hex lattice — the
// "fewer than 8 incident elements" exterior rule assumes every interior
// node of a regular grid has exactly 8 incident hexahedra. On
// octree-derived meshes, where a coarse cell's corner node may be
// legitimately shared by fewer than 8 elements even when interior,
// callers must treat the result as heuristic, not exact.
func (m *Mesh) NodalHierarchy() (*Hierarchy, error) {
	if m.Type != Hex {
		return nil, newErr(InvalidInput, -1, "nodal hierarchy is only defined for hex meshes")
	}
	if !m.HasNodeElementConnectivity() {
		return nil, newErr(MissingPrerequisite, -1, "node-element connectivity required before nodal hierarchy")
	}
	h := &Hierarchy{}
	for i := 0; i < m.NumNodes(); i++ {
		id := i + NodeNumberingOffset
		elems := m.nodeElement[i]
		blocks := make(map[int]bool)
		for _, ei := range elems {
			blocks[m.Blocks[ei]] = true
		}
		switch {
		case len(blocks) > 1:
			h.Interface = append(h.Interface, id)
			h.Boundary = append(h.Boundary, id)
		case len(elems) < 8:
			h.Exterior = append(h.Exterior, id)
			h.Boundary = append(h.Boundary, id)
		default:
			h.Interior = append(h.Interior, id)
		}
	}
	sort.Ints(h.Interior)
	sort.Ints(h.Exterior)
	sort.Ints(h.Interface)
	sort.Ints(h.Boundary)
	return h, nil
}
