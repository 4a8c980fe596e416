// Package mesh defines the core mesh data model (element-blocks,
// element-node connectivity, nodal-coordinates) shared by every meshing
// pass, plus the connectivity services derived from it.
package mesh

import (
	"sort"

	v3 "github.com/autotwin/automesh/vec/v3"
)

// NodeNumberingOffset is the fixed offset between the external 1-based
// node/element numbering convention and internal 0-based slice indexing.
// Keeping it as one named constant is the only place that boundary is
// allowed to appear.
const NodeNumberingOffset = 1

// ElementType names the element arity a Mesh is storing.
type ElementType int

const (
	// Hex is an 8-node hexahedron.
	Hex ElementType = 8
	// Tet is a 4-node tetrahedron.
	Tet ElementType = 4
	// Tri is a 3-node triangle.
	Tri ElementType = 3
)

// Mesh is the three parallel structures of §3: element-blocks,
// element-node connectivity, nodal-coordinates, plus cached derived
// connectivity.
type Mesh struct {
	Type ElementType

	// Blocks holds one material label per element.
	Blocks []int

	// Connectivity holds, per element, the ordered tuple of 1-based node
	// identifiers (length == int(Type)).
	Connectivity [][]int

	// Coordinates holds nodal coordinates; node identifier i (1-based)
	// is Coordinates[i-NodeNumberingOffset].
	Coordinates []v3.Vec

	// nodeElement[n] lists the 0-based element indices referencing node
	// n+NodeNumberingOffset. Populated by NodeElementConnectivity.
	nodeElement [][]int
	// nodeNode[n] lists the 1-based node ids adjacent to node
	// n+NodeNumberingOffset. Populated by NodeNodeConnectivity.
	nodeNode [][]int
}

// New returns an empty mesh of the given element type.
func New(t ElementType) *Mesh {
	return &Mesh{Type: t}
}

// NumNodes returns the number of nodal coordinates.
func (m *Mesh) NumNodes() int {
	return len(m.Coordinates)
}

// NumElements returns the number of elements.
func (m *Mesh) NumElements() int {
	return len(m.Connectivity)
}

// Validate checks the closure invariant of §8 property 1: every
// connectivity entry is in [1, |nodes|], and no element is degenerate
// (repeats a node).
func (m *Mesh) Validate() error {
	n := m.NumNodes()
	for ei, conn := range m.Connectivity {
		seen := make(map[int]bool, len(conn))
		for _, id := range conn {
			if id < NodeNumberingOffset || id > n+NodeNumberingOffset-1 {
				return newErr(InvalidMesh, ei, "connectivity references out-of-range node %d", id)
			}
			if seen[id] {
				return newErr(InvalidMesh, ei, "degenerate element: duplicate node %d", id)
			}
			seen[id] = true
		}
	}
	return nil
}

// Renumber compacts node identifiers: the set of referenced identifiers,
// sorted, is remapped onto 1..K densely, and coordinates are rewritten to
// match. Applying Renumber to an already-compact mesh is a no-op (§8
// property 3).
func (m *Mesh) Renumber() {
	referenced := make(map[int]bool)
	for _, conn := range m.Connectivity {
		for _, id := range conn {
			referenced[id] = true
		}
	}
	ids := make([]int, 0, len(referenced))
	for id := range referenced {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	remap := make(map[int]int, len(ids))
	compact := true
	for i, id := range ids {
		newID := i + NodeNumberingOffset
		remap[id] = newID
		if newID != id {
			compact = false
		}
	}
	if compact {
		return
	}

	newCoords := make([]v3.Vec, len(ids))
	for oldID, newID := range remap {
		newCoords[newID-NodeNumberingOffset] = m.Coordinates[oldID-NodeNumberingOffset]
	}
	m.Coordinates = newCoords

	for _, conn := range m.Connectivity {
		for i, id := range conn {
			conn[i] = remap[id]
		}
	}
	m.nodeElement = nil
	m.nodeNode = nil
}

