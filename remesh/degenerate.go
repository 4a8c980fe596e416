package remesh

import (
	"sort"

	"github.com/autotwin/automesh/mesh"
)

// repairDegenerateAround runs the degenerate-triangle sweep of §4.7.1 in
// the neighborhood of survivor (the node a just-completed collapse left
// behind): any node whose valence drops to exactly 3 has its three
// incident triangles merged into one, using the three outer nodes, and
// is itself removed. Grounded on original_source's
// degenerate_triangle(s), restricted to the collapsed node's
// neighborhood because that is the only place a new valence-3 node can
// appear.
func (tm *TriMesh) repairDegenerateAround(survivor int) error {
	for {
		if survivor < mesh.NodeNumberingOffset || survivor > tm.Mesh.NumNodes() {
			return nil
		}
		candidates := append([]int{survivor}, tm.NodeNodes(survivor)...)
		center := -1
		for _, id := range candidates {
			if id < mesh.NodeNumberingOffset || id > tm.Mesh.NumNodes() {
				continue
			}
			if len(tm.NodeElements(id)) == 3 {
				center = id
				break
			}
		}
		if center < 0 {
			return nil
		}
		if err := tm.removeDegenerateNode(center); err != nil {
			return err
		}
		if survivor > center {
			survivor--
		}
		tm.Refresh()
	}
}

// removeDegenerateNode merges the three triangles incident to center
// into one spanning its three outer neighbors and deletes center. The
// original source leaves the merged triangle's winding unreconciled
// against the three destroyed triangles' average normal (its own
// comment flags this); this port carries the same gap rather than
// inventing an orientation rule no example grounds.
func (tm *TriMesh) removeDegenerateNode(center int) error {
	elems := append([]int(nil), tm.NodeElements(center)...)
	if len(elems) != 3 {
		return &mesh.Error{Kind: mesh.InvalidMesh, Message: "degenerate repair requires exactly 3 incident triangles", Index: center}
	}
	sort.Ints(elems)

	outer := make(map[int]bool)
	for _, ei := range elems {
		for _, n := range tm.Mesh.Connectivity[ei] {
			if n != center {
				outer[n] = true
			}
		}
	}
	if len(outer) != 3 {
		return &mesh.Error{Kind: mesh.InvalidMesh, Message: "degenerate repair found other than 3 outer nodes", Index: center}
	}
	nodes := make([]int, 0, 3)
	for n := range outer {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)

	tm.Mesh.Connectivity[elems[0]] = nodes
	tm.removeElement(elems[2])
	tm.removeElement(elems[1])

	tm.removeCoordinate(center)
	for _, conn := range tm.Mesh.Connectivity {
		for i, n := range conn {
			if n > center {
				conn[i] = n - 1
			}
		}
	}
	return nil
}
