// Package octree implements the octree subsystem of §4.4: construction
// from a segmentation, subdivision, the 2:1 balance pass, pair, prune,
// and the leaf->node half-integer grid.
package octree

import (
	"github.com/autotwin/automesh/mesh"
	"github.com/autotwin/automesh/seg"
)

// NumOctants is the number of children a subdivided cell gets.
const NumOctants = 8

// Bound is a cell's axis-aligned extent on the half-integer grid,
// expressed as integers twice the true coordinate so face midpoints
// created at refinement transitions are exactly representable.
type Bound struct {
	MinX, MaxX int
	MinY, MaxY int
	MinZ, MaxZ int
}

// Cell is an octree cell: a cube with integer-rational bounds, a depth
// level, an optional material label (leaves only), an optional
// child-index tuple in Morton order, and a face table of neighbor
// indices of equal or coarser level.
type Cell struct {
	Bound Bound
	Level int

	// Label is set iff this cell is a leaf.
	Label    uint8
	HasLabel bool

	// Children holds the 8 child indices in Morton order (x-fast, then
	// y, then z), or nil if this cell is a leaf.
	Children *[8]int

	// Faces holds the neighbor cell index for each of 6 faces
	// (-x,+x,-y,+y,-z,+z), or -1 if there is none. The neighbor always
	// points at the largest cell touching that face.
	Faces [6]int
}

// IsLeaf reports whether c has no children.
func (c *Cell) IsLeaf() bool {
	return c.Children == nil
}

// Face indices.
const (
	FaceMinX = 0
	FaceMaxX = 1
	FaceMinY = 2
	FaceMaxY = 3
	FaceMinZ = 4
	FaceMaxZ = 5
)

// oppositeFace maps each face to the face on the opposite side of a cube.
var oppositeFace = [6]int{FaceMaxX, FaceMinX, FaceMaxY, FaceMinY, FaceMaxZ, FaceMinZ}

// Tree is the octree, stored as a flat arena: cells are never deleted
// until Prune runs, and neighbor/child links are indices into Cells, not
// owning references, so the cyclic face-neighbor graph has no pointer
// cycles.
type Tree struct {
	Cells []Cell
}

func newCell(level int, b Bound) Cell {
	return Cell{Bound: b, Level: level, Faces: [6]int{-1, -1, -1, -1, -1, -1}}
}

func midpoint(a, b int) int {
	return (a + b) / 2
}

// childBound returns the bound of Morton-order child n (0..7) of parent
// bound b, where bit 0 selects x, bit 1 selects y, bit 2 selects z.
func childBound(b Bound, n int) Bound {
	mx, my, mz := midpoint(b.MinX, b.MaxX), midpoint(b.MinY, b.MaxY), midpoint(b.MinZ, b.MaxZ)
	out := b
	if n&1 == 0 {
		out.MaxX = mx
	} else {
		out.MinX = mx
	}
	if n&2 == 0 {
		out.MaxY = my
	} else {
		out.MinY = my
	}
	if n&4 == 0 {
		out.MaxZ = mz
	} else {
		out.MinZ = mz
	}
	return out
}

// childrenOnFace lists, for each face, the 4 Morton-order child indices
// that touch that face.
var childrenOnFace = [6][4]int{
	FaceMinX: {0, 2, 4, 6},
	FaceMaxX: {1, 3, 5, 7},
	FaceMinY: {0, 1, 4, 5},
	FaceMaxY: {2, 3, 6, 7},
	FaceMinZ: {0, 1, 2, 3},
	FaceMaxZ: {4, 5, 6, 7},
}

// Subdivide appends 8 children of cell index to the tree, relinking face
// neighbors per §4.4.2: a coarser neighbor is inherited directly by all
// 4 touching children; an already-subdivided neighbor is cross-linked,
// child to child, on the touching quadrant.
func (t *Tree) Subdivide(index int) {
	parent := &t.Cells[index]
	base := len(t.Cells)
	var indices [8]int
	newCells := make([]Cell, 8)
	for n := 0; n < 8; n++ {
		indices[n] = base + n
		newCells[n] = newCell(parent.Level+1, childBound(parent.Bound, n))
	}

	// Internal sibling links: within the new octet, the face of child n
	// that faces inward (toward the other half of the parent along that
	// axis) always touches the sibling whose Morton index differs only
	// in that axis's bit.
	for n := 0; n < 8; n++ {
		if n&1 == 1 {
			newCells[n].Faces[FaceMinX] = indices[n^1]
		} else {
			newCells[n].Faces[FaceMaxX] = indices[n^1]
		}
		if n&2 == 2 {
			newCells[n].Faces[FaceMinY] = indices[n^2]
		} else {
			newCells[n].Faces[FaceMaxY] = indices[n^2]
		}
		if n&4 == 4 {
			newCells[n].Faces[FaceMinZ] = indices[n^4]
		} else {
			newCells[n].Faces[FaceMaxZ] = indices[n^4]
		}
	}

	for face := 0; face < 6; face++ {
		neighbor := parent.Faces[face]
		mine := childrenOnFace[face]
		opp := childrenOnFace[oppositeFace[face]]
		if neighbor < 0 {
			continue
		}
		nCell := &t.Cells[neighbor]
		if nCell.Children == nil {
			// Coarser (or equal) neighbor: every touching child
			// inherits the same neighbor link directly.
			for _, c := range mine {
				newCells[c].Faces[face] = neighbor
			}
			continue
		}
		// Neighbor already subdivided: cross-link the 4 children on
		// each side, in the order childrenOnFace enumerates them
		// (which is consistent between a face and its opposite, since
		// both are generated by the same bit pattern holding the
		// shared axis fixed).
		kids := nCell.Children
		for i, c := range mine {
			nk := kids[opp[i]]
			newCells[c].Faces[face] = nk
			t.Cells[nk].Faces[oppositeFace[face]] = indices[c]
		}
	}

	parent.Children = &indices
	t.Cells = append(t.Cells, newCells...)
}

// homogeneous reports whether the segmentation restricted to bound b is
// a single label; padding outside the segmentation's true extents is
// treated as the dedicated "void" label.
func homogeneous(s *seg.Segmentation, b Bound, voidLabel uint8) (uint8, bool) {
	var first uint8
	have := false
	for k := b.MinZ / 2; k < b.MaxZ/2; k++ {
		for j := b.MinY / 2; j < b.MaxY/2; j++ {
			for i := b.MinX / 2; i < b.MaxX/2; i++ {
				var label uint8
				if i < s.Nx && j < s.Ny && k < s.Nz {
					label = s.At(i, j, k)
				} else {
					label = voidLabel
				}
				if !have {
					first = label
					have = true
				} else if label != first {
					return 0, false
				}
			}
		}
	}
	if !have {
		return voidLabel, true
	}
	return first, true
}

// padToCube returns the smallest power of two >= n.
func padToCube(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// VoidLabel is the dedicated label assigned to padding voxels outside a
// non-cube, non-power-of-two segmentation's true extents (§4.4.1).
const VoidLabel uint8 = 255

// FromSegmentation builds an octree from a segmentation per §4.4.1: pad
// extents to a common cube side length L that is a power of two,
// recursively subdividing non-homogeneous cells up to the given maximum
// depth.
func FromSegmentation(s *seg.Segmentation, maxLevels int) *Tree {
	l := padToCube(s.Nx)
	if p := padToCube(s.Ny); p > l {
		l = p
	}
	if p := padToCube(s.Nz); p > l {
		l = p
	}
	// Half-integer grid: bounds are expressed as 2x the true coordinate.
	root := newCell(0, Bound{0, 2 * l, 0, 2 * l, 0, 2 * l})
	t := &Tree{Cells: []Cell{root}}

	var build func(index, level int)
	build = func(index, level int) {
		cell := &t.Cells[index]
		if label, ok := homogeneous(s, cell.Bound, VoidLabel); ok || level >= maxLevels {
			if !ok {
				// Ran out of depth budget without homogeneity; keep the
				// cell as a leaf labeled with its minimum-corner voxel
				// so meshing can still proceed deterministically.
				label = VoidLabel
				i, j, k := cell.Bound.MinX/2, cell.Bound.MinY/2, cell.Bound.MinZ/2
				if i < s.Nx && j < s.Ny && k < s.Nz {
					label = s.At(i, j, k)
				}
			}
			cell.Label = label
			cell.HasLabel = true
			return
		}
		t.Subdivide(index)
		children := *t.Cells[index].Children
		for _, c := range children {
			build(c, level+1)
		}
	}
	build(0, 0)
	return t
}

// Balance implements §4.4.3: repeat until stable, for each leaf one
// level coarser than a neighbor containing grandchildren on the touching
// quadrant, subdivide and inherit the label. Each pass is a single scan;
// convergence is guaranteed because every split strictly reduces the
// (level-gap) multiset lexicographically. Returns Unstable if the
// iteration count exceeds a bound linear in the number of leaves
// (implementation-bug guard only).
func (t *Tree) Balance() error {
	maxPasses := 4*len(t.Cells) + 64
	for pass := 0; pass < maxPasses; pass++ {
		changed := false
		n := len(t.Cells)
		for index := 0; index < n; index++ {
			cell := &t.Cells[index]
			if !cell.IsLeaf() {
				continue
			}
			if t.violatesBalance(index) {
				label := cell.Label
				t.Subdivide(index)
				children := *t.Cells[index].Children
				for _, c := range children {
					t.Cells[c].Label = label
					t.Cells[c].HasLabel = true
				}
				changed = true
				n = len(t.Cells)
			}
		}
		if !changed {
			return nil
		}
	}
	return &mesh.Error{Kind: mesh.Unstable, Message: "octree balance did not converge", Index: -1}
}

// violatesBalance reports whether the leaf at index has, on any face, a
// neighbor whose grandchildren occupy the touching quadrant (i.e. the
// neighbor is more than one level finer).
func (t *Tree) violatesBalance(index int) bool {
	cell := &t.Cells[index]
	for face := 0; face < 6; face++ {
		neighbor := cell.Faces[face]
		if neighbor < 0 {
			continue
		}
		nCell := &t.Cells[neighbor]
		if nCell.Children == nil {
			continue
		}
		opp := childrenOnFace[oppositeFace[face]]
		for _, c := range opp {
			if t.Cells[nCell.Children[c]].Children != nil {
				return true
			}
		}
	}
	return false
}

// Prune implements §4.4.4: delete interior (non-leaf) nodes after all
// structural passes are done, leaving a flat leaf array. Face-neighbor
// indices on the surviving leaves are remapped to the compacted
// indices.
func (t *Tree) Prune() {
	remap := make(map[int]int, len(t.Cells))
	var leaves []Cell
	for i, c := range t.Cells {
		if c.IsLeaf() {
			remap[i] = len(leaves)
			leaves = append(leaves, c)
		}
	}
	for i := range leaves {
		for f := 0; f < 6; f++ {
			if leaves[i].Faces[f] >= 0 {
				if newIdx, ok := remap[leaves[i].Faces[f]]; ok {
					leaves[i].Faces[f] = newIdx
				} else {
					// The old neighbor was itself subdivided (now
					// interior); no single leaf replaces it, so the
					// link is dropped. Balance and Pair walk these
					// links, so Prune must run only after all structural
					// passes are complete; the transition templates find
					// finer neighbors through the node map instead.
					leaves[i].Faces[f] = -1
				}
			}
		}
	}
	t.Cells = leaves
}

// Leaves returns the indices of all leaf cells.
func (t *Tree) Leaves() []int {
	var out []int
	for i, c := range t.Cells {
		if c.IsLeaf() {
			out = append(out, i)
		}
	}
	return out
}
