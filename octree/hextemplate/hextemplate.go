// Package hextemplate implements §4.5's hex-transition templates: the
// vertex, edge, and face templates that stitch a 2:1 refinement jump
// into conforming hexahedra.
//
// Every transitioning leaf (one with at least one face bordering an
// already-refined neighbor) is replaced, corner by corner, with its
// own eight octants rather than a single corner-local brick: the
// octant nearest corner c always spans half the leaf's extent on
// every axis, so the eight octants of one leaf always exactly
// partition that leaf's volume, regardless of which of its faces
// happen to be fine. An octant's corner coincides with a neighbor's
// existing node wherever that neighbor actually put one there (a
// genuinely refined axis) and is created fresh otherwise (an interior
// edge midpoint, face-diagonal, or cell-center node). The number of
// the corner's three incident axes that test fine (0, 1, 2, or 3)
// sorts the octant into the coarse, face, edge, or vertex family. Every
// octant takes the leaf's own center node, which is created on first
// use; a vertex octant's other corners lie on the leaf's surface where
// finer neighbors can already have placed nodes, while face and edge
// octants introduce further new nodes along the axes that are not yet
// fine.
//
// This guarantees every transitioning leaf's own volume is exactly
// tiled by its eight octants (§8 property 5 within the leaf). It does
// not, by itself, guarantee conformance against a *coarse* neighbor
// across a face that has no transition of its own: a leaf that needs
// splitting for one face but sits flush against an untouched coarse
// neighbor on another still presents that neighbor with extra edge
// and face-center nodes it does not share. Eliminating that residual
// case needs the neighbor to be drawn into the same decomposition,
// which is out of scope here; see DESIGN.md.
package hextemplate

import (
	"sort"

	"github.com/autotwin/automesh/octree"
)

// cornerAxisMin[c] reports, for corner c in octree.Corners' ordering,
// whether that corner sits at the minimum (true) or maximum (false)
// bound on the x, y, z axis respectively.
var cornerAxisMin = [8][3]bool{
	{true, true, true},
	{false, true, true},
	{false, false, true},
	{true, false, true},
	{true, true, false},
	{false, true, false},
	{false, false, false},
	{true, false, false},
}

// comboHighBits[i] reports, for output corner i of a mixed stencil box
// (same bottom-quad-then-top-quad ordering as octree.Corners), whether
// that corner uses the high bound on x, y, z respectively.
var comboHighBits = [8][3]bool{
	{false, false, false},
	{true, false, false},
	{true, true, false},
	{false, true, false},
	{false, false, true},
	{true, false, true},
	{true, true, true},
	{false, true, true},
}

func minmax(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}

// Octant is one hex from a transitioning leaf's eight-way corner
// split, tagged with the block label of the leaf it came from.
type Octant struct {
	IDs   [8]int
	Label int
}

// octantAt builds the octant of leaf bound b nearest corner, always
// spanning half the bound's extent on every axis, and reports how
// many of the three incident axes already have a one-level-finer
// neighbor (detected the same way as before: a node exists exactly
// half a cell-width outside the leaf, on the corner's side).
func octantAt(b octree.Bound, corner int, nm *octree.NodeMap) (ids [8]int, k int) {
	xMin, yMin, zMin := cornerAxisMin[corner][0], cornerAxisMin[corner][1], cornerAxisMin[corner][2]

	px, py, pz := b.MinX, b.MinY, b.MinZ
	if !xMin {
		px = b.MaxX
	}
	if !yMin {
		py = b.MaxY
	}
	if !zMin {
		pz = b.MaxZ
	}

	// outward sign: the direction from this corner away from the
	// leaf, used only to probe for a finer neighbor.
	sx, sy, sz := -1, -1, -1
	if !xMin {
		sx = 1
	}
	if !yMin {
		sy = 1
	}
	if !zMin {
		sz = 1
	}

	half := (b.MaxX - b.MinX) / 2

	_, fineX := nm.Get(octree.GridKey{X: px + sx*half, Y: py, Z: pz})
	_, fineY := nm.Get(octree.GridKey{X: px, Y: py + sy*half, Z: pz})
	_, fineZ := nm.Get(octree.GridKey{X: px, Y: py, Z: pz + sz*half})

	if fineX {
		k++
	}
	if fineY {
		k++
	}
	if fineZ {
		k++
	}

	// inward sign: the octant always spans from this corner halfway
	// toward the leaf's opposite corner, regardless of fineness.
	ix, iy, iz := -sx, -sy, -sz
	shiftedX := px + ix*half
	shiftedY := py + iy*half
	shiftedZ := pz + iz*half

	lowX, highX := minmax(px, shiftedX)
	lowY, highY := minmax(py, shiftedY)
	lowZ, highZ := minmax(pz, shiftedZ)

	for i := 0; i < 8; i++ {
		hb := comboHighBits[i]
		kx, ky, kz := lowX, lowY, lowZ
		if hb[0] {
			kx = highX
		}
		if hb[1] {
			ky = highY
		}
		if hb[2] {
			kz = highZ
		}
		ids[i] = nm.GetOrCreate(octree.GridKey{X: kx, Y: ky, Z: kz})
	}
	return ids, k
}

func dedupKey(ids [8]int) [8]int {
	c := ids
	sort.Ints(c[:])
	return c
}

// IsTransitioning reports whether any corner of leaf bound b has at
// least one incident axis with an already-finer neighbor. Leaves for
// which this is false keep their single whole-cell hex; leaves for
// which it is true are replaced entirely by their eight octants
// (across Vertex/Edge/Face/CoarseOctants) so no part of their volume
// goes unmeshed.
func IsTransitioning(b octree.Bound, nm *octree.NodeMap) bool {
	for corner := 0; corner < 8; corner++ {
		if _, k := octantAt(b, corner, nm); k > 0 {
			return true
		}
	}
	return false
}

// scan runs octantAt at every corner of every transitioning leaf
// (leaves with no fine corner anywhere are left alone; their own
// whole-cell hex already covers them), keeping the octants whose
// fine-axis count equals wantK and deduplicating physical repeats
// (the same octant is reachable from more than one adjacent leaf's
// corner).
func scan(tree *octree.Tree, nm *octree.NodeMap, leafLabels []int, wantK int) []Octant {
	seen := make(map[[8]int]bool)
	var out []Octant
	for li, idx := range tree.Leaves() {
		b := tree.Cells[idx].Bound
		if !IsTransitioning(b, nm) {
			continue
		}
		label := 0
		if li < len(leafLabels) {
			label = leafLabels[li]
		}
		for corner := 0; corner < 8; corner++ {
			ids, k := octantAt(b, corner, nm)
			if k != wantK {
				continue
			}
			key := dedupKey(ids)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Octant{IDs: ids, Label: label})
		}
	}
	return out
}

// VertexTemplates returns the octant at every leaf corner where all
// three incident faces already have a finer neighbor. Its corners are
// fetched with GetOrCreate like every octant's, so the leaf's center
// node, and any surface node no neighbor placed, is created here on
// first use.
func VertexTemplates(tree *octree.Tree, nm *octree.NodeMap, leafLabels []int) []Octant {
	return scan(tree, nm, leafLabels, 3)
}

// EdgeTemplates returns the octant at every leaf corner where exactly
// two incident faces have a finer neighbor. The axis that is not yet
// fine gets a new interior node at its half-cell position, and the
// combinations of that axis with the two fine ones get new nodes too
// where no neighbor has already placed one there.
func EdgeTemplates(tree *octree.Tree, nm *octree.NodeMap, leafLabels []int) []Octant {
	return scan(tree, nm, leafLabels, 2)
}

// FaceTemplates returns the octant at every leaf corner where exactly
// one incident face has a finer neighbor. The two axes that are not
// yet fine get new interior nodes at the half-cell positions and
// their combination (the face-diagonal-like corner of the octant).
func FaceTemplates(tree *octree.Tree, nm *octree.NodeMap, leafLabels []int) []Octant {
	return scan(tree, nm, leafLabels, 1)
}

// CoarseOctants returns the octant at every leaf corner where none of
// the three incident faces are fine. None of their corners comes from
// a finer neighbor (their edge-midpoint, face-center, and leaf-center
// corners are created as needed), but they still need emitting: a
// transitioning leaf's whole-cell hex is dropped in favor of its
// eight octants, so the octants with no fine axis must still be
// produced to avoid leaving a hole in that leaf's volume.
func CoarseOctants(tree *octree.Tree, nm *octree.NodeMap, leafLabels []int) []Octant {
	return scan(tree, nm, leafLabels, 0)
}
