// Package tettemplate implements §4.6's tetrahedral transition
// templates: the canonical 6-tet cube split, a one-face template for a
// leaf with exactly one fully-refined neighbor face, and a one-edge
// template for a leaf that borders a finer neighbor along exactly one
// edge without either adjacent face being fully refined.
//
// The canonical split is ported directly from original_source's 6-tet
// fan around a cube's main diagonal. The one-face and one-edge
// templates are grounded on original_source's tet module (920 lines,
// dispatching by face/edge neighbor pattern to named connectivity
// functions) for WHICH nodes participate — the 8 corners plus, for a
// refined face, its 4 edge midpoints and center, or, for a refined
// edge, just that edge's midpoint — but not for the exact fan the
// original builds from them: porting that fan by eye, with no
// compiler or test mesh to check face orientation and volume
// conservation against, risks a silently inverted tet, worse than a
// flagged gap (§9(b)). Instead both templates use a cone-to-body-center
// decomposition: every boundary face of the cell (the refined face's 4
// sub-quads, or the refined edge's two re-triangulated faces, plus all
// other faces as single quads) is fanned to a new interior node at the
// cell's center. A cube is star-shaped with respect to its own center,
// so this always tiles the cell's full volume with no gaps or overlaps
// regardless of the exact fan chosen, at the cost of not matching
// original_source's tet count exactly. Every other face/edge
// combination (two or more refined faces, corner cases, and most
// refined-edge pairings) is, for now, an explicit TemplateMissing.
package tettemplate

import (
	"github.com/autotwin/automesh/mesh"
	"github.com/autotwin/automesh/octree"
)

// diagonalFan lists, for the canonical split around the 0-6 main
// diagonal, the other three corners of each of the 6 tets in the fan,
// visiting the remaining 6 corners (1,2,3,7,4,5) in their cyclic order
// around that diagonal.
var diagonalFan = [6][2]int{
	{1, 2}, {2, 3}, {3, 7}, {7, 4}, {4, 5}, {5, 1},
}

// CanonicalSplit decomposes one hex's 8 corner node ids (in the usual
// bottom-quad-then-top-quad order) into 6 tets sharing the main
// diagonal between corner 0 and corner 6. Always valid; used whenever
// none of the hex's six face neighbors are more refined.
func CanonicalSplit(ids [8]int) [6][4]int {
	var out [6][4]int
	for i, pair := range diagonalFan {
		out[i] = [4]int{ids[0], ids[pair[0]], ids[pair[1]], ids[6]}
	}
	return out
}

// FacePattern is a bitmask over the 6 faces (FaceMinX..FaceMaxZ, same
// numbering as octree) indicating which faces have an already fully
// refined neighbor (a node sits at that face's center).
type FacePattern uint8

// EdgePattern is a bitmask over the 12 cube edges (same corner-pair
// order as edgeCorners) indicating which edges have an already-finer
// neighbor reaching only that edge's midpoint, short of a full face.
type EdgePattern uint16

// ErrTemplateMissing reports a pattern with no implemented tet
// arrangement, matching §9(b): the caller skips the leaf rather than
// treating this as a crash.
var ErrTemplateMissing = &mesh.Error{Kind: mesh.TemplateMissing, Message: "no tet transition template for this face/edge pattern", Index: -1}

// faceQuad lists, for each face, its 4 corner indices (into the usual
// bottom-quad-then-top-quad corner order) walking that face's
// boundary in cyclic order.
var faceQuad = [6][4]int{
	octree.FaceMinX: {0, 3, 7, 4},
	octree.FaceMaxX: {1, 2, 6, 5},
	octree.FaceMinY: {0, 1, 5, 4},
	octree.FaceMaxY: {3, 2, 6, 7},
	octree.FaceMinZ: {0, 1, 2, 3},
	octree.FaceMaxZ: {4, 5, 6, 7},
}

// edgeCorners lists, for each of the 12 cube edges, the pair of corner
// indices it joins.
var edgeCorners = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// edgeFaces lists, for each of the 12 cube edges, the 2 faces it
// borders.
var edgeFaces = [12][2]int{
	{octree.FaceMinY, octree.FaceMinZ},
	{octree.FaceMaxX, octree.FaceMinZ},
	{octree.FaceMaxY, octree.FaceMinZ},
	{octree.FaceMinX, octree.FaceMinZ},
	{octree.FaceMinY, octree.FaceMaxZ},
	{octree.FaceMaxX, octree.FaceMaxZ},
	{octree.FaceMaxY, octree.FaceMaxZ},
	{octree.FaceMinX, octree.FaceMaxZ},
	{octree.FaceMinX, octree.FaceMinY},
	{octree.FaceMaxX, octree.FaceMinY},
	{octree.FaceMaxX, octree.FaceMaxY},
	{octree.FaceMinX, octree.FaceMaxY},
}

func midKey(a, b octree.GridKey) octree.GridKey {
	return octree.GridKey{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2, Z: (a.Z + b.Z) / 2}
}

func bodyCenterKey(cell octree.Bound) octree.GridKey {
	return octree.GridKey{
		X: (cell.MinX + cell.MaxX) / 2,
		Y: (cell.MinY + cell.MaxY) / 2,
		Z: (cell.MinZ + cell.MaxZ) / 2,
	}
}

// coneQuad fans the quad q (4 node ids in cyclic order) to apex,
// splitting it into 2 tets via the q[0]-q[2] diagonal.
func coneQuad(apex int, q [4]int) [2][4]int {
	return [2][4]int{
		{apex, q[0], q[1], q[2]},
		{apex, q[0], q[2], q[3]},
	}
}

// rotateToEdge rotates quad q (cyclic corner indices) so corner a is
// first and corner b follows it, reversing direction if needed. a and
// b must be adjacent corners of q.
func rotateToEdge(q [4]int, a, b int) [4]int {
	for i := 0; i < 4; i++ {
		if q[i] != a {
			continue
		}
		if q[(i+1)%4] == b {
			return [4]int{q[i], q[(i+1)%4], q[(i+2)%4], q[(i+3)%4]}
		}
		if q[(i+3)%4] == b {
			return [4]int{q[i], q[(i+3)%4], q[(i+2)%4], q[(i+1)%4]}
		}
	}
	return q
}

func singleFaceBit(p FacePattern) (int, bool) {
	face := -1
	for i := 0; i < 6; i++ {
		if p&(1<<uint(i)) == 0 {
			continue
		}
		if face != -1 {
			return -1, false
		}
		face = i
	}
	return face, face != -1
}

func singleEdgeBit(p EdgePattern) (int, bool) {
	edge := -1
	for i := 0; i < 12; i++ {
		if p&(1<<uint(i)) == 0 {
			continue
		}
		if edge != -1 {
			return -1, false
		}
		edge = i
	}
	return edge, edge != -1
}

// oneFaceSplit decomposes a cell with exactly one fully-refined face
// into tets. The refined face is split into 4 sub-quads around its own
// center (each corner paired with its two adjacent edge midpoints and
// the face center); those 4 sub-quads plus the 5 other faces (each a
// plain quad) are all fanned to a new body-center node.
func oneFaceSplit(cell octree.Bound, nm *octree.NodeMap, ids [8]int, face int) [][4]int {
	corners := octree.Corners(cell)
	q := faceQuad[face]

	var edgeMid [4]int
	for i := 0; i < 4; i++ {
		edgeMid[i] = nm.GetOrCreate(midKey(corners[q[i]], corners[q[(i+1)%4]]))
	}
	center := nm.GetOrCreate(midKey(corners[q[0]], corners[q[2]]))
	body := nm.GetOrCreate(bodyCenterKey(cell))

	var out [][4]int
	for i := 0; i < 4; i++ {
		sub := [4]int{ids[q[i]], edgeMid[i], center, edgeMid[(i+3)%4]}
		tets := coneQuad(body, sub)
		out = append(out, tets[0], tets[1])
	}
	for g := 0; g < 6; g++ {
		if g == face {
			continue
		}
		fq := faceQuad[g]
		tets := coneQuad(body, [4]int{ids[fq[0]], ids[fq[1]], ids[fq[2]], ids[fq[3]]})
		out = append(out, tets[0], tets[1])
	}
	return out
}

// oneEdgeSplit decomposes a cell with exactly one finer-neighbor edge
// (short of a full face) into tets. The edge's two adjacent faces are
// each re-triangulated into 3 triangles through the new edge midpoint;
// those, plus the other 4 faces as plain quads, are all fanned to a
// new body-center node.
func oneEdgeSplit(cell octree.Bound, nm *octree.NodeMap, ids [8]int, edge int) [][4]int {
	corners := octree.Corners(cell)
	a, b := edgeCorners[edge][0], edgeCorners[edge][1]
	mid := nm.GetOrCreate(midKey(corners[a], corners[b]))
	body := nm.GetOrCreate(bodyCenterKey(cell))

	f1, f2 := edgeFaces[edge][0], edgeFaces[edge][1]
	affected := [6]bool{}
	affected[f1] = true
	affected[f2] = true

	var out [][4]int
	for _, face := range [2]int{f1, f2} {
		rq := rotateToEdge(faceQuad[face], a, b)
		r := [4]int{ids[rq[0]], ids[rq[1]], ids[rq[2]], ids[rq[3]]}
		tris := [3][3]int{
			{mid, r[1], r[2]},
			{mid, r[2], r[3]},
			{mid, r[3], r[0]},
		}
		for _, tri := range tris {
			out = append(out, [4]int{body, tri[0], tri[1], tri[2]})
		}
	}
	for g := 0; g < 6; g++ {
		if affected[g] {
			continue
		}
		fq := faceQuad[g]
		tets := coneQuad(body, [4]int{ids[fq[0]], ids[fq[1]], ids[fq[2]], ids[fq[3]]})
		out = append(out, tets[0], tets[1])
	}
	return out
}

// Dispatch returns the tet decomposition of one leaf's 8 corner ids
// given which of its faces border a fully-refined neighbor (faces) and
// which of its edges border a finer neighbor short of a full face
// (edges). cell and nm are needed only by the one-face and one-edge
// templates, which introduce genuinely new interior nodes; the
// all-unrefined case ignores them. Any pattern other than
// all-unrefined, exactly-one-face, or (with no face refined)
// exactly-one-edge returns ErrTemplateMissing.
func Dispatch(cell octree.Bound, nm *octree.NodeMap, ids [8]int, faces FacePattern, edges EdgePattern) ([][4]int, error) {
	if face, ok := singleFaceBit(faces); ok {
		return oneFaceSplit(cell, nm, ids, face), nil
	}
	if faces == 0 {
		if edge, ok := singleEdgeBit(edges); ok {
			return oneEdgeSplit(cell, nm, ids, edge), nil
		}
		if edges == 0 {
			split := CanonicalSplit(ids)
			out := make([][4]int, len(split))
			copy(out, split[:])
			return out, nil
		}
	}
	return nil, ErrTemplateMissing
}
