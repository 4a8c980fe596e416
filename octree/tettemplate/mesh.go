package tettemplate

import (
	"github.com/autotwin/automesh/mesh"
	"github.com/autotwin/automesh/octree"
)

// edgePattern computes the EdgePattern of one leaf by checking, for
// each of its 12 edges, whether a node already exists at that edge's
// midpoint. Used only when facePattern is 0: an edge whose own
// adjacent face is fully refined is already covered by that face's
// bit, so the caller only consults this for leaves with no fully
// refined face.
func edgePattern(b octree.Bound, nm *octree.NodeMap) EdgePattern {
	corners := octree.Corners(b)
	var p EdgePattern
	for i, ec := range edgeCorners {
		if _, ok := nm.Get(midKey(corners[ec[0]], corners[ec[1]])); ok {
			p |= 1 << uint(i)
		}
	}
	return p
}

// facePattern computes the FacePattern of one leaf by checking, for
// each face, whether the face-center grid position already has a node
// (meaning some neighbor on that face has been refined one level
// finer), the same existence-based detection hextemplate uses.
func facePattern(b octree.Bound, nm *octree.NodeMap) FacePattern {
	midX := (b.MinX + b.MaxX) / 2
	midY := (b.MinY + b.MaxY) / 2
	midZ := (b.MinZ + b.MaxZ) / 2

	check := func(k octree.GridKey) bool {
		_, ok := nm.Get(k)
		return ok
	}

	var p FacePattern
	if check(octree.GridKey{X: b.MinX, Y: midY, Z: midZ}) {
		p |= 1 << octree.FaceMinX
	}
	if check(octree.GridKey{X: b.MaxX, Y: midY, Z: midZ}) {
		p |= 1 << octree.FaceMaxX
	}
	if check(octree.GridKey{X: midX, Y: b.MinY, Z: midZ}) {
		p |= 1 << octree.FaceMinY
	}
	if check(octree.GridKey{X: midX, Y: b.MaxY, Z: midZ}) {
		p |= 1 << octree.FaceMaxY
	}
	if check(octree.GridKey{X: midX, Y: midY, Z: b.MinZ}) {
		p |= 1 << octree.FaceMinZ
	}
	if check(octree.GridKey{X: midX, Y: midY, Z: b.MaxZ}) {
		p |= 1 << octree.FaceMaxZ
	}
	return p
}

// BuildMesh meshes every kept leaf of a balanced, pruned tree into
// tets, skipping (not failing) any leaf whose face pattern has no
// implemented template, per §9(b).
func BuildMesh(tree *octree.Tree, nm *octree.NodeMap, leafConn [][8]int, leafLabels []int, skipped *int) *mesh.Mesh {
	leaves := tree.Leaves()
	m := mesh.New(mesh.Tet)
	for li, conn := range leafConn {
		var ids [8]int
		for i, c := range conn {
			ids[i] = c
		}
		bound := tree.Cells[leaves[li]].Bound
		faces := facePattern(bound, nm)
		edges := edgePattern(bound, nm)
		tets, err := Dispatch(bound, nm, ids, faces, edges)
		if err != nil {
			if skipped != nil {
				*skipped++
			}
			continue
		}
		for _, t := range tets {
			c := make([]int, 4)
			for n := 0; n < 4; n++ {
				c[n] = t[n] + mesh.NodeNumberingOffset
			}
			m.Connectivity = append(m.Connectivity, c)
			m.Blocks = append(m.Blocks, leafLabels[li])
		}
	}
	m.Coordinates = nm.Coordinates()
	return m
}
