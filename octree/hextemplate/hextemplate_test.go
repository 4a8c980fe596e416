package hextemplate

import (
	"testing"

	"github.com/autotwin/automesh/octree"
	v3 "github.com/autotwin/automesh/vec/v3"
)

// buildSplitCorner builds a 2-level tree: an 8-voxel cube subdivided
// once, with the three octants face-adjacent to octant 0 (octants 1,
// 2, and 4) each subdivided a second time, so octant 0's far corner
// (shared with all three) borders a refinement jump on all three
// incident axes.
func buildSplitCorner() *octree.Tree {
	root := octree.Bound{MinX: 0, MaxX: 4, MinY: 0, MaxY: 4, MinZ: 0, MaxZ: 4}
	t := &octree.Tree{Cells: []octree.Cell{{Bound: root, Level: 0, Faces: [6]int{-1, -1, -1, -1, -1, -1}}}}
	t.Subdivide(0)
	// Subdivide(0) appends octant m at cell index 1+m.
	t.Subdivide(2)
	t.Subdivide(3)
	t.Subdivide(5)
	if err := t.Balance(); err != nil {
		panic(err)
	}
	return t
}

func noDuplicateNodes(t *testing.T, octants []Octant, numNodes int) {
	t.Helper()
	for _, o := range octants {
		seen := make(map[int]bool, 8)
		for _, id := range o.IDs {
			if id < 0 || id >= numNodes {
				t.Fatalf("template referenced out-of-range node id %d", id)
			}
			if seen[id] {
				t.Fatalf("template hex %v has a duplicate node", o.IDs)
			}
			seen[id] = true
		}
	}
}

func TestTemplatesProduceWellFormedHexes(t *testing.T) {
	tree := buildSplitCorner()
	nm, _, labels := tree.LeafNodes(nil, v3.Vec{X: 1, Y: 1, Z: 1}, v3.Vec{})

	noDuplicateNodes(t, VertexTemplates(tree, nm, labels), len(nm.Coordinates()))
	noDuplicateNodes(t, EdgeTemplates(tree, nm, labels), len(nm.Coordinates()))
	noDuplicateNodes(t, FaceTemplates(tree, nm, labels), len(nm.Coordinates()))
	noDuplicateNodes(t, CoarseOctants(tree, nm, labels), len(nm.Coordinates()))
}

func TestNoTemplatesFireOnUniformTree(t *testing.T) {
	root := octree.Bound{MinX: 0, MaxX: 2, MinY: 0, MaxY: 2, MinZ: 0, MaxZ: 2}
	tree := &octree.Tree{Cells: []octree.Cell{{Bound: root, Level: 0, Faces: [6]int{-1, -1, -1, -1, -1, -1}}}}
	tree.Subdivide(0)
	nm, _, labels := tree.LeafNodes(nil, v3.Vec{X: 1, Y: 1, Z: 1}, v3.Vec{})

	if v := VertexTemplates(tree, nm, labels); len(v) != 0 {
		t.Errorf("expected no vertex templates on a uniform tree, got %d", len(v))
	}
	if e := EdgeTemplates(tree, nm, labels); len(e) != 0 {
		t.Errorf("expected no edge templates on a uniform tree, got %d", len(e))
	}
	if f := FaceTemplates(tree, nm, labels); len(f) != 0 {
		t.Errorf("expected no face templates on a uniform tree, got %d", len(f))
	}
	if c := CoarseOctants(tree, nm, labels); len(c) != 0 {
		t.Errorf("expected no coarse octants on a uniform tree (nothing transitions), got %d", len(c))
	}
}

// TestOctantAtClassifiesByFineAxisCount builds a single cell by hand
// and pre-populates the node map to simulate a finer neighbor on the
// -X and -Y faces only, then checks that the near corner (0,0,0) is
// classified as an edge case (k=2) with the right 8 ids, while the far
// corner (4,4,4), bordering no finer neighbor, is classified coarse
// (k=0).
func TestOctantAtClassifiesByFineAxisCount(t *testing.T) {
	nm := octree.NewNodeMap(v3.Vec{X: 1, Y: 1, Z: 1}, v3.Vec{})
	b := octree.Bound{MinX: 0, MaxX: 4, MinY: 0, MaxY: 4, MinZ: 0, MaxZ: 4}

	// Simulate finer neighbors across -X and -Y by placing nodes one
	// half-cell outside those faces; leave -Z untouched.
	nm.GetOrCreate(octree.GridKey{X: -2, Y: 0, Z: 0})
	nm.GetOrCreate(octree.GridKey{X: 0, Y: -2, Z: 0})

	ids, k := octantAt(b, 0, nm)
	if k != 2 {
		t.Fatalf("expected corner 0 to classify as an edge case (k=2), got k=%d", k)
	}
	wantCorners := [8]octree.GridKey{
		{X: 0, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 2, Y: 2, Z: 0}, {X: 0, Y: 2, Z: 0},
		{X: 0, Y: 0, Z: 2}, {X: 2, Y: 0, Z: 2}, {X: 2, Y: 2, Z: 2}, {X: 0, Y: 2, Z: 2},
	}
	for i, want := range wantCorners {
		got, ok := nm.Get(want)
		if !ok || got != ids[i] {
			t.Errorf("octant corner %d: want grid key %v (id %d present=%v), got id %d", i, want, got, ok, ids[i])
		}
	}

	if _, k := octantAt(b, 6, nm); k != 0 {
		t.Errorf("expected the far corner to classify as coarse (k=0), got k=%d", k)
	}
}

// TestEightOctantsPartitionOneLeaf checks that the eight octants of a
// single leaf (regardless of which corners are transitioning)
// reference exactly the 27 grid points of that leaf's 3x3x3 corner
// grid and introduce no duplicate or degenerate hex.
func TestEightOctantsPartitionOneLeaf(t *testing.T) {
	nm := octree.NewNodeMap(v3.Vec{X: 1, Y: 1, Z: 1}, v3.Vec{})
	b := octree.Bound{MinX: 0, MaxX: 4, MinY: 0, MaxY: 4, MinZ: 0, MaxZ: 4}
	nm.GetOrCreate(octree.GridKey{X: -2, Y: 0, Z: 0})
	nm.GetOrCreate(octree.GridKey{X: 0, Y: -2, Z: 0})

	seen := make(map[int]bool)
	for corner := 0; corner < 8; corner++ {
		ids, _ := octantAt(b, corner, nm)
		local := make(map[int]bool, 8)
		for _, id := range ids {
			if local[id] {
				t.Fatalf("corner %d produced a degenerate octant %v", corner, ids)
			}
			local[id] = true
			seen[id] = true
		}
	}
	if len(seen) != 27 {
		t.Errorf("expected the 8 octants to reference 27 distinct grid points, got %d", len(seen))
	}
}

func TestBuildMeshProducesValidElements(t *testing.T) {
	tree := buildSplitCorner()
	nm, conn, labels := tree.LeafNodes(nil, v3.Vec{X: 1, Y: 1, Z: 1}, v3.Vec{})
	m := BuildMesh(tree, nm, conn, labels)

	if len(m.Connectivity) == 0 {
		t.Fatalf("expected a non-empty mesh")
	}
	if err := m.Validate(); err != nil {
		t.Errorf("BuildMesh produced an invalid mesh: %v", err)
	}
}

// TestBuildMeshTransitionHexesKeepLeafLabel checks that every hex
// contributed by the octant dispatcher (as opposed to a leaf's own
// whole-cell hex) carries the real label of the leaf it split from,
// never a fabricated block id.
func TestBuildMeshTransitionHexesKeepLeafLabel(t *testing.T) {
	tree := buildSplitCorner()
	nm, conn, labels := tree.LeafNodes(nil, v3.Vec{X: 1, Y: 1, Z: 1}, v3.Vec{})
	for i := range labels {
		labels[i] = 9
	}
	m := BuildMesh(tree, nm, conn, labels)

	for i, block := range m.Blocks {
		if block != 9 {
			t.Errorf("element %d carries block %d, want the leaf's real label 9", i, block)
		}
	}
}
