package octree

import (
	"testing"

	"github.com/autotwin/automesh/seg"
	v3 "github.com/autotwin/automesh/vec/v3"
)

func homogeneousTree(t *testing.T) *Tree {
	t.Helper()
	data := make([]uint8, 2*2*2)
	for i := range data {
		data[i] = 7
	}
	s, err := seg.FromData(2, 2, 2, data)
	if err != nil {
		t.Fatalf("FromData: %v", err)
	}
	return FromSegmentation(s, 2)
}

func TestBuildSpatialIndexLocatesInteriorPoint(t *testing.T) {
	tree := homogeneousTree(t)
	idx := tree.BuildSpatialIndex(v3.Vec{X: 1, Y: 1, Z: 1}, v3.Vec{})
	leaf := idx.Locate(v3.Vec{X: 1, Y: 1, Z: 1})
	if leaf < 0 {
		t.Fatal("Locate found no leaf for a point inside the domain")
	}
	if !tree.Cells[leaf].IsLeaf() {
		t.Error("Locate returned a non-leaf cell index")
	}
}

func TestBuildSpatialIndexLocateMissesOutsidePoint(t *testing.T) {
	tree := homogeneousTree(t)
	idx := tree.BuildSpatialIndex(v3.Vec{X: 1, Y: 1, Z: 1}, v3.Vec{})
	if leaf := idx.Locate(v3.Vec{X: 100, Y: 100, Z: 100}); leaf != -1 {
		t.Errorf("Locate(outside point) = %d, want -1", leaf)
	}
}

func TestBuildSpatialIndexIntersectingFindsWholeDomainBox(t *testing.T) {
	tree := homogeneousTree(t)
	idx := tree.BuildSpatialIndex(v3.Vec{X: 1, Y: 1, Z: 1}, v3.Vec{})
	hits := idx.Intersecting(v3.Vec{X: -1, Y: -1, Z: -1}, v3.Vec{X: 3, Y: 3, Z: 3})
	if len(hits) == 0 {
		t.Fatal("Intersecting found no leaves for a box covering the whole domain")
	}
	for _, h := range hits {
		if !tree.Cells[h].IsLeaf() {
			t.Error("Intersecting returned a non-leaf cell index")
		}
	}
}

func TestBuildSpatialIndexRespectsScaleAndTranslate(t *testing.T) {
	tree := homogeneousTree(t)
	idx := tree.BuildSpatialIndex(v3.Vec{X: 10, Y: 10, Z: 10}, v3.Vec{X: 5, Y: 5, Z: 5})
	// The domain is a 2x2x2 cube scaled by 10 and translated by 5, so its
	// far corner sits near physical (25, 25, 25), not (2, 2, 2).
	if leaf := idx.Locate(v3.Vec{X: 1, Y: 1, Z: 1}); leaf != -1 {
		t.Errorf("Locate(1,1,1) = %d, want -1 once scale/translate move the domain away from the origin", leaf)
	}
	if leaf := idx.Locate(v3.Vec{X: 20, Y: 20, Z: 20}); leaf < 0 {
		t.Error("Locate(20,20,20) found no leaf after scale/translate moved the domain there")
	}
}
