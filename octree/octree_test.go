package octree

import (
	"testing"

	"github.com/autotwin/automesh/seg"
)

// cornerAnomaly builds an 8x8x8 segmentation that is uniformly label 1
// except for a single voxel at (0,0,0) carrying label 2, so
// FromSegmentation with maxLevels=3 refines one corner cell all the way
// down to individual voxels while the seven other octants of the root
// stay coarse level-1 leaves.
func cornerAnomaly(t *testing.T) *seg.Segmentation {
	t.Helper()
	data := make([]uint8, 8*8*8)
	for i := range data {
		data[i] = 1
	}
	data[0] = 2 // (i,j,k) = (0,0,0)
	s, err := seg.FromData(8, 8, 8, data)
	if err != nil {
		t.Fatalf("FromData: %v", err)
	}
	return s
}

func TestFromSegmentationRefinesOnlyAroundTheAnomaly(t *testing.T) {
	tree := FromSegmentation(cornerAnomaly(t), 3)
	var maxLevel, minLevel int
	first := true
	for _, i := range tree.Leaves() {
		lvl := tree.Cells[i].Level
		if first {
			maxLevel, minLevel = lvl, lvl
			first = false
			continue
		}
		if lvl > maxLevel {
			maxLevel = lvl
		}
		if lvl < minLevel {
			minLevel = lvl
		}
	}
	if maxLevel != 3 {
		t.Errorf("max leaf level = %d, want 3 (anomaly refined to the depth bound)", maxLevel)
	}
	if minLevel != 1 {
		t.Errorf("min leaf level = %d, want 1 (rest of the domain stays coarse)", minLevel)
	}
}

// TestBalanceEnforcesTwoToOneRule covers spec.md §8 property 4: after
// Balance, no two face-adjacent leaves differ by more than one level.
func TestBalanceEnforcesTwoToOneRule(t *testing.T) {
	tree := FromSegmentation(cornerAnomaly(t), 3)
	if err := tree.Balance(); err != nil {
		t.Fatalf("Balance: %v", err)
	}
	for _, i := range tree.Leaves() {
		cell := tree.Cells[i]
		for face := 0; face < 6; face++ {
			n := cell.Faces[face]
			if n < 0 {
				continue
			}
			neighbor := tree.Cells[n]
			if !neighbor.IsLeaf() {
				continue
			}
			diff := cell.Level - neighbor.Level
			if diff < 0 {
				diff = -diff
			}
			if diff > 1 {
				t.Errorf("leaf %d (level %d) and face-neighbor %d (level %d) differ by %d levels", i, cell.Level, n, neighbor.Level, diff)
			}
		}
	}
}

func TestPruneCompactsToLeavesOnly(t *testing.T) {
	tree := FromSegmentation(cornerAnomaly(t), 3)
	if err := tree.Balance(); err != nil {
		t.Fatalf("Balance: %v", err)
	}
	before := len(tree.Leaves())
	tree.Prune()
	if got, want := len(tree.Cells), before; got != want {
		t.Errorf("cell count after Prune = %d, want %d (leaves only)", got, want)
	}
	for _, c := range tree.Cells {
		if !c.IsLeaf() {
			t.Error("Prune left a non-leaf cell behind")
		}
	}
}
