package seg

import (
	"testing"

	"github.com/stretchr/testify/require"

	v3 "github.com/autotwin/automesh/vec/v3"
)

// TestSingleVoxelHexMesh covers spec.md §8's "single" scenario: a 1x1x1
// segmentation with one label produces one hex at the unit-cube corners.
func TestSingleVoxelHexMesh(t *testing.T) {
	s, err := FromData(1, 1, 1, []uint8{11})
	require.NoError(t, err)
	m, err := s.ToHexMesh(DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 1, m.NumElements())
	require.Equal(t, 8, m.NumNodes())
	require.Equal(t, []int{1, 2, 4, 3, 5, 6, 8, 7}, m.Connectivity[0])
	require.Equal(t, 11, m.Blocks[0])
}

// TestQuadrupleTwoVoidsHexMesh covers spec.md §8's "quadruple_2_voids"
// scenario: a 4x1x1 row with the middle two voxels removed produces two
// disjoint hexes whose shared-x-coordinate nodes are NOT merged, since
// the absent middle voxels break node sharing.
func TestQuadrupleTwoVoidsHexMesh(t *testing.T) {
	s, err := FromData(4, 1, 1, []uint8{11, 0, 0, 11})
	require.NoError(t, err)
	m, err := s.ToHexMesh(DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 2, m.NumElements())
	require.Equal(t, 16, m.NumNodes())
	// The two hexes must not share any node id.
	first := map[int]bool{}
	for _, id := range m.Connectivity[0] {
		first[id] = true
	}
	for _, id := range m.Connectivity[1] {
		require.False(t, first[id], "node %d shared between the two disjoint voxels", id)
	}
}

// TestCubeWithInclusionHexMesh covers spec.md §8's
// "cube_with_inclusion" scenario: a 3x3x3 block of one label with a
// single differently-labeled voxel at its center produces 27 hexes, the
// center one carrying the inclusion's block id.
func TestCubeWithInclusionHexMesh(t *testing.T) {
	data := make([]uint8, 27)
	for i := range data {
		data[i] = 11
	}
	centerIndex := 1 + 3*1 + 9*1 // (i,j,k) = (1,1,1)
	data[centerIndex] = 88
	s, err := FromData(3, 3, 3, data)
	require.NoError(t, err)
	m, err := s.ToHexMesh(DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 27, m.NumElements())
	require.Contains(t, m.Blocks, 88)
}

// TestSingleVoxelWithScale covers spec.md §8's "single with scale"
// scenario and testable property 2 (scale monotonicity): a node at
// lattice (a,b,c) appears at (a*sx+tx, b*sy+ty, c*sz+tz) exactly.
func TestSingleVoxelWithScale(t *testing.T) {
	s, err := FromData(1, 1, 1, []uint8{11})
	require.NoError(t, err)
	opt := DefaultOptions()
	opt.Scale = v3.Vec{X: 10, Y: 20, Z: 30}
	m, err := s.ToHexMesh(opt)
	require.NoError(t, err)
	// Node 8 (1-based) sits at lattice (1,1,1): the far corner.
	c := m.Coordinates[7]
	require.Equal(t, v3.Vec{X: 10, Y: 20, Z: 30}, c)
	require.Equal(t, []int{1, 2, 4, 3, 5, 6, 8, 7}, m.Connectivity[0])
}

func TestToHexMeshRejectsNonPositiveScale(t *testing.T) {
	s, _ := FromData(1, 1, 1, []uint8{1})
	opt := DefaultOptions()
	opt.Scale = v3.Vec{X: 0, Y: 1, Z: 1}
	_, err := s.ToHexMesh(opt)
	require.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	s, _ := FromData(2, 1, 1, []uint8{1, 2})
	clone := s.Clone()
	clone.Set(0, 0, 0, 99)
	require.NotEqual(t, uint8(99), s.At(0, 0, 0))
}
