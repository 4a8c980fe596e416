package mesh

import (
	"testing"

	"github.com/stretchr/testify/require"

	v3 "github.com/autotwin/automesh/vec/v3"
)

func singleHex() *Mesh {
	m := New(Hex)
	m.Coordinates = make([]v3.Vec, 8)
	m.Connectivity = [][]int{{1, 2, 4, 3, 5, 6, 8, 7}}
	m.Blocks = []int{1}
	return m
}

func TestValidateAcceptsWellFormedMesh(t *testing.T) {
	m := singleHex()
	require.NoError(t, m.Validate())
}

func TestValidateRejectsOutOfRangeConnectivity(t *testing.T) {
	m := singleHex()
	m.Connectivity[0][0] = 99
	require.Error(t, m.Validate())
}

func TestValidateRejectsDegenerateElement(t *testing.T) {
	m := singleHex()
	m.Connectivity[0][1] = m.Connectivity[0][0]
	require.Error(t, m.Validate())
}

// TestRenumberIsIdempotentOnCompactMesh covers spec.md §8 property 3:
// renumbering an already-compact mesh leaves it unchanged.
func TestRenumberIsIdempotentOnCompactMesh(t *testing.T) {
	m := singleHex()
	before := append([][]int(nil), m.Connectivity...)
	for i, c := range before {
		before[i] = append([]int(nil), c...)
	}
	m.Renumber()
	require.Equal(t, before, m.Connectivity)
}

func TestRenumberCompactsSparseIdentifiers(t *testing.T) {
	m := New(Tri)
	m.Coordinates = make([]v3.Vec, 10)
	m.Connectivity = [][]int{{2, 5, 9}}
	m.Blocks = []int{1}
	m.Renumber()
	require.Equal(t, 3, m.NumNodes())
	for _, id := range m.Connectivity[0] {
		require.GreaterOrEqual(t, id, NodeNumberingOffset)
		require.LessOrEqual(t, id, 3)
	}
	require.NoError(t, m.Validate())
}
