package mesh

import (
	"testing"

	"github.com/stretchr/testify/require"

	v3 "github.com/autotwin/automesh/vec/v3"
)

func twoHexesSharingAFace() *Mesh {
	m := New(Hex)
	m.Coordinates = make([]v3.Vec, 12)
	m.Connectivity = [][]int{
		{1, 2, 4, 3, 5, 6, 8, 7},
		{2, 9, 10, 4, 6, 11, 12, 8},
	}
	m.Blocks = []int{1, 1}
	return m
}

func TestNodeElementConnectivity(t *testing.T) {
	m := twoHexesSharingAFace()
	m.NodeElementConnectivity()
	require.True(t, m.HasNodeElementConnectivity())
	// Node 2 is shared by both elements.
	require.Len(t, m.NodeElements(2), 2)
	// Node 1 only belongs to the first element.
	require.Equal(t, []int{0}, m.NodeElements(1))
}

func TestNodeNodeConnectivityRequiresNodeElementFirst(t *testing.T) {
	m := twoHexesSharingAFace()
	require.Error(t, m.NodeNodeConnectivity())
}

func TestNodeNodeConnectivityOnSingleHex(t *testing.T) {
	m := singleHex()
	m.NodeElementConnectivity()
	require.NoError(t, m.NodeNodeConnectivity())
	// Node 1 is hex-adjacent (bottom-then-top ordering) to local slots
	// 1, 3, 4 -> global nodes 2, 3, 5.
	want := map[int]bool{2: true, 3: true, 5: true}
	got := m.NodeNodes(1)
	require.Len(t, got, len(want))
	for _, id := range got {
		require.True(t, want[id], "unexpected neighbor %d of node 1", id)
	}
}

func TestNodeNodeGraphMatchesAdjacencyList(t *testing.T) {
	m := singleHex()
	m.NodeElementConnectivity()
	require.NoError(t, m.NodeNodeConnectivity())
	g, err := m.NodeNodeGraph()
	require.NoError(t, err)
	for _, nbr := range m.NodeNodes(1) {
		require.True(t, g.HasEdgeBetween(1, int64(nbr)), "graph missing edge between 1 and %d", nbr)
	}
}

func TestNodalHierarchyRejectsNonHexMesh(t *testing.T) {
	m := New(Tet)
	_, err := m.NodalHierarchy()
	require.Error(t, err)
}

func TestNodalHierarchyClassifiesSingleHexAsAllExterior(t *testing.T) {
	m := singleHex()
	m.NodeElementConnectivity()
	h, err := m.NodalHierarchy()
	require.NoError(t, err)
	require.Len(t, h.Exterior, 8)
	require.Empty(t, h.Interior)
	require.Empty(t, h.Interface)
}
