package remesh

import (
	"math"
	"testing"

	v3 "github.com/autotwin/automesh/vec/v3"
)

func TestCurvatureIsBoundedAndSymmetricOnRegularTetrahedron(t *testing.T) {
	m := newTetrahedron()
	// Rescale to a regular tetrahedron so all 4 nodes are geometrically
	// equivalent and should report equal curvature.
	m.Coordinates[0] = v3.Vec{X: 1, Y: 1, Z: 1}
	m.Coordinates[1] = v3.Vec{X: 1, Y: -1, Z: -1}
	m.Coordinates[2] = v3.Vec{X: -1, Y: 1, Z: -1}
	m.Coordinates[3] = v3.Vec{X: -1, Y: -1, Z: 1}

	tm, err := New(m)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	curvature, err := tm.Curvature()
	if err != nil {
		t.Fatalf("Curvature: %v", err)
	}
	if len(curvature) != 4 {
		t.Fatalf("expected 4 curvature values, got %d", len(curvature))
	}
	for i, k := range curvature {
		if math.IsNaN(k) || math.IsInf(k, 0) {
			t.Fatalf("node %d curvature is not finite: %v", i+1, k)
		}
		if k < 0 || k > 1 {
			t.Errorf("node %d curvature = %v, want in [0,1] (acos/pi weighted mean)", i+1, k)
		}
	}
	for i := 1; i < 4; i++ {
		if math.Abs(curvature[i]-curvature[0]) > 1e-9 {
			t.Errorf("regular tetrahedron should have equal curvature at every node: node %d = %v, node 1 = %v", i+1, curvature[i], curvature[0])
		}
	}
}
