package threemf

import (
	"bytes"
	"testing"

	"github.com/autotwin/automesh/mesh"
	v3 "github.com/autotwin/automesh/vec/v3"
)

func TestWriteEncodesTriangleMesh(t *testing.T) {
	m := mesh.New(mesh.Tri)
	m.Coordinates = []v3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}
	m.Connectivity = [][]int{{1, 2, 3}}
	m.Blocks = []int{1}

	var buf bytes.Buffer
	if err := Write(&buf, m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected non-empty 3mf output")
	}
}

func TestWriteRejectsNonTriangularMesh(t *testing.T) {
	m := mesh.New(mesh.Hex)
	var buf bytes.Buffer
	if err := Write(&buf, m); err == nil {
		t.Fatal("expected an error exporting a non-triangular mesh")
	}
}
