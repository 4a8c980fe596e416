package debug

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/autotwin/automesh/mesh"
	"github.com/autotwin/automesh/octree"
	"github.com/autotwin/automesh/remesh"
	"github.com/autotwin/automesh/seg"
	v3 "github.com/autotwin/automesh/vec/v3"
)

func TestWriteSlicePNGProducesDecodableImage(t *testing.T) {
	data := make([]uint8, 4*4*2)
	for i := range data {
		data[i] = uint8(i % 3)
	}
	s, err := seg.FromData(4, 4, 2, data)
	if err != nil {
		t.Fatalf("FromData: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteSlicePNG(&buf, s, 0, 4); err != nil {
		t.Fatalf("WriteSlicePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if got, want := img.Bounds().Dx(), 4*4; got != want {
		t.Errorf("width = %d, want %d", got, want)
	}
}

func TestWriteSlicePNGRejectsOutOfRangeZ(t *testing.T) {
	s, _ := seg.FromData(2, 2, 2, make([]uint8, 8))
	var buf bytes.Buffer
	if err := WriteSlicePNG(&buf, s, 5, 1); err == nil {
		t.Fatal("expected an error for an out-of-range slice index")
	}
}

func TestWriteOctreeSliceSVGProducesSVGMarkup(t *testing.T) {
	data := make([]uint8, 4*4*4)
	for i := range data {
		data[i] = 1
	}
	s, err := seg.FromData(4, 4, 4, data)
	if err != nil {
		t.Fatalf("FromData: %v", err)
	}
	tree := octree.FromSegmentation(s, 2)

	var buf bytes.Buffer
	WriteOctreeSliceSVG(&buf, tree, 0, 10)
	if !strings.Contains(buf.String(), "<svg") {
		t.Error("expected svg markup in output")
	}
}

func TestWriteTriMeshWireframeSVGProducesSVGMarkup(t *testing.T) {
	m := mesh.New(mesh.Tri)
	m.Coordinates = []v3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}
	m.Connectivity = [][]int{{1, 2, 3}}
	m.Blocks = []int{1}
	tm, err := remesh.New(m)
	if err != nil {
		t.Fatalf("remesh.New: %v", err)
	}

	var buf bytes.Buffer
	WriteTriMeshWireframeSVG(&buf, tm, 100, 100, 50)
	if !strings.Contains(buf.String(), "<svg") {
		t.Error("expected svg markup in output")
	}
}
