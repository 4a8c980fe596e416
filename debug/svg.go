package debug

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/autotwin/automesh/mesh"
	"github.com/autotwin/automesh/octree"
	"github.com/autotwin/automesh/remesh"
)

// WriteOctreeSliceSVG renders the XY outlines of every leaf cell whose
// Z-bound straddles the half-integer plane z as an SVG wireframe, one
// rect per leaf. Grounded on the teacher's own debug-visualization
// instinct for previewing mesh structure before a full 3-D render.
func WriteOctreeSliceSVG(w io.Writer, t *octree.Tree, z int, scaleToPixels float64) {
	minX, maxX, minY, maxY := octreeExtent(t)
	width := int(float64(maxX-minX)*scaleToPixels) + 1
	height := int(float64(maxY-minY)*scaleToPixels) + 1

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")

	for _, i := range t.Leaves() {
		b := t.Cells[i].Bound
		if z < b.MinZ || z >= b.MaxZ {
			continue
		}
		x := int(float64(b.MinX-minX) * scaleToPixels)
		y := int(float64(b.MinY-minY) * scaleToPixels)
		rectW := int(float64(b.MaxX-b.MinX) * scaleToPixels)
		rectH := int(float64(b.MaxY-b.MinY) * scaleToPixels)
		canvas.Rect(x, y, rectW, rectH, "fill:none;stroke:black;stroke-width:1")
	}
	canvas.End()
}

func octreeExtent(t *octree.Tree) (minX, maxX, minY, maxY int) {
	first := true
	for _, i := range t.Leaves() {
		b := t.Cells[i].Bound
		if first {
			minX, maxX, minY, maxY = b.MinX, b.MaxX, b.MinY, b.MaxY
			first = false
			continue
		}
		if b.MinX < minX {
			minX = b.MinX
		}
		if b.MaxX > maxX {
			maxX = b.MaxX
		}
		if b.MinY < minY {
			minY = b.MinY
		}
		if b.MaxY > maxY {
			maxY = b.MaxY
		}
	}
	return
}

// WriteTriMeshWireframeSVG renders every edge of tm as an SVG line
// segment, projected onto the XY plane: a flat preview of a triangular
// surface remesh.
func WriteTriMeshWireframeSVG(w io.Writer, tm *remesh.TriMesh, width, height int, scaleToPixels float64) {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")

	for _, e := range tm.Edges {
		a := tm.Mesh.Coordinates[e[0]-mesh.NodeNumberingOffset]
		b := tm.Mesh.Coordinates[e[1]-mesh.NodeNumberingOffset]
		canvas.Line(
			int(a.X*scaleToPixels), int(a.Y*scaleToPixels),
			int(b.X*scaleToPixels), int(b.Y*scaleToPixels),
			"stroke:black;stroke-width:1",
		)
	}
	canvas.End()
}
