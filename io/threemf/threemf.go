// Package threemf exports a triangular surface mesh — the boundary
// extraction of a hex/tet mesh, or a remesh.TriMesh — as a 3MF model,
// a debug/interchange path the teacher reserves go3mf for even though
// its own render tree never exercises it. Grounded on the Domain Stack
// wiring: go3mf is a direct dependency with no other home in femesh.
package threemf

import (
	"io"

	"github.com/autotwin/automesh/mesh"
	"github.com/hpinc/go3mf"
)

// objectID is the single mesh object id every export uses; femesh never
// needs more than one build item per file.
const objectID = 1

// Write encodes m, which must be a triangular mesh, as a single-object
// 3MF model to w.
func Write(w io.Writer, m *mesh.Mesh) error {
	if m.Type != mesh.Tri {
		return &mesh.Error{Kind: mesh.InvalidInput, Message: "3mf export requires a triangular surface mesh"}
	}

	vertices := make([]go3mf.Point3D, len(m.Coordinates))
	for i, c := range m.Coordinates {
		vertices[i] = go3mf.Point3D{float32(c.X), float32(c.Y), float32(c.Z)}
	}

	triangles := make([]go3mf.Triangle, len(m.Connectivity))
	for i, conn := range m.Connectivity {
		triangles[i] = go3mf.Triangle{
			V1: uint32(conn[0] - mesh.NodeNumberingOffset),
			V2: uint32(conn[1] - mesh.NodeNumberingOffset),
			V3: uint32(conn[2] - mesh.NodeNumberingOffset),
		}
	}

	model := &go3mf.Model{
		Units: go3mf.UnitMillimeter,
		Resources: go3mf.Resources{
			Objects: []*go3mf.Object{
				{
					ID: objectID,
					Mesh: &go3mf.Mesh{
						Vertices:  go3mf.Vertices{Vertex: vertices},
						Triangles: go3mf.Triangles{Triangle: triangles},
					},
				},
			},
		},
		Build: go3mf.Build{
			Items: []*go3mf.Item{{ObjectID: objectID}},
		},
	}

	return go3mf.NewEncoder(w).Encode(model)
}
