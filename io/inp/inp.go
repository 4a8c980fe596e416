// Package inp writes a mesh.Mesh as an ABAQUS/CalculiX INP file: the
// reference finite-element exchange format named in spec.md §6. Grounded
// on the teacher's render/finiteelements/mesh/inp.go, trimmed to the
// node/element/material sections spec.md's external-interface contract
// actually specifies — no boundary conditions, loads, or gravity, since
// those are solver-step concerns outside a mesh generator's output.
package inp

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/autotwin/automesh/mesh"
)

// Version is reported in the *HEADING line the way the teacher reports
// its own tool version there.
const Version = "femesh 0.1"

// elementTypeName maps a mesh element arity to the INP keyword spec.md
// §6 names. Tet and Tri are included for the surface/transition meshes
// the octree and remesh packages can also emit.
func elementTypeName(t mesh.ElementType) (string, error) {
	switch t {
	case mesh.Hex:
		return "C3D8R", nil
	case mesh.Tet:
		return "C3D4", nil
	case mesh.Tri:
		return "S3", nil
	default:
		return "", &mesh.Error{Kind: mesh.InvalidInput, Message: fmt.Sprintf("unsupported element type %v for INP export", t)}
	}
}

// Write emits m to w in the format spec.md §6 describes: a *HEADING with
// the tool version and a UTC timestamp, a *NODE section, one
// *ELEMENT/*SOLID SECTION pair per distinct block (sorted ascending),
// every section closed by the literal bytes "\n**\n".
func Write(w io.Writer, m *mesh.Mesh) error {
	elementType, err := elementTypeName(m.Type)
	if err != nil {
		return err
	}

	if err := writeHeading(w); err != nil {
		return err
	}
	if err := writeNodes(w, m); err != nil {
		return err
	}
	return writeElements(w, m, elementType)
}

func writeHeading(w io.Writer) error {
	_, err := fmt.Fprintf(w, "*HEADING\n%s %s\n\n**\n", Version, time.Now().UTC().Format("2006-01-02T15:04:05Z"))
	return err
}

func writeNodes(w io.Writer, m *mesh.Mesh) error {
	if _, err := fmt.Fprintln(w, "*NODE, NSET=ALLNODES"); err != nil {
		return err
	}
	for i, c := range m.Coordinates {
		id := i + mesh.NodeNumberingOffset
		if _, err := fmt.Fprintf(w, "%10d, %15.6e, %15.6e, %15.6e\n", id, c.X, c.Y, c.Z); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "\n**\n")
	return err
}

func writeElements(w io.Writer, m *mesh.Mesh, elementType string) error {
	blocks := sortedDistinctBlocks(m.Blocks)
	for _, block := range blocks {
		if _, err := fmt.Fprintf(w, "*ELEMENT, TYPE=%s, ELSET=EB%d\n", elementType, block); err != nil {
			return err
		}
		for ei, conn := range m.Connectivity {
			if m.Blocks[ei] != block {
				continue
			}
			if err := writeElementLine(w, ei+mesh.NodeNumberingOffset, conn); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, "\n**\n"); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "*SOLID SECTION, ELSET=EB%d, MATERIAL=Default-Steel\n", block); err != nil {
			return err
		}
		if _, err := fmt.Fprint(w, "\n**\n"); err != nil {
			return err
		}
	}
	return nil
}

func writeElementLine(w io.Writer, id int, conn []int) error {
	if _, err := fmt.Fprintf(w, "%10d", id); err != nil {
		return err
	}
	for _, n := range conn {
		if _, err := fmt.Fprintf(w, ", %d", n); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "\n")
	return err
}

func sortedDistinctBlocks(blocks []int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, b := range blocks {
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	sort.Ints(out)
	return out
}
