package remesh

import (
	"math"

	"github.com/autotwin/automesh/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Curvature computes, for every node, the discrete curvature of §4.7: a
// weighted mean over incident edges a-b of the dihedral angle between
// the two triangles sharing that edge, weighted by edge length and
// normalized by the total incident edge length. Grounded on
// original_source's curvature, using gonum's spatial/r3 for the
// cross/dot/normalize steps.
func (tm *TriMesh) Curvature() ([]float64, error) {
	n := tm.Mesh.NumNodes()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		a := i + mesh.NodeNumberingOffset
		neighbors := tm.NodeNodes(a)
		if len(neighbors) == 0 {
			continue
		}
		var weighted, weight float64
		for _, b := range neighbors {
			_, _, c, d, err := tm.edgeInfo(a, b)
			if err != nil {
				return nil, err
			}
			edgeLen := tm.coord(a).Sub(tm.coord(b)).Length()
			weight += edgeLen

			n1 := r3.Unit(r3.Cross(r3Of(tm.coord(c).Sub(tm.coord(a))), r3Of(tm.coord(b).Sub(tm.coord(c)))))
			n2 := r3.Unit(r3.Cross(r3Of(tm.coord(d).Sub(tm.coord(b))), r3Of(tm.coord(a).Sub(tm.coord(d)))))
			cosAngle := clamp(r3.Dot(n1, n2), -1, 1)
			weighted += math.Acos(cosAngle) / math.Pi * edgeLen
		}
		if weight == 0 {
			continue
		}
		out[i] = weighted / weight
	}
	return out, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
