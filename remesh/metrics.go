package remesh

import "math"

// sixtyDegrees is the equilateral-triangle interior angle every metric
// in §4.7 is scaled against.
const sixtyDegrees = math.Pi / 3

// Metrics holds the per-triangle quality measures of §4.7.
type Metrics struct {
	Area              float64
	MinAngle          float64 // radians
	MaxSkew           float64
	MaxEdgeRatio      float64
	MinScaledJacobian float64
}

// TriangleMetrics computes Metrics for every element. Grounded on
// original_source's areas/minimum_angles/maximum_skews/
// maximum_edge_ratios/minimum_scaled_jacobians, folded into one pass per
// triangle since they share the same edge-vector setup.
func (tm *TriMesh) TriangleMetrics() []Metrics {
	out := make([]Metrics, len(tm.Mesh.Connectivity))
	for i, conn := range tm.Mesh.Connectivity {
		p0, p1, p2 := tm.coord(conn[0]), tm.coord(conn[1]), tm.coord(conn[2])
		e0 := p2.Sub(p1) // opposite node 0
		e1 := p0.Sub(p2) // opposite node 1
		e2 := p1.Sub(p0) // opposite node 2

		area := 0.5 * (p1.Sub(p0)).Cross(p2.Sub(p0)).Length()

		l0, l1, l2 := e0.Length(), e1.Length(), e2.Length()
		shortest, longest := l0, l0
		for _, l := range []float64{l1, l2} {
			if l < shortest {
				shortest = l
			}
			if l > longest {
				longest = l
			}
		}

		u0, u1, u2 := e0.Normalize(), e1.Normalize(), e2.Normalize()
		angle0 := math.Acos(clamp(-u2.Dot(u1), -1, 1))
		angle1 := math.Acos(clamp(-u0.Dot(u2), -1, 1))
		angle2 := math.Acos(clamp(-u1.Dot(u0), -1, 1))
		minAngle := math.Min(angle0, math.Min(angle1, angle2))

		out[i] = Metrics{
			Area:              area,
			MinAngle:          minAngle,
			MaxSkew:           (sixtyDegrees - minAngle) / sixtyDegrees,
			MaxEdgeRatio:      longest / shortest,
			MinScaledJacobian: math.Sin(minAngle) / math.Sin(sixtyDegrees),
		}
	}
	return out
}
