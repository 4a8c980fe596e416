package remesh

// Refine repeatedly splits edges until every edge is shorter than size,
// without collapsing or flipping. Grounded on original_source's refine:
// a one-directional version of the remesh driver for callers that only
// want to densify, not re-equilibrate, a mesh.
func (tm *TriMesh) Refine(size float64) error {
	for {
		tooLong := false
		for _, l := range tm.Lengths {
			if l > size {
				tooLong = true
				break
			}
		}
		if !tooLong {
			return nil
		}
		if err := tm.SplitEdges(size / fourThirds); err != nil {
			return err
		}
	}
}
