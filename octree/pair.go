package octree

// Pair implements §4.4.4's "pair" pass: a stricter-than-balance
// constraint (equal refinement, not just within one level) across the
// faces selected to simplify dualization. It pairs the Z-axis faces
// (FaceMinZ/FaceMaxZ)
// only, since the dual constructions this pass exists to simplify
// operate on Z-layered slices (mirroring the teacher's own Z-axis
// layering convention, e.g. render/hex8.go's per-layer mesh storage).
// It splits the coarser side when needed and is idempotent: running it
// twice makes no further change.
func (t *Tree) Pair() {
	pairFaces := [2]int{FaceMinZ, FaceMaxZ}
	for {
		changed := false
		n := len(t.Cells)
		for index := 0; index < n; index++ {
			cell := &t.Cells[index]
			if !cell.IsLeaf() {
				continue
			}
			for _, face := range pairFaces {
				neighbor := cell.Faces[face]
				if neighbor < 0 {
					continue
				}
				nCell := &t.Cells[neighbor]
				if nCell.Children == nil {
					continue
				}
				// Neighbor is strictly finer: split this cell to match.
				label := cell.Label
				t.Subdivide(index)
				children := *t.Cells[index].Children
				for _, c := range children {
					t.Cells[c].Label = label
					t.Cells[c].HasLabel = true
				}
				changed = true
				n = len(t.Cells)
				break
			}
		}
		if !changed {
			return
		}
	}
}
