package octree

import (
	"github.com/dhconnelly/rtreego"

	v3 "github.com/autotwin/automesh/vec/v3"
)

// leafSpatial adapts a leaf cell to rtreego.Spatial so the tree's leaves
// can be indexed for bounding-box queries, the octree analogue of the
// teacher's Fem.Locate / Fem.VoxelsIntersecting
// (render/finiteelements/mesh/fem.go).
type leafSpatial struct {
	leafIndex int
	rect      *rtreego.Rect
}

func (l *leafSpatial) Bounds() *rtreego.Rect {
	return l.rect
}

// SpatialIndex is an R-tree over a tree's leaf bounding boxes, built
// once after the tree's structural passes (balance/pair/prune) are
// final, since leaf bounds do not change afterward.
type SpatialIndex struct {
	tree  *Tree
	rtree *rtreego.Rtree
}

// minRectSide is the smallest box side rtreego tolerates; degenerate
// (zero-volume) leaf boxes are padded by this amount.
const minRectSide = 1e-6

// BuildSpatialIndex indexes every leaf of t by its bound, converted from
// the half-integer grid to physical coordinates via scale/translate.
func (t *Tree) BuildSpatialIndex(scale, trans v3.Vec) *SpatialIndex {
	rt := rtreego.NewTree(3, 25, 50)
	for i, c := range t.Cells {
		if !c.IsLeaf() {
			continue
		}
		minX := float64(c.Bound.MinX)/2*scale.X + trans.X
		maxX := float64(c.Bound.MaxX)/2*scale.X + trans.X
		minY := float64(c.Bound.MinY)/2*scale.Y + trans.Y
		maxY := float64(c.Bound.MaxY)/2*scale.Y + trans.Y
		minZ := float64(c.Bound.MinZ)/2*scale.Z + trans.Z
		maxZ := float64(c.Bound.MaxZ)/2*scale.Z + trans.Z
		lengths := []float64{maxSide(maxX - minX), maxSide(maxY - minY), maxSide(maxZ - minZ)}
		rect, err := rtreego.NewRect(rtreego.Point{minX, minY, minZ}, lengths)
		if err != nil {
			continue
		}
		rt.Insert(&leafSpatial{leafIndex: i, rect: rect})
	}
	return &SpatialIndex{tree: t, rtree: rt}
}

func maxSide(v float64) float64 {
	if v < minRectSide {
		return minRectSide
	}
	return v
}

// Intersecting returns the leaf cell indices whose bounding box
// intersects the given axis-aligned box, the octree analogue of the
// teacher's Fem.VoxelsIntersecting.
func (s *SpatialIndex) Intersecting(min, max v3.Vec) []int {
	lengths := []float64{maxSide(max.X - min.X), maxSide(max.Y - min.Y), maxSide(max.Z - min.Z)}
	rect, err := rtreego.NewRect(rtreego.Point{min.X, min.Y, min.Z}, lengths)
	if err != nil {
		return nil
	}
	hits := s.rtree.SearchIntersect(rect)
	out := make([]int, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(*leafSpatial).leafIndex)
	}
	return out
}

// Locate returns the leaf cell index containing the given point, or -1
// if no leaf contains it, the octree analogue of the teacher's
// Fem.Locate.
func (s *SpatialIndex) Locate(p v3.Vec) int {
	eps := v3.Vec{X: minRectSide, Y: minRectSide, Z: minRectSide}
	for _, idx := range s.Intersecting(p.Sub(eps), p.Add(eps)) {
		return idx
	}
	return -1
}
