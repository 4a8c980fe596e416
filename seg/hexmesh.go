package seg

import (
	"sort"

	"github.com/autotwin/automesh/mesh"
	v3 "github.com/autotwin/automesh/vec/v3"
)

// ToHexMesh implements §4.1: enumerate voxels in k-major, j-middle,
// i-fast order, emit one hex per kept voxel, then compact node
// identifiers and emit coordinates. Fails InvalidScale if any scale
// component is <= 0.
func (s *Segmentation) ToHexMesh(opt Options) (*mesh.Mesh, error) {
	if opt.Scale.X <= 0 || opt.Scale.Y <= 0 || opt.Scale.Z <= 0 {
		return nil, &mesh.Error{Kind: mesh.InvalidScale, Message: "scale components must be > 0", Index: -1}
	}

	nxp1 := s.Nx + 1
	nyp1 := s.Ny + 1

	latticeID := func(a, b, c int) int {
		return a + b*nxp1 + c*nxp1*nyp1 + mesh.NodeNumberingOffset
	}

	var blocks []int
	var rawConn [][8]int

	for k := 0; k < s.Nz; k++ {
		for j := 0; j < s.Ny; j++ {
			for i := 0; i < s.Nx; i++ {
				label := s.At(i, j, k)
				if opt.removed(label) {
					continue
				}
				blocks = append(blocks, int(label))
				rawConn = append(rawConn, [8]int{
					latticeID(i, j, k),
					latticeID(i+1, j, k),
					latticeID(i+1, j+1, k),
					latticeID(i, j+1, k),
					latticeID(i, j, k+1),
					latticeID(i+1, j, k+1),
					latticeID(i+1, j+1, k+1),
					latticeID(i, j+1, k+1),
				})
			}
		}
	}

	referenced := make(map[int]bool)
	for _, c := range rawConn {
		for _, id := range c {
			referenced[id] = true
		}
	}
	ids := make([]int, 0, len(referenced))
	for id := range referenced {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	remap := make(map[int]int, len(ids))
	for i, id := range ids {
		remap[id] = i + mesh.NodeNumberingOffset
	}

	// Invert the lattice-id formula to recover (a,b,c) for each kept
	// node from its raw (uncompacted) lattice id, so coordinates can be
	// emitted directly.
	coords := make([]v3.Vec, len(ids))
	for _, id := range ids {
		rem := id - mesh.NodeNumberingOffset
		c := rem / (nxp1 * nyp1)
		rem -= c * nxp1 * nyp1
		b := rem / nxp1
		a := rem - b*nxp1
		coords[remap[id]-mesh.NodeNumberingOffset] = v3.Vec{
			X: float64(a)*opt.Scale.X + opt.Translate.X,
			Y: float64(b)*opt.Scale.Y + opt.Translate.Y,
			Z: float64(c)*opt.Scale.Z + opt.Translate.Z,
		}
	}

	m := mesh.New(mesh.Hex)
	m.Blocks = blocks
	m.Coordinates = coords
	m.Connectivity = make([][]int, len(rawConn))
	for i, c := range rawConn {
		conn := make([]int, 8)
		for n := 0; n < 8; n++ {
			conn[n] = remap[c[n]]
		}
		m.Connectivity[i] = conn
	}
	return m, nil
}
