package octree

import (
	"runtime"
	"sync"

	"github.com/autotwin/automesh/mesh"
	v3 "github.com/autotwin/automesh/vec/v3"
)

// GridKey identifies a node by its half-integer grid coordinates
// (2x, 2y, 2z).
type GridKey struct {
	X, Y, Z int
}

// Corners returns the 8 corner grid keys of a leaf's bound, in the
// bottom-quad-then-top-quad order of §3.
func Corners(b Bound) [8]GridKey {
	return [8]GridKey{
		{b.MinX, b.MinY, b.MinZ},
		{b.MaxX, b.MinY, b.MinZ},
		{b.MaxX, b.MaxY, b.MinZ},
		{b.MinX, b.MaxY, b.MinZ},
		{b.MinX, b.MinY, b.MaxZ},
		{b.MaxX, b.MinY, b.MaxZ},
		{b.MaxX, b.MaxY, b.MaxZ},
		{b.MinX, b.MaxY, b.MaxZ},
	}
}

// NodeMap deduplicates octree corner/midpoint nodes by half-integer grid
// coordinate, assigning each a dense 0-based vertex index and caching
// its coordinate. It is the "global numbering" shared mutable state of
// §9 and is safe for concurrent insert-or-get (§5).
type NodeMap struct {
	mu     sync.Mutex
	lookup map[GridKey]int
	coords []v3.Vec
	scale  v3.Vec
	trans  v3.Vec
}

// NewNodeMap returns a new, empty node map using the given per-axis
// scale and translate (applied as coordinate = gridCoord/2*scale +
// translate).
func NewNodeMap(scale, trans v3.Vec) *NodeMap {
	return &NodeMap{lookup: make(map[GridKey]int), scale: scale, trans: trans}
}

func (n *NodeMap) coordOf(k GridKey) v3.Vec {
	return v3.Vec{
		X: float64(k.X)/2*n.scale.X + n.trans.X,
		Y: float64(k.Y)/2*n.scale.Y + n.trans.Y,
		Z: float64(k.Z)/2*n.scale.Z + n.trans.Z,
	}
}

// IDFor returns the dense 0-based vertex index for grid key k,
// allocating a fresh one on first use. Concurrency-safe (insert-or-get
// under a mutex): the map is small relative to per-leaf geometry work,
// so a single shared mutex is simpler and just as correct as a lock-free
// structure here (§5 allows either).
func (n *NodeMap) IDFor(k GridKey) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	if id, ok := n.lookup[k]; ok {
		return id
	}
	id := len(n.coords)
	n.lookup[k] = id
	n.coords = append(n.coords, n.coordOf(k))
	return id
}

// Get returns the existing vertex index for k, or (0, false) if absent.
// Used by template dispatch, which must assert existing midpoints rather
// than create them (§4.5).
func (n *NodeMap) Get(k GridKey) (int, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	id, ok := n.lookup[k]
	return id, ok
}

// Insert creates a new node at k with explicit coordinates, failing with
// DuplicateNode semantics (returns false) if k already exists with a
// non-equal coordinate, and succeeding silently (idempotent) if it
// already exists with an equal coordinate.
func (n *NodeMap) Insert(k GridKey, coord v3.Vec) (int, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if id, ok := n.lookup[k]; ok {
		return id, n.coords[id].Equals(coord)
	}
	id := len(n.coords)
	n.lookup[k] = id
	n.coords = append(n.coords, coord)
	return id, true
}

// CoordOf returns the physical coordinate a grid key maps to, without
// allocating a vertex index. Used to compute the coordinate of a new
// interior node before inserting it.
func (n *NodeMap) CoordOf(k GridKey) v3.Vec {
	return n.coordOf(k)
}

// GetOrCreate returns the existing vertex index for k if present,
// otherwise allocates a new one at k's natural coordinate. Used for
// every corner of every hex transition octant (vertex, edge, face, and
// coarse alike), which may introduce genuinely new interior nodes (§4.5).
func (n *NodeMap) GetOrCreate(k GridKey) int {
	return n.IDFor(k)
}

// Coordinates returns the dense 0-based coordinate slice accumulated so
// far.
func (n *NodeMap) Coordinates() []v3.Vec {
	return n.coords
}

// LeafNodes computes, for each kept leaf (one whose label is not in
// remove), the 8 corner vertex indices, and returns the per-leaf
// connectivity (vertex indices, 0-based) in leaf-index order alongside
// the node map's accumulated coordinates. Removed leaves are skipped
// entirely (§4.4.5). Work is split across a worker pool per §5: each
// leaf computes its corner keys independently; vertex indices are then
// assigned serially in leaf-index order, so the numbering is
// deterministic regardless of completion order.
func (t *Tree) LeafNodes(remove map[uint8]bool, scale, trans v3.Vec) (*NodeMap, [][8]int, []int) {
	leaves := t.Leaves()
	nm := NewNodeMap(scale, trans)

	type result struct {
		keys  [8]GridKey
		label int
		keep  bool
	}
	results := make([]result, len(leaves))

	workers := runtime.NumCPU()
	if workers > len(leaves) {
		workers = len(leaves)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	jobs := make(chan int, len(leaves))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for li := range jobs {
				cell := t.Cells[leaves[li]]
				if remove != nil && remove[cell.Label] {
					continue
				}
				results[li] = result{keys: Corners(cell.Bound), label: int(cell.Label), keep: true}
			}
		}()
	}
	for li := range leaves {
		jobs <- li
	}
	close(jobs)
	wg.Wait()

	var conn [][8]int
	var blocks []int
	for _, r := range results {
		if r.keep {
			var c [8]int
			for i, k := range r.keys {
				c[i] = nm.IDFor(k)
			}
			conn = append(conn, c)
			blocks = append(blocks, r.label)
		}
	}
	return nm, conn, blocks
}

// DirectHexMesh builds a conforming hex mesh directly from the octree's
// kept leaves, with no refinement-transition templating: valid only
// when the tree has uniform depth (e.g. immediately after
// FromSegmentation with no balance-induced jumps would still need
// templates in general; this entry point is for callers that already
// know the tree has no level jumps, such as tests of the leaf->node
// machinery in isolation).
func (t *Tree) DirectHexMesh(remove map[uint8]bool, scale, trans v3.Vec) *mesh.Mesh {
	nm, conns, blocks := t.LeafNodes(remove, scale, trans)
	m := mesh.New(mesh.Hex)
	m.Blocks = blocks
	m.Coordinates = nm.Coordinates()
	m.Connectivity = make([][]int, len(conns))
	for i, c := range conns {
		conn := make([]int, 8)
		for n := 0; n < 8; n++ {
			conn[n] = c[n] + mesh.NodeNumberingOffset
		}
		m.Connectivity[i] = conn
	}
	return m
}
