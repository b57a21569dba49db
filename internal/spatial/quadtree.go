// Package spatial provides the broad-phase index used by the collision
// resolver: a quadtree that is cleared and rebuilt every frame from a pool
// of nodes, so steady-state frames do not allocate.
package spatial

import "github.com/vovakirdan/tui-arena/internal/geom"

// Default tuning values.
const (
	DefaultFanout   = 8
	DefaultMaxDepth = 8
)

// Item is one entry in the index. ID is opaque to the tree; the resolver
// uses it as an index into its per-frame collider list.
type Item struct {
	Box geom.Box
	ID  int
}

type node struct {
	bounds   geom.Box
	depth    int
	children int // index of the first of four children, -1 for a leaf
	items    []Item
}

// Quadtree is a region quadtree over a fixed world extent.
// Items that do not fit entirely inside a child stay in the parent; items
// outside the extent stay in the root, so they are still found by queries.
type Quadtree struct {
	fanout   int
	maxDepth int
	nodes    []node
	stack    []int
	count    int
}

// New creates a quadtree covering extent. Non-positive fanout or maxDepth
// fall back to the defaults.
func New(extent geom.Box, fanout, maxDepth int) *Quadtree {
	if fanout <= 0 {
		fanout = DefaultFanout
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	t := &Quadtree{
		fanout:   fanout,
		maxDepth: maxDepth,
		nodes:    make([]node, 1, 1+4*maxDepth),
	}
	t.nodes[0] = node{bounds: extent, children: -1}
	return t
}

// Extent returns the world extent the tree was built for.
func (t *Quadtree) Extent() geom.Box {
	return t.nodes[0].bounds
}

// Len returns the number of items inserted since the last Clear.
func (t *Quadtree) Len() int {
	return t.count
}

// NodeCount returns the number of live nodes.
func (t *Quadtree) NodeCount() int {
	return len(t.nodes)
}

// Clear empties the tree. Node storage and item slices are kept for reuse.
func (t *Quadtree) Clear() {
	t.nodes = t.nodes[:1]
	root := &t.nodes[0]
	root.items = root.items[:0]
	root.children = -1
	t.count = 0
}

// Insert adds an item. Subdivision happens once a leaf holds more than
// the fanout and has not reached the maximum depth.
func (t *Quadtree) Insert(box geom.Box, id int) {
	t.count++
	t.insertAt(0, Item{Box: box, ID: id})
}

func (t *Quadtree) insertAt(idx int, it Item) {
	for {
		n := &t.nodes[idx]
		if n.children < 0 {
			n.items = append(n.items, it)
			if len(n.items) > t.fanout && n.depth < t.maxDepth {
				t.split(idx)
			}
			return
		}
		c := t.childFor(idx, it.Box)
		if c < 0 {
			n.items = append(n.items, it)
			return
		}
		idx = c
	}
}

// childFor returns the child of idx that fully contains box, or -1.
func (t *Quadtree) childFor(idx int, box geom.Box) int {
	first := t.nodes[idx].children
	for c := first; c < first+4; c++ {
		if t.nodes[c].bounds.Contains(box) {
			return c
		}
	}
	return -1
}

func (t *Quadtree) split(idx int) {
	b := t.nodes[idx].bounds
	depth := t.nodes[idx].depth + 1
	hw, hh := b.W/2, b.H/2
	quads := [4]geom.Box{
		{X: b.X, Y: b.Y, W: hw, H: hh},
		{X: b.X + hw, Y: b.Y, W: hw, H: hh},
		{X: b.X, Y: b.Y + hh, W: hw, H: hh},
		{X: b.X + hw, Y: b.Y + hh, W: hw, H: hh},
	}

	first := len(t.nodes)
	for _, q := range quads {
		t.nodes = t.alloc(q, depth)
	}
	t.nodes[idx].children = first

	// Redistribute. Items that straddle a boundary stay here.
	held := t.nodes[idx].items
	keep := held[:0]
	for _, it := range held {
		if c := t.childFor(idx, it.Box); c >= 0 {
			t.insertAt(c, it)
			continue
		}
		keep = append(keep, it)
	}
	t.nodes[idx].items = keep
}

// alloc appends a node, reusing a pooled slot and its item capacity when
// the backing array has room.
func (t *Quadtree) alloc(bounds geom.Box, depth int) []node {
	nodes := t.nodes
	if len(nodes) < cap(nodes) {
		nodes = nodes[:len(nodes)+1]
		n := &nodes[len(nodes)-1]
		n.bounds = bounds
		n.depth = depth
		n.children = -1
		n.items = n.items[:0]
		return nodes
	}
	return append(nodes, node{bounds: bounds, depth: depth, children: -1})
}

// Query appends to buf the IDs of every item whose box intersects box and
// returns the extended slice. Results are broad-phase candidates only.
func (t *Quadtree) Query(box geom.Box, buf []int) []int {
	t.stack = append(t.stack[:0], 0)
	for len(t.stack) > 0 {
		idx := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		n := &t.nodes[idx]
		for i := range n.items {
			if n.items[i].Box.Intersects(box) {
				buf = append(buf, n.items[i].ID)
			}
		}
		if n.children < 0 {
			continue
		}
		for c := n.children; c < n.children+4; c++ {
			if t.nodes[c].bounds.Intersects(box) {
				t.stack = append(t.stack, c)
			}
		}
	}
	return buf
}

// Walk calls fn with the bounds of every live node, parents first.
func (t *Quadtree) Walk(fn func(bounds geom.Box, depth int)) {
	for i := range t.nodes {
		fn(t.nodes[i].bounds, t.nodes[i].depth)
	}
}
