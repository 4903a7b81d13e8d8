package rtree

// node is either an internal node (children set, entries nil) or a leaf
// node (entries set, children nil), never both. A node with payload set
// is an entry: a leaf-level node holding a value and its envelope, with
// no children of its own.
type node struct {
	children []*node
	entries  []*node

	leaf    bool
	height  int
	bounds  Envelope
	payload Payload
}

// newLeaf creates an empty leaf node (height 1).
func newLeaf() *node {
	return &node{
		leaf:   true,
		height: 1,
		bounds: emptyEnvelope(),
	}
}

// newEntry wraps a payload and its envelope as a leaf-level entry node.
func newEntry(payload Payload, env Envelope) *node {
	return &node{
		leaf:    true,
		height:  1,
		bounds:  env,
		payload: payload,
	}
}

// count returns the number of direct children (leaf entries or internal
// children, whichever this node holds).
func (n *node) count() int {
	if n.leaf {
		return len(n.entries)
	}
	return len(n.children)
}

// sort adapters, mirroring the teacher's nodesByMinX/Y and itemsByMinX/Y.

type nodesByMinX []*node

func (a nodesByMinX) Len() int           { return len(a) }
func (a nodesByMinX) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a nodesByMinX) Less(i, j int) bool { return a[i].bounds.X1 < a[j].bounds.X1 }

type nodesByMinY []*node

func (a nodesByMinY) Len() int           { return len(a) }
func (a nodesByMinY) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a nodesByMinY) Less(i, j int) bool { return a[i].bounds.Y1 < a[j].bounds.Y1 }

type entriesByMinX []*node

func (a entriesByMinX) Len() int           { return len(a) }
func (a entriesByMinX) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a entriesByMinX) Less(i, j int) bool { return a[i].bounds.X1 < a[j].bounds.X1 }

type entriesByMinY []*node

func (a entriesByMinY) Len() int           { return len(a) }
func (a entriesByMinY) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a entriesByMinY) Less(i, j int) bool { return a[i].bounds.Y1 < a[j].bounds.Y1 }

// popNode removes and returns the last slice entry.
func popNode(nodes *[]*node) *node {
	length := len(*nodes)
	n := (*nodes)[length-1]
	*nodes = (*nodes)[:length-1]
	return n
}

// popInt removes and returns the last slice entry.
func popInt(ints *[]int) int {
	length := len(*ints)
	i := (*ints)[length-1]
	*ints = (*ints)[:length-1]
	return i
}
