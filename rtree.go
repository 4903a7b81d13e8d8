package rtree

import "sort"

const defaultMaxEntries = 9

// Payload is an opaque, caller-supplied value carried by a tree entry. The
// tree never inspects it beyond storing it and, on Remove, comparing it.
type Payload = interface{}

// EqualsFunc overrides how Remove matches a candidate payload against the
// one being removed. Remove defaults to Go's native == when none is given.
type EqualsFunc func(a, b Payload) bool

// Tree is a height-balanced, bounding-box-indexed index over integer
// rectangular keys. It is single-writer: concurrent mutation, or a writer
// racing with readers, is undefined behavior (spec.md §5).
type Tree struct {
	maxEntries, minEntries int
	root                   *node
}

// Option configures a Tree at construction time.
type Option func(*Tree)

// WithMaxEntries sets the tree's fanout. Values below 4 are clamped to 4.
func WithMaxEntries(n int) Option {
	return func(t *Tree) {
		t.maxEntries = n
	}
}

// New creates an empty Tree. Without WithMaxEntries, the fanout defaults
// to 9; any fanout is clamped to a minimum of 4, and minEntries is derived
// as max(2, ceil(0.4*maxEntries)).
func New(opts ...Option) *Tree {
	t := &Tree{maxEntries: defaultMaxEntries}
	for _, opt := range opts {
		opt(t)
	}
	if t.maxEntries < 4 {
		t.maxEntries = 4
	}
	t.minEntries = maxI(2, ceilDiv(t.maxEntries*4, 10))
	t.Clear()
	return t
}

// Clear resets the tree to an empty leaf root.
func (t *Tree) Clear() {
	t.root = newLeaf()
}

// MaxEntries returns the tree's fanout.
func (t *Tree) MaxEntries() int { return t.maxEntries }

// MinEntries returns the minimum children a non-root node must hold.
func (t *Tree) MinEntries() int { return t.minEntries }

// Insert adds a single (payload, envelope) pair.
func (t *Tree) Insert(payload Payload, env Envelope) error {
	if err := validateEnvelope(env); err != nil {
		return err
	}
	entry := newEntry(payload, env)
	level := t.root.height - 1

	leaf, insertPath := t.chooseSubtree(env, t.root, level)
	leaf.entries = append(leaf.entries, entry)
	leaf.bounds = leaf.bounds.Extend(env)

	level = t.splitNodes(insertPath, level)
	t.adjustParentBBoxes(insertPath, env, level)
	return nil
}

// Load bulk-loads items into the tree using the OMT algorithm (spec.md
// §4.8), merging into any existing content.
func (t *Tree) Load(items []Item) error {
	for _, it := range items {
		if err := validateEnvelope(it.Envelope); err != nil {
			return err
		}
	}
	if len(items) == 0 {
		return nil
	}
	if len(items) < t.minEntries {
		for _, it := range items {
			t.insertNode(newEntry(it.Payload, it.Envelope), t.root.height-1)
		}
		return nil
	}

	built := build(items, 0, len(items)-1, 0, t.maxEntries)

	if t.root.count() == 0 {
		t.root = built
	} else if t.root.height == built.height {
		t.splitRoot(t.root, built)
	} else {
		small, large := built, t.root
		if t.root.height < built.height {
			small, large = t.root, built
		}
		t.root = large
		t.insertNode(small, large.height-small.height-1)
	}
	return nil
}

// Remove deletes the entry matching payload and env by envelope-directed
// descent and payload equality. A missing item is a silent no-op. eq, if
// given, overrides Go's native interface equality for the payload match.
func (t *Tree) Remove(payload Payload, env Envelope, eq ...EqualsFunc) error {
	if err := validateEnvelope(env); err != nil {
		return err
	}
	var equalsFn EqualsFunc
	if len(eq) > 0 {
		equalsFn = eq[0]
	}

	var path []*node
	var childIndexes []int
	var parent *node
	var childIdx int
	goingUp := false

	n := t.root
	for n != nil || len(path) > 0 {
		if n == nil { // go up
			n = popNode(&path)
			parent = t.root
			if len(path) > 1 {
				parent = path[len(path)-1]
			}
			childIdx = popInt(&childIndexes)
			goingUp = true
		}

		if n.leaf {
			if removeEntry(n, payload, equalsFn) {
				t.condense(append(path, n))
				return nil
			}
		}

		contained := n.bounds.Contains(env)
		if !goingUp && !n.leaf && contained { // go down
			path = append(path, n)
			childIndexes = append(childIndexes, childIdx)
			childIdx = 0
			parent = n
			n = n.children[0]
		} else if parent != nil { // go right
			n = nil
			childIdx++
			if childIdx < len(parent.children) {
				n = parent.children[childIdx]
			}
			goingUp = false
		} else { // nothing found
			n = nil
		}
	}
	return nil
}

// insertNode inserts n (an entry node for Insert, or a subtree root for
// bulk-load merging) at the given target level.
func (t *Tree) insertNode(n *node, level int) {
	bbox := n.bounds

	target, insertPath := t.chooseSubtree(bbox, t.root, level)
	if target.leaf {
		target.entries = append(target.entries, n)
	} else {
		target.children = append(target.children, n)
	}
	target.bounds = target.bounds.Extend(bbox)

	level = t.splitNodes(insertPath, level)
	t.adjustParentBBoxes(insertPath, bbox, level)
}

// chooseSubtree descends from root to the target level, at each internal
// node picking the child minimizing enlarged_area(bbox, child) -
// child.area, tie-broken by smallest current area (spec.md §4.3). Returns
// the landing node and the path of visited nodes from root down to it, with
// the landing node itself as the last element.
func (t *Tree) chooseSubtree(bbox Envelope, root *node, level int) (*node, []*node) {
	path := make([]*node, 0, level+1)

	sub := root
	for {
		path = append(path, sub)

		if sub.leaf || len(path)-1 == level {
			break
		}

		minArea := maxInt
		minEnlargement := maxInt
		var next *node

		for _, child := range sub.children {
			area := child.bounds.Area()
			enlargement := enlargedArea(bbox, child.bounds) - area

			if enlargement < minEnlargement {
				minEnlargement = enlargement
				minArea = area
				next = child
				continue
			}
			if enlargement == minEnlargement && area < minArea {
				minArea = area
				next = child
			}
		}
		sub = next
	}
	return sub, path
}

// splitNodes splits every overflowing node on insertPath from level
// upward. It returns the deepest level that was not split (-1 if the root
// split), so callers extend only the bounds of levels no split touched.
func (t *Tree) splitNodes(insertPath []*node, level int) int {
	for level >= 0 {
		if insertPath[level].count() <= t.maxEntries {
			break
		}
		t.split(insertPath, level)
		level--
	}
	return level
}

// split breaks the overflowing node at insertPath[level] into two,
// choosing axis (R*-style margin minimization) then index (overlap, then
// combined area), per spec.md §4.5.
func (t *Tree) split(insertPath []*node, level int) {
	n := insertPath[level]
	min := t.minEntries
	max := n.count()

	t.chooseSplitAxis(n, min, max)
	splitIndex := t.chooseSplitIndex(n, min, max)

	sibling := &node{height: n.height, leaf: n.leaf}

	if n.leaf {
		sibling.entries = append(sibling.entries, n.entries[splitIndex:]...)
		n.entries = n.entries[:splitIndex]
	} else {
		sibling.children = append(sibling.children, n.children[splitIndex:]...)
		n.children = n.children[:splitIndex]
	}

	calcBBox(n)
	calcBBox(sibling)

	if level > 0 {
		insertPath[level-1].children = append(insertPath[level-1].children, sibling)
	} else {
		t.splitRoot(n, sibling)
	}
}

// splitRoot grows the tree by one level, making a and b the only two
// children of a new root.
func (t *Tree) splitRoot(a, b *node) {
	newHeight := a.height + 1
	t.root = &node{
		children: []*node{a, b},
		height:   newHeight,
		leaf:     false,
	}
	calcBBox(t.root)
}

// chooseSplitIndex finds i in [min, max-min] minimizing the overlap (then
// combined area) between union(children[0:i]) and union(children[i:max]),
// keeping the earliest candidate on ties (spec.md §4.5).
func (t *Tree) chooseSplitIndex(n *node, min, count int) int {
	minOverlap := maxInt
	minArea := maxInt

	idx := count - min
	for i := min; i <= count-min; i++ {
		bbox1 := calcSubBBox(n, 0, i)
		bbox2 := calcSubBBox(n, i, count)

		overlap := intersectionArea(bbox1, bbox2)
		area := bbox1.Area() + bbox2.Area()

		if overlap < minOverlap {
			minOverlap = overlap
			minArea = area
			idx = i
		} else if overlap == minOverlap && area < minArea {
			minArea = area
			idx = i
		}
	}
	return idx
}

// chooseSplitAxis sorts n's children/entries by whichever axis (X or Y)
// minimizes the total margin over all candidate split distributions.
func (t *Tree) chooseSplitAxis(n *node, min, max int) {
	var sortMinX, sortMinY sort.Interface
	if n.leaf {
		sortMinX = entriesByMinX(n.entries)
		sortMinY = entriesByMinY(n.entries)
	} else {
		sortMinX = nodesByMinX(n.children)
		sortMinY = nodesByMinY(n.children)
	}

	sort.Sort(sortMinX)
	xMargin := t.allDistMargin(n, min, max)
	sort.Sort(sortMinY)
	yMargin := t.allDistMargin(n, min, max)

	if xMargin < yMargin {
		sort.Sort(sortMinX)
	}
}

// allDistMargin sums the margins of left/right unions over every candidate
// distribution, where each side holds at least min entries (spec.md §4.5).
func (t *Tree) allDistMargin(n *node, min, max int) int {
	leftBBox := calcSubBBox(n, 0, min)
	rightBBox := calcSubBBox(n, max-min, max)

	margin := leftBBox.Margin() + rightBBox.Margin()

	for i := min; i < max-min; i++ {
		leftBBox = leftBBox.Extend(childBounds(n, i))
		margin += leftBBox.Margin()
	}
	for i := max - min - 1; i >= min; i-- {
		rightBBox = rightBBox.Extend(childBounds(n, i))
		margin += rightBBox.Margin()
	}
	return margin
}

// adjustParentBBoxes extends every bounds on insertPath[0:level+1] by bbox.
func (t *Tree) adjustParentBBoxes(insertPath []*node, bbox Envelope, level int) {
	for i := level; i >= 0; i-- {
		insertPath[i].bounds = insertPath[i].bounds.Extend(bbox)
	}
}

// condense prunes empty nodes from path (deepest-first) and refreshes the
// bounds of the ones that survive, per spec.md §4.6. Underflow below
// minEntries is tolerated and not reinserted.
func (t *Tree) condense(path []*node) {
	for i := len(path) - 1; i >= 0; i-- {
		n := path[i]
		if n.count() == 0 {
			if i > 0 {
				removeChildNode(path[i-1], n)
			} else {
				t.Clear()
			}
		} else {
			calcBBox(n)
		}
	}
}

// removeEntry removes the entry matching payload from a leaf's entries.
// Returns true if found and removed.
func removeEntry(leaf *node, payload Payload, eq EqualsFunc) bool {
	for idx, e := range leaf.entries {
		var found bool
		if eq == nil {
			found = payload == e.payload
		} else {
			found = eq(payload, e.payload)
		}
		if found {
			leaf.entries = append(leaf.entries[:idx], leaf.entries[idx+1:]...)
			return true
		}
	}
	return false
}

// removeChildNode removes child from parent's children by identity.
func removeChildNode(parent, child *node) {
	for idx, n := range parent.children {
		if n == child {
			parent.children = append(parent.children[:idx], parent.children[idx+1:]...)
			return
		}
	}
}

// calcBBox refreshes n's bounds from the union of all of its children
// (or entries, if n is a leaf).
func calcBBox(n *node) {
	n.bounds = calcSubBBox(n, 0, n.count())
}

// calcSubBBox unions the bounds of n's children/entries in [start:end).
func calcSubBBox(n *node, start, end int) Envelope {
	bbox := emptyEnvelope()
	if n.leaf {
		for _, e := range n.entries[start:end] {
			bbox = bbox.Extend(e.bounds)
		}
	} else {
		for _, c := range n.children[start:end] {
			bbox = bbox.Extend(c.bounds)
		}
	}
	return bbox
}

func childBounds(n *node, i int) Envelope {
	if n.leaf {
		return n.entries[i].bounds
	}
	return n.children[i].bounds
}

// ceilDiv computes ceil(a/b) for positive a, b.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
