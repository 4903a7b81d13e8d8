package rtree

// All returns every payload stored in the tree. Returns nil if empty.
func (t *Tree) All() []Payload {
	var out []Payload
	addAllPayloads(t.root, &out)
	return out
}

// Search returns every payload whose entry envelope intersects window
// (non-strict: touching edges count), per spec.md §4.7.
func (t *Tree) Search(window Envelope) ([]Payload, error) {
	return t.search(window, false, nil)
}

// SearchCovering returns every payload whose entry envelope is fully
// contained by window, rather than merely intersecting it. This is an
// addition beyond spec.md §4.7's plain intersect search, grounded on the
// teacher's Search(area, mustCover) parameter.
func (t *Tree) SearchCovering(window Envelope) ([]Payload, error) {
	return t.search(window, true, nil)
}

// FilteredSearch is Search restricted to payloads accepted by filter.
// filter is applied before a payload is collected, including payloads
// gathered via the fully-covered-subtree fast path.
func (t *Tree) FilteredSearch(window Envelope, filter func(Payload) bool) ([]Payload, error) {
	if filter == nil {
		return t.search(window, false, nil)
	}
	return t.search(window, false, filter)
}

// Intersects reports whether any stored entry overlaps window, without
// collecting payloads.
func (t *Tree) Intersects(window Envelope) (bool, error) {
	if err := validateEnvelope(window); err != nil {
		return false, err
	}
	if !window.Intersects(t.root.bounds) {
		return false, nil
	}

	stack := []*node{t.root}
	for len(stack) > 0 {
		n := popNode(&stack)

		if n.leaf {
			for _, e := range n.entries {
				if window.Intersects(e.bounds) {
					return true, nil
				}
			}
			continue
		}

		for _, child := range n.children {
			if !window.Intersects(child.bounds) {
				continue
			}
			if window.Contains(child.bounds) {
				return true, nil
			}
			stack = append(stack, child)
		}
	}
	return false, nil
}

func (t *Tree) search(window Envelope, mustCover bool, filter func(Payload) bool) ([]Payload, error) {
	if err := validateEnvelope(window); err != nil {
		return nil, err
	}
	if !window.Intersects(t.root.bounds) {
		return nil, nil
	}

	var out []Payload
	stack := []*node{t.root}
	for len(stack) > 0 {
		n := popNode(&stack)

		if n.leaf {
			for _, e := range n.entries {
				if filter != nil && !filter(e.payload) {
					continue
				}
				if (mustCover && window.Contains(e.bounds)) || (!mustCover && window.Intersects(e.bounds)) {
					out = append(out, e.payload)
				}
			}
			continue
		}

		for _, child := range n.children {
			if !window.Intersects(child.bounds) {
				continue
			}
			if !mustCover && window.Contains(child.bounds) {
				addFilteredPayloads(child, &out, filter)
			} else {
				stack = append(stack, child)
			}
		}
	}
	return out, nil
}

// IterateItems calls fn for every stored payload, in traversal order,
// until fn returns true (abort). Iteration order is unspecified.
func (t *Tree) IterateItems(fn func(payload Payload) bool) {
	stack := []*node{t.root}
	for len(stack) > 0 {
		n := popNode(&stack)
		if n.leaf {
			for _, e := range n.entries {
				if fn(e.payload) {
					return
				}
			}
			continue
		}
		stack = append(stack, n.children...)
	}
}

// IterateInternalNodes calls fn for every node in the tree (leaves and
// internal) until fn returns true (abort). Useful for visualizing the
// tree's internal shape.
func (t *Tree) IterateInternalNodes(fn func(bounds Envelope, height int, leaf bool) bool) {
	stack := []*node{t.root}
	for len(stack) > 0 {
		n := popNode(&stack)
		if fn(n.bounds, n.height, n.leaf) {
			return
		}
		stack = append(stack, n.children...)
	}
}

// addAllPayloads collects every payload under root without further
// intersection tests, used once a subtree is fully covered by a query.
func addAllPayloads(root *node, out *[]Payload) {
	addFilteredPayloads(root, out, nil)
}

// addFilteredPayloads is addAllPayloads with an optional filter applied.
func addFilteredPayloads(root *node, out *[]Payload, filter func(Payload) bool) {
	stack := []*node{root}
	for len(stack) > 0 {
		n := popNode(&stack)
		if n.leaf {
			for _, e := range n.entries {
				if filter == nil || filter(e.payload) {
					*out = append(*out, e.payload)
				}
			}
			continue
		}
		stack = append(stack, n.children...)
	}
}

// Height returns the tree's current height (1 for an empty or single-leaf
// tree).
func (t *Tree) Height() int {
	return t.root.height
}

// Bounds returns the root's envelope: the MBR covering every stored item,
// or the identity/empty envelope if the tree is empty.
func (t *Tree) Bounds() Envelope {
	return t.root.bounds
}

// Len returns the total number of stored payloads.
func (t *Tree) Len() int {
	count := 0
	stack := []*node{t.root}
	for len(stack) > 0 {
		n := popNode(&stack)
		if n.leaf {
			count += len(n.entries)
			continue
		}
		stack = append(stack, n.children...)
	}
	return count
}
