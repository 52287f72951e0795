package formats

// placeNode picks the parent for a node read with hierarchy position pos.
// current is the last node placed and lastIndex the running hierarchy
// counter; the updated counter is returned with the parent index.
//
// Positions are not depths: they are only comparable with the positions of
// nodes read before, so placement depends on the reading order.
func placeNode(nodes []TDSNode, current, lastIndex, pos int) (parent, newLastIndex int) {
	cur := &nodes[current]
	switch {
	case cur.HierarchyPos == pos:
		// Sibling of the last node.
		parent = cur.Parent
		if parent < 0 {
			parent = current
		}
		return parent, lastIndex + 1

	case pos >= lastIndex:
		// Child of the last node.
		return current, pos

	default:
		return findInsertParent(nodes, current, pos), lastIndex + 1
	}
}

// findInsertParent walks up from node start to the first ancestor-or-self
// with hierarchy position pos and returns that node's parent, or the node
// itself if it has none. The root is returned if no such ancestor exists.
func findInsertParent(nodes []TDSNode, start, pos int) int {
	for i := start; i >= 0; i = nodes[i].Parent {
		if nodes[i].HierarchyPos == pos {
			if nodes[i].Parent >= 0 {
				return nodes[i].Parent
			}
			return i
		}
	}
	return 0
}

// findNode returns the index of the first node named name in a depth-first
// walk from the root, or -1.
func findNode(nodes []TDSNode, root int, name string) int {
	if nodes[root].Name == name {
		return root
	}
	for _, child := range nodes[root].Children {
		if found := findNode(nodes, child, name); found >= 0 {
			return found
		}
	}
	return -1
}

// addNode appends n to the arena as a child of parent and returns its index.
func (d *TDSDocument) addNode(n TDSNode, parent int) int {
	idx := len(d.Nodes)
	n.Parent = parent
	d.Nodes = append(d.Nodes, n)
	d.Nodes[parent].Children = append(d.Nodes[parent].Children, idx)
	return idx
}
