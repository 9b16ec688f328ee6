package tree

// Delete removes value by descending in lexical order, like a classical BST.
// Insertion order comes from human judgments, so when the tree shape
// disagrees with lexical order the search may miss an existing value. That
// limitation is kept on purpose; DeleteScan is the explicit alternative.
// A missing value leaves the tree unchanged. It reports whether a node was
// removed.
func (t *RankTree) Delete(value string) bool {
	removed := false
	t.root = t.deleteLexical(t.root, value, &removed)
	if t.root != NoNode {
		t.nodes[t.root].Parent = NoNode
	}
	t.afterDelete(value, removed)
	return removed
}

// DeleteScan finds value by visiting every node and removes that node.
func (t *RankTree) DeleteScan(value string) bool {
	index := t.find(t.root, value)
	removed := index != NoNode
	if removed {
		t.removeNode(index)
	}
	t.afterDelete(value, removed)
	return removed
}

func (t *RankTree) afterDelete(value string, removed bool) {
	if removed {
		t.generation++
		t.lg.Debugf("Deleted %s", value)
	} else {
		t.lg.Debugf("Delete: %s not found", value)
	}
	t.refreshSize()
	if _, err := t.Balance(); err != nil {
		t.lg.Errorf("Balance after deleting %s: %v", value, err)
	}
}

// deleteLexical returns the index now standing where index stood.
func (t *RankTree) deleteLexical(index NodeIndex, value string, removed *bool) NodeIndex {
	if index == NoNode {
		return NoNode
	}

	node := t.nodes[index]
	switch {
	case value < node.Value:
		t.setChild(index, Left, t.deleteLexical(node.Left, value, removed))
		return index
	case value > node.Value:
		t.setChild(index, Right, t.deleteLexical(node.Right, value, removed))
		return index
	}

	*removed = true
	return t.unlink(index)
}

// removeNode detaches index from wherever it hangs.
func (t *RankTree) removeNode(index NodeIndex) {
	parent := t.nodes[index].Parent
	t.replaceChild(parent, index, t.unlink(index))
}

// unlink drops the node at index and returns what takes its place. With two
// children the in-order successor's value moves into index and the
// successor's own node is spliced out.
func (t *RankTree) unlink(index NodeIndex) NodeIndex {
	node := t.nodes[index]
	if node.Left == NoNode || node.Right == NoNode {
		replacement := node.Left
		if replacement == NoNode {
			replacement = node.Right
		}
		if replacement != NoNode {
			t.nodes[replacement].Parent = node.Parent
		}
		t.releaseNode(index)
		return replacement
	}

	successor := node.Right
	for t.nodes[successor].Left != NoNode {
		successor = t.nodes[successor].Left
	}
	t.nodes[index].Value = t.nodes[successor].Value
	t.replaceChild(t.nodes[successor].Parent, successor, t.nodes[successor].Right)
	t.releaseNode(successor)
	return index
}
