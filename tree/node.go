package tree

import "fmt"

// NodeIndex addresses a slot in the RankTree node arena.
type NodeIndex int

// NoNode marks an absent child or parent link.
const NoNode NodeIndex = -1

type Direction int

const (
	// Left places the pending value below the compared node in the ranking.
	Left Direction = iota
	// Right places the pending value above the compared node in the ranking.
	Right
)

func (direction Direction) String() string {
	switch direction {
	case Left:
		return "L"
	case Right:
		return "R"
	}
	return fmt.Sprintf("Direction(%d)", int(direction))
}

func (direction Direction) valid() bool {
	return direction == Left || direction == Right
}

// Node is a value-bearing vertex. Left and Right are owned by the node,
// Parent is only used to navigate upwards.
type Node struct {
	Value  string
	Left   NodeIndex
	Right  NodeIndex
	Parent NodeIndex
	// released marks a slot sitting on the free list.
	released bool
}

func (node *Node) child(direction Direction) NodeIndex {
	if direction == Left {
		return node.Left
	}
	return node.Right
}

func (node *Node) IsLeaf() bool {
	return node.Left == NoNode && node.Right == NoNode
}

// newNode takes a slot from the free list or grows the arena.
func (t *RankTree) newNode(value string, parent NodeIndex) NodeIndex {
	node := Node{Value: value, Left: NoNode, Right: NoNode, Parent: parent}
	if len(t.free) > 0 {
		index := t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		t.nodes[index] = node
		return index
	}
	t.nodes = append(t.nodes, node)
	return NodeIndex(len(t.nodes) - 1)
}

func (t *RankTree) releaseNode(index NodeIndex) {
	t.nodes[index] = Node{Left: NoNode, Right: NoNode, Parent: NoNode, released: true}
	t.free = append(t.free, index)
}

func (t *RankTree) releaseSubtree(index NodeIndex) {
	if index == NoNode {
		return
	}
	left, right := t.nodes[index].Left, t.nodes[index].Right
	t.releaseSubtree(left)
	t.releaseSubtree(right)
	t.releaseNode(index)
}

// addChild creates value in the given slot of parent. An occupied slot is
// overwritten and its subtree is lost, callers check the slot first.
func (t *RankTree) addChild(parent NodeIndex, value string, direction Direction) NodeIndex {
	index := t.newNode(value, parent)
	t.setChild(parent, direction, index)
	t.generation++
	t.lg.Debugf("In %s creating %s child %s", t.nodes[parent].Value, direction, value)
	return index
}

// setChild links child into the parent slot and repairs the back-reference.
func (t *RankTree) setChild(parent NodeIndex, direction Direction, child NodeIndex) {
	if direction == Left {
		t.nodes[parent].Left = child
	} else {
		t.nodes[parent].Right = child
	}
	if child != NoNode {
		t.nodes[child].Parent = parent
	}
}

// replaceChild puts replacement where old hangs: the parent slot or the root.
func (t *RankTree) replaceChild(parent NodeIndex, old NodeIndex, replacement NodeIndex) {
	if parent == NoNode {
		t.root = replacement
		if replacement != NoNode {
			t.nodes[replacement].Parent = NoNode
		}
		return
	}
	if t.nodes[parent].Left == old {
		t.setChild(parent, Left, replacement)
		return
	}
	t.setChild(parent, Right, replacement)
}
