package tree

import (
	"errors"
	"fmt"
)

// balanceThreshold is the largest subtree size difference a node may carry.
const balanceThreshold = 1

func balanceFactor(leftSize, rightSize int) int {
	if leftSize > rightSize {
		return leftSize - rightSize
	}
	return rightSize - leftSize
}

// Balance runs a bottom-up pass over the whole tree and rebuilds every
// subtree whose root is out of balance. Children are settled before their
// parent is measured, so one pass restores the invariant everywhere.
// It returns the number of rebuilt subtrees. The result is checked again
// afterwards; a violation is only logged unless the tree is strict.
func (t *RankTree) Balance() (int, error) {
	if t.root == NoNode {
		return 0, nil
	}

	scapegoats := 0
	t.root = t.rebalance(t.root, &scapegoats)
	t.nodes[t.root].Parent = NoNode
	t.refreshSize()

	if scapegoats > 0 {
		t.lg.Debugf("Rebuilt %d subtrees, size %d, depth %d", scapegoats, t.sizeCount, t.Depth())
	}

	violations := t.balanceViolations(t.root, nil)
	for _, violation := range violations {
		t.lg.Warningf("Tree still unbalanced after rebuild: %v", violation)
	}
	if t.strict && len(violations) > 0 {
		return scapegoats, errors.Join(violations...)
	}
	return scapegoats, nil
}

// rebalance returns the index now standing where index stood.
func (t *RankTree) rebalance(index NodeIndex, scapegoats *int) NodeIndex {
	if index == NoNode {
		return NoNode
	}

	t.setChild(index, Left, t.rebalance(t.nodes[index].Left, scapegoats))
	t.setChild(index, Right, t.rebalance(t.nodes[index].Right, scapegoats))

	leftSize := t.Size(t.nodes[index].Left)
	rightSize := t.Size(t.nodes[index].Right)
	if balanceFactor(leftSize, rightSize) <= balanceThreshold || leftSize+rightSize+1 <= 1 {
		return index
	}

	t.lg.Debugf("Scapegoat %s: left %d, right %d", t.nodes[index].Value, leftSize, rightSize)
	parent := t.nodes[index].Parent
	values := t.collect(index, make([]string, 0, leftSize+rightSize+1))
	t.releaseSubtree(index)
	rebuilt := t.build(values, parent)
	t.generation++
	*scapegoats++
	return rebuilt
}

// collect appends the subtree values in order.
func (t *RankTree) collect(index NodeIndex, values []string) []string {
	if index == NoNode {
		return values
	}
	values = t.collect(t.nodes[index].Left, values)
	values = append(values, t.nodes[index].Value)
	return t.collect(t.nodes[index].Right, values)
}

// build creates fresh nodes for values with the midpoint as root, so sibling
// subtree sizes never differ by more than one.
func (t *RankTree) build(values []string, parent NodeIndex) NodeIndex {
	if len(values) == 0 {
		return NoNode
	}
	mid := len(values) / 2
	index := t.newNode(values[mid], parent)
	t.setChild(index, Left, t.build(values[:mid], index))
	t.setChild(index, Right, t.build(values[mid+1:], index))
	return index
}

func (t *RankTree) balanceViolations(index NodeIndex, violations []error) []error {
	if index == NoNode {
		return violations
	}
	violations = t.balanceViolations(t.nodes[index].Left, violations)
	violations = t.balanceViolations(t.nodes[index].Right, violations)

	leftSize := t.Size(t.nodes[index].Left)
	rightSize := t.Size(t.nodes[index].Right)
	if balanceFactor(leftSize, rightSize) > balanceThreshold {
		violations = append(violations, fmt.Errorf("%w: node %s left %d right %d",
			ErrBalanceViolation, t.nodes[index].Value, leftSize, rightSize))
	}
	return violations
}

// Verify checks parent links, the cached size and the balance invariant.
// It reports regardless of the Strict setting.
func (t *RankTree) Verify() error {
	var violations []error
	if t.root != NoNode && t.nodes[t.root].Parent != NoNode {
		violations = append(violations, fmt.Errorf("%w: root %s has a parent", ErrParentMismatch, t.nodes[t.root].Value))
	}
	violations = t.parentViolations(t.root, violations)
	if size := t.Size(t.root); size != t.sizeCount {
		violations = append(violations, fmt.Errorf("%w: cached %d, counted %d", ErrSizeMismatch, t.sizeCount, size))
	}
	violations = t.balanceViolations(t.root, violations)
	return errors.Join(violations...)
}

func (t *RankTree) parentViolations(index NodeIndex, violations []error) []error {
	if index == NoNode {
		return violations
	}
	for _, direction := range []Direction{Left, Right} {
		child := t.nodes[index].child(direction)
		if child == NoNode {
			continue
		}
		if t.nodes[child].Parent != index {
			violations = append(violations, fmt.Errorf("%w: %s child %s of %s", ErrParentMismatch,
				direction, t.nodes[child].Value, t.nodes[index].Value))
		}
		violations = t.parentViolations(child, violations)
	}
	return violations
}
