package tree

import "fmt"

// Walk is one insertion in progress. Each Submit answers a single "which is
// better" question for the node returned by Current. The walk holds no
// goroutine or callback, a host may keep it around as long as it likes.
type Walk struct {
	tree       *RankTree
	pending    string
	current    NodeIndex
	path       []Direction
	generation uint64
	done       bool
}

// WalkCheckpoint is the serializable state of an unfinished Walk.
type WalkCheckpoint struct {
	Pending string      `json:"Pending"`
	Path    []Direction `json:"Path"`
}

// BeginInsert starts placing value. On an empty tree value becomes the root
// and the returned walk is already done.
func (t *RankTree) BeginInsert(value string) (*Walk, error) {
	if t.Contains(value) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateValue, value)
	}

	walk := &Walk{tree: t, pending: value, current: t.root, generation: t.generation}
	if t.root == NoNode {
		t.root = t.newNode(value, NoNode)
		t.generation++
		t.refreshSize()
		walk.current = NoNode
		walk.done = true
		t.lg.Debugf("%s placed as root", value)
	}
	return walk, nil
}

// ResumeWalk rebuilds a walk from a checkpoint by replaying its decisions.
func (t *RankTree) ResumeWalk(checkpoint WalkCheckpoint) (*Walk, error) {
	if len(checkpoint.Path) > 0 && t.root == NoNode {
		return nil, ErrCheckpointMismatch
	}

	walk, err := t.BeginInsert(checkpoint.Pending)
	if err != nil {
		return nil, err
	}
	for _, direction := range checkpoint.Path {
		if !direction.valid() {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDirection, direction)
		}
		next := t.nodes[walk.current].child(direction)
		if next == NoNode {
			return nil, fmt.Errorf("%w: no %s child under %s", ErrCheckpointMismatch, direction, t.nodes[walk.current].Value)
		}
		walk.current = next
		walk.path = append(walk.path, direction)
	}
	return walk, nil
}

func (w *Walk) Pending() string {
	return w.pending
}

// Current returns the value the pending one is compared against, false once
// the walk is done.
func (w *Walk) Current() (string, bool) {
	if w.done || w.stale() {
		return "", false
	}
	return w.tree.nodes[w.current].Value, true
}

func (w *Walk) Done() bool {
	return w.done
}

// Steps is the number of decisions taken so far.
func (w *Walk) Steps() int {
	return len(w.path)
}

func (w *Walk) Checkpoint() WalkCheckpoint {
	path := make([]Direction, len(w.path))
	copy(path, w.path)
	return WalkCheckpoint{Pending: w.pending, Path: path}
}

func (w *Walk) stale() bool {
	return w.generation != w.tree.generation
}

// Submit applies one decision. Right means the pending value wins against
// Current. It returns true when the value was placed, after which the tree is
// rebalanced.
func (w *Walk) Submit(direction Direction) (bool, error) {
	if w.done {
		return true, ErrWalkFinished
	}
	if !direction.valid() {
		return false, fmt.Errorf("%w: %v", ErrInvalidDirection, direction)
	}
	if w.stale() {
		return false, ErrStaleWalk
	}

	t := w.tree
	w.path = append(w.path, direction)
	next := t.nodes[w.current].child(direction)
	if next != NoNode {
		w.current = next
		return false, nil
	}

	t.addChild(w.current, w.pending, direction)
	w.done = true
	w.current = NoNode
	t.refreshSize()
	if _, err := t.Balance(); err != nil {
		return true, err
	}
	return true, nil
}
