package tree

import (
	"errors"
	"fmt"

	config_pol "github.com/AlexeyBeley/go_ranker/configuration_policy"
	"github.com/AlexeyBeley/go_ranker/logger"
)

var lg = &(logger.Logger{Level: logger.INFO})

const DefaultAlpha = 0.75

// SetLogLevel changes the logger shared by trees without their own LogLevel.
func SetLogLevel(level int) {
	lg.Level = level
}

var (
	ErrInvalidAlpha       = errors.New("alpha must be in (0.5, 1)")
	ErrDuplicateValue     = errors.New("value already ranked")
	ErrWalkFinished       = errors.New("insertion walk already finished")
	ErrStaleWalk          = errors.New("tree changed since the insertion walk started")
	ErrInvalidDirection   = errors.New("invalid direction")
	ErrCheckpointMismatch = errors.New("checkpoint path does not fit the tree")
	ErrBalanceViolation   = errors.New("balance invariant violated")
	ErrParentMismatch     = errors.New("parent reference mismatch")
	ErrSizeMismatch       = errors.New("cached size mismatch")
)

type Configuration struct {
	// Alpha is the weight-ratio tolerance. It is validated and kept, the
	// balance test itself uses a fixed subtree size difference of 1.
	Alpha float64 `json:"Alpha"`
	// Strict turns post-balance violations into ErrBalanceViolation.
	Strict   bool   `json:"Strict"`
	LogLevel string `json:"LogLevel"`
}

// RankTree is a binary tree whose insertion path is chosen one decision at a
// time by an outside judge. Nodes live in an arena addressed by NodeIndex.
// RankTree is not safe for concurrent use.
type RankTree struct {
	nodes     []Node
	free      []NodeIndex
	root      NodeIndex
	sizeCount int
	alpha     float64
	strict    bool
	// generation changes on every structural mutation, walks use it to detect
	// that the tree moved under them.
	generation uint64
	lg         *logger.Logger
}

func RankTreeNew(options ...config_pol.Option) (*RankTree, error) {
	t := &RankTree{root: NoNode, alpha: DefaultAlpha, lg: lg}
	if err := config_pol.Apply(t, &Configuration{}, options...); err != nil {
		return nil, err
	}
	return t, nil
}

func RankTreeNewWithRoot(value string, options ...config_pol.Option) (*RankTree, error) {
	t, err := RankTreeNew(options...)
	if err != nil {
		return nil, err
	}
	t.root = t.newNode(value, NoNode)
	t.generation++
	t.refreshSize()
	return t, nil
}

// RankTreeNewFromSorted builds a balanced tree holding values in the given
// order, worst first.
func RankTreeNewFromSorted(values []string, options ...config_pol.Option) (*RankTree, error) {
	t, err := RankTreeNew(options...)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(values))
	for _, value := range values {
		if seen[value] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateValue, value)
		}
		seen[value] = true
	}
	t.root = t.build(values, NoNode)
	t.generation++
	t.refreshSize()
	return t, nil
}

func (t *RankTree) SetConfiguration(Config any) error {
	configuration, ok := Config.(*Configuration)
	if !ok {
		return fmt.Errorf("was not able to convert %v to tree Configuration", Config)
	}

	alpha := configuration.Alpha
	if alpha == 0 {
		alpha = DefaultAlpha
	}
	if alpha <= 0.5 || alpha >= 1 {
		return fmt.Errorf("%w: %v", ErrInvalidAlpha, alpha)
	}

	t.alpha = alpha
	t.strict = configuration.Strict
	if configuration.LogLevel != "" {
		t.lg = &logger.Logger{Level: logger.LevelFromString(configuration.LogLevel)}
	}
	return nil
}

func (t *RankTree) SetLogger(l *logger.Logger) {
	t.lg = l
}

func (t *RankTree) Alpha() float64 {
	return t.alpha
}

func (t *RankTree) Strict() bool {
	return t.strict
}

func (t *RankTree) Root() NodeIndex {
	return t.root
}

// Len returns the cached node count.
func (t *RankTree) Len() int {
	return t.sizeCount
}

func (t *RankTree) IsEmpty() bool {
	return t.root == NoNode
}

// NodeAt returns a copy of the node stored at index.
func (t *RankTree) NodeAt(index NodeIndex) (Node, bool) {
	if !t.live(index) {
		return Node{}, false
	}
	return t.nodes[index], true
}

func (t *RankTree) live(index NodeIndex) bool {
	if index < 0 || int(index) >= len(t.nodes) {
		return false
	}
	return !t.nodes[index].released
}

// Size counts the nodes of the subtree rooted at index. Nothing is cached,
// every call walks the whole subtree.
func (t *RankTree) Size(index NodeIndex) int {
	if index == NoNode {
		return 0
	}
	return 1 + t.Size(t.nodes[index].Left) + t.Size(t.nodes[index].Right)
}

func (t *RankTree) refreshSize() {
	t.sizeCount = t.Size(t.root)
}

// Depth returns the number of levels, 0 for an empty tree.
func (t *RankTree) Depth() int {
	return t.depth(t.root)
}

func (t *RankTree) depth(index NodeIndex) int {
	if index == NoNode {
		return 0
	}
	return 1 + max(t.depth(t.nodes[index].Left), t.depth(t.nodes[index].Right))
}

// Contains scans every node, tree order does not follow value order.
func (t *RankTree) Contains(value string) bool {
	return t.find(t.root, value) != NoNode
}

func (t *RankTree) find(index NodeIndex, value string) NodeIndex {
	if index == NoNode {
		return NoNode
	}
	if t.nodes[index].Value == value {
		return index
	}
	if found := t.find(t.nodes[index].Left, value); found != NoNode {
		return found
	}
	return t.find(t.nodes[index].Right, value)
}
