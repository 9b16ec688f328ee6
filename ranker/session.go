package ranker

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	config_pol "github.com/AlexeyBeley/go_ranker/configuration_policy"
	"github.com/AlexeyBeley/go_ranker/logger"
	"github.com/AlexeyBeley/go_ranker/tree"
)

var lg = &(logger.Logger{Level: logger.INFO})

func SetLogLevel(level int) {
	lg.Level = level
}

var (
	ErrNothingToDecide = errors.New("no comparison pending")
	ErrNothingToUndo   = errors.New("no decision to undo")
	ErrUnknownItem     = errors.New("unknown item")
	ErrStillRanked     = errors.New("item could not be removed from the tree")
)

type Configuration struct {
	Tree tree.Configuration `json:"Tree"`
	// Seed fixes the presentation order, 0 picks one from the clock.
	Seed int64 `json:"Seed"`
	// BestFirst reverses the tree order in Ranking.
	BestFirst bool `json:"BestFirst"`
	// UseScanDelete removes items by visiting every node instead of the
	// lexical search.
	UseScanDelete bool `json:"UseScanDelete"`
}

// Session feeds a shuffled item list through the rank tree, one comparison
// at a time.
type Session struct {
	Configuration *Configuration
	items         map[string]Item
	order         []string
	next          int
	tree          *tree.RankTree
	walk          *tree.Walk
	comparisons   int
}

// SessionCheckpoint is what a host stores to continue later. The tree shape
// is not part of it: placed items come back as a balanced tree and the item
// that was being compared starts over.
type SessionCheckpoint struct {
	Items       []Item   `json:"Items"`
	Order       []string `json:"Order"`
	Next        int      `json:"Next"`
	Ranked      []string `json:"Ranked"`
	Pending     string   `json:"Pending,omitempty"`
	Comparisons int      `json:"Comparisons"`
}

func SessionNew(itemList *ItemList, options ...config_pol.Option) (*Session, error) {
	session, err := newSession(itemList, options...)
	if err != nil {
		return nil, err
	}

	random := rand.New(rand.NewSource(session.seed()))
	random.Shuffle(len(session.order), func(i, j int) {
		session.order[i], session.order[j] = session.order[j], session.order[i]
	})

	if session.tree, err = session.newTree(nil); err != nil {
		return nil, err
	}
	if err = session.advance(); err != nil {
		return nil, err
	}
	lg.Debugf("Session order: %v", session.order)
	return session, nil
}

func SessionResume(checkpoint *SessionCheckpoint, options ...config_pol.Option) (*Session, error) {
	session, err := newSession(&ItemList{Items: checkpoint.Items}, options...)
	if err != nil {
		return nil, err
	}
	if len(checkpoint.Order) != len(session.order) || checkpoint.Next > len(checkpoint.Order) {
		return nil, fmt.Errorf("checkpoint order does not match %d items", len(session.order))
	}
	for _, name := range append(append([]string{}, checkpoint.Order...), checkpoint.Ranked...) {
		if _, ok := session.items[name]; !ok {
			return nil, fmt.Errorf("%w in checkpoint: %s", ErrUnknownItem, name)
		}
	}

	session.order = checkpoint.Order
	session.next = checkpoint.Next
	session.comparisons = checkpoint.Comparisons
	if session.tree, err = session.newTree(checkpoint.Ranked); err != nil {
		return nil, err
	}
	if checkpoint.Pending != "" {
		if session.walk, err = session.tree.BeginInsert(checkpoint.Pending); err != nil {
			return nil, err
		}
	}
	if err = session.advance(); err != nil {
		return nil, err
	}
	return session, nil
}

func newSession(itemList *ItemList, options ...config_pol.Option) (*Session, error) {
	if err := itemList.Validate(); err != nil {
		return nil, err
	}

	session := &Session{Configuration: &Configuration{}, items: map[string]Item{}}
	if err := config_pol.Apply(session, &Configuration{}, options...); err != nil {
		return nil, err
	}
	for _, item := range itemList.Items {
		session.items[item.Name] = item
		session.order = append(session.order, item.Name)
	}
	return session, nil
}

func (session *Session) SetConfiguration(Config any) error {
	configuration, ok := Config.(*Configuration)
	if !ok {
		return fmt.Errorf("was not able to convert %v to ranker Configuration", Config)
	}
	session.Configuration = configuration
	return nil
}

func (session *Session) seed() int64 {
	if session.Configuration.Seed != 0 {
		return session.Configuration.Seed
	}
	return time.Now().UnixNano()
}

func (session *Session) newTree(ranked []string) (*tree.RankTree, error) {
	return tree.RankTreeNewFromSorted(ranked, config_pol.WithConfiguration(&session.Configuration.Tree))
}

// advance starts walks until one needs a decision or the items run out.
func (session *Session) advance() error {
	for session.walk == nil || session.walk.Done() {
		if session.next >= len(session.order) {
			session.walk = nil
			return nil
		}
		walk, err := session.tree.BeginInsert(session.order[session.next])
		if err != nil {
			return err
		}
		session.walk = walk
		session.next++
	}
	return nil
}

// Next returns the pending item and the item it has to be compared with.
func (session *Session) Next() (pending Item, against Item, done bool) {
	if session.walk == nil {
		return Item{}, Item{}, true
	}
	againstName, ok := session.walk.Current()
	if !ok {
		return Item{}, Item{}, true
	}
	return session.items[session.walk.Pending()], session.items[againstName], false
}

// Decide records whether the pending item beats the one it is compared with.
func (session *Session) Decide(pendingWins bool) error {
	if session.walk == nil {
		return ErrNothingToDecide
	}
	direction := tree.Left
	if pendingWins {
		direction = tree.Right
	}

	// a strict tree reports a balance violation after the value is placed
	placed, err := session.walk.Submit(direction)
	if err != nil && !placed {
		return err
	}
	session.comparisons++
	if placed {
		lg.Debugf("Placed %s after %d decisions", session.walk.Pending(), session.walk.Steps())
		if advanceErr := session.advance(); advanceErr != nil {
			return advanceErr
		}
	}
	return err
}

// Undo takes back the last decision of the item currently being placed.
func (session *Session) Undo() error {
	if session.walk == nil || session.walk.Steps() == 0 {
		return ErrNothingToUndo
	}
	checkpoint := session.walk.Checkpoint()
	checkpoint.Path = checkpoint.Path[:len(checkpoint.Path)-1]
	walk, err := session.tree.ResumeWalk(checkpoint)
	if err != nil {
		return err
	}
	session.walk = walk
	session.comparisons--
	return nil
}

// Remove drops an item from the session, placed or not. A walk in progress
// for another item restarts because the tree may be rebuilt. When the tree
// cannot find a placed item (lexical delete on a judged order) the session
// is left unchanged and ErrStillRanked is returned.
func (session *Session) Remove(name string) error {
	if _, ok := session.items[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, name)
	}

	pending := session.walk != nil && session.walk.Pending() == name
	removed := false
	if !pending && session.tree.Contains(name) {
		if session.Configuration.UseScanDelete {
			removed = session.tree.DeleteScan(name)
		} else {
			removed = session.tree.Delete(name)
		}
		if !removed {
			lg.Warningf("%s is still ranked: tree order disagrees with name order, enable UseScanDelete", name)
			return fmt.Errorf("%w: %s", ErrStillRanked, name)
		}
	}

	delete(session.items, name)
	for i, ordered := range session.order {
		if ordered != name {
			continue
		}
		session.order = append(session.order[:i:i], session.order[i+1:]...)
		if i < session.next {
			session.next--
		}
		break
	}

	if pending {
		session.walk = nil
		return session.advance()
	}

	if removed && session.walk != nil {
		walk, err := session.tree.BeginInsert(session.walk.Pending())
		if err != nil {
			return err
		}
		session.walk = walk
		return session.advance()
	}
	return nil
}

func (session *Session) Done() bool {
	return session.walk == nil
}

func (session *Session) Placed() int {
	return session.tree.Len()
}

func (session *Session) Total() int {
	return len(session.order)
}

func (session *Session) Comparisons() int {
	return session.comparisons
}

func (session *Session) Tree() *tree.RankTree {
	return session.tree
}

func (session *Session) Item(name string) (Item, bool) {
	item, ok := session.items[name]
	return item, ok
}

func (session *Session) Checkpoint() *SessionCheckpoint {
	checkpoint := &SessionCheckpoint{
		Order:       append([]string{}, session.order...),
		Next:        session.next,
		Ranked:      session.tree.GetSorted(),
		Comparisons: session.comparisons,
	}
	for _, name := range session.order {
		checkpoint.Items = append(checkpoint.Items, session.items[name])
	}
	if session.walk != nil {
		checkpoint.Pending = session.walk.Pending()
	}
	return checkpoint
}
