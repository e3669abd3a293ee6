// Package tree provides the in-memory tree owned by a session: a single root,
// an active node that mutations target, and a level-grouped view for
// consumers that render the tree.
package tree

import (
	"context"
	"strconv"

	"treescape/local-app/src/pkg/event"
	"treescape/local-app/src/pkg/log"
	"treescape/local-app/src/pkg/model"
)

// TreeStore owns the root node and tracks the active node. All mutators with
// an unmet precondition (no active node, active is root for delete, depth
// limit reached for add) are silent no-ops; callers that need to explain a
// refusal to the user derive the same guard from Active() themselves.
type TreeStore struct {
	root   *model.Node
	active *model.Node
	nextID int
	events *event.EventManager
	logger *log.Logger
}

// NewTreeStore creates a store holding a fresh tree: a root labeled "1" at
// level 0, which is also the active node.
func NewTreeStore(events *event.EventManager, logger *log.Logger) *TreeStore {
	s := &TreeStore{
		events: events,
		logger: logger,
	}
	s.init()
	return s
}

// init builds a fresh root and restarts the id counter at 1.
func (s *TreeStore) init() {
	s.nextID = 1
	s.root = s.allocateNode(0)
	s.active = s.root
}

// allocateNode creates a node at the given level with the next id; the label
// is the string form of the id.
func (s *TreeStore) allocateNode(level int) *model.Node {
	id := s.nextID
	s.nextID++
	n := model.NewNode(id, strconv.Itoa(id), level)
	s.attach(n)
	return n
}

// attach forwards the node's own change signals to the store's subscribers.
func (s *TreeStore) attach(n *model.Node) {
	n.Observe(func() {
		s.events.Publish(event.Event{Type: event.NodeChanged, Data: n})
	})
}

// Root returns the root node.
func (s *TreeStore) Root() *model.Node {
	return s.root
}

// Active returns the active node, or nil if none is selected.
func (s *TreeStore) Active() *model.Node {
	return s.active
}

// SetActive selects the node that subsequent AddChildToActive and
// DeleteActive calls target. Passing the already-active node (matched by id)
// or nil twice is a no-op and does not signal. The node must come from this
// store's own tree; the store does not verify membership.
func (s *TreeStore) SetActive(n *model.Node) {
	if n == nil && s.active == nil {
		return
	}
	if n != nil && s.active != nil && n.ID == s.active.ID {
		return
	}
	s.active = n
	s.events.Publish(event.Event{Type: event.ActiveChanged, Data: n})
}

// AddChildToActive appends a new child to the active node. The child's label
// is the string form of its id, its level is one below the active node, and
// it does not become active. Returns the new node, or nil when nothing
// happened: no active node, or the child's level would reach the depth limit.
// The nil return is the only way a caller can tell; no event is published for
// the refused add.
func (s *TreeStore) AddChildToActive() *model.Node {
	ctx := context.Background()
	if s.active == nil {
		s.logger.Debug(ctx, "Add child skipped, no active node", nil)
		return nil
	}
	newLevel := s.active.Level + 1
	if newLevel >= model.MaxLevels {
		s.logger.Debug(ctx, "Add child skipped, depth limit reached", log.Fields{"activeID": s.active.ID, "activeLevel": s.active.Level})
		return nil
	}

	child := s.allocateNode(newLevel)
	s.active.AddChild(child)
	s.logger.Debug(ctx, "Node added", log.Fields{"nodeID": child.ID, "parentID": s.active.ID, "level": newLevel})

	s.events.Publish(event.Event{Type: event.NodeAdded, Data: child})
	return child
}

// DeleteActive detaches the active node together with its whole subtree and
// makes the parent active. Silent no-op when no node is active or the active
// node is the root; the root is undeletable.
func (s *TreeStore) DeleteActive() {
	ctx := context.Background()
	if s.active == nil {
		s.logger.Debug(ctx, "Delete skipped, no active node", nil)
		return
	}
	if s.active.Parent == nil {
		s.logger.Debug(ctx, "Delete skipped, active node is root", log.Fields{"nodeID": s.active.ID})
		return
	}

	deleted := s.active
	parent := deleted.Parent
	parent.RemoveChild(deleted)
	s.active = parent
	s.logger.Debug(ctx, "Node deleted", log.Fields{"nodeID": deleted.ID, "parentID": parent.ID})

	s.events.Publish(event.Event{Type: event.NodeDeleted, Data: deleted})
}

// Reset discards the whole tree, restarts the id counter at 1 and creates a
// fresh root labeled "1", which becomes active.
func (s *TreeStore) Reset() {
	s.init()
	s.logger.Debug(context.Background(), "Tree reset", nil)
	s.events.Publish(event.Event{Type: event.TreeReset, Data: s.root})
}

// NodesByLevel groups all nodes of the tree by level via breadth-first
// traversal. Within a level, nodes appear in the order their parents appear
// in the previous level, and siblings in insertion order. The result is
// built fresh on every call from the live tree; nothing is cached.
func (s *TreeStore) NodesByLevel() [][]*model.Node {
	var levels [][]*model.Node
	queue := []*model.Node{s.root}
	for len(queue) > 0 {
		levels = append(levels, queue)
		var next []*model.Node
		for _, n := range queue {
			next = append(next, n.Children...)
		}
		queue = next
	}
	return levels
}

// NodeCount returns the number of nodes reachable from the root.
func (s *TreeStore) NodeCount() int {
	count := 0
	for _, level := range s.NodesByLevel() {
		count += len(level)
	}
	return count
}

// FindNode returns the node with the given id, or nil if the tree has none.
func (s *TreeStore) FindNode(id int) *model.Node {
	queue := []*model.Node{s.root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n.ID == id {
			return n
		}
		queue = append(queue, n.Children...)
	}
	return nil
}

// Subscribe registers a handler for store change notifications and returns a
// token for Unsubscribe.
func (s *TreeStore) Subscribe(eventType event.EventType, handler event.EventHandler) int {
	return s.events.Subscribe(eventType, handler)
}

// Unsubscribe removes a handler registered with Subscribe.
func (s *TreeStore) Unsubscribe(eventType event.EventType, id int) {
	s.events.Unsubscribe(eventType, id)
}
