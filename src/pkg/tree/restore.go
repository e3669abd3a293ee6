package tree

import (
	"context"
	"fmt"

	"treescape/local-app/src/pkg/event"
	"treescape/local-app/src/pkg/log"
	"treescape/local-app/src/pkg/model"
)

// Restore builds a TreeStore around an existing root, as produced by the
// snapshot store or a file import. Parent links and levels are recomputed
// from the child structure, so only the shape and the ids of the input are
// trusted. The id counter continues after the highest id found, the root
// becomes active, and a TreeLoaded event is published.
func Restore(root *model.Node, events *event.EventManager, logger *log.Logger) (*TreeStore, error) {
	if root == nil {
		return nil, fmt.Errorf("cannot restore tree: no root node")
	}

	s := &TreeStore{
		events: events,
		logger: logger,
	}

	seen := make(map[int]bool)
	maxID := 0

	root.Parent = nil
	type frame struct {
		node  *model.Node
		level int
	}
	stack := []frame{{node: root, level: 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := f.node
		if n.ID < 1 {
			return nil, fmt.Errorf("cannot restore tree: invalid node id %d", n.ID)
		}
		if seen[n.ID] {
			return nil, fmt.Errorf("cannot restore tree: duplicate node id %d", n.ID)
		}
		if f.level >= model.MaxLevels {
			return nil, fmt.Errorf("cannot restore tree: depth limit of %d levels exceeded", model.MaxLevels)
		}
		seen[n.ID] = true
		if n.ID > maxID {
			maxID = n.ID
		}

		n.Level = f.level
		s.attach(n)
		for _, child := range n.Children {
			child.Parent = n
			stack = append(stack, frame{node: child, level: f.level + 1})
		}
	}

	s.root = root
	s.active = root
	s.nextID = maxID + 1

	logger.Debug(context.Background(), "Tree restored", log.Fields{"nodeCount": len(seen), "nextID": s.nextID})
	events.Publish(event.Event{Type: event.TreeLoaded, Data: root})
	return s, nil
}
