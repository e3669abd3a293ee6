package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"treescape/local-app/src/pkg/log"
	"treescape/local-app/src/pkg/model"
)

// initNodeCommandHandlers returns the handlers for the node scope
func initNodeCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"add":    handleNodeAdd,
		"delete": handleNodeDelete,
		"select": handleNodeSelect,
		"rename": handleNodeRename,
		"list":   handleNodeList,
	}
}

// handleNodeAdd appends a child to the active node. The tree core refuses
// silently, so the guard conditions are re-derived here to give the user a
// reason.
func handleNodeAdd(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling node add command", nil)

	active := s.Tree.Active()
	if active == nil {
		return nil, fmt.Errorf("no node selected: select a node before adding a child")
	}
	if active.Level >= model.MaxLevels-1 {
		return nil, fmt.Errorf("node %d is at the maximum depth of %d levels", active.ID, model.MaxLevels)
	}

	child := s.Tree.AddChildToActive()
	if child == nil {
		return nil, fmt.Errorf("failed to add node")
	}

	s.logger.Info(ctx, "Node added successfully", log.Fields{"nodeID": child.ID, "parentID": active.ID})
	return fmt.Sprintf("added node %d under node %d", child.ID, active.ID), nil
}

// handleNodeDelete removes the active node and its subtree
func handleNodeDelete(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling node delete command", nil)

	active := s.Tree.Active()
	if active == nil {
		return nil, fmt.Errorf("no node selected: nothing to delete")
	}
	if active.Parent == nil {
		return nil, fmt.Errorf("the root node cannot be deleted")
	}

	deletedID := active.ID
	s.Tree.DeleteActive()

	newActive := s.Tree.Active()
	s.logger.Info(ctx, "Node deleted successfully", log.Fields{"nodeID": deletedID, "activeID": newActive.ID})
	return fmt.Sprintf("deleted node %d, node %d is now active", deletedID, newActive.ID), nil
}

// handleNodeSelect changes the active node
func handleNodeSelect(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling node select command", log.Fields{"args": cmd.Args})

	switch cmd.Args[0] {
	case "none":
		s.Tree.SetActive(nil)
		return "no node selected", nil
	case "root":
		s.Tree.SetActive(s.Tree.Root())
		return fmt.Sprintf("node %d selected", s.Tree.Root().ID), nil
	}

	id, err := strconv.Atoi(cmd.Args[0])
	if err != nil {
		return nil, fmt.Errorf("invalid node id '%s'", cmd.Args[0])
	}

	node := s.Tree.FindNode(id)
	if node == nil {
		return nil, fmt.Errorf("node %d not found", id)
	}

	s.Tree.SetActive(node)
	return fmt.Sprintf("node %d selected", node.ID), nil
}

// handleNodeRename changes the label of the active node
func handleNodeRename(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling node rename command", log.Fields{"args": cmd.Args})

	active := s.Tree.Active()
	if active == nil {
		return nil, fmt.Errorf("no node selected: nothing to rename")
	}

	active.SetLabel(cmd.Args[0])
	return fmt.Sprintf("node %d renamed to %q", active.ID, active.Label), nil
}

// handleNodeList renders the level grouping as text, one line per level,
// with the active node marked by an asterisk
func handleNodeList(s *Session, cmd model.Command) (interface{}, error) {
	s.logger.Debug(context.Background(), "Handling node list command", nil)

	active := s.Tree.Active()
	var sb strings.Builder
	for level, nodes := range s.Tree.NodesByLevel() {
		sb.WriteString(fmt.Sprintf("level %d:", level))
		for _, n := range nodes {
			marker := ""
			if active != nil && n.ID == active.ID {
				marker = "*"
			}
			sb.WriteString(fmt.Sprintf(" [%d]%s%s", n.ID, n.Label, marker))
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
