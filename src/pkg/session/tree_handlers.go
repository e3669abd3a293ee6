package session

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"treescape/local-app/src/pkg/log"
	"treescape/local-app/src/pkg/model"
	"treescape/local-app/src/pkg/storage"
	"treescape/local-app/src/pkg/tree"
)

// initTreeCommandHandlers returns the handlers for the tree scope
func initTreeCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"reset":  handleTreeReset,
		"save":   handleTreeSave,
		"load":   handleTreeLoad,
		"list":   handleTreeList,
		"delete": handleTreeDelete,
		"export": handleTreeExport,
		"import": handleTreeImport,
	}
}

// handleTreeReset discards the session's tree and starts over
func handleTreeReset(s *Session, cmd model.Command) (interface{}, error) {
	s.logger.Info(context.Background(), "Handling tree reset command", nil)
	s.Tree.Reset()
	return "tree reset", nil
}

// handleTreeSave stores the session's tree as a named snapshot
func handleTreeSave(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	name := s.defaultTree
	if len(cmd.Args) == 1 {
		name = cmd.Args[0]
	}
	s.logger.Info(ctx, "Handling tree save command", log.Fields{"treeName": name})

	if err := s.snapshots.TreeSave(name, s.Tree.Root()); err != nil {
		return nil, fmt.Errorf("failed to save tree: %w", err)
	}
	return fmt.Sprintf("tree saved as '%s'", name), nil
}

// handleTreeLoad replaces the session's tree with a stored snapshot
func handleTreeLoad(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	name := cmd.Args[0]
	s.logger.Info(ctx, "Handling tree load command", log.Fields{"treeName": name})

	root, err := s.snapshots.TreeLoad(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load tree: %w", err)
	}

	store, err := tree.Restore(root, s.events, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to restore tree: %w", err)
	}
	s.Tree = store

	return fmt.Sprintf("tree '%s' loaded, %d nodes", name, store.NodeCount()), nil
}

// handleTreeList lists the stored snapshots
func handleTreeList(s *Session, cmd model.Command) (interface{}, error) {
	s.logger.Debug(context.Background(), "Handling tree list command", nil)

	infos, err := s.snapshots.TreeList()
	if err != nil {
		return nil, fmt.Errorf("failed to list trees: %w", err)
	}
	if len(infos) == 0 {
		return "no saved trees", nil
	}

	var sb strings.Builder
	for _, info := range infos {
		sb.WriteString(fmt.Sprintf("%s (%d nodes, updated %s)\n", info.Name, info.NodeCount, info.Updated.Format("2006-01-02 15:04:05")))
	}
	return sb.String(), nil
}

// handleTreeDelete removes a stored snapshot
func handleTreeDelete(s *Session, cmd model.Command) (interface{}, error) {
	name := cmd.Args[0]
	s.logger.Info(context.Background(), "Handling tree delete command", log.Fields{"treeName": name})

	if err := s.snapshots.TreeDelete(name); err != nil {
		return nil, fmt.Errorf("failed to delete tree: %w", err)
	}
	return fmt.Sprintf("tree '%s' deleted", name), nil
}

// handleTreeExport writes the session's tree to a file
func handleTreeExport(s *Session, cmd model.Command) (interface{}, error) {
	filename, format := s.resolveFile(cmd.Args)
	s.logger.Info(context.Background(), "Handling tree export command", log.Fields{"filename": filename, "format": format})

	if err := storage.FileExport(s.Tree.Root(), filename, format); err != nil {
		return nil, fmt.Errorf("failed to export tree: %w", err)
	}
	return fmt.Sprintf("tree exported to %s", filename), nil
}

// handleTreeImport replaces the session's tree with the contents of a file
func handleTreeImport(s *Session, cmd model.Command) (interface{}, error) {
	filename, format := s.resolveFile(cmd.Args)
	s.logger.Info(context.Background(), "Handling tree import command", log.Fields{"filename": filename, "format": format})

	root, err := storage.FileImport(filename, format)
	if err != nil {
		return nil, fmt.Errorf("failed to import tree: %w", err)
	}

	store, err := tree.Restore(root, s.events, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to restore imported tree: %w", err)
	}
	s.Tree = store

	return fmt.Sprintf("tree imported from %s, %d nodes", filename, store.NodeCount()), nil
}

// resolveFile turns export/import arguments into a file path and format.
// Relative paths land in the configured export directory; the format
// defaults to json.
func (s *Session) resolveFile(args []string) (string, string) {
	filename := args[0]
	if !filepath.IsAbs(filename) && s.exportDir != "" {
		filename = filepath.Join(s.exportDir, filename)
	}
	format := "json"
	if len(args) == 2 {
		format = args[1]
	}
	return filename, format
}
