package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"treescape/local-app/src/pkg/log"
	"treescape/local-app/src/pkg/model"
)

// SnapshotStore defines the interface for saving and loading named tree snapshots.
type SnapshotStore interface {
	TreeSave(name string, root *model.Node) error
	TreeLoad(name string) (*model.Node, error)
	TreeList() ([]model.TreeInfo, error)
	TreeDelete(name string) error
}

// SnapshotStorage implements the SnapshotStore interface.
type SnapshotStorage struct {
	storage *Storage
	logger  *log.Logger
}

// NewSnapshotStorage creates a new SnapshotStorage instance.
func NewSnapshotStorage(storage *Storage) *SnapshotStorage {
	return &SnapshotStorage{
		storage: storage,
		logger:  storage.logger,
	}
}

// TreeSave stores the whole tree under the given name, replacing any
// previous snapshot with that name. The write is transactional; a failed
// save leaves the old snapshot intact.
func (s *SnapshotStorage) TreeSave(name string, root *model.Node) error {
	ctx := context.Background()
	s.logger.Info(ctx, "Saving tree snapshot", log.Fields{"treeName": name})

	if root == nil {
		return fmt.Errorf("cannot save tree '%s': no root node", name)
	}

	db := s.storage.GetDatabase()
	now := time.Now()

	if err := db.Begin(); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer db.Rollback()

	// Upsert the tree row
	var treeID int
	err := db.QueryRow("SELECT id FROM trees WHERE tree_name = ?", name).Scan(&treeID)
	switch {
	case err == sql.ErrNoRows:
		result, err := db.Exec("INSERT INTO trees (tree_name, created, updated) VALUES (?, ?, ?)", name, now, now)
		if err != nil {
			s.logger.Error(ctx, "Failed to insert tree row", log.Fields{"error": err, "treeName": name})
			return fmt.Errorf("failed to insert tree '%s': %w", name, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get tree id: %w", err)
		}
		treeID = int(id)
	case err != nil:
		s.logger.Error(ctx, "Failed to look up tree", log.Fields{"error": err, "treeName": name})
		return fmt.Errorf("failed to look up tree '%s': %w", name, err)
	default:
		if _, err := db.Exec("UPDATE trees SET updated = ? WHERE id = ?", now, treeID); err != nil {
			return fmt.Errorf("failed to update tree '%s': %w", name, err)
		}
	}

	// Replace the stored nodes with the current tree shape
	if _, err := db.Exec("DELETE FROM nodes WHERE tree_id = ?", treeID); err != nil {
		s.logger.Error(ctx, "Failed to clear old snapshot nodes", log.Fields{"error": err, "treeID": treeID})
		return fmt.Errorf("failed to clear old snapshot: %w", err)
	}

	queue := []*model.Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		parentID := 0
		if n.Parent != nil {
			parentID = n.Parent.ID
		}
		position := 0
		if n.Parent != nil {
			for i, sibling := range n.Parent.Children {
				if sibling.ID == n.ID {
					position = i
					break
				}
			}
		}

		_, err := db.Exec(
			"INSERT INTO nodes (tree_id, node_id, parent_id, label, level, position) VALUES (?, ?, ?, ?, ?, ?)",
			treeID, n.ID, parentID, n.Label, n.Level, position,
		)
		if err != nil {
			s.logger.Error(ctx, "Failed to insert node row", log.Fields{"error": err, "treeID": treeID, "nodeID": n.ID})
			return fmt.Errorf("failed to insert node %d: %w", n.ID, err)
		}
		queue = append(queue, n.Children...)
	}

	if err := db.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	s.logger.Info(ctx, "Tree snapshot saved", log.Fields{"treeName": name, "treeID": treeID})
	return nil
}

// TreeLoad reads the snapshot with the given name and rebuilds its node
// structure. The returned root carries the stored children order; parent
// links and levels are left for tree.Restore to recompute.
func (s *SnapshotStorage) TreeLoad(name string) (*model.Node, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Loading tree snapshot", log.Fields{"treeName": name})

	db := s.storage.GetDatabase()

	var treeID int
	err := db.QueryRow("SELECT id FROM trees WHERE tree_name = ?", name).Scan(&treeID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tree '%s' does not exist", name)
	}
	if err != nil {
		s.logger.Error(ctx, "Failed to look up tree", log.Fields{"error": err, "treeName": name})
		return nil, fmt.Errorf("failed to look up tree '%s': %w", name, err)
	}

	rows, err := db.Query(
		"SELECT node_id, parent_id, label, level FROM nodes WHERE tree_id = ? ORDER BY level, parent_id, position",
		treeID,
	)
	if err != nil {
		s.logger.Error(ctx, "Failed to query snapshot nodes", log.Fields{"error": err, "treeID": treeID})
		return nil, fmt.Errorf("failed to query nodes for tree '%s': %w", name, err)
	}
	defer rows.Close()

	nodes := make(map[int]*model.Node)
	var root *model.Node
	for rows.Next() {
		var nodeID, parentID, level int
		var label string
		if err := rows.Scan(&nodeID, &parentID, &label, &level); err != nil {
			return nil, fmt.Errorf("failed to scan node row: %w", err)
		}

		n := model.NewNode(nodeID, label, level)
		nodes[nodeID] = n

		if parentID == 0 {
			if root != nil {
				return nil, fmt.Errorf("tree '%s' has more than one root node", name)
			}
			root = n
			continue
		}
		parent, ok := nodes[parentID]
		if !ok {
			return nil, fmt.Errorf("tree '%s' references missing parent %d", name, parentID)
		}
		parent.Children = append(parent.Children, n)
		n.Parent = parent
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read node rows: %w", err)
	}
	if root == nil {
		return nil, fmt.Errorf("tree '%s' has no root node", name)
	}

	s.logger.Info(ctx, "Tree snapshot loaded", log.Fields{"treeName": name, "nodeCount": len(nodes)})
	return root, nil
}

// TreeList returns basic information about every stored snapshot.
func (s *SnapshotStorage) TreeList() ([]model.TreeInfo, error) {
	ctx := context.Background()
	s.logger.Debug(ctx, "Listing tree snapshots", nil)

	db := s.storage.GetDatabase()
	rows, err := db.Query(`
		SELECT t.id, t.tree_name, t.updated, COUNT(n.node_id)
		FROM trees t LEFT JOIN nodes n ON n.tree_id = t.id
		GROUP BY t.id ORDER BY t.tree_name
	`)
	if err != nil {
		s.logger.Error(ctx, "Failed to list trees", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to list trees: %w", err)
	}
	defer rows.Close()

	var infos []model.TreeInfo
	for rows.Next() {
		var info model.TreeInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Updated, &info.NodeCount); err != nil {
			return nil, fmt.Errorf("failed to scan tree row: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tree rows: %w", err)
	}
	return infos, nil
}

// TreeDelete removes the snapshot with the given name and all of its nodes.
func (s *SnapshotStorage) TreeDelete(name string) error {
	ctx := context.Background()
	s.logger.Info(ctx, "Deleting tree snapshot", log.Fields{"treeName": name})

	db := s.storage.GetDatabase()

	var treeID int
	err := db.QueryRow("SELECT id FROM trees WHERE tree_name = ?", name).Scan(&treeID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("tree '%s' does not exist", name)
	}
	if err != nil {
		return fmt.Errorf("failed to look up tree '%s': %w", name, err)
	}

	if err := db.Begin(); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer db.Rollback()

	if _, err := db.Exec("DELETE FROM nodes WHERE tree_id = ?", treeID); err != nil {
		return fmt.Errorf("failed to delete nodes of tree '%s': %w", name, err)
	}
	if _, err := db.Exec("DELETE FROM trees WHERE id = ?", treeID); err != nil {
		return fmt.Errorf("failed to delete tree '%s': %w", name, err)
	}

	if err := db.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}

	s.logger.Info(ctx, "Tree snapshot deleted", log.Fields{"treeName": name, "treeID": treeID})
	return nil
}
