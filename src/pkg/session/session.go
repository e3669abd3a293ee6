// Package session provides session management and command dispatch for the
// Treescape application.
package session

import (
	"context"
	"errors"
	"time"

	"treescape/local-app/src/pkg/event"
	"treescape/local-app/src/pkg/log"
	"treescape/local-app/src/pkg/model"
	"treescape/local-app/src/pkg/storage"
	"treescape/local-app/src/pkg/tree"
)

// CommandHandler is a function type for command handlers
type CommandHandler func(*Session, model.Command) (interface{}, error)

// Session represents an individual user session. Each session owns one
// in-memory tree.
type Session struct {
	ID           string
	Tree         *tree.TreeStore
	LastActivity time.Time

	snapshots       storage.SnapshotStore
	events          *event.EventManager
	defaultTree     string
	exportDir       string
	commandHandlers map[string]map[string]CommandHandler
	logger          *log.Logger
}

// NewSession creates a new Session instance with a fresh tree.
func NewSession(id string, snapshots storage.SnapshotStore, events *event.EventManager, cfg *model.Config, logger *log.Logger) *Session {
	ctx := context.Background()
	logger.Info(ctx, "Creating new Session", log.Fields{"sessionID": id})

	s := &Session{
		ID:           id,
		Tree:         tree.NewTreeStore(events, logger),
		LastActivity: time.Now(),
		snapshots:    snapshots,
		events:       events,
		defaultTree:  cfg.DefaultTreeName,
		exportDir:    cfg.ExportDir,
		logger:       logger,
	}
	s.initCommandHandlers()

	logger.Info(ctx, "New Session created successfully", log.Fields{"sessionID": id})
	return s
}

// initCommandHandlers initializes the command handlers map
func (s *Session) initCommandHandlers() {
	s.commandHandlers = map[string]map[string]CommandHandler{
		"node":   initNodeCommandHandlers(),
		"tree":   initTreeCommandHandlers(),
		"system": initSystemCommandHandlers(),
	}
}

// CommandRun executes a command within the session context
func (s *Session) CommandRun(cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Running command", log.Fields{"command": cmd})

	// Update last activity
	s.LastActivity = time.Now()

	scopeHandlers, ok := s.commandHandlers[cmd.Scope]
	if !ok {
		s.logger.Error(ctx, "Invalid command scope", log.Fields{"scope": cmd.Scope})
		return nil, errors.New("invalid command scope")
	}

	handler, ok := scopeHandlers[cmd.Operation]
	if !ok {
		s.logger.Error(ctx, "Invalid command operation", log.Fields{"operation": cmd.Operation})
		return nil, errors.New("invalid command operation")
	}

	result, err := handler(s, cmd)
	if err != nil {
		s.logger.Error(ctx, "Command execution failed", log.Fields{"error": err})
	} else {
		s.logger.Info(ctx, "Command executed successfully", nil)
	}

	return result, err
}
