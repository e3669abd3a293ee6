package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"treescape/local-app/src/pkg/event"
	"treescape/local-app/src/pkg/log"
	"treescape/local-app/src/pkg/model"
	"treescape/local-app/src/pkg/storage"
)

// SessionManager manages multiple concurrent sessions
type SessionManager struct {
	sessions  map[string]*Session
	snapshots storage.SnapshotStore
	events    *event.EventManager
	cfg       *model.Config
	logger    *log.Logger
}

// NewSessionManager creates a new SessionManager instance
func NewSessionManager(snapshots storage.SnapshotStore, events *event.EventManager, cfg *model.Config, logger *log.Logger) *SessionManager {
	ctx := context.Background()
	logger.Info(ctx, "Creating new SessionManager", nil)

	sm := &SessionManager{
		sessions:  make(map[string]*Session),
		snapshots: snapshots,
		events:    events,
		cfg:       cfg,
		logger:    logger,
	}

	logger.Info(ctx, "SessionManager created successfully", nil)
	return sm
}

// SessionAdd creates a new session and returns its ID
func (sm *SessionManager) SessionAdd() (string, error) {
	ctx := context.Background()
	sm.logger.Info(ctx, "Adding new session", nil)

	sessionID := uuid.NewString()
	sm.sessions[sessionID] = NewSession(sessionID, sm.snapshots, sm.events, sm.cfg, sm.logger)

	sm.logger.Info(ctx, "New session added", log.Fields{"sessionID": sessionID})
	return sessionID, nil
}

// SessionGet retrieves a session by its ID
func (sm *SessionManager) SessionGet(sessionID string) (*Session, bool) {
	session, exists := sm.sessions[sessionID]
	if !exists {
		sm.logger.Warn(context.Background(), "Session not found", log.Fields{"sessionID": sessionID})
	}
	return session, exists
}

// SessionDelete removes a session
func (sm *SessionManager) SessionDelete(sessionID string) {
	ctx := context.Background()
	if _, exists := sm.sessions[sessionID]; !exists {
		sm.logger.Warn(ctx, "Attempted to delete non-existent session", log.Fields{"sessionID": sessionID})
		return
	}
	delete(sm.sessions, sessionID)
	sm.logger.Info(ctx, "Session deleted", log.Fields{"sessionID": sessionID})
}

// CommandRun validates a command and executes it in the given session
func (sm *SessionManager) CommandRun(sessionID string, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	sm.logger.LogCommand(ctx, fmt.Sprintf("%s %s %v", cmd.Scope, cmd.Operation, cmd.Args))

	command := NewCommand(cmd, sm.logger)
	if err := command.Validate(); err != nil {
		return nil, err
	}

	session, exists := sm.SessionGet(sessionID)
	if !exists {
		return nil, fmt.Errorf("invalid session: %s", sessionID)
	}

	return session.CommandRun(cmd)
}
