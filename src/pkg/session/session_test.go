package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treescape/local-app/src/pkg/event"
	"treescape/local-app/src/pkg/log"
	"treescape/local-app/src/pkg/model"
	"treescape/local-app/src/pkg/storage"
)

func newTestManager(t *testing.T) (*SessionManager, string) {
	t.Helper()

	logCfg := &model.Config{
		LogFolder:  t.TempDir(),
		CommandLog: "commands.log",
		ErrorLog:   "errors.log",
		InfoLog:    "info.log",
	}
	logger, err := log.NewLogger(logCfg, log.LevelDebug)
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })

	cfg := &model.Config{
		DatabaseType:    "sqlite",
		DatabaseDir:     t.TempDir(),
		DatabaseFile:    "test.db",
		ExportDir:       t.TempDir(),
		DefaultTreeName: "default",
	}
	store, err := storage.NewStorage(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	sm := NewSessionManager(store, event.NewEventManager(logger), cfg, logger)
	sessionID, err := sm.SessionAdd()
	require.NoError(t, err)
	return sm, sessionID
}

func run(t *testing.T, sm *SessionManager, sessionID, scope, operation string, args ...string) (interface{}, error) {
	t.Helper()
	return sm.CommandRun(sessionID, model.Command{Scope: scope, Operation: operation, Args: args})
}

func TestSessionLifecycle(t *testing.T) {
	sm, sessionID := newTestManager(t)

	session, exists := sm.SessionGet(sessionID)
	require.True(t, exists)
	assert.Equal(t, sessionID, session.ID)
	assert.Equal(t, 1, session.Tree.Root().ID)

	sm.SessionDelete(sessionID)
	_, exists = sm.SessionGet(sessionID)
	assert.False(t, exists)

	_, err := run(t, sm, sessionID, "node", "add")
	assert.ErrorContains(t, err, "invalid session")
}

func TestNodeCommands(t *testing.T) {
	sm, sessionID := newTestManager(t)
	session, _ := sm.SessionGet(sessionID)

	_, err := run(t, sm, sessionID, "node", "add")
	require.NoError(t, err)
	assert.Equal(t, 2, session.Tree.NodeCount())
	assert.Equal(t, 1, session.Tree.Active().ID)

	_, err = run(t, sm, sessionID, "node", "select", "2")
	require.NoError(t, err)
	assert.Equal(t, 2, session.Tree.Active().ID)

	_, err = run(t, sm, sessionID, "node", "rename", "branch")
	require.NoError(t, err)
	assert.Equal(t, "branch", session.Tree.Active().Label)

	result, err := run(t, sm, sessionID, "node", "list")
	require.NoError(t, err)
	assert.Contains(t, result.(string), "level 0: [1]1")
	assert.Contains(t, result.(string), "level 1: [2]branch*")

	_, err = run(t, sm, sessionID, "node", "delete")
	require.NoError(t, err)
	assert.Equal(t, 1, session.Tree.NodeCount())
	assert.Equal(t, 1, session.Tree.Active().ID)
}

func TestNodeCommandGuards(t *testing.T) {
	sm, sessionID := newTestManager(t)

	// Deleting the root is refused with an explanation
	_, err := run(t, sm, sessionID, "node", "delete")
	assert.ErrorContains(t, err, "root node cannot be deleted")

	// Selecting an unknown node fails
	_, err = run(t, sm, sessionID, "node", "select", "42")
	assert.ErrorContains(t, err, "not found")

	_, err = run(t, sm, sessionID, "node", "select", "bogus")
	assert.ErrorContains(t, err, "invalid node id")

	// With no selection, mutating commands are refused with an explanation
	_, err = run(t, sm, sessionID, "node", "select", "none")
	require.NoError(t, err)
	_, err = run(t, sm, sessionID, "node", "add")
	assert.ErrorContains(t, err, "no node selected")
	_, err = run(t, sm, sessionID, "node", "delete")
	assert.ErrorContains(t, err, "no node selected")
	_, err = run(t, sm, sessionID, "node", "rename", "x")
	assert.ErrorContains(t, err, "no node selected")
}

func TestCommandValidation(t *testing.T) {
	sm, sessionID := newTestManager(t)

	_, err := run(t, sm, sessionID, "node", "add", "extra")
	assert.ErrorContains(t, err, "does not accept any arguments")

	_, err = run(t, sm, sessionID, "node", "select")
	assert.ErrorContains(t, err, "requires 1 argument")

	_, err = run(t, sm, sessionID, "garden", "add")
	assert.ErrorContains(t, err, "invalid command scope")

	_, err = run(t, sm, sessionID, "tree", "prune")
	assert.ErrorContains(t, err, "invalid tree operation")
}

func TestTreeSaveAndLoadCommands(t *testing.T) {
	sm, sessionID := newTestManager(t)
	session, _ := sm.SessionGet(sessionID)

	_, err := run(t, sm, sessionID, "node", "add")
	require.NoError(t, err)
	_, err = run(t, sm, sessionID, "tree", "save", "mytree")
	require.NoError(t, err)

	_, err = run(t, sm, sessionID, "tree", "reset")
	require.NoError(t, err)
	assert.Equal(t, 1, session.Tree.NodeCount())

	_, err = run(t, sm, sessionID, "tree", "load", "mytree")
	require.NoError(t, err)
	session, _ = sm.SessionGet(sessionID)
	assert.Equal(t, 2, session.Tree.NodeCount())

	result, err := run(t, sm, sessionID, "tree", "list")
	require.NoError(t, err)
	assert.Contains(t, result.(string), "mytree")

	_, err = run(t, sm, sessionID, "tree", "delete", "mytree")
	require.NoError(t, err)
	result, err = run(t, sm, sessionID, "tree", "list")
	require.NoError(t, err)
	assert.Equal(t, "no saved trees", result)
}

func TestTreeSaveDefaultName(t *testing.T) {
	sm, sessionID := newTestManager(t)

	result, err := run(t, sm, sessionID, "tree", "save")
	require.NoError(t, err)
	assert.Contains(t, result.(string), "'default'")
}

func TestTreeExportAndImportCommands(t *testing.T) {
	sm, sessionID := newTestManager(t)
	session, _ := sm.SessionGet(sessionID)

	_, err := run(t, sm, sessionID, "node", "add")
	require.NoError(t, err)
	_, err = run(t, sm, sessionID, "node", "add")
	require.NoError(t, err)

	_, err = run(t, sm, sessionID, "tree", "export", "tree.yaml", "yaml")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(session.exportDir, "tree.yaml"))

	_, err = run(t, sm, sessionID, "tree", "reset")
	require.NoError(t, err)

	_, err = run(t, sm, sessionID, "tree", "import", "tree.yaml", "yaml")
	require.NoError(t, err)
	session, _ = sm.SessionGet(sessionID)
	assert.Equal(t, 3, session.Tree.NodeCount())
}
