package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treescape/local-app/src/pkg/event"
	"treescape/local-app/src/pkg/log"
	"treescape/local-app/src/pkg/model"
)

func newTestLogger(t *testing.T) *log.Logger {
	t.Helper()
	cfg := &model.Config{
		LogFolder:  t.TempDir(),
		CommandLog: "commands.log",
		ErrorLog:   "errors.log",
		InfoLog:    "info.log",
	}
	logger, err := log.NewLogger(cfg, log.LevelDebug)
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })
	return logger
}

func newTestStore(t *testing.T) *TreeStore {
	t.Helper()
	logger := newTestLogger(t)
	return NewTreeStore(event.NewEventManager(logger), logger)
}

func TestNewTreeStore(t *testing.T) {
	s := newTestStore(t)

	root := s.Root()
	require.NotNil(t, root)
	assert.Equal(t, 1, root.ID)
	assert.Equal(t, "1", root.Label)
	assert.Equal(t, 0, root.Level)
	assert.Nil(t, root.Parent)
	assert.Same(t, root, s.Active())

	levels := s.NodesByLevel()
	require.Len(t, levels, 1)
	require.Len(t, levels[0], 1)
	assert.Same(t, root, levels[0][0])
}

func TestAddChildToActive(t *testing.T) {
	s := newTestStore(t)

	child := s.AddChildToActive()
	require.NotNil(t, child)

	// The new node does not become active
	assert.Equal(t, 1, s.Active().ID)

	assert.Equal(t, 2, child.ID)
	assert.Equal(t, "2", child.Label)
	assert.Equal(t, 1, child.Level)
	require.NotNil(t, child.Parent)
	assert.Equal(t, 1, child.Parent.ID)

	levels := s.NodesByLevel()
	require.Len(t, levels, 2)
	assert.Equal(t, 1, levels[0][0].ID)
	assert.Equal(t, 2, levels[1][0].ID)
}

func TestDeleteActive(t *testing.T) {
	s := newTestStore(t)
	child := s.AddChildToActive()
	require.NotNil(t, child)

	s.SetActive(child)
	s.DeleteActive()

	assert.Equal(t, 1, s.Active().ID)
	levels := s.NodesByLevel()
	require.Len(t, levels, 1)
	require.Len(t, levels[0], 1)
	assert.Nil(t, child.Parent)
}

func TestDeleteActiveDetachesSubtree(t *testing.T) {
	s := newTestStore(t)
	child := s.AddChildToActive()
	s.SetActive(child)
	grandchild := s.AddChildToActive()
	require.NotNil(t, grandchild)

	s.DeleteActive()

	assert.Equal(t, 1, s.Active().ID)
	assert.Equal(t, 1, s.NodeCount())
	// The subtree moves as a unit; the grandchild still hangs off the
	// detached child
	require.Len(t, child.Children, 1)
	assert.Same(t, grandchild, child.Children[0])
	assert.Nil(t, s.FindNode(grandchild.ID))
}

func TestDeleteRootIsNoOp(t *testing.T) {
	s := newTestStore(t)

	s.DeleteActive()

	assert.Equal(t, 1, s.Active().ID)
	assert.Equal(t, 1, s.NodeCount())
}

func TestAddWithNoActiveIsNoOp(t *testing.T) {
	s := newTestStore(t)
	s.SetActive(nil)

	assert.Nil(t, s.AddChildToActive())
	assert.Equal(t, 1, s.NodeCount())

	s.DeleteActive()
	assert.Equal(t, 1, s.NodeCount())
}

func TestDepthLimit(t *testing.T) {
	s := newTestStore(t)

	// Build a chain from the root at level 0 down to level 99
	for i := 0; i < model.MaxLevels-1; i++ {
		child := s.AddChildToActive()
		require.NotNil(t, child, "add at level %d", i)
		s.SetActive(child)
	}
	assert.Equal(t, model.MaxLevels-1, s.Active().Level)
	assert.Equal(t, model.MaxLevels, s.NodeCount())

	// The next add would reach level 100 and must be refused
	assert.Nil(t, s.AddChildToActive())
	assert.Equal(t, model.MaxLevels, s.NodeCount())
	levels := s.NodesByLevel()
	assert.Len(t, levels, model.MaxLevels)
}

func TestReset(t *testing.T) {
	s := newTestStore(t)
	s.AddChildToActive()
	s.AddChildToActive()
	require.Equal(t, 3, s.NodeCount())

	s.Reset()

	root := s.Root()
	assert.Equal(t, 1, root.ID)
	assert.Equal(t, "1", root.Label)
	assert.Equal(t, 0, root.Level)
	assert.Same(t, root, s.Active())

	levels := s.NodesByLevel()
	require.Len(t, levels, 1)
	require.Len(t, levels[0], 1)
	assert.Equal(t, "1", levels[0][0].Label)

	// The id counter restarts, so ids repeat across resets
	child := s.AddChildToActive()
	require.NotNil(t, child)
	assert.Equal(t, 2, child.ID)
}

func TestSetActiveIdempotent(t *testing.T) {
	s := newTestStore(t)
	child := s.AddChildToActive()

	var signals int
	s.Subscribe(event.ActiveChanged, func(event.Event) { signals++ })

	s.SetActive(child)
	s.SetActive(child)
	assert.Equal(t, 1, signals)

	s.SetActive(nil)
	s.SetActive(nil)
	assert.Equal(t, 2, signals)
}

func TestUnsubscribe(t *testing.T) {
	s := newTestStore(t)

	var signals int
	id := s.Subscribe(event.NodeAdded, func(event.Event) { signals++ })

	s.AddChildToActive()
	s.Unsubscribe(event.NodeAdded, id)
	s.AddChildToActive()

	assert.Equal(t, 1, signals)
}

func TestNodesByLevelOrder(t *testing.T) {
	s := newTestStore(t)
	a := s.AddChildToActive() // id 2
	b := s.AddChildToActive() // id 3
	s.SetActive(a)
	c := s.AddChildToActive() // id 4
	s.SetActive(b)
	d := s.AddChildToActive() // id 5

	levels := s.NodesByLevel()
	require.Len(t, levels, 3)
	assert.Equal(t, []*model.Node{a, b}, levels[1])
	assert.Equal(t, []*model.Node{c, d}, levels[2])
}

func TestSetLabelSignalsNodeChanged(t *testing.T) {
	s := newTestStore(t)

	var signals int
	s.Subscribe(event.NodeChanged, func(event.Event) { signals++ })

	s.Root().SetLabel("renamed")
	assert.Equal(t, 1, signals)
	assert.Equal(t, "renamed", s.Root().Label)

	// Setting the same label again does not signal
	s.Root().SetLabel("renamed")
	assert.Equal(t, 1, signals)
}

func TestFindNode(t *testing.T) {
	s := newTestStore(t)
	child := s.AddChildToActive()
	s.SetActive(child)
	grandchild := s.AddChildToActive()

	assert.Same(t, grandchild, s.FindNode(grandchild.ID))
	assert.Same(t, s.Root(), s.FindNode(1))
	assert.Nil(t, s.FindNode(42))
}
