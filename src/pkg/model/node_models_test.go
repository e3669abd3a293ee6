package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLabel(t *testing.T) {
	n := NewNode(1, "1", 0)

	var signals int
	n.Observe(func() { signals++ })

	n.SetLabel("renamed")
	assert.Equal(t, "renamed", n.Label)
	assert.Equal(t, 1, signals)

	// Same label again is a no-op and does not signal
	n.SetLabel("renamed")
	assert.Equal(t, 1, signals)

	// The empty string is a valid label
	n.SetLabel("")
	assert.Equal(t, "", n.Label)
	assert.Equal(t, 2, signals)
}

func TestAddChild(t *testing.T) {
	parent := NewNode(1, "1", 0)
	child := NewNode(2, "2", 1)

	var signals int
	parent.Observe(func() { signals++ })

	parent.AddChild(child)
	require.Len(t, parent.Children, 1)
	assert.Same(t, child, parent.Children[0])
	assert.Same(t, parent, child.Parent)
	assert.Equal(t, 1, signals)
}

func TestAddChildPreservesOrder(t *testing.T) {
	parent := NewNode(1, "1", 0)
	a := NewNode(2, "a", 1)
	b := NewNode(3, "b", 1)
	c := NewNode(4, "c", 1)

	parent.AddChild(a)
	parent.AddChild(b)
	parent.AddChild(c)

	assert.Equal(t, []*Node{a, b, c}, parent.Children)
}

func TestRemoveChild(t *testing.T) {
	parent := NewNode(1, "1", 0)
	a := NewNode(2, "a", 1)
	b := NewNode(3, "b", 1)
	parent.AddChild(a)
	parent.AddChild(b)

	var signals int
	parent.Observe(func() { signals++ })

	parent.RemoveChild(a)
	assert.Equal(t, []*Node{b}, parent.Children)
	assert.Nil(t, a.Parent)
	assert.Equal(t, 1, signals)

	// Removing a node that is not a child is a silent no-op
	parent.RemoveChild(NewNode(42, "stranger", 1))
	assert.Equal(t, 1, signals)
	assert.Len(t, parent.Children, 1)
}
