// Package model defines the data structures used throughout the Treescape application.
package model

import "encoding/xml"

// MaxLevels is the number of levels a tree may hold. Levels are numbered
// 0..MaxLevels-1; no node whose level would reach MaxLevels is ever created.
const MaxLevels = 100

// Node represents a single vertex in the tree. Parent is a back-reference
// only; ownership flows strictly downward through Children.
type Node struct {
	XMLName  xml.Name `json:"-" yaml:"-" xml:"node"`
	ID       int      `json:"id" yaml:"id" xml:"id,attr"`
	Label    string   `json:"label" yaml:"label" xml:"label,attr"`
	Level    int      `json:"level" yaml:"level" xml:"level,attr"`
	Parent   *Node    `json:"-" yaml:"-" xml:"-"`
	Children []*Node  `json:"children,omitempty" yaml:"children,omitempty" xml:"children>node,omitempty"`

	observers []func()
}

// NewNode creates a new Node with the given identity, label and level.
func NewNode(id int, label string, level int) *Node {
	return &Node{
		ID:    id,
		Label: label,
		Level: level,
	}
}

// Observe registers a callback invoked whenever the node changes. The
// notification carries no payload; observers re-read whatever state they
// depend on.
func (n *Node) Observe(fn func()) {
	n.observers = append(n.observers, fn)
}

// signalChange notifies all observers of the node.
func (n *Node) signalChange() {
	for _, fn := range n.observers {
		fn()
	}
}

// SetLabel updates the node's label and signals a change. Setting the same
// label again is a no-op and does not signal. Any string is accepted,
// including the empty string.
func (n *Node) SetLabel(label string) {
	if n.Label == label {
		return
	}
	n.Label = label
	n.signalChange()
}

// AddChild appends child to the node's children and sets its parent
// back-reference. The caller guarantees the child was freshly constructed
// with level n.Level+1 and is not attached anywhere else.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
	child.Parent = n
	n.signalChange()
}

// RemoveChild detaches the child with a matching id, clearing its parent
// back-reference. The child's whole subtree goes with it. Silent no-op (no
// signal) if no child matches.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c.ID == child.ID {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			c.Parent = nil
			n.signalChange()
			return
		}
	}
}
