// Package tree builds the one-level grouping tree the console renders:
// ungrouped leaves first, then groups in creation order.
package tree

import "github.com/cristianoliveira/debugmenu/internal/action"

// Node is either a group (named, with children) or a leaf wrapping one action.
type Node struct {
	Name     string
	Action   action.Action
	Children []*Node

	root bool
}

// IsGroup reports whether n holds children. The root is always a group.
func (n *Node) IsGroup() bool {
	return n.root || len(n.Children) > 0
}

// IsRoot reports whether n is the tree root.
func (n *Node) IsRoot() bool {
	return n.root
}

func newLeaf(a action.Action) *Node {
	return &Node{Name: a.Info().Name, Action: a}
}

// Tree is the grouping tree. Every mutation bumps Version so caches built
// over the leaves know when to rebuild.
type Tree struct {
	root    *Node
	version uint64
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{root: &Node{root: true}}
}

// Root returns the root group.
func (t *Tree) Root() *Node {
	return t.root
}

// Version changes after every mutation.
func (t *Tree) Version() uint64 {
	return t.version
}

// AddAction folds a into the tree and returns its leaf.
func (t *Tree) AddAction(a action.Action) *Node {
	leaf := newLeaf(a)
	group := a.Info().Group
	t.version++

	if group == "" {
		t.root.Children = insertAt(t.root.Children, t.firstGroup(), leaf)
		return leaf
	}

	last := -1
	for i, child := range t.root.Children {
		if !child.IsGroup() {
			continue
		}
		if child.Name == group {
			child.Children = append(child.Children, leaf)
			return leaf
		}
		last = i
	}

	at := last + 1
	if last == -1 {
		at = len(t.root.Children)
	}
	node := &Node{Name: group, Children: []*Node{leaf}}
	t.root.Children = insertAt(t.root.Children, at, node)
	return leaf
}

// firstGroup returns the index of the first group child, or the child count
// when there is none.
func (t *Tree) firstGroup() int {
	for i, child := range t.root.Children {
		if child.IsGroup() {
			return i
		}
	}
	return len(t.root.Children)
}

// RemoveAction removes the leaf holding a. A group losing its last child is
// removed with it. It reports whether a was found.
func (t *Tree) RemoveAction(a action.Action) bool {
	for i, child := range t.root.Children {
		if child.Action == a && !child.IsGroup() {
			t.root.Children = removeAt(t.root.Children, i)
			t.version++
			return true
		}
		if !child.IsGroup() {
			continue
		}
		for j, leaf := range child.Children {
			if leaf.Action != a {
				continue
			}
			if len(child.Children) == 1 {
				t.root.Children = removeAt(t.root.Children, i)
			} else {
				child.Children = removeAt(child.Children, j)
			}
			t.version++
			return true
		}
	}
	return false
}

// Clear removes every node.
func (t *Tree) Clear() {
	t.root.Children = nil
	t.version++
}

// Leaves returns every leaf in display order: root leaves and group members
// interleaved as they appear.
func (t *Tree) Leaves() []*Node {
	var leaves []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, child := range n.Children {
			if child.IsGroup() {
				walk(child)
				continue
			}
			leaves = append(leaves, child)
		}
	}
	walk(t.root)
	return leaves
}

// Group returns the top-level group named name.
func (t *Tree) Group(name string) (*Node, bool) {
	for _, child := range t.root.Children {
		if child.IsGroup() && child.Name == name {
			return child, true
		}
	}
	return nil, false
}

func insertAt(nodes []*Node, i int, n *Node) []*Node {
	nodes = append(nodes, nil)
	copy(nodes[i+1:], nodes[i:])
	nodes[i] = n
	return nodes
}

func removeAt(nodes []*Node, i int) []*Node {
	return append(nodes[:i], nodes[i+1:]...)
}
